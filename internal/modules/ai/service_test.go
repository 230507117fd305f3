package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcfg "github.com/doodle-journal/core/internal/config"
)

func newTestService(invoke func(ctx context.Context, provider *appcfg.AIProvider, systemPrompt, prompt string) (string, error)) *Service {
	svc := NewService(appcfg.AIProvider{Type: "openai", APIKey: "test-key"}, zap.NewNop())
	svc.invoke = invoke
	return svc
}

func TestAnalyze_ParsesProviderJSON(t *testing.T) {
	svc := newTestService(func(ctx context.Context, provider *appcfg.AIProvider, systemPrompt, prompt string) (string, error) {
		return `{"summary":"今天去了東京。","mood":"happy","tags":["旅行","美食"]}`, nil
	})

	got := svc.Analyze(context.Background(), "went to tokyo, ate ramen")
	assert.Equal(t, "今天去了東京。", got.Summary)
	assert.Equal(t, "happy", got.Mood)
	assert.Equal(t, []string{"旅行", "美食"}, got.Tags)
}

func TestAnalyze_StripsCodeFences(t *testing.T) {
	svc := newTestService(func(ctx context.Context, provider *appcfg.AIProvider, systemPrompt, prompt string) (string, error) {
		return "```json\n{\"summary\":\"s\",\"mood\":\"calm\",\"tags\":[\"a\"]}\n```", nil
	})

	got := svc.Analyze(context.Background(), "some text")
	assert.Equal(t, "s", got.Summary)
	assert.Equal(t, "calm", got.Mood)
}

func TestAnalyze_FallbackOnProviderError(t *testing.T) {
	svc := newTestService(func(ctx context.Context, provider *appcfg.AIProvider, systemPrompt, prompt string) (string, error) {
		return "", errors.New("upstream 500")
	})

	got := svc.Analyze(context.Background(), "some text")
	assert.Equal(t, FallbackAnalysis(), got)
}

func TestAnalyze_FallbackOnBadJSON(t *testing.T) {
	svc := newTestService(func(ctx context.Context, provider *appcfg.AIProvider, systemPrompt, prompt string) (string, error) {
		return "sorry, I cannot help with that", nil
	})

	got := svc.Analyze(context.Background(), "some text")
	assert.Equal(t, FallbackAnalysis(), got)
}

func TestAnalyze_FallbackOnEmptyInput(t *testing.T) {
	called := false
	svc := newTestService(func(ctx context.Context, provider *appcfg.AIProvider, systemPrompt, prompt string) (string, error) {
		called = true
		return "", nil
	})

	got := svc.Analyze(context.Background(), "   ")
	assert.Equal(t, FallbackAnalysis(), got)
	assert.False(t, called, "empty input must not reach the provider")
}

func TestAnalyze_FallbackWhenDisabled(t *testing.T) {
	svc := NewService(appcfg.AIProvider{}, zap.NewNop())
	svc.invoke = func(ctx context.Context, provider *appcfg.AIProvider, systemPrompt, prompt string) (string, error) {
		t.Fatal("unconfigured provider must not be invoked")
		return "", nil
	}

	got := svc.Analyze(context.Background(), "some text")
	assert.Equal(t, FallbackAnalysis(), got)
	assert.False(t, svc.Enabled())
}

func TestAnalyze_CapsSuggestedTags(t *testing.T) {
	svc := newTestService(func(ctx context.Context, provider *appcfg.AIProvider, systemPrompt, prompt string) (string, error) {
		return `{"summary":"s","mood":"happy","tags":["a","","b","c","d","e"]}`, nil
	})

	got := svc.Analyze(context.Background(), "text")
	require.Len(t, got.Tags, 3)
	assert.Equal(t, []string{"a", "b", "c"}, got.Tags)
}

func TestSanitizeAnalysis_FillsDefaults(t *testing.T) {
	got := sanitizeAnalysis(Analysis{Summary: "  ", Mood: ""})
	assert.Equal(t, FallbackAnalysis().Summary, got.Summary)
	assert.Equal(t, "neutral", got.Mood)
	assert.Empty(t, got.Tags)
}

func TestUnmarshalAIJSON_ExtractsEmbeddedObject(t *testing.T) {
	var out Analysis
	raw := "Here is the result:\n{\"summary\":\"s\",\"mood\":\"sad\",\"tags\":[]}\nHope that helps!"
	require.NoError(t, unmarshalAIJSON(raw, &out))
	assert.Equal(t, "sad", out.Mood)
}
