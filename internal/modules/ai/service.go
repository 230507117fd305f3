// Package ai analyzes journal entries with a configurable language-model
// provider and falls back to a fixed neutral result when anything goes
// wrong: the analysis is a convenience, never a failure the user sees.
package ai

import (
	"context"
	"strings"

	"go.uber.org/zap"

	appcfg "github.com/doodle-journal/core/internal/config"
)

// Analysis is the result applied to an entry: a short summary, a single
// mood word, and up to three suggested tags.
type Analysis struct {
	Summary string   `json:"summary"`
	Mood    string   `json:"mood"`
	Tags    []string `json:"tags"`
}

const maxSuggestedTags = 3

// FallbackAnalysis is returned whenever the provider is unconfigured,
// unreachable, or answers with something unparseable.
func FallbackAnalysis() Analysis {
	return Analysis{
		Summary: "暫時無法生成摘要。",
		Mood:    "neutral",
		Tags:    []string{"日記"},
	}
}

// Service runs entry analysis against the configured provider.
type Service struct {
	provider appcfg.AIProvider
	logger   *zap.Logger

	// invoke is swappable in tests.
	invoke func(ctx context.Context, provider *appcfg.AIProvider, systemPrompt, prompt string) (string, error)
}

func NewService(provider appcfg.AIProvider, logger *zap.Logger) *Service {
	return &Service{
		provider: provider,
		logger:   logger,
		invoke:   callWithSystemPrompt,
	}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool { return s.provider.Enabled() }

// Analyze summarizes the given text. It never returns an error; any
// failure yields the fixed fallback.
func (s *Service) Analyze(ctx context.Context, text string) Analysis {
	if strings.TrimSpace(text) == "" || !s.provider.Enabled() {
		return FallbackAnalysis()
	}

	raw, err := s.invoke(ctx, &s.provider, analysisSystemPrompt, buildAnalysisPrompt(text))
	if err != nil {
		s.logger.Warn("entry analysis failed, using fallback", zap.Error(err))
		return FallbackAnalysis()
	}

	var out Analysis
	if err := unmarshalAIJSON(raw, &out); err != nil {
		s.logger.Warn("entry analysis returned bad JSON, using fallback", zap.Error(err))
		return FallbackAnalysis()
	}
	return sanitizeAnalysis(out)
}

func sanitizeAnalysis(a Analysis) Analysis {
	a.Summary = strings.TrimSpace(a.Summary)
	a.Mood = strings.TrimSpace(a.Mood)
	if a.Summary == "" {
		a.Summary = FallbackAnalysis().Summary
	}
	if a.Mood == "" {
		a.Mood = "neutral"
	}

	tags := make([]string, 0, maxSuggestedTags)
	for _, t := range a.Tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		tags = append(tags, t)
		if len(tags) == maxSuggestedTags {
			break
		}
	}
	a.Tags = tags
	return a
}
