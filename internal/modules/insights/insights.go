// Package insights derives list, calendar and statistics views from an
// already-fetched entry snapshot. Everything here is a pure function over
// []models.PostModel; no I/O, no error paths. Malformed or missing optional
// fields are treated as absent.
package insights

import (
	"sort"
	"strings"
	"time"

	"github.com/doodle-journal/core/internal/models"
)

// Filter is a conjunctive facet filter. Empty facets match everything.
type Filter struct {
	Moods      []string
	Tags       []string
	SearchText string
	// DateFrom / DateTo are epoch milliseconds. DateTo is inclusive through
	// the end of that calendar day: a fixed +24h is added rather than a
	// timezone-aware end-of-day.
	DateFrom int64
	DateTo   int64
}

const dayMillis = int64(24 * time.Hour / time.Millisecond)

// Matches reports whether a single entry passes every active facet.
func (f Filter) Matches(p *models.PostModel) bool {
	if len(f.Moods) > 0 && !containsString(f.Moods, p.Mood) {
		return false
	}
	if len(f.Tags) > 0 && !intersects(f.Tags, p.Tags) {
		return false
	}
	if f.SearchText != "" {
		needle := strings.ToLower(f.SearchText)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Content), needle) {
			return false
		}
	}
	created := p.CreatedAt.UnixMilli()
	if f.DateFrom > 0 && created < f.DateFrom {
		return false
	}
	if f.DateTo > 0 && created > f.DateTo+dayMillis {
		return false
	}
	return true
}

// Apply returns the entries matching the filter, preserving input order.
func (f Filter) Apply(posts []models.PostModel) []models.PostModel {
	out := make([]models.PostModel, 0, len(posts))
	for i := range posts {
		if f.Matches(&posts[i]) {
			out = append(out, posts[i])
		}
	}
	return out
}

// Search matches if the needle occurs in the title, content, any tag or the
// category, case-insensitively. An empty needle matches everything.
func Search(posts []models.PostModel, needle string) []models.PostModel {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return posts
	}
	out := make([]models.PostModel, 0, len(posts))
	for _, p := range posts {
		if matchesText(&p, needle) {
			out = append(out, p)
		}
	}
	return out
}

func matchesText(p *models.PostModel, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Content), needle) ||
		strings.Contains(strings.ToLower(p.Category), needle) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// CalendarBuckets groups entries by the local calendar day of createdAt.
// Keys are yyyy-MM-dd strings; entries within a day keep input order.
func CalendarBuckets(posts []models.PostModel) map[string][]models.PostModel {
	buckets := make(map[string][]models.PostModel)
	for _, p := range posts {
		day := p.CreatedAt.Local().Format("2006-01-02")
		buckets[day] = append(buckets[day], p)
	}
	return buckets
}

// MoodCount is one histogram bar.
type MoodCount struct {
	Mood       string  `json:"mood"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MoodHistogram counts entries per non-empty mood. Percentages are relative
// to the entries that carry a mood; moodless entries are excluded from both
// numerator and denominator. Sorted descending by count, stable on ties.
func MoodHistogram(posts []models.PostModel) []MoodCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	total := 0
	for _, p := range posts {
		if p.Mood == "" {
			continue
		}
		if _, seen := counts[p.Mood]; !seen {
			order = append(order, p.Mood)
		}
		counts[p.Mood]++
		total++
	}

	out := make([]MoodCount, 0, len(order))
	for _, mood := range order {
		out = append(out, MoodCount{
			Mood:       mood,
			Count:      counts[mood],
			Percentage: float64(counts[mood]) / float64(total) * 100,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// TagCount is one top-tags row.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TopTags counts tag occurrences across all entries (an entry contributes
// once per distinct tag it carries), sorts descending by count with
// first-encountered order on ties, and truncates to the top ten.
func TopTags(posts []models.PostModel) []TagCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, p := range posts {
		for _, t := range p.Tags {
			if _, seen := counts[t]; !seen {
				order = append(order, t)
			}
			counts[t]++
		}
	}

	out := make([]TagCount, 0, len(order))
	for _, t := range order {
		out = append(out, TagCount{Tag: t, Count: counts[t]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

// Summary holds the overview counters for the stats view.
type Summary struct {
	Total        int `json:"total"`
	WithImages   int `json:"withImages"`
	WithMood     int `json:"withMood"`
	DistinctTags int `json:"distinctTags"`
}

// Summarize computes the overview counters in one pass.
func Summarize(posts []models.PostModel) Summary {
	s := Summary{Total: len(posts)}
	tags := make(map[string]struct{})
	for _, p := range posts {
		if len(p.Images) > 0 {
			s.WithImages++
		}
		if p.Mood != "" {
			s.WithMood++
		}
		for _, t := range p.Tags {
			tags[t] = struct{}{}
		}
	}
	s.DistinctTags = len(tags)
	return s
}

// AvailableMoods returns the distinct non-empty moods in first-seen order,
// for populating the filter UI.
func AvailableMoods(posts []models.PostModel) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range posts {
		if p.Mood == "" {
			continue
		}
		if _, ok := seen[p.Mood]; ok {
			continue
		}
		seen[p.Mood] = struct{}{}
		out = append(out, p.Mood)
	}
	return out
}

// AvailableTags returns the distinct tags in first-seen order.
func AvailableTags(posts []models.PostModel) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range posts {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func intersects(a []string, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}
