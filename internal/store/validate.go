package store

import (
	"fmt"
	"strings"
)

// Validate checks the required-field rules shared by both backends.
func (in PostInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	if in.ColorTheme != "" && !in.ColorTheme.Valid() {
		return fmt.Errorf("%w: unknown color theme %q", ErrValidation, in.ColorTheme)
	}
	return nil
}

// Validate checks the required-field rules shared by both backends.
func (in ReminderInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(in.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrValidation)
	}
	if in.ScheduledTime <= 0 {
		return fmt.Errorf("%w: scheduledTime is required", ErrValidation)
	}
	return nil
}

// DedupeTags drops duplicate tags (case-sensitive) preserving first-seen
// order, keeping the no-duplicate invariant in one place.
func DedupeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
