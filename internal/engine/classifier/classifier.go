package classifier

import (
	"github.com/crimson-sun/sawmill/internal/engine/pattern"
	"github.com/crimson-sun/sawmill/internal/model"
)

// First returns the first pattern in snapshot order that matches line, or
// nil when none match. First-match-wins is a design property, not an
// artifact: when several patterns match the same line, the one persisted
// earliest wins, every time. O(len(set)) per line, acceptable for a
// human-curated library in the hundreds of patterns.
func First(line string, set *pattern.Set) *model.Pattern {
	for _, m := range set.Matchers() {
		if m.Matches(line) {
			return &m.Pattern
		}
	}
	return nil
}
