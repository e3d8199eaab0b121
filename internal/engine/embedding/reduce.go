package embedding

import (
	"strings"

	"github.com/crimson-sun/sawmill/internal/engine/classifier"
	"github.com/crimson-sun/sawmill/internal/engine/pattern"
)

// Reducer turns a multi-line log into a per-utility error-count vector.
type Reducer struct {
	globalFirstMatch bool
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithGlobalFirstMatch makes the reducer use the line classifier's
// cross-utility first-match policy, attributing each line to at most one
// utility. The default scans each utility's own pattern list independently,
// so a line matching patterns of several utilities increments all of them.
// That asymmetry with the line classifier is inherited behavior kept for
// compatibility, pending a product decision on unifying the two policies.
func WithGlobalFirstMatch() Option {
	return func(r *Reducer) { r.globalFirstMatch = true }
}

// NewReducer creates a Reducer.
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reduce counts error-classified lines per utility. Blank lines (after
// trimming whitespace) are skipped entirely. The returned vector has the
// index's dimension, is all-zero for a log with no error matches, and never
// holds a negative value. Counting is per-line independent, so reducing a
// concatenation equals the coordinate-wise sum of reducing each line.
func (r *Reducer) Reduce(logText string, set *pattern.Set, ix *UtilityIndex) []float64 {
	vec := make([]float64, ix.Dimension())

	for _, line := range strings.Split(logText, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if r.globalFirstMatch {
			r.reduceGlobal(line, set, ix, vec)
			continue
		}
		r.reducePerUtility(line, set, ix, vec)
	}
	return vec
}

// reducePerUtility scans each utility's own patterns with first-match-wins
// inside that list only.
func (r *Reducer) reducePerUtility(line string, set *pattern.Set, ix *UtilityIndex, vec []float64) {
	// Iterate utilities in index order so runs are reproducible; the
	// contract leaves the order unspecified.
	for coord, name := range ix.Names() {
		for _, m := range set.ByUtility(name) {
			if m.Matches(line) {
				if m.Pattern.IsError {
					vec[coord]++
				}
				break
			}
		}
	}
}

// reduceGlobal attributes the line to the single winning pattern across the
// whole snapshot.
func (r *Reducer) reduceGlobal(line string, set *pattern.Set, ix *UtilityIndex, vec []float64) {
	p := classifier.First(line, set)
	if p == nil || !p.IsError {
		return
	}
	if coord, ok := ix.Coord(p.UtilityName); ok {
		vec[coord]++
	}
}
