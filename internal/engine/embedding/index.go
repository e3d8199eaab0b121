package embedding

import (
	"sort"

	"github.com/crimson-sun/sawmill/internal/engine/pattern"
)

// UtilityIndex is a bijection between utility names and dense vector
// coordinates, computed by sorting the distinct utility names of a snapshot
// alphabetically. It must be rebuilt whenever the snapshot changes: a stale
// index silently produces wrong or out-of-range coordinates, which is a
// programming error, not a runtime condition.
type UtilityIndex struct {
	names  []string
	coords map[string]int
}

// BuildIndex derives the index for a pattern snapshot.
func BuildIndex(set *pattern.Set) *UtilityIndex {
	names := set.Utilities()
	sort.Strings(names)

	coords := make(map[string]int, len(names))
	for i, name := range names {
		coords[name] = i
	}
	return &UtilityIndex{names: names, coords: coords}
}

// Dimension returns the number of distinct utilities in the index.
func (ix *UtilityIndex) Dimension() int { return len(ix.names) }

// Coord returns the coordinate for a utility name.
func (ix *UtilityIndex) Coord(name string) (int, bool) {
	i, ok := ix.coords[name]
	return i, ok
}

// Names returns the utility names in coordinate order.
func (ix *UtilityIndex) Names() []string { return ix.names }
