package pattern

import "github.com/crimson-sun/sawmill/internal/model"

// Set is an in-memory snapshot of the pattern store at a point in time.
// Order is significant: it is the store's insertion order and the line
// classifier's tie-break order. Mutations to the backing store after the
// snapshot is taken are not visible until a new snapshot is built; the only
// permitted growth is Append, used by an ingestion session to make freshly
// accepted patterns matchable within the same run.
type Set struct {
	matchers []*Matcher
	byUtil   map[string][]*Matcher
}

// NewSet builds a snapshot from patterns as returned by the store.
func NewSet(patterns []model.Pattern) *Set {
	s := &Set{
		matchers: make([]*Matcher, 0, len(patterns)),
		byUtil:   make(map[string][]*Matcher),
	}
	for _, p := range patterns {
		s.Append(p)
	}
	return s
}

// Append adds a pattern to the end of the snapshot.
func (s *Set) Append(p model.Pattern) {
	m := &Matcher{Pattern: p}
	s.matchers = append(s.matchers, m)
	s.byUtil[p.UtilityName] = append(s.byUtil[p.UtilityName], m)
}

// Len returns the number of patterns in the snapshot.
func (s *Set) Len() int { return len(s.matchers) }

// Matchers returns the snapshot's matchers in store order.
func (s *Set) Matchers() []*Matcher { return s.matchers }

// ByUtility returns the matchers grouped by utility name, each group in
// store order.
func (s *Set) ByUtility(name string) []*Matcher { return s.byUtil[name] }

// Utilities returns the distinct utility names present in the snapshot.
// Order is unspecified; callers needing a stable order build a UtilityIndex.
func (s *Set) Utilities() []string {
	names := make([]string, 0, len(s.byUtil))
	for name := range s.byUtil {
		names = append(names, name)
	}
	return names
}
