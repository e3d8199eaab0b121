package sawmill

import (
	"errors"
	"fmt"
	"sync"

	"github.com/crimson-sun/sawmill/internal/engine"
	"github.com/crimson-sun/sawmill/internal/engine/embedding"
	"github.com/crimson-sun/sawmill/internal/engine/ingest"
	"github.com/crimson-sun/sawmill/internal/engine/pattern"
	"github.com/crimson-sun/sawmill/internal/model"
	"github.com/crimson-sun/sawmill/internal/store"
)

// Sawmill is a pattern-based log classification and embedding engine.
// Safe for concurrent use.
type Sawmill struct {
	mu  sync.Mutex
	st  *store.Store // nil when running over in-memory patterns
	mem *memStore    // nil when database-backed
	eng *engine.Engine

	reducerOpts []embedding.Option
}

// New creates a Sawmill instance over a pattern database or an in-memory
// pattern list. With no options it starts with an empty in-memory library.
func New(opts ...Option) (*Sawmill, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.dbPath != "" && len(o.patterns) > 0 {
		return nil, errors.New("sawmill: WithDatabase and WithPatterns are mutually exclusive")
	}

	var reducerOpts []embedding.Option
	if o.globalFirstMatch {
		reducerOpts = append(reducerOpts, embedding.WithGlobalFirstMatch())
	}

	s := &Sawmill{reducerOpts: reducerOpts}

	if o.dbPath != "" {
		st, err := store.Open(o.dbPath)
		if err != nil {
			return nil, fmt.Errorf("sawmill: %w", err)
		}
		s.st = st
	} else {
		s.mem = newMemStore(toModel(o.patterns))
	}

	if err := s.Reload(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Classify returns the first pattern matching the line, in library order.
// ok is false when no pattern matches.
func (s *Sawmill) Classify(line string) (m Match, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.eng.Classify(line)
	if p == nil {
		return Match{}, false
	}
	return Match{PatternID: p.ID, Utility: p.UtilityName, IsError: p.IsError}, true
}

// Embed reduces a multi-line log to its per-utility error-count vector.
// Coordinates follow the alphabetical order of Utilities.
func (s *Sawmill) Embed(logText string) Embedding {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.eng.Embed(model.LogRecord{Log: logText})
	return Embedding{Vector: rec.Vector, Utilities: rec.Utilities}
}

// AddPattern validates a candidate pattern, persists it marked for review,
// and rebuilds the utility index so it takes effect immediately. The regex
// must compile; when TriggerLine is set it must also match it unless
// AllowNonMatching is set.
//
// Each call is its own ingestion session: duplicate-regex skipping applies
// within one processing run, not across AddPattern calls, so submitting the
// same proposal twice stores it twice.
func (s *Sawmill) AddPattern(p Proposal) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := ingest.NewSession(s.patternStore(), s.eng.Set())
	res, err := sess.Propose(ingest.Proposal{
		Regex:            p.Regex,
		UtilityName:      p.Utility,
		IsError:          p.IsError,
		Source:           ingest.SourceHuman,
		TriggerLine:      p.TriggerLine,
		AllowNonMatching: p.AllowNonMatching,
	})
	if err != nil {
		return 0, fmt.Errorf("sawmill: %w", err)
	}

	if err := s.reloadLocked(); err != nil {
		return res.ID, err
	}
	return res.ID, nil
}

// Utilities returns the distinct utility names in the library, sorted.
func (s *Sawmill) Utilities() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Index().Names()
}

// Dimension returns the embedding vector length (number of utilities).
func (s *Sawmill) Dimension() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Index().Dimension()
}

// Reload re-reads the pattern library and rebuilds the utility index. Call
// it after patterns change outside this instance.
func (s *Sawmill) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked()
}

func (s *Sawmill) reloadLocked() error {
	var patterns []model.Pattern
	var err error
	if s.st != nil {
		patterns, err = s.st.Patterns().All()
		if err != nil {
			return fmt.Errorf("sawmill: %w", err)
		}
	} else {
		patterns = s.mem.all()
	}
	s.eng = engine.New(pattern.NewSet(patterns), s.reducerOpts...)
	return nil
}

func (s *Sawmill) patternStore() ingest.Store {
	if s.st != nil {
		return s.st.Patterns()
	}
	return s.mem
}

// Close releases the underlying database handle, if any.
func (s *Sawmill) Close() error {
	if s.st != nil {
		return s.st.Close()
	}
	return nil
}

// memStore backs the in-memory mode with the same Create contract as the
// database pattern store.
type memStore struct {
	patterns []model.Pattern
	nextID   int64
}

func newMemStore(patterns []model.Pattern) *memStore {
	m := &memStore{patterns: patterns, nextID: 1}
	for i := range m.patterns {
		if m.patterns[i].ID == 0 {
			m.patterns[i].ID = m.nextID
		}
		if m.patterns[i].ID >= m.nextID {
			m.nextID = m.patterns[i].ID + 1
		}
	}
	return m
}

func (m *memStore) Create(regex, utilityName string, isError, needReviewing bool) (int64, error) {
	id := m.nextID
	m.nextID++
	m.patterns = append(m.patterns, model.Pattern{
		ID:            id,
		Regex:         regex,
		UtilityName:   utilityName,
		IsError:       isError,
		NeedReviewing: needReviewing,
	})
	return id, nil
}

func (m *memStore) all() []model.Pattern {
	out := make([]model.Pattern, len(m.patterns))
	copy(out, m.patterns)
	return out
}
