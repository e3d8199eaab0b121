package ingest

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/sawmill/internal/engine/pattern"
	"github.com/crimson-sun/sawmill/internal/model"
)

// ErrInvalidRegex is returned when a proposed regex does not compile.
// No store write occurs.
var ErrInvalidRegex = errors.New("proposed regex does not compile")

// ErrNoMatch is returned when a proposed regex compiles but does not match
// the trigger line and the proposer did not override the gate. The gate is
// advisory: a caller may proceed with a non-matching regex via
// Proposal.AllowNonMatching.
var ErrNoMatch = errors.New("proposed regex does not match trigger line")

// Source identifies who proposed a pattern.
type Source int

const (
	// SourceHuman marks a pattern typed in by a reviewer.
	SourceHuman Source = iota
	// SourceOracle marks a pattern suggested by the external oracle.
	SourceOracle
)

func (s Source) String() string {
	if s == SourceOracle {
		return "oracle"
	}
	return "human"
}

// Store is the slice of the pattern store ingestion needs.
type Store interface {
	Create(regex, utilityName string, isError, needReviewing bool) (int64, error)
}

// Proposal is a candidate pattern awaiting validation.
type Proposal struct {
	Regex       string
	UtilityName string
	IsError     bool
	Source      Source

	// TriggerLine is the unmatched line that prompted the proposal. When
	// non-empty, the regex must match it unless AllowNonMatching is set.
	TriggerLine      string
	AllowNonMatching bool
}

// Result reports the outcome of a successful Propose call. Created is false
// when an identical regex was already accepted in this session; ID then
// carries the previously assigned id and no second store write occurred.
type Result struct {
	ID      int64
	Created bool
	Pattern model.Pattern
}

// Session validates proposals for one processing run (typically one log
// file). It skips duplicate regexes within the run and appends accepted
// patterns to the run's snapshot so subsequent lines can match them without
// a full store refresh.
type Session struct {
	store Store
	set   *pattern.Set
	seen  map[string]int64 // regex string -> id accepted this session
}

// NewSession starts an ingestion session over the given snapshot.
func NewSession(store Store, set *pattern.Set) *Session {
	return &Session{
		store: store,
		set:   set,
		seen:  make(map[string]int64),
	}
}

// Propose validates a candidate pattern and, if accepted, persists it and
// appends it to the session snapshot. Newly created patterns default to
// need_reviewing=true; a human reviewer clears the flag later.
func (s *Session) Propose(p Proposal) (Result, error) {
	// Same regex re-derived for a repeated line in this run: skip, report
	// the id from the first acceptance. Checked before validation so a
	// duplicate stays a pure no-op whatever line triggered it this time.
	if id, ok := s.seen[p.Regex]; ok {
		slog.Debug("duplicate proposal in session, skipping",
			"pattern_id", id, "regex", p.Regex)
		return Result{ID: id}, nil
	}

	compiled, err := pattern.Compile(p.Regex)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidRegex, err)
	}

	if p.TriggerLine != "" && !compiled.MatchString(p.TriggerLine) && !p.AllowNonMatching {
		return Result{}, fmt.Errorf("%w: %q", ErrNoMatch, p.TriggerLine)
	}

	id, err := s.store.Create(p.Regex, p.UtilityName, p.IsError, true)
	if err != nil {
		return Result{}, fmt.Errorf("ingest: %w", err)
	}

	created := model.Pattern{
		ID:            id,
		Regex:         p.Regex,
		UtilityName:   p.UtilityName,
		IsError:       p.IsError,
		NeedReviewing: true,
	}
	s.seen[p.Regex] = id
	s.set.Append(created)

	slog.Info("pattern ingested",
		"pattern_id", id,
		"utility", p.UtilityName,
		"is_error", p.IsError,
		"source", p.Source.String())

	return Result{ID: id, Created: true, Pattern: created}, nil
}
