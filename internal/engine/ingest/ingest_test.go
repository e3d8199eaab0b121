package ingest

import (
	"errors"
	"testing"

	"github.com/crimson-sun/sawmill/internal/engine/pattern"
	"github.com/crimson-sun/sawmill/internal/model"
)

// fakeStore records Create calls and hands out sequential ids.
type fakeStore struct {
	created []model.Pattern
	nextID  int64
	err     error
}

func (f *fakeStore) Create(regex, utilityName string, isError, needReviewing bool) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	f.created = append(f.created, model.Pattern{
		ID:            f.nextID,
		Regex:         regex,
		UtilityName:   utilityName,
		IsError:       isError,
		NeedReviewing: needReviewing,
	})
	return f.nextID, nil
}

func TestProposeAccepted(t *testing.T) {
	st := &fakeStore{}
	set := pattern.NewSet(nil)
	sess := NewSession(st, set)

	line := "gcc: error: unknown type name"
	res, err := sess.Propose(Proposal{
		Regex:       `gcc: error:.*`,
		UtilityName: "gcc",
		IsError:     true,
		Source:      SourceOracle,
		TriggerLine: line,
	})
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if !res.Created || res.ID != 1 {
		t.Fatalf("Propose() = %+v, want Created=true ID=1", res)
	}
	if !res.Pattern.NeedReviewing {
		t.Error("accepted pattern not marked for review")
	}
	if len(st.created) != 1 || !st.created[0].NeedReviewing {
		t.Fatalf("store writes = %+v, want one reviewed-pending pattern", st.created)
	}

	// The accepted pattern is matchable within the same run.
	if set.Len() != 1 || set.Matchers()[0].Pattern.ID != 1 {
		t.Fatal("accepted pattern missing from session snapshot")
	}
	if !set.Matchers()[0].Matches(line) {
		t.Error("appended pattern does not match its trigger line")
	}
}

func TestProposeInvalidRegex(t *testing.T) {
	st := &fakeStore{}
	sess := NewSession(st, pattern.NewSet(nil))

	_, err := sess.Propose(Proposal{Regex: `(unclosed`, UtilityName: "gcc"})
	if !errors.Is(err, ErrInvalidRegex) {
		t.Fatalf("Propose() error = %v, want ErrInvalidRegex", err)
	}
	if len(st.created) != 0 {
		t.Fatal("invalid regex reached the store")
	}
}

func TestProposeNoMatchGate(t *testing.T) {
	st := &fakeStore{}
	sess := NewSession(st, pattern.NewSet(nil))

	p := Proposal{
		Regex:       `make: \*\*\*`,
		UtilityName: "make",
		TriggerLine: "gcc: error: not a make line",
	}
	_, err := sess.Propose(p)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("Propose() error = %v, want ErrNoMatch", err)
	}
	if len(st.created) != 0 {
		t.Fatal("gated proposal reached the store")
	}

	// The gate is advisory.
	p.AllowNonMatching = true
	res, err := sess.Propose(p)
	if err != nil || !res.Created {
		t.Fatalf("Propose() with override = %+v, %v; want created", res, err)
	}

	// And absent a trigger line there is nothing to gate on.
	res, err = sess.Propose(Proposal{Regex: `ld: cannot find`, UtilityName: "ld"})
	if err != nil || !res.Created {
		t.Fatalf("Propose() without trigger = %+v, %v; want created", res, err)
	}
}

func TestProposeDuplicateInSession(t *testing.T) {
	st := &fakeStore{}
	sess := NewSession(st, pattern.NewSet(nil))

	p := Proposal{Regex: `gcc: error`, UtilityName: "gcc", IsError: true}
	first, err := sess.Propose(p)
	if err != nil {
		t.Fatalf("first Propose() error = %v", err)
	}

	second, err := sess.Propose(p)
	if err != nil {
		t.Fatalf("second Propose() error = %v", err)
	}
	if second.Created {
		t.Error("duplicate reported Created=true")
	}
	if second.ID != first.ID {
		t.Errorf("duplicate ID = %d, want %d", second.ID, first.ID)
	}
	if len(st.created) != 1 {
		t.Fatalf("store writes = %d, want 1", len(st.created))
	}
}

func TestProposeDuplicateSkipsTriggerGate(t *testing.T) {
	st := &fakeStore{}
	sess := NewSession(st, pattern.NewSet(nil))

	first, err := sess.Propose(Proposal{
		Regex:       `gcc: error`,
		UtilityName: "gcc",
		IsError:     true,
		TriggerLine: "gcc: error: it broke",
	})
	if err != nil {
		t.Fatalf("first Propose() error = %v", err)
	}

	// The same regex re-proposed for a line it does not match is still a
	// no-op skip, not a gate failure.
	second, err := sess.Propose(Proposal{
		Regex:       `gcc: error`,
		UtilityName: "gcc",
		IsError:     true,
		TriggerLine: "completely unrelated line",
	})
	if err != nil {
		t.Fatalf("duplicate Propose() error = %v, want no-op skip", err)
	}
	if second.Created || second.ID != first.ID {
		t.Fatalf("duplicate = %+v, want ID %d, Created=false", second, first.ID)
	}
	if len(st.created) != 1 {
		t.Fatalf("store writes = %d, want 1", len(st.created))
	}
}

func TestProposeDistinctRegexesNotDeduped(t *testing.T) {
	st := &fakeStore{}
	sess := NewSession(st, pattern.NewSet(nil))

	for _, re := range []string{`gcc: error`, `gcc: fatal`} {
		if _, err := sess.Propose(Proposal{Regex: re, UtilityName: "gcc", IsError: true}); err != nil {
			t.Fatalf("Propose(%q) error = %v", re, err)
		}
	}
	if len(st.created) != 2 {
		t.Fatalf("store writes = %d, want 2", len(st.created))
	}
}

func TestProposeStoreError(t *testing.T) {
	st := &fakeStore{err: errors.New("disk full")}
	set := pattern.NewSet(nil)
	sess := NewSession(st, set)

	_, err := sess.Propose(Proposal{Regex: `gcc:`, UtilityName: "gcc"})
	if err == nil {
		t.Fatal("Propose() error = nil, want store error")
	}
	if set.Len() != 0 {
		t.Fatal("failed write still appended to snapshot")
	}
}
