package pattern

import (
	"testing"

	"github.com/crimson-sun/sawmill/internal/model"
)

func TestCompilePrefixSemantics(t *testing.T) {
	tests := []struct {
		name string
		expr string
		line string
		want bool
	}{
		{"match at start", `gcc: error`, "gcc: error: something", true},
		{"no match mid-line", `gcc: error`, "note: gcc: error: something", false},
		{"anchored convention", `^configure: error:.*$`, "configure: error: no acceptable C compiler", true},
		{"unanchored tolerates trailing text", `ld`, "ld: cannot find -lfoo", true},
		{"alternation stays grouped", `a|b`, "x before a", false},
		{"empty expr matches everything", ``, "anything", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.expr, err)
			}
			if got := re.MatchString(tt.line); got != tt.want {
				t.Errorf("Compile(%q).MatchString(%q) = %v, want %v", tt.expr, tt.line, got, tt.want)
			}
		})
	}
}

func TestCompileInvalid(t *testing.T) {
	if _, err := Compile(`(unclosed`); err == nil {
		t.Fatal("Compile(`(unclosed`) error = nil, want error")
	}
}

func TestMatcherInvalidRegexDegrades(t *testing.T) {
	m := &Matcher{Pattern: model.Pattern{ID: 7, Regex: `(unclosed`}}
	for i := 0; i < 3; i++ {
		if m.Matches("(unclosed literally") {
			t.Fatal("Matches() = true for uncompilable regex")
		}
	}
}

func TestMatcherCachesCompilation(t *testing.T) {
	m := &Matcher{Pattern: model.Pattern{Regex: `ok`}}
	if !m.Matches("ok then") {
		t.Fatal("first Matches() = false, want true")
	}
	re := m.re
	m.Matches("ok again")
	if m.re != re {
		t.Error("Matches() recompiled a cached regex")
	}
}

func TestSetOrderAndGrouping(t *testing.T) {
	patterns := []model.Pattern{
		{ID: 1, Regex: `a`, UtilityName: "gcc"},
		{ID: 2, Regex: `b`, UtilityName: "make"},
		{ID: 3, Regex: `c`, UtilityName: "gcc"},
	}
	s := NewSet(patterns)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	for i, m := range s.Matchers() {
		if m.Pattern.ID != patterns[i].ID {
			t.Fatalf("Matchers()[%d].ID = %d, want %d", i, m.Pattern.ID, patterns[i].ID)
		}
	}

	gcc := s.ByUtility("gcc")
	if len(gcc) != 2 || gcc[0].Pattern.ID != 1 || gcc[1].Pattern.ID != 3 {
		t.Errorf("ByUtility(gcc) ids = %v, want [1 3]", ids(gcc))
	}
	if len(s.ByUtility("absent")) != 0 {
		t.Error("ByUtility(absent) is non-empty")
	}

	s.Append(model.Pattern{ID: 4, Regex: `d`, UtilityName: "make"})
	if s.Len() != 4 || len(s.ByUtility("make")) != 2 {
		t.Error("Append did not extend both views")
	}

	utils := s.Utilities()
	if len(utils) != 2 {
		t.Errorf("Utilities() = %v, want two names", utils)
	}
}

func ids(ms []*Matcher) []int64 {
	out := make([]int64, len(ms))
	for i, m := range ms {
		out[i] = m.Pattern.ID
	}
	return out
}
