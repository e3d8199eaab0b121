package pattern

import (
	"log/slog"
	"regexp"

	"github.com/crimson-sun/sawmill/internal/model"
)

// Compile compiles a stored regex with prefix anchoring: the compiled
// expression matches a line that *begins* with text satisfying the regex,
// not a line that merely contains it anywhere. Stored regexes follow an
// advisory `^...$` convention, but an unanchored regex is still accepted;
// it simply tolerates trailing content the convention intends to forbid.
func Compile(expr string) (*regexp.Regexp, error) {
	return regexp.Compile(`\A(?:` + expr + `)`)
}

// Matcher wraps a stored pattern with its compiled form. Compilation is
// deferred to first use and cached; a regex that fails to compile degrades
// every Matches call to false with a single warning. Stored regexes can be
// hand-edited externally, so validity is never assumed.
//
// A Matcher is not safe for concurrent use; each worker should hold its own
// snapshot.
type Matcher struct {
	Pattern model.Pattern

	re       *regexp.Regexp
	err      error
	compiled bool
	warned   bool
}

// Matches reports whether line begins with text matching the pattern's regex.
// A compile failure is treated as no-match, never a crash.
func (m *Matcher) Matches(line string) bool {
	if !m.compiled {
		m.compiled = true
		m.re, m.err = Compile(m.Pattern.Regex)
	}
	if m.err != nil {
		if !m.warned {
			m.warned = true
			slog.Warn("invalid stored regex, treating as no-match",
				"pattern_id", m.Pattern.ID,
				"regex", m.Pattern.Regex,
				"error", m.err)
		}
		return false
	}
	return m.re.MatchString(line)
}
