// Package hygiene is a one-off batch pass over the pattern store: utility
// names are case-folded, and names outside a curated whitelist are renamed
// to "unknown" and sent back to review. It is data cleanup, not part of the
// online classification path.
package hygiene

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/crimson-sun/sawmill/internal/model"
)

// UnknownUtility is the name assigned to off-whitelist utilities.
const UnknownUtility = "unknown"

var lower = cases.Lower(language.Und)

// Whitelist is the curated set of valid utility names, case-folded.
type Whitelist map[string]struct{}

// LoadWhitelist reads one utility name per line, ignoring blank lines.
func LoadWhitelist(path string) (Whitelist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("hygiene: load whitelist: %w", err)
	}
	defer f.Close()

	w := make(Whitelist)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			continue
		}
		w[lower.String(name)] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("hygiene: load whitelist: %w", err)
	}
	return w, nil
}

// Contains reports whether name (case-folded) is whitelisted.
func (w Whitelist) Contains(name string) bool {
	_, ok := w[lower.String(name)]
	return ok
}

// Store is the slice of the pattern store the pass needs.
type Store interface {
	All() ([]model.Pattern, error)
	UpdateUtility(id int64, utilityName string, needReviewing bool) error
}

// Report summarizes a normalization pass.
type Report struct {
	Lowercased int      // names rewritten by case-folding only
	Renamed    int      // patterns renamed to UnknownUtility
	Invalid    []string // distinct off-whitelist names found, sorted
}

// Normalize case-folds every utility name and renames off-whitelist
// utilities to UnknownUtility with need_reviewing reset. Patterns renamed to
// unknown keep their regex and error flag; only the label is cleaned.
func Normalize(ps Store, w Whitelist) (Report, error) {
	patterns, err := ps.All()
	if err != nil {
		return Report{}, err
	}

	var rep Report
	invalid := make(map[string]struct{})

	for _, p := range patterns {
		folded := lower.String(p.UtilityName)

		if !w.Contains(folded) {
			invalid[folded] = struct{}{}
			if err := ps.UpdateUtility(p.ID, UnknownUtility, true); err != nil {
				return rep, err
			}
			rep.Renamed++
			continue
		}

		if folded != p.UtilityName {
			if err := ps.UpdateUtility(p.ID, folded, p.NeedReviewing); err != nil {
				return rep, err
			}
			rep.Lowercased++
		}
	}

	for name := range invalid {
		rep.Invalid = append(rep.Invalid, name)
	}
	sort.Strings(rep.Invalid)
	return rep, nil
}
