package hygiene

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/crimson-sun/sawmill/internal/model"
)

type fakeStore struct {
	patterns []model.Pattern
	updates  map[int64]model.Pattern
}

func (f *fakeStore) All() ([]model.Pattern, error) { return f.patterns, nil }

func (f *fakeStore) UpdateUtility(id int64, utilityName string, needReviewing bool) error {
	if f.updates == nil {
		f.updates = make(map[int64]model.Pattern)
	}
	f.updates[id] = model.Pattern{ID: id, UtilityName: utilityName, NeedReviewing: needReviewing}
	return nil
}

func TestLoadWhitelist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whitelist.txt")
	if err := os.WriteFile(path, []byte("gcc\nMake\n\n  npm  \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := LoadWhitelist(path)
	if err != nil {
		t.Fatalf("LoadWhitelist() error = %v", err)
	}
	for _, name := range []string{"gcc", "make", "MAKE", "npm"} {
		if !w.Contains(name) {
			t.Errorf("Contains(%q) = false, want true", name)
		}
	}
	if w.Contains("cargo") {
		t.Error("Contains(cargo) = true, want false")
	}
}

func TestLoadWhitelistMissingFile(t *testing.T) {
	if _, err := LoadWhitelist(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("LoadWhitelist() error = nil for missing file")
	}
}

func TestNormalize(t *testing.T) {
	// 1 is already clean, 2 and 4 need case-folding, 3 and 5 are the same
	// off-whitelist name in two spellings.
	st := &fakeStore{patterns: []model.Pattern{
		{ID: 1, UtilityName: "gcc"},
		{ID: 2, UtilityName: "Make"},
		{ID: 3, UtilityName: "totally-bogus"},
		{ID: 4, UtilityName: "GCC", NeedReviewing: true},
		{ID: 5, UtilityName: "Totally-Bogus"},
	}}
	w := Whitelist{"gcc": {}, "make": {}}

	rep, err := Normalize(st, w)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if rep.Lowercased != 2 {
		t.Errorf("Lowercased = %d, want 2", rep.Lowercased)
	}
	if rep.Renamed != 2 {
		t.Errorf("Renamed = %d, want 2", rep.Renamed)
	}
	if want := []string{"totally-bogus"}; !reflect.DeepEqual(rep.Invalid, want) {
		t.Errorf("Invalid = %v, want %v", rep.Invalid, want)
	}

	if _, touched := st.updates[1]; touched {
		t.Error("clean pattern 1 was rewritten")
	}
	if got := st.updates[2]; got.UtilityName != "make" || got.NeedReviewing {
		t.Errorf("pattern 2 update = %+v, want make with review state kept", got)
	}
	if got := st.updates[3]; got.UtilityName != UnknownUtility || !got.NeedReviewing {
		t.Errorf("pattern 3 update = %+v, want %s back in review", got, UnknownUtility)
	}
	if got := st.updates[4]; got.UtilityName != "gcc" || !got.NeedReviewing {
		t.Errorf("pattern 4 update = %+v, want gcc with review flag preserved", got)
	}
}

func TestNormalizeEmptyStore(t *testing.T) {
	rep, err := Normalize(&fakeStore{}, Whitelist{"gcc": {}})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if rep.Lowercased != 0 || rep.Renamed != 0 || len(rep.Invalid) != 0 {
		t.Fatalf("Normalize() on empty store = %+v, want zero report", rep)
	}
}
