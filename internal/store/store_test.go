package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/sawmill/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "test.db")
	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())
}

func TestOpenReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	st, err := Open(path)
	require.NoError(t, err)
	id, err := st.Patterns().Create(`gcc:`, "gcc", true, false)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()

	p, err := st.Patterns().Get(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "gcc", p.UtilityName)
}

func TestPatternCRUD(t *testing.T) {
	ps := openTestStore(t).Patterns()

	id, err := ps.Create(`^gcc: error:(.*)$`, "gcc", true, true)
	require.NoError(t, err)
	assert.Positive(t, id)

	p, err := ps.Get(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, `^gcc: error:(.*)$`, p.Regex)
	assert.Equal(t, "gcc", p.UtilityName)
	assert.True(t, p.IsError)
	assert.True(t, p.NeedReviewing)

	require.NoError(t, ps.MarkReviewed(id))
	p, err = ps.Get(id)
	require.NoError(t, err)
	assert.False(t, p.NeedReviewing)

	require.NoError(t, ps.UpdateUtility(id, "unknown", true))
	p, err = ps.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "unknown", p.UtilityName)
	assert.True(t, p.NeedReviewing)

	deleted, err := ps.Delete(id)
	require.NoError(t, err)
	assert.True(t, deleted)

	p, err = ps.Get(id)
	require.NoError(t, err)
	assert.Nil(t, p)

	deleted, err = ps.Delete(id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestPatternGetMissing(t *testing.T) {
	ps := openTestStore(t).Patterns()
	p, err := ps.Get(12345)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPatternAllInsertionOrder(t *testing.T) {
	ps := openTestStore(t).Patterns()

	for _, utility := range []string{"npm", "gcc", "make"} {
		_, err := ps.Create(utility+":", utility, true, false)
		require.NoError(t, err)
	}

	patterns, err := ps.All()
	require.NoError(t, err)
	require.Len(t, patterns, 3)
	// Insertion order, not alphabetical.
	assert.Equal(t, "npm", patterns[0].UtilityName)
	assert.Equal(t, "gcc", patterns[1].UtilityName)
	assert.Equal(t, "make", patterns[2].UtilityName)
	assert.Less(t, patterns[0].ID, patterns[1].ID)
	assert.Less(t, patterns[1].ID, patterns[2].ID)
}

func TestLogCRUD(t *testing.T) {
	ls := openTestStore(t).Logs()

	id, err := ls.Add(model.LogRecord{
		PacketName:   "gcc-13.2.1",
		Architecture: "x86_64",
		Date:         "1715835198",
		Error:        true,
		Log:          "gcc: error: it broke",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	rec, err := ls.Get(id)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "gcc-13.2.1", rec.PacketName)
	assert.False(t, rec.Processed)

	has, err := ls.HasPacket("gcc-13.2.1")
	require.NoError(t, err)
	assert.True(t, has)
	has, err = ls.HasPacket("absent-1.0")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, ls.MarkProcessed(id))
	rec, err = ls.Get(id)
	require.NoError(t, err)
	assert.True(t, rec.Processed)
}

func TestLogUnprocessedSelection(t *testing.T) {
	ls := openTestStore(t).Logs()

	first, err := ls.Add(model.LogRecord{PacketName: "a-1.0", Log: "x"})
	require.NoError(t, err)
	second, err := ls.Add(model.LogRecord{PacketName: "b-1.0", Log: "y"})
	require.NoError(t, err)

	rec, err := ls.FirstUnprocessed()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, first, rec.ID)

	rec, err = ls.RandomUnprocessed(10)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Contains(t, []int64{first, second}, rec.ID)

	require.NoError(t, ls.MarkProcessed(first))
	require.NoError(t, ls.MarkProcessed(second))

	rec, err = ls.FirstUnprocessed()
	require.NoError(t, err)
	assert.Nil(t, rec)
	rec, err = ls.RandomUnprocessed(10)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRandomUnprocessedClampsSampleSize(t *testing.T) {
	ls := openTestStore(t).Logs()
	_, err := ls.Add(model.LogRecord{PacketName: "a-1.0", Log: "x"})
	require.NoError(t, err)

	rec, err := ls.RandomUnprocessed(0)
	require.NoError(t, err)
	require.NotNil(t, rec)
}

func TestLogAll(t *testing.T) {
	ls := openTestStore(t).Logs()
	for _, name := range []string{"a-1.0", "b-1.0", "c-1.0"} {
		_, err := ls.Add(model.LogRecord{PacketName: name, Log: "x"})
		require.NoError(t, err)
	}
	recs, err := ls.All()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "a-1.0", recs[0].PacketName)
	assert.Equal(t, "c-1.0", recs[2].PacketName)
}
