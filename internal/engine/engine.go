package engine

import (
	"github.com/crimson-sun/sawmill/internal/engine/classifier"
	"github.com/crimson-sun/sawmill/internal/engine/embedding"
	"github.com/crimson-sun/sawmill/internal/engine/pattern"
	"github.com/crimson-sun/sawmill/internal/model"
)

// Engine binds a pattern snapshot to the utility index derived from it and
// exposes the two read paths: line classification and embedding reduction.
// Constructing an Engine *is* the index rebuild; after new utilities enter
// the store, take a fresh snapshot and build a new Engine rather than
// reusing a stale one.
type Engine struct {
	set     *pattern.Set
	index   *embedding.UtilityIndex
	reducer *embedding.Reducer
}

// New builds an Engine over the given snapshot.
func New(set *pattern.Set, opts ...embedding.Option) *Engine {
	return &Engine{
		set:     set,
		index:   embedding.BuildIndex(set),
		reducer: embedding.NewReducer(opts...),
	}
}

// Set returns the underlying snapshot.
func (e *Engine) Set() *pattern.Set { return e.set }

// Index returns the utility index for this snapshot.
func (e *Engine) Index() *embedding.UtilityIndex { return e.index }

// Classify returns the first matching pattern for a line, or nil.
func (e *Engine) Classify(line string) *model.Pattern {
	return classifier.First(line, e.set)
}

// Embed reduces a log record to its per-utility error-count vector.
func (e *Engine) Embed(rec model.LogRecord) model.EmbeddingRecord {
	vec := e.reducer.Reduce(rec.Log, e.set, e.index)
	return model.EmbeddingRecord{
		LogID:        rec.ID,
		PacketName:   rec.PacketName,
		Architecture: rec.Architecture,
		Dimension:    e.index.Dimension(),
		Vector:       vec,
		Utilities:    e.index.Names(),
	}
}
