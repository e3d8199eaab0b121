package output

import (
	"context"

	"github.com/crimson-sun/sawmill/internal/model"
)

// Output defines the interface for embedding record destinations.
type Output interface {
	Write(ctx context.Context, rec model.EmbeddingRecord) error
	Close() error
}

// FormatRecord returns a copy of the record prepared for a sink. When
// legend is false the per-coordinate utility names are stripped (omitted
// from JSON via omitempty); the vector itself is always kept.
func FormatRecord(rec model.EmbeddingRecord, legend bool) model.EmbeddingRecord {
	if !legend {
		rec.Utilities = nil
	}
	return rec
}
