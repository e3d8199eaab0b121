// Package pipeline composes the store, engine, connectors, oracle, and
// outputs into the three batch workflows: fetch (acquire logs), process
// (classify lines and grow the pattern library), and embed (reduce every
// stored log to its embedding vector).
package pipeline

import (
	"github.com/crimson-sun/sawmill/internal/model"
)

// PatternStore is the slice of the pattern store the workflows need.
type PatternStore interface {
	All() ([]model.Pattern, error)
	Create(regex, utilityName string, isError, needReviewing bool) (int64, error)
}

// LogStore is the slice of the log store the workflows need.
type LogStore interface {
	Add(rec model.LogRecord) (int64, error)
	All() ([]model.LogRecord, error)
	RandomUnprocessed(sampleSize int) (*model.LogRecord, error)
	MarkProcessed(id int64) error
	HasPacket(packetName string) (bool, error)
}
