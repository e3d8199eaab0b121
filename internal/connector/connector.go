package connector

import (
	"context"

	"github.com/crimson-sun/sawmill/internal/model"
)

// Source defines the interface all log acquisition sources must implement.
// A source knows how to enumerate available build logs and download one as
// a record ready for the log store.
type Source interface {
	// List returns the names of available logs, sorted ascending, so a
	// caller can resume after the last name it already holds.
	List(ctx context.Context, cfg SourceConfig) ([]string, error)

	// Fetch downloads a single log by name. The record's PacketName is
	// the name with path separators replaced by underscores, so callers
	// can test for an already-stored packet without downloading.
	Fetch(ctx context.Context, cfg SourceConfig, name string) (model.LogRecord, error)
}

// SourceConfig holds provider-specific acquisition settings.
type SourceConfig struct {
	Provider     string
	Endpoint     string
	Architecture string
	Extra        map[string]string
}
