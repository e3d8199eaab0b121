package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/crimson-sun/sawmill/internal/connector"
	"github.com/crimson-sun/sawmill/internal/engine/errwindow"
)

// Fetcher downloads build logs from a source into the log store, skipping
// packets already present so interrupted runs resume where they stopped.
type Fetcher struct {
	Source connector.Source
	Config connector.SourceConfig
	Logs   LogStore

	// Extract reduces each downloaded log to its error windows before
	// storing. Logs with no error window are dropped. Off for sources that
	// already serve extracted logs.
	Extract bool
	// Window is the errwindow context size; 0 uses the default.
	Window int
	// Limit caps the number of logs fetched in one run; 0 means no cap.
	Limit int
}

// FetchReport summarizes a fetch run.
type FetchReport struct {
	Listed  int
	Fetched int
	Skipped int // already stored
	Dropped int // no error window after extraction
}

// Run lists the source and downloads every log not yet stored.
func (f *Fetcher) Run(ctx context.Context) (FetchReport, error) {
	var rep FetchReport

	names, err := f.Source.List(ctx, f.Config)
	if err != nil {
		return rep, fmt.Errorf("pipeline fetch: %w", err)
	}
	rep.Listed = len(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if f.Limit > 0 && rep.Fetched >= f.Limit {
			break
		}

		exists, err := f.Logs.HasPacket(strings.ReplaceAll(name, "/", "_"))
		if err != nil {
			return rep, fmt.Errorf("pipeline fetch: %w", err)
		}
		if exists {
			rep.Skipped++
			continue
		}

		rec, err := f.Source.Fetch(ctx, f.Config, name)
		if err != nil {
			return rep, fmt.Errorf("pipeline fetch: %w", err)
		}

		if f.Extract {
			rec.Log = errwindow.Extract(rec.Log, f.Window)
			if rec.Log == "" {
				rep.Dropped++
				continue
			}
		}

		if _, err := f.Logs.Add(rec); err != nil {
			return rep, fmt.Errorf("pipeline fetch: %w", err)
		}
		rep.Fetched++
		slog.Info("log fetched", "packet", rec.PacketName, "architecture", rec.Architecture)
	}

	return rep, nil
}
