package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/sawmill/internal/engine"
	"github.com/crimson-sun/sawmill/internal/engine/embedding"
	"github.com/crimson-sun/sawmill/internal/engine/pattern"
	"github.com/crimson-sun/sawmill/internal/output"
)

// Embedder reduces every stored log to its embedding vector and writes the
// records to an output. A fresh snapshot and utility index are built per
// run; the index is never rebuilt mid-run, so every record in one run shares
// the same coordinate meaning.
type Embedder struct {
	Patterns PatternStore
	Logs     LogStore
	Out      output.Output
	// ReducerOpts tune the reduction policy (see embedding.WithGlobalFirstMatch).
	ReducerOpts []embedding.Option
}

// EmbedReport summarizes an embed run.
type EmbedReport struct {
	Dimension int
	Logs      int
}

// Run embeds all stored logs.
func (e *Embedder) Run(ctx context.Context) (EmbedReport, error) {
	all, err := e.Patterns.All()
	if err != nil {
		return EmbedReport{}, fmt.Errorf("pipeline embed: %w", err)
	}
	eng := engine.New(pattern.NewSet(all), e.ReducerOpts...)

	recs, err := e.Logs.All()
	if err != nil {
		return EmbedReport{}, fmt.Errorf("pipeline embed: %w", err)
	}

	rep := EmbedReport{Dimension: eng.Index().Dimension()}
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if err := e.Out.Write(ctx, eng.Embed(rec)); err != nil {
			return rep, fmt.Errorf("pipeline embed: %w", err)
		}
		rep.Logs++
	}

	slog.Info("embedding run complete", "logs", rep.Logs, "dimension", rep.Dimension)
	return rep, nil
}
