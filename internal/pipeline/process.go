package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/crimson-sun/sawmill/internal/engine/classifier"
	"github.com/crimson-sun/sawmill/internal/engine/ingest"
	"github.com/crimson-sun/sawmill/internal/engine/pattern"
	"github.com/crimson-sun/sawmill/internal/oracle"
)

// Processor works through unprocessed logs: each non-blank line is
// classified against the session snapshot; unmatched lines are sent to the
// oracle, and accepted suggestions enter the pattern library (marked for
// review) where they immediately cover later lines of the same run.
type Processor struct {
	Patterns PatternStore
	Logs     LogStore
	// Oracle may be nil; unmatched lines are then only counted.
	Oracle oracle.Oracle
	// SampleSize bounds the random pick of the next unprocessed log.
	SampleSize int
}

// ProcessReport summarizes one processed log.
type ProcessReport struct {
	LogID        int64
	PacketName   string
	Lines        int // non-blank lines examined
	Matched      int
	Unmatched    int // no pattern and no accepted suggestion
	Ingested     int // new patterns created this log
	Duplicates   int // suggestions identical to one already accepted this run
	OracleErrors int
}

// ProcessOne picks one unprocessed log, classifies it line by line, and
// marks it processed. Returns ok=false when no unprocessed logs remain.
//
// Oracle and ingestion failures never abort the run: a bad suggestion or an
// unreachable oracle costs that line its pattern, nothing more. Store
// failures do abort: without the store the run cannot make progress.
func (p *Processor) ProcessOne(ctx context.Context) (ProcessReport, bool, error) {
	rec, err := p.Logs.RandomUnprocessed(p.SampleSize)
	if err != nil {
		return ProcessReport{}, false, fmt.Errorf("pipeline process: %w", err)
	}
	if rec == nil {
		return ProcessReport{}, false, nil
	}

	rep := ProcessReport{LogID: rec.ID, PacketName: rec.PacketName}

	all, err := p.Patterns.All()
	if err != nil {
		return rep, false, fmt.Errorf("pipeline process: %w", err)
	}
	snapshot := pattern.NewSet(all)
	session := ingest.NewSession(p.Patterns, snapshot)

	for _, line := range strings.Split(rec.Log, "\n") {
		if err := ctx.Err(); err != nil {
			return rep, false, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		rep.Lines++

		if match := classifier.First(line, snapshot); match != nil {
			rep.Matched++
			continue
		}

		if p.Oracle == nil {
			rep.Unmatched++
			continue
		}
		p.suggest(ctx, line, session, &rep)
	}

	if err := p.Logs.MarkProcessed(rec.ID); err != nil {
		return rep, false, fmt.Errorf("pipeline process: %w", err)
	}

	slog.Info("log processed",
		"log_id", rec.ID,
		"packet", rec.PacketName,
		"lines", rep.Lines,
		"matched", rep.Matched,
		"ingested", rep.Ingested)
	return rep, true, nil
}

// suggest consults the oracle for an unmatched line and tries to ingest the
// result. Oracle suggestions carry no error classification; new patterns
// enter with is_error=false and need_reviewing=true, and a reviewer decides.
func (p *Processor) suggest(ctx context.Context, line string, session *ingest.Session, rep *ProcessReport) {
	sug, err := p.Oracle.Suggest(ctx, line)
	if err != nil {
		rep.OracleErrors++
		rep.Unmatched++
		slog.Warn("oracle suggestion failed", "error", err)
		return
	}

	res, err := session.Propose(ingest.Proposal{
		Regex:       sug.Regex,
		UtilityName: sug.UtilityName,
		IsError:     false,
		Source:      ingest.SourceOracle,
		TriggerLine: line,
	})
	switch {
	case errors.Is(err, ingest.ErrInvalidRegex), errors.Is(err, ingest.ErrNoMatch):
		rep.Unmatched++
		slog.Warn("oracle suggestion rejected", "regex", sug.Regex, "error", err)
	case err != nil:
		rep.Unmatched++
		slog.Warn("pattern ingestion failed", "regex", sug.Regex, "error", err)
	case res.Created:
		rep.Ingested++
	default:
		rep.Duplicates++
	}
}

// Run processes unprocessed logs until none remain or the context ends.
func (p *Processor) Run(ctx context.Context) ([]ProcessReport, error) {
	var reports []ProcessReport
	for {
		rep, ok, err := p.ProcessOne(ctx)
		if err != nil {
			return reports, err
		}
		if !ok {
			return reports, nil
		}
		reports = append(reports, rep)
	}
}
