package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/crimson-sun/sawmill/internal/model"
	"github.com/crimson-sun/sawmill/internal/output"
)

// Output writes JSON-encoded embedding records to stdout.
type Output struct {
	enc    *json.Encoder
	legend bool
}

// New creates a stdout Output. legend keeps the utility-name legend on each
// record; pretty switches to indented JSON.
func New(legend, pretty bool) *Output {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return &Output{enc: enc, legend: legend}
}

func (o *Output) Write(_ context.Context, rec model.EmbeddingRecord) error {
	formatted := output.FormatRecord(rec, o.legend)
	if err := o.enc.Encode(formatted); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
