// Package oracle asks an external chat-completion service to propose a
// candidate pattern for a log line no stored pattern matched. The engine
// only validates and ingests what the oracle returns; any oracle failure is
// "no suggestion available", never fatal to the overall run, and the core
// never retries internally.
package oracle

import (
	"context"
	"errors"

	"github.com/crimson-sun/sawmill/internal/model"
)

// ErrUnavailable covers transport-level failures: the service cannot be
// reached or answered with a non-2xx status. Retryable by the caller.
var ErrUnavailable = errors.New("oracle unavailable")

// ErrMalformed covers structural failures: the service answered, but the
// reply could not be decoded into a suggestion.
var ErrMalformed = errors.New("oracle returned malformed response")

// Oracle proposes candidate patterns for unmatched lines.
type Oracle interface {
	Suggest(ctx context.Context, line string) (model.Suggestion, error)
}
