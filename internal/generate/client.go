// Package generate provides the text-generation contract and backend adapters.
package generate

import (
	"context"
	"errors"
	"fmt"
)

// Emotion is the optional sentiment payload forwarded to the backend.
type Emotion struct {
	Total int    `json:"total"`
	Label string `json:"emotion"`
}

// Request carries one generation call.
type Request struct {
	Message   string
	Context   string
	Character string
	Emotion   *Emotion
}

// Client is the narrow generation capability every caller depends on.
// Implementations return the generated text or an error; callers treat any
// error as a failed call and never retry inside a single turn.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// StatusError reports a non-2xx backend response. Callers use it to tell
// server-side failures apart from transport or parse errors.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat backend returned status %d", e.Status)
}

// IsServerError reports whether err carries a 5xx backend status.
func IsServerError(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Status >= 500
}
