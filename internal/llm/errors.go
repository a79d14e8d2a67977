package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrStreamInterrupted indicates a stream failed after some text had
// already been delivered. Such streams are not retried.
type ErrStreamInterrupted struct {
	Partial string
	Err     error
}

func (e *ErrStreamInterrupted) Error() string {
	return fmt.Sprintf("stream interrupted after %d bytes: %v", len(e.Partial), e.Err)
}

func (e *ErrStreamInterrupted) Unwrap() error { return e.Err }

// Describe turns an error from this package into a short message suitable
// for showing inline in the UI.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var (
		rl      *ErrRateLimit
		inv     *ErrInvalidResponse
		unavail *ErrProviderUnavailable
		maxTok  *ErrMaxTokensExceeded
		intr    *ErrStreamInterrupted
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "The AI service took too long to answer. Please try again."
	case errors.As(err, &rl):
		return "The AI service is rate limiting requests. Please wait a moment and try again."
	case errors.As(err, &maxTok):
		return "The answer was cut short by the token limit."
	case errors.As(err, &inv):
		return "The AI service returned a malformed answer. Please try again."
	case errors.As(err, &intr):
		return "The answer stream was interrupted. Please try again."
	case errors.As(err, &unavail):
		return "The AI service is unavailable. Check your API key and network."
	}
	return err.Error()
}
