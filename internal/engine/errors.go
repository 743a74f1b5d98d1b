package engine

import "fmt"

// The engine owns the error taxonomy; model backends wrap their provider
// errors in these types so the orchestrator can classify with errors.As
// without importing provider SDKs.

// ThrottledError signals a rate-limit rejection from the model service.
// Retried exactly once with fixed backoff.
type ThrottledError struct {
	Err error
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("model service throttled: %v", e.Err)
}

func (e *ThrottledError) Unwrap() error { return e.Err }

// ServerError signals a 5xx from the model service. Same retry policy as
// throttling.
type ServerError struct {
	StatusCode int
	Err        error
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("model service error (status %d): %v", e.StatusCode, e.Err)
}

func (e *ServerError) Unwrap() error { return e.Err }

// ContentUnavailableError signals a response truncated by length or blocked
// by safety filtering, with no usable text. Never retried.
type ContentUnavailableError struct {
	Reason string // provider stop reason, e.g. "max_tokens"
}

func (e *ContentUnavailableError) Error() string {
	return fmt.Sprintf("no usable content in model response (stop reason %q)", e.Reason)
}

// MalformedResponseError signals an unexpected response shape. Never retried.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
