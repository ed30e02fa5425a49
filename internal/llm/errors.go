package llm

import (
	"errors"
	"fmt"
)

// Kind classifies a model-call failure for the retry policy.
type Kind int

const (
	// KindFatal marks non-retryable failures: malformed requests, auth
	// problems, anything a retry cannot fix.
	KindFatal Kind = iota
	// KindRateLimit marks provider throttling.
	KindRateLimit
	// KindTransient marks timeouts, 5xx responses and network failures.
	KindTransient
)

// CallError wraps a provider failure with its retry classification.
type CallError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *CallError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("model call failed with status %d: %s", e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("model call failed: %v", e.Err)
	default:
		return "model call failed: " + e.Message
	}
}

func (e *CallError) Unwrap() error { return e.Err }

func rateLimited(status int, msg string) *CallError {
	return &CallError{Kind: KindRateLimit, StatusCode: status, Message: msg}
}

func transient(status int, msg string, err error) *CallError {
	return &CallError{Kind: KindTransient, StatusCode: status, Message: msg, Err: err}
}

func fatal(status int, msg string) *CallError {
	return &CallError{Kind: KindFatal, StatusCode: status, Message: msg}
}

// IsRateLimit reports whether err carries a rate-limit classification.
func IsRateLimit(err error) bool {
	var ce *CallError
	return errors.As(err, &ce) && ce.Kind == KindRateLimit
}

// IsTransient reports whether err carries a transient classification.
func IsTransient(err error) bool {
	var ce *CallError
	return errors.As(err, &ce) && ce.Kind == KindTransient
}
