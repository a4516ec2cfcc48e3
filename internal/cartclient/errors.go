package cartclient

import (
	"errors"
	"fmt"
)

// NetworkError is a transport failure or a non-success HTTP status from the
// cart resource. Callers decide whether and how to retry; the client never
// does.
type NetworkError struct {
	Op     string // "fetch", "add", "change"
	Status int    // 0 for transport failures
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("cart %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("cart %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError is a structured rejection from the add endpoint, e.g.
// insufficient stock. Description is the human-readable reason reported by
// the backend.
type ValidationError struct {
	Description string
	Status      int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("cart add rejected: %s", e.Description)
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
// The rejection description, if needed, comes from errors.As directly.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
