package restapi

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned for any request in flight when the session's
// cancellation group fires. Callers must treat it as "abandoned", not as a
// user-facing failure.
var ErrCancelled = errors.New("request cancelled: session closed")

// RequestError signals a status code the call's validator rejected, or a
// response body that could not be read. It is a transport-level failure and
// is never retried at this layer.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s failed with status %d", e.Method, e.Path, e.StatusCode)
}

// Is checks if the error matches the target.
func (e *RequestError) Is(target error) bool {
	_, ok := target.(*RequestError)
	return ok
}
