// Package envelope decodes the uniform {result, message} wrapper the backend
// puts around every response body.
package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/foliohq/folioclient/internal/encoding"
)

// Response is the wire envelope. Exactly one of Result (success) or a
// non-empty Message (failure) is meaningful.
type Response struct {
	Result  json.RawMessage `json:"result"`
	Message string          `json:"message"`
}

// APIError is a backend-reported failure: the envelope carried no result.
type APIError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
}

// Is checks if the error matches the target.
func (e *APIError) Is(target error) bool {
	_, ok := target.(*APIError)
	return ok
}

// Unwrap parses an envelope body and returns the raw result. Status-code
// acceptability has already been decided by the transport's validator before
// this runs; the status here only annotates the error.
func Unwrap(statusCode int, body []byte) (json.RawMessage, error) {
	var resp Response
	if err := encoding.UnmarshalJSON(body, &resp); err != nil {
		return nil, fmt.Errorf("malformed response envelope: %w", err)
	}
	return resp.Unwrap(statusCode)
}

// Unwrap returns the envelope's result, or an APIError carrying the
// backend-supplied message when the result is absent or null.
func (r *Response) Unwrap(statusCode int) (json.RawMessage, error) {
	if Present(r.Result) {
		return r.Result, nil
	}
	return nil, &APIError{Message: r.Message, StatusCode: statusCode}
}

// Present reports whether a raw result is set and not JSON null. Typed empty
// values ([], {}, "", 0, false) count as present.
func Present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
