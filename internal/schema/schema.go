// Package schema defines the structurally validated shapes returned by the
// backend. Decoding happens after the wire transform, so every json tag here
// is camelCase. Validation is the last step before a value reaches a caller.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/foliohq/folioclient/internal/encoding"
)

// Validatable is implemented by every schema type.
type Validatable interface {
	Validate() error
}

// ValidationError reports a backend payload that decoded but does not satisfy
// the schema's structural invariants.
type ValidationError struct {
	Schema string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s payload: %s", e.Schema, e.Reason)
}

// Is checks if the error matches the target.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

func invalid(schema, format string, args ...interface{}) error {
	return &ValidationError{Schema: schema, Reason: fmt.Sprintf(format, args...)}
}

// Decode unmarshals a transformed result into v and validates it.
func Decode(raw json.RawMessage, v Validatable) error {
	if err := encoding.UnmarshalJSON(raw, v); err != nil {
		return &ValidationError{Schema: fmt.Sprintf("%T", v), Reason: err.Error()}
	}
	return v.Validate()
}
