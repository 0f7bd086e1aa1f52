// Package encoding provides JSON encoding helpers tuned for the backend wire
// protocol.
package encoding

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Common encoding errors.
var (
	// ErrNilValue indicates that the value to encode is nil.
	ErrNilValue = errors.New("value is nil")

	// ErrEncodingFailed indicates an encoding failure.
	ErrEncodingFailed = errors.New("encoding failed")

	// ErrDecodingFailed indicates a decoding failure.
	ErrDecodingFailed = errors.New("decoding failed")
)

// MarshalJSON encodes the value to JSON bytes.
func MarshalJSON(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, ErrNilValue
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingFailed, err)
	}

	// Remove trailing newline added by encoder
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}

	return result, nil
}

// UnmarshalJSON decodes JSON bytes into the value. Numbers decode as
// json.Number so that large integers the backend stringifies for precision
// survive the round trip.
func UnmarshalJSON(data []byte, v interface{}) error {
	if len(data) == 0 {
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingFailed, err)
	}

	return nil
}
