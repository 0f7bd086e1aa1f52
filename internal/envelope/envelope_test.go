package envelope

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		expected   string
		expectErr  bool
		errMessage string
	}{
		{
			name:       "object result",
			statusCode: 200,
			body:       `{"result": {"task_id": 7}, "message": ""}`,
			expected:   `{"task_id": 7}`,
		},
		{
			name:       "boolean result",
			statusCode: 200,
			body:       `{"result": true, "message": ""}`,
			expected:   `true`,
		},
		{
			name:       "empty list result is success",
			statusCode: 200,
			body:       `{"result": [], "message": "ignored"}`,
			expected:   `[]`,
		},
		{
			name:       "zero result is success",
			statusCode: 200,
			body:       `{"result": 0, "message": ""}`,
			expected:   `0`,
		},
		{
			name:       "false result is success",
			statusCode: 200,
			body:       `{"result": false, "message": ""}`,
			expected:   `false`,
		},
		{
			name:       "null result fails with message",
			statusCode: 400,
			body:       `{"result": null, "message": "bad"}`,
			expectErr:  true,
			errMessage: "bad",
		},
		{
			name:       "absent result fails",
			statusCode: 500,
			body:       `{"message": "boom"}`,
			expectErr:  true,
			errMessage: "boom",
		},
		{
			name:       "malformed body fails",
			statusCode: 200,
			body:       `{`,
			expectErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Unwrap(tt.statusCode, []byte(tt.body))
			if tt.expectErr {
				require.Error(t, err)
				if tt.errMessage != "" {
					var apiErr *APIError
					require.True(t, errors.As(err, &apiErr))
					assert.Equal(t, tt.errMessage, apiErr.Message)
					assert.Equal(t, tt.statusCode, apiErr.StatusCode)
				}
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(raw))
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	withMessage := &APIError{Message: "no user logged in", StatusCode: 401}
	assert.Contains(t, withMessage.Error(), "no user logged in")
	assert.Contains(t, withMessage.Error(), "401")

	withoutMessage := &APIError{StatusCode: 502}
	assert.Contains(t, withoutMessage.Error(), "502")
}

func TestAPIError_Is(t *testing.T) {
	err := error(&APIError{Message: "x", StatusCode: 400})
	assert.True(t, errors.Is(err, &APIError{}))
	assert.False(t, errors.Is(err, errors.New("other")))
}

func TestPresent(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected bool
	}{
		{name: "object", raw: `{}`, expected: true},
		{name: "empty string value", raw: `""`, expected: true},
		{name: "null", raw: `null`, expected: false},
		{name: "null with whitespace", raw: ` null `, expected: false},
		{name: "absent", raw: ``, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Present(json.RawMessage(tt.raw)))
		})
	}
}
