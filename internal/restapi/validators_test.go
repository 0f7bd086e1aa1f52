package restapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValidators(t *testing.T) {
	tests := []struct {
		name      string
		validator StatusValidator
		accepted  []int
		rejected  []int
	}{
		{
			name:      "AcceptSuccess",
			validator: AcceptSuccess,
			accepted:  []int{200, 201, 204, 299},
			rejected:  []int{300, 301, 400, 401, 404, 409, 500},
		},
		{
			name:      "AcceptWithoutSession",
			validator: AcceptWithoutSession,
			accepted:  []int{200, 204, 401},
			rejected:  []int{300, 400, 403, 409, 500},
		},
		{
			name:      "AcceptSyncConflict",
			validator: AcceptSyncConflict,
			accepted:  []int{200, 300},
			rejected:  []int{301, 400, 401, 409, 500},
		},
		{
			name:      "AcceptAlreadyInState",
			validator: AcceptAlreadyInState,
			accepted:  []int{200, 409},
			rejected:  []int{300, 400, 401, 404, 500},
		},
		{
			name:      "AcceptTaskQuery",
			validator: AcceptTaskQuery,
			accepted:  []int{200, 404},
			rejected:  []int{300, 400, 401, 409, 500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, status := range tt.accepted {
				assert.True(t, tt.validator(status), "status %d should be accepted", status)
			}
			for _, status := range tt.rejected {
				assert.False(t, tt.validator(status), "status %d should be rejected", status)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		status   int
		expected OutcomeKind
	}{
		{status: 200, expected: OutcomeSuccess},
		{status: 204, expected: OutcomeSuccess},
		{status: 300, expected: OutcomeConflict},
		{status: 409, expected: OutcomeAlreadyInState},
		{status: 400, expected: OutcomeFailure},
		{status: 500, expected: OutcomeFailure},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Classify(tt.status), "status %d", tt.status)
	}
}

func TestOutcomeKind_String(t *testing.T) {
	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "conflict", OutcomeConflict.String())
	assert.Equal(t, "already_in_state", OutcomeAlreadyInState.String())
	assert.Equal(t, "failure", OutcomeFailure.String())
	assert.Equal(t, "unknown", OutcomeKind(99).String())
}
