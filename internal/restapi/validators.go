package restapi

import "net/http"

// StatusValidator decides whether a status code is acceptable for a call and
// may continue to envelope unwrapping. Rejected statuses fail at the
// transport with a RequestError before the envelope is ever inspected.
//
// The backend overloads status codes with domain semantics (conflict
// resolution, idempotent no-ops); keeping the acceptance policy here keeps
// the taxonomy in one auditable place instead of scattering magic numbers
// through call sites.
type StatusValidator func(status int) bool

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// AcceptSuccess accepts 2xx only.
func AcceptSuccess(status int) bool {
	return isSuccess(status)
}

// AcceptWithoutSession accepts 2xx and 401, for calls that are valid whether
// or not a user is logged in.
func AcceptWithoutSession(status int) bool {
	return isSuccess(status) || status == http.StatusUnauthorized
}

// AcceptSyncConflict accepts 2xx and 300. The backend reports a resolvable
// premium sync conflict as 300 with a structured payload; it is conditional
// success, not an error.
func AcceptSyncConflict(status int) bool {
	return isSuccess(status) || status == http.StatusMultipleChoices
}

// AcceptAlreadyInState accepts 2xx and 409, for idempotent operations where
// the resource is already in the target state (e.g. logging out a user who
// is not logged in).
func AcceptAlreadyInState(status int) bool {
	return isSuccess(status) || status == http.StatusConflict
}

// AcceptTaskQuery accepts 2xx and 404. For task queries 404 is the
// distinguished "task unknown" outcome, not a generic error.
func AcceptTaskQuery(status int) bool {
	return isSuccess(status) || status == http.StatusNotFound
}

// OutcomeKind tags the domain outcome an accepted status code encodes.
// Call sites branch on the tag instead of sniffing status numbers.
type OutcomeKind int

const (
	// OutcomeSuccess is an ordinary 2xx result.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeConflict is a 300 carrying a resolvable sync conflict payload.
	OutcomeConflict

	// OutcomeAlreadyInState is a 409 on an idempotent operation.
	OutcomeAlreadyInState

	// OutcomeFailure is any other status.
	OutcomeFailure
)

// String returns the string representation of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeConflict:
		return "conflict"
	case OutcomeAlreadyInState:
		return "already_in_state"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Classify maps an accepted status code to its outcome tag.
func Classify(status int) OutcomeKind {
	switch {
	case isSuccess(status):
		return OutcomeSuccess
	case status == http.StatusMultipleChoices:
		return OutcomeConflict
	case status == http.StatusConflict:
		return OutcomeAlreadyInState
	default:
		return OutcomeFailure
	}
}
