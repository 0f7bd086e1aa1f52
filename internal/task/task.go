// Package task implements the asynchronous task protocol layered on top of
// the REST API.
//
// Long-running operations are submitted with async_query=true; the backend
// answers immediately with a task id instead of the final result. The caller
// polls the task status snapshot until the id moves from pending to
// completed, then fetches the result exactly once: the backend frees task
// state on the first successful fetch.
package task

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/foliohq/folioclient/internal/encoding"
	"github.com/foliohq/folioclient/internal/envelope"
)

// AsyncParam is the wire parameter that switches an endpoint to asynchronous
// mode.
const AsyncParam = "asyncQuery"

// PendingTask identifies a backend-side asynchronous job. It is created by a
// submit call, consumed by polling, and never mutated.
type PendingTask struct {
	TaskID int `json:"taskId"`
}

// StatusSnapshot is the polled view of backend task state. The client only
// reads it; ordering within the sequences is backend-owned.
type StatusSnapshot struct {
	Pending   []int `json:"pending"`
	Completed []int `json:"completed"`
}

// IsPending reports whether the task id is still running.
func (s *StatusSnapshot) IsPending(id int) bool {
	return contains(s.Pending, id)
}

// IsCompleted reports whether the task id is ready to fetch.
func (s *StatusSnapshot) IsCompleted(id int) bool {
	return contains(s.Completed, id)
}

func contains(ids []int, id int) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// resultWrapper is the body of GET /tasks/{id}: the task's eventual output
// is itself a response envelope under "outcome".
type resultWrapper struct {
	Outcome json.RawMessage `json:"outcome"`
}

// TaskNotFoundError reports a task id the backend no longer recognizes:
// already consumed, or never existed. It is not retried automatically.
type TaskNotFoundError struct {
	TaskID int
}

// Error implements the error interface.
func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.TaskID)
}

// Is checks if the error matches the target.
func (e *TaskNotFoundError) Is(target error) bool {
	_, ok := target.(*TaskNotFoundError)
	return ok
}

// ErrNoResult reports a completed task whose envelope lacks an outcome. That
// is a backend contract violation and is always surfaced.
var ErrNoResult = errors.New("no result in task response")

// ErrPollExhausted reports that a poll policy ran out of attempts before the
// task completed.
var ErrPollExhausted = errors.New("task polling attempts exhausted")

// ParsePending decodes a submit call's unwrapped result into a PendingTask.
// The transform step has already camel-cased the wire keys.
func ParsePending(raw json.RawMessage) (PendingTask, error) {
	var pending PendingTask
	if err := encoding.UnmarshalJSON(raw, &pending); err != nil {
		return PendingTask{}, fmt.Errorf("parse pending task: %w", err)
	}
	if pending.TaskID == 0 {
		return PendingTask{}, fmt.Errorf("parse pending task: missing task id")
	}
	return pending, nil
}

// unwrapOutcome extracts and unwraps the outcome envelope from a transformed
// task result body. statusCode annotates the error when the outcome reports
// a failure.
func unwrapOutcome(transformed []byte, statusCode int) (json.RawMessage, error) {
	var wrapper resultWrapper
	if err := encoding.UnmarshalJSON(transformed, &wrapper); err != nil {
		return nil, fmt.Errorf("parse task result: %w", err)
	}
	if !envelope.Present(wrapper.Outcome) {
		return nil, ErrNoResult
	}

	var outcome envelope.Response
	if err := encoding.UnmarshalJSON(wrapper.Outcome, &outcome); err != nil {
		return nil, fmt.Errorf("parse task outcome: %w", err)
	}
	return outcome.Unwrap(statusCode)
}
