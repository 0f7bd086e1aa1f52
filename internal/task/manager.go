package task

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/foliohq/folioclient/internal/backoff"
	"github.com/foliohq/folioclient/internal/encoding"
	"github.com/foliohq/folioclient/internal/envelope"
	"github.com/foliohq/folioclient/internal/metrics"
	"github.com/foliohq/folioclient/internal/observability"
	"github.com/foliohq/folioclient/internal/restapi"
	"github.com/foliohq/folioclient/internal/wirecase"
)

// Manager provides the task fetch primitives: status polling and result
// retrieval. Poll cadence is the caller's concern; Await accepts it as an
// explicit PollPolicy so the orchestrator itself stays free of timing
// policy.
type Manager struct {
	rest    *restapi.Client
	logger  observability.Logger
	metrics *metrics.Metrics
}

// NewManager creates a task manager on top of the shared transport.
func NewManager(rest *restapi.Client, logger observability.Logger, m *metrics.Metrics) *Manager {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Manager{rest: rest, logger: logger, metrics: m}
}

// Status fetches the current task status snapshot.
func (m *Manager) Status(ctx context.Context) (*StatusSnapshot, error) {
	m.metrics.RecordTaskPoll()

	raw, _, err := m.rest.DoResult(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/tasks",
		Accept: restapi.AcceptSuccess,
	})
	if err != nil {
		return nil, err
	}

	var snapshot StatusSnapshot
	if err := encoding.UnmarshalJSON(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("parse task status: %w", err)
	}
	return &snapshot, nil
}

// Result fetches a completed task's outcome. The numeric allow-list is
// result-specific and therefore required: different task payloads stringify
// different fields. The backend frees the task on the first successful
// fetch, so a second fetch of the same id reports TaskNotFoundError.
func (m *Manager) Result(ctx context.Context, id int, numeric wirecase.NumericKeys) (json.RawMessage, error) {
	resp, err := m.rest.Do(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/tasks/%d", id),
		Accept: restapi.AcceptTaskQuery,
	})
	if err != nil {
		m.metrics.RecordTaskResult("transport_error")
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		m.metrics.RecordTaskResult("not_found")
		return nil, &TaskNotFoundError{TaskID: id}
	}

	raw, err := envelope.Unwrap(resp.StatusCode, resp.Body)
	if err != nil {
		m.metrics.RecordTaskResult("protocol_error")
		return nil, err
	}

	transformed, err := wirecase.TransformJSON(raw, numeric)
	if err != nil {
		m.metrics.RecordTaskResult("protocol_error")
		return nil, fmt.Errorf("transform task result: %w", err)
	}

	outcome, err := unwrapOutcome(transformed, resp.StatusCode)
	if err != nil {
		m.metrics.RecordTaskResult("failed")
		return nil, err
	}

	m.metrics.RecordTaskResult("success")
	return outcome, nil
}

// PollPolicy is the caller-supplied scheduling policy for Await.
type PollPolicy struct {
	// Interval is the base wait between polls when Backoff is nil.
	Interval time.Duration

	// MaxAttempts bounds the number of polls. Zero means unbounded; the
	// context is then the only limit.
	MaxAttempts int

	// Backoff, when set, decides the wait per attempt instead of Interval.
	Backoff backoff.Backoff
}

// next returns the wait before the given attempt.
func (p PollPolicy) next(attempt int) time.Duration {
	if p.Backoff != nil {
		return p.Backoff.Next(attempt)
	}
	if p.Interval > 0 {
		return p.Interval
	}
	return 2 * time.Second
}

// Await polls until the task completes, then fetches its result once.
// Unknown ids keep polling: a submitted task may not have reached the
// snapshot yet, and poll responses arrive in no particular order.
func (m *Manager) Await(ctx context.Context, pending PendingTask, policy PollPolicy, numeric wirecase.NumericKeys) (json.RawMessage, error) {
	for attempt := 0; policy.MaxAttempts <= 0 || attempt < policy.MaxAttempts; attempt++ {
		snapshot, err := m.Status(ctx)
		if err != nil {
			return nil, err
		}

		if snapshot.IsCompleted(pending.TaskID) {
			return m.Result(ctx, pending.TaskID, numeric)
		}

		if !snapshot.IsPending(pending.TaskID) {
			m.logger.Debug("task missing from status snapshot",
				observability.Int("task_id", pending.TaskID),
			)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(policy.next(attempt)):
		}
	}

	return nil, fmt.Errorf("%w: task %d", ErrPollExhausted, pending.TaskID)
}
