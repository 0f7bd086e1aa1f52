package api

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/foliohq/folioclient/internal/backoff"
	"github.com/foliohq/folioclient/internal/config"
	"github.com/foliohq/folioclient/internal/encoding"
	"github.com/foliohq/folioclient/internal/envelope"
	"github.com/foliohq/folioclient/internal/metrics"
	"github.com/foliohq/folioclient/internal/observability"
	"github.com/foliohq/folioclient/internal/restapi"
	"github.com/foliohq/folioclient/internal/schema"
	"github.com/foliohq/folioclient/internal/task"
	"github.com/foliohq/folioclient/internal/wirecase"
)

// session bundles everything scoped to one backend URL. It is replaced as a
// unit: the transport, its cancellation group, and the task manager on top.
type session struct {
	rest  *restapi.Client
	tasks *task.Manager
}

// Client is the typed backend facade.
type Client struct {
	cfg     *config.ClientConfig
	logger  observability.Logger
	metrics *metrics.Metrics

	session atomic.Pointer[session]
}

// NewClient creates a facade for the backend described by cfg.
func NewClient(cfg *config.ClientConfig, logger observability.Logger, m *metrics.Metrics) (*Client, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = observability.NopLogger()
	}

	c := &Client{cfg: cfg, logger: logger, metrics: m}
	if err := c.SetServerURL(cfg.Server.URL); err != nil {
		return nil, err
	}
	return c, nil
}

// SetServerURL replaces the session for a new backend URL. The new session is
// installed atomically and everything in flight on the old one is cancelled;
// those requests fail with restapi.ErrCancelled.
func (c *Client) SetServerURL(serverURL string) error {
	rest, err := restapi.NewClient(serverURL, restapi.Options{
		Timeout:        c.cfg.Server.Timeout.Duration(),
		RateLimit:      c.cfg.Server.RateLimit,
		BreakerEnabled: c.cfg.Server.BreakerEnabled,
		Logger:         c.logger,
		Metrics:        c.metrics,
	})
	if err != nil {
		return err
	}

	next := &session{
		rest:  rest,
		tasks: task.NewManager(rest, c.logger, c.metrics),
	}

	prev := c.session.Swap(next)
	if prev != nil {
		prev.rest.CancelAll()
		c.logger.Info("backend session replaced",
			observability.String("server_url", serverURL),
		)
	}
	return nil
}

// ServerURL returns the backend URL of the current session.
func (c *Client) ServerURL() string {
	return c.session.Load().rest.ServerURL()
}

// CancelAll abandons every in-flight request on the current session.
func (c *Client) CancelAll() {
	c.session.Load().rest.CancelAll()
}

// Tasks returns the current session's task manager.
func (c *Client) Tasks() *task.Manager {
	return c.session.Load().tasks
}

// PollPolicy returns the configured default polling policy for Await calls.
func (c *Client) PollPolicy() task.PollPolicy {
	return task.PollPolicy{
		Interval:    c.cfg.Poll.Interval.Duration(),
		MaxAttempts: c.cfg.Poll.MaxAttempts,
		Backoff:     backoff.NewFromConfig(c.cfg.Poll.BackoffConfig()),
	}
}

// getRaw dispatches a call and returns the unwrapped, case-transformed
// result.
func (c *Client) getRaw(ctx context.Context, call restapi.Call, numeric wirecase.NumericKeys) (json.RawMessage, error) {
	raw, _, err := c.session.Load().rest.DoResult(ctx, call)
	if err != nil {
		return nil, err
	}
	return wirecase.TransformJSON(raw, numeric)
}

// getParsed dispatches a call and decodes the result into out, validating it.
func (c *Client) getParsed(ctx context.Context, call restapi.Call, numeric wirecase.NumericKeys, out schema.Validatable) error {
	transformed, err := c.getRaw(ctx, call, numeric)
	if err != nil {
		return err
	}
	return schema.Decode(transformed, out)
}

// unwrapTransformed unwraps a validated response's envelope and applies the
// wire transform. For call sites that need the raw status code alongside the
// result.
func unwrapTransformed(resp *restapi.Response, numeric wirecase.NumericKeys) (json.RawMessage, error) {
	raw, err := envelope.Unwrap(resp.StatusCode, resp.Body)
	if err != nil {
		return nil, err
	}
	return wirecase.TransformJSON(raw, numeric)
}

// decodeBool decodes a bare boolean result.
func decodeBool(raw json.RawMessage, out *bool) error {
	return encoding.UnmarshalJSON(raw, out)
}

// submitAsync dispatches a call in asynchronous mode and parses the pending
// task handle.
func (c *Client) submitAsync(ctx context.Context, call restapi.Call) (task.PendingTask, error) {
	if call.Params == nil {
		call.Params = map[string]interface{}{}
	}
	call.Params[task.AsyncParam] = true

	transformed, err := c.getRaw(ctx, call, wirecase.NoNumericKeys)
	if err != nil {
		return task.PendingTask{}, err
	}
	return task.ParsePending(transformed)
}
