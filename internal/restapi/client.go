package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"github.com/foliohq/folioclient/internal/encoding"
	"github.com/foliohq/folioclient/internal/envelope"
	"github.com/foliohq/folioclient/internal/metrics"
	"github.com/foliohq/folioclient/internal/observability"
	"github.com/foliohq/folioclient/internal/util"
	"github.com/foliohq/folioclient/internal/wirecase"
)

const (
	// apiPrefix is the version prefix shared by every REST endpoint.
	apiPrefix = "/api/1"

	// maxResponseBytes bounds response bodies read into memory.
	maxResponseBytes = 64 << 20

	// DefaultTimeout is the uniform per-request budget when the options
	// leave it unset.
	DefaultTimeout = 30 * time.Second
)

// Options configures a Client.
type Options struct {
	// Timeout is the uniform per-request budget. Zero means DefaultTimeout.
	Timeout time.Duration

	// RateLimit is the maximum request rate per second. Zero disables
	// rate limiting.
	RateLimit float64

	// BreakerEnabled wraps dispatch in a circuit breaker so a wedged
	// backend sheds load quickly.
	BreakerEnabled bool

	Logger  observability.Logger
	Metrics *metrics.Metrics
}

// Client is the shared transport for the backend REST API. It owns exactly
// one HTTP client and one CancelGroup; replacing the backend URL means
// constructing a fresh Client, never mutating this one.
type Client struct {
	serverURL string
	baseURL   *url.URL
	http      *http.Client
	group     *CancelGroup
	logger    observability.Logger
	metrics   *metrics.Metrics
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
}

// Response is a validated transport response, ready for envelope unwrapping.
type Response struct {
	StatusCode int
	Body       []byte
}

// NewClient creates a transport for the backend at serverURL.
func NewClient(serverURL string, opts Options) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(serverURL, "/"))
	if err != nil {
		return nil, util.NewConfigErrorWithCause("server.url", "invalid backend URL", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, util.NewConfigError("server.url", "backend URL must be absolute")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = observability.NopLogger()
	}

	c := &Client{
		serverURL: parsed.String(),
		baseURL:   parsed.JoinPath(apiPrefix),
		http:      &http.Client{Timeout: timeout},
		group:     NewCancelGroup(),
		logger:    logger,
		metrics:   opts.Metrics,
	}

	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	if opts.BreakerEnabled {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "backend",
			Timeout: 10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Info("circuit breaker state change",
					observability.String("name", name),
					observability.String("from", from.String()),
					observability.String("to", to.String()),
				)
			},
		})
	}

	return c, nil
}

// ServerURL returns the backend base URL this client talks to.
func (c *Client) ServerURL() string {
	return c.serverURL
}

// Group returns the session's cancellation group.
func (c *Client) Group() *CancelGroup {
	return c.group
}

// CancelAll abandons every in-flight request and resets the session token.
func (c *Client) CancelAll() {
	c.group.CancelAll()
}

// Do dispatches a call and returns the response once its status code passed
// the call's validator. The envelope is not unwrapped; use DoResult for that.
func (c *Client) Do(ctx context.Context, call Call) (*Response, error) {
	reqCtx, generation, release := c.group.Join(ctx)
	defer release()

	if c.limiter != nil {
		if err := c.limiter.Wait(reqCtx); err != nil {
			return nil, c.sessionErr(generation, err)
		}
	}

	requestID := uuid.NewString()
	reqCtx = observability.ContextWithRequestID(reqCtx, requestID)

	reqCtx, span := observability.StartSpan(reqCtx, call.Method+" "+call.Path,
		attribute.String("http.request.method", call.Method),
		attribute.String("url.path", apiPrefix+call.Path),
	)

	resp, err := c.dispatch(reqCtx, call, requestID, generation)
	observability.EndSpan(span, err)
	return resp, err
}

// DoResult dispatches a call and unwraps the response envelope, returning
// the raw result and the HTTP status code.
func (c *Client) DoResult(ctx context.Context, call Call) (json.RawMessage, int, error) {
	resp, err := c.Do(ctx, call)
	if err != nil {
		return nil, 0, err
	}

	raw, err := envelope.Unwrap(resp.StatusCode, resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return raw, resp.StatusCode, nil
}

// dispatch shapes, sends, and validates one request.
func (c *Client) dispatch(ctx context.Context, call Call, requestID string, generation context.Context) (*Response, error) {
	reqURL := c.baseURL.JoinPath(call.Path)
	if len(call.Params) > 0 {
		reqURL.RawQuery = queryValues(call.Params).Encode()
	}

	var bodyReader io.Reader
	if call.Body != nil {
		payload, err := wirecase.ToWireJSON(call.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, reqURL.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	done := c.metrics.RequestStarted()
	start := time.Now()
	resp, err := c.roundTrip(req)
	done()
	if err != nil {
		return nil, c.sessionErr(generation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.sessionErr(generation, fmt.Errorf("read response body: %w", err))
	}

	elapsed := time.Since(start)
	c.metrics.RecordRequest(call.Method, call.Path, resp.StatusCode, elapsed)
	c.logger.WithContext(ctx).Debug("backend call",
		observability.String("method", call.Method),
		observability.String("path", call.Path),
		observability.Int("status", resp.StatusCode),
		observability.Duration("elapsed", elapsed),
	)

	if !call.acceptStatus(resp.StatusCode) {
		return nil, &RequestError{
			Method:     call.Method,
			Path:       call.Path,
			StatusCode: resp.StatusCode,
			Message:    envelopeMessage(body),
		}
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// roundTrip sends the request, optionally through the circuit breaker. A 5xx
// answer counts as a breaker failure but still flows to the validator like
// any other status.
func (c *Client) roundTrip(req *http.Request) (*http.Response, error) {
	if c.breaker == nil {
		return c.http.Do(req)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, util.NewServerError(resp.StatusCode)
		}
		return resp, nil
	})

	resp, _ := result.(*http.Response)

	var srvErr *util.ServerError
	if errors.As(err, &srvErr) && resp != nil {
		return resp, nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, util.ErrCircuitOpen
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// sessionErr maps failures caused by session teardown to ErrCancelled.
func (c *Client) sessionErr(generation context.Context, err error) error {
	if generation.Err() != nil {
		c.metrics.RecordCancellation()
		return ErrCancelled
	}
	return err
}

// envelopeMessage extracts the backend message from a rejected response body
// so transport errors stay readable. Returns "" for non-envelope bodies.
func envelopeMessage(body []byte) string {
	var resp envelope.Response
	if err := encoding.UnmarshalJSON(body, &resp); err != nil {
		return ""
	}
	return resp.Message
}
