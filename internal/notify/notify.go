// Package notify subscribes to the backend's websocket notification stream.
//
// The backend pushes messages over /ws/ as {"type": ..., "data": ...}; the
// subscriber decodes the types the client understands and forwards them on a
// channel. The connection is re-established with decorrelated-jitter backoff
// until the subscriber is stopped.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/foliohq/folioclient/internal/backoff"
	"github.com/foliohq/folioclient/internal/encoding"
	"github.com/foliohq/folioclient/internal/metrics"
	"github.com/foliohq/folioclient/internal/observability"
	"github.com/foliohq/folioclient/internal/wirecase"
)

// MessageType discriminates the notification payloads.
type MessageType string

const (
	// TypeBalanceSnapshotError reports a failed periodic balance save.
	TypeBalanceSnapshotError MessageType = "balances_snapshot_error"

	// TypePremiumStatusUpdate reports a premium subscription state change.
	TypePremiumStatusUpdate MessageType = "premium_status_update"

	// TypeDatabaseUploadResult reports the outcome of a premium database
	// upload.
	TypeDatabaseUploadResult MessageType = "database_upload_result"
)

// Message is one decoded notification. Data keys are already camelCased;
// unrecognized types are forwarded with raw Data so callers can ignore or
// log them.
type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data"`
}

// BalanceSnapshotError is the payload of TypeBalanceSnapshotError.
type BalanceSnapshotError struct {
	Location string `json:"location"`
	Error    string `json:"error"`
}

// PremiumStatusUpdate is the payload of TypePremiumStatusUpdate.
type PremiumStatusUpdate struct {
	IsPremiumActive bool `json:"isPremiumActive"`
	ExpiredReminder bool `json:"expiredReminder"`
}

// DatabaseUploadResult is the payload of TypeDatabaseUploadResult.
type DatabaseUploadResult struct {
	Uploaded bool   `json:"uploaded"`
	Message  string `json:"message"`
}

// Options configures a Subscriber.
type Options struct {
	// ReconnectInitial is the first reconnect delay after a drop.
	ReconnectInitial time.Duration

	// ReconnectMax caps the reconnect delay.
	ReconnectMax time.Duration

	Logger  observability.Logger
	Metrics *metrics.Metrics
}

// Subscriber maintains the notification stream for one backend.
type Subscriber struct {
	wsURL   string
	backoff backoff.Backoff
	logger  observability.Logger
	metrics *metrics.Metrics

	messages chan Message
}

// NewSubscriber creates a subscriber for the backend at serverURL. The
// websocket endpoint is derived from the REST base URL.
func NewSubscriber(serverURL string, opts Options) (*Subscriber, error) {
	wsURL, err := websocketURL(serverURL)
	if err != nil {
		return nil, err
	}

	initial := opts.ReconnectInitial
	if initial <= 0 {
		initial = time.Second
	}
	max := opts.ReconnectMax
	if max <= 0 {
		max = time.Minute
	}

	logger := opts.Logger
	if logger == nil {
		logger = observability.NopLogger()
	}

	return &Subscriber{
		wsURL:    wsURL,
		backoff:  backoff.NewDecorrelatedJitterBackoff(initial, max),
		logger:   logger,
		metrics:  opts.Metrics,
		messages: make(chan Message, 64),
	}, nil
}

// Messages returns the notification channel. It is closed when Run returns.
func (s *Subscriber) Messages() <-chan Message {
	return s.messages
}

// Run connects and pumps notifications until ctx is cancelled. Dropped
// connections are re-dialed with backoff; the backoff resets after any
// successful connect.
func (s *Subscriber) Run(ctx context.Context) {
	defer close(s.messages)

	attempt := 0
	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := s.dial(ctx)
		if err != nil {
			s.logger.Debug("notification dial failed",
				observability.String("url", s.wsURL),
				observability.Error(err),
			)
			if !s.wait(ctx, attempt) {
				return
			}
			attempt++
			continue
		}

		s.backoff.Reset()
		attempt = 0
		s.pump(ctx, conn)
	}
}

// dial opens one websocket connection. Failed dials are not reconnects; the
// metric counts only drops of an established connection.
func (s *Subscriber) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, s.wsURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", s.wsURL, err)
	}
	return conn, nil
}

// pump reads messages until the connection drops or ctx is cancelled.
func (s *Subscriber) pump(ctx context.Context, conn *websocket.Conn) {
	defer func() { _ = conn.Close() }()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				s.logger.Debug("notification stream dropped",
					observability.Error(err),
				)
				s.metrics.RecordWSReconnect()
			}
			return
		}

		msg, err := decodeMessage(payload)
		if err != nil {
			s.logger.Warn("undecodable notification",
				observability.Error(err),
			)
			continue
		}

		select {
		case s.messages <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// wait sleeps the backoff delay before the given reconnect attempt.
func (s *Subscriber) wait(ctx context.Context, attempt int) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(s.backoff.Next(attempt)):
		return true
	}
}

// decodeMessage camel-cases the wire payload and splits out the type tag.
func decodeMessage(payload []byte) (Message, error) {
	transformed, err := wirecase.TransformJSON(payload, wirecase.NoNumericKeys)
	if err != nil {
		return Message{}, fmt.Errorf("transform notification: %w", err)
	}

	var msg Message
	if err := encoding.UnmarshalJSON(transformed, &msg); err != nil {
		return Message{}, fmt.Errorf("parse notification: %w", err)
	}
	if msg.Type == "" {
		return Message{}, fmt.Errorf("notification without type")
	}
	return msg, nil
}

// websocketURL derives the /ws/ endpoint from the REST base URL.
func websocketURL(serverURL string) (string, error) {
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("parse server URL: %w", err)
	}

	switch parsed.Scheme {
	case "http":
		parsed.Scheme = "ws"
	case "https":
		parsed.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}

	return parsed.JoinPath("/ws/").String(), nil
}
