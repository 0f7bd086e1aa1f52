package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folioclient/internal/metrics"
)

// wsReconnectCount reads the reconnect counter off the private registry.
func wsReconnectCount(t *testing.T, m *metrics.Metrics) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == "test_ws_reconnects_total" {
			return family.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}

func TestWebsocketURL(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{
			name:     "http to ws",
			input:    "http://127.0.0.1:4242",
			expected: "ws://127.0.0.1:4242/ws/",
		},
		{
			name:     "https to wss",
			input:    "https://backend.local",
			expected: "wss://backend.local/ws/",
		},
		{
			name:     "ws passes through",
			input:    "ws://127.0.0.1:4242",
			expected: "ws://127.0.0.1:4242/ws/",
		},
		{
			name:      "unsupported scheme",
			input:     "ftp://backend.local",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := websocketURL(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecodeMessage(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		expected  MessageType
		expectErr bool
	}{
		{
			name:     "known type with snake data",
			payload:  `{"type": "premium_status_update", "data": {"is_premium_active": true}}`,
			expected: TypePremiumStatusUpdate,
		},
		{
			name:     "unknown type still forwarded",
			payload:  `{"type": "something_new", "data": {}}`,
			expected: MessageType("something_new"),
		},
		{
			name:      "missing type",
			payload:   `{"data": {}}`,
			expectErr: true,
		},
		{
			name:      "malformed",
			payload:   `{`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := decodeMessage([]byte(tt.payload))
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, msg.Type)
		})
	}
}

func TestDecodeMessage_CamelCasesData(t *testing.T) {
	payload := `{"type": "balances_snapshot_error", "data": {"location": "kraken", "error": "timeout"}}`

	msg, err := decodeMessage([]byte(payload))
	require.NoError(t, err)
	assert.JSONEq(t, `{"location": "kraken", "error": "timeout"}`, string(msg.Data))
}

func TestSubscriber_ReceivesMessages(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ws/", r.URL.Path)
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer func() { _ = conn.Close() }()

		payload := `{"type": "database_upload_result", "data": {"uploaded": true, "message": ""}}`
		_ = conn.WriteMessage(websocket.TextMessage, []byte(payload))

		// Keep the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	sub, err := NewSubscriber(srv.URL, Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go sub.Run(ctx)

	select {
	case msg := <-sub.Messages():
		assert.Equal(t, TypeDatabaseUploadResult, msg.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("no notification received")
	}

	cancel()

	select {
	case _, open := <-sub.Messages():
		assert.False(t, open, "channel must close after Run returns")
	case <-time.After(5 * time.Second):
		t.Fatal("message channel did not close")
	}
}

func TestSubscriber_StopsWhenBackendUnreachable(t *testing.T) {
	sub, err := NewSubscriber("http://127.0.0.1:1", Options{
		ReconnectInitial: time.Millisecond,
		ReconnectMax:     5 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		sub.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}

func TestSubscriber_FailedDialsAreNotReconnects(t *testing.T) {
	m := metrics.New("test")
	sub, err := NewSubscriber("http://127.0.0.1:1", Options{
		ReconnectInitial: time.Millisecond,
		ReconnectMax:     5 * time.Millisecond,
		Metrics:          m,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	sub.Run(ctx)

	assert.Zero(t, wsReconnectCount(t, m), "dial failures must not count as reconnects")
}

func TestSubscriber_DroppedConnectionCountsReconnect(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = conn.Close()
	}))
	defer srv.Close()

	m := metrics.New("test")
	sub, err := NewSubscriber(srv.URL, Options{
		ReconnectInitial: time.Millisecond,
		ReconnectMax:     5 * time.Millisecond,
		Metrics:          m,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sub.Run(ctx)

	assert.Eventually(t, func() bool {
		return wsReconnectCount(t, m) >= 1
	}, 5*time.Second, 10*time.Millisecond, "a dropped connection must count as a reconnect")
}

func TestNewSubscriber_InvalidURL(t *testing.T) {
	_, err := NewSubscriber("ftp://backend", Options{})
	assert.Error(t, err)
}
