package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       LogConfig
		expectErr bool
	}{
		{
			name: "json format",
			cfg:  LogConfig{Level: "info", Format: "json"},
		},
		{
			name: "console format",
			cfg:  LogConfig{Level: "debug", Format: "console"},
		},
		{
			name: "stdout output",
			cfg:  LogConfig{Level: "warn", Format: "json", Output: "stdout"},
		},
		{
			name:      "invalid level",
			cfg:       LogConfig{Level: "verbose"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, logger)
		})
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestIDFromContext(ctx))

	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestGlobalLogger(t *testing.T) {
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	logger := NopLogger()
	SetGlobalLogger(logger)
	assert.Equal(t, logger, L())
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()

	assert.NotPanics(t, func() {
		logger.Debug("debug")
		logger.Info("info")
		logger.Warn("warn")
		logger.Error("error")
		logger.With(String("k", "v")).Info("with")
		logger.WithContext(context.Background()).Info("ctx")
		_ = logger.Sync()
	})
}

func TestLoggerWithContext(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)

	ctx := ContextWithRequestID(context.Background(), "req-9")
	assert.NotPanics(t, func() {
		logger.WithContext(ctx).Info("request log")
	})
}
