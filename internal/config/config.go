// Package config defines and loads the client configuration.
package config

import (
	"time"

	"github.com/foliohq/folioclient/internal/backoff"
)

// ClientConfig is the root configuration for the client.
type ClientConfig struct {
	Server        ServerConfig        `yaml:"server"`
	Poll          PollConfig          `yaml:"poll"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
	Metrics       MetricsConfig       `yaml:"metrics"`
}

// ServerConfig describes how to reach the local backend process.
type ServerConfig struct {
	// URL is the backend base URL, e.g. http://127.0.0.1:4242.
	URL string `yaml:"url"`

	// Timeout is the uniform per-request budget.
	Timeout Duration `yaml:"timeout"`

	// RateLimit is the maximum request rate per second. Zero disables
	// rate limiting.
	RateLimit float64 `yaml:"rateLimit"`

	// BreakerEnabled wraps outgoing calls in a circuit breaker.
	BreakerEnabled bool `yaml:"breakerEnabled"`
}

// PollConfig describes the default task polling policy.
type PollConfig struct {
	// Interval is the base wait between task status polls.
	Interval Duration `yaml:"interval"`

	// MaxAttempts bounds the number of polls per awaited task.
	// Zero means unbounded (the caller's context is the only limit).
	MaxAttempts int `yaml:"maxAttempts"`

	// Backoff selects the wait strategy between polls.
	Backoff backoff.Type `yaml:"backoff"`

	// MaxInterval caps the wait for growing strategies.
	MaxInterval Duration `yaml:"maxInterval"`
}

// NotificationsConfig describes the websocket notification stream.
type NotificationsConfig struct {
	Enabled bool `yaml:"enabled"`

	// ReconnectInitial is the first reconnect delay after a dropped
	// connection.
	ReconnectInitial Duration `yaml:"reconnectInitial"`

	// ReconnectMax caps the reconnect delay.
	ReconnectMax Duration `yaml:"reconnectMax"`
}

// LoggingConfig describes log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// MetricsConfig describes the Prometheus endpoint exposed by folioctl.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// DefaultConfig returns a ClientConfig with default values.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Server: ServerConfig{
			URL:            "http://127.0.0.1:4242",
			Timeout:        Duration(30 * time.Second),
			RateLimit:      0,
			BreakerEnabled: true,
		},
		Poll: PollConfig{
			Interval:    Duration(2 * time.Second),
			MaxAttempts: 0,
			Backoff:     backoff.TypeConstant,
			MaxInterval: Duration(30 * time.Second),
		},
		Notifications: NotificationsConfig{
			Enabled:          true,
			ReconnectInitial: Duration(time.Second),
			ReconnectMax:     Duration(time.Minute),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  "127.0.0.1:9464",
		},
	}
}

// BackoffConfig converts the poll configuration to a backoff configuration.
func (p *PollConfig) BackoffConfig() *backoff.Config {
	return &backoff.Config{
		Type:            p.Backoff,
		InitialInterval: p.Interval.Duration(),
		MaxInterval:     p.MaxInterval.Duration(),
		Multiplier:      2.0,
		Jitter:          0.2,
	}
}
