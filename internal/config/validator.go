package config

import (
	"net/url"

	"github.com/foliohq/folioclient/internal/util"
)

// ValidateConfig validates a loaded configuration.
func ValidateConfig(cfg *ClientConfig) error {
	if cfg == nil {
		return util.NewConfigError("", "configuration is nil")
	}

	if cfg.Server.URL == "" {
		return util.NewConfigError("server.url", "backend URL is required")
	}

	parsed, err := url.Parse(cfg.Server.URL)
	if err != nil {
		return util.NewConfigErrorWithCause("server.url", "invalid backend URL", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return util.NewConfigError("server.url", "backend URL scheme must be http or https")
	}
	if parsed.Host == "" {
		return util.NewConfigError("server.url", "backend URL host is required")
	}

	if cfg.Server.Timeout < 0 {
		return util.NewConfigError("server.timeout", "timeout must not be negative")
	}
	if cfg.Server.RateLimit < 0 {
		return util.NewConfigError("server.rateLimit", "rate limit must not be negative")
	}

	if cfg.Poll.Interval <= 0 {
		return util.NewConfigError("poll.interval", "poll interval must be positive")
	}
	if cfg.Poll.MaxAttempts < 0 {
		return util.NewConfigError("poll.maxAttempts", "max attempts must not be negative")
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Listen == "" {
		return util.NewConfigError("metrics.listen", "listen address is required when metrics are enabled")
	}

	return nil
}
