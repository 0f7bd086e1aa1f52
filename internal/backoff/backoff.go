// Package backoff provides wait strategies for polling loops and reconnects.
package backoff

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Backoff defines the interface for backoff strategies.
type Backoff interface {
	// Next returns the duration to wait before the next attempt.
	Next(attempt int) time.Duration

	// Reset resets the backoff state.
	Reset()
}

// ExponentialBackoff implements exponential backoff with optional jitter.
type ExponentialBackoff struct {
	initial time.Duration
	max     time.Duration
	factor  float64
	jitter  float64

	mu   sync.Mutex
	rand *rand.Rand
}

// NewExponentialBackoff creates a new exponential backoff.
func NewExponentialBackoff(initial, max time.Duration, factor, jitter float64) *ExponentialBackoff {
	return &ExponentialBackoff{
		initial: initial,
		max:     max,
		factor:  factor,
		jitter:  jitter,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec
	}
}

// Next implements Backoff.
func (b *ExponentialBackoff) Next(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	backoff := float64(b.initial) * math.Pow(b.factor, float64(attempt))

	if backoff > float64(b.max) {
		backoff = float64(b.max)
	}

	if b.jitter > 0 {
		b.mu.Lock()
		jitterRange := backoff * b.jitter
		jitterValue := (b.rand.Float64() * 2 * jitterRange) - jitterRange
		backoff += jitterValue
		b.mu.Unlock()
	}

	if backoff < 0 {
		backoff = 0
	}

	return time.Duration(backoff)
}

// Reset implements Backoff.
func (b *ExponentialBackoff) Reset() {
	// ExponentialBackoff is stateless, nothing to reset
}

// ConstantBackoff implements constant backoff.
type ConstantBackoff struct {
	interval time.Duration
}

// NewConstantBackoff creates a new constant backoff.
func NewConstantBackoff(interval time.Duration) *ConstantBackoff {
	return &ConstantBackoff{
		interval: interval,
	}
}

// Next implements Backoff.
func (b *ConstantBackoff) Next(attempt int) time.Duration {
	return b.interval
}

// Reset implements Backoff.
func (b *ConstantBackoff) Reset() {
	// ConstantBackoff is stateless, nothing to reset
}

// DecorrelatedJitterBackoff implements AWS-style decorrelated jitter backoff.
// It spreads reconnect attempts so clients that lost the same backend do not
// stampede it on recovery.
type DecorrelatedJitterBackoff struct {
	initial time.Duration
	max     time.Duration

	mu      sync.Mutex
	rand    *rand.Rand
	current time.Duration
}

// NewDecorrelatedJitterBackoff creates a new decorrelated jitter backoff.
func NewDecorrelatedJitterBackoff(initial, max time.Duration) *DecorrelatedJitterBackoff {
	return &DecorrelatedJitterBackoff{
		initial: initial,
		max:     max,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec
		current: initial,
	}
}

// Next implements Backoff.
func (b *DecorrelatedJitterBackoff) Next(attempt int) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	if attempt == 0 {
		b.current = b.initial
		return b.current
	}

	// sleep = min(cap, random_between(base, sleep * 3))
	minBackoff := float64(b.initial)
	maxBackoff := float64(b.current) * 3

	backoff := minBackoff + b.rand.Float64()*(maxBackoff-minBackoff)

	if backoff > float64(b.max) {
		backoff = float64(b.max)
	}

	b.current = time.Duration(backoff)
	return b.current
}

// Reset implements Backoff.
func (b *DecorrelatedJitterBackoff) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = b.initial
}

// Type represents the backoff strategy type.
type Type string

const (
	// TypeExponential uses exponential backoff with optional jitter.
	TypeExponential Type = "exponential"

	// TypeConstant uses constant backoff.
	TypeConstant Type = "constant"

	// TypeDecorrelatedJitter uses AWS-style decorrelated jitter backoff.
	TypeDecorrelatedJitter Type = "decorrelated_jitter"
)

// Config holds configuration for creating backoff strategies.
type Config struct {
	// Type is the backoff strategy type.
	Type Type

	// InitialInterval is the initial backoff interval.
	InitialInterval time.Duration

	// MaxInterval is the maximum backoff interval.
	MaxInterval time.Duration

	// Multiplier is the factor by which the backoff increases (exponential).
	Multiplier float64

	// Jitter is the random jitter factor (0.0 to 1.0).
	Jitter float64
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Type:            TypeConstant,
		InitialInterval: 2 * time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
		Jitter:          0.2,
	}
}

// NewFromConfig creates a Backoff from the given configuration.
func NewFromConfig(config *Config) Backoff {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Type {
	case TypeExponential:
		return NewExponentialBackoff(
			config.InitialInterval,
			config.MaxInterval,
			config.Multiplier,
			config.Jitter,
		)
	case TypeDecorrelatedJitter:
		return NewDecorrelatedJitterBackoff(
			config.InitialInterval,
			config.MaxInterval,
		)
	case TypeConstant:
		return NewConstantBackoff(config.InitialInterval)
	default:
		return NewConstantBackoff(config.InitialInterval)
	}
}
