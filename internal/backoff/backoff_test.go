package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponentialBackoff(t *testing.T) {
	b := NewExponentialBackoff(100*time.Millisecond, time.Second, 2.0, 0)

	assert.Equal(t, 100*time.Millisecond, b.Next(0))
	assert.Equal(t, 200*time.Millisecond, b.Next(1))
	assert.Equal(t, 400*time.Millisecond, b.Next(2))
	assert.Equal(t, time.Second, b.Next(10), "growth is capped at max")
	assert.Equal(t, 100*time.Millisecond, b.Next(-1), "negative attempt treated as zero")
}

func TestExponentialBackoff_Jitter(t *testing.T) {
	b := NewExponentialBackoff(100*time.Millisecond, time.Second, 2.0, 0.5)

	for attempt := 0; attempt < 5; attempt++ {
		d := b.Next(attempt)
		assert.GreaterOrEqual(t, d, time.Duration(0))
		assert.LessOrEqual(t, d, 1500*time.Millisecond)
	}
}

func TestConstantBackoff(t *testing.T) {
	b := NewConstantBackoff(2 * time.Second)

	for attempt := 0; attempt < 3; attempt++ {
		assert.Equal(t, 2*time.Second, b.Next(attempt))
	}
}

func TestDecorrelatedJitterBackoff(t *testing.T) {
	b := NewDecorrelatedJitterBackoff(100*time.Millisecond, time.Second)

	assert.Equal(t, 100*time.Millisecond, b.Next(0))

	for attempt := 1; attempt < 10; attempt++ {
		d := b.Next(attempt)
		assert.GreaterOrEqual(t, d, 100*time.Millisecond)
		assert.LessOrEqual(t, d, time.Second)
	}

	b.Reset()
	assert.Equal(t, 100*time.Millisecond, b.Next(0))
}

func TestNewFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected interface{}
	}{
		{
			name:     "nil config falls back to defaults",
			config:   nil,
			expected: &ConstantBackoff{},
		},
		{
			name:     "exponential",
			config:   &Config{Type: TypeExponential, InitialInterval: time.Second, MaxInterval: time.Minute, Multiplier: 2},
			expected: &ExponentialBackoff{},
		},
		{
			name:     "constant",
			config:   &Config{Type: TypeConstant, InitialInterval: time.Second},
			expected: &ConstantBackoff{},
		},
		{
			name:     "decorrelated jitter",
			config:   &Config{Type: TypeDecorrelatedJitter, InitialInterval: time.Second, MaxInterval: time.Minute},
			expected: &DecorrelatedJitterBackoff{},
		},
		{
			name:     "unknown type falls back to constant",
			config:   &Config{Type: Type("bogus"), InitialInterval: time.Second},
			expected: &ConstantBackoff{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromConfig(tt.config)
			require.NotNil(t, b)
			assert.IsType(t, tt.expected, b)
		})
	}
}
