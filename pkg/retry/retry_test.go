package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry_Success(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		MaxAttempts:  3,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
		Multiplier:   2.0,
		AddJitter:    false, // Disable for predictable tests
	}

	attempts := 0
	err := Do(ctx, cfg, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient error")
		}
		return nil // Success on third attempt
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		MaxAttempts:  3,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
		Multiplier:   2.0,
		AddJitter:    false,
	}

	attempts := 0
	err := Do(ctx, cfg, func() error {
		attempts++
		return errors.New("persistent error")
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
	assert.Equal(t, 3, attempts)
}

func TestRetry_NonRetryable(t *testing.T) {
	ctx := context.Background()

	base := errors.New("bad input")
	attempts := 0
	err := Do(ctx, DefaultConfig(), func() error {
		attempts++
		return NonRetryable(base)
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts, "non-retryable error should fail fast")
	assert.True(t, IsNonRetryable(err))
	assert.ErrorIs(t, err, base)
}

func TestRetry_NonRetryableNil(t *testing.T) {
	assert.Nil(t, NonRetryable(nil))
	assert.False(t, IsNonRetryable(nil))
}

func TestRetry_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{
		MaxAttempts:  5,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     1 * time.Second,
		Multiplier:   2.0,
		AddJitter:    false,
	}

	attempts := 0
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel() // Cancel during retry
	}()

	err := Do(ctx, cfg, func() error {
		attempts++
		return errors.New("error")
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "retry cancelled")
	assert.Less(t, attempts, 5) // Should not complete all attempts
}

func TestRetry_BackoffTiming(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		MaxAttempts:  4,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
		Multiplier:   2.0,
		AddJitter:    false,
	}

	start := time.Now()
	attempts := 0

	_ = Do(ctx, cfg, func() error {
		attempts++
		return errors.New("error")
	})

	elapsed := time.Since(start)

	// Delays: 10ms + 20ms + 40ms = 70ms minimum
	assert.Equal(t, 4, attempts)
	assert.GreaterOrEqual(t, elapsed, 70*time.Millisecond)
}

func TestRetry_InvalidConfig(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative initial delay", Config{InitialDelay: -1}},
		{"negative max delay", Config{MaxDelay: -1}},
		{"negative multiplier", Config{Multiplier: -1}},
		{"max delay below initial", Config{InitialDelay: time.Second, MaxDelay: time.Millisecond}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Do(ctx, test.cfg, func() error { return nil })
			assert.Error(t, err)
		})
	}
}

func TestRetry_ZeroConfigRunsOnce(t *testing.T) {
	ctx := context.Background()

	attempts := 0
	err := Do(ctx, Config{MaxAttempts: 0, AddJitter: false}, func() error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDoWithResult(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		MaxAttempts:  3,
		InitialDelay: 5 * time.Millisecond,
		MaxDelay:     50 * time.Millisecond,
		Multiplier:   2.0,
		AddJitter:    false,
	}

	attempts := 0
	result, err := DoWithResult(ctx, cfg, func() (string, error) {
		attempts++
		if attempts < 2 {
			return "", errors.New("not yet")
		}
		return "ready", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ready", result)
	assert.Equal(t, 2, attempts)
}

func TestPresets(t *testing.T) {
	assert.Equal(t, 3, DefaultConfig().MaxAttempts)
	assert.Equal(t, 10, Quick().MaxAttempts)
	assert.Equal(t, 30, Persistent().MaxAttempts)
}
