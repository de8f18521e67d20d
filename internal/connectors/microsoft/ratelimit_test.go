package microsoft

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter(t *testing.T) {
	tests := []struct {
		name    string
		service ServiceType
	}{
		{name: "presence", service: ServicePresence},
		{name: "profile", service: ServiceProfile},
		{name: "unknown service", service: ServiceType("unknown")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(tt.service)
			require.NotNil(t, rl)
			assert.NotNil(t, rl.limiter)
			assert.Equal(t, tt.service, rl.Service())
		})
	}
}

func TestNewRateLimiterWithConfig(t *testing.T) {
	rl := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10})

	require.NotNil(t, rl)
	assert.NotNil(t, rl.limiter)
}

func TestRateLimiter_Wait(t *testing.T) {
	rl := NewRateLimiter(ServicePresence)

	assert.NoError(t, rl.Wait(context.Background()))
}

func TestRateLimiter_Wait_ContextCancelled(t *testing.T) {
	rl := NewRateLimiter(ServicePresence)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, rl.Wait(ctx), context.Canceled)
}

func TestRateLimiter_Wait_DuringBackoff(t *testing.T) {
	rl := NewRateLimiter(ServicePresence)
	rl.RecordRateLimitError(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, rl.Wait(ctx), context.DeadlineExceeded)
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(ServicePresence)

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow(), "request %d should be allowed", i)
	}
}

func TestRateLimiter_RecordRateLimitError(t *testing.T) {
	rl := NewRateLimiter(ServicePresence)

	rl.RecordRateLimitError(200 * time.Millisecond)
	assert.False(t, rl.Allow())

	time.Sleep(300 * time.Millisecond)
	assert.True(t, rl.Allow())
}

func TestRateLimiter_RecordRateLimitError_DefaultBackoff(t *testing.T) {
	for _, retryAfter := range []time.Duration{0, -5 * time.Second} {
		rl := NewRateLimiter(ServicePresence)

		rl.RecordRateLimitError(retryAfter)

		assert.WithinDuration(t, time.Now().Add(60*time.Second), rl.RetryAt(), 2*time.Second)
	}
}

func TestDefaultRateLimits(t *testing.T) {
	for _, service := range []ServiceType{ServicePresence, ServiceProfile} {
		cfg, ok := DefaultRateLimits[service]
		assert.True(t, ok, "missing rate limit config for %s", service)
		assert.Greater(t, cfg.RequestsPerSecond, 0.0)
		assert.Greater(t, cfg.BurstSize, 0)
	}
}
