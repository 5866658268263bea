//go:build unit

package bol_test

import (
	"context"
	"testing"
	"time"

	"productpraat/internal/bol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterPacesBackToBackAcquires(t *testing.T) {
	const perSecond = 20.0
	const calls = 25

	limiter := bol.NewLimiter(perSecond)

	start := time.Now()
	for i := 0; i < calls; i++ {
		require.NoError(t, limiter.Acquire(context.Background()))

		tokens := limiter.Tokens()
		assert.GreaterOrEqual(t, tokens, -0.0001, "tokens must never go negative")
		assert.LessOrEqual(t, tokens, perSecond+0.0001, "tokens must never exceed capacity")
	}
	elapsed := time.Since(start)

	// Capacity covers the first 20 calls; the remaining 5 must wait for refill.
	minElapsed := time.Duration(float64(calls-int(perSecond)) / perSecond * float64(time.Second))
	assert.GreaterOrEqual(t, elapsed, minElapsed-10*time.Millisecond)
}

func TestLimiterAcquireHonorsContextCancellation(t *testing.T) {
	limiter := bol.NewLimiter(1)

	require.NoError(t, limiter.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := limiter.Acquire(ctx)
	assert.Error(t, err)
}

func TestLimiterDefaultsOnNonPositiveRate(t *testing.T) {
	limiter := bol.NewLimiter(0)
	assert.InDelta(t, bol.DefaultRatePerSecond, limiter.Tokens(), 0.5)
}
