package bol

import (
	"context"

	"golang.org/x/time/rate"
)

// DefaultRatePerSecond is the upstream ceiling for a single credential.
const DefaultRatePerSecond = 10

// Limiter paces all outbound calls to the marketing API through one shared
// token bucket. The upstream limit is per credential, not per call site, so
// exactly one instance is constructed per process and injected everywhere.
type Limiter struct {
	lim *rate.Limiter
}

// NewLimiter builds a limiter refilling at perSecond tokens per second with
// an equal burst capacity. Non-positive rates fall back to the default.
func NewLimiter(perSecond float64) *Limiter {
	if perSecond <= 0 {
		perSecond = DefaultRatePerSecond
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &Limiter{lim: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Acquire suspends the caller until a token is available, then consumes it.
// It never rejects; the only error path is context cancellation.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.lim.Wait(ctx)
}

// Tokens reports the currently available tokens. Observation only.
func (l *Limiter) Tokens() float64 {
	return l.lim.Tokens()
}
