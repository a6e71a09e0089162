// Package ratelimit throttles how fast records are processed.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

type Limiter struct {
	limiter *rate.Limiter
}

// New allows recordsPerSecond records per second with bursts of up to burst
// records. A recordsPerSecond of 0 or less disables throttling.
func New(recordsPerSecond float64, burst int) *Limiter {
	if recordsPerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(recordsPerSecond), max(burst, 1))}
}

// Wait blocks until the next record may be processed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Limit returns the configured rate, 0 when unlimited.
func (l *Limiter) Limit() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}

func (l *Limiter) Burst() int {
	return l.limiter.Burst()
}
