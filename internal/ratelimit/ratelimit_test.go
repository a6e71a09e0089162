package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name             string
		recordsPerSecond float64
		burst            int
		wantLimit        float64
		wantBurst        int
	}{
		{name: "unlimited_zero", recordsPerSecond: 0, burst: 5, wantLimit: 0, wantBurst: 1},
		{name: "unlimited_negative", recordsPerSecond: -1, burst: 5, wantLimit: 0, wantBurst: 1},
		{name: "limited", recordsPerSecond: 10, burst: 4, wantLimit: 10, wantBurst: 4},
		{name: "fractional", recordsPerSecond: 0.5, burst: 1, wantLimit: 0.5, wantBurst: 1},
		{name: "burst_floor", recordsPerSecond: 2, burst: 0, wantLimit: 2, wantBurst: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := New(tt.recordsPerSecond, tt.burst)

			if got := limiter.Limit(); got != tt.wantLimit {
				t.Errorf("Limit() = %v, want %v", got, tt.wantLimit)
			}
			if got := limiter.Burst(); got != tt.wantBurst {
				t.Errorf("Burst() = %d, want %d", got, tt.wantBurst)
			}
		})
	}
}

func TestLimiter_Wait(t *testing.T) {
	t.Run("unlimited_never_blocks", func(t *testing.T) {
		limiter := New(0, 0)
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		for i := range 1000 {
			if err := limiter.Wait(ctx); err != nil {
				t.Fatalf("Wait() %d error = %v", i, err)
			}
		}
	})

	t.Run("burst_then_throttle", func(t *testing.T) {
		limiter := New(1, 3)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		for i := range 3 {
			if err := limiter.Wait(ctx); err != nil {
				t.Fatalf("Wait() within burst %d error = %v", i, err)
			}
		}

		if err := limiter.Wait(ctx); err == nil {
			t.Error("Wait() past burst = nil, want error before the deadline")
		}
	})

	t.Run("cancelled_context", func(t *testing.T) {
		limiter := New(1, 1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := limiter.Wait(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Wait() error = %v, want context.Canceled", err)
		}
	})
}
