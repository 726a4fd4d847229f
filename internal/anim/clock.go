// Package anim implements animatable values and the cooperative timing model
// the scene scripts run on.
//
// Every script step is a blocking call that suspends the calling goroutine for
// its duration on a Clock. A cursor carried in the context tracks how much
// simulated time the task has consumed, so a script can be played instantly
// on a VirtualClock and still produce exact timestamps.
package anim

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/ivlev/sagascape/internal/apperr"
)

// Clock suspends the calling task for a number of seconds.
type Clock interface {
	Wait(ctx context.Context, seconds float64) error
}

// RealClock waits on the wall clock.
type RealClock struct{}

func (RealClock) Wait(ctx context.Context, seconds float64) error {
	if seconds <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(time.Duration(seconds * float64(time.Second)))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// VirtualClock never blocks. Time only moves on the task cursor.
type VirtualClock struct{}

func (VirtualClock) Wait(ctx context.Context, _ float64) error {
	return ctx.Err()
}

type cursor struct {
	mu sync.Mutex
	t  float64
}

type cursorKey struct{}

// WithCursor attaches a fresh cursor to ctx, starting at the current task time.
func WithCursor(ctx context.Context) context.Context {
	return withCursorAt(ctx, Now(ctx))
}

func withCursorAt(ctx context.Context, t float64) context.Context {
	return context.WithValue(ctx, cursorKey{}, &cursor{t: t})
}

func cursorFrom(ctx context.Context) *cursor {
	c, _ := ctx.Value(cursorKey{}).(*cursor)
	return c
}

// Now returns the simulated time in seconds consumed by the task so far.
// It is 0 when ctx carries no cursor.
func Now(ctx context.Context) float64 {
	c := cursorFrom(ctx)
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func advance(ctx context.Context, seconds float64) {
	if c := cursorFrom(ctx); c != nil {
		c.mu.Lock()
		c.t += seconds
		c.mu.Unlock()
	}
}

func moveTo(ctx context.Context, t float64) {
	if c := cursorFrom(ctx); c != nil {
		c.mu.Lock()
		if t > c.t {
			c.t = t
		}
		c.mu.Unlock()
	}
}

// ValidateDuration rejects negative and non-finite durations.
func ValidateDuration(seconds float64) error {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return apperr.New(apperr.CodeInvalidArgument, "invalid duration %v", seconds)
	}
	return nil
}

// Wait suspends the task for seconds on clock and advances its cursor.
// This is the waitFor step of a script.
func Wait(ctx context.Context, clock Clock, seconds float64) error {
	if err := ValidateDuration(seconds); err != nil {
		return err
	}
	if clock == nil {
		clock = VirtualClock{}
	}
	if err := clock.Wait(ctx, seconds); err != nil {
		return err
	}
	advance(ctx, seconds)
	return nil
}
