package anim

import (
	"context"
	"sync"
)

// Animatable is a value that can be moved to a target over time.
type Animatable[T any] interface {
	Value() T
	AnimateTo(ctx context.Context, target T, seconds float64) error
	CurrentValue() T
}

// Value is a generic Animatable. It is a checkpoint, not an interpolator:
// AnimateTo waits the full duration and then commits the target in one step.
// Concurrent AnimateTo calls do not exclude each other; the last commit wins.
//
// Values of reference types (slices, maps) are not deep-copied.
type Value[T any] struct {
	mu    sync.RWMutex
	v     T
	clock Clock
}

// NewValue returns a Value holding initial. A nil clock means VirtualClock.
func NewValue[T any](initial T, clock Clock) *Value[T] {
	if clock == nil {
		clock = VirtualClock{}
	}
	return &Value[T]{v: initial, clock: clock}
}

func (v *Value[T]) Value() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.v
}

// CurrentValue is the same as Value.
func (v *Value[T]) CurrentValue() T {
	return v.Value()
}

// Set replaces the value immediately.
func (v *Value[T]) Set(x T) {
	v.mu.Lock()
	v.v = x
	v.mu.Unlock()
}

func (v *Value[T]) AnimateTo(ctx context.Context, target T, seconds float64) error {
	if err := Wait(ctx, v.clock, seconds); err != nil {
		return err
	}
	v.Set(target)
	return nil
}
