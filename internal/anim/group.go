package anim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Step is one suspending unit of a script.
type Step func(ctx context.Context) error

// All runs the steps concurrently and returns once every one has committed.
// Each step starts on its own cursor at the caller's current time; afterwards
// the caller's cursor sits at the latest child end, so three 0.6s steps take
// 0.6s, not 1.8s. The first error is returned.
func All(ctx context.Context, steps ...Step) error {
	start := Now(ctx)
	ends := make([]float64, len(steps))

	g, gctx := errgroup.WithContext(ctx)
	for i, step := range steps {
		g.Go(func() error {
			child := withCursorAt(gctx, start)
			err := step(child)
			ends[i] = Now(child)
			return err
		})
	}
	err := g.Wait()

	end := start
	for _, e := range ends {
		if e > end {
			end = e
		}
	}
	moveTo(ctx, end)
	return err
}

// Sequence runs the steps one after another, stopping at the first error.
func Sequence(ctx context.Context, steps ...Step) error {
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Chain returns a step that runs steps in order.
func Chain(steps ...Step) Step {
	return func(ctx context.Context) error {
		return Sequence(ctx, steps...)
	}
}
