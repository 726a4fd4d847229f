// Package geom holds the small value types shared by entities, the catalog and
// the renderer.
package geom

import (
	"fmt"
	"math"

	"github.com/ivlev/sagascape/internal/apperr"
)

// Vector2D is a 2-D point. It is an array, so every assignment copies it.
type Vector2D [2]float64

// Vec is shorthand for Vector2D{x, y}.
func Vec(x, y float64) Vector2D {
	return Vector2D{x, y}
}

// NewVector builds a point from exactly two finite numbers.
func NewVector(xs ...float64) (Vector2D, error) {
	if len(xs) != 2 {
		return Vector2D{}, apperr.New(apperr.CodeInvalidArgument, "point needs 2 components, got %d", len(xs))
	}
	v := Vector2D{xs[0], xs[1]}
	if err := v.Validate(); err != nil {
		return Vector2D{}, err
	}
	return v, nil
}

func (v Vector2D) X() float64 { return v[0] }
func (v Vector2D) Y() float64 { return v[1] }

// Validate rejects NaN and infinite components.
func (v Vector2D) Validate() error {
	for i, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return apperr.New(apperr.CodeInvalidArgument, "point component %d is not finite: %v", i, c)
		}
	}
	return nil
}

func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{v[0] + o[0], v[1] + o[1]}
}

func (v Vector2D) Scale(f float64) Vector2D {
	return Vector2D{v[0] * f, v[1] * f}
}

func (v Vector2D) String() string {
	return fmt.Sprintf("[%g, %g]", v[0], v[1])
}

// Bounds is a box anchored at its top-left corner.
type Bounds struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CenteredBounds returns the box of the given size centred on center.
func CenteredBounds(center, size Vector2D) Bounds {
	return Bounds{
		X:      center[0] - size[0]/2,
		Y:      center[1] - size[1]/2,
		Width:  size[0],
		Height: size[1],
	}
}

// Center returns the middle of the box.
func (b Bounds) Center() Vector2D {
	return Vector2D{b.X + b.Width/2, b.Y + b.Height/2}
}
