package anim

import (
	"github.com/ivlev/sagascape/internal/easing"
	"github.com/ivlev/sagascape/internal/geom"
)

// Config describes one eased transition towards a scalar target. Curve is
// the registry id the renderer records; Easing is the same curve resolved.
type Config struct {
	Curve    string
	Easing   easing.Func
	Duration float64
	Target   float64
}

// NewConfig resolves curve in curves (the default registry when nil).
func NewConfig(curves *easing.Registry, curve string, duration, target float64) (Config, error) {
	if curves == nil {
		curves = easing.Default()
	}
	fn, err := curves.Lookup(curve)
	if err != nil {
		return Config{}, err
	}
	return Config{Curve: curve, Easing: fn, Duration: duration, Target: target}, nil
}

// At returns the value reached from `from` after elapsed seconds.
func (c Config) At(from, elapsed float64) float64 {
	if c.Duration <= 0 {
		return c.Target
	}
	fn := c.Easing
	if fn == nil {
		fn = easing.LinearFunc
	}
	t := easing.Clamp01(elapsed / c.Duration)
	return easing.Lerp(from, c.Target, fn(t))
}

// Interpolate returns the point between from and to at eased progress t.
func Interpolate(from, to geom.Vector2D, t float64, fn easing.Func) geom.Vector2D {
	if fn == nil {
		fn = easing.LinearFunc
	}
	p := fn(easing.Clamp01(t))
	return geom.Vec(easing.Lerp(from[0], to[0], p), easing.Lerp(from[1], to[1], p))
}
