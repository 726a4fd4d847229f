// Package easing provides named easing curves.
//
// Every curve maps normalized time t in [0, 1] to progress in [0, 1]. Curves
// are passed around as values and looked up by id, so callers never embed the
// math themselves.
//
// See https://easings.net/ for the shapes.
package easing

import (
	"math"
	"sort"
	"sync"

	"github.com/ivlev/sagascape/internal/apperr"
)

// Func is an easing curve.
type Func func(t float64) float64

// Curve ids understood by the default registry.
const (
	Linear         = "linear"
	EaseInOutCubic = "easeInOutCubic"
	EaseInCubic    = "easeInCubic"
	EaseOutCubic   = "easeOutCubic"
	EaseInQuad     = "easeInQuad"
	EaseOutQuad    = "easeOutQuad"
	EaseOutExpo    = "easeOutExpo"
)

// LinearFunc returns t unchanged.
func LinearFunc(t float64) float64 {
	return t
}

// InOutCubic starts slow, speeds up, ends slow.
//
//	t < 0.5:  4t³
//	t >= 0.5: 1 - (-2t + 2)³ / 2
func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func InCubic(t float64) float64 {
	return t * t * t
}

func OutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

func InQuad(t float64) float64 {
	return t * t
}

func OutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

func OutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 limits t to [0, 1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Registry maps curve ids to curves. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	curves map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{curves: make(map[string]Func)}
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the shared registry with the built-in curves.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry()
		defaultReg.Register(Linear, LinearFunc)
		defaultReg.Register(EaseInOutCubic, InOutCubic)
		defaultReg.Register(EaseInCubic, InCubic)
		defaultReg.Register(EaseOutCubic, OutCubic)
		defaultReg.Register(EaseInQuad, InQuad)
		defaultReg.Register(EaseOutQuad, OutQuad)
		defaultReg.Register(EaseOutExpo, OutExpo)
	})
	return defaultReg
}

// Register adds or replaces a curve.
func (r *Registry) Register(id string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.curves[id] = fn
}

// Lookup returns the curve for id. An empty id means easeInOutCubic, the
// default tween curve.
func (r *Registry) Lookup(id string) (Func, error) {
	if id == "" {
		id = EaseInOutCubic
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.curves[id]
	if !ok {
		return nil, apperr.New(apperr.CodeNotFound, "unknown easing curve %q", id)
	}
	return fn, nil
}

// Names returns the registered ids in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.curves))
	for n := range r.curves {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
