package renderer

import (
	"context"
	"slices"
	"sync"

	"github.com/ivlev/sagascape/internal/anim"
	"github.com/ivlev/sagascape/internal/apperr"
	"github.com/ivlev/sagascape/internal/easing"
)

// Renderer is what scene scripts draw through. Animate and Tint suspend the
// caller for the transition's duration.
type Renderer interface {
	Add(ctx context.Context, el Element) error
	Animate(ctx context.Context, id string, prop Property, to, seconds float64, easingID string) error
	Tint(ctx context.Context, id, color string, seconds float64, easingID string) error
	SetText(ctx context.Context, id, text string) error
}

// Tween is one recorded transition of an element property. A zero duration
// is an immediate set.
type Tween struct {
	Element   string   `yaml:"element"`
	Property  Property `yaml:"property"`
	Start     float64  `yaml:"start"`
	Duration  float64  `yaml:"duration"`
	Easing    string   `yaml:"easing,omitempty"`
	From      float64  `yaml:"from,omitempty"`
	To        float64  `yaml:"to,omitempty"`
	FromColor string   `yaml:"from_color,omitempty"`
	ToColor   string   `yaml:"to_color,omitempty"`
	Text      string   `yaml:"text,omitempty"`
}

// End returns the time the tween completes.
func (t Tween) End() float64 {
	return t.Start + t.Duration
}

// Timeline records elements and tweens against the task cursor of the
// calling context. It is safe for concurrent use by anim.All groups.
type Timeline struct {
	mu       sync.Mutex
	clock    anim.Clock
	curves   *easing.Registry
	elements []Element
	index    map[string]int
	latest   map[string]Element
	tweens   []Tween
	duration float64
}

var _ Renderer = (*Timeline)(nil)

// NewTimeline returns an empty timeline. Nil arguments select the virtual
// clock and the default easing registry.
func NewTimeline(clock anim.Clock, curves *easing.Registry) *Timeline {
	if clock == nil {
		clock = anim.VirtualClock{}
	}
	if curves == nil {
		curves = easing.Default()
	}
	return &Timeline{
		clock:  clock,
		curves: curves,
		index:  make(map[string]int),
		latest: make(map[string]Element),
	}
}

// Restore rebuilds a timeline from a recording.
func Restore(elements []Element, tweens []Tween, duration float64, curves *easing.Registry) (*Timeline, error) {
	tl := NewTimeline(nil, curves)
	tweens = sortByStart(slices.Clone(tweens))
	for _, el := range elements {
		if err := tl.add(el); err != nil {
			return nil, err
		}
	}
	for _, tw := range tweens {
		if _, ok := tl.index[tw.Element]; !ok {
			return nil, apperr.New(apperr.CodeNotFound, "tween targets unknown element %q", tw.Element)
		}
		if _, err := tl.curves.Lookup(tw.Easing); err != nil {
			return nil, err
		}
		cur := tl.latest[tw.Element]
		tl.apply(&cur, tw, tw.End())
		tl.latest[tw.Element] = cur
		tl.record(tw)
	}
	tl.extend(duration)
	return tl, nil
}

func (tl *Timeline) Add(ctx context.Context, el Element) error {
	el.At = anim.Now(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.add(el)
}

func (tl *Timeline) add(el Element) error {
	if err := el.validate(); err != nil {
		return err
	}
	if _, dup := tl.index[el.ID]; dup {
		return apperr.New(apperr.CodeInvalidArgument, "duplicate element id %q", el.ID)
	}
	if el.Parent != "" {
		if _, ok := tl.index[el.Parent]; !ok {
			return apperr.New(apperr.CodeNotFound, "element %q has unknown parent %q", el.ID, el.Parent)
		}
	}
	tl.index[el.ID] = len(tl.elements)
	tl.elements = append(tl.elements, el)
	tl.latest[el.ID] = el
	tl.extend(el.At)
	return nil
}

func (tl *Timeline) Animate(ctx context.Context, id string, prop Property, to, seconds float64, easingID string) error {
	if err := anim.ValidateDuration(seconds); err != nil {
		return err
	}
	if _, err := tl.curves.Lookup(easingID); err != nil {
		return err
	}
	tl.mu.Lock()
	cur, ok := tl.latest[id]
	if !ok {
		tl.mu.Unlock()
		return apperr.New(apperr.CodeNotFound, "unknown element %q", id)
	}
	from, ok := cur.get(prop)
	if !ok {
		tl.mu.Unlock()
		return apperr.New(apperr.CodeInvalidArgument, "property %q is not numeric", prop)
	}
	cur.set(prop, to)
	tl.latest[id] = cur
	tl.record(Tween{Element: id, Property: prop, Start: anim.Now(ctx), Duration: seconds, Easing: easingID, From: from, To: to})
	tl.mu.Unlock()

	return tl.Wait(ctx, seconds)
}

func (tl *Timeline) Tint(ctx context.Context, id, color string, seconds float64, easingID string) error {
	if err := anim.ValidateDuration(seconds); err != nil {
		return err
	}
	if _, err := tl.curves.Lookup(easingID); err != nil {
		return err
	}
	if _, err := ParseColor(color); err != nil {
		return err
	}
	tl.mu.Lock()
	cur, ok := tl.latest[id]
	if !ok {
		tl.mu.Unlock()
		return apperr.New(apperr.CodeNotFound, "unknown element %q", id)
	}
	from := cur.Fill
	cur.Fill = color
	tl.latest[id] = cur
	tl.record(Tween{Element: id, Property: PropFill, Start: anim.Now(ctx), Duration: seconds, Easing: easingID, FromColor: from, ToColor: color})
	tl.mu.Unlock()

	return tl.Wait(ctx, seconds)
}

func (tl *Timeline) SetText(ctx context.Context, id, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tl.mu.Lock()
	defer tl.mu.Unlock()
	cur, ok := tl.latest[id]
	if !ok {
		return apperr.New(apperr.CodeNotFound, "unknown element %q", id)
	}
	cur.Text = text
	tl.latest[id] = cur
	tl.record(Tween{Element: id, Property: PropText, Start: anim.Now(ctx), Text: text})
	return nil
}

// Text returns the latest text set on an element.
func (tl *Timeline) Text(id string) string {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.latest[id].Text
}

// Wait suspends the caller like anim.Wait and keeps the timeline long enough
// to cover the wait.
func (tl *Timeline) Wait(ctx context.Context, seconds float64) error {
	if err := anim.Wait(ctx, tl.clock, seconds); err != nil {
		return err
	}
	tl.mu.Lock()
	tl.extend(anim.Now(ctx))
	tl.mu.Unlock()
	return nil
}

func (tl *Timeline) record(tw Tween) {
	tl.tweens = append(tl.tweens, tw)
	tl.extend(tw.End())
}

func (tl *Timeline) extend(t float64) {
	if t > tl.duration {
		tl.duration = t
	}
}

// Duration is the end of the last recorded event.
func (tl *Timeline) Duration() float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.duration
}

// Elements returns a copy of the elements in the order they were added.
func (tl *Timeline) Elements() []Element {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return slices.Clone(tl.elements)
}

// Tweens returns a copy of the tweens ordered by start time.
func (tl *Timeline) Tweens() []Tween {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return sortByStart(slices.Clone(tl.tweens))
}

func sortByStart(tweens []Tween) []Tween {
	slices.SortStableFunc(tweens, func(a, b Tween) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})
	return tweens
}
