package director

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/ivlev/sagascape/internal/anim"
	"github.com/ivlev/sagascape/internal/catalog"
	"github.com/ivlev/sagascape/internal/easing"
	"github.com/ivlev/sagascape/internal/geom"
	"github.com/ivlev/sagascape/internal/renderer"
)

// Stage is what a scene plays on.
type Stage struct {
	Renderer renderer.Renderer
	Clock    anim.Clock
	Entities *anim.Registry
	Content  *catalog.Content
	Catalog  *catalog.Catalog
	Curves   *easing.Registry
	Logger   *log.Logger

	mu     sync.Mutex
	placed []*anim.Entity
}

// Add adds elements in order at the current time.
func (s *Stage) Add(ctx context.Context, els ...renderer.Element) error {
	for _, el := range els {
		if err := s.Renderer.Add(ctx, el); err != nil {
			return err
		}
	}
	return nil
}

// Put returns a step that adds elements.
func (s *Stage) Put(els ...renderer.Element) anim.Step {
	return func(ctx context.Context) error {
		return s.Add(ctx, els...)
	}
}

// To returns a step animating a numeric property.
func (s *Stage) To(id string, prop renderer.Property, to, seconds float64, easingID string) anim.Step {
	return func(ctx context.Context) error {
		return s.Renderer.Animate(ctx, id, prop, to, seconds, easingID)
	}
}

// Ease returns a step animating prop towards c.Target over c.Duration with
// the curve c was resolved from.
func (s *Stage) Ease(id string, prop renderer.Property, c anim.Config) anim.Step {
	return s.To(id, prop, c.Target, c.Duration, c.Curve)
}

// Config resolves an eased transition against the stage's curves.
func (s *Stage) Config(curve string, seconds, target float64) (anim.Config, error) {
	return anim.NewConfig(s.Curves, curve, seconds, target)
}

// FadeIn animates opacity to 1.
func (s *Stage) FadeIn(id string, seconds float64) anim.Step {
	return s.To(id, renderer.PropOpacity, 1, seconds, "")
}

// SetText returns a step replacing an element's text.
func (s *Stage) SetText(id, text string) anim.Step {
	return func(ctx context.Context) error {
		return s.Renderer.SetText(ctx, id, text)
	}
}

// Tint returns a step blending an element's fill to color.
func (s *Stage) Tint(id, color string, seconds float64, easingID string) anim.Step {
	return func(ctx context.Context) error {
		return s.Renderer.Tint(ctx, id, color, seconds, easingID)
	}
}

// Wait is waitFor.
func (s *Stage) Wait(ctx context.Context, seconds float64) error {
	return anim.Wait(ctx, s.Clock, seconds)
}

// Pause returns a waiting step.
func (s *Stage) Pause(seconds float64) anim.Step {
	return func(ctx context.Context) error {
		return s.Wait(ctx, seconds)
	}
}

// Typewrite clears the text of id and reveals text one rune at a time.
func (s *Stage) Typewrite(ctx context.Context, id, text string, perRune float64) error {
	for i := 0; i <= len(text); {
		if err := s.Renderer.SetText(ctx, id, text[:i]); err != nil {
			return err
		}
		if err := s.Wait(ctx, perRune); err != nil {
			return err
		}
		if i == len(text) {
			break
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return nil
}

// Type returns a Typewrite step.
func (s *Stage) Type(id, text string, perRune float64) anim.Step {
	return func(ctx context.Context) error {
		return s.Typewrite(ctx, id, text, perRune)
	}
}

// Place draws an entity as a rounded card showing its id and entry count,
// and records it for the script. The card starts hidden at scale 0.
func (s *Stage) Place(ctx context.Context, e *anim.Entity) error {
	size := e.Size()
	pos := e.Position()
	card := renderer.Rect(e.ID(), size.X(), size.Y(), e.Color()).
		Pos(pos.X(), pos.Y()).
		WithRadius(15).
		Hidden().
		WithScale(0)
	name := renderer.Text(e.ID()+"/name", e.ID(), 22, "#ffffff").Pos(0, -30).In(e.ID())
	count := renderer.Text(e.ID()+"/count", humanize.Comma(int64(e.Count()))+" entries", 18, "#e5e7eb").
		Pos(0, 10).
		In(e.ID())
	if err := s.Add(ctx, card, name, count); err != nil {
		return err
	}
	s.mu.Lock()
	s.placed = append(s.placed, e)
	s.mu.Unlock()
	s.logger().Debug("placed entity", "id", e.ID(), "at", pos)
	return nil
}

// Reveal returns a step fading and scaling an element in.
func (s *Stage) Reveal(id string, seconds float64, easingID string) anim.Step {
	return func(ctx context.Context) error {
		return anim.All(ctx,
			s.FadeIn(id, seconds),
			s.To(id, renderer.PropScale, 1, seconds, easingID),
		)
	}
}

// Move returns a step that glides a placed entity and its card to target.
func (s *Stage) Move(e *anim.Entity, target geom.Vector2D, seconds float64, easingID string) anim.Step {
	return func(ctx context.Context) error {
		if err := target.Validate(); err != nil {
			return err
		}
		return anim.All(ctx,
			func(ctx context.Context) error { return e.AnimateTo(ctx, target, seconds) },
			s.To(e.ID(), renderer.PropX, target.X(), seconds, easingID),
			s.To(e.ID(), renderer.PropY, target.Y(), seconds, easingID),
		)
	}
}

// Placed returns the entities placed so far.
func (s *Stage) Placed() []*anim.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*anim.Entity, len(s.placed))
	copy(out, s.placed)
	return out
}

func (s *Stage) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

// ID builds a scene-unique element id.
func ID(prefix string, i int) string {
	return fmt.Sprintf("%s-%d", prefix, i)
}
