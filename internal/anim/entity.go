package anim

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/ivlev/sagascape/internal/geom"
)

// Kind selects how an entity renders itself.
type Kind string

const (
	KindGeneric    Kind = "generic"
	KindDictionary Kind = "dictionary"
)

// Entity defaults.
const (
	DefaultColor         = "#4F46E5"
	DictionaryColor      = "#8B5CF6"
	defaultSize          = 100.0
	dictionaryNodeWidth  = 150.0
	dictionaryNodeHeight = 100.0
)

// Formatter produces the human-readable label of an entity.
type Formatter func(e *Entity) string

var formatters = map[Kind]Formatter{
	KindGeneric: func(e *Entity) string {
		return fmt.Sprintf("%s @ %s", e.id, e.Position())
	},
	KindDictionary: func(e *Entity) string {
		return fmt.Sprintf("📚 %s: %s entries", e.id, humanize.Comma(int64(e.count)))
	},
}

// Entity is a positioned visual element whose position can be animated.
// Position and value are the same state; every write replaces both at once.
type Entity struct {
	id    string
	kind  Kind
	color string
	size  geom.Vector2D
	count int
	pos   *Value[geom.Vector2D]
}

var _ Animatable[geom.Vector2D] = (*Entity)(nil)

// Option configures an Entity at construction.
type Option func(*entityOptions)

type entityOptions struct {
	color string
	size  geom.Vector2D
	count int
	clock Clock
}

func WithColor(c string) Option {
	return func(o *entityOptions) { o.color = c }
}

func WithSize(s geom.Vector2D) Option {
	return func(o *entityOptions) { o.size = s }
}

// WithCount sets the number shown by counted kinds such as KindDictionary.
func WithCount(n int) Option {
	return func(o *entityOptions) { o.count = n }
}

func WithClock(c Clock) Option {
	return func(o *entityOptions) { o.clock = c }
}

func (e *Entity) ID() string          { return e.id }
func (e *Entity) Kind() Kind          { return e.kind }
func (e *Entity) Color() string       { return e.color }
func (e *Entity) Size() geom.Vector2D { return e.size }
func (e *Entity) Count() int          { return e.count }

// Position returns a copy of the current point.
func (e *Entity) Position() geom.Vector2D {
	return e.pos.Value()
}

// SetPosition replaces the point. Non-finite components are rejected.
func (e *Entity) SetPosition(p geom.Vector2D) error {
	if err := p.Validate(); err != nil {
		return err
	}
	e.pos.Set(p)
	return nil
}

// MoveTo is SetPosition for separate coordinates.
func (e *Entity) MoveTo(x, y float64) error {
	return e.SetPosition(geom.Vec(x, y))
}

// Value returns a copy of the current point.
func (e *Entity) Value() geom.Vector2D {
	return e.pos.Value()
}

// CurrentValue returns a copy of the current point.
func (e *Entity) CurrentValue() geom.Vector2D {
	return e.pos.Value()
}

// AnimateTo suspends for seconds and then commits target. Bad input is
// rejected before suspending.
func (e *Entity) AnimateTo(ctx context.Context, target geom.Vector2D, seconds float64) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if err := ValidateDuration(seconds); err != nil {
		return err
	}
	return e.pos.AnimateTo(ctx, target, seconds)
}

// Bounds returns the box of Size centred on Position.
func (e *Entity) Bounds() geom.Bounds {
	return geom.CenteredBounds(e.Position(), e.size)
}

// Render returns the label for the entity's kind.
func (e *Entity) Render() string {
	f, ok := formatters[e.kind]
	if !ok {
		f = formatters[KindGeneric]
	}
	return f(e)
}

// Metrics is a snapshot of a counted entity.
type Metrics struct {
	Entries  int           `yaml:"entries"`
	Position geom.Vector2D `yaml:"position"`
	Bounds   geom.Bounds   `yaml:"bounds"`
}

func (e *Entity) Metrics() Metrics {
	pos := e.Position()
	return Metrics{
		Entries:  e.count,
		Position: pos,
		Bounds:   geom.CenteredBounds(pos, e.size),
	}
}
