package renderer

import (
	"github.com/ivlev/sagascape/internal/apperr"
	"github.com/ivlev/sagascape/internal/geom"
)

// Kind is the shape of a visual element.
type Kind string

const (
	KindText   Kind = "text"
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
	KindLine   Kind = "line"
	KindQRCode Kind = "qrcode"
)

// Element describes one visual element in scene space: 1920x1080 with the
// origin in the middle and y growing downwards. Children are positioned
// relative to their parent and inherit its opacity and scale.
type Element struct {
	ID        string          `yaml:"id"`
	Parent    string          `yaml:"parent,omitempty"`
	Kind      Kind            `yaml:"kind"`
	At        float64         `yaml:"at"`
	Text      string          `yaml:"text,omitempty"`
	Position  geom.Vector2D   `yaml:"position,flow"`
	Size      geom.Vector2D   `yaml:"size,flow,omitempty"`
	Points    []geom.Vector2D `yaml:"points,omitempty"`
	Fill      string          `yaml:"fill,omitempty"`
	Stroke    string          `yaml:"stroke,omitempty"`
	LineWidth float64         `yaml:"line_width,omitempty"`
	Radius    float64         `yaml:"radius,omitempty"`
	FontSize  float64         `yaml:"font_size,omitempty"`
	Bold      bool            `yaml:"bold,omitempty"`
	Opacity   float64         `yaml:"opacity"`
	Scale     float64         `yaml:"scale"`
	End       float64         `yaml:"end"`
}

// Text returns a visible text element at the origin.
func Text(id, text string, fontSize float64, fill string) Element {
	return Element{ID: id, Kind: KindText, Text: text, FontSize: fontSize, Fill: fill, Opacity: 1, Scale: 1, End: 1}
}

// Rect returns a visible rectangle at the origin.
func Rect(id string, w, h float64, fill string) Element {
	return Element{ID: id, Kind: KindRect, Size: geom.Vec(w, h), Fill: fill, Opacity: 1, Scale: 1, End: 1}
}

// Circle returns a visible circle of diameter d at the origin.
func Circle(id string, d float64, fill string) Element {
	return Element{ID: id, Kind: KindCircle, Size: geom.Vec(d, d), Fill: fill, Opacity: 1, Scale: 1, End: 1}
}

// Line returns a polyline through points.
func Line(id string, stroke string, width float64, points ...geom.Vector2D) Element {
	return Element{ID: id, Kind: KindLine, Points: points, Stroke: stroke, LineWidth: width, Opacity: 1, Scale: 1, End: 1}
}

// QRCode returns a square QR code encoding text.
func QRCode(id, text string, side float64, fill string) Element {
	return Element{ID: id, Kind: KindQRCode, Text: text, Size: geom.Vec(side, side), Fill: fill, Opacity: 1, Scale: 1, End: 1}
}

// Pos moves the element to (x, y).
func (e Element) Pos(x, y float64) Element {
	e.Position = geom.Vec(x, y)
	return e
}

// Hidden sets opacity to 0.
func (e Element) Hidden() Element {
	e.Opacity = 0
	return e
}

func (e Element) WithOpacity(o float64) Element {
	e.Opacity = o
	return e
}

func (e Element) WithScale(s float64) Element {
	e.Scale = s
	return e
}

// WithEnd sets how much of a line is drawn, from 0 to 1.
func (e Element) WithEnd(v float64) Element {
	e.End = v
	return e
}

func (e Element) WithRadius(r float64) Element {
	e.Radius = r
	return e
}

func (e Element) WithBold() Element {
	e.Bold = true
	return e
}

// In makes e a child of parent.
func (e Element) In(parent string) Element {
	e.Parent = parent
	return e
}

func (e Element) validate() error {
	if e.ID == "" {
		return apperr.New(apperr.CodeInvalidArgument, "element id is empty")
	}
	if err := e.Position.Validate(); err != nil {
		return err
	}
	if err := e.Size.Validate(); err != nil {
		return err
	}
	for _, p := range e.Points {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	switch e.Kind {
	case KindText, KindRect, KindCircle, KindLine, KindQRCode:
	default:
		return apperr.New(apperr.CodeInvalidArgument, "element %s has unknown kind %q", e.ID, e.Kind)
	}
	if e.Kind == KindLine && len(e.Points) < 2 {
		return apperr.New(apperr.CodeInvalidArgument, "line %s needs at least 2 points", e.ID)
	}
	return nil
}

// Property names an animatable attribute of an element.
type Property string

const (
	PropX       Property = "x"
	PropY       Property = "y"
	PropOpacity Property = "opacity"
	PropScale   Property = "scale"
	PropWidth   Property = "width"
	PropHeight  Property = "height"
	PropEnd     Property = "end"
	PropFill    Property = "fill"
	PropText    Property = "text"
)

func (e *Element) get(p Property) (float64, bool) {
	switch p {
	case PropX:
		return e.Position[0], true
	case PropY:
		return e.Position[1], true
	case PropOpacity:
		return e.Opacity, true
	case PropScale:
		return e.Scale, true
	case PropWidth:
		return e.Size[0], true
	case PropHeight:
		return e.Size[1], true
	case PropEnd:
		return e.End, true
	}
	return 0, false
}

func (e *Element) set(p Property, v float64) {
	switch p {
	case PropX:
		e.Position[0] = v
	case PropY:
		e.Position[1] = v
	case PropOpacity:
		e.Opacity = v
	case PropScale:
		e.Scale = v
	case PropWidth:
		e.Size[0] = v
	case PropHeight:
		e.Size[1] = v
	case PropEnd:
		e.End = v
	}
}
