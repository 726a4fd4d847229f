package renderer

import (
	"github.com/ivlev/sagascape/internal/anim"
	"github.com/ivlev/sagascape/internal/easing"
)

// Frame is the resolved state of every visible element at one moment, in draw
// order. Positions, opacity and scale are absolute: parent transforms are
// already applied.
type Frame struct {
	Time     float64
	Elements []Element
}

// Sample resolves the timeline at time t (seconds from scene start).
func (tl *Timeline) Sample(t float64) Frame {
	elements := tl.Elements()
	tweens := tl.Tweens()

	byElement := make(map[string][]Tween, len(elements))
	for _, tw := range tweens {
		byElement[tw.Element] = append(byElement[tw.Element], tw)
	}

	resolved := make(map[string]Element, len(elements))
	frame := Frame{Time: t}
	for _, el := range elements {
		if el.At > t {
			continue
		}
		state := el
		for _, tw := range byElement[el.ID] {
			if tw.Start > t {
				break
			}
			tl.apply(&state, tw, t)
		}

		if el.Parent != "" {
			parent, ok := resolved[el.Parent]
			if !ok {
				continue
			}
			state.Position = parent.Position.Add(state.Position.Scale(parent.Scale))
			state.Opacity *= parent.Opacity
			state.Scale *= parent.Scale
		}
		resolved[el.ID] = state
		frame.Elements = append(frame.Elements, state)
	}
	return frame
}

// apply moves state along tw as of time t. Tweens already finished land
// exactly on their target.
func (tl *Timeline) apply(state *Element, tw Tween, t float64) {
	raw, fn := 1.0, easing.LinearFunc
	if tw.Duration > 0 && t < tw.End() {
		if curve, err := tl.curves.Lookup(tw.Easing); err == nil {
			fn = curve
		}
		raw = easing.Clamp01((t - tw.Start) / tw.Duration)
	}
	progress := fn(raw)

	switch tw.Property {
	case PropX, PropY:
		if raw >= 1 {
			state.set(tw.Property, tw.To)
			return
		}
		axis := 0
		if tw.Property == PropY {
			axis = 1
		}
		from, to := state.Position, state.Position
		from[axis], to[axis] = tw.From, tw.To
		state.Position = anim.Interpolate(from, to, raw, fn)
	case PropText:
		state.Text = tw.Text
	case PropFill:
		if progress >= 1 || tw.FromColor == "" {
			state.Fill = tw.ToColor
			return
		}
		state.Fill = BlendColors(tw.FromColor, tw.ToColor, progress)
	default:
		if progress >= 1 {
			state.set(tw.Property, tw.To)
			return
		}
		state.set(tw.Property, easing.Lerp(tw.From, tw.To, progress))
	}
}
