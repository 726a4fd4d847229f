package renderer

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/sagascape/internal/apperr"
)

// ParseColor parses a #rgb or #rrggbb colour.
func ParseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(expandHex(hex))
	if err != nil {
		return colorful.Color{}, apperr.Wrap(apperr.CodeInvalidArgument, err, "bad colour %q", hex)
	}
	return c, nil
}

func expandHex(hex string) string {
	if len(hex) == 4 && hex[0] == '#' {
		return string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	return hex
}

// BlendColors mixes from towards to by t in RGB space. Unparseable inputs
// snap to the nearer end.
func BlendColors(from, to string, t float64) string {
	a, errA := ParseColor(from)
	b, errB := ParseColor(to)
	if errA != nil || errB != nil {
		if t < 0.5 {
			return from
		}
		return to
	}
	return a.BlendRgb(b, t).Clamped().Hex()
}

// withOpacity converts a hex colour to NRGBA with the given opacity.
// Unparseable colours become transparent.
func withOpacity(hex string, opacity float64) color.NRGBA {
	c, err := ParseColor(hex)
	if err != nil || opacity <= 0 {
		return color.NRGBA{}
	}
	if opacity > 1 {
		opacity = 1
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(opacity*255 + 0.5)}
}
