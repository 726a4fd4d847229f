package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"
	"sync"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Scene space dimensions.
const (
	SceneWidth  = 1920.0
	SceneHeight = 1080.0
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

var (
	fontsOnce   sync.Once
	fontRegular *opentype.Font
	fontBold    *opentype.Font
	fontsErr    error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if fontRegular, fontsErr = opentype.Parse(goregular.TTF); fontsErr != nil {
			return
		}
		fontBold, fontsErr = opentype.Parse(gobold.TTF)
	})
	return fontsErr
}

type faceKey struct {
	bold bool
	size int
}

// Rasterizer draws frames into RGBA images. A Rasterizer is not safe for
// concurrent use; give every worker its own.
type Rasterizer struct {
	Width      int
	Height     int
	Background string

	scale float64
	z     *vector.Rasterizer
	faces map[faceKey]font.Face
	codes map[string][][]bool
}

// NewRasterizer returns a rasterizer for width x height output frames.
func NewRasterizer(width, height int, background string) (*Rasterizer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	return &Rasterizer{
		Width:      width,
		Height:     height,
		Background: background,
		scale:      math.Min(float64(width)/SceneWidth, float64(height)/SceneHeight),
		z:          vector.NewRasterizer(width, height),
		faces:      make(map[faceKey]font.Face),
		codes:      make(map[string][][]bool),
	}, nil
}

// Close releases the cached font faces.
func (r *Rasterizer) Close() error {
	for k, f := range r.faces {
		f.Close()
		delete(r.faces, k)
	}
	return nil
}

// Draw clears dst to the background and paints f onto it.
func (r *Rasterizer) Draw(dst *image.RGBA, f Frame) error {
	bg := withOpacity(r.Background, 1)
	if r.Background == "" {
		bg = color.NRGBA{A: 255}
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for _, el := range f.Elements {
		if el.Opacity <= 0 || el.Scale <= 0 {
			continue
		}
		var err error
		switch el.Kind {
		case KindRect:
			r.drawRect(dst, el, el.Radius)
		case KindCircle:
			r.drawRect(dst, el, math.Min(el.Size[0], el.Size[1])/2)
		case KindLine:
			r.drawLine(dst, el)
		case KindText:
			err = r.drawText(dst, el)
		case KindQRCode:
			err = r.drawQRCode(dst, el)
		}
		if err != nil {
			return fmt.Errorf("draw %s: %w", el.ID, err)
		}
	}
	return nil
}

// toPixels maps a scene-space point to output pixels.
func (r *Rasterizer) toPixels(x, y float64) (float64, float64) {
	return float64(r.Width)/2 + x*r.scale, float64(r.Height)/2 + y*r.scale
}

func (r *Rasterizer) clamp(x, y float64) (float32, float32) {
	x = math.Max(0, math.Min(float64(r.Width), x))
	y = math.Max(0, math.Min(float64(r.Height), y))
	return float32(x), float32(y)
}

func (r *Rasterizer) moveTo(x, y float64) { r.z.MoveTo(r.clamp(x, y)) }
func (r *Rasterizer) lineTo(x, y float64) { r.z.LineTo(r.clamp(x, y)) }

func (r *Rasterizer) cubeTo(bx, by, cx, cy, dx, dy float64) {
	x1, y1 := r.clamp(bx, by)
	x2, y2 := r.clamp(cx, cy)
	x3, y3 := r.clamp(dx, dy)
	r.z.CubeTo(x1, y1, x2, y2, x3, y3)
}

func (r *Rasterizer) fill(dst *image.RGBA, c color.NRGBA) {
	r.z.DrawOp = draw.Over
	r.z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

func (r *Rasterizer) drawRect(dst *image.RGBA, el Element, radius float64) {
	k := el.Scale * r.scale
	w, h := el.Size[0]*k, el.Size[1]*k
	if w <= 0 || h <= 0 {
		return
	}
	cx, cy := r.toPixels(el.Position[0], el.Position[1])
	x0, y0, x1, y1 := cx-w/2, cy-h/2, cx+w/2, cy+h/2
	rad := math.Min(radius*k, math.Min(w, h)/2)

	r.z.Reset(r.Width, r.Height)
	if rad <= 0 {
		r.moveTo(x0, y0)
		r.lineTo(x1, y0)
		r.lineTo(x1, y1)
		r.lineTo(x0, y1)
	} else {
		c := rad * kappa
		r.moveTo(x0+rad, y0)
		r.lineTo(x1-rad, y0)
		r.cubeTo(x1-rad+c, y0, x1, y0+rad-c, x1, y0+rad)
		r.lineTo(x1, y1-rad)
		r.cubeTo(x1, y1-rad+c, x1-rad+c, y1, x1-rad, y1)
		r.lineTo(x0+rad, y1)
		r.cubeTo(x0+rad-c, y1, x0, y1-rad+c, x0, y1-rad)
		r.lineTo(x0, y0+rad)
		r.cubeTo(x0, y0+rad-c, x0+rad-c, y0, x0+rad, y0)
	}
	r.z.ClosePath()
	r.fill(dst, withOpacity(el.Fill, el.Opacity))
}

// drawLine strokes the first End fraction of the polyline. Points are
// relative to the element position.
func (r *Rasterizer) drawLine(dst *image.RGBA, el Element) {
	if el.End <= 0 || len(el.Points) < 2 {
		return
	}
	k := el.Scale * r.scale
	pts := make([][2]float64, len(el.Points))
	total := 0.0
	for i, p := range el.Points {
		x, y := r.toPixels(el.Position[0]+p[0]*el.Scale, el.Position[1]+p[1]*el.Scale)
		pts[i] = [2]float64{x, y}
		if i > 0 {
			total += math.Hypot(x-pts[i-1][0], y-pts[i-1][1])
		}
	}
	remaining := total * math.Min(el.End, 1)
	half := math.Max(el.LineWidth*k, 1) / 2

	r.z.Reset(r.Width, r.Height)
	for i := 1; i < len(pts) && remaining > 0; i++ {
		a, b := pts[i-1], pts[i]
		dx, dy := b[0]-a[0], b[1]-a[1]
		seg := math.Hypot(dx, dy)
		if seg == 0 {
			continue
		}
		if seg > remaining {
			b = [2]float64{a[0] + dx*remaining/seg, a[1] + dy*remaining/seg}
		}
		remaining -= seg
		nx, ny := -dy/seg*half, dx/seg*half
		r.moveTo(a[0]+nx, a[1]+ny)
		r.lineTo(b[0]+nx, b[1]+ny)
		r.lineTo(b[0]-nx, b[1]-ny)
		r.lineTo(a[0]-nx, a[1]-ny)
		r.z.ClosePath()
	}
	r.fill(dst, withOpacity(el.Stroke, el.Opacity))
}

func (r *Rasterizer) face(bold bool, size float64) (font.Face, error) {
	key := faceKey{bold: bold, size: int(math.Round(size))}
	if key.size < 1 {
		key.size = 1
	}
	if f, ok := r.faces[key]; ok {
		return f, nil
	}
	src := fontRegular
	if bold {
		src = fontBold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(key.size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	r.faces[key] = f
	return f, nil
}

// drawText draws centred, possibly multi-line text.
func (r *Rasterizer) drawText(dst *image.RGBA, el Element) error {
	if el.Text == "" {
		return nil
	}
	size := el.FontSize * el.Scale * r.scale
	if size < 1 {
		return nil
	}
	face, err := r.face(el.Bold, size)
	if err != nil {
		return err
	}
	m := face.Metrics()
	lineHeight := float64(m.Height) / 64
	ascent := float64(m.Ascent) / 64

	lines := strings.Split(el.Text, "\n")
	cx, cy := r.toPixels(el.Position[0], el.Position[1])
	top := cy - lineHeight*float64(len(lines))/2

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(withOpacity(el.Fill, el.Opacity)),
		Face: face,
	}
	for i, line := range lines {
		width := float64(d.MeasureString(line)) / 64
		x := cx - width/2
		y := top + lineHeight*float64(i) + ascent
		d.Dot = fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
		d.DrawString(line)
	}
	return nil
}

func (r *Rasterizer) drawQRCode(dst *image.RGBA, el Element) error {
	bitmap, ok := r.codes[el.Text]
	if !ok {
		q, err := qrcode.New(el.Text, qrcode.Medium)
		if err != nil {
			return err
		}
		bitmap = q.Bitmap()
		r.codes[el.Text] = bitmap
	}
	if len(bitmap) == 0 {
		return nil
	}
	side := el.Size[0] * el.Scale * r.scale
	module := side / float64(len(bitmap))
	cx, cy := r.toPixels(el.Position[0], el.Position[1])
	x0, y0 := cx-side/2, cy-side/2

	dark := image.NewUniform(withOpacity(el.Fill, el.Opacity))
	light := image.NewUniform(withOpacity("#ffffff", el.Opacity))
	for row, cells := range bitmap {
		for col, on := range cells {
			src := light
			if on {
				src = dark
			}
			rect := image.Rect(
				int(math.Floor(x0+float64(col)*module)),
				int(math.Floor(y0+float64(row)*module)),
				int(math.Floor(x0+float64(col+1)*module)),
				int(math.Floor(y0+float64(row+1)*module)),
			)
			draw.Draw(dst, rect.Intersect(dst.Bounds()), src, image.Point{}, draw.Over)
		}
	}
	return nil
}
