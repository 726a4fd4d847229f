package renderer

import (
	"context"
	"image"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/sagascape/internal/anim"
	"github.com/ivlev/sagascape/internal/apperr"
	"github.com/ivlev/sagascape/internal/easing"
	"github.com/ivlev/sagascape/internal/geom"
)

func find(t *testing.T, f Frame, id string) Element {
	t.Helper()
	for _, el := range f.Elements {
		if el.ID == id {
			return el
		}
	}
	t.Fatalf("element %q not in frame at %.2f", id, f.Time)
	return Element{}
}

func TestTimelineRecordsAtCursor(t *testing.T) {
	ctx := anim.WithCursor(context.Background())
	tl := NewTimeline(nil, nil)

	require.NoError(t, tl.Add(ctx, Rect("box", 100, 50, "#ff0000").Hidden()))
	require.NoError(t, tl.Animate(ctx, "box", PropOpacity, 1, 0.5, easing.EaseOutCubic))
	require.NoError(t, tl.Wait(ctx, 1))
	require.NoError(t, tl.Add(ctx, Text("label", "hi", 24, "#ffffff")))

	assert.InDelta(t, 1.5, anim.Now(ctx), 1e-9)
	assert.InDelta(t, 1.5, tl.Duration(), 1e-9)

	els := tl.Elements()
	require.Len(t, els, 2)
	assert.Equal(t, 0.0, els[0].At)
	assert.Equal(t, 1.5, els[1].At)

	tweens := tl.Tweens()
	require.Len(t, tweens, 1)
	assert.Equal(t, Tween{Element: "box", Property: PropOpacity, Start: 0, Duration: 0.5, Easing: easing.EaseOutCubic, From: 0, To: 1}, tweens[0])
}

func TestTimelineErrors(t *testing.T) {
	ctx := context.Background()
	tl := NewTimeline(nil, nil)
	require.NoError(t, tl.Add(ctx, Rect("box", 10, 10, "#fff")))

	tests := []struct {
		name string
		err  error
		code apperr.Code
	}{
		{"duplicate id", tl.Add(ctx, Rect("box", 1, 1, "#fff")), apperr.CodeInvalidArgument},
		{"empty id", tl.Add(ctx, Rect("", 1, 1, "#fff")), apperr.CodeInvalidArgument},
		{"unknown parent", tl.Add(ctx, Rect("child", 1, 1, "#fff").In("nope")), apperr.CodeNotFound},
		{"short line", tl.Add(ctx, Line("l", "#fff", 2, geom.Vec(0, 0))), apperr.CodeInvalidArgument},
		{"nan position", tl.Add(ctx, Rect("nan", 1, 1, "#fff").Pos(math.NaN(), 0)), apperr.CodeInvalidArgument},
		{"unknown element", tl.Animate(ctx, "ghost", PropX, 1, 1, ""), apperr.CodeNotFound},
		{"negative duration", tl.Animate(ctx, "box", PropX, 1, -1, ""), apperr.CodeInvalidArgument},
		{"unknown easing", tl.Animate(ctx, "box", PropX, 1, 1, "bouncy"), apperr.CodeNotFound},
		{"text is not numeric", tl.Animate(ctx, "box", PropText, 1, 1, ""), apperr.CodeInvalidArgument},
		{"bad colour", tl.Tint(ctx, "box", "blue-ish", 1, ""), apperr.CodeInvalidArgument},
		{"set text unknown", tl.SetText(ctx, "ghost", "x"), apperr.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.Equal(t, tt.code, apperr.GetCode(tt.err))
		})
	}
	assert.Len(t, tl.Elements(), 1)
	assert.Empty(t, tl.Tweens())
}

func TestSampleInterpolates(t *testing.T) {
	ctx := anim.WithCursor(context.Background())
	tl := NewTimeline(nil, nil)
	require.NoError(t, tl.Add(ctx, Rect("box", 100, 100, "#000000").Pos(-100, 0)))
	require.NoError(t, tl.Animate(ctx, "box", PropX, 100, 2, easing.Linear))
	require.NoError(t, tl.Tint(ctx, "box", "#ffffff", 1, ""))

	tests := []struct {
		time float64
		x    float64
		fill string
	}{
		{0, -100, "#000000"},
		{1, 0, "#000000"},
		{2, 100, "#000000"},
		{3, 100, "#ffffff"},
		{10, 100, "#ffffff"},
	}
	for _, tt := range tests {
		el := find(t, tl.Sample(tt.time), "box")
		assert.InDelta(t, tt.x, el.Position.X(), 1e-9, "x at %.1f", tt.time)
		assert.Equal(t, tt.fill, el.Fill, "fill at %.1f", tt.time)
	}

	mid := find(t, tl.Sample(2.5), "box")
	assert.NotEqual(t, "#000000", mid.Fill)
	assert.NotEqual(t, "#ffffff", mid.Fill)
}

func TestSampleAppliesEasing(t *testing.T) {
	ctx := anim.WithCursor(context.Background())
	tl := NewTimeline(nil, nil)
	require.NoError(t, tl.Add(ctx, Circle("dot", 10, "#fff").Hidden()))
	require.NoError(t, tl.Animate(ctx, "dot", PropOpacity, 1, 1, easing.EaseInCubic))

	el := find(t, tl.Sample(0.5), "dot")
	assert.InDelta(t, easing.InCubic(0.5), el.Opacity, 1e-9)
}

func TestSampleMovesAlongEasedPath(t *testing.T) {
	ctx := anim.WithCursor(context.Background())
	tl := NewTimeline(nil, nil)
	require.NoError(t, tl.Add(ctx, Circle("node", 70, "#3b82f6").Pos(-300, -150)))
	require.NoError(t, anim.All(ctx,
		func(ctx context.Context) error {
			return tl.Animate(ctx, "node", PropX, -100, 0.6, easing.EaseInOutCubic)
		},
		func(ctx context.Context) error {
			return tl.Animate(ctx, "node", PropY, -100, 0.6, easing.EaseInOutCubic)
		},
	))

	from, to := geom.Vec(-300, -150), geom.Vec(-100, -100)
	for _, at := range []float64{0, 0.15, 0.3, 0.45, 0.6, 2} {
		want := anim.Interpolate(from, to, at/0.6, easing.InOutCubic)
		got := find(t, tl.Sample(at), "node").Position
		assert.InDelta(t, want.X(), got.X(), 1e-9, "x at %.2f", at)
		assert.InDelta(t, want.Y(), got.Y(), 1e-9, "y at %.2f", at)
	}
	assert.Equal(t, to, find(t, tl.Sample(0.6), "node").Position)
}

func TestSampleParentTransform(t *testing.T) {
	ctx := anim.WithCursor(context.Background())
	tl := NewTimeline(nil, nil)
	require.NoError(t, tl.Add(ctx, Rect("card", 200, 200, "#333").Pos(100, 50).WithOpacity(0.5).WithScale(2)))
	require.NoError(t, tl.Add(ctx, Text("title", "x", 20, "#fff").Pos(10, -10).WithOpacity(0.5).In("card")))

	child := find(t, tl.Sample(0), "title")
	assert.Equal(t, geom.Vec(120, 30), child.Position)
	assert.InDelta(t, 0.25, child.Opacity, 1e-9)
	assert.InDelta(t, 2, child.Scale, 1e-9)
}

func TestSampleHidesFutureElements(t *testing.T) {
	ctx := anim.WithCursor(context.Background())
	tl := NewTimeline(nil, nil)
	require.NoError(t, tl.Add(ctx, Rect("first", 1, 1, "#fff")))
	require.NoError(t, tl.Wait(ctx, 2))
	require.NoError(t, tl.Add(ctx, Rect("second", 1, 1, "#fff")))
	require.NoError(t, tl.SetText(ctx, "first", "changed"))

	assert.Len(t, tl.Sample(1).Elements, 1)
	assert.Len(t, tl.Sample(2).Elements, 2)
	assert.Equal(t, "", find(t, tl.Sample(1), "first").Text)
	assert.Equal(t, "changed", find(t, tl.Sample(2), "first").Text)
	assert.Equal(t, "changed", tl.Text("first"))
}

func TestParallelTweensShareStart(t *testing.T) {
	ctx := anim.WithCursor(context.Background())
	tl := NewTimeline(nil, nil)
	ids := []string{"a", "b", "c"}
	for _, id := range ids {
		require.NoError(t, tl.Add(ctx, Rect(id, 1, 1, "#fff").Hidden()))
	}

	var steps []anim.Step
	for _, id := range ids {
		steps = append(steps, func(ctx context.Context) error {
			return tl.Animate(ctx, id, PropOpacity, 1, 0.6, "")
		})
	}
	require.NoError(t, anim.All(ctx, steps...))

	assert.InDelta(t, 0.6, anim.Now(ctx), 1e-9)
	for _, tw := range tl.Tweens() {
		assert.Equal(t, 0.0, tw.Start)
	}
}

func TestConcurrentRecording(t *testing.T) {
	tl := NewTimeline(nil, nil)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := string(rune('A' + i%26))
			if i >= 26 {
				id += "2"
			}
			assert.NoError(t, tl.Add(context.Background(), Rect(id, 1, 1, "#fff")))
		}()
	}
	wg.Wait()
	assert.Len(t, tl.Elements(), 50)
}

func TestRestoreMatchesRecording(t *testing.T) {
	ctx := anim.WithCursor(context.Background())
	tl := NewTimeline(nil, nil)
	require.NoError(t, tl.Add(ctx, Rect("box", 10, 10, "#123456")))
	require.NoError(t, tl.Animate(ctx, "box", PropY, 200, 1.5, easing.EaseInOutCubic))

	restored, err := Restore(tl.Elements(), tl.Tweens(), 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 3.0, restored.Duration())
	for _, at := range []float64{0, 0.4, 0.75, 1.5} {
		assert.Equal(t, tl.Sample(at), restored.Sample(at))
	}

	_, err = Restore(nil, []Tween{{Element: "ghost"}}, 0, nil)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestBlendColors(t *testing.T) {
	assert.Equal(t, "#000000", BlendColors("#000000", "#ffffff", 0))
	assert.Equal(t, "#ffffff", BlendColors("#000", "#fff", 1))
	assert.Equal(t, "nope", BlendColors("nope", "#fff", 0.2))
	assert.Equal(t, "#fff", BlendColors("nope", "#fff", 0.8))

	_, err := ParseColor("#abc")
	assert.NoError(t, err)
}

func TestRasterizerDraws(t *testing.T) {
	r, err := NewRasterizer(192, 108, "#000000")
	require.NoError(t, err)
	defer r.Close()

	frame := Frame{Elements: []Element{
		Rect("box", 400, 400, "#ff0000"),
		Text("label", "Hello\nworld", 48, "#ffffff").Pos(0, 400),
		Line("edge", "#00ff00", 20, geom.Vec(-900, -500), geom.Vec(-500, -500)),
		QRCode("qr", "https://example.com", 300, "#000000").Pos(700, 300),
	}}
	dst := image.NewRGBA(image.Rect(0, 0, 192, 108))
	require.NoError(t, r.Draw(dst, frame))

	center := dst.RGBAAt(96, 54)
	assert.Equal(t, uint8(255), center.R)
	assert.Equal(t, uint8(0), center.G)

	corner := dst.RGBAAt(191, 0)
	assert.Equal(t, uint8(0), corner.R)
	assert.Equal(t, uint8(255), corner.A)

	line := dst.RGBAAt(15, 4)
	assert.Greater(t, line.G, uint8(100))
}

func TestRasterizerSkipsInvisible(t *testing.T) {
	r, err := NewRasterizer(64, 36, "#102030")
	require.NoError(t, err)
	defer r.Close()

	dst := image.NewRGBA(image.Rect(0, 0, 64, 36))
	require.NoError(t, r.Draw(dst, Frame{Elements: []Element{Rect("ghost", 1920, 1080, "#ffffff").Hidden()}}))
	px := dst.RGBAAt(32, 18)
	assert.Equal(t, uint8(0x10), px.R)
	assert.Equal(t, uint8(0x20), px.G)
	assert.Equal(t, uint8(0x30), px.B)
}

func TestNewRasterizerRejectsEmptySize(t *testing.T) {
	_, err := NewRasterizer(0, 10, "")
	assert.Error(t, err)
}
