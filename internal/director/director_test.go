package director

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/sagascape/internal/anim"
	"github.com/ivlev/sagascape/internal/catalog"
	"github.com/ivlev/sagascape/internal/easing"
	"github.com/ivlev/sagascape/internal/geom"
	"github.com/ivlev/sagascape/internal/renderer"
)

func quietDirector() *Director {
	return New(catalog.DefaultContent(), log.New(io.Discard))
}

func boxScene(name string, hold float64) Scene {
	return Scene{Name: name, Play: func(ctx context.Context, s *Stage) error {
		return anim.Sequence(ctx,
			s.Put(renderer.Rect("box", 100, 100, "#ff0000").Hidden()),
			s.FadeIn("box", 0.5),
			s.Pause(hold),
		)
	}}
}

func TestDirectRecordsScenes(t *testing.T) {
	script, err := quietDirector().Direct(context.Background(), []Scene{boxScene("one", 1), boxScene("two", 2)})
	require.NoError(t, err)

	assert.Equal(t, ScriptVersion, script.Version)
	assert.Equal(t, "SagaScape", script.Title)
	require.Len(t, script.Scenes, 2)
	assert.Equal(t, "one", script.Scenes[0].Name)
	assert.InDelta(t, 1.5, script.Scenes[0].Duration, 1e-9)
	assert.InDelta(t, 2.5, script.Scenes[1].Duration, 1e-9)
	assert.InDelta(t, 4.0, script.TotalDuration, 1e-9)

	// every scene starts its own timeline at zero
	assert.Equal(t, 0.0, script.Scenes[1].Tweens[0].Start)
}

func TestDirectIsFailFast(t *testing.T) {
	boom := errors.New("boom")
	played := 0
	scenes := []Scene{
		{Name: "ok", Play: func(context.Context, *Stage) error { played++; return nil }},
		{Name: "bad", Play: func(context.Context, *Stage) error { played++; return boom }},
		{Name: "never", Play: func(context.Context, *Stage) error { played++; return nil }},
	}
	_, err := quietDirector().Direct(context.Background(), scenes)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bad")
	assert.Equal(t, 2, played)
}

func TestDirectRejectsEmptyAndBadContent(t *testing.T) {
	d := quietDirector()
	_, err := d.Direct(context.Background(), nil)
	assert.Error(t, err)

	d.Content = catalog.DefaultContent()
	d.Content.Entries = append(d.Content.Entries, catalog.DictionaryEntry{Word: "tómr"})
	_, err = d.Direct(context.Background(), []Scene{boxScene("one", 1)})
	assert.Error(t, err)
}

func TestDirectDoesNotWaitOnWallClock(t *testing.T) {
	start := time.Now()
	_, err := quietDirector().Direct(context.Background(), []Scene{boxScene("long", 3600)})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func newStage() (*Stage, *renderer.Timeline) {
	tl := renderer.NewTimeline(nil, nil)
	return &Stage{
		Renderer: tl,
		Clock:    anim.VirtualClock{},
		Entities: anim.NewRegistry(nil),
		Content:  catalog.DefaultContent(),
		Logger:   log.New(io.Discard),
	}, tl
}

func TestTypewrite(t *testing.T) {
	s, tl := newStage()
	ctx := anim.WithCursor(context.Background())
	require.NoError(t, s.Add(ctx, renderer.Text("word", "placeholder", 24, "#fff")))
	require.NoError(t, s.Typewrite(ctx, "word", "maðr", 0.05))

	assert.Equal(t, "maðr", tl.Text("word"))
	assert.InDelta(t, 0.25, anim.Now(ctx), 1e-9)

	var steps []string
	for _, tw := range tl.Tweens() {
		if tw.Property == renderer.PropText {
			steps = append(steps, tw.Text)
		}
	}
	assert.Equal(t, []string{"", "m", "ma", "mað", "maðr"}, steps)
}

func TestEaseFollowsConfiguredCurve(t *testing.T) {
	for _, curve := range []string{easing.Linear, easing.EaseInOutCubic, easing.EaseOutCubic} {
		t.Run(curve, func(t *testing.T) {
			s, tl := newStage()
			ctx := anim.WithCursor(context.Background())
			cfg, err := s.Config(curve, 0.5, 1.0)
			require.NoError(t, err)

			require.NoError(t, anim.Sequence(ctx,
				s.Put(renderer.Text("highlight", "Type Guards", 26, "#22d3ee").Hidden()),
				s.Ease("highlight", renderer.PropOpacity, cfg),
			))
			assert.InDelta(t, 0.5, anim.Now(ctx), 1e-9)

			for _, at := range []float64{0.1, 0.125, 0.3} {
				var got float64
				for _, el := range tl.Sample(at).Elements {
					if el.ID == "highlight" {
						got = el.Opacity
					}
				}
				assert.InDelta(t, cfg.At(0, at), got, 1e-9, "opacity at %.3f", at)
			}
		})
	}

	s, _ := newStage()
	_, err := s.Config("wobble", 1, 1)
	assert.Error(t, err)
}

func TestPlaceAndMoveEntity(t *testing.T) {
	s, tl := newStage()
	ctx := anim.WithCursor(context.Background())
	node, err := s.Entities.NewDictionaryNode("cleasby-vigfusson", geom.Vec(-300, -150), 35207)
	require.NoError(t, err)

	require.NoError(t, s.Place(ctx, node))
	require.NoError(t, anim.Sequence(ctx,
		s.Reveal(node.ID(), 0.6, easing.EaseInOutCubic),
		s.Move(node, geom.Vec(-300, -100), 0.6, ""),
	))

	assert.Equal(t, geom.Vec(-300, -100), node.Position())
	assert.InDelta(t, 1.2, anim.Now(ctx), 1e-9)
	require.Len(t, s.Placed(), 1)

	frame := tl.Sample(10)
	var count string
	for _, el := range frame.Elements {
		if el.ID == node.ID() {
			assert.Equal(t, geom.Vec(-300, -100), el.Position)
			assert.Equal(t, 1.0, el.Opacity)
		}
		if el.ID == node.ID()+"/count" {
			count = el.Text
		}
	}
	assert.Equal(t, "35,207 entries", count)

	err = s.Move(node, geom.Vec(0, math.Inf(-1)), 1, "")(ctx)
	assert.Error(t, err)
}

func TestScriptRoundTrip(t *testing.T) {
	script, err := quietDirector().Direct(context.Background(), []Scene{boxScene("one", 1)})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "script.yaml")
	require.NoError(t, WriteScript(script, path))
	back, err := ReadScript(path)
	require.NoError(t, err)
	assert.Equal(t, script, back)

	sc, ok := back.Scene("one")
	require.True(t, ok)
	tl, err := sc.Timeline(nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, tl.Duration(), 1e-9)

	_, ok = back.Scene("missing")
	assert.False(t, ok)
}

func TestReadScriptRejectsOtherVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"0.1\"\ntitle: x\n"), 0644))
	_, err := ReadScript(path)
	assert.Error(t, err)
}

func TestGenerateScriptPath(t *testing.T) {
	path := GenerateScriptPath("scripts")
	assert.Equal(t, "scripts", filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "script_"))
	assert.Equal(t, ".yaml", filepath.Ext(path))
}

func TestFindLatestScript(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "script_2026-02-12_10-00-00.yaml"),
		filepath.Join(dir, "script_2026-02-13_01-00-00.yaml"),
		filepath.Join(dir, "script_2026-02-11_15-30-00.yaml"),
	}
	for i, f := range files {
		require.NoError(t, os.WriteFile(f, []byte("version: \"1.0\"\n"), 0644))
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(f, modTime, modTime))
	}

	latest, err := FindLatestScript(dir)
	require.NoError(t, err)
	assert.Equal(t, files[len(files)-1], latest)

	_, err = FindLatestScript(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
