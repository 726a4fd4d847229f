package project

import (
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/sagascape/internal/anim"
	"github.com/ivlev/sagascape/internal/catalog"
	"github.com/ivlev/sagascape/internal/config"
	"github.com/ivlev/sagascape/internal/director"
	"github.com/ivlev/sagascape/internal/renderer"
	"github.com/ivlev/sagascape/internal/video"
)

// fakeEncoder records what it was asked to encode.
type fakeEncoder struct {
	mu        sync.Mutex
	frames    map[string]int
	firstRed  map[string]uint8
	segments  []video.Segment
	final     string
	failAfter int
}

func (f *fakeEncoder) EncodeFrames(ctx context.Context, frames <-chan *image.RGBA, path string, params config.SegmentParams, release func(*image.RGBA)) error {
	count := 0
	for img := range frames {
		f.mu.Lock()
		if count == 0 {
			f.firstRed[path] = img.RGBAAt(params.Width/2, params.Height/2).R
		}
		f.mu.Unlock()
		count++
		release(img)
		if f.failAfter > 0 && count == f.failAfter {
			return errors.New("encoder died")
		}
	}
	f.mu.Lock()
	f.frames[path] = count
	f.mu.Unlock()
	return nil
}

func (f *fakeEncoder) Concatenate(ctx context.Context, segments []video.Segment, finalPath, tmpDir string, cfg config.Config) error {
	f.segments = segments
	f.final = finalPath
	return nil
}

func newFake() *fakeEncoder {
	return &fakeEncoder{frames: map[string]int{}, firstRed: map[string]uint8{}}
}

func redScene(name string, hold float64) director.Scene {
	return director.Scene{Name: name, Play: func(ctx context.Context, s *director.Stage) error {
		return anim.Sequence(ctx,
			s.Put(renderer.Rect("box", 1920, 1080, "#ff0000")),
			s.Pause(hold),
		)
	}}
}

func testScript(t *testing.T, scenes ...director.Scene) *director.Script {
	t.Helper()
	script, err := director.New(catalog.DefaultContent(), log.New(io.Discard)).Direct(context.Background(), scenes)
	require.NoError(t, err)
	return script
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Width, cfg.Height = 64, 36
	cfg.FPS = 10
	cfg.Workers = 3
	cfg.Output = filepath.Join(t.TempDir(), "out.mp4")
	return cfg
}

func TestRunEncodesEveryScene(t *testing.T) {
	enc := newFake()
	cfg := testConfig(t)
	p := New(cfg, testScript(t, redScene("a", 1), redScene("b", 2.5)), enc, log.New(io.Discard))

	stats, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, enc.segments, 2)
	assert.Equal(t, 10, enc.frames[enc.segments[0].Path])
	assert.Equal(t, 25, enc.frames[enc.segments[1].Path])
	assert.Equal(t, uint8(255), enc.firstRed[enc.segments[0].Path])
	assert.Equal(t, cfg.Output, enc.final)

	assert.Equal(t, 35, stats.Frames)
	assert.Equal(t, 2, stats.Scenes)
	assert.InDelta(t, 3.5-0.5, stats.Duration, 1e-9)
	assert.Positive(t, stats.Allocated)
}

func TestRunStopsOnEncoderFailure(t *testing.T) {
	enc := newFake()
	enc.failAfter = 3
	p := New(testConfig(t), testScript(t, redScene("a", 5)), enc, log.New(io.Discard))

	done := make(chan error, 1)
	go func() {
		_, err := p.Run(context.Background())
		done <- err
	}()
	select {
	case err := <-done:
		assert.ErrorContains(t, err, "encoder died")
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after the encoder failed")
	}
	assert.Empty(t, enc.segments)
}

func TestRunRejectsEmptyScript(t *testing.T) {
	p := New(testConfig(t), &director.Script{}, newFake(), nil)
	_, err := p.Run(context.Background())
	assert.Error(t, err)
}

func TestFrameCount(t *testing.T) {
	assert.Equal(t, 30, FrameCount(1, 30))
	assert.Equal(t, 504, FrameCount(16.8, 30))
	assert.Equal(t, 1, FrameCount(0, 30))
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "video/final.mp4", OutputPath("video/final.mp4", "x", now))
	assert.Equal(t, filepath.Join("output", "sagascape_2026-10-18_09-30-00.mp4"), OutputPath("", "SagaScape", now))
	assert.Equal(t, filepath.Join("renders", "old_norse_2026-10-18_09-30-00.mp4"), OutputPath("renders", "Old  Norse", now))
}

func TestRenderStillAndWritePNG(t *testing.T) {
	script := testScript(t, redScene("a", 1))
	cfg := testConfig(t)

	img, err := RenderStill(script.Scenes[0], 99, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), img.RGBAAt(32, 18).R)

	path := filepath.Join(t.TempDir(), "frames", "a.png")
	require.NoError(t, WritePNG(path, img))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 36), decoded.Bounds())
}
