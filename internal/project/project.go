// Package project turns a directed script into a video: every scene is
// rasterized by a worker pool, streamed to the encoder as one segment, and
// the segments are joined with transitions.
package project

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/sagascape/internal/config"
	"github.com/ivlev/sagascape/internal/director"
	"github.com/ivlev/sagascape/internal/easing"
	"github.com/ivlev/sagascape/internal/renderer"
	"github.com/ivlev/sagascape/internal/system"
	"github.com/ivlev/sagascape/internal/video"
)

type Project struct {
	Config  *config.Config
	Script  *director.Script
	Encoder video.Encoder
	Curves  *easing.Registry
	Logger  *log.Logger

	runID   string
	tempDir string
}

func New(cfg *config.Config, script *director.Script, enc video.Encoder, logger *log.Logger) *Project {
	if logger == nil {
		logger = log.Default()
	}
	return &Project{
		Config:  cfg,
		Script:  script,
		Encoder: enc,
		Curves:  easing.Default(),
		Logger:  logger,
	}
}

// Stats describes a finished run.
type Stats struct {
	RunID        string
	Output       string
	Scenes       int
	Frames       int
	Duration     float64
	Workers      int
	Allocated    int64
	RenderTime   time.Duration
	ConcatTime   time.Duration
	TotalTime    time.Duration
	EffectiveFPS float64
}

// Run renders every scene of the script and writes the final video.
func (p *Project) Run(ctx context.Context) (*Stats, error) {
	startTime := time.Now()
	if len(p.Script.Scenes) == 0 {
		return nil, fmt.Errorf("script has no scenes")
	}

	p.runID = uuid.NewString()
	var err error
	p.tempDir, err = os.MkdirTemp("", "sagascape_"+p.runID[:8]+"_")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(p.tempDir)

	cfg := p.Config
	workers := cfg.Workers
	host := system.HostReport()
	if workers <= 0 {
		workers = host.DefaultWorkers(cfg.Width, cfg.Height)
	}
	output := OutputPath(cfg.Output, p.Script.Title, startTime)

	p.Logger.Info("rendering", "title", p.Script.Title, "scenes", len(p.Script.Scenes),
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "fps", cfg.FPS, "workers", workers, "run", p.runID)
	p.Logger.Debug("host", "report", host.String())
	p.checkAudio(ctx)

	pool := system.NewFramePool(cfg.Width, cfg.Height)
	stats := &Stats{RunID: p.runID, Output: output, Scenes: len(p.Script.Scenes), Workers: workers}

	renderStart := time.Now()
	segments := make([]video.Segment, 0, len(p.Script.Scenes))
	for i, sc := range p.Script.Scenes {
		seg, frames, err := p.renderScene(ctx, i, sc, workers, pool)
		if err != nil {
			return nil, fmt.Errorf("scene %s: %w", sc.Name, err)
		}
		segments = append(segments, seg)
		stats.Frames += frames
		stats.Duration += seg.Duration
		p.Logger.Infof("Ready: %d/%d (%s, %d frames)", i+1, len(p.Script.Scenes), sc.Name, frames)
	}
	stats.RenderTime = time.Since(renderStart)

	p.Logger.Info("joining segments", "transition", cfg.TransitionType, "fade", video.CrossfadeDuration(segments, *cfg))
	concatStart := time.Now()
	if err := p.Encoder.Concatenate(ctx, segments, output, p.tempDir, *cfg); err != nil {
		return nil, fmt.Errorf("concatenate: %w", err)
	}
	stats.ConcatTime = time.Since(concatStart)
	stats.Duration -= video.CrossfadeDuration(segments, *cfg) * float64(len(segments)-1)

	stats.TotalTime = time.Since(startTime)
	stats.Allocated = pool.Allocated()
	if secs := stats.TotalTime.Seconds(); secs > 0 {
		stats.EffectiveFPS = float64(stats.Frames) / secs
	}
	if cfg.ShowStats {
		p.report(stats)
	}
	return stats, nil
}

// FrameCount is the number of frames a scene of duration seconds needs.
func FrameCount(duration float64, fps int) int {
	return max(int(math.Round(duration*float64(fps))), 1)
}

// renderScene rasterizes a scene with a worker pool and streams the frames,
// in order, to the encoder. At most 2*workers frames are in flight.
func (p *Project) renderScene(ctx context.Context, index int, sc director.SceneScript, workers int, pool *system.FramePool) (video.Segment, int, error) {
	tl, err := sc.Timeline(p.Curves)
	if err != nil {
		return video.Segment{}, 0, err
	}
	cfg := p.Config
	params := cfg.Segment(index, sc.Name, sc.Duration)
	n := FrameCount(sc.Duration, cfg.FPS)
	workers = min(workers, n)
	seg := video.Segment{
		Path:     filepath.Join(p.tempDir, fmt.Sprintf("s%d.mp4", index)),
		Duration: float64(n) / float64(cfg.FPS),
	}
	params.Duration = seg.Duration

	slots := make([]chan *image.RGBA, n)
	for i := range slots {
		slots[i] = make(chan *image.RGBA, 1)
	}
	inFlight := make(chan struct{}, workers*2)
	jobs := make(chan int)
	frames := make(chan *image.RGBA)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := range n {
			select {
			case inFlight <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for range workers {
		g.Go(func() error {
			r, err := renderer.NewRasterizer(cfg.Width, cfg.Height, cfg.Background)
			if err != nil {
				return err
			}
			defer r.Close()
			for i := range jobs {
				img := pool.Get()
				if err := r.Draw(img, tl.Sample(float64(i)/float64(cfg.FPS))); err != nil {
					pool.Put(img)
					return fmt.Errorf("frame %d: %w", i, err)
				}
				slots[i] <- img
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(frames)
		for i := range n {
			var img *image.RGBA
			select {
			case img = <-slots[i]:
			case <-gctx.Done():
				return gctx.Err()
			}
			select {
			case frames <- img:
			case <-gctx.Done():
				pool.Put(img)
				return gctx.Err()
			}
		}
		return nil
	})

	g.Go(func() error {
		return p.Encoder.EncodeFrames(gctx, frames, seg.Path, params, func(img *image.RGBA) {
			pool.Put(img)
			<-inFlight
		})
	})

	if err := g.Wait(); err != nil {
		return video.Segment{}, 0, err
	}
	return seg, n, nil
}

func (p *Project) checkAudio(ctx context.Context) {
	if p.Config.AudioPath == "" {
		return
	}
	d, err := system.GetAudioDuration(ctx, p.Config.AudioPath)
	if err != nil {
		p.Logger.Warn("could not read audio duration", "err", err)
		return
	}
	if d < p.Script.TotalDuration {
		p.Logger.Warn("audio is shorter than the video; output will be cut", "audio", d, "video", p.Script.TotalDuration)
	}
}

// OutputPath returns target when it names an .mp4 file, or a timestamped
// file named after the title inside the target directory.
func OutputPath(target, title string, now time.Time) string {
	if strings.EqualFold(filepath.Ext(target), ".mp4") {
		return target
	}
	if target == "" {
		target = "output"
	}
	name := strings.ToLower(strings.Join(strings.Fields(title), "_"))
	if name == "" {
		name = "sagascape"
	}
	return filepath.Join(target, fmt.Sprintf("%s_%s.mp4", name, now.Format("2006-01-02_15-04-05")))
}
