package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/sagascape/internal/catalog"
	"github.com/ivlev/sagascape/internal/config"
	"github.com/ivlev/sagascape/internal/director"
	"github.com/ivlev/sagascape/internal/scenes"
)

// options are the persistent flags shared by every command. Flags the user
// set override the config file.
type options struct {
	configPath string
	cfg        config.Config
	flags      *cobra.Command
}

func (o *options) bind(root *cobra.Command) {
	d := config.Default()
	f := root.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "YAML or TOML settings file")
	f.StringVarP(&o.cfg.Output, "output", "o", d.Output, "output .mp4 file or directory")
	f.StringVar(&o.cfg.ContentPath, "content", "", "YAML content file (default: built-in SagaScape content)")
	f.StringSliceVar(&o.cfg.Scenes, "scenes", nil, "scenes to include (default: all)")
	f.IntVar(&o.cfg.Width, "width", d.Width, "frame width")
	f.IntVar(&o.cfg.Height, "height", d.Height, "frame height")
	f.IntVar(&o.cfg.FPS, "fps", d.FPS, "frames per second")
	f.IntVar(&o.cfg.Workers, "workers", 0, "render workers (0: by cores and memory)")
	f.Float64Var(&o.cfg.FadeDuration, "fade", d.FadeDuration, "transition length in seconds")
	f.StringVar(&o.cfg.TransitionType, "transition", d.TransitionType, "xfade transition: "+strings.Join(config.Transitions, ", "))
	f.StringVar(&o.cfg.Background, "background", d.Background, "background colour")
	f.StringVar(&o.cfg.AudioPath, "audio", "", "audio track to mux")
	f.StringVar(&o.cfg.Preset, "preset", "", "aspect preset: 16:9, 9:16, 4:5")
	f.StringVar(&o.cfg.VideoEncoder, "encoder", "", "H.264 encoder (default: best available)")
	f.IntVar(&o.cfg.Quality, "quality", 0, "quality (0: auto; x264 CRF, VideoToolbox Q*100 kbit/s)")
	f.BoolVar(&o.cfg.ShowStats, "stats", false, "print a performance report and append to benchmark.log")
	o.flags = root
}

// load builds the effective config: defaults, then the config file, then
// every flag the user set explicitly.
func (o *options) load() (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}

	f := o.flags.PersistentFlags()
	set := func(name string, apply func()) {
		if f.Changed(name) {
			apply()
		}
	}
	set("output", func() { cfg.Output = o.cfg.Output })
	set("content", func() { cfg.ContentPath = o.cfg.ContentPath })
	set("scenes", func() { cfg.Scenes = o.cfg.Scenes })
	set("width", func() { cfg.Width = o.cfg.Width })
	set("height", func() { cfg.Height = o.cfg.Height })
	set("fps", func() { cfg.FPS = o.cfg.FPS })
	set("workers", func() { cfg.Workers = o.cfg.Workers })
	set("fade", func() { cfg.FadeDuration = o.cfg.FadeDuration })
	set("transition", func() { cfg.TransitionType = o.cfg.TransitionType })
	set("background", func() { cfg.Background = o.cfg.Background })
	set("audio", func() { cfg.AudioPath = o.cfg.AudioPath })
	set("preset", func() { cfg.Preset = o.cfg.Preset })
	set("encoder", func() { cfg.VideoEncoder = o.cfg.VideoEncoder })
	set("quality", func() { cfg.Quality = o.cfg.Quality })
	set("stats", func() { cfg.ShowStats = o.cfg.ShowStats })

	if err := cfg.ApplyPreset(); err != nil {
		return nil, err
	}
	cfg.BuildVersion = version
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadContent(cfg *config.Config) (*catalog.Content, error) {
	if cfg.ContentPath == "" {
		return catalog.DefaultContent(), nil
	}
	c, err := catalog.LoadFile(cfg.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return c, nil
}

// directScenes plays the selected scenes over the configured content.
func directScenes(ctx context.Context, cfg *config.Config) (*director.Script, error) {
	content, err := loadContent(cfg)
	if err != nil {
		return nil, err
	}
	selected, err := scenes.Select(scenes.All(), cfg.SceneSelected)
	if err != nil {
		return nil, err
	}

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	script, err := director.New(content, logger).Direct(ctx, selected)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Directed %d scenes, %.1fs of video", len(script.Scenes), script.TotalDuration))
	return script, nil
}
