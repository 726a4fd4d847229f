package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/sagascape/internal/config"
	"github.com/ivlev/sagascape/internal/director"
	"github.com/ivlev/sagascape/internal/project"
	"github.com/ivlev/sagascape/internal/system"
	"github.com/ivlev/sagascape/internal/video"
)

func newRenderCmd(opts *options) *cobra.Command {
	var scriptPath string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Direct the presentation and encode it to MP4",
		Long: `Render plays every selected scene on a virtual clock, rasterizes the
recorded timelines and encodes them with ffmpeg. With --script the scenes are
read from a stored script instead ("latest" picks the newest in output/scripts).`,
		Example: `  sagascape render
  sagascape render --preset 9:16 --scenes introduction,conclusion
  sagascape render --script latest --stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), cfg, scriptPath)
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", `render a stored script ("latest" for the newest)`)
	return cmd
}

func runRender(ctx context.Context, cfg *config.Config, scriptPath string) error {
	logger := loggerFromContext(ctx)

	script, err := obtainScript(ctx, cfg, scriptPath)
	if err != nil {
		return err
	}

	if cfg.VideoEncoder == "" {
		cfg.VideoEncoder = system.GetBestH264Encoder(ctx)
	}
	if cfg.Quality == 0 {
		cfg.Quality = system.DefaultQuality(cfg.VideoEncoder)
	}
	logger.Info("Rendering", "scenes", len(script.Scenes), "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"fps", cfg.FPS, "encoder", cfg.VideoEncoder, "quality", cfg.Quality)

	enc := &video.FFmpegEncoder{Codec: cfg.VideoEncoder, Quality: cfg.Quality}
	stats, err := project.New(cfg, script, enc, logger).Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("Video ready", "path", stats.Output, "duration", fmt.Sprintf("%.1fs", stats.Duration))
	return nil
}

// obtainScript loads a stored script or directs the configured scenes. An
// empty path falls back to the config file's script setting.
func obtainScript(ctx context.Context, cfg *config.Config, path string) (*director.Script, error) {
	if path == "" {
		path = cfg.ScriptPath
	}
	if path == "" {
		return directScenes(ctx, cfg)
	}
	if path == "latest" {
		latest, err := director.FindLatestScript(director.ScriptsDir)
		if err != nil {
			return nil, err
		}
		path = latest
	}
	loggerFromContext(ctx).Info("Using script", "path", path)
	return director.ReadScript(path)
}
