package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/sagascape/internal/apperr"
	"github.com/ivlev/sagascape/internal/config"
	"github.com/ivlev/sagascape/internal/director"
	"github.com/ivlev/sagascape/internal/easing"
	"github.com/ivlev/sagascape/internal/project"
)

type previewOptions struct {
	at     []float64
	scene  string
	outDir string
	script string
	watch  bool
}

func newPreviewCmd(opts *options) *cobra.Command {
	p := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render PNG stills of scenes at given times",
		Long: `Preview writes one PNG per scene and time into --out, named
<scene>_<seconds>.png. With --watch the stills are re-rendered whenever the
content or config file changes.`,
		Example: `  sagascape preview --at 0,2.5,10
  sagascape preview --scene conclusion --at 20 --content content.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !p.watch {
				return runPreview(ctx, opts, p)
			}

			cfg, err := opts.load()
			if err != nil {
				return err
			}
			paths := watchedPaths(opts.configPath, cfg.ContentPath)
			if len(paths) == 0 {
				return apperr.New(apperr.CodeInvalidConfig, "--watch needs --content or --config")
			}
			if err := runPreview(ctx, opts, p); err != nil {
				return err
			}
			logger := loggerFromContext(ctx)
			logger.Info("Watching for changes", "files", paths)
			return watchFiles(ctx, logger, paths, debounceDelay, func() {
				if err := runPreview(ctx, opts, p); err != nil {
					logger.Error("Preview failed", "err", err)
				}
			})
		},
	}

	cmd.Flags().Float64SliceVar(&p.at, "at", []float64{0}, "times in seconds to capture")
	cmd.Flags().StringVar(&p.scene, "scene", "", "only this scene (default: every selected scene)")
	cmd.Flags().StringVar(&p.outDir, "out", filepath.Join("output", "preview"), "directory for the PNG files")
	cmd.Flags().StringVar(&p.script, "script", "", `preview a stored script ("latest" for the newest)`)
	cmd.Flags().BoolVarP(&p.watch, "watch", "w", false, "re-render when the content or config file changes")
	return cmd
}

func watchedPaths(paths ...string) []string {
	var out []string
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// runPreview reloads config and content on every call so watch mode picks
// up edits.
func runPreview(ctx context.Context, opts *options, p *previewOptions) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	script, err := obtainScript(ctx, cfg, p.script)
	if err != nil {
		return err
	}
	written, err := writeStills(script, cfg, p)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Info("Stills written", "count", len(written), "dir", p.outDir)
	return nil
}

func writeStills(script *director.Script, cfg *config.Config, p *previewOptions) ([]string, error) {
	curves := easing.Default()
	var written []string
	found := false
	for _, sc := range script.Scenes {
		if p.scene != "" && !strings.EqualFold(sc.Name, p.scene) {
			continue
		}
		found = true
		for _, t := range p.at {
			img, err := project.RenderStill(sc, t, cfg, curves)
			if err != nil {
				return written, fmt.Errorf("scene %s at %.2fs: %w", sc.Name, t, err)
			}
			path := filepath.Join(p.outDir, stillName(sc.Name, t))
			if err := project.WritePNG(path, img); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}
	if !found {
		return nil, apperr.New(apperr.CodeNotFound, "scene %q not in script", p.scene)
	}
	return written, nil
}

func stillName(scene string, t float64) string {
	return fmt.Sprintf("%s_%06.2f.png", strings.ToLower(scene), t)
}
