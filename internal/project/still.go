package project

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/ivlev/sagascape/internal/config"
	"github.com/ivlev/sagascape/internal/director"
	"github.com/ivlev/sagascape/internal/easing"
	"github.com/ivlev/sagascape/internal/renderer"
)

// RenderStill rasterizes a scene at time t. Times past the end of the scene
// show its last frame.
func RenderStill(sc director.SceneScript, t float64, cfg *config.Config, curves *easing.Registry) (*image.RGBA, error) {
	tl, err := sc.Timeline(curves)
	if err != nil {
		return nil, err
	}
	r, err := renderer.NewRasterizer(cfg.Width, cfg.Height, cfg.Background)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	if err := r.Draw(img, tl.Sample(min(max(t, 0), sc.Duration))); err != nil {
		return nil, err
	}
	return img, nil
}

// WritePNG stores img at path, creating the directory.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
