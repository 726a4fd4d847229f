// Package config holds the render settings shared by the CLI, the director
// and the video pipeline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/sagascape/internal/apperr"
)

var validate = validator.New()

// Transitions accepted by ffmpeg xfade, plus none for hard cuts.
var Transitions = []string{"fade", "wipeleft", "slideup", "pixelize", "circlecrop", "dissolve", "none"}

type Config struct {
	Output         string   `yaml:"output" toml:"output"`
	ScriptPath     string   `yaml:"script" toml:"script"`
	ContentPath    string   `yaml:"content" toml:"content"`
	Scenes         []string `yaml:"scenes" toml:"scenes"`
	Width          int      `yaml:"width" toml:"width" validate:"gt=0,lte=7680"`
	Height         int      `yaml:"height" toml:"height" validate:"gt=0,lte=7680"`
	FPS            int      `yaml:"fps" toml:"fps" validate:"gt=0,lte=120"`
	Workers        int      `yaml:"workers" toml:"workers" validate:"gte=0"`
	FadeDuration   float64  `yaml:"fade" toml:"fade" validate:"gte=0"`
	TransitionType string   `yaml:"transition" toml:"transition" validate:"oneof=fade wipeleft slideup pixelize circlecrop dissolve none"`
	Background     string   `yaml:"background" toml:"background" validate:"omitempty,hexcolor"`
	AudioPath      string   `yaml:"audio" toml:"audio"`
	Preset         string   `yaml:"preset" toml:"preset" validate:"omitempty,oneof=16:9 9:16 4:5"`
	VideoEncoder   string   `yaml:"encoder" toml:"encoder"`
	Quality        int      `yaml:"quality" toml:"quality" validate:"gte=0,lte=100"`
	ShowStats      bool     `yaml:"show_stats" toml:"show_stats"`
	BuildVersion   string   `yaml:"-" toml:"-"`
}

// SegmentParams are the encoding parameters of one scene segment.
type SegmentParams struct {
	Width, Height int
	FPS           int
	Duration      float64
	FadeDuration  float64
	SceneIndex    int
	SceneName     string
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	return &Config{
		Output:         "output",
		Width:          1280,
		Height:         720,
		FPS:            30,
		FadeDuration:   0.5,
		TransitionType: "fade",
		Background:     "#111827",
	}
}

// Load reads a YAML or TOML file over the defaults. The format is picked by
// extension.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, apperr.New(apperr.CodeInvalidConfig, "unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.ApplyPreset(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyPreset overrides the frame size for a named aspect preset.
func (c *Config) ApplyPreset() error {
	switch c.Preset {
	case "":
	case "16:9":
		c.Width, c.Height = 1280, 720
	case "9:16":
		c.Width, c.Height = 720, 1280
	case "4:5":
		c.Width, c.Height = 1080, 1350
	default:
		return apperr.New(apperr.CodeInvalidConfig, "unknown preset %q", c.Preset)
	}
	return nil
}

// Validate checks the struct tags and a few cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var msgs []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
		} else {
			msgs = append(msgs, err.Error())
		}
		return apperr.New(apperr.CodeInvalidConfig, "%s", strings.Join(msgs, "; "))
	}
	// libx264 with yuv420p needs even dimensions
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return apperr.New(apperr.CodeInvalidConfig, "frame size %dx%d must be even", c.Width, c.Height)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "gt", "gte":
		return fmt.Sprintf("%s must be %s", field, minParam(fe))
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex colour", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func minParam(fe validator.FieldError) string {
	if fe.Tag() == "gt" {
		return "above " + fe.Param()
	}
	return "at least " + fe.Param()
}

// SceneSelected reports whether a scene passes the Scenes filter. An empty
// filter selects everything.
func (c *Config) SceneSelected(name string) bool {
	if len(c.Scenes) == 0 {
		return true
	}
	for _, s := range c.Scenes {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// Segment returns the encoding parameters for a scene of the given duration.
// The fade is clamped so that neighbouring transitions never overlap.
func (c *Config) Segment(index int, name string, duration float64) SegmentParams {
	fade := c.FadeDuration
	if c.TransitionType == "none" {
		fade = 0
	}
	if fade > duration/2 {
		fade = duration / 2
	}
	return SegmentParams{
		Width:        c.Width,
		Height:       c.Height,
		FPS:          c.FPS,
		Duration:     duration,
		FadeDuration: fade,
		SceneIndex:   index,
		SceneName:    name,
	}
}
