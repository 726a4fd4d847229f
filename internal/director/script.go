package director

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/sagascape/internal/anim"
	"github.com/ivlev/sagascape/internal/easing"
	"github.com/ivlev/sagascape/internal/renderer"
	"github.com/ivlev/sagascape/internal/system"
)

const ScriptVersion = "1.0"

// ScriptsDir is where generated scripts are stored by default.
var ScriptsDir = filepath.Join("output", "scripts")

// Script is the recorded presentation.
type Script struct {
	Version       string        `yaml:"version"`
	Title         string        `yaml:"title"`
	TotalDuration float64       `yaml:"total_duration"`
	Scenes        []SceneScript `yaml:"scenes"`
}

// SceneScript is one recorded scene.
type SceneScript struct {
	Name     string             `yaml:"name"`
	Duration float64            `yaml:"duration"`
	Elements []renderer.Element `yaml:"elements"`
	Tweens   []renderer.Tween   `yaml:"tweens,omitempty"`
	Entities []EntityRecord     `yaml:"entities,omitempty"`
}

// EntityRecord is the final state of an entity placed during a scene.
type EntityRecord struct {
	ID      string       `yaml:"id"`
	Kind    string       `yaml:"kind"`
	Label   string       `yaml:"label"`
	Metrics anim.Metrics `yaml:"metrics"`
}

// Timeline rebuilds the scene for sampling.
func (s SceneScript) Timeline(curves *easing.Registry) (*renderer.Timeline, error) {
	tl, err := renderer.Restore(s.Elements, s.Tweens, s.Duration, curves)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.Name, err)
	}
	return tl, nil
}

// Scene returns the scene with the given name.
func (s *Script) Scene(name string) (SceneScript, bool) {
	for _, sc := range s.Scenes {
		if sc.Name == name {
			return sc, true
		}
	}
	return SceneScript{}, false
}

// WriteScript writes a script to a YAML file, creating its directory.
func WriteScript(script *Script, path string) error {
	data, err := yaml.Marshal(script)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadScript reads a script from a YAML file.
func ReadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	if script.Version != ScriptVersion {
		return nil, fmt.Errorf("script %s has version %q, want %q", path, script.Version, ScriptVersion)
	}
	return &script, nil
}

// GenerateScriptPath creates a timestamped script filename in dir.
func GenerateScriptPath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("script_%s.yaml", timestamp))
}

// FindLatestScript finds the most recent script in dir.
func FindLatestScript(dir string) (string, error) {
	return system.FindLatest(dir, ".yaml", ".yml")
}
