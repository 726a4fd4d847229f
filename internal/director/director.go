// Package director plays scenes into timelines and stores the result as a
// YAML script.
package director

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ivlev/sagascape/internal/anim"
	"github.com/ivlev/sagascape/internal/catalog"
	"github.com/ivlev/sagascape/internal/easing"
	"github.com/ivlev/sagascape/internal/renderer"
)

// Scene is one named section of the presentation.
type Scene struct {
	Name string
	Play func(ctx context.Context, s *Stage) error
}

// Director plays scenes. Scenes run on a virtual clock unless Clock is set,
// so directing takes no wall time.
type Director struct {
	Title   string
	Content *catalog.Content
	Curves  *easing.Registry
	Clock   anim.Clock
	Logger  *log.Logger
}

func New(content *catalog.Content, logger *log.Logger) *Director {
	if content == nil {
		content = catalog.DefaultContent()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Director{
		Title:   content.Title,
		Content: content,
		Curves:  easing.Default(),
		Clock:   anim.VirtualClock{},
		Logger:  logger,
	}
}

// Direct plays every scene into its own timeline. The first failing scene
// aborts the whole run.
func (d *Director) Direct(ctx context.Context, scenes []Scene) (*Script, error) {
	if len(scenes) == 0 {
		return nil, fmt.Errorf("no scenes to direct")
	}
	if err := d.Content.Validate(); err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}

	script := &Script{Version: ScriptVersion, Title: d.Title}
	for i, sc := range scenes {
		start := time.Now()
		rec, err := d.play(ctx, sc)
		if err != nil {
			return nil, fmt.Errorf("scene %d (%s): %w", i+1, sc.Name, err)
		}
		script.Scenes = append(script.Scenes, *rec)
		script.TotalDuration += rec.Duration
		d.Logger.Debug("directed scene", "scene", sc.Name, "duration", rec.Duration,
			"elements", len(rec.Elements), "tweens", len(rec.Tweens), "took", time.Since(start).Round(time.Microsecond))
	}
	return script, nil
}

func (d *Director) play(ctx context.Context, sc Scene) (*SceneScript, error) {
	tl := renderer.NewTimeline(d.Clock, d.Curves)
	stage := &Stage{
		Renderer: tl,
		Clock:    d.Clock,
		Entities: anim.NewRegistry(d.Clock),
		Content:  d.Content,
		Catalog:  d.Content.Catalog(),
		Curves:   d.Curves,
		Logger:   d.Logger.WithPrefix(sc.Name),
	}

	sctx := anim.WithCursor(ctx)
	start := anim.Now(sctx)
	if err := sc.Play(sctx, stage); err != nil {
		return nil, err
	}

	duration := max(tl.Duration(), anim.Now(sctx)) - start
	rec := &SceneScript{
		Name:     sc.Name,
		Duration: duration,
		Elements: tl.Elements(),
		Tweens:   tl.Tweens(),
	}
	for _, e := range stage.Placed() {
		rec.Entities = append(rec.Entities, EntityRecord{
			ID:      e.ID(),
			Kind:    string(e.Kind()),
			Label:   e.Render(),
			Metrics: e.Metrics(),
		})
	}
	return rec, nil
}
