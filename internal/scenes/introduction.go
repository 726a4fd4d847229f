package scenes

import (
	"context"
	"fmt"
	"strings"

	"github.com/ivlev/sagascape/internal/anim"
	"github.com/ivlev/sagascape/internal/director"
	"github.com/ivlev/sagascape/internal/easing"
	"github.com/ivlev/sagascape/internal/geom"
	"github.com/ivlev/sagascape/internal/renderer"
)

func Introduction() director.Scene {
	return director.Scene{Name: "Introduction", Play: playIntroduction}
}

func playIntroduction(ctx context.Context, s *director.Stage) error {
	c := s.Content
	dict := dictionary(c, 0)
	node, err := s.Entities.NewDictionaryNode(dict.ID, geom.Vec(-400, 100), dict.Entries)
	if err != nil {
		return err
	}

	steps := []anim.Step{
		s.Put(
			renderer.Rect("background", 1920, 1080, "#1e1b4b").Hidden(),
			renderer.Circle("logo", 300, "#8b5cf6").Hidden().WithScale(0),
			renderer.Text("title", c.Title, 120, "#ffffff").Pos(0, -100).Hidden().WithBold(),
			renderer.Text("subtitle", c.Subtitle, 42, "#c7d2fe").Pos(0, 30).Hidden(),
			renderer.Text("author", c.Author, 28, "#a5b4fc").Pos(0, 350).Hidden(),
		),
		s.FadeIn("background", 1.5),
		func(ctx context.Context) error {
			return anim.All(ctx,
				s.FadeIn("logo", 1),
				s.To("logo", scale, 1, 1.5, easing.Linear),
			)
		},
		s.Pause(0.5),
		s.Type("title", c.Title, 0.05),
		s.FadeIn("title", 0.5),
		s.FadeIn("subtitle", 0.8),
		s.FadeIn("author", 0.6),
		s.Pause(1),
		s.Put(renderer.Text("dict-info",
			fmt.Sprintf("%s\n%d sample entries loaded", node.Render(), len(c.Entries)),
			32, "#d1d5db").Pos(0, 150).Hidden()),
		s.FadeIn("dict-info", 0.8),
		s.Pause(1),
	}

	for i, e := range c.Entries {
		id := director.ID("entry", i)
		text := fmt.Sprintf("%s → %s", e.Word, strings.Join(e.Definitions, ", "))
		steps = append(steps,
			s.Put(renderer.Text(id, text, 28, "#93c5fd").Pos(-400, slot([]float64{-50, 0, 50}, i)).Hidden()),
			func(ctx context.Context) error {
				return anim.All(ctx,
					s.FadeIn(id, 0.5),
					s.To(id, renderer.PropX, 0, 0.8, ""),
				)
			},
			s.Pause(0.3),
		)
	}

	steps = append(steps,
		s.Pause(1),
		s.Put(renderer.Text("module-title", "TypeScript Data Layer Demonstration", 48, "#fbbf24").
			Pos(0, 250).Hidden().WithScale(0.8)),
		func(ctx context.Context) error {
			return anim.All(ctx,
				s.FadeIn("module-title", 0.8),
				s.To("module-title", scale, 1, 0.8, ""),
			)
		},
		s.Pause(3),
	)
	return anim.Sequence(ctx, steps...)
}
