package scenes

import (
	"context"

	"github.com/dustin/go-humanize"

	"github.com/ivlev/sagascape/internal/anim"
	"github.com/ivlev/sagascape/internal/catalog"
	"github.com/ivlev/sagascape/internal/director"
	"github.com/ivlev/sagascape/internal/geom"
	"github.com/ivlev/sagascape/internal/renderer"
)

func Example() director.Scene {
	return director.Scene{Name: "Example", Play: playExample}
}

func playExample(ctx context.Context, s *director.Stage) error {
	c := s.Content
	for _, e := range c.Entries {
		if catalog.IsDictionaryEntry(e) {
			s.Logger.Debug("valid dictionary entry", "word", e.Word)
		}
	}

	dict := dictionary(c, 0)
	node, err := s.Entities.NewDictionaryNode(dict.ID, geom.Vec(-300, 0), dict.Entries)
	if err != nil {
		return err
	}
	s.Logger.Debug(node.Render())

	steps := []anim.Step{
		s.Put(
			renderer.Text("title", c.Title+": Old Norse Study App", 48, "#FFFFFF").Pos(0, -200).Hidden(),
			renderer.Circle("dictionary", 140, anim.DictionaryColor).Pos(-300, 0),
			renderer.Text("dictionary-name", dict.Label(), 24, "#FFFFFF").Pos(-300, 100),
			renderer.Text("dictionary-count", humanize.Comma(int64(node.Metrics().Entries))+" entries", 18, "#D1D5DB").Pos(-300, 130),
			renderer.Rect("progress", 0, 40, "#10B981").Pos(0, 50).WithRadius(20),
		),
		s.FadeIn("title", 1),
		s.To("dictionary", scale, 1.5, 0.5, ""),
		s.To("dictionary", scale, 1, 0.5, ""),
		func(ctx context.Context) error {
			return anim.All(ctx,
				s.To("progress", renderer.PropWidth, 600, 2, ""),
				func(ctx context.Context) error { return node.AnimateTo(ctx, geom.Vec(300, 0), 2) },
				s.To("dictionary", renderer.PropX, 300, 2, ""),
				anim.Chain(
					s.Tint("dictionary", "#EC4899", 1, ""),
					s.Tint("dictionary", anim.DictionaryColor, 1, ""),
				),
			)
		},
		s.Pause(1),
	}

	for i, f := range c.Features {
		id := director.ID("feature", i)
		d := catalog.DescribeFeature(f)
		steps = append(steps,
			s.Put(renderer.Text(id, f.Name+" - "+string(f.Status), 28, d.Fill).Pos(0, -50+float64(i)*60).Hidden()),
			s.FadeIn(id, 0.5),
			s.Pause(0.3),
		)
	}
	steps = append(steps, s.Pause(2))
	return anim.Sequence(ctx, steps...)
}
