package scenes

import (
	"context"
	"strings"

	"github.com/ivlev/sagascape/internal/anim"
	"github.com/ivlev/sagascape/internal/director"
	"github.com/ivlev/sagascape/internal/easing"
	"github.com/ivlev/sagascape/internal/geom"
	"github.com/ivlev/sagascape/internal/renderer"
)

const cardFill = "#24292e"

var statSlots = []float64{-330, -110, 110, 330}

func Conclusion() director.Scene {
	return director.Scene{Name: "Conclusion", Play: playConclusion}
}

func playConclusion(ctx context.Context, s *director.Stage) error {
	const eio = easing.EaseInOutCubic
	c := s.Content
	repo := strings.TrimPrefix(strings.TrimPrefix(c.RepositoryURL, "https://"), "http://")

	steps := []anim.Step{
		s.Put(
			renderer.Text("title", "Project Summary & Repository", 64, "#ffffff").Pos(0, -350).Hidden(),

			renderer.Rect("github-card", 600, 200, cardFill).WithRadius(20).Pos(0, 50).Hidden().WithScale(0.9),
			renderer.Text("github-card/title", "GitHub Repository", 36, "#f0f6fc").Pos(0, -50).In("github-card"),
			renderer.Text("repo-link", repo, 28, "#58a6ff").Pos(0, 20).Hidden().In("github-card"),
			renderer.Text("repo-hint", "Scan to explore the TypeScript implementation", 20, "#8b949e").Pos(0, 60).Hidden().In("github-card"),
			renderer.QRCode("repo-qr", c.RepositoryURL, 160, "#000000").Pos(400, 0).Hidden().In("github-card"),

			renderer.Rect("summary", 900, 180, "#1e293b").WithRadius(20).Pos(0, 300).Hidden().WithScale(0.9),
			renderer.Text("summary/title", "TypeScript Implementation Summary", 32, "#60a5fa").Pos(0, -60).In("summary"),

			renderer.Text("thank-you", "", 42, "#fbbf24").Pos(0, 450).Hidden(),
		),
		s.FadeIn("title", 0.8),
		s.Pause(0.5),
	}

	var nodes []*anim.Entity
	for i := range 3 {
		dict := dictionary(c, i)
		color := dict.Color
		if color == "" {
			color = anim.DictionaryColor
		}
		x := -300 + float64(i)*300
		node, err := s.Entities.NewEntity(dict.ID, anim.KindDictionary, geom.Vec(x, -150),
			anim.WithColor(color),
			anim.WithSize(geom.Vec(180, 120)),
			anim.WithCount(dict.Entries),
		)
		if err != nil {
			return err
		}
		nodes = append(nodes, node)
		steps = append(steps,
			func(ctx context.Context) error { return s.Place(ctx, node) },
			func(ctx context.Context) error {
				return anim.All(ctx,
					s.Reveal(node.ID(), 0.6, eio),
					s.Move(node, geom.Vec(x, -100), 0.6, ""),
				)
			},
			s.Pause(0.2),
		)
	}

	steps = append(steps,
		s.Pause(0.3),
		s.Put(
			renderer.Line("link-0", "#4b5563", 4, geom.Vec(-210, -100), geom.Vec(-90, -100)).WithEnd(0),
			renderer.Line("link-1", "#4b5563", 4, geom.Vec(90, -100), geom.Vec(210, -100)).WithEnd(0),
		),
		func(ctx context.Context) error {
			return anim.All(ctx,
				s.To("link-0", renderer.PropEnd, 1, 0.8, ""),
				s.To("link-1", renderer.PropEnd, 1, 0.8, ""),
			)
		},
		s.Pause(0.5),
		func(ctx context.Context) error {
			return anim.All(ctx,
				s.Reveal("github-card", 0.8, eio),
				s.To("github-card", renderer.PropY, 80, 0.8, ""),
			)
		},
		s.Pause(0.3),
		func(ctx context.Context) error {
			return anim.All(ctx,
				s.FadeIn("repo-link", 0.6),
				s.FadeIn("repo-hint", 0.6),
				s.FadeIn("repo-qr", 0.6),
			)
		},
		s.Pause(1),
		s.Tint("github-card", "#2d333b", 0.3, ""),
		s.Tint("github-card", cardFill, 0.3, ""),
		s.Pause(0.5),
		s.Reveal("summary", 0.7, eio),
	)

	for i, st := range c.Stats {
		id := director.ID("stat", i)
		steps = append(steps,
			s.Put(
				renderer.Rect(id, 180, 100, st.Color).WithRadius(15).Pos(slot(statSlots, i), 300).Hidden().WithScale(0),
				renderer.Text(id+"/value", st.Value, 36, "#ffffff").WithBold().Pos(0, -10).In(id),
				renderer.Text(id+"/title", st.Title, 18, "#f3f4f6").Pos(0, 30).In(id),
			),
			s.Reveal(id, 0.5, ""),
			s.Pause(0.15),
		)
	}

	steps = append(steps, s.Pause(1))
	for i := range c.Closing {
		text := strings.Join(c.Closing[:i+1], "\n")
		steps = append(steps,
			s.SetText("thank-you", text),
			func(ctx context.Context) error {
				return anim.All(ctx, s.FadeIn("thank-you", 0.3), s.Pause(0.4))
			},
		)
	}

	highlight, err := s.Config(eio, 0.5, 1.0)
	if err != nil {
		return err
	}
	steps = append(steps,
		s.Pause(1),
		s.Put(renderer.Text("call-to-action", "Explore the code and continue the journey at the GitHub repository!", 32, "#60a5fa").Pos(0, 520).Hidden()),
		s.FadeIn("call-to-action", 0.8),
		s.Pause(1),
		s.Put(renderer.Text("typescript-highlight", "TypeScript Features Demonstrated: Generics, Interfaces, Classes, Type Guards", 26, "#22d3ee").Pos(0, 580).Hidden()),
		s.Ease("typescript-highlight", opacity, highlight),
		s.Pause(2),
		func(ctx context.Context) error {
			return anim.All(ctx,
				anim.Chain(s.To("github-card", scale, 1.05, 0.4, ""), s.To("github-card", scale, 1, 0.4, "")),
				anim.Chain(s.Tint("github-card", "#3182ce", 0.2, ""), s.Tint("github-card", cardFill, 0.2, "")),
			)
		},
		s.Pause(3),
	)

	if err := anim.Sequence(ctx, steps...); err != nil {
		return err
	}
	for _, n := range nodes {
		s.Logger.Debug("dictionary node", "label", n.Render(), "bounds", n.Bounds())
	}
	return nil
}
