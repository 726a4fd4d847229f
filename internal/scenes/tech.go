package scenes

import (
	"context"
	"fmt"

	"github.com/ivlev/sagascape/internal/anim"
	"github.com/ivlev/sagascape/internal/catalog"
	"github.com/ivlev/sagascape/internal/director"
	"github.com/ivlev/sagascape/internal/easing"
	"github.com/ivlev/sagascape/internal/geom"
	"github.com/ivlev/sagascape/internal/renderer"
)

const panelFill = "#1f2937"

var (
	rowSlots        = []float64{-120, -40, 40, 120}
	animationTypes  = []string{"Fade", "Slide", "Scale", "Rotate"}
	animationColors = []string{"#f472b6", "#c084fc", "#60a5fa", "#34d399"}
)

func TechDeepDive() director.Scene {
	return director.Scene{Name: "TechDeepDive", Play: playTechDeepDive}
}

func panel(id, title string, x float64) []renderer.Element {
	return []renderer.Element{
		renderer.Rect(id, 800, 500, panelFill).WithRadius(20).Pos(x, 0).Hidden().WithScale(0.9),
		renderer.Text(id+"/title", title, 32, "#60a5fa").Pos(0, -200).In(id),
	}
}

func playTechDeepDive(ctx context.Context, s *director.Stage) error {
	const eio = easing.EaseInOutCubic
	cat := s.Catalog
	snippets := cat.Items()
	features := s.Content.Features

	var base []renderer.Element
	base = append(base, renderer.Text("title", "Technical Architecture", 64, "#ffffff").Pos(0, -350).Hidden())
	base = append(base, panel("code-panel", "TypeScript Implementation", -400)...)
	base = append(base, panel("feature-panel", "Key Features", 400)...)
	base = append(base,
		renderer.Text("animation-demo", "", 36, "#f472b6").Pos(0, 280).Hidden(),
		renderer.Text("type-stats", "", 28, "#34d399").Pos(0, 400).Hidden(),
	)

	steps := []anim.Step{
		s.Put(base...),
		s.FadeIn("title", 0.8),
		s.To("title", renderer.PropY, -300, 0.6, eio),
		func(ctx context.Context) error {
			return anim.All(ctx,
				s.FadeIn("code-panel", 1),
				s.To("code-panel", scale, 1, 0.8, eio),
				s.FadeIn("feature-panel", 1),
				s.To("feature-panel", scale, 1, 0.8, eio),
			)
		},
		s.Pause(0.5),
	}

	for i, d := range cat.DescribeAll() {
		id := director.ID("snippet", i)
		steps = append(steps,
			s.Put(renderer.Text(id, d.Text, d.FontSize, d.Fill).Pos(-400, slot(rowSlots, i)).Hidden()),
			func(ctx context.Context) error {
				return anim.All(ctx,
					s.FadeIn(id, 0.5),
					s.To(id, renderer.PropX, -250, 0.6, eio),
				)
			},
			s.Pause(0.2),
		)
	}

	steps = append(steps, s.Pause(0.5))
	for i, sn := range snippets {
		id := director.ID("badge", i)
		fill := "#f1f5f9"
		if catalog.IsTypeScript(sn) {
			fill = catalog.LanguagePalette[catalog.TypeScript]
		}
		steps = append(steps,
			s.Put(
				renderer.Rect(id, 140, 40, fill).WithRadius(20).Pos(-400, slot(rowSlots, i)).Hidden().WithScale(0),
				renderer.Text(id+"/text", string(sn.Language), 20, "#ffffff").In(id),
			),
			func(ctx context.Context) error {
				return anim.All(ctx,
					s.FadeIn(id, 0.4),
					s.To(id, scale, 1, 0.4, ""),
					s.To(id, renderer.PropX, -100, 0.4, eio),
				)
			},
			s.Pause(0.15),
		)
	}

	steps = append(steps, s.Pause(0.8))
	for i, f := range features {
		id := director.ID("feature", i)
		descID := director.ID("feature-desc", i)
		d := catalog.DescribeFeature(f)
		y := slot(rowSlots, i)
		steps = append(steps,
			s.Put(
				renderer.Text(id, d.Text, d.FontSize, d.Fill).Pos(400, y).Hidden(),
				renderer.Text(descID, f.Description, 18, "#d1d5db").Pos(400, y+35).Hidden(),
			),
			func(ctx context.Context) error {
				return anim.All(ctx,
					s.FadeIn(id, 0.5),
					s.To(id, renderer.PropX, 250, 0.6, eio),
					s.FadeIn(descID, 0.5),
					s.To(descID, renderer.PropX, 250, 0.6, eio),
				)
			},
			s.Pause(0.25),
		)
	}

	steps = append(steps,
		s.Pause(1),
		s.SetText("animation-demo", "Animation Types: Fade | Slide | Scale | Rotate"),
		s.FadeIn("animation-demo", 0.6),
	)
	for i, kind := range animationTypes {
		id := director.ID("indicator", i)
		x := -300 + float64(i)*200
		steps = append(steps,
			s.Put(
				renderer.Rect(id, 120, 50, animationColors[i]).WithRadius(10).Pos(x, 340).Hidden().WithScale(0),
				renderer.Text(id+"/text", kind, 22, "#ffffff").Pos(x, 340).Hidden(),
			),
			func(ctx context.Context) error {
				return anim.All(ctx,
					s.FadeIn(id, 0.4),
					s.To(id, scale, 1, 0.4, ""),
					s.FadeIn(id+"/text", 0.4),
				)
			},
			s.Pause(0.15),
		)
	}

	summary := cat.DescribeSummary()
	steps = append(steps,
		s.Pause(1),
		s.Put(renderer.Text("summary", summary.Text, summary.FontSize, summary.Fill).Pos(0, 400).Hidden()),
		s.SetText("type-stats", fmt.Sprintf("TypeScript Features: %d types, %d interfaces", len(features), cat.Len())),
		func(ctx context.Context) error {
			return anim.All(ctx,
				s.FadeIn("type-stats", 0.6),
				s.FadeIn("summary", 0.6),
			)
		},
		s.Pause(0.5),
		s.Put(
			renderer.Line("connection-0", "#4b5563", 3, geom.Vec(-150, -120), geom.Vec(150, -120)).WithEnd(0),
			renderer.Line("connection-1", "#4b5563", 3, geom.Vec(-150, 40), geom.Vec(150, 40)).WithEnd(0),
			renderer.Line("connection-2", "#4b5563", 3, geom.Vec(-100, 200), geom.Vec(100, 280)).WithEnd(0),
		),
		func(ctx context.Context) error {
			return anim.All(ctx,
				s.To("connection-0", renderer.PropEnd, 1, 0.8, ""),
				s.To("connection-1", renderer.PropEnd, 1, 0.8, ""),
				s.To("connection-2", renderer.PropEnd, 1, 0.8, ""),
			)
		},
		s.Pause(1),
		s.Put(renderer.Text("typescript-emphasis",
			fmt.Sprintf("✓ %d/%d snippets are TypeScript", cat.TypeScriptCount(), cat.Len()),
			32, "#22d3ee").Pos(0, 450).Hidden()),
		s.FadeIn("typescript-emphasis", 0.6),
		s.Pause(1),
		func(ctx context.Context) error {
			return anim.All(ctx,
				anim.Chain(s.Tint("code-panel", "#2d3748", 0.3, ""), s.Tint("code-panel", panelFill, 0.3, "")),
				anim.Chain(s.Tint("feature-panel", "#2d3748", 0.3, ""), s.Tint("feature-panel", panelFill, 0.3, "")),
			)
		},
		s.Pause(4),
	)
	return anim.Sequence(ctx, steps...)
}
