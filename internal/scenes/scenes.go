// Package scenes holds the SagaScape presentation: four scenes played in
// order by the director.
package scenes

import (
	"fmt"

	"github.com/ivlev/sagascape/internal/catalog"
	"github.com/ivlev/sagascape/internal/director"
	"github.com/ivlev/sagascape/internal/renderer"
)

const (
	opacity = renderer.PropOpacity
	scale   = renderer.PropScale
)

// All returns the scenes in presentation order.
func All() []director.Scene {
	return []director.Scene{
		Introduction(),
		Example(),
		TechDeepDive(),
		Conclusion(),
	}
}

// Select returns the scenes of all whose names pass keep, in order.
func Select(all []director.Scene, keep func(name string) bool) ([]director.Scene, error) {
	var out []director.Scene
	for _, sc := range all {
		if keep(sc.Name) {
			out = append(out, sc)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no scene matches the filter")
	}
	return out, nil
}

// dictionary returns the i-th content dictionary, or a placeholder when the
// content has fewer.
func dictionary(c *catalog.Content, i int) catalog.Dictionary {
	if i < len(c.Dictionaries) {
		return c.Dictionaries[i]
	}
	return catalog.Dictionary{ID: fmt.Sprintf("dictionary-%d", i+1)}
}

// slot returns the i-th slot, continuing the spacing past the last one.
func slot(slots []float64, i int) float64 {
	if i < len(slots) {
		return slots[i]
	}
	step := 80.0
	if len(slots) > 1 {
		step = slots[1] - slots[0]
	}
	return slots[len(slots)-1] + float64(i-len(slots)+1)*step
}
