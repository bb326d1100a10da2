package venn

import "github.com/cwbudde/vennlayout/internal/geom"

// LossFunction scores how well a candidate solution realizes the requested
// areas. Lower is better; zero is a perfect fit.
type LossFunction func(solution Solution, areas []AreaSpec) float64

// Loss is the canonical loss: the weighted sum of squared differences
// between each spec's requested size and the overlap area the candidate
// circles actually produce. Single-set specs contribute nothing since the
// radius already fixes their area.
func Loss(solution Solution, areas []AreaSpec) float64 {
	var output float64
	for _, area := range areas {
		if len(area.Sets) == 1 {
			continue
		}

		var overlap float64
		if len(area.Sets) == 2 {
			left := solution[area.Sets[0]]
			right := solution[area.Sets[1]]
			overlap = geom.CircleOverlap(left.Radius, right.Radius,
				geom.Distance(left.Center(), right.Center()))
		} else {
			circles := make([]geom.Circle, len(area.Sets))
			for i, id := range area.Sets {
				circles[i] = solution[id]
			}
			// the circle list is never empty here, so the error branch
			// of IntersectionArea is unreachable
			overlap, _ = geom.IntersectionArea(circles, nil)
		}

		diff := overlap - area.Size
		output += area.weight() * diff * diff
	}
	return output
}
