package arrange

import (
	"github.com/cwbudde/vennlayout/internal/geom"
	"github.com/cwbudde/vennlayout/internal/opt"
	"github.com/cwbudde/vennlayout/internal/venn"
)

// TextCentre is a label anchor for one set combination. Disjoint marks
// combinations whose region is empty on screen; the anchor is then a
// far-away sentinel the renderer can cull.
type TextCentre struct {
	geom.Point
	Disjoint bool
}

// disjointSentinel is returned for combinations with no visible region.
var disjointSentinel = TextCentre{Point: geom.Point{X: 0, Y: -1000}, Disjoint: true}

// circleMargin is the distance from p to the nearest region boundary:
// positive inside the region bounded by the interior circles minus the
// exterior ones, negative outside.
func circleMargin(p geom.Point, interior, exterior []geom.Circle) float64 {
	margin := interior[0].Radius - geom.Distance(p, interior[0].Center())
	for _, c := range interior[1:] {
		if m := c.Radius - geom.Distance(p, c.Center()); m < margin {
			margin = m
		}
	}
	for _, c := range exterior {
		if m := geom.Distance(p, c.Center()) - c.Radius; m < margin {
			margin = m
		}
	}
	return margin
}

// ComputeTextCentre finds the point maximizing the margin to the region
// inside all interior circles and outside all exterior circles. Candidate
// seeds come from five points per interior circle; the best seed is refined
// with Nelder-Mead. If the refined point ends up infeasible the fallbacks
// run: single interior circle's center, then the arc decomposition of the
// interior intersection, then the disjoint sentinel.
func ComputeTextCentre(interior, exterior []geom.Circle) TextCentre {
	if len(interior) == 0 {
		return disjointSentinel
	}

	var seeds []geom.Point
	for _, c := range interior {
		seeds = append(seeds,
			geom.Point{X: c.X, Y: c.Y},
			geom.Point{X: c.X + c.Radius/2, Y: c.Y},
			geom.Point{X: c.X - c.Radius/2, Y: c.Y},
			geom.Point{X: c.X, Y: c.Y + c.Radius/2},
			geom.Point{X: c.X, Y: c.Y - c.Radius/2},
		)
	}
	initial := seeds[0]
	margin := circleMargin(seeds[0], interior, exterior)
	for _, p := range seeds[1:] {
		if m := circleMargin(p, interior, exterior); m >= margin {
			initial = p
			margin = m
		}
	}

	result := opt.NelderMead(func(p []float64) float64 {
		return -circleMargin(geom.Point{X: p[0], Y: p[1]}, interior, exterior)
	}, []float64{initial.X, initial.Y}, opt.NelderMeadParams{
		MaxIterations: 500,
		MinErrorDelta: 1e-10,
	})
	ret := geom.Point{X: result.X[0], Y: result.X[1]}

	valid := true
	for _, c := range interior {
		if geom.Distance(ret, c.Center()) > c.Radius {
			valid = false
			break
		}
	}
	if valid {
		for _, c := range exterior {
			if geom.Distance(ret, c.Center()) < c.Radius {
				valid = false
				break
			}
		}
	}
	if valid {
		return TextCentre{Point: ret}
	}

	// refinement escaped the region (fully overlapped sets and similar
	// degeneracies); fall back to something sensible
	if len(interior) == 1 {
		return TextCentre{Point: interior[0].Center()}
	}

	var stats geom.IntersectionStats
	if _, err := geom.IntersectionArea(interior, &stats); err != nil {
		return disjointSentinel
	}
	switch {
	case len(stats.Arcs) == 0:
		return disjointSentinel
	case len(stats.Arcs) == 1:
		return TextCentre{Point: stats.Arcs[0].Circle.Center()}
	case len(exterior) > 0:
		// exterior circles may have squeezed the region empty; retry
		// against the interior alone
		return ComputeTextCentre(interior, nil)
	default:
		points := make([]geom.Point, len(stats.Arcs))
		for i, arc := range stats.Arcs {
			points[i] = arc.P1
		}
		return TextCentre{Point: geom.CenterOf(points)}
	}
}

// ComputeTextCentres computes a label anchor for every area spec, keyed by
// the spec's canonical combination key. Interior circles are the spec's
// sets; every other circle in the solution is exterior.
func ComputeTextCentres(solution venn.Solution, areas []venn.AreaSpec) map[string]TextCentre {
	ret := make(map[string]TextCentre, len(areas))
	for _, area := range areas {
		inArea := make(map[string]bool, len(area.Sets))
		for _, id := range area.Sets {
			inArea[id] = true
		}

		var interior, exterior []geom.Circle
		for _, c := range circleList(solution) {
			if inArea[c.setID] {
				interior = append(interior, c.Circle)
			} else {
				exterior = append(exterior, c.Circle)
			}
		}
		ret[area.Key()] = ComputeTextCentre(interior, exterior)
	}
	return ret
}

// RegionOutline describes the boundary of the region common to all given
// circles as ordered arc segments for an external renderer. Start is the
// first segment's starting point; each segment sweeps to its End along a
// circle of the given radius, taking the long way around when LargeArc is
// set. Empty means there is no common region.
type RegionOutline struct {
	Start    geom.Point
	Segments []OutlineSegment
	Empty    bool
}

// OutlineSegment is one circular arc of a region boundary.
type OutlineSegment struct {
	End      geom.Point
	Radius   float64
	LargeArc bool
}

// ComputeRegionOutline produces the outline descriptor for the
// intersection of the given circles.
func ComputeRegionOutline(circles []geom.Circle) (RegionOutline, error) {
	var stats geom.IntersectionStats
	if _, err := geom.IntersectionArea(circles, &stats); err != nil {
		return RegionOutline{}, err
	}
	if len(stats.Arcs) == 0 {
		return RegionOutline{Empty: true}, nil
	}

	outline := RegionOutline{Start: stats.Arcs[0].P2}
	for _, arc := range stats.Arcs {
		outline.Segments = append(outline.Segments, OutlineSegment{
			End:      arc.P1,
			Radius:   arc.Circle.Radius,
			LargeArc: arc.Width > arc.Circle.Radius,
		})
	}
	return outline, nil
}
