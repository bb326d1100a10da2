package venn

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/vennlayout/internal/geom"
)

// farAway parks circles that have not been positioned yet so they read as
// disjoint to the loss function.
const farAway = 1e10

// setOverlap records one known pairwise overlap of a set with another.
type setOverlap struct {
	set    string
	size   float64
	weight float64
}

// GreedyLayout positions circles one at a time, most-overlapped first.
// Each new circle gets candidate positions consistent with its known
// overlaps against already-placed circles; the candidate with the lowest
// loss over the partial diagram wins. Requires pairwise overlap data for
// every set, which the orchestrator guarantees via addMissingAreas.
func GreedyLayout(areas []AreaSpec, loss LossFunction) (Solution, error) {
	if loss == nil {
		loss = Loss
	}

	circles := make(Solution)
	sizes := make(map[string]float64)
	overlaps := make(map[string][]setOverlap)
	for _, area := range areas {
		if len(area.Sets) == 1 {
			id := area.Sets[0]
			circles[id] = geom.Circle{X: farAway, Y: farAway, Radius: radius(area.Size)}
			sizes[id] = area.Size
			overlaps[id] = nil
		}
	}

	var pairs []AreaSpec
	for _, area := range areas {
		if len(area.Sets) == 2 {
			pairs = append(pairs, area)
		}
	}

	for _, pair := range pairs {
		weight := pair.weight()
		left, right := pair.Sets[0], pair.Sets[1]
		// completely overlapped circles gain nothing from being placed
		// early, so zero them out of the ordering
		if pair.Size+geom.Tolerance >= math.Min(sizes[left], sizes[right]) {
			weight = 0
		}
		overlaps[left] = append(overlaps[left], setOverlap{set: right, size: pair.Size, weight: weight})
		overlaps[right] = append(overlaps[right], setOverlap{set: left, size: pair.Size, weight: weight})
	}

	// order sets by their cumulative weighted overlap, heaviest first
	type weightedSet struct {
		set  string
		size float64
	}
	mostOverlapped := make([]weightedSet, 0, len(overlaps))
	for set, list := range overlaps {
		var size float64
		for _, o := range list {
			size += o.size * o.weight
		}
		mostOverlapped = append(mostOverlapped, weightedSet{set: set, size: size})
	}
	sort.Slice(mostOverlapped, func(i, j int) bool {
		if mostOverlapped[i].size != mostOverlapped[j].size {
			return mostOverlapped[i].size > mostOverlapped[j].size
		}
		return mostOverlapped[i].set < mostOverlapped[j].set
	})

	positioned := make(map[string]bool)
	position := func(set string, p geom.Point) {
		c := circles[set]
		c.X = p.X
		c.Y = p.Y
		circles[set] = c
		positioned[set] = true
	}

	// heaviest set anchors the diagram at the origin
	position(mostOverlapped[0].set, geom.Point{})

	for _, entry := range mostOverlapped[1:] {
		setID := entry.set
		var placed []setOverlap
		for _, o := range overlaps[setID] {
			if positioned[o.set] {
				placed = append(placed, o)
			}
		}
		if len(placed) == 0 {
			return nil, fmt.Errorf("venn: set %q has no overlap data against positioned sets", setID)
		}
		sort.Slice(placed, func(i, j int) bool {
			if placed[i].size != placed[j].size {
				return placed[i].size > placed[j].size
			}
			return placed[i].set < placed[j].set
		})

		r := circles[setID].Radius
		var points []geom.Point
		distances := make([]float64, len(placed))
		for j, o := range placed {
			p1 := circles[o.set]
			d1, err := DistanceFromIntersectArea(r, p1.Radius, o.size)
			if err != nil {
				return nil, err
			}
			distances[j] = d1

			// axis-aligned candidates around the placed circle
			points = append(points,
				geom.Point{X: p1.X + d1, Y: p1.Y},
				geom.Point{X: p1.X - d1, Y: p1.Y},
				geom.Point{X: p1.X, Y: p1.Y + d1},
				geom.Point{X: p1.X, Y: p1.Y - d1},
			)

			// candidates satisfying two overlap constraints at once:
			// intersect the two candidate-distance circles
			for k := j + 1; k < len(placed); k++ {
				p2 := circles[placed[k].set]
				d2, err := DistanceFromIntersectArea(r, p2.Radius, placed[k].size)
				if err != nil {
					return nil, err
				}
				extra := geom.CircleCircleIntersection(
					geom.Circle{X: p1.X, Y: p1.Y, Radius: d1},
					geom.Circle{X: p2.X, Y: p2.Y, Radius: d2},
				)
				points = append(points, extra...)
			}
		}

		// evaluate the loss at every candidate, keep the best
		bestLoss := math.Inf(1)
		bestPoint := points[0]
		for _, p := range points {
			c := circles[setID]
			c.X = p.X
			c.Y = p.Y
			circles[setID] = c
			if l := loss(circles, areas); l < bestLoss {
				bestLoss = l
				bestPoint = p
			}
		}
		position(setID, bestPoint)
	}

	return circles, nil
}
