package geom

import (
	"errors"
	"math"
	"sort"
)

// ErrNoCircles is returned when an intersection area is requested for an
// empty circle list.
var ErrNoCircles = errors.New("geom: intersection area requires at least one circle")

// Arc is one circular-arc segment of an intersection region boundary,
// running from P1 to P2 along the given circle. Width is the chord-to-arc
// width of the segment.
type Arc struct {
	Circle Circle
	P1, P2 Point
	Width  float64
}

// taggedPoint is an intersection point annotated with the indices of the
// two circles that produced it.
type taggedPoint struct {
	Point
	parents [2]int
}

// IntersectionStats carries the decomposition of an N-circle intersection.
// It is filled by IntersectionArea on request and consumed immediately by
// callers needing the boundary arcs (label placement, region outlines).
type IntersectionStats struct {
	Area        float64
	ArcArea     float64
	PolygonArea float64
	Arcs        []Arc
	InnerPoints []Point
	// AllPoints holds every pairwise intersection point, inner or not.
	AllPoints []Point
}

// IntersectionArea returns the area contained in all of the given circles.
// The region boundary decomposes into a polygon through the inner
// intersection points plus one circular segment per polygon edge; the total
// is exact for any number of circles. If stats is non-nil it is filled with
// the decomposition.
func IntersectionArea(circles []Circle, stats *IntersectionStats) (float64, error) {
	if len(circles) == 0 {
		return 0, ErrNoCircles
	}

	intersectionPoints := pairwiseIntersectionPoints(circles)

	// Only points inside every circle lie on the boundary of the
	// intersection region.
	var innerPoints []taggedPoint
	for _, p := range intersectionPoints {
		if ContainedInCircles(p.Point, circles) {
			innerPoints = append(innerPoints, p)
		}
	}

	var arcArea, polygonArea float64
	var arcs []Arc

	if len(innerPoints) > 1 {
		arcs, arcArea, polygonArea = decomposeRegion(circles, innerPoints)
	} else {
		// No boundary polygon: either the smallest circle is completely
		// inside all the others, or there is no common region at all.
		smallest := circles[0]
		for _, c := range circles[1:] {
			if c.Radius < smallest.Radius {
				smallest = c
			}
		}

		disjoint := false
		for _, c := range circles {
			if centerDistance(c, smallest) > math.Abs(smallest.Radius-c.Radius) {
				disjoint = true
				break
			}
		}

		if !disjoint {
			arcArea = smallest.Area()
			// Synthetic full-circle arc so downstream consumers always
			// have a boundary to work with.
			arcs = append(arcs, Arc{
				Circle: smallest,
				P1:     Point{X: smallest.X, Y: smallest.Y + smallest.Radius},
				P2:     Point{X: smallest.X - Tolerance, Y: smallest.Y + smallest.Radius},
				Width:  smallest.Radius * 2,
			})
		}
	}

	area := arcArea + polygonArea
	if stats != nil {
		stats.Area = area
		stats.ArcArea = arcArea
		stats.PolygonArea = polygonArea
		stats.Arcs = arcs
		stats.InnerPoints = make([]Point, len(innerPoints))
		for i, p := range innerPoints {
			stats.InnerPoints[i] = p.Point
		}
		stats.AllPoints = make([]Point, len(intersectionPoints))
		for i, p := range intersectionPoints {
			stats.AllPoints[i] = p.Point
		}
	}
	return area, nil
}

// pairwiseIntersectionPoints collects the intersection points of every
// circle pair, tagged with the indices of the parent circles.
func pairwiseIntersectionPoints(circles []Circle) []taggedPoint {
	var points []taggedPoint
	for i := 0; i < len(circles); i++ {
		for j := i + 1; j < len(circles); j++ {
			for _, p := range CircleCircleIntersection(circles[i], circles[j]) {
				points = append(points, taggedPoint{Point: p, parents: [2]int{i, j}})
			}
		}
	}
	return points
}

// decomposeRegion walks the inner points in angular order around their
// centroid, accumulating the shoelace polygon area and, per edge, the
// circular segment of the narrowest arc connecting the two points.
func decomposeRegion(circles []Circle, innerPoints []taggedPoint) (arcs []Arc, arcArea, polygonArea float64) {
	center := centerOfTagged(innerPoints)
	sort.Slice(innerPoints, func(i, j int) bool {
		ai := math.Atan2(innerPoints[i].X-center.X, innerPoints[i].Y-center.Y)
		aj := math.Atan2(innerPoints[j].X-center.X, innerPoints[j].Y-center.Y)
		return ai > aj
	})

	p2 := innerPoints[len(innerPoints)-1]
	for _, p1 := range innerPoints {
		polygonArea += (p2.X + p1.X) * (p1.Y - p2.Y)
		midPoint := Point{X: (p1.X + p2.X) / 2, Y: (p1.Y + p2.Y) / 2}

		var arc *Arc
		for _, parent := range sharedParents(p1, p2) {
			circle := circles[parent]
			a1 := math.Atan2(p1.X-circle.X, p1.Y-circle.Y)
			a2 := math.Atan2(p2.X-circle.X, p2.Y-circle.Y)

			angleDiff := a2 - a1
			if angleDiff < 0 {
				angleDiff += 2 * math.Pi
			}

			// Angle halfway between the two points determines which of
			// the two possible arcs connects them on this circle.
			a := a2 - angleDiff/2
			width := Distance(midPoint, Point{
				X: circle.X + circle.Radius*math.Sin(a),
				Y: circle.Y + circle.Radius*math.Cos(a),
			})
			// FP error can push the width slightly past the diameter.
			if width > circle.Radius*2 {
				width = circle.Radius * 2
			}

			if arc == nil || arc.Width > width {
				arc = &Arc{Circle: circle, P1: p1.Point, P2: p2.Point, Width: width}
			}
		}

		if arc != nil {
			arcs = append(arcs, *arc)
			arcArea += CircleArea(arc.Circle.Radius, arc.Width)
			p2 = p1
		}
	}
	polygonArea /= 2
	return arcs, arcArea, polygonArea
}

// sharedParents returns the circle indices common to both points' tags.
func sharedParents(p1, p2 taggedPoint) []int {
	var shared []int
	for _, a := range p1.parents {
		if a == p2.parents[0] || a == p2.parents[1] {
			shared = append(shared, a)
		}
	}
	return shared
}

func centerOfTagged(points []taggedPoint) Point {
	var center Point
	for _, p := range points {
		center.X += p.X
		center.Y += p.Y
	}
	center.X /= float64(len(points))
	center.Y /= float64(len(points))
	return center
}
