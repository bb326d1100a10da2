package geom

import "math"

// Tolerance used for containment and overlap tests. Intersection points
// land exactly on circle boundaries, so membership checks need slack.
const Tolerance = 1e-10

// Point is a location on the 2-D plane.
type Point struct {
	X, Y float64
}

// Circle is a circle on the 2-D plane.
type Circle struct {
	X, Y   float64
	Radius float64
}

// Center returns the circle's center point.
func (c Circle) Center() Point {
	return Point{X: c.X, Y: c.Y}
}

// Area returns the full area of the circle.
func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

// Distance returns the Euclidean distance between two points.
func Distance(p1, p2 Point) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// centerDistance returns the distance between two circle centers.
func centerDistance(c1, c2 Circle) float64 {
	return Distance(c1.Center(), c2.Center())
}

// circleIntegral evaluates the indefinite integral of the circle equation
// at x: F(r,x) = x*sqrt(r²−x²) + r²*atan2(x, sqrt(r²−x²)).
func circleIntegral(r, x float64) float64 {
	y := math.Sqrt(math.Max(r*r-x*x, 0))
	return x*y + r*r*math.Atan2(x, y)
}

// CircleArea returns the area of a circular segment of the given chord
// width cut from a circle of radius r.
func CircleArea(r, width float64) float64 {
	return circleIntegral(r, width-r) - circleIntegral(r, -r)
}

// CircleOverlap returns the lens area of two circles with radii r1 and r2
// whose centers are d apart.
func CircleOverlap(r1, r2, d float64) float64 {
	// no overlap
	if d >= r1+r2 {
		return 0
	}
	// completely overlapped
	if d <= math.Abs(r1-r2) {
		rMin := math.Min(r1, r2)
		return math.Pi * rMin * rMin
	}
	w1 := r1 - (d*d-r2*r2+r1*r1)/(2*d)
	w2 := r2 - (d*d-r1*r1+r2*r2)/(2*d)
	return CircleArea(r1, w1) + CircleArea(r2, w2)
}

// CircleCircleIntersection returns the intersection points of two circles.
// Returns no points if the circles are separate or one contains the other.
func CircleCircleIntersection(c1, c2 Circle) []Point {
	d := centerDistance(c1, c2)
	r1 := c1.Radius
	r2 := c2.Radius

	if d >= r1+r2 || d <= math.Abs(r1-r2) {
		return nil
	}

	a := (r1*r1 - r2*r2 + d*d) / (2 * d)
	h := math.Sqrt(r1*r1 - a*a)
	x0 := c1.X + a*(c2.X-c1.X)/d
	y0 := c1.Y + a*(c2.Y-c1.Y)/d
	rx := -(c2.Y - c1.Y) * (h / d)
	ry := -(c2.X - c1.X) * (h / d)

	return []Point{
		{X: x0 + rx, Y: y0 - ry},
		{X: x0 - rx, Y: y0 + ry},
	}
}

// ContainedInCircles reports whether the point lies inside (or on the
// boundary of) every circle.
func ContainedInCircles(p Point, circles []Circle) bool {
	for _, c := range circles {
		if Distance(p, c.Center()) > c.Radius+Tolerance {
			return false
		}
	}
	return true
}

// OutOfCircles reports whether the point lies strictly outside every circle.
func OutOfCircles(p Point, circles []Circle) bool {
	for _, c := range circles {
		if Distance(p, c.Center()) < c.Radius-Tolerance {
			return false
		}
	}
	return true
}

// CenterOf returns the average of the given points.
func CenterOf(points []Point) Point {
	var center Point
	for _, p := range points {
		center.X += p.X
		center.Y += p.Y
	}
	center.X /= float64(len(points))
	center.Y /= float64(len(points))
	return center
}
