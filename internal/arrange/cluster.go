// Package arrange post-processes raw layout solutions: it splits circles
// into disjoint clusters, gives each cluster a canonical orientation, tiles
// the clusters into one composition, scales everything to a viewport, and
// places label anchors and marker points inside the regions.
package arrange

import (
	"math"
	"sort"

	"github.com/cwbudde/vennlayout/internal/geom"
	"github.com/cwbudde/vennlayout/internal/venn"
)

// labeledCircle pairs a circle with its set id while clustering.
type labeledCircle struct {
	geom.Circle
	setID string
}

// unionFind is an index-arena disjoint-set over circle slice positions.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(i int) int {
	if u.parent[i] != i {
		u.parent[i] = u.find(u.parent[i])
	}
	return u.parent[i]
}

func (u *unionFind) union(i, j int) {
	u.parent[u.find(i)] = u.find(j)
}

// DisjointClusters partitions the solution's circles into groups that
// transitively overlap one another. Circles that merely touch within
// tolerance stay separate.
func DisjointClusters(solution venn.Solution) [][]string {
	circles := circleList(solution)
	groups := clusterCircles(circles)

	out := make([][]string, len(groups))
	for i, group := range groups {
		ids := make([]string, len(group))
		for j, c := range group {
			ids[j] = c.setID
		}
		sort.Strings(ids)
		out[i] = ids
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func circleList(solution venn.Solution) []labeledCircle {
	ids := make([]string, 0, len(solution))
	for id := range solution {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	circles := make([]labeledCircle, len(ids))
	for i, id := range ids {
		circles[i] = labeledCircle{Circle: solution[id], setID: id}
	}
	return circles
}

func clusterCircles(circles []labeledCircle) [][]labeledCircle {
	uf := newUnionFind(len(circles))
	for i := 0; i < len(circles); i++ {
		for j := i + 1; j < len(circles); j++ {
			maxDistance := circles[i].Radius + circles[j].Radius
			if geom.Distance(circles[i].Center(), circles[j].Center())+geom.Tolerance < maxDistance {
				uf.union(j, i)
			}
		}
	}

	byRoot := make(map[int][]labeledCircle)
	var roots []int
	for i, c := range circles {
		root := uf.find(i)
		if _, ok := byRoot[root]; !ok {
			roots = append(roots, root)
		}
		byRoot[root] = append(byRoot[root], c)
	}
	sort.Ints(roots)

	groups := make([][]labeledCircle, len(roots))
	for i, root := range roots {
		groups[i] = byRoot[root]
	}
	return groups
}

// boundingBox is the axis-aligned extent of a group of circles.
type boundingBox struct {
	xMin, xMax, yMin, yMax float64
}

func (b boundingBox) width() float64  { return b.xMax - b.xMin }
func (b boundingBox) height() float64 { return b.yMax - b.yMin }
func (b boundingBox) area() float64   { return b.width() * b.height() }

func getBoundingBox(circles []labeledCircle) boundingBox {
	b := boundingBox{
		xMin: math.Inf(1), xMax: math.Inf(-1),
		yMin: math.Inf(1), yMax: math.Inf(-1),
	}
	for _, c := range circles {
		b.xMin = math.Min(b.xMin, c.X-c.Radius)
		b.xMax = math.Max(b.xMax, c.X+c.Radius)
		b.yMin = math.Min(b.yMin, c.Y-c.Radius)
		b.yMax = math.Max(b.yMax, c.Y+c.Radius)
	}
	return b
}

// OrientateCircles rotates and reflects a cluster in place into its
// canonical pose: largest circle at the origin, second largest at
// orientationAngle from it, and the third largest kept on the canonical
// side of the line through the first two. The reflection rule is a
// reproducibility heuristic: re-layouts of similar data come out facing
// the same way.
func OrientateCircles(circles []labeledCircle, orientationAngle float64) {
	sort.Slice(circles, func(i, j int) bool {
		if circles[i].Radius != circles[j].Radius {
			return circles[i].Radius > circles[j].Radius
		}
		return circles[i].setID < circles[j].setID
	})

	if len(circles) == 0 {
		return
	}

	// largest circle moves to the origin
	largestX := circles[0].X
	largestY := circles[0].Y
	for i := range circles {
		circles[i].X -= largestX
		circles[i].Y -= largestY
	}

	if len(circles) == 2 {
		// a fully contained second circle would vanish behind the first;
		// tuck it against one side instead
		d := geom.Distance(circles[0].Center(), circles[1].Center())
		if d < math.Abs(circles[1].Radius-circles[0].Radius) {
			circles[1].X = circles[0].X + circles[0].Radius - circles[1].Radius - geom.Tolerance
			circles[1].Y = circles[0].Y
		}
	}

	// rotate so the second largest sits at the orientation angle
	if len(circles) > 1 {
		rotation := math.Atan2(circles[1].X, circles[1].Y) - orientationAngle
		c := math.Cos(rotation)
		s := math.Sin(rotation)
		for i := range circles {
			x := circles[i].X
			y := circles[i].Y
			circles[i].X = c*x - s*y
			circles[i].Y = s*x + c*y
		}
	}

	// reflect across the line through the first two circles if the third
	// landed past pi
	if len(circles) > 2 {
		angle := math.Atan2(circles[2].X, circles[2].Y) - orientationAngle
		for angle < 0 {
			angle += 2 * math.Pi
		}
		for angle > 2*math.Pi {
			angle -= 2 * math.Pi
		}
		if angle > math.Pi {
			slope := circles[1].Y / (geom.Tolerance + circles[1].X)
			for i := range circles {
				d := (circles[i].X + slope*circles[i].Y) / (1 + slope*slope)
				circles[i].X = 2*d - circles[i].X
				circles[i].Y = 2*d*slope - circles[i].Y
			}
		}
	}
}

// DefaultOrientation places the second largest circle of each cluster on
// the positive x axis beside the largest. Angles are measured from the
// positive y axis toward positive x.
const DefaultOrientation = math.Pi / 2

// NormalizeSolution orientates every disjoint cluster and tiles the
// clusters around the largest one, three at a time (right, bottom-left,
// bottom-right), with spacing of a fiftieth of the anchor width. The input
// solution is not mutated.
func NormalizeSolution(solution venn.Solution, orientationAngle float64) venn.Solution {
	clusters := clusterCircles(circleList(solution))
	bounds := make([]boundingBox, len(clusters))
	for i := range clusters {
		OrientateCircles(clusters[i], orientationAngle)
		bounds[i] = getBoundingBox(clusters[i])
	}

	order := make([]int, len(clusters))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return bounds[order[i]].area() > bounds[order[j]].area()
	})

	// largest cluster anchors the composition
	composed := append([]labeledCircle(nil), clusters[order[0]]...)
	composedBounds := bounds[order[0]]
	spacing := composedBounds.width() / 50

	addCluster := func(idx int, right, bottom bool) {
		cluster := clusters[order[idx]]
		b := bounds[order[idx]]

		var xOffset, yOffset float64
		if right {
			xOffset = composedBounds.xMax - b.xMin + spacing
		} else {
			xOffset = composedBounds.xMax - b.xMax
			centering := b.width()/2 - composedBounds.width()/2
			if centering < 0 {
				xOffset += centering
			}
		}
		if bottom {
			yOffset = composedBounds.yMax - b.yMin + spacing
		} else {
			yOffset = composedBounds.yMax - b.yMax
			centering := b.height()/2 - composedBounds.height()/2
			if centering < 0 {
				yOffset += centering
			}
		}

		for _, c := range cluster {
			c.X += xOffset
			c.Y += yOffset
			composed = append(composed, c)
		}
	}

	for index := 1; index < len(order); index += 3 {
		addCluster(index, true, false)
		if index+1 < len(order) {
			addCluster(index+1, false, true)
		}
		if index+2 < len(order) {
			addCluster(index+2, true, true)
		}
		composedBounds = getBoundingBox(composed)
	}

	out := make(venn.Solution, len(composed))
	for _, c := range composed {
		out[c.setID] = c.Circle
	}
	return out
}
