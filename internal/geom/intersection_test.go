package geom

import (
	"math"
	"testing"
)

func TestIntersectionAreaSingleCircle(t *testing.T) {
	c := Circle{X: 3, Y: -2, Radius: 1.5}
	area, err := IntersectionArea([]Circle{c}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := math.Pi * 1.5 * 1.5
	if math.Abs(area-want) > 1e-9 {
		t.Errorf("Single circle: expected %f, got %f", want, area)
	}
}

func TestIntersectionAreaEmptyInput(t *testing.T) {
	if _, err := IntersectionArea(nil, nil); err == nil {
		t.Error("Expected error for empty circle list")
	}
}

func TestIntersectionAreaMatchesPairwiseOverlap(t *testing.T) {
	// for two circles the arc-polygon decomposition must agree with the
	// closed-form lens area
	cases := []struct {
		c1, c2 Circle
	}{
		{Circle{0, 0, 1}, Circle{1, 0, 1}},
		{Circle{0, 0, 2}, Circle{1.5, 0.5, 1}},
		{Circle{-1, -1, 1.2}, Circle{0, 0, 0.9}},
	}
	for _, tc := range cases {
		got, err := IntersectionArea([]Circle{tc.c1, tc.c2}, nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		want := CircleOverlap(tc.c1.Radius, tc.c2.Radius, centerDistance(tc.c1, tc.c2))
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Two-circle intersection %v/%v: expected %f, got %f", tc.c1, tc.c2, want, got)
		}
	}
}

func TestIntersectionAreaDisjoint(t *testing.T) {
	circles := []Circle{
		{X: 0, Y: 0, Radius: 1},
		{X: 10, Y: 0, Radius: 1},
	}
	area, err := IntersectionArea(circles, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if area != 0 {
		t.Errorf("Disjoint circles: expected area 0, got %f", area)
	}
}

func TestIntersectionAreaContained(t *testing.T) {
	// smallest circle fully inside the others
	circles := []Circle{
		{X: 0, Y: 0, Radius: 3},
		{X: 0.5, Y: 0, Radius: 3},
		{X: 0.2, Y: 0.1, Radius: 0.5},
	}
	var stats IntersectionStats
	area, err := IntersectionArea(circles, &stats)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := math.Pi * 0.25
	if math.Abs(area-want) > 1e-9 {
		t.Errorf("Contained circle: expected %f, got %f", want, area)
	}
	if len(stats.Arcs) != 1 {
		t.Errorf("Expected a single synthetic full-circle arc, got %d arcs", len(stats.Arcs))
	}
}

func TestIntersectionAreaThreeCircles(t *testing.T) {
	// three unit circles arranged symmetrically around the origin; the
	// common region is a Reuleaux-like triangle with known closed form
	d := 0.6
	circles := []Circle{
		{X: d, Y: 0, Radius: 1},
		{X: d * math.Cos(2*math.Pi/3), Y: d * math.Sin(2*math.Pi/3), Radius: 1},
		{X: d * math.Cos(4*math.Pi/3), Y: d * math.Sin(4*math.Pi/3), Radius: 1},
	}
	var stats IntersectionStats
	area, err := IntersectionArea(circles, &stats)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if area <= 0 {
		t.Fatalf("Expected positive area, got %f", area)
	}
	if len(stats.Arcs) != 3 {
		t.Errorf("Expected 3 boundary arcs, got %d", len(stats.Arcs))
	}
	if stats.PolygonArea <= 0 || stats.ArcArea <= 0 {
		t.Errorf("Expected positive polygon and arc areas, got %f / %f", stats.PolygonArea, stats.ArcArea)
	}
	if math.Abs(stats.Area-(stats.PolygonArea+stats.ArcArea)) > 1e-12 {
		t.Error("Stats area must equal polygon + arc area")
	}

	// sanity bound: common region is smaller than any pairwise lens
	lens := CircleOverlap(1, 1, centerDistance(circles[0], circles[1]))
	if area >= lens {
		t.Errorf("Triple intersection %f should be below pairwise lens %f", area, lens)
	}
}

func TestIntersectionAreaPermutationInvariant(t *testing.T) {
	circles := []Circle{
		{X: 0, Y: 0, Radius: 1},
		{X: 0.8, Y: 0, Radius: 1.1},
		{X: 0.4, Y: 0.7, Radius: 0.9},
	}
	base, err := IntersectionArea(circles, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	perms := [][]int{{0, 2, 1}, {1, 0, 2}, {2, 1, 0}, {1, 2, 0}, {2, 0, 1}}
	for _, perm := range perms {
		shuffled := make([]Circle, len(circles))
		for i, j := range perm {
			shuffled[i] = circles[j]
		}
		got, err := IntersectionArea(shuffled, nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if math.Abs(got-base) > 1e-9 {
			t.Errorf("Permutation %v changed area: %f vs %f", perm, got, base)
		}
	}
}
