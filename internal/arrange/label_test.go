package arrange

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/vennlayout/internal/geom"
	"github.com/cwbudde/vennlayout/internal/venn"
)

func TestComputeTextCentreSingleCircle(t *testing.T) {
	interior := []geom.Circle{{X: 3, Y: 4, Radius: 2}}
	centre := ComputeTextCentre(interior, nil)

	assert.False(t, centre.Disjoint)
	assert.InDelta(t, 3, centre.X, 1e-3)
	assert.InDelta(t, 4, centre.Y, 1e-3)
}

func TestComputeTextCentreAvoidsExterior(t *testing.T) {
	interior := []geom.Circle{{X: 0, Y: 0, Radius: 2}}
	exterior := []geom.Circle{{X: 2, Y: 0, Radius: 2}}
	centre := ComputeTextCentre(interior, exterior)

	require.False(t, centre.Disjoint)
	// anchor sits inside the interior circle and outside the exterior one
	assert.LessOrEqual(t, geom.Distance(centre.Point, geom.Point{X: 0, Y: 0}), 2.0)
	assert.GreaterOrEqual(t, geom.Distance(centre.Point, geom.Point{X: 2, Y: 0}), 2.0)
	// pushed away from the exterior circle, onto the far side
	assert.Less(t, centre.X, 0.0)
}

func TestComputeTextCentreLensRegion(t *testing.T) {
	interior := []geom.Circle{
		{X: 0, Y: 0, Radius: 2},
		{X: 2, Y: 0, Radius: 2},
	}
	centre := ComputeTextCentre(interior, nil)

	require.False(t, centre.Disjoint)
	assert.InDelta(t, 1, centre.X, 1e-3)
	assert.InDelta(t, 0, centre.Y, 1e-3)
}

func TestComputeTextCentreDisjointRegion(t *testing.T) {
	interior := []geom.Circle{
		{X: 0, Y: 0, Radius: 1},
		{X: 10, Y: 0, Radius: 1},
	}
	centre := ComputeTextCentre(interior, nil)
	assert.True(t, centre.Disjoint)
}

func TestComputeTextCentresKeys(t *testing.T) {
	areas := []venn.AreaSpec{
		{Sets: []string{"a"}, Size: 10},
		{Sets: []string{"b"}, Size: 10},
		{Sets: []string{"b", "a"}, Size: 3},
	}
	solution, err := venn.Layout(areas, venn.Params{})
	require.NoError(t, err)

	centres := ComputeTextCentres(solution, areas)
	require.Len(t, centres, 3)
	require.Contains(t, centres, "a")
	require.Contains(t, centres, "b")
	require.Contains(t, centres, "a,b")

	// the pair anchor lands in the actual overlap region
	pair := centres["a,b"]
	require.False(t, pair.Disjoint)
	a := solution["a"]
	b := solution["b"]
	assert.LessOrEqual(t, geom.Distance(pair.Point, a.Center()), a.Radius+1e-6)
	assert.LessOrEqual(t, geom.Distance(pair.Point, b.Center()), b.Radius+1e-6)
}

func TestComputeRegionOutlineLens(t *testing.T) {
	circles := []geom.Circle{
		{X: 0, Y: 0, Radius: 2},
		{X: 2, Y: 0, Radius: 2},
	}
	outline, err := ComputeRegionOutline(circles)
	require.NoError(t, err)
	require.False(t, outline.Empty)
	require.Len(t, outline.Segments, 2)
	for _, seg := range outline.Segments {
		assert.Equal(t, 2.0, seg.Radius)
	}
	// the outline is closed: the last segment ends where the first begins
	last := outline.Segments[len(outline.Segments)-1]
	assert.InDelta(t, outline.Start.X, last.End.X, 1e-9)
	assert.InDelta(t, outline.Start.Y, last.End.Y, 1e-9)
}

func TestComputeRegionOutlineEmpty(t *testing.T) {
	circles := []geom.Circle{
		{X: 0, Y: 0, Radius: 1},
		{X: 10, Y: 0, Radius: 1},
	}
	outline, err := ComputeRegionOutline(circles)
	require.NoError(t, err)
	assert.True(t, outline.Empty)
}

func TestScatterPointsInsideRegion(t *testing.T) {
	interior := []geom.Circle{{X: 0, Y: 0, Radius: 5}}
	exterior := []geom.Circle{{X: 4, Y: 0, Radius: 2}}

	points := ScatterPoints(interior, exterior, 20, rand.New(rand.NewSource(42)), nil)
	require.Len(t, points, 20)
	for i, p := range points {
		assert.True(t, geom.ContainedInCircles(p, interior), "point %d outside interior", i)
		assert.True(t, geom.OutOfCircles(p, exterior), "point %d inside exterior", i)
	}
}

func TestScatterPointsReproducible(t *testing.T) {
	interior := []geom.Circle{{X: 0, Y: 0, Radius: 3}}
	first := ScatterPoints(interior, nil, 5, rand.New(rand.NewSource(7)), nil)
	second := ScatterPoints(interior, nil, 5, rand.New(rand.NewSource(7)), nil)
	assert.Equal(t, first, second)
}

func TestScatterPointsExhaustionFallsBack(t *testing.T) {
	// an impossible region: the exterior circle swallows the interior.
	// every point must fall back to the region centre instead of failing.
	interior := []geom.Circle{{X: 0, Y: 0, Radius: 1}}
	exterior := []geom.Circle{{X: 0, Y: 0, Radius: 5}}

	points := ScatterPoints(interior, exterior, 3, rand.New(rand.NewSource(1)), nil)
	require.Len(t, points, 3)
	assert.Equal(t, points[0], points[1])
	assert.Equal(t, points[1], points[2])
}

func TestScatterPointsZeroCount(t *testing.T) {
	assert.Nil(t, ScatterPoints([]geom.Circle{{Radius: 1}}, nil, 0, nil, nil))
}
