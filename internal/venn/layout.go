package venn

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/cwbudde/vennlayout/internal/geom"
	"github.com/cwbudde/vennlayout/internal/opt"
)

// InitialLayout produces a starting solution for the position refinement.
type InitialLayout func(areas []AreaSpec, params Params) (Solution, error)

// Params configures a layout run. The zero value selects the documented
// defaults everywhere.
type Params struct {
	// MaxIterations caps the final simplex refinement. Default 500.
	MaxIterations int

	// Restarts is the number of random restarts for the constrained MDS
	// initial layout. Default 10.
	Restarts int

	// Loss scores candidate solutions. Default is the canonical weighted
	// squared-area-error Loss.
	Loss LossFunction

	// Initial produces the starting layout. Default is BestInitialLayout.
	Initial InitialLayout

	// Global, when set, searches circle positions globally within bounds
	// derived from the initial layout; the final simplex refinement then
	// starts from whichever of the two seeds scores better.
	Global opt.Optimizer

	// Seed drives the MDS restarts. Runs with equal seeds and inputs
	// produce identical layouts.
	Seed int64

	// Logger receives warning-level diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

func (p Params) loss() LossFunction {
	if p.Loss == nil {
		return Loss
	}
	return p.Loss
}

func (p Params) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func (p Params) rng() *rand.Rand {
	return rand.New(rand.NewSource(p.Seed + 1))
}

// BestInitialLayout always computes the greedy layout, which is sufficient
// (and aesthetically better) for two and three circle diagrams. For larger
// problems it also tries constrained MDS and adopts it only when strictly
// better under the loss.
func BestInitialLayout(areas []AreaSpec, params Params) (Solution, error) {
	initial, err := GreedyLayout(areas, params.loss())
	if err != nil {
		return nil, err
	}
	if len(areas) >= 8 {
		constrained, err := ConstrainedMDSLayout(areas, params.Restarts, params.rng())
		if err != nil {
			return nil, err
		}
		loss := params.loss()
		if loss(constrained, areas)+1e-8 < loss(initial, areas) {
			initial = constrained
		}
	}
	return initial, nil
}

// Layout computes circle positions and radii realizing the requested areas.
// Radii are fixed analytically from each set's own size; only the centers
// are optimized, first by an initial placement heuristic and then by
// Nelder-Mead over all coordinates at once. The result is best-effort: a
// diagram whose requested areas are not realizable in the plane still lays
// out, it just carries residual loss.
func Layout(areas []AreaSpec, params Params) (Solution, error) {
	if err := validateAreas(areas); err != nil {
		return nil, err
	}
	areas = addMissingAreas(areas)

	initialLayout := params.Initial
	if initialLayout == nil {
		initialLayout = BestInitialLayout
	}
	circles, err := initialLayout(areas, params)
	if err != nil {
		return nil, err
	}

	// flatten x/y into one vector; radii stay fixed
	setIDs := sortedSetIDs(circles)
	initial := make([]float64, 0, 2*len(setIDs))
	for _, id := range setIDs {
		initial = append(initial, circles[id].X, circles[id].Y)
	}

	loss := params.loss()
	current := make(Solution, len(setIDs))
	objective := func(values []float64) float64 {
		for i, id := range setIDs {
			current[id] = geom.Circle{
				X:      values[2*i],
				Y:      values[2*i+1],
				Radius: circles[id].Radius,
			}
		}
		return loss(current, areas)
	}

	if params.Global != nil {
		initial = globalSeed(params, objective, initial, circles, setIDs)
	}

	maxIterations := params.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 500
	}
	result := opt.NelderMead(objective, initial, opt.NelderMeadParams{
		MaxIterations: maxIterations,
	})

	solution := make(Solution, len(setIDs))
	for i, id := range setIDs {
		solution[id] = geom.Circle{
			X:      result.X[2*i],
			Y:      result.X[2*i+1],
			Radius: circles[id].Radius,
		}
	}
	return solution, nil
}

// globalSeed runs the configured global optimizer over a box spanning the
// initial layout and returns whichever seed vector scores better.
func globalSeed(params Params, objective opt.Objective, initial []float64, circles Solution, setIDs []string) []float64 {
	// bound the search to the initial layout's extent, grown by its span
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, id := range setIDs {
		c := circles[id]
		lo = math.Min(lo, math.Min(c.X, c.Y)-c.Radius)
		hi = math.Max(hi, math.Max(c.X, c.Y)+c.Radius)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lower := make([]float64, len(initial))
	upper := make([]float64, len(initial))
	for i := range initial {
		lower[i] = lo - span
		upper[i] = hi + span
	}

	x, fx := params.Global.Run(objective, lower, upper, len(initial))
	if fx < objective(initial) {
		params.logger().Debug("global optimizer improved the initial seed", "cost", fx)
		return x
	}
	return initial
}
