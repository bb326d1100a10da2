package opt

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestBisectProperties verifies the root finder against randomly shifted
// monotone functions with a guaranteed sign change on the bracket.
func TestBisectProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	genRoot := gen.Float64Range(-5, 5)
	genSlope := gen.Float64Range(0.1, 10)

	properties.Property("found root zeroes the function", prop.ForAll(
		func(root, slope float64) bool {
			f := func(x float64) float64 { return slope * (x - root) }
			got, err := Bisect(f, root-10, root+10, BisectParams{})
			return err == nil && math.Abs(f(got)) < 1e-6
		},
		genRoot, genSlope,
	))

	properties.Property("found root stays inside the bracket", prop.ForAll(
		func(root, slope float64) bool {
			f := func(x float64) float64 { return slope*(x-root) + (x-root)*(x-root)*(x-root) }
			got, err := Bisect(f, root-10, root+10, BisectParams{})
			return err == nil && got >= root-10 && got <= root+10
		},
		genRoot, genSlope,
	))

	properties.TestingRun(t)
}

// TestMinimizerProperties checks that both local minimizers land near the
// known optimum of randomly shifted convex quadratics.
func TestMinimizerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	genCentre := gen.Float64Range(-5, 5)

	properties.Property("simplex finds the quadratic minimum", prop.ForAll(
		func(cx, cy float64) bool {
			f := func(x []float64) float64 {
				dx, dy := x[0]-cx, x[1]-cy
				return dx*dx + dy*dy
			}
			res := NelderMead(f, []float64{0, 0}, NelderMeadParams{})
			return math.Abs(res.X[0]-cx) < 1e-3 && math.Abs(res.X[1]-cy) < 1e-3
		},
		genCentre, genCentre,
	))

	properties.Property("conjugate gradient finds the quadratic minimum", prop.ForAll(
		func(cx, cy float64) bool {
			f := func(x, grad []float64) float64 {
				dx, dy := x[0]-cx, x[1]-cy
				grad[0] = 2 * dx
				grad[1] = 2 * dy
				return dx*dx + dy*dy
			}
			res := ConjugateGradient(f, []float64{0, 0}, CGParams{MaxIterations: 50})
			return math.Abs(res.X[0]-cx) < 1e-2 && math.Abs(res.X[1]-cy) < 1e-2
		},
		genCentre, genCentre,
	))

	properties.TestingRun(t)
}
