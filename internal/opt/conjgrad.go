package opt

import "math"

// CGParams configures the nonlinear conjugate gradient minimizer.
type CGParams struct {
	MaxIterations int // default 5 * dim
}

// point bundles a position with its value and gradient so the line search
// can swap iterates without reallocating.
type point struct {
	x       []float64
	fx      float64
	fxprime []float64
}

func newPoint(dim int) *point {
	return &point{x: make([]float64, dim), fxprime: make([]float64, dim)}
}

// ConjugateGradient minimizes f starting from x0 using nonlinear conjugate
// gradient with the Polak-Ribiere update (clamped at zero) and a Wolfe
// condition line search. When the line search fails to produce an
// acceptable step the direction resets to steepest descent for the next
// iteration; that is a recoverable condition, not an error. The search
// stops early once the gradient norm drops to 1e-5.
func ConjugateGradient(f GradObjective, x0 []float64, params CGParams) GradResult {
	dim := len(x0)
	maxIterations := params.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 5 * dim
	}

	current := newPoint(dim)
	next := newPoint(dim)
	copy(current.x, x0)
	copy(next.x, x0)
	current.fx = f(current.x, current.fxprime)

	yk := make([]float64, dim)
	pk := make([]float64, dim)
	scale(pk, current.fxprime, -1)

	a := 1.0
	for i := 0; i < maxIterations; i++ {
		a = wolfeLineSearch(f, pk, current, next, a)
		if a == 0 {
			// no step satisfied the Wolfe conditions; restart along the
			// steepest descent direction
			scale(pk, current.fxprime, -1)
		} else {
			// Polak-Ribiere direction update
			weightedSum(yk, 1, next.fxprime, -1, current.fxprime)
			deltaK := dot(current.fxprime, current.fxprime)
			betaK := math.Max(0, dot(yk, next.fxprime)/deltaK)
			weightedSum(pk, betaK, pk, -1, next.fxprime)
			current, next = next, current
		}
		if norm2(current.fxprime) <= 1e-5 {
			break
		}
	}

	return GradResult{X: current.x, Fx: current.fx, Grad: current.fxprime}
}

// Wolfe condition constants: sufficient decrease and curvature.
const (
	wolfeC1 = 1e-6
	wolfeC2 = 0.1
)

// wolfeLineSearch searches along direction pk from current for a step
// length satisfying the strong Wolfe conditions, writing the accepted
// iterate into next. Returns 0 if no acceptable step was found.
func wolfeLineSearch(f GradObjective, pk []float64, current, next *point, a float64) float64 {
	phi0 := current.fx
	phiPrime0 := dot(current.fxprime, pk)
	phi := phi0
	phiOld := phi0
	phiPrime := phiPrime0
	a0 := 0.0

	if a <= 0 {
		a = 1
	}

	zoom := func(aLo, aHigh, phiLo float64) float64 {
		for iteration := 0; iteration < 16; iteration++ {
			a = (aLo + aHigh) / 2
			weightedSum(next.x, 1.0, current.x, a, pk)
			phi = f(next.x, next.fxprime)
			next.fx = phi
			phiPrime = dot(next.fxprime, pk)

			if phi > phi0+wolfeC1*a*phiPrime0 || phi >= phiLo {
				aHigh = a
			} else {
				if math.Abs(phiPrime) <= -wolfeC2*phiPrime0 {
					return a
				}
				if phiPrime*(aHigh-aLo) >= 0 {
					aHigh = aLo
				}
				aLo = a
				phiLo = phi
			}
		}
		return 0
	}

	for iteration := 0; iteration < 10; iteration++ {
		weightedSum(next.x, 1.0, current.x, a, pk)
		phi = f(next.x, next.fxprime)
		next.fx = phi
		phiPrime = dot(next.fxprime, pk)

		if phi > phi0+wolfeC1*a*phiPrime0 || (iteration > 0 && phi >= phiOld) {
			return zoom(a0, a, phiOld)
		}
		if math.Abs(phiPrime) <= -wolfeC2*phiPrime0 {
			return a
		}
		if phiPrime >= 0 {
			return zoom(a, a0, phi)
		}

		phiOld = phi
		a0 = a
		a *= 2
	}

	return a
}
