package opt

import (
	"math"
	"sort"
)

// NelderMeadParams configures the simplex minimizer. Zero values select the
// documented defaults; the standard coefficients can be overridden for the
// rare caller that needs a non-standard simplex schedule.
type NelderMeadParams struct {
	MaxIterations int     // default 200 * dim
	NonZeroDelta  float64 // initial perturbation factor, default 1.1
	ZeroDelta     float64 // perturbation for zero coordinates, default 0.001
	MinErrorDelta float64 // best/worst value spread stop, default 1e-6
	MinTolerance  float64 // best/second coordinate spread stop, default 1e-5

	// Simplex coefficients. Set Coefficients to override the standard
	// reflection/expansion/contraction/shrink schedule.
	Coefficients *SimplexCoefficients
}

// SimplexCoefficients are the Nelder-Mead step coefficients.
type SimplexCoefficients struct {
	Rho   float64 // reflection, standard 1
	Chi   float64 // expansion, standard 2
	Psi   float64 // contraction, standard -0.5
	Sigma float64 // shrink, standard 0.5
}

func (p *NelderMeadParams) defaults(dim int) (rho, chi, psi, sigma float64) {
	if p.MaxIterations <= 0 {
		p.MaxIterations = 200 * dim
	}
	if p.NonZeroDelta == 0 {
		p.NonZeroDelta = 1.1
	}
	if p.ZeroDelta == 0 {
		p.ZeroDelta = 0.001
	}
	if p.MinErrorDelta == 0 {
		p.MinErrorDelta = 1e-6
	}
	if p.MinTolerance == 0 {
		p.MinTolerance = 1e-5
	}
	if p.Coefficients != nil {
		c := p.Coefficients
		return c.Rho, c.Chi, c.Psi, c.Sigma
	}
	return 1, 2, -0.5, 0.5
}

// simplexVertex is one point of the simplex together with its value.
type simplexVertex struct {
	coords []float64
	value  float64
}

// NelderMead minimizes f starting from x0 using the Nelder-Mead downhill
// simplex method. No gradient is required. The search stops when the
// simplex has collapsed below the configured tolerances or the iteration
// budget runs out; either way the best vertex found is returned.
func NelderMead(f Objective, x0 []float64, params NelderMeadParams) Result {
	n := len(x0)
	rho, chi, psi, sigma := params.defaults(n)

	// build the initial simplex by perturbing each coordinate in turn
	simplex := make([]simplexVertex, n+1)
	simplex[0] = simplexVertex{coords: append([]float64(nil), x0...)}
	simplex[0].value = f(simplex[0].coords)
	for i := 0; i < n; i++ {
		point := append([]float64(nil), x0...)
		if point[i] != 0 {
			point[i] *= params.NonZeroDelta
		} else {
			point[i] = params.ZeroDelta
		}
		simplex[i+1] = simplexVertex{coords: point, value: f(point)}
	}

	centroid := make([]float64, n)
	reflected := simplexVertex{coords: make([]float64, n)}
	contracted := simplexVertex{coords: make([]float64, n)}
	expanded := simplexVertex{coords: make([]float64, n)}

	replaceWorst := func(v simplexVertex) {
		worst := &simplex[n]
		copy(worst.coords, v.coords)
		worst.value = v.value
	}

	for iteration := 0; iteration < params.MaxIterations; iteration++ {
		sort.Slice(simplex, func(i, j int) bool {
			return simplex[i].value < simplex[j].value
		})

		maxDiff := 0.0
		for i := 0; i < n; i++ {
			maxDiff = math.Max(maxDiff, math.Abs(simplex[0].coords[i]-simplex[1].coords[i]))
		}
		if math.Abs(simplex[0].value-simplex[n].value) < params.MinErrorDelta &&
			maxDiff < params.MinTolerance {
			break
		}

		worst := simplex[n]

		// centroid of all vertices but the worst
		for i := 0; i < n; i++ {
			centroid[i] = 0
			for j := 0; j < n; j++ {
				centroid[i] += simplex[j].coords[i]
			}
			centroid[i] /= float64(n)
		}

		// reflect the worst point past the centroid
		weightedSum(reflected.coords, 1+rho, centroid, -rho, worst.coords)
		reflected.value = f(reflected.coords)

		if reflected.value < simplex[0].value {
			// best point seen; try expanding further
			weightedSum(expanded.coords, 1+chi, centroid, -chi, worst.coords)
			expanded.value = f(expanded.coords)
			if expanded.value < reflected.value {
				replaceWorst(expanded)
			} else {
				replaceWorst(reflected)
			}
		} else if reflected.value >= simplex[n-1].value {
			shouldShrink := false
			if reflected.value > worst.value {
				// inside contraction
				weightedSum(contracted.coords, 1+psi, centroid, -psi, worst.coords)
				contracted.value = f(contracted.coords)
				if contracted.value < worst.value {
					replaceWorst(contracted)
				} else {
					shouldShrink = true
				}
			} else {
				// outside contraction
				weightedSum(contracted.coords, 1-psi*rho, centroid, psi*rho, worst.coords)
				contracted.value = f(contracted.coords)
				if contracted.value < reflected.value {
					replaceWorst(contracted)
				} else {
					shouldShrink = true
				}
			}
			if shouldShrink {
				if sigma >= 1 {
					break
				}
				for i := 1; i < len(simplex); i++ {
					weightedSum(simplex[i].coords, 1-sigma, simplex[0].coords, sigma, simplex[i].coords)
					simplex[i].value = f(simplex[i].coords)
				}
			}
		} else {
			replaceWorst(reflected)
		}
	}

	sort.Slice(simplex, func(i, j int) bool {
		return simplex[i].value < simplex[j].value
	})
	return Result{X: simplex[0].coords, Fx: simplex[0].value}
}
