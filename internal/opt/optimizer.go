package opt

import "math"

// Objective is a scalar function of a parameter vector.
type Objective func(x []float64) float64

// GradObjective evaluates the function at x and writes the gradient into
// grad, which has the same length as x.
type GradObjective func(x, grad []float64) float64

// Optimizer defines a bounded global optimization algorithm interface
type Optimizer interface {
	// Run executes the optimization
	// eval: objective function to minimize
	// lower, upper: parameter bounds
	// dim: dimensionality of parameter space
	// Returns: best parameters and best cost
	Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64)
}

// Result holds the output of a local minimization.
type Result struct {
	X  []float64
	Fx float64
}

// GradResult additionally carries the gradient at the returned point.
type GradResult struct {
	X    []float64
	Fx   float64
	Grad []float64
}

// weightedSum writes w1*v1 + w2*v2 into out.
func weightedSum(out []float64, w1 float64, v1 []float64, w2 float64, v2 []float64) {
	for i := range out {
		out[i] = w1*v1[i] + w2*v2[i]
	}
}

// scale writes w*v into out.
func scale(out []float64, v []float64, w float64) {
	for i := range out {
		out[i] = w * v[i]
	}
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// norm2 returns the Euclidean norm.
func norm2(v []float64) float64 {
	return math.Sqrt(dot(v, v))
}
