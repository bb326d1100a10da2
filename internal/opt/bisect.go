package opt

import (
	"errors"
	"math"
)

// ErrSameSign is returned when the bisection endpoints do not bracket a root.
var ErrSameSign = errors.New("opt: bisect endpoints must have opposite signs")

// BisectParams configures the bisection root finder.
type BisectParams struct {
	MaxIterations int     // default 100
	Tolerance     float64 // default 1e-10
}

func (p *BisectParams) defaults() {
	if p.MaxIterations <= 0 {
		p.MaxIterations = 100
	}
	if p.Tolerance <= 0 {
		p.Tolerance = 1e-10
	}
}

// Bisect finds a root of f in [a, b] by bisection. f(a) and f(b) must have
// opposite signs. If the tolerance is not reached within the iteration
// budget the best estimate so far is returned; that is not an error.
func Bisect(f func(float64) float64, a, b float64, params BisectParams) (float64, error) {
	params.defaults()

	fA := f(a)
	fB := f(b)
	if fA*fB > 0 {
		return 0, ErrSameSign
	}
	if fA == 0 {
		return a, nil
	}
	if fB == 0 {
		return b, nil
	}

	delta := b - a
	for i := 0; i < params.MaxIterations; i++ {
		delta /= 2
		mid := a + delta
		fMid := f(mid)
		if fMid*fA >= 0 {
			a = mid
		}
		if math.Abs(delta) < params.Tolerance || fMid == 0 {
			return mid, nil
		}
	}
	return a + delta, nil
}
