package venn

import (
	"math"
	"math/rand"

	"github.com/cwbudde/vennlayout/internal/geom"
	"github.com/cwbudde/vennlayout/internal/opt"
)

// distanceMatrices holds pairwise target distances between set circles and
// the corresponding inequality constraints: 1 when one set contains the
// other (distance may be anything at most the target), -1 when the sets are
// disjoint (distance may be anything at least the target), 0 for an exact
// target.
type distanceMatrices struct {
	distances   [][]float64
	constraints [][]float64
}

// getDistanceMatrices converts the pairwise area specs into target center
// distances via DistanceFromIntersectArea.
func getDistanceMatrices(areas []AreaSpec, sets []AreaSpec, setIndex map[string]int) (distanceMatrices, error) {
	n := len(sets)
	m := distanceMatrices{
		distances:   zerosMatrix(n),
		constraints: zerosMatrix(n),
	}

	for _, area := range areas {
		if len(area.Sets) != 2 {
			continue
		}
		left := setIndex[area.Sets[0]]
		right := setIndex[area.Sets[1]]
		r1 := radius(sets[left].Size)
		r2 := radius(sets[right].Size)

		d, err := DistanceFromIntersectArea(r1, r2, area.Size)
		if err != nil {
			return m, err
		}
		m.distances[left][right] = d
		m.distances[right][left] = d

		var c float64
		if area.Size+geom.Tolerance >= math.Min(sets[left].Size, sets[right].Size) {
			c = 1
		} else if area.Size <= geom.Tolerance {
			c = -1
		}
		m.constraints[left][right] = c
		m.constraints[right][left] = c
	}
	return m, nil
}

// constrainedMDSLoss scores candidate positions against the target distance
// matrix, skipping pairs whose inequality constraint is already satisfied,
// and writes the analytic gradient into grad.
func constrainedMDSLoss(x []float64, m distanceMatrices, grad []float64) float64 {
	var loss float64
	for i := range grad {
		grad[i] = 0
	}

	n := len(m.distances)
	for i := 0; i < n; i++ {
		xi, yi := x[2*i], x[2*i+1]
		for j := i + 1; j < n; j++ {
			xj, yj := x[2*j], x[2*j+1]
			dij := m.distances[i][j]
			constraint := m.constraints[i][j]

			squaredDistance := (xj-xi)*(xj-xi) + (yj-yi)*(yj-yi)
			distance := math.Sqrt(squaredDistance)
			delta := squaredDistance - dij*dij

			if (constraint > 0 && distance <= dij) ||
				(constraint < 0 && distance >= dij) {
				continue
			}

			loss += 2 * delta * delta
			grad[2*i] += 4 * delta * (xi - xj)
			grad[2*i+1] += 4 * delta * (yi - yj)
			grad[2*j] += 4 * delta * (xj - xi)
			grad[2*j+1] += 4 * delta * (yj - yi)
		}
	}
	return loss
}

// ConstrainedMDSLayout embeds the sets in the plane by multidimensional
// scaling over the target distance matrix, honoring containment/disjoint
// inequality constraints, minimized by conjugate gradient from several
// random restarts. rng drives the restarts; restarts <= 0 selects the
// default of 10.
func ConstrainedMDSLayout(areas []AreaSpec, restarts int, rng *rand.Rand) (Solution, error) {
	if restarts <= 0 {
		restarts = 10
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	var sets []AreaSpec
	setIndex := make(map[string]int)
	for _, area := range areas {
		if len(area.Sets) == 1 {
			setIndex[area.Sets[0]] = len(sets)
			sets = append(sets, area)
		}
	}

	matrices, err := getDistanceMatrices(areas, sets, setIndex)
	if err != nil {
		return nil, err
	}

	// normalize by the RMS distance, things get messed up otherwise
	norm := matrixNorm(matrices.distances)
	if norm == 0 {
		norm = 1
	}
	for _, row := range matrices.distances {
		for i := range row {
			row[i] /= norm
		}
	}

	objective := func(x, grad []float64) float64 {
		return constrainedMDSLoss(x, matrices, grad)
	}

	var best opt.GradResult
	for i := 0; i < restarts; i++ {
		initial := make([]float64, len(sets)*2)
		for j := range initial {
			initial[j] = rng.Float64()
		}
		current := opt.ConjugateGradient(objective, initial, opt.CGParams{})
		if i == 0 || current.Fx < best.Fx {
			best = current
		}
	}

	solution := make(Solution, len(sets))
	for i, set := range sets {
		solution[set.Sets[0]] = geom.Circle{
			X:      best.X[2*i] * norm,
			Y:      best.X[2*i+1] * norm,
			Radius: radius(set.Size),
		}
	}
	return solution, nil
}

func zerosMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

// matrixNorm returns the RMS-style norm used to precondition the distance
// matrix: the Euclidean norm of the per-row norms over the row count.
func matrixNorm(m [][]float64) float64 {
	var sum float64
	for _, row := range m {
		var rowSum float64
		for _, v := range row {
			rowSum += v * v
		}
		sum += rowSum
	}
	return math.Sqrt(sum) / float64(len(m))
}
