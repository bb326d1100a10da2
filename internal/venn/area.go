// Package venn computes area-proportional Venn/Euler diagram layouts: given
// requested sizes for sets and their intersections, it positions one circle
// per set so that the realized overlap areas approximate the requests.
package venn

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cwbudde/vennlayout/internal/geom"
	"github.com/cwbudde/vennlayout/internal/opt"
)

// AreaSpec requests a size for a single set or for the intersection of two
// or more sets. Weight scales the spec's contribution to the loss; nil
// means the default weight of 1.
type AreaSpec struct {
	Sets   []string `json:"sets" toml:"sets"`
	Size   float64  `json:"size" toml:"size"`
	Weight *float64 `json:"weight,omitempty" toml:"weight"`
}

func (a AreaSpec) weight() float64 {
	if a.Weight == nil {
		return 1.0
	}
	return *a.Weight
}

// Key returns the canonical identifier for the spec's set combination:
// the sorted set ids joined with commas.
func (a AreaSpec) Key() string {
	ids := append([]string(nil), a.Sets...)
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// Solution maps each set id to its laid-out circle.
type Solution map[string]geom.Circle

// SpecError reports malformed layout input.
type SpecError struct {
	Index  int
	Reason string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("venn: invalid area spec %d: %s", e.Index, e.Reason)
}

// validateAreas fails fast on malformed input: empty set lists, duplicate
// ids within one spec, negative sizes, and intersection specs referencing
// sets that have no single-set entry.
func validateAreas(areas []AreaSpec) error {
	singles := make(map[string]bool)
	for i, area := range areas {
		if len(area.Sets) == 0 {
			return &SpecError{Index: i, Reason: "empty set list"}
		}
		if area.Size < 0 {
			return &SpecError{Index: i, Reason: fmt.Sprintf("negative size %g", area.Size)}
		}
		seen := make(map[string]bool, len(area.Sets))
		for _, id := range area.Sets {
			if seen[id] {
				return &SpecError{Index: i, Reason: fmt.Sprintf("duplicate set id %q", id)}
			}
			seen[id] = true
		}
		if len(area.Sets) == 1 {
			if singles[area.Sets[0]] {
				return &SpecError{Index: i, Reason: fmt.Sprintf("set %q specified twice", area.Sets[0])}
			}
			singles[area.Sets[0]] = true
		}
	}
	for i, area := range areas {
		if len(area.Sets) == 1 {
			continue
		}
		for _, id := range area.Sets {
			if !singles[id] {
				return &SpecError{Index: i, Reason: fmt.Sprintf("intersection references unknown set %q", id)}
			}
		}
	}
	return nil
}

// addMissingAreas appends a zero-size spec for every unordered pair of
// single sets that has no pairwise entry, treating unreported pairs as
// disjoint.
func addMissingAreas(areas []AreaSpec) []AreaSpec {
	out := append([]AreaSpec(nil), areas...)

	var ids []string
	pairs := make(map[[2]string]bool)
	for _, area := range areas {
		switch len(area.Sets) {
		case 1:
			ids = append(ids, area.Sets[0])
		case 2:
			a, b := area.Sets[0], area.Sets[1]
			pairs[[2]string{a, b}] = true
			pairs[[2]string{b, a}] = true
		}
	}
	sort.Strings(ids)

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if !pairs[[2]string{ids[i], ids[j]}] {
				out = append(out, AreaSpec{Sets: []string{ids[i], ids[j]}, Size: 0})
			}
		}
	}
	return out
}

// DistanceFromIntersectArea inverts the pairwise overlap: it returns the
// center distance at which circles of radii r1 and r2 overlap by the given
// area, found by bisection over [0, r1+r2].
func DistanceFromIntersectArea(r1, r2, overlap float64) (float64, error) {
	// complete overlap needs no search
	rMin := math.Min(r1, r2)
	if rMin*rMin*math.Pi <= overlap+geom.Tolerance {
		return math.Abs(r1 - r2), nil
	}
	d, err := opt.Bisect(func(distance float64) float64 {
		return geom.CircleOverlap(r1, r2, distance) - overlap
	}, 0, r1+r2, opt.BisectParams{})
	if err != nil {
		return 0, fmt.Errorf("venn: inverting overlap %g for radii %g, %g: %w", overlap, r1, r2, err)
	}
	return d, nil
}

// radius derives the fixed circle radius for a set of the given size.
func radius(size float64) float64 {
	return math.Sqrt(size / math.Pi)
}

// sortedSetIDs returns the solution's set ids in deterministic order.
func sortedSetIDs(solution Solution) []string {
	ids := make([]string, 0, len(solution))
	for id := range solution {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
