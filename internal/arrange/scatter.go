package arrange

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/cwbudde/vennlayout/internal/geom"
)

// maxScatterAttempts caps the rejection sampling per scattered point.
const maxScatterAttempts = 500

// ScatterPoints distributes count marker points inside the region that is
// within all interior circles and outside all exterior circles, keeping
// accepted points apart from each other. Sampling is rejection-based over
// the interior bounding box; a point whose attempt budget runs out falls
// back to the region centre and the exhaustion is logged as a warning,
// never an error. rng of nil selects a fixed seed, so calls are
// reproducible by default.
func ScatterPoints(interior, exterior []geom.Circle, count int, rng *rand.Rand, logger *slog.Logger) []geom.Point {
	if count <= 0 || len(interior) == 0 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = slog.Default()
	}

	centre := ComputeTextCentre(interior, exterior)

	// sample within the interior circles' bounding box
	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	var regionArea float64
	for _, c := range interior {
		xMin = math.Min(xMin, c.X-c.Radius)
		xMax = math.Max(xMax, c.X+c.Radius)
		yMin = math.Min(yMin, c.Y-c.Radius)
		yMax = math.Max(yMax, c.Y+c.Radius)
	}
	regionArea, _ = geom.IntersectionArea(interior, nil)

	// spacing scaled so count points could tile the region loosely
	minSpacing := 0.5 * math.Sqrt(regionArea/(math.Pi*float64(count)))

	points := make([]geom.Point, 0, count)
	for i := 0; i < count; i++ {
		placed := false
		for attempt := 0; attempt < maxScatterAttempts; attempt++ {
			p := geom.Point{
				X: xMin + rng.Float64()*(xMax-xMin),
				Y: yMin + rng.Float64()*(yMax-yMin),
			}
			if !geom.ContainedInCircles(p, interior) {
				continue
			}
			if !geom.OutOfCircles(p, exterior) {
				continue
			}
			tooClose := false
			for _, q := range points {
				if geom.Distance(p, q) < minSpacing {
					tooClose = true
					break
				}
			}
			if tooClose {
				continue
			}
			points = append(points, p)
			placed = true
			break
		}
		if !placed {
			logger.Warn("point scattering exhausted attempts, using region centre",
				"point", i, "attempts", maxScatterAttempts)
			points = append(points, centre.Point)
		}
	}
	return points
}
