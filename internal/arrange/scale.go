package arrange

import (
	"log/slog"
	"math"

	"github.com/cwbudde/vennlayout/internal/geom"
	"github.com/cwbudde/vennlayout/internal/venn"
)

// ScaleSolution uniformly scales and translates the solution so its
// bounding box is centered within [padding, width-padding] x
// [padding, height-padding]. The aspect ratio is preserved by taking the
// smaller of the two axis scales. A degenerate (zero-extent) bounding box
// is returned unscaled with a warning on the logger.
func ScaleSolution(solution venn.Solution, width, height, padding float64, logger *slog.Logger) venn.Solution {
	if logger == nil {
		logger = slog.Default()
	}

	circles := circleList(solution)
	bounds := getBoundingBox(circles)

	width -= 2 * padding
	height -= 2 * padding

	if bounds.width() == 0 || bounds.height() == 0 {
		logger.Warn("not scaling solution: zero size detected",
			"width", bounds.width(), "height", bounds.height())
		return solution
	}

	xScale := width / bounds.width()
	yScale := height / bounds.height()
	scale := math.Min(xScale, yScale)

	// center the diagram while we're at it
	xOffset := (width - bounds.width()*scale) / 2
	yOffset := (height - bounds.height()*scale) / 2

	scaled := make(venn.Solution, len(circles))
	for _, c := range circles {
		scaled[c.setID] = geom.Circle{
			X:      padding + xOffset + (c.X-bounds.xMin)*scale,
			Y:      padding + yOffset + (c.Y-bounds.yMin)*scale,
			Radius: c.Radius * scale,
		}
	}
	return scaled
}
