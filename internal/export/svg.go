package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

const (
	svgPixelWidth = 1200
	svgLegendRow  = 28 // px per legend line
)

// WriteSVG renders one projection of the loaded container. The drawing uses
// millimetres as user units, so coordinates match the plan directly.
func WriteSVG(w io.Writer, sim model.Simulation, view View) error {
	if view == "" {
		view = ViewTop
	}
	if view != ViewTop && view != ViewSide {
		return fmt.Errorf("%w: view %q", ErrInvalidOption, view)
	}

	width, height, boxes := project(sim, view)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: container has no extent", ErrInvalidOption)
	}

	vw, vh := mm(width), mm(height)
	unit := int(math.Max(1, math.Round(width/svgPixelWidth)))
	margin := 40 * unit
	legendLines := (len(sim.Report.Products) + 3) / 4
	legendH := legendLines * svgLegendRow * unit

	pxW := svgPixelWidth
	pxH := int(math.Round(float64(pxW) * float64(vh+2*margin+legendH) / float64(vw+2*margin)))

	canvas := svg.New(w)
	canvas.Startview(pxW, pxH, -margin, -margin, vw+2*margin, vh+2*margin+legendH)
	canvas.Title(fmt.Sprintf("%s view of %s", view, containerTitle(sim.Container)))
	canvas.Desc(fmt.Sprintf("Utilization %.2f%%, %d cartons loaded", sim.Report.UtilizationPercent, sim.Result.PlacedCount()))

	canvas.Rect(0, 0, vw, vh, fmt.Sprintf("fill:#f0f0f0;stroke:#3c3c3c;stroke-width:%d", 3*unit))

	canvas.Gstyle(fmt.Sprintf("stroke:#1e1e1e;stroke-width:%d", unit))
	for _, b := range boxes {
		canvas.Rect(mm(b.X), mm(b.Y), mm(b.W), mm(b.H), "fill:"+ColorFor(b.Request).Hex())
	}
	canvas.Gend()

	font := fmt.Sprintf("font-family:sans-serif;font-size:%dpx;fill:#505050", 14*unit)
	canvas.Text(vw/2, vh+20*unit, fmt.Sprintf("%.0f mm", width), font+";text-anchor:middle")
	canvas.Gtransform(fmt.Sprintf("translate(%d,%d) rotate(-90)", -12*unit, vh/2))
	canvas.Text(0, 0, fmt.Sprintf("%.0f mm", height), font+";text-anchor:middle")
	canvas.Gend()

	legendTop := vh + margin
	colW := (vw + margin) / 4
	for i, p := range sim.Report.Products {
		x := (i % 4) * colW
		y := legendTop + (i/4)*svgLegendRow*unit
		canvas.Rect(x, y, 14*unit, 14*unit, "fill:"+ColorFor(i).Hex())
		canvas.Text(x+20*unit, y+12*unit, fmt.Sprintf("%s (%d)", p.Name, p.Placed), font)
	}

	canvas.End()
	return nil
}

func mm(v float64) int {
	return int(math.Round(v))
}
