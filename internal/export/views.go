package export

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

// View is a 2D projection of the loaded container.
type View string

const (
	// ViewTop looks down the z axis: x to the right, y downwards.
	ViewTop View = "top"
	// ViewSide looks at the door-side wall along the y axis: x to the right,
	// z upwards.
	ViewSide View = "side"
)

// ParseView converts a query or flag value to a View. Empty means ViewTop.
func ParseView(s string) (View, error) {
	switch View(s) {
	case "", ViewTop:
		return ViewTop, nil
	case ViewSide:
		return ViewSide, nil
	default:
		return "", fmt.Errorf("%w: view %q", ErrInvalidOption, s)
	}
}

// projection is a carton flattened onto a view plane, in millimetres with
// the origin at the top-left corner of the drawing.
type projection struct {
	X, Y, W, H float64
	Request    int
	Name       string
	depth      float64
}

// project flattens every placement onto the view plane. The result is in
// painter's order: cartons hidden behind others come first.
func project(sim model.Simulation, view View) (width, height float64, boxes []projection) {
	inner := sim.Container.Inner
	boxes = make([]projection, 0, len(sim.Result.Placements))

	switch view {
	case ViewSide:
		width, height = inner.Length, inner.Height
		for _, p := range sim.Result.Placements {
			boxes = append(boxes, projection{
				X:       p.Position.X,
				Y:       inner.Height - p.Position.Z - p.Orientation.Height,
				W:       p.Orientation.Length,
				H:       p.Orientation.Height,
				Request: p.Request,
				Name:    p.Name,
				// smaller y is closer to the viewer
				depth: -p.Position.Y,
			})
		}
	default:
		width, height = inner.Length, inner.Width
		for _, p := range sim.Result.Placements {
			boxes = append(boxes, projection{
				X:       p.Position.X,
				Y:       p.Position.Y,
				W:       p.Orientation.Length,
				H:       p.Orientation.Width,
				Request: p.Request,
				Name:    p.Name,
				depth:   p.Position.Z + p.Orientation.Height,
			})
		}
	}

	slices.SortStableFunc(boxes, func(a, b projection) int {
		return cmp.Compare(a.depth, b.depth)
	})
	return width, height, boxes
}
