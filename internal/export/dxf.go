package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/packing"
)

// ContainerLayer holds the container's outer frame.
const ContainerLayer = "CONTAINER"

var layerReplacer = strings.NewReplacer(
	"<", "_", ">", "_", "/", "_", "\\", "_", "\"", "_", ":", "_",
	";", "_", "?", "_", "*", "_", "|", "_", "=", "_", "`", "_", " ", "_",
)

// LayerName returns the DXF layer of the product at productIndex.
func LayerName(productIndex int, name string) string {
	return fmt.Sprintf("P%02d_%s", productIndex+1, layerReplacer.Replace(name))
}

// WriteDXF renders sim as a 3D wireframe: the container frame plus the
// twelve edges of every placed carton, one layer per product.
func WriteDXF(w io.Writer, sim model.Simulation) error {
	d := dxf.NewDrawing()

	if _, err := d.AddLayer(ContainerLayer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add container layer: %w", err)
	}
	frame := model.PlacedBox{Orientation: sim.Container.Inner}
	if err := drawBox(d, frame); err != nil {
		return err
	}

	layers := make(map[int]string, len(sim.Requests))
	for i, req := range sim.Requests {
		name := LayerName(i, req.Name)
		if _, err := d.AddLayer(name, color.ColorNumber(ACIFor(i)), dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", name, err)
		}
		layers[i] = name
	}

	for _, p := range sim.Result.Placements {
		name, ok := layers[p.Request]
		if !ok {
			name = ContainerLayer
		}
		if err := d.ChangeLayer(name); err != nil {
			return fmt.Errorf("failed to switch to layer %s: %w", name, err)
		}
		if err := drawBox(d, p); err != nil {
			return err
		}
	}

	return saveDrawing(d, w)
}

func drawBox(d *drawing.Drawing, p model.PlacedBox) error {
	corners := packing.Corners(p)
	for _, e := range packing.Edges {
		a, b := corners[e[0]], corners[e[1]]
		if _, err := d.Line(a[0], a[1], a[2], b[0], b[1], b[2]); err != nil {
			return fmt.Errorf("failed to draw edge: %w", err)
		}
	}
	return nil
}

// saveDrawing streams d to w. The dxf package only saves to named files, so
// the drawing goes through a temporary file.
func saveDrawing(d *drawing.Drawing, w io.Writer) error {
	tmp, err := os.CreateTemp("", "loadsim-*.dxf")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	defer func() { _ = os.Remove(path) }()
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to copy DXF: %w", err)
	}
	return nil
}
