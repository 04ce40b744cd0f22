package export

import "fmt"

// RGB is a product color in sRGB.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as a CSS hex triplet.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

type swatch struct {
	rgb RGB
	aci int // AutoCAD Color Index used for DXF layers
}

var palette = []swatch{
	{RGB{76, 175, 80}, 3},   // green
	{RGB{33, 150, 243}, 5},  // blue
	{RGB{255, 152, 0}, 30},  // orange
	{RGB{156, 39, 176}, 6},  // purple
	{RGB{0, 188, 212}, 4},   // cyan
	{RGB{244, 67, 54}, 1},   // red
	{RGB{255, 235, 59}, 2},  // yellow
	{RGB{121, 85, 72}, 34},  // brown
	{RGB{96, 125, 139}, 8},  // slate
	{RGB{233, 30, 99}, 221}, // pink
}

func swatchFor(productIndex int) swatch {
	if productIndex < 0 {
		productIndex = -productIndex
	}
	return palette[productIndex%len(palette)]
}

// ColorFor returns the display color of the product at productIndex. The
// mapping depends on nothing but the index, so every renderer of the same
// simulation colors a product identically.
func ColorFor(productIndex int) RGB {
	return swatchFor(productIndex).rgb
}

// ACIFor returns the AutoCAD Color Index matching ColorFor(productIndex).
func ACIFor(productIndex int) int {
	return swatchFor(productIndex).aci
}

// PaletteSize is the number of distinct product colors before they repeat.
func PaletteSize() int {
	return len(palette)
}
