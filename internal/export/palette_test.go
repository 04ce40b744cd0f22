package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorFor_Deterministic(t *testing.T) {
	for i := 0; i < 3*PaletteSize(); i++ {
		assert.Equal(t, ColorFor(i), ColorFor(i))
		assert.Equal(t, ColorFor(i), ColorFor(i+PaletteSize()), "palette repeats after PaletteSize entries")
	}
}

func TestColorFor_DistinctWithinPalette(t *testing.T) {
	seen := map[RGB]bool{}
	aci := map[int]bool{}
	for i := 0; i < PaletteSize(); i++ {
		seen[ColorFor(i)] = true
		aci[ACIFor(i)] = true
	}
	assert.Len(t, seen, PaletteSize())
	assert.Len(t, aci, PaletteSize())
}

func TestColorFor_NegativeIndex(t *testing.T) {
	assert.NotPanics(t, func() { ColorFor(-3) })
	assert.Equal(t, ColorFor(3), ColorFor(-3))
}

func TestRGB_Hex(t *testing.T) {
	assert.Equal(t, "#4caf50", RGB{76, 175, 80}.Hex())
	assert.Equal(t, "#000000", RGB{}.Hex())
}
