package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

func TestWriteSVG(t *testing.T) {
	for _, view := range []View{ViewTop, ViewSide, ""} {
		t.Run(string(view), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteSVG(&buf, sampleSimulation(), view))

			out := buf.String()
			assert.Contains(t, out, "<svg")
			assert.Contains(t, out, "</svg>")
			// frame, three cartons and three legend swatches
			assert.Equal(t, 7, strings.Count(out, "<rect"))
			assert.Contains(t, out, ColorFor(0).Hex())
			assert.Contains(t, out, ColorFor(1).Hex())
			assert.Contains(t, out, "Rice 쌀 (1)")
			assert.Contains(t, out, "2000 mm")
		})
	}
}

func TestWriteSVG_Errors(t *testing.T) {
	err := WriteSVG(&bytes.Buffer{}, sampleSimulation(), View("front"))
	assert.ErrorIs(t, err, ErrInvalidOption)

	err = WriteSVG(&bytes.Buffer{}, model.Simulation{}, ViewTop)
	assert.ErrorIs(t, err, ErrInvalidOption)
}
