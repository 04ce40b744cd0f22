package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

// sampleSimulation builds a small, hand-checked simulation: two cartons of
// "Soap" side by side and one "Rice" carton stacked on top, with one oversized
// request that overflowed.
func sampleSimulation() model.Simulation {
	container := model.Container{
		Code:  "test",
		Label: "Test box",
		Inner: model.Dimension{Length: 2000, Width: 1000, Height: 1000},
	}
	soap := model.NewBoxRequest("Soap", model.Dimension{Length: 1000, Width: 1000, Height: 500}, 10, 20)
	rice := model.NewBoxRequest("Rice 쌀", model.Dimension{Length: 1000, Width: 500, Height: 500}, 4, 4)
	huge := model.NewBoxRequest("Huge", model.Dimension{Length: 3000, Width: 100, Height: 100}, 1, 2)

	return model.Simulation{
		ID:        "sim-1",
		Container: container,
		Mode:      model.NoRotation,
		Requests:  []model.BoxRequest{soap, rice, huge},
		Result: model.PlacementResult{
			Placements: []model.PlacedBox{
				{Request: 0, Name: "Soap", Orientation: soap.Carton, Position: model.Point3{}},
				{Request: 0, Name: "Soap", Orientation: soap.Carton, Position: model.Point3{X: 1000}},
				{Request: 1, Name: "Rice 쌀", Orientation: rice.Carton, Position: model.Point3{Z: 500}},
			},
			Overflow: []model.Overflow{
				{Request: 2, Name: "Huge", Rejected: 2, Reason: model.OverflowOversized},
			},
		},
		Report: model.UtilizationReport{
			Products: []model.ProductUtilization{
				{Name: "Soap", Requested: 2, Placed: 2, UnitsShipped: 20, UnitVolumeCBM: 0.5, TotalVolumeCBM: 1, AdditionalFitEstimate: 1},
				{Name: "Rice 쌀", Requested: 1, Placed: 1, UnitsShipped: 4, UnitVolumeCBM: 0.25, TotalVolumeCBM: 0.25, AdditionalFitEstimate: 3},
				{Name: "Huge", Requested: 2, Overflow: 2, UnitVolumeCBM: 0.03, AdditionalFitEstimate: 25},
			},
			ContainerVolumeCBM: 2,
			UsedVolumeCBM:      1.25,
			FreeVolumeCBM:      0.75,
			UtilizationPercent: 62.5,
		},
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "pdf", want: FormatPDF},
		{in: " XLSX ", want: FormatXLSX},
		{in: "labels", want: FormatLabels},
		{in: "dxf", want: FormatDXF},
		{in: "svg", want: FormatSVG},
		{in: "docx", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_ContentTypeAndFileName(t *testing.T) {
	sim := sampleSimulation()

	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "application/pdf", FormatLabels.ContentType())
	assert.Equal(t, "image/svg+xml", FormatSVG.ContentType())
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")

	assert.Equal(t, "loadsim-sim-1.pdf", FormatPDF.FileName(sim))
	assert.Equal(t, "loadsim-sim-1-labels.pdf", FormatLabels.FileName(sim))
	assert.Equal(t, "loadsim.dxf", FormatDXF.FileName(model.Simulation{}))
}

func TestFormats_ReturnsCopy(t *testing.T) {
	got := Formats()
	got[0] = "mutated"
	assert.Equal(t, FormatPDF, Formats()[0])
}

func TestWrite_Dispatch(t *testing.T) {
	sim := sampleSimulation()

	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, f, sim, Options{}))
			assert.NotZero(t, buf.Len())
		})
	}

	err := Write(&bytes.Buffer{}, Format("docx"), sim, Options{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestContainerTitle(t *testing.T) {
	tests := []struct {
		name string
		c    model.Container
		want string
	}{
		{name: "label and code", c: model.Container{Code: "20ft", Label: "20ft Standard"}, want: "20ft Standard (20ft)"},
		{name: "label equals code", c: model.Container{Code: "20ft", Label: "20ft"}, want: "20ft"},
		{name: "code only", c: model.Container{Code: "40hc"}, want: "40hc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containerTitle(tt.c))
		})
	}
}
