package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

func chair() CargoItem {
	return CargoItem{Name: "Chair", Length: 600, Width: 400, Height: 300, PerCarton: 12, OrderQty: 120}
}

func TestSimulationRequest_Validate(t *testing.T) {
	tooMany := make([]CargoItem, MaxItems+1)
	for i := range tooMany {
		tooMany[i] = chair()
	}

	tests := []struct {
		name      string
		request   SimulationRequest
		wantField string
	}{
		{
			name:    "valid catalog container",
			request: SimulationRequest{Container: "20ft", Items: []CargoItem{chair()}},
		},
		{
			name: "valid custom container",
			request: SimulationRequest{
				ContainerDimensions: &DimensionRequest{Length: 1000, Width: 1000, Height: 1000},
				RotationMode:        "global_best",
				Items:               []CargoItem{{Length: 1, Width: 1, Height: 1, Cartons: 3}},
			},
		},
		{
			name:      "missing container",
			request:   SimulationRequest{Items: []CargoItem{chair()}},
			wantField: "container",
		},
		{
			name:      "unknown rotation mode",
			request:   SimulationRequest{Container: "20ft", RotationMode: "random", Items: []CargoItem{chair()}},
			wantField: "rotation_mode",
		},
		{
			name:      "no items",
			request:   SimulationRequest{Container: "20ft"},
			wantField: "items",
		},
		{
			name:      "too many items",
			request:   SimulationRequest{Container: "20ft", Items: tooMany},
			wantField: "items",
		},
		{
			name:      "negative per carton",
			request:   SimulationRequest{Container: "20ft", Items: []CargoItem{{Length: 1, Width: 1, Height: 1, PerCarton: -1, OrderQty: 1}}},
			wantField: "items[0].per_carton",
		},
		{
			name:      "negative quantity",
			request:   SimulationRequest{Container: "20ft", Items: []CargoItem{chair(), {Length: 1, Width: 1, Height: 1, OrderQty: -5}}},
			wantField: "items[1].order_qty",
		},
		{
			name:      "no quantity",
			request:   SimulationRequest{Container: "20ft", Items: []CargoItem{{Length: 1, Width: 1, Height: 1}}},
			wantField: "items[0].order_qty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestSimulationRequest_Mode(t *testing.T) {
	assert.Equal(t, model.RotationMode(""), (&SimulationRequest{}).Mode())
	assert.Equal(t, model.NoRotation, (&SimulationRequest{RotationMode: "none"}).Mode())
	assert.Equal(t, model.GlobalBestOrientation, (&SimulationRequest{RotationMode: "global_best"}).Mode())
}

func TestSimulationRequest_WantsPlacements(t *testing.T) {
	no := false
	yes := true
	assert.True(t, (&SimulationRequest{}).WantsPlacements())
	assert.True(t, (&SimulationRequest{IncludePlacements: &yes}).WantsPlacements())
	assert.False(t, (&SimulationRequest{IncludePlacements: &no}).WantsPlacements())
}

func TestCargoItem_ToBoxRequest(t *testing.T) {
	tests := []struct {
		name          string
		item          CargoItem
		wantCount     int
		wantPerCarton int
	}{
		{name: "count from order quantity", item: chair(), wantCount: 10, wantPerCarton: 12},
		{name: "partial carton rounds up", item: CargoItem{Length: 1, Width: 1, Height: 1, PerCarton: 12, OrderQty: 121}, wantCount: 11, wantPerCarton: 12},
		{name: "per carton defaults to one", item: CargoItem{Length: 1, Width: 1, Height: 1, OrderQty: 7}, wantCount: 7, wantPerCarton: 1},
		{name: "explicit cartons win", item: CargoItem{Length: 1, Width: 1, Height: 1, PerCarton: 5, OrderQty: 100, Cartons: 3}, wantCount: 3, wantPerCarton: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.item.ToBoxRequest()
			assert.Equal(t, tt.wantCount, r.Count)
			assert.Equal(t, tt.wantPerCarton, r.PerCarton)
			assert.Equal(t, tt.item.Length, r.Carton.Length)
		})
	}
}

func TestSimulationRequest_BoxRequests(t *testing.T) {
	req := SimulationRequest{Items: []CargoItem{chair(), {Name: "  Desk ", Length: 1200, Width: 800, Height: 750, Cartons: 2}}}

	got := req.BoxRequests()
	require.Len(t, got, 2)
	assert.Equal(t, "Chair", got[0].Name)
	assert.Equal(t, "Desk", got[1].Name)
	assert.Equal(t, 2, got[1].Count)
}

func TestContainerRequest(t *testing.T) {
	valid := ContainerRequest{Label: " 20ft Reefer ", Length: 5444, Width: 2268, Height: 2276}
	assert.NoError(t, valid.Validate())

	c := valid.ToContainer("reefer20")
	assert.Equal(t, "reefer20", c.Code)
	assert.Equal(t, "20ft Reefer", c.Label)
	assert.Equal(t, 2276.0, c.Inner.Height)

	invalid := ContainerRequest{Length: 5444, Width: 0, Height: 2276}
	assert.Error(t, invalid.Validate())
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "items[2].order_qty", Message: "must not be negative"}
	assert.Equal(t, "items[2].order_qty: must not be negative", err.Error())
}
