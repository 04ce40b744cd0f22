package dto

import (
	"time"

	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/packing"
)

// PlacementView is a placed carton with its load sequence and the eight
// corners of its bounding box.
//
// @Description A placed carton
type PlacementView struct {
	Sequence     int             `json:"sequence" example:"1"`
	Product      string          `json:"product" example:"Chair"`
	ProductIndex int             `json:"product_index" example:"0"`
	Position     model.Point3    `json:"position"`
	Orientation  model.Dimension `json:"orientation"`
	Corners      [8]model.Point3 `json:"corners"`
} // @name PlacementView

// SimulationResponse is the payload of POST /api/simulations.
//
// @Description Result of a loading simulation
type SimulationResponse struct {
	ID              string                  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Container       model.Container         `json:"container"`
	RotationMode    model.RotationMode      `json:"rotation_mode" example:"none"`
	PlacedCount     int                     `json:"placed_count" example:"10"`
	OverflowCount   int                     `json:"overflow_count" example:"0"`
	Placements      []PlacementView         `json:"placements,omitempty"`
	Overflow        []model.Overflow        `json:"overflow"`
	Warnings        []string                `json:"warnings"`
	OrientationPlan []model.OrientationPlan `json:"orientation_plan"`
	Report          model.UtilizationReport `json:"report"`
	CreatedAt       time.Time               `json:"created_at"`
} // @name SimulationResponse

// NewSimulationResponse builds the response body for sim. Placements are
// omitted unless includePlacements is set; warnings are passed through as given.
func NewSimulationResponse(sim model.Simulation, includePlacements bool, warnings []string) SimulationResponse {
	resp := SimulationResponse{
		ID:              sim.ID,
		Container:       sim.Container,
		RotationMode:    sim.Mode,
		PlacedCount:     sim.Result.PlacedCount(),
		OverflowCount:   sim.Result.OverflowCount(),
		Overflow:        sim.Result.Overflow,
		Warnings:        warnings,
		OrientationPlan: sim.Result.Plans,
		Report:          sim.Report,
		CreatedAt:       sim.CreatedAt,
	}
	if resp.Overflow == nil {
		resp.Overflow = []model.Overflow{}
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	if includePlacements {
		resp.Placements = Placements(sim.Result.Placements)
	}
	return resp
}

// Placements converts placed boxes to views numbered from 1 in load order.
func Placements(boxes []model.PlacedBox) []PlacementView {
	out := make([]PlacementView, len(boxes))
	for i, b := range boxes {
		v := PlacementView{
			Sequence:     i + 1,
			Product:      b.Name,
			ProductIndex: b.Request,
			Position:     b.Position,
			Orientation:  b.Orientation,
		}
		for j, c := range packing.Corners(b) {
			v.Corners[j] = model.Point3{X: c.X(), Y: c.Y(), Z: c.Z()}
		}
		out[i] = v
	}
	return out
}

// ContainerListResponse is the payload of GET /api/containers.
type ContainerListResponse struct {
	Containers []model.Container `json:"containers"`
} // @name ContainerListResponse

// ImportResponse is the payload of POST /api/simulations/import.
//
// @Description Cargo lines parsed from an uploaded sheet
type ImportResponse struct {
	Items    []CargoItem `json:"items"`
	Warnings []string    `json:"warnings"`
} // @name ImportResponse
