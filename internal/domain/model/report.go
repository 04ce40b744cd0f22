package model

import "time"

// ProductUtilization summarises one request after packing.
//
// @Description Per-product loading summary
type ProductUtilization struct {
	Name           string  `json:"name" example:"Product 1"`
	Requested      int     `json:"requested" example:"10"`
	Placed         int     `json:"placed" example:"10"`
	Overflow       int     `json:"overflow" example:"0"`
	UnitsShipped   int     `json:"units_shipped" example:"200"`
	UnitVolumeCBM  float64 `json:"unit_volume_cbm" example:"0.072"`
	TotalVolumeCBM float64 `json:"total_volume_cbm" example:"0.72"`
	// AdditionalFitEstimate is floor(free volume / unit volume). It ignores
	// geometry and can overstate what would really fit.
	AdditionalFitEstimate int `json:"additional_fit_estimate" example:"431"`
} // @name ProductUtilization

// UtilizationReport holds the volume metrics of a simulation.
//
// @Description Container volume utilization
type UtilizationReport struct {
	Products           []ProductUtilization `json:"products"`
	ContainerVolumeCBM float64              `json:"container_volume_cbm" example:"33.22"`
	UsedVolumeCBM      float64              `json:"used_volume_cbm" example:"0.72"`
	FreeVolumeCBM      float64              `json:"free_volume_cbm" example:"32.5"`
	UtilizationPercent float64              `json:"utilization_percent" example:"2.17"`
} // @name UtilizationReport

// Simulation is the complete, immutable outcome of one loading run. It is
// handed to renderers and reporters as a read-only value.
type Simulation struct {
	ID        string            `json:"id"`
	Container Container         `json:"container"`
	Mode      RotationMode      `json:"rotation_mode"`
	Requests  []BoxRequest      `json:"requests"`
	Result    PlacementResult   `json:"result"`
	Report    UtilizationReport `json:"report"`
	CreatedAt time.Time         `json:"created_at"`
}
