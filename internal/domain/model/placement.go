package model

import "fmt"

// RotationMode selects how the engine orients cartons.
type RotationMode string

const (
	// NoRotation places every carton in its original orientation.
	NoRotation RotationMode = "none"
	// GlobalBestOrientation picks, once per request, the orientation with the
	// highest theoretical fit count in the empty container.
	GlobalBestOrientation RotationMode = "global_best"
)

// ParseRotationMode converts a configuration or request value to a RotationMode.
// An empty string yields NoRotation.
func ParseRotationMode(s string) (RotationMode, error) {
	switch RotationMode(s) {
	case "", NoRotation:
		return NoRotation, nil
	case GlobalBestOrientation:
		return GlobalBestOrientation, nil
	default:
		return "", fmt.Errorf("unknown rotation mode %q", s)
	}
}

// PlacedBox is a single carton at its final position.
//
// @Description A carton placed in the container
type PlacedBox struct {
	// Request is the index of the originating BoxRequest.
	Request int `json:"request" example:"0"`
	// Name is the product name of the originating request.
	Name string `json:"name" example:"Product 1"`
	// Orientation is the carton extent after rotation.
	Orientation Dimension `json:"orientation"`
	// Position is the carton's minimum corner.
	Position Point3 `json:"position"`
} // @name PlacedBox

// Max returns the carton's maximum corner.
func (p PlacedBox) Max() Point3 {
	return Point3{
		X: p.Position.X + p.Orientation.Length,
		Y: p.Position.Y + p.Orientation.Width,
		Z: p.Position.Z + p.Orientation.Height,
	}
}

// Volume returns the placed carton's volume in mm³.
func (p PlacedBox) Volume() float64 {
	return p.Orientation.Volume()
}

// OverflowReason describes why cartons could not be loaded.
type OverflowReason string

const (
	// OverflowContainerFull means the vertical space of the container ran out.
	OverflowContainerFull OverflowReason = "container_full"
	// OverflowOversized means the carton does not fit the empty container in
	// any permitted orientation.
	OverflowOversized OverflowReason = "oversized"
)

// Overflow records the cartons of one request that were not placed.
//
// @Description Cartons of a request that could not be loaded
type Overflow struct {
	Request  int            `json:"request" example:"0"`
	Name     string         `json:"name" example:"Product 1"`
	Rejected int            `json:"rejected" example:"3"`
	Reason   OverflowReason `json:"reason" example:"container_full"`
} // @name Overflow

// OrientationPlan is the orientation chosen for a request together with the
// theoretical number of cartons the empty container holds in that orientation.
//
// @Description Orientation selected for a request
type OrientationPlan struct {
	Request        int       `json:"request" example:"0"`
	Name           string    `json:"name" example:"Product 1"`
	Orientation    Dimension `json:"orientation"`
	TheoreticalMax int       `json:"theoretical_max" example:"315"`
} // @name OrientationPlan

// PlacementResult is the output of the packing engine. Placements are in
// insertion order and Overflow is ordered by request index.
type PlacementResult struct {
	Placements []PlacedBox       `json:"placements"`
	Overflow   []Overflow        `json:"overflow"`
	Plans      []OrientationPlan `json:"orientation_plan"`
}

// PlacedCount returns the total number of placed cartons.
func (r PlacementResult) PlacedCount() int {
	return len(r.Placements)
}

// OverflowCount returns the total number of cartons that were not placed.
func (r PlacementResult) OverflowCount() int {
	n := 0
	for _, o := range r.Overflow {
		n += o.Rejected
	}
	return n
}

// PlacedFor returns the number of placed cartons that belong to request i.
func (r PlacementResult) PlacedFor(i int) int {
	n := 0
	for _, p := range r.Placements {
		if p.Request == i {
			n++
		}
	}
	return n
}

// OverflowFor returns the number of rejected cartons of request i.
func (r PlacementResult) OverflowFor(i int) int {
	n := 0
	for _, o := range r.Overflow {
		if o.Request == i {
			n += o.Rejected
		}
	}
	return n
}
