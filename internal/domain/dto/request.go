// Package dto defines the HTTP request and response bodies of the simulation API.
package dto

import (
	"fmt"
	"strings"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

// MaxItems bounds the number of cargo lines in a single request.
const MaxItems = 500

// DimensionRequest is a length/width/height triple in millimetres.
type DimensionRequest struct {
	Length float64 `json:"length" yaml:"length" example:"5898"`
	Width  float64 `json:"width" yaml:"width" example:"2352"`
	Height float64 `json:"height" yaml:"height" example:"2395"`
} // @name DimensionRequest

// ToModel converts the request to a model.Dimension.
func (d DimensionRequest) ToModel() model.Dimension {
	return model.Dimension{Length: d.Length, Width: d.Width, Height: d.Height}
}

// CargoItem is one product line: a carton size and how many cartons to load.
// The carton count is Cartons when set, otherwise ceil(order_qty / per_carton).
//
// @Description Product line of a loading plan
// @Example {"name": "Chair", "length": 600, "width": 400, "height": 300, "per_carton": 12, "order_qty": 120}
type CargoItem struct {
	Name      string  `json:"name,omitempty" yaml:"name" example:"Chair"`
	Length    float64 `json:"length" yaml:"length" example:"600"`
	Width     float64 `json:"width" yaml:"width" example:"400"`
	Height    float64 `json:"height" yaml:"height" example:"300"`
	PerCarton int     `json:"per_carton,omitempty" yaml:"per_carton" example:"12"`
	OrderQty  int     `json:"order_qty,omitempty" yaml:"order_qty" example:"120"`
	Cartons   int     `json:"cartons,omitempty" yaml:"cartons" example:"0"`
} // @name CargoItem

// ToBoxRequest converts the item to an engine request. A missing per-carton
// quantity means one unit per carton.
func (i CargoItem) ToBoxRequest() model.BoxRequest {
	perCarton := i.PerCarton
	if perCarton == 0 {
		perCarton = 1
	}
	r := model.NewBoxRequest(strings.TrimSpace(i.Name),
		model.Dimension{Length: i.Length, Width: i.Width, Height: i.Height},
		perCarton, i.OrderQty)
	if i.Cartons > 0 {
		r.Count = i.Cartons
	}
	return r
}

// SimulationRequest is the body of the simulate and export endpoints.
//
// @Description Container loading simulation request
// @Example {"container": "20ft", "rotation_mode": "none", "items": [{"name": "Chair", "length": 600, "width": 400, "height": 300, "per_carton": 12, "order_qty": 120}]}
type SimulationRequest struct {
	// Container is a catalog code such as "20ft", "40ft" or "40hc".
	Container string `json:"container,omitempty" example:"20ft"`
	// ContainerDimensions describes a custom container and takes precedence over Container.
	ContainerDimensions *DimensionRequest `json:"container_dimensions,omitempty"`
	// RotationMode is "none" (default) or "global_best".
	RotationMode string `json:"rotation_mode,omitempty" example:"none" enums:"none,global_best"`
	// IncludePlacements controls whether every placed carton is returned. Defaults to true.
	IncludePlacements *bool       `json:"include_placements,omitempty"`
	Items             []CargoItem `json:"items" binding:"required"`
} // @name SimulationRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrNoItems is returned when a request carries no cargo lines.
	ErrNoItems = &ValidationError{Field: "items", Message: "at least one item is required"}
	// ErrTooManyItems is returned when a request exceeds MaxItems lines.
	ErrTooManyItems = &ValidationError{Field: "items", Message: fmt.Sprintf("at most %d items are allowed", MaxItems)}
	// ErrMissingContainer is returned when neither a code nor dimensions are given.
	ErrMissingContainer = &ValidationError{Field: "container", Message: "a container code or container_dimensions is required"}
)

// Validate checks the request shape. Carton dimensions and counts are checked
// by the packing engine, which reports the offending item.
func (r *SimulationRequest) Validate() error {
	if r.ContainerDimensions == nil && strings.TrimSpace(r.Container) == "" {
		return ErrMissingContainer
	}
	if _, err := model.ParseRotationMode(r.RotationMode); err != nil {
		return &ValidationError{Field: "rotation_mode", Message: err.Error()}
	}
	if len(r.Items) == 0 {
		return ErrNoItems
	}
	if len(r.Items) > MaxItems {
		return ErrTooManyItems
	}
	for i, item := range r.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.PerCarton < 0 {
			return &ValidationError{Field: field + ".per_carton", Message: "must not be negative"}
		}
		if item.OrderQty < 0 || item.Cartons < 0 {
			return &ValidationError{Field: field + ".order_qty", Message: "must not be negative"}
		}
		if item.OrderQty == 0 && item.Cartons == 0 {
			return &ValidationError{Field: field + ".order_qty", Message: "order_qty or cartons is required"}
		}
	}
	return nil
}

// Mode returns the requested rotation mode, or "" to use the server default.
// Call Validate first.
func (r *SimulationRequest) Mode() model.RotationMode {
	if r.RotationMode == "" {
		return ""
	}
	mode, _ := model.ParseRotationMode(r.RotationMode)
	return mode
}

// WantsPlacements reports whether placements should be included in the response.
func (r *SimulationRequest) WantsPlacements() bool {
	return r.IncludePlacements == nil || *r.IncludePlacements
}

// BoxRequests converts every item to an engine request, in order.
func (r *SimulationRequest) BoxRequests() []model.BoxRequest {
	out := make([]model.BoxRequest, len(r.Items))
	for i, item := range r.Items {
		out[i] = item.ToBoxRequest()
	}
	return out
}

// ContainerRequest is the body of PUT /api/containers/{code}.
//
// @Description Container catalog entry
// @Example {"label": "20ft Reefer", "length": 5444, "width": 2268, "height": 2276}
type ContainerRequest struct {
	Label  string  `json:"label" example:"20ft Reefer"`
	Length float64 `json:"length" binding:"required,gt=0" example:"5444"`
	Width  float64 `json:"width" binding:"required,gt=0" example:"2268"`
	Height float64 `json:"height" binding:"required,gt=0" example:"2276"`
} // @name ContainerRequest

// Validate checks that every dimension is positive.
func (r *ContainerRequest) Validate() error {
	if !r.dimension().Positive() {
		return &ValidationError{Field: "dimensions", Message: "length, width and height must be positive"}
	}
	return nil
}

func (r *ContainerRequest) dimension() model.Dimension {
	return model.Dimension{Length: r.Length, Width: r.Width, Height: r.Height}
}

// ToContainer returns the catalog container stored under code.
func (r *ContainerRequest) ToContainer(code string) model.Container {
	return model.Container{Code: code, Label: strings.TrimSpace(r.Label), Inner: r.dimension()}
}
