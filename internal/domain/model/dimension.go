// Package model defines the core domain entities for the loading simulation.
//
// All lengths are millimetres. Volumes are reported in cubic metres (CBM).
package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// MM3PerCBM is the number of cubic millimetres in one cubic metre.
const MM3PerCBM = 1e9

// Dimension is an axis-aligned extent along length (x), width (y) and height (z).
//
// @Description Extent in millimetres along length, width and height
type Dimension struct {
	Length float64 `json:"length" bson:"length" yaml:"length" example:"600"`
	Width  float64 `json:"width" bson:"width" yaml:"width" example:"400"`
	Height float64 `json:"height" bson:"height" yaml:"height" example:"300"`
} // @name Dimension

// ErrInvalidDimension is matched by every error returned from Dimension.Validate.
var ErrInvalidDimension = errors.New("invalid dimension")

var axisNames = [3]string{"length", "width", "height"}

// Validate rejects any component that is not a finite number greater than zero.
func (d Dimension) Validate() error {
	for i, v := range [3]float64{d.Length, d.Width, d.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: %s must be a positive number, got %v", ErrInvalidDimension, axisNames[i], v)
		}
	}
	return nil
}

// Positive reports whether every component is a finite number greater than zero.
func (d Dimension) Positive() bool {
	return d.Validate() == nil
}

// Volume returns the volume in mm³.
func (d Dimension) Volume() float64 {
	return d.Length * d.Width * d.Height
}

// CBM returns the volume in cubic metres.
func (d Dimension) CBM() float64 {
	return d.Volume() / MM3PerCBM
}

// Axis returns the extent along axis i (0 = length, 1 = width, 2 = height).
func (d Dimension) Axis(i int) float64 {
	switch i {
	case 0:
		return d.Length
	case 1:
		return d.Width
	default:
		return d.Height
	}
}

func (d Dimension) String() string {
	return formatMM(d.Length) + "x" + formatMM(d.Width) + "x" + formatMM(d.Height)
}

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Point3 is a position in container coordinates with the origin at the
// container's minimum corner.
type Point3 struct {
	X float64 `json:"x" example:"0"`
	Y float64 `json:"y" example:"0"`
	Z float64 `json:"z" example:"0"`
} // @name Point3
