package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Container is the cuboid cargo space of a shipping container. It is
// immutable for the duration of a simulation.
//
// @Description Shipping container with its inner dimensions
// @Example {"code": "20ft", "label": "20ft Standard", "inner": {"length": 5898, "width": 2352, "height": 2395}}
type Container struct {
	// Code identifies the container type in the catalog (e.g. "20ft").
	Code string `json:"code" bson:"code" yaml:"code" example:"20ft"`
	// Label is the human readable name.
	Label string `json:"label" bson:"label" yaml:"label" example:"20ft Standard"`
	// Inner is the usable interior space.
	Inner Dimension `json:"inner" bson:"inner" yaml:"inner"`
} // @name Container

// CustomContainerCode is the code reported for containers given by dimensions.
const CustomContainerCode = "custom"

// CustomContainer returns an uncatalogued container with the given interior.
func CustomContainer(inner Dimension) Container {
	return Container{Code: CustomContainerCode, Label: "Custom", Inner: inner}
}

// CBM returns the interior volume in cubic metres.
func (c Container) CBM() float64 {
	return c.Inner.CBM()
}

// ContainerRecord is the stored catalog document for a container type.
type ContainerRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Container `bson:",inline"`
	Version   int       `bson:"version" json:"version"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	UpdatedBy string    `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}
