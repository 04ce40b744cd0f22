// Package cli implements the loadsim command line tool.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hyperkh65/loadsim/internal/domain/dto"
)

// Plan is a loading plan read from YAML:
//
//	container: 40hc
//	rotation_mode: global_best
//	items:
//	  - {name: Chair, length: 600, width: 400, height: 300, per_carton: 12, order_qty: 120}
//
// container_dimensions: {length, width, height} replaces container for
// containers that are not in the catalog.
type Plan struct {
	Container           string                `yaml:"container"`
	ContainerDimensions *dto.DimensionRequest `yaml:"container_dimensions"`
	RotationMode        string                `yaml:"rotation_mode"`
	Items               []dto.CargoItem       `yaml:"items"`
}

// LoadPlan reads and decodes the plan at path.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan decodes a YAML plan. Unknown keys are rejected so that typos such
// as "per_cartons" do not silently fall back to defaults.
func ParsePlan(data []byte) (*Plan, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var plan Plan
	if err := dec.Decode(&plan); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	return &plan, nil
}

// Request converts the plan to the request shape shared with the HTTP API.
func (p *Plan) Request() *dto.SimulationRequest {
	return &dto.SimulationRequest{
		Container:           p.Container,
		ContainerDimensions: p.ContainerDimensions,
		RotationMode:        p.RotationMode,
		Items:               p.Items,
	}
}
