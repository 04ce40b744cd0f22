package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

// DefaultContainers are the standard ISO container interiors in millimetres.
var DefaultContainers = []model.Container{
	{Code: "20ft", Label: "20ft Standard", Inner: model.Dimension{Length: 5898, Width: 2352, Height: 2395}},
	{Code: "40ft", Label: "40ft Standard", Inner: model.Dimension{Length: 12032, Width: 2352, Height: 2393}},
	{Code: "40hc", Label: "40ft High Cube", Inner: model.Dimension{Length: 12032, Width: 2352, Height: 2698}},
}

type catalogFile struct {
	Containers []model.Container `yaml:"containers"`
}

// LoadContainerCatalog reads container presets from a YAML file of the form
//
//	containers:
//	  - code: 20ft
//	    label: 20ft Standard
//	    inner: {length: 5898, width: 2352, height: 2395}
//
// An empty path returns DefaultContainers.
func LoadContainerCatalog(path string) ([]model.Container, error) {
	if path == "" {
		return append([]model.Container(nil), DefaultContainers...), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read container catalog: %w", err)
	}
	return ParseContainerCatalog(data)
}

// ParseContainerCatalog decodes and validates a YAML container catalog.
// Codes are case-insensitive and stored lower case.
func ParseContainerCatalog(data []byte) ([]model.Container, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse container catalog: %w", err)
	}
	if len(file.Containers) == 0 {
		return nil, fmt.Errorf("container catalog has no containers")
	}

	seen := make(map[string]bool, len(file.Containers))
	out := make([]model.Container, 0, len(file.Containers))
	for i, c := range file.Containers {
		c.Code = strings.ToLower(strings.TrimSpace(c.Code))
		if c.Code == "" {
			return nil, fmt.Errorf("container %d: code is required", i)
		}
		if seen[c.Code] {
			return nil, fmt.Errorf("container %q: duplicate code", c.Code)
		}
		if !c.Inner.Positive() {
			return nil, fmt.Errorf("container %q: dimensions must be positive", c.Code)
		}
		if c.Label == "" {
			c.Label = c.Code
		}
		seen[c.Code] = true
		out = append(out, c)
	}
	return out, nil
}
