// Package export renders finished simulations into documents: PDF reports,
// QR carton labels, Excel workbooks, DXF wireframes and SVG elevations.
//
// Renderers only read a model.Simulation. Volumes and counts come from
// Simulation.Report and Simulation.Result as they are; nothing here
// recomputes them.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/metrics"
)

// Format names an export document type.
type Format string

const (
	FormatPDF    Format = "pdf"
	FormatLabels Format = "labels"
	FormatXLSX   Format = "xlsx"
	FormatDXF    Format = "dxf"
	FormatSVG    Format = "svg"
)

var (
	// ErrUnknownFormat is returned for an unsupported format name.
	ErrUnknownFormat = errors.New("unknown export format")
	// ErrInvalidOption is returned for an unsupported export option.
	ErrInvalidOption = errors.New("invalid export option")
	// ErrNoPlacements is returned by renderers that need at least one placed carton.
	ErrNoPlacements = errors.New("simulation has no placed cartons")
)

var formats = []Format{FormatPDF, FormatLabels, FormatXLSX, FormatDXF, FormatSVG}

// Formats lists the supported formats.
func Formats() []Format {
	return append([]Format(nil), formats...)
}

// ParseFormat converts a query or flag value to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type of the rendered document.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF, FormatLabels:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatDXF:
		return "image/vnd.dxf"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

// FileName returns the attachment name for a document of sim.
func (f Format) FileName(sim model.Simulation) string {
	base := "loadsim"
	if sim.ID != "" {
		base += "-" + sim.ID
	}
	switch f {
	case FormatLabels:
		return base + "-labels.pdf"
	default:
		return base + "." + string(f)
	}
}

// Options tunes individual renderers.
type Options struct {
	// View selects the projection of SVG output.
	View View
}

// Write renders sim in format f to w and records the outcome in the export
// metrics.
func Write(w io.Writer, f Format, sim model.Simulation, opts Options) error {
	var err error
	switch f {
	case FormatPDF:
		err = WritePDF(w, sim)
	case FormatLabels:
		err = WriteLabels(w, sim)
	case FormatXLSX:
		err = WriteXLSX(w, sim)
	case FormatDXF:
		err = WriteDXF(w, sim)
	case FormatSVG:
		err = WriteSVG(w, sim, opts.View)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordExport(string(f), status)
	return err
}

func containerTitle(c model.Container) string {
	switch {
	case c.Label != "" && c.Code != "" && c.Label != c.Code:
		return c.Label + " (" + c.Code + ")"
	case c.Label != "":
		return c.Label
	default:
		return c.Code
	}
}
