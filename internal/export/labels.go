package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

// LabelInfo holds the data encoded into each carton label's QR code.
type LabelInfo struct {
	Sequence    int     `json:"seq"`
	Simulation  string  `json:"simulation,omitempty"`
	Container   string  `json:"container"`
	Product     string  `json:"product"`
	Orientation string  `json:"orientation_mm"`
	X           float64 `json:"x_mm"`
	Y           float64 `json:"y_mm"`
	Z           float64 `json:"z_mm"`
	request     int
}

// Label layout constants for Avery 5160-compatible sheets (3 columns, 10 rows
// on US Letter).
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	labelQRSize     = 20.0
	labelPadding    = 2.0
)

// CollectLabelInfos returns one label per placed carton in load order.
func CollectLabelInfos(sim model.Simulation) []LabelInfo {
	labels := make([]LabelInfo, 0, len(sim.Result.Placements))
	for i, p := range sim.Result.Placements {
		labels = append(labels, LabelInfo{
			Sequence:    i + 1,
			Simulation:  sim.ID,
			Container:   sim.Container.Code,
			Product:     p.Name,
			Orientation: p.Orientation.String(),
			X:           p.Position.X,
			Y:           p.Position.Y,
			Z:           p.Position.Z,
			request:     p.Request,
		})
	}
	return labels
}

// WriteLabels renders a sheet of QR-coded carton labels. Each label names the
// load sequence, product, orientation and anchor position so cartons can be
// staged in the order the plan loads them.
func WriteLabels(w io.Writer, sim model.Simulation) error {
	labels := CollectLabelInfos(sim)
	if len(labels) == 0 {
		return ErrNoPlacements
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Carton labels", true)
	pdf.SetCreator("loadsim", true)
	if !sim.CreatedAt.IsZero() {
		pdf.SetCreationDate(sim.CreatedAt)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}
		pos := i % labelsPerPage
		x := labelMarginLeft + float64(pos%labelCols)*labelWidth
		y := labelMarginTop + float64(pos/labelCols)*labelHeight

		if err := renderLabel(pdf, tr, x, y, label); err != nil {
			return fmt.Errorf("failed to render label %d: %w", label.Sequence, err)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write labels: %w", err)
	}
	return nil
}

func renderLabel(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	col := ColorFor(info.request)
	pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
	pdf.Rect(x, y, 1.5, labelHeight, "F")

	qrX := x + labelWidth - labelQRSize - labelPadding
	qrY := y + (labelHeight-labelQRSize)/2
	if err := placeQR(pdf, fmt.Sprintf("qr-label-%d", info.Sequence), info, qrX, qrY, labelQRSize); err != nil {
		return err
	}

	textX := x + labelPadding + 1.5
	textW := labelWidth - labelQRSize - 3*labelPadding - 1.5

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, tr(info.Product), textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("#%d  %s mm", info.Sequence, info.Orientation), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("@ (%.0f, %.0f, %.0f)", info.X, info.Y, info.Z), "", 1, "L", false, 0, "")
	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.CellFormat(textW, 3, info.Container, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
