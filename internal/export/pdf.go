package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
	reportQRSize = 32.0
	tableRowH    = 6.0
)

// ReportSummary is the payload of the report's QR code.
type ReportSummary struct {
	ID             string  `json:"id,omitempty"`
	Container      string  `json:"container"`
	Mode           string  `json:"mode"`
	Placed         int     `json:"placed"`
	Overflow       int     `json:"overflow"`
	ContainerCBM   float64 `json:"container_cbm"`
	UsedCBM        float64 `json:"used_cbm"`
	UtilizationPct float64 `json:"utilization_pct"`
}

// Summarize builds the QR payload of sim.
func Summarize(sim model.Simulation) ReportSummary {
	return ReportSummary{
		ID:             sim.ID,
		Container:      sim.Container.Code,
		Mode:           string(sim.Mode),
		Placed:         sim.Result.PlacedCount(),
		Overflow:       sim.Result.OverflowCount(),
		ContainerCBM:   round3(sim.Report.ContainerVolumeCBM),
		UsedCBM:        round3(sim.Report.UsedVolumeCBM),
		UtilizationPct: math.Round(sim.Report.UtilizationPercent*100) / 100,
	}
}

// WritePDF renders the shipping simulation report: container and volume
// summary, per-product loading table, overflow warnings and a page with the
// top and side views drawn to scale.
func WritePDF(w io.Writer, sim model.Simulation) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle("Shipping Simulation Report", true)
	pdf.SetCreator("loadsim", true)
	if !sim.CreatedAt.IsZero() {
		pdf.SetCreationDate(sim.CreatedAt)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	if err := renderSummaryPage(pdf, tr, sim); err != nil {
		return err
	}

	pdf.AddPage()
	renderViewsPage(pdf, tr, sim)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func renderSummaryPage(pdf *fpdf.Fpdf, tr func(string) string, sim model.Simulation) error {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth-reportQRSize, 10, "Shipping Simulation Report", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(marginLeft, marginTop+10)
	sub := "Rotation: " + string(sim.Mode)
	if sim.ID != "" {
		sub = "Simulation " + sim.ID + " | " + sub
	}
	if !sim.CreatedAt.IsZero() {
		sub += " | " + sim.CreatedAt.UTC().Format("2006-01-02 15:04 MST")
	}
	pdf.CellFormat(contentWidth-reportQRSize, 5, sub, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	if err := placeQR(pdf, "qr-report", Summarize(sim), pageWidth-marginRight-reportQRSize, marginTop, reportQRSize); err != nil {
		return err
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+reportQRSize+3, pageWidth-marginRight, marginTop+reportQRSize+3)

	y := marginTop + reportQRSize + 8
	report := sim.Report
	summaryItems := []struct {
		label string
		value string
	}{
		{"Container type", tr(containerTitle(sim.Container))},
		{"Inner dimensions", sim.Container.Inner.String() + " mm"},
		{"Container volume", formatCBM(report.ContainerVolumeCBM)},
		{"Used volume", formatCBM(report.UsedVolumeCBM)},
		{"Remaining volume", formatCBM(report.FreeVolumeCBM)},
		{"Utilization", fmt.Sprintf("%.2f%%", report.UtilizationPercent)},
		{"Cartons loaded", strconv.Itoa(sim.Result.PlacedCount())},
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Container", "", 0, "L", false, 0, "")
	y += 8

	for _, item := range summaryItems {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(45, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		y += 6
	}
	y += 5

	y = renderProductTable(pdf, tr, sim, y)
	renderOverflowWarnings(pdf, tr, sim, y+6)
	return nil
}

var productColumns = []struct {
	header string
	width  float64
	align  string
}{
	{"", 6, "C"},
	{"Product", 58, "L"},
	{"Carton (mm)", 40, "C"},
	{"Requested", 24, "R"},
	{"Loaded", 22, "R"},
	{"Overflow", 22, "R"},
	{"Units", 24, "R"},
	{"CBM", 26, "R"},
	{"Extra fit (est.)", 45, "R"},
}

func renderProductTable(pdf *fpdf.Fpdf, tr func(string) string, sim model.Simulation, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Products", "", 0, "L", false, 0, "")
	y += 9

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		x := marginLeft
		for _, col := range productColumns {
			pdf.SetXY(x, y)
			pdf.CellFormat(col.width, tableRowH, col.header, "1", 0, "C", true, 0, "")
			x += col.width
		}
		y += tableRowH
	}
	header()

	for i, p := range sim.Report.Products {
		if y+tableRowH > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
			header()
		}

		carton := ""
		if i < len(sim.Requests) {
			carton = sim.Requests[i].Carton.String()
		}
		row := []string{
			"",
			tr(p.Name),
			carton,
			strconv.Itoa(p.Requested),
			strconv.Itoa(p.Placed),
			strconv.Itoa(p.Overflow),
			strconv.Itoa(p.UnitsShipped),
			fmt.Sprintf("%.3f", p.TotalVolumeCBM),
			strconv.Itoa(p.AdditionalFitEstimate),
		}

		pdf.SetFont("Helvetica", "", 9)
		x := marginLeft
		for j, cell := range row {
			if i%2 == 0 {
				pdf.SetFillColor(245, 245, 245)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			pdf.SetXY(x, y)
			pdf.CellFormat(productColumns[j].width, tableRowH, cell, "1", 0, productColumns[j].align, true, 0, "")
			x += productColumns[j].width
		}

		col := ColorFor(i)
		pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		pdf.Rect(marginLeft+1.5, y+1.5, 3, 3, "F")
		y += tableRowH
	}
	return y
}

func renderOverflowWarnings(pdf *fpdf.Fpdf, tr func(string) string, sim model.Simulation, y float64) {
	if len(sim.Result.Overflow) == 0 {
		return
	}
	if y+14 > pageHeight-marginBottom {
		pdf.AddPage()
		y = marginTop
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(200, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(200, 7, "WARNING: cartons not loaded", "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, o := range sim.Result.Overflow {
		if y+5 > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
		}
		pdf.SetXY(marginLeft+5, y)
		text := fmt.Sprintf("- %s: %d carton(s) not loaded (%s)", tr(o.Name), o.Rejected, overflowText(o.Reason))
		pdf.CellFormat(contentWidth-5, 5, text, "", 0, "L", false, 0, "")
		y += 5
	}
}

func overflowText(r model.OverflowReason) string {
	switch r {
	case model.OverflowOversized:
		return "carton larger than the container"
	case model.OverflowContainerFull:
		return "container full"
	default:
		return string(r)
	}
}

func renderViewsPage(pdf *fpdf.Fpdf, tr func(string) string, sim model.Simulation) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 8, "Loading plan", "", 0, "L", false, 0, "")

	legendH := 12.0
	areaTop := marginTop + 12
	areaH := (pageHeight - areaTop - marginBottom - legendH - 8) / 2

	drawView(pdf, sim, ViewTop, "Top view", areaTop, areaH)
	drawView(pdf, sim, ViewSide, "Side view", areaTop+areaH+8, areaH)
	drawLegend(pdf, tr, sim, pageHeight-marginBottom-legendH+2)
}

// drawView draws one projection scaled to fit a band of the page.
func drawView(pdf *fpdf.Fpdf, sim model.Simulation, view View, title string, top, bandH float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(marginLeft, top)
	pdf.CellFormat(contentWidth, 5, title, "", 0, "L", false, 0, "")

	width, height, boxes := project(sim, view)
	if width <= 0 || height <= 0 {
		return
	}
	drawH := bandH - 10
	scale := math.Min(contentWidth/width, drawH/height)
	canvasW, canvasH := width*scale, height*scale
	offsetX := marginLeft + (contentWidth-canvasW)/2
	offsetY := top + 6

	pdf.SetFillColor(240, 240, 240)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.1)
	for _, b := range boxes {
		col := ColorFor(b.Request)
		pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		pdf.Rect(offsetX+b.X*scale, offsetY+b.Y*scale, b.W*scale, b.H*scale, "FD")
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(80, 80, 80)
	lengthLabel := fmt.Sprintf("%.0f mm", width)
	lw := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX+(canvasW-lw)/2, offsetY+canvasH+0.5)
	pdf.CellFormat(lw, 3, lengthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-2, offsetY+canvasH/2)
	hw := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-2-hw/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hw, 3, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()
	pdf.SetTextColor(0, 0, 0)
}

func drawLegend(pdf *fpdf.Fpdf, tr func(string) string, sim model.Simulation, y float64) {
	if len(sim.Report.Products) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "", 8)
	x := marginLeft
	maxX := pageWidth - marginRight

	for i, p := range sim.Report.Products {
		label := fmt.Sprintf("%s (%d)", tr(p.Name), p.Placed)
		labelW := pdf.GetStringWidth(label) + 6
		if x+labelW > maxX {
			y += 5
			x = marginLeft
		}
		col := ColorFor(i)
		pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		pdf.Rect(x, y+0.5, 3, 3, "F")
		pdf.SetXY(x+4, y)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")
		x += labelW + 2
	}
}

// placeQR encodes payload as JSON into a QR code image at (x, y).
func placeQR(pdf *fpdf.Fpdf, name string, payload any, x, y, size float64) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal QR payload: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, x, y, size, size, false, opts, 0, "")
	return nil
}

func formatCBM(v float64) string {
	return fmt.Sprintf("%.3f CBM", v)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
