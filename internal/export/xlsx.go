package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

// Workbook sheet names.
const (
	SheetSummary    = "Summary"
	SheetProducts   = "Products"
	SheetPlacements = "Placements"
	SheetOverflow   = "Overflow"
)

// WriteXLSX renders sim as a workbook with a summary sheet and one sheet each
// for products, placements and overflow.
func WriteXLSX(w io.Writer, sim model.Simulation) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	for _, name := range []string{SheetProducts, SheetPlacements, SheetOverflow} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	steps := []func(*excelize.File, model.Simulation, int) error{
		writeSummarySheet,
		writeProductsSheet,
		writePlacementsSheet,
		writeOverflowSheet,
	}
	for _, step := range steps {
		if err := step(f, sim, header); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, cols, style int) error {
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func writeSummarySheet(f *excelize.File, sim model.Simulation, header int) error {
	r := sim.Report
	inner := sim.Container.Inner
	rows := [][]any{
		{"Field", "Value"},
		{"Simulation", sim.ID},
		{"Container", containerTitle(sim.Container)},
		{"Inner length (mm)", inner.Length},
		{"Inner width (mm)", inner.Width},
		{"Inner height (mm)", inner.Height},
		{"Rotation mode", string(sim.Mode)},
		{"Container volume (CBM)", r.ContainerVolumeCBM},
		{"Used volume (CBM)", r.UsedVolumeCBM},
		{"Remaining volume (CBM)", r.FreeVolumeCBM},
		{"Utilization (%)", r.UtilizationPercent},
		{"Cartons loaded", sim.Result.PlacedCount()},
		{"Cartons not loaded", sim.Result.OverflowCount()},
	}
	if !sim.CreatedAt.IsZero() {
		rows = append(rows, []any{"Created", sim.CreatedAt.UTC().Format("2006-01-02 15:04:05")})
	}
	if err := writeRows(f, SheetSummary, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSummary, "A", "A", 26); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSummary, "B", "B", 30); err != nil {
		return err
	}
	return styleHeader(f, SheetSummary, 2, header)
}

func writeProductsSheet(f *excelize.File, sim model.Simulation, header int) error {
	rows := [][]any{{
		"Color", "Product", "Length (mm)", "Width (mm)", "Height (mm)", "Per carton",
		"Order qty", "Requested", "Loaded", "Overflow", "Units shipped",
		"Unit CBM", "Total CBM", "Extra fit (est.)",
	}}
	for i, p := range sim.Report.Products {
		var req model.BoxRequest
		if i < len(sim.Requests) {
			req = sim.Requests[i]
		}
		rows = append(rows, []any{
			ColorFor(i).Hex(), p.Name, req.Carton.Length, req.Carton.Width, req.Carton.Height,
			req.PerCarton, req.OrderQty, p.Requested, p.Placed, p.Overflow, p.UnitsShipped,
			p.UnitVolumeCBM, p.TotalVolumeCBM, p.AdditionalFitEstimate,
		})
	}
	if err := writeRows(f, SheetProducts, rows); err != nil {
		return err
	}

	for i := range sim.Report.Products {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{ColorFor(i).Hex()}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("failed to create product style: %w", err)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetProducts, cell, cell, style); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetProducts, "B", "B", 28); err != nil {
		return err
	}
	return styleHeader(f, SheetProducts, len(rows[0]), header)
}

func writePlacementsSheet(f *excelize.File, sim model.Simulation, header int) error {
	rows := make([][]any, 0, len(sim.Result.Placements)+1)
	rows = append(rows, []any{
		"Seq", "Product", "X (mm)", "Y (mm)", "Z (mm)",
		"Length (mm)", "Width (mm)", "Height (mm)",
	})
	for i, p := range sim.Result.Placements {
		rows = append(rows, []any{
			i + 1, p.Name, p.Position.X, p.Position.Y, p.Position.Z,
			p.Orientation.Length, p.Orientation.Width, p.Orientation.Height,
		})
	}
	if err := writeRows(f, SheetPlacements, rows); err != nil {
		return err
	}
	return styleHeader(f, SheetPlacements, len(rows[0]), header)
}

func writeOverflowSheet(f *excelize.File, sim model.Simulation, header int) error {
	rows := [][]any{{"Product", "Cartons not loaded", "Reason"}}
	for _, o := range sim.Result.Overflow {
		rows = append(rows, []any{o.Name, o.Rejected, string(o.Reason)})
	}
	if err := writeRows(f, SheetOverflow, rows); err != nil {
		return err
	}
	return styleHeader(f, SheetOverflow, len(rows[0]), header)
}
