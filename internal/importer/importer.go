// Package importer reads cargo lines from spreadsheets. Columns are matched
// by header name (English or Korean aliases, case-insensitive); a sheet
// without a recognizable header is read positionally as
// name, length, width, height, per_carton, order_qty.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hyperkh65/loadsim/internal/domain/dto"
)

// ErrUnsupportedFile is returned by Import for extensions other than .xlsx and .csv.
var ErrUnsupportedFile = errors.New("unsupported file type")

// Result holds the outcome of an import. Errors are fatal problems with the
// file as a whole; Warnings describe rows that were skipped or adjusted.
type Result struct {
	Items    []dto.CargoItem
	Warnings []string
	Errors   []string
}

// OK reports whether the import produced items without fatal errors.
func (r Result) OK() bool {
	return len(r.Errors) == 0 && len(r.Items) > 0
}

// Err joins Errors into a single error, or returns nil.
func (r Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return errors.New(strings.Join(r.Errors, "; "))
}

// ColumnMapping maps column roles to their indices in a row. -1 means absent.
type ColumnMapping struct {
	Name      int
	Length    int
	Width     int
	Height    int
	PerCarton int
	OrderQty  int
	Cartons   int
}

type role int

const (
	roleName role = iota
	roleLength
	roleWidth
	roleHeight
	rolePerCarton
	roleOrderQty
	roleCartons
)

// headerAliases lists the accepted header spellings per role, normalized by
// normalizeHeader.
var headerAliases = []struct {
	role    role
	aliases []string
}{
	{roleName, []string{"name", "product", "product_name", "item", "description", "제품명", "품명", "상품명"}},
	{roleLength, []string{"length", "l", "len", "길이", "가로"}},
	{roleWidth, []string{"width", "w", "폭", "세로"}},
	{roleHeight, []string{"height", "h", "높이"}},
	{rolePerCarton, []string{"per_carton", "units_per_carton", "pcs_per_carton", "입수"}},
	{roleOrderQty, []string{"order_qty", "qty", "quantity", "수량", "주문수량"}},
	{roleCartons, []string{"cartons", "ctn", "boxes", "박스수"}},
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_", "(mm)", "", "(ea)", "").Replace(s)
	return strings.Trim(s, "_")
}

func (m *ColumnMapping) slot(r role) *int {
	switch r {
	case roleName:
		return &m.Name
	case roleLength:
		return &m.Length
	case roleWidth:
		return &m.Width
	case roleHeight:
		return &m.Height
	case rolePerCarton:
		return &m.PerCarton
	case roleOrderQty:
		return &m.OrderQty
	default:
		return &m.Cartons
	}
}

// DetectColumns examines a header row. It returns the mapping and true when
// at least one header was recognized, or the positional mapping and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1}

	isHeader := false
	for i, cell := range row {
		normalized := normalizeHeader(cell)
		for _, entry := range headerAliases {
			for _, alias := range entry.aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := mapping.slot(entry.role); *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Name: 0, Length: 1, Width: 2, Height: 3, PerCarton: 4, OrderQty: 5, Cartons: -1}, false
	}
	return mapping, true
}

func (m ColumnMapping) missing() []string {
	var out []string
	if m.Length == -1 {
		out = append(out, "length")
	}
	if m.Width == -1 {
		out = append(out, "width")
	}
	if m.Height == -1 {
		out = append(out, "height")
	}
	if m.OrderQty == -1 && m.Cartons == -1 {
		out = append(out, "order_qty")
	}
	return out
}

// Import reads name's content from r, choosing the format by extension.
func Import(name string, r io.Reader) (Result, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FromXLSX(r), nil
	case ".csv", ".txt":
		return FromCSV(r), nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFile, filepath.Ext(name))
	}
}

// FromXLSX imports cargo lines from the first sheet of a workbook.
func FromXLSX(r io.Reader) Result {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Result{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Result{Errors: []string{"Excel file has no sheets"}}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Result{Errors: []string{fmt.Sprintf("Cannot read Excel data: %v", err)}}
	}
	if len(rows) == 0 {
		return Result{Errors: []string{"Sheet is empty"}}
	}
	return importFromRows(rows, "Row", nil)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FromCSV imports cargo lines from delimited text. The delimiter is detected
// and a leading UTF-8 byte order mark is ignored.
func FromCSV(r io.Reader) Result {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{Errors: []string{fmt.Sprintf("Cannot read file: %v", err)}}
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return Result{Errors: []string{"File is empty"}}
	}

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		name := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", name))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Result{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", warnings)
}

// DetectCSVDelimiter picks the delimiter among comma, semicolon, tab and
// pipe that splits the most rows into the same column count as the first.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0

	for _, delim := range []rune{',', ';', '\t', '|'} {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) == 0 || len(records[0]) < 2 {
			continue
		}
		cols := len(records[0])
		score := 0
		for _, row := range records {
			if len(row) == cols {
				score++
			}
		}
		if weighted := score*10 + cols; weighted > bestScore {
			best, bestScore = delim, weighted
		}
	}
	return best
}

func importFromRows(rows [][]string, rowPrefix string, warnings []string) Result {
	result := Result{Warnings: warnings}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	start := 0
	switch {
	case hasHeader:
		start = 1
		if missing := mapping.missing(); len(missing) > 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	case len(rows[0]) > mapping.Length:
		if _, err := parseNumber(cell(rows[0], mapping.Length)); err != nil {
			start = 1
			result.Warnings = append(result.Warnings, "Unrecognized header row, using column order name, length, width, height, per_carton, order_qty")
		}
	}

	for i := start; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		label := fmt.Sprintf("%s %d", rowPrefix, i+1)
		if len(result.Items) == dto.MaxItems {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: item limit of %d reached, remaining rows ignored", label, dto.MaxItems))
			break
		}

		item, warning := parseRow(rows[i], mapping, label)
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
			continue
		}
		result.Items = append(result.Items, item)
	}

	if len(result.Items) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No valid cargo lines found")
	}
	return result
}

// parseRow returns the item of row, or a warning explaining why it was skipped.
func parseRow(row []string, m ColumnMapping, label string) (dto.CargoItem, string) {
	item := dto.CargoItem{Name: cell(row, m.Name)}

	dims := []struct {
		field string
		idx   int
		dst   *float64
	}{
		{"length", m.Length, &item.Length},
		{"width", m.Width, &item.Width},
		{"height", m.Height, &item.Height},
	}
	for _, d := range dims {
		raw := cell(row, d.idx)
		v, err := parseNumber(raw)
		if err != nil || v <= 0 {
			return dto.CargoItem{}, fmt.Sprintf("%s: invalid %s %q, row skipped", label, d.field, raw)
		}
		*d.dst = v
	}

	counts := []struct {
		field string
		idx   int
		dst   *int
	}{
		{"per_carton", m.PerCarton, &item.PerCarton},
		{"order_qty", m.OrderQty, &item.OrderQty},
		{"cartons", m.Cartons, &item.Cartons},
	}
	for _, c := range counts {
		raw := cell(row, c.idx)
		if raw == "" {
			continue
		}
		v, err := parseCount(raw)
		if err != nil {
			return dto.CargoItem{}, fmt.Sprintf("%s: invalid %s %q, row skipped", label, c.field, raw)
		}
		*c.dst = v
	}

	if item.OrderQty == 0 && item.Cartons == 0 {
		return dto.CargoItem{}, fmt.Sprintf("%s: missing order_qty, row skipped", label)
	}
	return item, ""
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber accepts plain decimals and thousands separators ("1,200").
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}

// parseCount accepts positive whole numbers, including spreadsheet renderings
// such as "120.0".
func parseCount(s string) (int, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	if v <= 0 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, fmt.Errorf("not a positive whole number: %q", s)
	}
	return int(v), nil
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
