package importer

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hyperkh65/loadsim/internal/domain/dto"
)

func TestDetectColumns(t *testing.T) {
	tests := []struct {
		name       string
		row        []string
		want       ColumnMapping
		wantHeader bool
	}{
		{
			name:       "english headers",
			row:        []string{"Name", "Length", "Width", "Height", "Per Carton", "Qty"},
			want:       ColumnMapping{0, 1, 2, 3, 4, 5, -1},
			wantHeader: true,
		},
		{
			name:       "korean headers in another order",
			row:        []string{"수량", "제품명", "입수", "길이", "폭", "높이"},
			want:       ColumnMapping{1, 3, 4, 5, 2, 0, -1},
			wantHeader: true,
		},
		{
			name:       "short aliases with units",
			row:        []string{"product", "L (mm)", "W (mm)", "H (mm)", "cartons"},
			want:       ColumnMapping{0, 1, 2, 3, -1, -1, 4},
			wantHeader: true,
		},
		{
			name: "numeric row is positional",
			row:  []string{"Chair", "600", "400", "300", "12", "120"},
			want: ColumnMapping{0, 1, 2, 3, 4, 5, -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, isHeader := DetectColumns(tt.row)
			assert.Equal(t, tt.wantHeader, isHeader)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{name: "comma", data: "a,b,c\n1,2,3\n", want: ','},
		{name: "semicolon", data: "a;b;c\n1;2;3\n", want: ';'},
		{name: "tab", data: "a\tb\tc\n1\t2\t3\n", want: '\t'},
		{name: "pipe", data: "a|b|c\n1|2|3\n", want: '|'},
		{name: "single column defaults to comma", data: "a\nb\n", want: ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCSVDelimiter([]byte(tt.data)))
		})
	}
}

func TestFromCSV(t *testing.T) {
	chair := dto.CargoItem{Name: "Chair", Length: 600, Width: 400, Height: 300, PerCarton: 12, OrderQty: 120}

	tests := []struct {
		name         string
		data         string
		wantItems    []dto.CargoItem
		wantWarnings int
		wantErr      string
	}{
		{
			name:      "english header",
			data:      "name,length,width,height,per_carton,order_qty\nChair,600,400,300,12,120\n",
			wantItems: []dto.CargoItem{chair},
		},
		{
			name:      "korean header with BOM",
			data:      "\xEF\xBB\xBF제품명,길이,폭,높이,입수,수량\n의자,600,400,300,12,120\n",
			wantItems: []dto.CargoItem{{Name: "의자", Length: 600, Width: 400, Height: 300, PerCarton: 12, OrderQty: 120}},
		},
		{
			name:         "semicolon delimiter",
			data:         "name;length;width;height;per_carton;qty\nChair;600;400;300;12;120\n",
			wantItems:    []dto.CargoItem{chair},
			wantWarnings: 1,
		},
		{
			name:      "positional without header",
			data:      "Chair,600,400,300,12,120\n",
			wantItems: []dto.CargoItem{chair},
		},
		{
			name:         "unrecognized header is skipped",
			data:         "Artikel,Lange,Breite,Hohe,Stuck,Menge\nChair,600,400,300,12,120\n",
			wantItems:    []dto.CargoItem{chair},
			wantWarnings: 1,
		},
		{
			name:      "thousands separators and spreadsheet counts",
			data:      "name,length,width,height,per_carton,qty\nPallet,\"1,200\",800,150,1,4.0\n",
			wantItems: []dto.CargoItem{{Name: "Pallet", Length: 1200, Width: 800, Height: 150, PerCarton: 1, OrderQty: 4}},
		},
		{
			name:      "cartons column without order quantity",
			data:      "name,l,w,h,cartons\nCrate,1000,1000,1000,3\n",
			wantItems: []dto.CargoItem{{Name: "Crate", Length: 1000, Width: 1000, Height: 1000, Cartons: 3}},
		},
		{
			name:         "invalid rows are skipped with warnings",
			data:         "name,length,width,height,per_carton,qty\nChair,600,400,300,12,120\nBad,abc,1,1,1,1\nZero,0,1,1,1,1\nFrac,1,1,1,1.5,2\nNoQty,1,1,1,1,\n\n",
			wantItems:    []dto.CargoItem{chair},
			wantWarnings: 4,
		},
		{
			name:    "missing required columns",
			data:    "name,length,qty\nChair,600,120\n",
			wantErr: "Required columns not found in header: width, height",
		},
		{
			name:    "empty file",
			data:    "  \n",
			wantErr: "File is empty",
		},
		{
			name:         "only invalid rows",
			data:         "name,length,width,height,qty\nBad,x,1,1,1\n",
			wantWarnings: 1,
			wantErr:      "No valid cargo lines found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := FromCSV(strings.NewReader(tt.data))

			if tt.wantErr != "" {
				require.NotEmpty(t, res.Errors)
				assert.Equal(t, tt.wantErr, res.Errors[0])
				assert.False(t, res.OK())
				assert.Error(t, res.Err())
			} else {
				assert.Empty(t, res.Errors)
				assert.True(t, res.OK())
				assert.NoError(t, res.Err())
			}
			assert.Equal(t, tt.wantItems, res.Items)
			assert.Len(t, res.Warnings, tt.wantWarnings, "warnings: %v", res.Warnings)
		})
	}
}

func TestFromCSV_ItemLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("name,length,width,height,qty\n")
	for i := 0; i < dto.MaxItems+3; i++ {
		fmt.Fprintf(&b, "P%d,10,10,10,1\n", i)
	}

	res := FromCSV(strings.NewReader(b.String()))
	assert.Len(t, res.Items, dto.MaxItems)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "item limit")
}

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestFromXLSX(t *testing.T) {
	buf := workbook(t, [][]any{
		{"제품명", "길이", "폭", "높이", "입수", "수량"},
		{"의자", 600, 400, 300, 12, 120},
		{},
		{"책상", 1200.5, 600, 750, 1, 10},
		{"Broken", "n/a", 1, 1, 1, 1},
	})

	res := FromXLSX(buf)

	assert.Empty(t, res.Errors)
	assert.Equal(t, []dto.CargoItem{
		{Name: "의자", Length: 600, Width: 400, Height: 300, PerCarton: 12, OrderQty: 120},
		{Name: "책상", Length: 1200.5, Width: 600, Height: 750, PerCarton: 1, OrderQty: 10},
	}, res.Items)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Row 5")
}

func TestFromXLSX_Errors(t *testing.T) {
	res := FromXLSX(strings.NewReader("not a workbook"))
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Cannot open Excel file")

	res = FromXLSX(workbook(t, nil))
	assert.Equal(t, []string{"Sheet is empty"}, res.Errors)
}

func TestImport(t *testing.T) {
	csvData := "name,length,width,height,qty\nBox,10,10,10,1\n"

	tests := []struct {
		name    string
		file    string
		body    func() *bytes.Buffer
		wantErr bool
	}{
		{name: "csv", file: "plan.CSV", body: func() *bytes.Buffer { return bytes.NewBufferString(csvData) }},
		{name: "xlsx", file: "plan.xlsx", body: func() *bytes.Buffer {
			return workbook(t, [][]any{{"name", "length", "width", "height", "qty"}, {"Box", 10, 10, 10, 1}})
		}},
		{name: "unsupported", file: "plan.pdf", body: func() *bytes.Buffer { return &bytes.Buffer{} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Import(tt.file, tt.body())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFile)
				return
			}
			require.NoError(t, err)
			require.Len(t, res.Items, 1)
			assert.Equal(t, "Box", res.Items[0].Name)
		})
	}
}
