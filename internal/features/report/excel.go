package report

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// renderExcel writes a single-sheet workbook named after the report: first
// row field display names, subsequent rows formatted values in field order.
func renderExcel(table Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := sanitizeSheetName(table.Title)
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	totalsStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F5F5F5"}, Pattern: 1},
	})

	for i, col := range table.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col.Name)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range table.Rows {
		for colIdx, value := range row.Values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
			if row.IsAggregation {
				f.SetCellStyle(sheetName, cell, cell, totalsStyle)
			}
		}
	}

	for i := range table.Columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 15)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Excel caps sheet names at 31 chars and rejects a handful of characters.
func sanitizeSheetName(name string) string {
	if name == "" {
		name = "Report"
	}
	replacer := strings.NewReplacer(":", "-", "\\", "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")")
	name = replacer.Replace(name)
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
