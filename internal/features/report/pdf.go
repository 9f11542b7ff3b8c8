package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const productName = "Grant CRM"

// renderPDF writes a single A4 document: branded header band, the financial
// summary block when present, a zebra-striped table body and a page-numbered
// footer. With includeCharts set, an income/expense bar pair is drawn under
// the summary block.
func renderPDF(table Table, includeCharts bool) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(table.Title, false)
	pdf.AliasNbPages("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFillColor(33, 53, 85)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 12, productName, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, table.Title, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	if table.Summary != nil {
		writeSummaryBlock(pdf, *table.Summary)
		if includeCharts {
			writeSummaryChart(pdf, *table.Summary)
		}
	}
	writeTableBody(pdf, table)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummaryBlock(pdf *fpdf.Fpdf, summary FinancialSummary) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 7, "Financial Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(245, 247, 250)
	pdf.CellFormat(60, 7, fmt.Sprintf("Income: %.2f", summary.Income), "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 7, fmt.Sprintf("Expense: %.2f", summary.Expense), "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 7, fmt.Sprintf("Total: %.2f", summary.Total), "1", 1, "L", true, 0, "")
	pdf.Ln(4)
}

// writeSummaryChart draws a horizontal income/expense bar pair scaled to the
// larger of the two amounts.
func writeSummaryChart(pdf *fpdf.Fpdf, summary FinancialSummary) {
	maxAmount := summary.Income
	if summary.Expense > maxAmount {
		maxAmount = summary.Expense
	}
	if maxAmount <= 0 {
		return
	}
	const barMax = 120.0
	x := pdf.GetX()
	y := pdf.GetY()

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetFillColor(76, 145, 87)
	pdf.Rect(x+20, y, barMax*summary.Income/maxAmount, 5, "F")
	pdf.Text(x, y+4, "Income")
	pdf.SetFillColor(181, 81, 73)
	pdf.Rect(x+20, y+7, barMax*summary.Expense/maxAmount, 5, "F")
	pdf.Text(x, y+11, "Expense")
	pdf.SetY(y + 16)
}

func writeTableBody(pdf *fpdf.Fpdf, table Table) {
	if len(table.Columns) == 0 {
		return
	}
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(table.Columns))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(224, 224, 224)
	for _, col := range table.Columns {
		pdf.CellFormat(colWidth, 8, col.Name, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range table.Rows {
		if row.IsAggregation {
			pdf.SetFont("Helvetica", "B", 9)
			pdf.SetFillColor(230, 236, 245)
		} else if i%2 == 1 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for _, value := range row.Values {
			pdf.CellFormat(colWidth, 7, value, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		if row.IsAggregation {
			pdf.SetFont("Helvetica", "", 9)
		}
	}
}
