package report

import (
	"testing"
	"time"

	"grant-crm/internal/features/schema"
)

func TestFormatValue(t *testing.T) {
	date := time.Date(2024, 4, 5, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		field schema.Field
		want  string
	}{
		{"nil renders empty", nil, schema.Field{FieldType: schema.FieldTypeCurrency}, ""},
		{"date default format", date, schema.Field{FieldType: schema.FieldTypeDate}, "05/04/2024"},
		{"date explicit format", date, schema.Field{FieldType: schema.FieldTypeDate, Format: "yyyy-MM-dd"}, "2024-04-05"},
		{"date string input", "2024-04-05", schema.Field{FieldType: schema.FieldTypeDate}, "05/04/2024"},
		{"currency grouping and cents", 1234.5, schema.Field{FieldType: schema.FieldTypeCurrency}, "$1,234.50"},
		{"currency whole number", 600.0, schema.Field{FieldType: schema.FieldTypeCurrency}, "$600.00"},
		{"number trims trailing zeros", 12.5, schema.Field{FieldType: schema.FieldTypeNumber}, "12.5"},
		{"bool true", true, schema.Field{FieldType: schema.FieldTypeBoolean}, "Yes"},
		{"bool false", false, schema.Field{FieldType: schema.FieldTypeBoolean}, "No"},
		{"text passthrough", "Rent, April", schema.Field{FieldType: schema.FieldTypeText}, "Rent, April"},
		{"enum passthrough", "EXPENSE", schema.Field{FieldType: schema.FieldTypeEnum}, "EXPENSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.value, tt.field, "$"); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestDateLayout(t *testing.T) {
	if got := dateLayout("dd/MM/yyyy"); got != "02/01/2006" {
		t.Errorf("dateLayout = %q", got)
	}
	if got := dateLayout("yyyy-MM-dd"); got != "2006-01-02" {
		t.Errorf("dateLayout = %q", got)
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		title  string
		format Format
		want   string
	}{
		{"Monthly Expense Report", FormatPDF, "Monthly_Expense_Report.pdf"},
		{"All Transactions", FormatExcel, "All_Transactions.xlsx"},
		{"Donors", FormatCSV, "Donors.csv"},
	}
	for _, tt := range tests {
		if got := exportFilename(tt.title, tt.format); got != tt.want {
			t.Errorf("exportFilename(%q, %s) = %q, want %q", tt.title, tt.format, got, tt.want)
		}
	}
}
