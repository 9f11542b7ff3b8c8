package report

import (
	"errors"
	"time"

	"grant-crm/internal/features/filter"
)

type Format string

const (
	FormatPDF   Format = "PDF"
	FormatExcel Format = "EXCEL"
	FormatCSV   Format = "CSV"
)

// extensions per export format, used for the download filename
var extensions = map[Format]string{
	FormatPDF:   "pdf",
	FormatExcel: "xlsx",
	FormatCSV:   "csv",
}

var contentTypes = map[Format]string{
	FormatPDF:   "application/pdf",
	FormatExcel: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatCSV:   "text/csv; charset=utf-8",
}

// ErrUnsupportedFormat is raised before any rendering work begins when the
// requested (entity type, format) pair has no renderer. Partial files are
// never emitted.
var ErrUnsupportedFormat = errors.New("unsupported export format for entity type")

type DateRange struct {
	StartDate time.Time `json:"start_date" bson:"start_date"`
	EndDate   time.Time `json:"end_date" bson:"end_date"`
}

// Config is the ephemeral instruction for one report generation. It is
// constructed immediately before a run and discarded after; nothing here is
// persisted.
type Config struct {
	TemplateID    string             `json:"template_id"`
	Name          string             `json:"name"`
	Format        Format             `json:"format"`
	Filters       []filter.Condition `json:"filters,omitempty"`
	DateRange     *DateRange         `json:"date_range,omitempty"`
	IncludeCharts bool               `json:"include_charts,omitempty"`
}

// Column is one rendered report column, in field order.
type Column struct {
	FieldID string `json:"field_id"`
	Name    string `json:"name"`
}

// Row holds formatted cell values aligned with the table's columns.
// IsAggregation marks the single synthetic totals row, when present, so
// renderers can style it distinctly.
type Row struct {
	Values        []string `json:"values"`
	IsAggregation bool     `json:"is_aggregation,omitempty"`
}

// FinancialSummary is the income/expense block shown on transaction reports.
type FinancialSummary struct {
	Total   float64 `json:"total"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Table is the rendered, format-agnostic shape handed to renderers.
type Table struct {
	Title   string            `json:"title"`
	Columns []Column          `json:"columns"`
	Rows    []Row             `json:"rows"`
	Summary *FinancialSummary `json:"summary,omitempty"`
}

// Artifact is the final export blob plus its download metadata.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}
