package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"grant-crm/internal/config"
	"grant-crm/internal/features/dataset"
	"grant-crm/internal/features/filter"
	"grant-crm/internal/features/schema"
	"grant-crm/internal/features/template"
)

type ReportService interface {
	// Generate runs the full pipeline over caller-supplied data:
	// filter, date-range, sort, project, aggregate, render.
	Generate(ctx context.Context, cfg Config, tpl *template.ReportTemplate, data []map[string]any) (*Artifact, error)
	// Run resolves the template and fetches data before generating.
	Run(ctx context.Context, cfg Config) (*Artifact, error)
	// Preview returns the projected table without rendering an export blob.
	Preview(ctx context.Context, cfg Config) (*Table, error)
}

type ReportServiceImpl struct {
	TemplateService template.TemplateService
	Provider        dataset.Provider
	Config          *config.Config
	Logger          *zap.Logger
}

func NewReportService(templateService template.TemplateService, provider dataset.Provider, cfg *config.Config, logger *zap.Logger) ReportService {
	return &ReportServiceImpl{
		TemplateService: templateService,
		Provider:        provider,
		Config:          cfg,
		Logger:          logger,
	}
}

func (s *ReportServiceImpl) Run(ctx context.Context, cfg Config) (*Artifact, error) {
	tpl, err := s.TemplateService.GetTemplate(ctx, cfg.TemplateID)
	if err != nil {
		return nil, err
	}
	data, err := s.Provider.FetchData(ctx, tpl.PrimaryEntityType)
	if err != nil {
		return nil, err
	}
	return s.Generate(ctx, cfg, tpl, data)
}

func (s *ReportServiceImpl) Generate(ctx context.Context, cfg Config, tpl *template.ReportTemplate, data []map[string]any) (*Artifact, error) {
	// Support is checked before any rendering work so a bad combination can
	// never leave a partial file behind.
	if err := checkSupport(cfg.Format, tpl.PrimaryEntityType); err != nil {
		return nil, err
	}

	table := s.buildTable(cfg, tpl, data)

	var blob []byte
	var err error
	switch cfg.Format {
	case FormatPDF:
		blob, err = renderPDF(table, cfg.IncludeCharts)
	case FormatExcel:
		blob, err = renderExcel(table)
	case FormatCSV:
		blob, err = renderCSV(table)
	}
	if err != nil {
		return nil, fmt.Errorf("rendering %s report: %w", cfg.Format, err)
	}

	s.Logger.Info("report generated",
		zap.String("template", tpl.Name),
		zap.String("format", string(cfg.Format)),
		zap.Int("rows", len(table.Rows)))

	return &Artifact{
		Filename:    exportFilename(table.Title, cfg.Format),
		ContentType: contentTypes[cfg.Format],
		Data:        blob,
	}, nil
}

func (s *ReportServiceImpl) Preview(ctx context.Context, cfg Config) (*Table, error) {
	tpl, err := s.TemplateService.GetTemplate(ctx, cfg.TemplateID)
	if err != nil {
		return nil, err
	}
	data, err := s.Provider.FetchData(ctx, tpl.PrimaryEntityType)
	if err != nil {
		return nil, err
	}
	table := s.buildTable(cfg, tpl, data)
	return &table, nil
}

// buildTable runs the in-memory half of the pipeline, in strict order:
// effective filters, date range, sorts, projection, aggregation row.
func (s *ReportServiceImpl) buildTable(cfg Config, tpl *template.ReportTemplate, data []map[string]any) Table {
	filtered := filterRecords(cfg, tpl, data)
	if cfg.DateRange != nil {
		filtered = filterDateRange(filtered, tpl.PrimaryEntityType, *cfg.DateRange)
	}
	sortRecords(filtered, tpl)

	included := includedFields(tpl)
	columns := make([]Column, len(included))
	for i, f := range included {
		columns[i] = Column{FieldID: f.ID, Name: f.Name}
	}

	glyph := s.Config.CurrencyGlyph
	rows := make([]Row, 0, len(filtered)+1)
	for _, record := range filtered {
		values := make([]string, len(included))
		for i, f := range included {
			values[i] = formatValue(schema.ResolvePath(record, f.FieldPath), f, glyph)
		}
		rows = append(rows, Row{Values: values})
	}

	if aggRow, ok := aggregationRow(filtered, included, glyph); ok {
		rows = append(rows, aggRow)
	}

	title := cfg.Name
	if title == "" {
		title = tpl.Name
	}

	table := Table{Title: title, Columns: columns, Rows: rows}
	if tpl.PrimaryEntityType == schema.EntityTransactions {
		table.Summary = financialSummary(filtered)
	}
	return table
}

// filterRecords resolves the effective filter set: config flat filters
// override the template's flat filters, and template filter groups are
// AND-combined on top.
func filterRecords(cfg Config, tpl *template.ReportTemplate, data []map[string]any) []map[string]any {
	flat := tpl.Filters
	if len(cfg.Filters) > 0 {
		flat = cfg.Filters
	}

	out := []map[string]any{}
	for _, record := range data {
		if !matchesFlat(record, flat) {
			continue
		}
		if !matchesGroups(record, tpl.FilterGroups) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func matchesFlat(record map[string]any, conditions []filter.Condition) bool {
	for _, cond := range conditions {
		if !filter.Evaluate(record, filter.ConditionNode(cond)) {
			return false
		}
	}
	return true
}

func matchesGroups(record map[string]any, groups []filter.Group) bool {
	for _, group := range groups {
		if !filter.EvaluateGroup(record, group) {
			return false
		}
	}
	return true
}

// primaryDateField picks the entity's primary date path for date-range
// windows: date for transactions, start_date for grants, created_at for
// everything else.
func primaryDateField(entity schema.EntityType) string {
	switch entity {
	case schema.EntityTransactions:
		return "date"
	case schema.EntityGrants:
		return "start_date"
	default:
		return "created_at"
	}
}

func filterDateRange(data []map[string]any, entity schema.EntityType, dr DateRange) []map[string]any {
	path := primaryDateField(entity)
	out := []map[string]any{}
	for _, record := range data {
		t, ok := toTime(schema.ResolvePath(record, path))
		if !ok {
			continue
		}
		if t.Before(dr.StartDate) || t.After(dr.EndDate) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func sortRecords(data []map[string]any, tpl *template.ReportTemplate) {
	if len(tpl.Sorts) == 0 {
		return
	}
	paths := make(map[string]string, len(tpl.Sorts))
	for _, srt := range tpl.Sorts {
		if f, ok := schema.FieldByID(tpl.PrimaryEntityType, srt.FieldID); ok {
			paths[srt.FieldID] = f.FieldPath
		}
	}
	sort.SliceStable(data, func(i, j int) bool {
		for _, srt := range tpl.Sorts {
			path, ok := paths[srt.FieldID]
			if !ok {
				continue
			}
			cmp := compareRaw(schema.ResolvePath(data[i], path), schema.ResolvePath(data[j], path))
			if cmp == 0 {
				continue
			}
			if srt.Direction == template.SortDesc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// compareRaw orders raw record values for sorting: numbers, then dates,
// then case-insensitive strings. Nil sorts first.
func compareRaw(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if af, aok := toNumber(a); aok {
		if bf, bok := toNumber(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if at, aok := toTime(a); aok {
		if bt, bok := toTime(b); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(
		strings.ToLower(fmt.Sprintf("%v", a)),
		strings.ToLower(fmt.Sprintf("%v", b)),
	)
}

func includedFields(tpl *template.ReportTemplate) []schema.Field {
	fields := []schema.Field{}
	for _, f := range tpl.Fields {
		if f.IncludeInReport {
			fields = append(fields, f)
		}
	}
	return fields
}

// aggregationRow builds the single synthetic totals row. It exists only when
// at least one included field declares an aggregation.
func aggregationRow(data []map[string]any, fields []schema.Field, glyph string) (Row, bool) {
	hasAggregation := false
	for _, f := range fields {
		if f.Aggregation != "" {
			hasAggregation = true
			break
		}
	}
	if !hasAggregation {
		return Row{}, false
	}

	values := make([]string, len(fields))
	for i, f := range fields {
		if f.Aggregation == "" {
			if i == 0 {
				values[i] = "Total"
			}
			continue
		}
		column := make([]any, 0, len(data))
		for _, record := range data {
			column = append(column, schema.ResolvePath(record, f.FieldPath))
		}
		result := Aggregate(column, f.Aggregation)
		if f.Aggregation == schema.AggregationCount {
			values[i] = fmt.Sprintf("%d", int64(result))
		} else {
			values[i] = formatValue(result, f, glyph)
		}
	}
	return Row{Values: values, IsAggregation: true}, true
}

func financialSummary(data []map[string]any) *FinancialSummary {
	summary := &FinancialSummary{}
	for _, record := range data {
		amount, ok := toNumber(schema.ResolvePath(record, "amount"))
		if !ok {
			continue
		}
		switch schema.ResolvePath(record, "type") {
		case "INCOME":
			summary.Income += amount
		case "EXPENSE":
			summary.Expense += amount
		}
	}
	summary.Total = summary.Income - summary.Expense
	return summary
}

func checkSupport(format Format, entity schema.EntityType) error {
	if _, ok := extensions[format]; !ok {
		return fmt.Errorf("%w: %q for entity %q", ErrUnsupportedFormat, format, entity)
	}
	if len(schema.FieldsFor(entity)) == 0 {
		return fmt.Errorf("%w: no field catalog for entity %q", ErrUnsupportedFormat, entity)
	}
	return nil
}

// exportFilename derives the download name from the report title: spaces
// replaced with underscores, extension appended per format.
func exportFilename(name string, format Format) string {
	return strings.ReplaceAll(name, " ", "_") + "." + extensions[format]
}
