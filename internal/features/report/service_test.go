package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"grant-crm/internal/config"
	"grant-crm/internal/features/filter"
	"grant-crm/internal/features/schema"
	"grant-crm/internal/features/template"
)

type stubTemplateService struct {
	tpl *template.ReportTemplate
}

func (s *stubTemplateService) ListTemplates(ctx context.Context) ([]template.ReportTemplate, error) {
	return []template.ReportTemplate{*s.tpl}, nil
}

func (s *stubTemplateService) GetTemplate(ctx context.Context, id string) (*template.ReportTemplate, error) {
	return s.tpl, nil
}

func (s *stubTemplateService) SaveTemplate(ctx context.Context, tpl *template.ReportTemplate) error {
	return nil
}

func (s *stubTemplateService) DeleteTemplate(ctx context.Context, id string) error { return nil }

func (s *stubTemplateService) DuplicateTemplate(ctx context.Context, sourceID, newName string) (*template.ReportTemplate, error) {
	return s.tpl, nil
}

type stubProvider struct {
	data []map[string]any
}

func (p *stubProvider) FetchData(ctx context.Context, entity schema.EntityType) ([]map[string]any, error) {
	return p.data, nil
}

func mustCatalogField(t *testing.T, entity schema.EntityType, id string) schema.Field {
	t.Helper()
	f, ok := schema.FieldByID(entity, id)
	if !ok {
		t.Fatalf("field %q missing from %q catalog", id, entity)
	}
	return f
}

func transactionTemplate(t *testing.T) *template.ReportTemplate {
	t.Helper()
	return &template.ReportTemplate{
		Name:              "All Transactions",
		PrimaryEntityType: schema.EntityTransactions,
		Fields: []schema.Field{
			mustCatalogField(t, schema.EntityTransactions, "txn_date"),
			mustCatalogField(t, schema.EntityTransactions, "txn_description"),
			mustCatalogField(t, schema.EntityTransactions, "txn_amount"),
			mustCatalogField(t, schema.EntityTransactions, "txn_type"),
		},
	}
}

func transactionRecords() []map[string]any {
	return []map[string]any{
		{"date": time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), "description": "Rent, April", "amount": 100.0, "type": "EXPENSE"},
		{"date": time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), "description": "Supplies", "amount": 200.0, "type": "EXPENSE"},
		{"date": time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), "description": "Payroll", "amount": 300.0, "type": "EXPENSE"},
		{"date": time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), "description": "Grant award", "amount": 1000.0, "type": "INCOME"},
		{"date": time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), "description": "Donation", "amount": 500.0, "type": "INCOME"},
	}
}

func newTestService(tpl *template.ReportTemplate, data []map[string]any) *ReportServiceImpl {
	return &ReportServiceImpl{
		TemplateService: &stubTemplateService{tpl: tpl},
		Provider:        &stubProvider{data: data},
		Config:          &config.Config{CurrencyGlyph: "$"},
		Logger:          zap.NewNop(),
	}
}

func expenseCondition(t *testing.T) filter.Condition {
	t.Helper()
	return filter.Condition{
		Field:    mustCatalogField(t, schema.EntityTransactions, "txn_type"),
		Operator: filter.OpEquals,
		Value:    "EXPENSE",
	}
}

func TestPreviewFlatFilter(t *testing.T) {
	svc := newTestService(transactionTemplate(t), transactionRecords())
	cfg := Config{TemplateID: "x", Format: FormatCSV, Filters: []filter.Condition{expenseCondition(t)}}

	table, err := svc.Preview(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("got %d rows, want 3 expense rows", len(table.Rows))
	}
	for _, row := range table.Rows {
		if row.Values[3] != "EXPENSE" {
			t.Errorf("non-expense row leaked through: %v", row.Values)
		}
	}
}

func TestPreviewConfigFiltersOverrideTemplateFilters(t *testing.T) {
	tpl := transactionTemplate(t)
	tpl.Filters = []filter.Condition{{
		Field:    mustCatalogField(t, schema.EntityTransactions, "txn_type"),
		Operator: filter.OpEquals,
		Value:    "INCOME",
	}}
	svc := newTestService(tpl, transactionRecords())
	cfg := Config{TemplateID: "x", Format: FormatCSV, Filters: []filter.Condition{expenseCondition(t)}}

	table, err := svc.Preview(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("config filters should replace template flat filters, got %d rows", len(table.Rows))
	}
}

func TestPreviewFilterGroupsCombineWithAnd(t *testing.T) {
	tpl := transactionTemplate(t)
	tpl.FilterGroups = []filter.Group{{
		LogicalOperator: filter.LogicAnd,
		Conditions: []filter.Node{filter.ConditionNode(filter.Condition{
			Field:    mustCatalogField(t, schema.EntityTransactions, "txn_amount"),
			Operator: filter.OpGreaterThan,
			Value:    150.0,
		})},
	}}
	svc := newTestService(tpl, transactionRecords())
	cfg := Config{TemplateID: "x", Format: FormatCSV, Filters: []filter.Condition{expenseCondition(t)}}

	table, err := svc.Preview(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	// expenses over 150: Supplies (200) and Payroll (300)
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
}

func TestPreviewAggregationRow(t *testing.T) {
	tpl := transactionTemplate(t)
	tpl.Fields[2].Aggregation = schema.AggregationSum
	svc := newTestService(tpl, transactionRecords())
	cfg := Config{TemplateID: "x", Format: FormatCSV, Filters: []filter.Condition{expenseCondition(t)}}

	table, err := svc.Preview(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(table.Rows) != 4 {
		t.Fatalf("got %d rows, want 3 data rows + 1 aggregation row", len(table.Rows))
	}
	agg := table.Rows[3]
	if !agg.IsAggregation {
		t.Fatal("last row should be the aggregation row")
	}
	if agg.Values[0] != "Total" {
		t.Errorf("first non-aggregated column = %q, want Total", agg.Values[0])
	}
	if agg.Values[2] != "$600.00" {
		t.Errorf("sum cell = %q, want $600.00", agg.Values[2])
	}
}

func TestPreviewCountAggregationHasNoDecimals(t *testing.T) {
	tpl := transactionTemplate(t)
	tpl.Fields[1].Aggregation = schema.AggregationCount
	svc := newTestService(tpl, transactionRecords())

	table, err := svc.Preview(context.Background(), Config{TemplateID: "x", Format: FormatCSV})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	agg := table.Rows[len(table.Rows)-1]
	if agg.Values[1] != "5" {
		t.Errorf("count cell = %q, want 5", agg.Values[1])
	}
}

func TestPreviewDateRangeInclusive(t *testing.T) {
	svc := newTestService(transactionTemplate(t), transactionRecords())
	cfg := Config{
		TemplateID: "x",
		Format:     FormatCSV,
		DateRange: &DateRange{
			StartDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	table, err := svc.Preview(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	// April records only; both window edges are inclusive.
	if len(table.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(table.Rows))
	}
}

func TestPreviewSortDescending(t *testing.T) {
	tpl := transactionTemplate(t)
	tpl.Sorts = []template.Sort{{FieldID: "txn_amount", Direction: template.SortDesc}}
	svc := newTestService(tpl, transactionRecords())

	table, err := svc.Preview(context.Background(), Config{TemplateID: "x", Format: FormatCSV})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if table.Rows[0].Values[1] != "Grant award" || table.Rows[4].Values[1] != "Rent, April" {
		t.Errorf("rows not sorted by amount desc: first=%v last=%v", table.Rows[0].Values, table.Rows[4].Values)
	}
}

func TestPreviewFinancialSummary(t *testing.T) {
	svc := newTestService(transactionTemplate(t), transactionRecords())

	table, err := svc.Preview(context.Background(), Config{TemplateID: "x", Format: FormatCSV})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if table.Summary == nil {
		t.Fatal("transaction reports should carry a financial summary")
	}
	if table.Summary.Income != 1500 || table.Summary.Expense != 600 || table.Summary.Total != 900 {
		t.Errorf("summary = %+v", table.Summary)
	}
}

func TestGenerateUnsupportedFormatFailsBeforeRendering(t *testing.T) {
	svc := newTestService(transactionTemplate(t), nil)

	artifact, err := svc.Generate(context.Background(), Config{Format: Format("DOCX")}, transactionTemplate(t), transactionRecords())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
	if artifact != nil {
		t.Error("no artifact may exist for an unsupported format")
	}
}

func TestGenerateArtifactMetadata(t *testing.T) {
	svc := newTestService(transactionTemplate(t), nil)
	cfg := Config{Name: "Monthly Expense Report", Format: FormatCSV}

	artifact, err := svc.Generate(context.Background(), cfg, transactionTemplate(t), transactionRecords())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if artifact.Filename != "Monthly_Expense_Report.csv" {
		t.Errorf("filename = %q", artifact.Filename)
	}
	if !strings.HasPrefix(artifact.ContentType, "text/csv") {
		t.Errorf("content type = %q", artifact.ContentType)
	}
	if len(artifact.Data) == 0 {
		t.Error("artifact data is empty")
	}
}

func TestGenerateExcelAndPDFProduceData(t *testing.T) {
	svc := newTestService(transactionTemplate(t), nil)
	for _, format := range []Format{FormatExcel, FormatPDF} {
		artifact, err := svc.Generate(context.Background(), Config{Format: format}, transactionTemplate(t), transactionRecords())
		if err != nil {
			t.Fatalf("Generate(%s): %v", format, err)
		}
		if len(artifact.Data) == 0 {
			t.Errorf("%s artifact is empty", format)
		}
	}
}

func TestGenerateTitleFallsBackToTemplateName(t *testing.T) {
	svc := newTestService(transactionTemplate(t), nil)

	artifact, err := svc.Generate(context.Background(), Config{Format: FormatCSV}, transactionTemplate(t), nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if artifact.Filename != "All_Transactions.csv" {
		t.Errorf("filename = %q", artifact.Filename)
	}
}
