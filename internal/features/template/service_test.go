package template

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"grant-crm/internal/features/filter"
	"grant-crm/internal/features/schema"
)

// memTemplateRepo is an in-memory TemplateRepository for service tests.
type memTemplateRepo struct {
	templates map[string]ReportTemplate
	order     []string
}

func newMemTemplateRepo() *memTemplateRepo {
	return &memTemplateRepo{templates: map[string]ReportTemplate{}}
}

func (r *memTemplateRepo) Upsert(ctx context.Context, template *ReportTemplate) error {
	if template.ID.IsZero() {
		template.ID = primitive.NewObjectID()
	}
	id := template.ID.Hex()
	if _, exists := r.templates[id]; !exists {
		r.order = append(r.order, id)
	}
	r.templates[id] = *template
	return nil
}

func (r *memTemplateRepo) Get(ctx context.Context, id string) (*ReportTemplate, error) {
	template, ok := r.templates[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &template, nil
}

func (r *memTemplateRepo) List(ctx context.Context) ([]ReportTemplate, error) {
	out := make([]ReportTemplate, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.templates[id])
	}
	return out, nil
}

func (r *memTemplateRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.templates[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.templates, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func userTemplate(name string) *ReportTemplate {
	return &ReportTemplate{
		Name:              name,
		PrimaryEntityType: schema.EntityTransactions,
		Fields:            schema.FieldsFor(schema.EntityTransactions),
	}
}

func TestListTemplatesSystemFirst(t *testing.T) {
	repo := newMemTemplateRepo()
	svc := NewTemplateService(repo)
	ctx := context.Background()

	if err := svc.SaveTemplate(ctx, userTemplate("My Report")); err != nil {
		t.Fatalf("SaveTemplate: %v", err)
	}

	all, err := svc.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("got %d templates, want 4 system + 1 user", len(all))
	}
	for i := 0; i < 4; i++ {
		if !all[i].IsSystem {
			t.Errorf("template %d (%s) should be a system template", i, all[i].Name)
		}
	}
	if all[4].Name != "My Report" || all[4].IsSystem {
		t.Errorf("user template should come last: %+v", all[4])
	}
}

func TestSaveTemplateAssignsIDAndRejectsInvalidFilters(t *testing.T) {
	repo := newMemTemplateRepo()
	svc := NewTemplateService(repo)
	ctx := context.Background()

	tpl := userTemplate("Valid")
	if err := svc.SaveTemplate(ctx, tpl); err != nil {
		t.Fatalf("SaveTemplate: %v", err)
	}
	if tpl.ID.IsZero() {
		t.Error("save should assign an id")
	}

	bad := userTemplate("Bad Operator")
	desc, _ := schema.FieldByID(schema.EntityTransactions, "txn_description")
	bad.Filters = []filter.Condition{{Field: desc, Operator: filter.OpGreaterThan, Value: "x"}}
	if err := svc.SaveTemplate(ctx, bad); !errors.Is(err, filter.ErrUnsupportedOperator) {
		t.Errorf("got %v, want ErrUnsupportedOperator", err)
	}
}

func TestSystemTemplatesAreImmutable(t *testing.T) {
	repo := newMemTemplateRepo()
	svc := NewTemplateService(repo)
	ctx := context.Background()

	systemID := systemTemplates()[0].ID.Hex()

	sys, err := svc.GetTemplate(ctx, systemID)
	if err != nil {
		t.Fatalf("GetTemplate: %v", err)
	}

	sys.Name = "Hijacked"
	if err := svc.SaveTemplate(ctx, sys); !errors.Is(err, ErrSystemTemplateImmutable) {
		t.Errorf("save: got %v, want ErrSystemTemplateImmutable", err)
	}
	if err := svc.DeleteTemplate(ctx, systemID); !errors.Is(err, ErrSystemTemplateImmutable) {
		t.Errorf("delete: got %v, want ErrSystemTemplateImmutable", err)
	}

	// the store and the seed stay untouched
	if len(repo.templates) != 0 {
		t.Errorf("store should be empty, holds %d", len(repo.templates))
	}
	fresh, _ := svc.GetTemplate(ctx, systemID)
	if fresh.Name != "All Transactions" {
		t.Errorf("seed mutated: %q", fresh.Name)
	}
}

func TestDeleteTemplate(t *testing.T) {
	repo := newMemTemplateRepo()
	svc := NewTemplateService(repo)
	ctx := context.Background()

	tpl := userTemplate("Disposable")
	if err := svc.SaveTemplate(ctx, tpl); err != nil {
		t.Fatalf("SaveTemplate: %v", err)
	}
	if err := svc.DeleteTemplate(ctx, tpl.ID.Hex()); err != nil {
		t.Fatalf("DeleteTemplate: %v", err)
	}
	if err := svc.DeleteTemplate(ctx, tpl.ID.Hex()); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestDuplicateTemplateIsIndependent(t *testing.T) {
	repo := newMemTemplateRepo()
	svc := NewTemplateService(repo)
	ctx := context.Background()

	sourceID := systemTemplates()[1].ID.Hex() // Expense Summary, has filter groups

	dup, err := svc.DuplicateTemplate(ctx, sourceID, "My Expense Summary")
	if err != nil {
		t.Fatalf("DuplicateTemplate: %v", err)
	}
	if dup.IsSystem {
		t.Error("duplicate must be a user template")
	}
	if dup.ID.Hex() == sourceID {
		t.Error("duplicate must get a fresh id")
	}
	if dup.Name != "My Expense Summary" {
		t.Errorf("name = %q", dup.Name)
	}
	if len(dup.FilterGroups) != 1 {
		t.Fatalf("filter groups not copied: %d", len(dup.FilterGroups))
	}

	// mutate the copy's nested condition; the source must not change
	dup.FilterGroups[0].Conditions[0].Condition.Value = "INCOME"
	if err := svc.SaveTemplate(ctx, dup); err != nil {
		t.Fatalf("SaveTemplate: %v", err)
	}

	source, err := svc.GetTemplate(ctx, sourceID)
	if err != nil {
		t.Fatalf("GetTemplate: %v", err)
	}
	got := source.FilterGroups[0].Conditions[0].Condition.Value
	if got != "EXPENSE" {
		t.Errorf("source condition changed to %v after editing the duplicate", got)
	}
}

func TestGetTemplateNotFound(t *testing.T) {
	svc := NewTemplateService(newMemTemplateRepo())
	if _, err := svc.GetTemplate(context.Background(), primitive.NewObjectID().Hex()); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
