package template

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tiendc/go-deepcopy"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"grant-crm/internal/features/filter"
)

var (
	// ErrSystemTemplateImmutable is raised by any mutation attempt on a
	// system template.
	ErrSystemTemplateImmutable = errors.New("system templates cannot be modified or deleted")
	// ErrNotFound is raised by update/delete on a nonexistent template id.
	ErrNotFound = errors.New("report template not found")
)

type TemplateService interface {
	ListTemplates(ctx context.Context) ([]ReportTemplate, error)
	GetTemplate(ctx context.Context, id string) (*ReportTemplate, error)
	SaveTemplate(ctx context.Context, template *ReportTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
	DuplicateTemplate(ctx context.Context, sourceID, newName string) (*ReportTemplate, error)
}

type TemplateServiceImpl struct {
	TemplateRepo TemplateRepository
	system       []ReportTemplate
}

func NewTemplateService(templateRepo TemplateRepository) TemplateService {
	return &TemplateServiceImpl{
		TemplateRepo: templateRepo,
		system:       systemTemplates(),
	}
}

// ListTemplates returns system templates first, then user templates, both in
// creation order.
func (s *TemplateServiceImpl) ListTemplates(ctx context.Context) ([]ReportTemplate, error) {
	userTemplates, err := s.TemplateRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	all := make([]ReportTemplate, 0, len(s.system)+len(userTemplates))
	all = append(all, s.system...)
	all = append(all, userTemplates...)
	return all, nil
}

func (s *TemplateServiceImpl) GetTemplate(ctx context.Context, id string) (*ReportTemplate, error) {
	if sys := s.systemByID(id); sys != nil {
		return sys, nil
	}
	template, err := s.TemplateRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return template, nil
}

func (s *TemplateServiceImpl) SaveTemplate(ctx context.Context, template *ReportTemplate) error {
	if template.IsSystem || s.systemByID(template.ID.Hex()) != nil {
		return ErrSystemTemplateImmutable
	}
	if template.Name == "" {
		return fmt.Errorf("template name is required")
	}
	for _, cond := range template.Filters {
		if err := filter.ValidateCondition(template.PrimaryEntityType, cond); err != nil {
			return err
		}
	}
	for _, group := range template.FilterGroups {
		if err := filter.ValidateGroup(template.PrimaryEntityType, group); err != nil {
			return err
		}
	}
	for i := range template.FilterGroups {
		filter.AssignIDs(&template.FilterGroups[i])
	}
	return s.TemplateRepo.Upsert(ctx, template)
}

func (s *TemplateServiceImpl) DeleteTemplate(ctx context.Context, id string) error {
	if s.systemByID(id) != nil {
		return ErrSystemTemplateImmutable
	}
	err := s.TemplateRepo.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// DuplicateTemplate deep-copies a template, including nested filter groups,
// and persists the copy as a user template. Mutating the duplicate afterwards
// never touches the source.
func (s *TemplateServiceImpl) DuplicateTemplate(ctx context.Context, sourceID, newName string) (*ReportTemplate, error) {
	source, err := s.GetTemplate(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	var dup ReportTemplate
	if err := deepcopy.Copy(&dup, source); err != nil {
		return nil, err
	}

	now := time.Now()
	dup.ID = primitive.NewObjectID()
	dup.Name = newName
	dup.Description = fmt.Sprintf("Duplicated from %q", source.Name)
	dup.IsSystem = false
	dup.CreatedAt = now
	dup.UpdatedAt = now

	if err := s.TemplateRepo.Upsert(ctx, &dup); err != nil {
		return nil, err
	}
	return &dup, nil
}

func (s *TemplateServiceImpl) systemByID(id string) *ReportTemplate {
	for i := range s.system {
		if s.system[i].ID.Hex() == id {
			// copy so callers cannot mutate the seed
			sys := s.system[i]
			return &sys
		}
	}
	return nil
}
