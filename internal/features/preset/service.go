package preset

import (
	"context"
	"errors"
	"fmt"

	"github.com/tiendc/go-deepcopy"
	"go.mongodb.org/mongo-driver/mongo"

	"grant-crm/internal/features/filter"
	"grant-crm/internal/features/schema"
)

// ErrNotFound is returned for delete/get on a preset id that does not exist.
var ErrNotFound = errors.New("filter preset not found")

type PresetService interface {
	SavePreset(ctx context.Context, preset *FilterPreset) error
	GetPreset(ctx context.Context, id string) (*FilterPreset, error)
	PresetsByEntityType(ctx context.Context, entity schema.EntityType) ([]FilterPreset, error)
	DeletePreset(ctx context.Context, id string) error
	ApplyPreset(preset *FilterPreset) (filter.Group, error)
}

type PresetServiceImpl struct {
	PresetRepo PresetRepository
}

func NewPresetService(presetRepo PresetRepository) PresetService {
	return &PresetServiceImpl{PresetRepo: presetRepo}
}

func (s *PresetServiceImpl) SavePreset(ctx context.Context, preset *FilterPreset) error {
	if preset.Name == "" {
		return fmt.Errorf("preset name is required")
	}
	if err := filter.ValidateGroup(preset.EntityType, preset.FilterGroup); err != nil {
		return err
	}
	filter.AssignIDs(&preset.FilterGroup)
	return s.PresetRepo.Upsert(ctx, preset)
}

func (s *PresetServiceImpl) GetPreset(ctx context.Context, id string) (*FilterPreset, error) {
	preset, err := s.PresetRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return preset, nil
}

func (s *PresetServiceImpl) PresetsByEntityType(ctx context.Context, entity schema.EntityType) ([]FilterPreset, error) {
	return s.PresetRepo.FindByEntityType(ctx, entity)
}

func (s *PresetServiceImpl) DeletePreset(ctx context.Context, id string) error {
	err := s.PresetRepo.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// ApplyPreset projects the preset's filter group for use as a working filter.
// The returned group is a deep copy: callers replace their working tree with
// it and may mutate it freely without touching the stored preset.
func (s *PresetServiceImpl) ApplyPreset(preset *FilterPreset) (filter.Group, error) {
	var group filter.Group
	if err := deepcopy.Copy(&group, &preset.FilterGroup); err != nil {
		return filter.Group{}, err
	}
	return group, nil
}
