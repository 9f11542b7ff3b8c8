package template

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"grant-crm/internal/features/filter"
	"grant-crm/internal/features/preset"
	"grant-crm/internal/features/schema"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort orders report rows by one field.
type Sort struct {
	FieldID   string        `json:"field_id" bson:"field_id"`
	Direction SortDirection `json:"direction" bson:"direction"`
}

// ReportTemplate is a saved, reusable report definition for one entity type.
// A template owns its field and filter definitions outright: nothing is
// shared by reference across templates, and duplication deep-copies.
//
// Filters is the legacy flat form; FilterGroups is the recursive form. When
// both are present the generator AND-combines them.
type ReportTemplate struct {
	ID                 primitive.ObjectID    `json:"id" bson:"_id,omitempty"`
	Name               string                `json:"name" bson:"name"`
	Description        string                `json:"description" bson:"description"`
	PrimaryEntityType  schema.EntityType     `json:"primary_entity_type" bson:"primary_entity_type"`
	Fields             []schema.Field        `json:"fields" bson:"fields"`
	Filters            []filter.Condition    `json:"filters" bson:"filters"`
	FilterGroups       []filter.Group        `json:"filter_groups,omitempty" bson:"filter_groups,omitempty"`
	SavedFilterPresets []preset.FilterPreset `json:"saved_filter_presets,omitempty" bson:"saved_filter_presets,omitempty"`
	Sorts              []Sort                `json:"sorts" bson:"sorts"`
	CreatedAt          time.Time             `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at" bson:"updated_at"`
	CreatedBy          string                `json:"created_by,omitempty" bson:"created_by,omitempty"`
	IsSystem           bool                  `json:"is_system" bson:"is_system"`
}
