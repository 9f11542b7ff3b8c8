package preset

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"grant-crm/internal/features/filter"
	"grant-crm/internal/features/schema"
)

// FilterPreset is a named, persisted snapshot of one filter tree, scoped to
// an entity type. Applying a preset replaces the working filter group
// wholesale; presets themselves are never mutated by application.
type FilterPreset struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	EntityType  schema.EntityType  `json:"entity_type" bson:"entity_type"`
	FilterGroup filter.Group       `json:"filter_group" bson:"filter_group"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
