package dataset

import (
	"context"

	"grant-crm/internal/features/schema"
)

// Provider supplies already-materialized records to the report engine.
// The engine never issues its own queries; everything downstream of this
// boundary operates on in-memory maps.
type Provider interface {
	FetchData(ctx context.Context, entity schema.EntityType) ([]map[string]any, error)
}
