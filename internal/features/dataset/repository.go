package dataset

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"grant-crm/internal/database"
	"grant-crm/internal/features/schema"
)

// MongoProvider reads entity records from the collection named after the
// entity type.
type MongoProvider struct {
	db *mongo.Database
}

func NewMongoProvider(db *database.MongodbDB) Provider {
	return &MongoProvider{db: db.DB}
}

func (p *MongoProvider) FetchData(ctx context.Context, entity schema.EntityType) ([]map[string]any, error) {
	cursor, err := p.db.Collection(string(entity)).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []map[string]any{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		records = append(records, normalize(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// normalize converts bson decode artifacts into plain Go values so the
// evaluator and renderers only ever see maps, slices, numbers, strings,
// bools and time.Time.
func normalize(doc bson.M) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch value := v.(type) {
	case bson.M:
		return normalize(value)
	case bson.D:
		m := make(map[string]any, len(value))
		for _, e := range value {
			m[e.Key] = normalizeValue(e.Value)
		}
		return m
	case bson.A:
		arr := make([]any, len(value))
		for i, e := range value {
			arr[i] = normalizeValue(e)
		}
		return arr
	case primitive.DateTime:
		return value.Time()
	case primitive.ObjectID:
		return value.Hex()
	case primitive.Decimal128:
		return value.String()
	case int32:
		return float64(value)
	case int64:
		return float64(value)
	default:
		return v
	}
}
