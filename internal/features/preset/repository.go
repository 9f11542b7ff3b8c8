package preset

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"grant-crm/internal/database"
	"grant-crm/internal/features/schema"
)

type PresetRepository interface {
	Upsert(ctx context.Context, preset *FilterPreset) error
	Get(ctx context.Context, id string) (*FilterPreset, error)
	FindByEntityType(ctx context.Context, entity schema.EntityType) ([]FilterPreset, error)
	Delete(ctx context.Context, id string) error
}

type PresetRepositoryImpl struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewPresetRepository(db *database.MongodbDB, logger *zap.Logger) PresetRepository {
	return &PresetRepositoryImpl{
		collection: db.DB.Collection("filter_presets"),
		logger:     logger,
	}
}

func (r *PresetRepositoryImpl) Upsert(ctx context.Context, preset *FilterPreset) error {
	if preset.ID.IsZero() {
		preset.ID = primitive.NewObjectID()
		preset.CreatedAt = time.Now()
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": preset.ID}, preset, opts)
	return err
}

func (r *PresetRepositoryImpl) Get(ctx context.Context, id string) (*FilterPreset, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var preset FilterPreset
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&preset); err != nil {
		return nil, err
	}
	return &preset, nil
}

// FindByEntityType lists presets for one entity in creation order. Documents
// that fail to decode are skipped and logged so a corrupt entry can never
// take the whole collection down with it.
func (r *PresetRepositoryImpl) FindByEntityType(ctx context.Context, entity schema.EntityType) ([]FilterPreset, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"entity_type": entity}, opts)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []FilterPreset{}, nil
		}
		return nil, err
	}
	defer cursor.Close(ctx)

	presets := []FilterPreset{}
	for cursor.Next(ctx) {
		var preset FilterPreset
		if err := cursor.Decode(&preset); err != nil {
			r.logger.Warn("skipping corrupt filter preset document", zap.Error(err))
			continue
		}
		presets = append(presets, preset)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return presets, nil
}

func (r *PresetRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
