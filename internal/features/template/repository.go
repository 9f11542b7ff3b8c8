package template

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"grant-crm/internal/database"
)

type TemplateRepository interface {
	Upsert(ctx context.Context, template *ReportTemplate) error
	Get(ctx context.Context, id string) (*ReportTemplate, error)
	List(ctx context.Context) ([]ReportTemplate, error)
	Delete(ctx context.Context, id string) error
}

type TemplateRepositoryImpl struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewTemplateRepository(db *database.MongodbDB, logger *zap.Logger) TemplateRepository {
	return &TemplateRepositoryImpl{
		collection: db.DB.Collection("report_templates"),
		logger:     logger,
	}
}

func (r *TemplateRepositoryImpl) Upsert(ctx context.Context, template *ReportTemplate) error {
	if template.ID.IsZero() {
		template.ID = primitive.NewObjectID()
		template.CreatedAt = time.Now()
	}
	template.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": template.ID}, template, opts)
	return err
}

func (r *TemplateRepositoryImpl) Get(ctx context.Context, id string) (*ReportTemplate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var template ReportTemplate
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&template); err != nil {
		return nil, err
	}
	return &template, nil
}

// List returns user templates in creation order. Corrupt documents are
// skipped and logged rather than failing the whole read.
func (r *TemplateRepositoryImpl) List(ctx context.Context) ([]ReportTemplate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	templates := []ReportTemplate{}
	for cursor.Next(ctx) {
		var template ReportTemplate
		if err := cursor.Decode(&template); err != nil {
			r.logger.Warn("skipping corrupt report template document", zap.Error(err))
			continue
		}
		templates = append(templates, template)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *TemplateRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
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
