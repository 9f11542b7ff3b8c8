package schedule

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"grant-crm/internal/database"
)

type ScheduleRepository interface {
	Upsert(ctx context.Context, schedule *ReportSchedule) error
	Get(ctx context.Context, id string) (*ReportSchedule, error)
	List(ctx context.Context) ([]ReportSchedule, error)
	Delete(ctx context.Context, id string) error
	TouchLastRun(ctx context.Context, id primitive.ObjectID, ranAt time.Time) error
}

type ScheduleRepositoryImpl struct {
	collection *mongo.Collection
}

func NewScheduleRepository(db *database.MongodbDB) ScheduleRepository {
	return &ScheduleRepositoryImpl{
		collection: db.DB.Collection("report_schedules"),
	}
}

func (r *ScheduleRepositoryImpl) Upsert(ctx context.Context, schedule *ReportSchedule) error {
	if schedule.ID.IsZero() {
		schedule.ID = primitive.NewObjectID()
		schedule.CreatedAt = time.Now()
	}
	schedule.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": schedule.ID}, schedule, opts)
	return err
}

func (r *ScheduleRepositoryImpl) Get(ctx context.Context, id string) (*ReportSchedule, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var schedule ReportSchedule
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *ScheduleRepositoryImpl) List(ctx context.Context) ([]ReportSchedule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	schedules := []ReportSchedule{}
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *ScheduleRepositoryImpl) Delete(ctx context.Context, id string) error {
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

func (r *ScheduleRepositoryImpl) TouchLastRun(ctx context.Context, id primitive.ObjectID, ranAt time.Time) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_run_at": ranAt}})
	return err
}
