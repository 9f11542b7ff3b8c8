package dataset

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalize(t *testing.T) {
	oid := primitive.NewObjectID()
	when := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	doc := bson.M{
		"_id":    oid,
		"date":   primitive.NewDateTimeFromTime(when),
		"amount": int64(250),
		"count":  int32(3),
		"grantee": bson.D{
			{Key: "name", Value: "Community Kitchen"},
		},
		"tags": bson.A{"GRANT", int32(7)},
	}

	got := normalize(doc)

	if got["_id"] != oid.Hex() {
		t.Errorf("_id = %v", got["_id"])
	}
	gotTime, ok := got["date"].(time.Time)
	if !ok || !gotTime.Equal(when) {
		t.Errorf("date = %v", got["date"])
	}
	if got["amount"] != float64(250) {
		t.Errorf("amount = %v (%T)", got["amount"], got["amount"])
	}
	if got["count"] != float64(3) {
		t.Errorf("count = %v (%T)", got["count"], got["count"])
	}

	grantee, ok := got["grantee"].(map[string]any)
	if !ok || grantee["name"] != "Community Kitchen" {
		t.Errorf("grantee = %v", got["grantee"])
	}
	if !reflect.DeepEqual(got["tags"], []any{"GRANT", float64(7)}) {
		t.Errorf("tags = %v", got["tags"])
	}
}
