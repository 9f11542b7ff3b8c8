package main

import (
	"context"
	"log"
	"time"

	"grant-crm/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seeds demo records into the per-entity collections so reports have
// something to chew on locally.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.DBName)

	day := func(offset int) time.Time {
		return time.Now().AddDate(0, 0, -offset).Truncate(24 * time.Hour)
	}

	transactions := []any{
		bson.M{"date": day(2), "description": "Community grant disbursement", "amount": 12000.0, "type": "EXPENSE", "category": "GRANT", "payment_method": "TRANSFER", "reconciled": true},
		bson.M{"date": day(5), "description": "Monthly donor drive", "amount": 8300.0, "type": "INCOME", "category": "DONATION", "payment_method": "CARD", "reconciled": true},
		bson.M{"date": day(9), "description": "Office rent", "amount": 2500.0, "type": "EXPENSE", "category": "RENT", "payment_method": "TRANSFER", "reconciled": false},
		bson.M{"date": day(12), "description": "Corporate matching gift", "amount": 15000.0, "type": "INCOME", "category": "DONATION", "payment_method": "CHEQUE", "reconciled": true},
		bson.M{"date": day(20), "description": "Field staff payroll", "amount": 9800.0, "type": "EXPENSE", "category": "PAYROLL", "payment_method": "TRANSFER", "reconciled": true},
	}

	grants := []any{
		bson.M{"name": "Clean Water Initiative", "amount": 50000.0, "start_date": day(60), "end_date": day(-120), "status": "ACTIVE", "grantee": bson.M{"name": "River Trust"}, "program": bson.M{"name": "Water"}, "disbursed": 20000.0},
		bson.M{"name": "Literacy Outreach", "amount": 25000.0, "start_date": day(200), "end_date": day(10), "status": "COMPLETED", "grantee": bson.M{"name": "Read Ahead"}, "program": bson.M{"name": "Education"}, "disbursed": 25000.0},
	}

	donors := []any{
		bson.M{"name": "A. Mehta", "email": "amehta@example.org", "total_donated": 42000.0, "recurring": true, "created_at": day(300)},
		bson.M{"name": "Birchwood Foundation", "email": "grants@birchwood.example.org", "total_donated": 150000.0, "recurring": false, "created_at": day(500)},
	}

	seed := func(collection string, docs []any) {
		if err := db.Collection(collection).Drop(ctx); err != nil {
			log.Printf("drop %s: %v", collection, err)
		}
		if _, err := db.Collection(collection).InsertMany(ctx, docs); err != nil {
			log.Fatalf("seed %s: %v", collection, err)
		}
		log.Printf("seeded %d %s", len(docs), collection)
	}

	seed("transactions", transactions)
	seed("grants", grants)
	seed("donors", donors)
}
