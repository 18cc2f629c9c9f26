package mongodb

import (
	"context"
	"fmt"

	"github.com/ArowuTest/numbers-lottery-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewStore wires every MongoDB repository over one database
func NewStore(db *mongo.Database) repositories.Store {
	draws := NewDrawRepository(db)
	return repositories.Store{
		Tickets:      NewTicketRepository(db),
		Settlements:  draws,
		Draws:        draws,
		PrizeResults: draws,
	}
}

// EnsureIndexes creates the indexes the repositories rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		"tickets": {
			{Keys: bson.D{{Key: "paid", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"draws": {
			{Keys: bson.D{{Key: "drawDate", Value: -1}}},
		},
		"prize_results": {
			{
				Keys:    bson.D{{Key: "drawId", Value: 1}, {Key: "ticketId", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}
	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}
	return nil
}
