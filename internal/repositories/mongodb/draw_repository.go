package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/ArowuTest/numbers-lottery-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	_ repositories.SettlementRepository  = (*DrawRepository)(nil)
	_ repositories.DrawRepository        = (*DrawRepository)(nil)
	_ repositories.PrizeResultRepository = (*DrawRepository)(nil)
)

// DrawRepository stores draws and prize results. Settlement needs a replica
// set or sharded cluster because it runs in a multi-document transaction.
type DrawRepository struct {
	client  *mongo.Client
	draws   *mongo.Collection
	results *mongo.Collection
}

// NewDrawRepository creates a new DrawRepository
func NewDrawRepository(db *mongo.Database) *DrawRepository {
	return &DrawRepository{
		client:  db.Client(),
		draws:   db.Collection("draws"),
		results: db.Collection("prize_results"),
	}
}

// Settle inserts the draw and its results in one transaction
func (r *DrawRepository) Settle(ctx context.Context, draw *models.Draw, results []models.PrizeResult) error {
	drawDoc, err := newDrawDocument(draw)
	if err != nil {
		return err
	}
	resultDocs := make([]interface{}, 0, len(results))
	for _, pr := range results {
		doc, err := newPrizeResultDocument(pr)
		if err != nil {
			return err
		}
		resultDocs = append(resultDocs, doc)
	}

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start settlement session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.draws.InsertOne(sc, drawDoc); err != nil {
			return nil, fmt.Errorf("insert draw %s: %w", draw.ID, err)
		}
		if len(resultDocs) > 0 {
			if _, err := r.results.InsertMany(sc, resultDocs); err != nil {
				return nil, fmt.Errorf("insert prize results: %w", err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("settle draw %s: %w", draw.ID, err)
	}
	return nil
}

// ListRecent returns at most limit draws, newest first
func (r *DrawRepository) ListRecent(ctx context.Context, limit int) ([]models.Draw, error) {
	opts := options.Find().SetSort(bson.M{"drawDate": -1}).SetLimit(int64(limit))
	cursor, err := r.draws.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list recent draws: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []drawDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode draws: %w", err)
	}
	draws := make([]models.Draw, 0, len(docs))
	for _, doc := range docs {
		d, err := doc.model()
		if err != nil {
			return nil, err
		}
		draws = append(draws, d)
	}
	return draws, nil
}

// FindByID finds a draw by ID
func (r *DrawRepository) FindByID(ctx context.Context, id string) (*models.Draw, error) {
	var doc drawDocument
	err := r.draws.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find draw %s: %w", id, err)
	}
	d, err := doc.model()
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FindByDrawID returns a draw's results, highest tier first
func (r *DrawRepository) FindByDrawID(ctx context.Context, drawID string) ([]models.PrizeResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "matches", Value: -1}, {Key: "ticketId", Value: 1}})
	cursor, err := r.results.Find(ctx, bson.M{"drawId": drawID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find prize results for draw %s: %w", drawID, err)
	}
	defer cursor.Close(ctx)

	var docs []prizeResultDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode prize results: %w", err)
	}
	results := make([]models.PrizeResult, 0, len(docs))
	for _, doc := range docs {
		pr, err := doc.model()
		if err != nil {
			return nil, err
		}
		results = append(results, pr)
	}
	return results, nil
}
