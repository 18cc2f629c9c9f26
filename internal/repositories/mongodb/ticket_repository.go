package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/ArowuTest/numbers-lottery-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repositories.TicketRepository = (*TicketRepository)(nil)

// TicketRepository implements the repositories.TicketRepository interface
type TicketRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{
		collection: db.Collection("tickets"),
		counters:   db.Collection("counters"),
	}
}

// ListPaid returns all paid tickets
func (r *TicketRepository) ListPaid(ctx context.Context) ([]models.Ticket, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	return r.find(ctx, bson.M{"paid": true}, opts)
}

// CountPaid returns the number of paid tickets
func (r *TicketRepository) CountPaid(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"paid": true})
	if err != nil {
		return 0, fmt.Errorf("count paid tickets: %w", err)
	}
	return n, nil
}

// Create assigns the next sequential id and inserts the ticket
func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}
	ticket.ID = id
	ticket.CreatedAt = time.Now().UTC()
	if _, err := r.collection.InsertOne(ctx, ticket); err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// FindByUserID returns a user's tickets, newest first
func (r *TicketRepository) FindByUserID(ctx context.Context, userID int64) ([]models.Ticket, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	return r.find(ctx, bson.M{"userId": userID}, opts)
}

func (r *TicketRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Ticket, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var tickets []models.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	return tickets, nil
}

type counter struct {
	Seq int64 `bson:"seq"`
}

func (r *TicketRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var c counter
	err := r.counters.FindOneAndUpdate(ctx, bson.M{"_id": "tickets"}, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("allocate ticket id: %w", err)
	}
	return c.Seq, nil
}
