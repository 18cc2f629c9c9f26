package repositories

import (
	"context"
	"errors"

	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
)

// ErrNotFound is returned by lookups that match no record
var ErrNotFound = errors.New("record not found")

// TicketRepository defines the interface for ticket data operations
type TicketRepository interface {
	// ListPaid returns every paid ticket as observed at call time
	ListPaid(ctx context.Context) ([]models.Ticket, error)
	CountPaid(ctx context.Context) (int64, error)
	// Create assigns ticket.ID and ticket.CreatedAt
	Create(ctx context.Context, ticket *models.Ticket) error
	// FindByUserID returns a user's tickets, newest first
	FindByUserID(ctx context.Context, userID int64) ([]models.Ticket, error)
}

// SettlementRepository persists a draw and its prize results in one transaction
type SettlementRepository interface {
	Settle(ctx context.Context, draw *models.Draw, results []models.PrizeResult) error
}

// DrawRepository defines the interface for draw read operations
type DrawRepository interface {
	// ListRecent returns at most limit draws, newest first
	ListRecent(ctx context.Context, limit int) ([]models.Draw, error)
	FindByID(ctx context.Context, id string) (*models.Draw, error)
}

// PrizeResultRepository defines the interface for prize result read operations
type PrizeResultRepository interface {
	FindByDrawID(ctx context.Context, drawID string) ([]models.PrizeResult, error)
}

// Store bundles the repositories a storage backend provides
type Store struct {
	Tickets      TicketRepository
	Settlements  SettlementRepository
	Draws        DrawRepository
	PrizeResults PrizeResultRepository
}
