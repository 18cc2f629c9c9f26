package postgres

import (
	"context"
	"fmt"

	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/ArowuTest/numbers-lottery-backend/internal/repositories"
	"github.com/jmoiron/sqlx"
)

var _ repositories.TicketRepository = (*TicketRepository)(nil)

// TicketRepository implements repositories.TicketRepository over sqlx
type TicketRepository struct {
	db *sqlx.DB
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketColumns = `id, user_id, numbers, paid, tx_hash, created_at`

// ListPaid returns all paid tickets
func (r *TicketRepository) ListPaid(ctx context.Context) ([]models.Ticket, error) {
	var rows []ticketRow
	err := r.db.SelectContext(ctx, &rows, `SELECT `+ticketColumns+` FROM tickets WHERE paid = TRUE ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list paid tickets: %w", err)
	}
	return ticketModels(rows), nil
}

// CountPaid returns the number of paid tickets
func (r *TicketRepository) CountPaid(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM tickets WHERE paid = TRUE`); err != nil {
		return 0, fmt.Errorf("count paid tickets: %w", err)
	}
	return n, nil
}

// Create inserts a ticket and fills in its generated id and creation time
func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	row := r.db.QueryRowxContext(ctx,
		`INSERT INTO tickets (user_id, numbers, paid, tx_hash) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		ticket.UserID, toInt64Array(ticket.Numbers), ticket.Paid, nullString(ticket.TxHash),
	)
	if err := row.Scan(&ticket.ID, &ticket.CreatedAt); err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// FindByUserID returns a user's tickets, newest first
func (r *TicketRepository) FindByUserID(ctx context.Context, userID int64) ([]models.Ticket, error) {
	var rows []ticketRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+ticketColumns+` FROM tickets WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("find tickets for user %d: %w", userID, err)
	}
	return ticketModels(rows), nil
}

func ticketModels(rows []ticketRow) []models.Ticket {
	tickets := make([]models.Ticket, len(rows))
	for i, row := range rows {
		tickets[i] = row.model()
	}
	return tickets
}
