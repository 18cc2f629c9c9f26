package postgres

import (
	"github.com/ArowuTest/numbers-lottery-backend/internal/repositories"
	"github.com/jmoiron/sqlx"
)

// NewStore wires every PostgreSQL repository over one handle
func NewStore(db *sqlx.DB) repositories.Store {
	draws := NewDrawRepository(db)
	return repositories.Store{
		Tickets:      NewTicketRepository(db),
		Settlements:  draws,
		Draws:        draws,
		PrizeResults: draws,
	}
}
