package postgres

import (
	"database/sql"
	"time"

	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type ticketRow struct {
	ID        int64          `db:"id"`
	UserID    int64          `db:"user_id"`
	Numbers   pq.Int64Array  `db:"numbers"`
	Paid      bool           `db:"paid"`
	TxHash    sql.NullString `db:"tx_hash"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r ticketRow) model() models.Ticket {
	return models.Ticket{
		ID:        r.ID,
		UserID:    r.UserID,
		Numbers:   toInts(r.Numbers),
		Paid:      r.Paid,
		TxHash:    r.TxHash.String,
		CreatedAt: r.CreatedAt,
	}
}

type drawRow struct {
	ID             string          `db:"id"`
	WinningNumbers pq.Int64Array   `db:"winning_numbers"`
	DrawDate       time.Time       `db:"draw_date"`
	TicketCount    int             `db:"ticket_count"`
	TotalFund      decimal.Decimal `db:"total_fund"`
}

func (r drawRow) model() models.Draw {
	return models.Draw{
		ID:             r.ID,
		WinningNumbers: toInts(r.WinningNumbers),
		DrawDate:       r.DrawDate.UTC(),
		TicketCount:    r.TicketCount,
		TotalFund:      r.TotalFund,
	}
}

type prizeResultRow struct {
	ID       string          `db:"id"`
	DrawID   string          `db:"draw_id"`
	TicketID int64           `db:"ticket_id"`
	UserID   int64           `db:"user_id"`
	Matches  int             `db:"matches"`
	Prize    decimal.Decimal `db:"prize"`
}

func (r prizeResultRow) model() models.PrizeResult {
	return models.PrizeResult(r)
}

func toInts(a pq.Int64Array) []int {
	out := make([]int, len(a))
	for i, v := range a {
		out[i] = int(v)
	}
	return out
}

func toInt64Array(a []int) pq.Int64Array {
	out := make(pq.Int64Array, len(a))
	for i, v := range a {
		out[i] = int64(v)
	}
	return out
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
