package models

import (
	"github.com/shopspring/decimal"
)

// PrizeResult records the prize owed to one ticket in one draw
type PrizeResult struct {
	ID       string          `json:"id"`
	DrawID   string          `json:"drawId"`
	TicketID int64           `json:"ticketId"`
	UserID   int64           `json:"userId"`
	Matches  int             `json:"matches"`
	Prize    decimal.Decimal `json:"prize"`
}
