package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Draw represents one executed draw. It is written once together with its
// prize results and never updated.
type Draw struct {
	ID             string          `json:"id"`
	WinningNumbers []int           `json:"winningNumbers"`
	DrawDate       time.Time       `json:"drawDate"`
	TicketCount    int             `json:"ticketCount"`
	TotalFund      decimal.Decimal `json:"totalFund"`
}

// DrawOutcome is what a run-draw request reports back to the operator
type DrawOutcome struct {
	Draw                Draw
	Results             []PrizeResult
	WinnersByMatchCount map[int]int
	TierFunds           map[int]decimal.Decimal
	PrizePerWinner      map[int]decimal.Decimal
	Unallocated         decimal.Decimal
}
