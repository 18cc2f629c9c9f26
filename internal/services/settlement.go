package services

import (
	"context"
	"time"

	"github.com/ArowuTest/numbers-lottery-backend/internal/draw"
	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/ArowuTest/numbers-lottery-backend/internal/repositories"
	"github.com/google/uuid"
)

// Settlement is a persisted draw with its prize results
type Settlement struct {
	Draw    models.Draw
	Results []models.PrizeResult
}

// SettlementRecorder turns an allocation into a draw and its prize results and
// writes them atomically
type SettlementRecorder struct {
	repo  repositories.SettlementRepository
	now   func() time.Time
	newID func() string
}

// NewSettlementRecorder creates a new SettlementRecorder
func NewSettlementRecorder(repo repositories.SettlementRepository) *SettlementRecorder {
	return &SettlementRecorder{repo: repo, now: time.Now, newID: uuid.NewString}
}

// Record persists the draw. A zero ticketCount is refused with ErrEmptyPool
// before storage is touched.
func (r *SettlementRecorder) Record(ctx context.Context, winning []int, ticketCount int, alloc draw.Allocation) (*Settlement, error) {
	if ticketCount == 0 {
		return nil, ErrEmptyPool
	}

	d := models.Draw{
		ID:             r.newID(),
		WinningNumbers: append([]int(nil), winning...),
		DrawDate:       r.now().UTC(),
		TicketCount:    ticketCount,
		TotalFund:      alloc.TotalFund,
	}
	results := make([]models.PrizeResult, 0, len(alloc.Awards))
	for _, a := range alloc.Awards {
		results = append(results, models.PrizeResult{
			ID:       r.newID(),
			DrawID:   d.ID,
			TicketID: a.TicketID,
			UserID:   a.UserID,
			Matches:  a.Matches,
			Prize:    a.Prize,
		})
	}

	if err := r.repo.Settle(ctx, &d, results); err != nil {
		return nil, storageErr("settle draw", err)
	}
	return &Settlement{Draw: d, Results: results}, nil
}
