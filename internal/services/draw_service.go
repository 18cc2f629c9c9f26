package services

import (
	"context"
	"errors"
	"time"

	"github.com/ArowuTest/numbers-lottery-backend/internal/draw"
	"github.com/ArowuTest/numbers-lottery-backend/internal/lock"
	"github.com/ArowuTest/numbers-lottery-backend/internal/metrics"
	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/ArowuTest/numbers-lottery-backend/internal/repositories"
	"github.com/sirupsen/logrus"
)

// DrawLockKey serialises draws across every instance sharing a lock backend
const DrawLockKey = "lottery:draw"

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

var _ DrawService = (*DrawServiceImpl)(nil)

// DrawDependencies are the collaborators a DrawServiceImpl needs
type DrawDependencies struct {
	Tickets      repositories.TicketRepository
	Draws        repositories.DrawRepository
	PrizeResults repositories.PrizeResultRepository
	Recorder     *SettlementRecorder
	Sampler      *draw.Sampler
	Prizes       draw.PrizeTable
	Locker       lock.Locker
	Notifier     WinnerNotifier
	Jackpot      JackpotService
	Metrics      *metrics.Metrics
	Logger       logrus.FieldLogger
	HistoryLimit int
}

// DrawServiceImpl runs draws end to end
type DrawServiceImpl struct {
	DrawDependencies
}

// NewDrawService creates a new DrawServiceImpl
func NewDrawService(deps DrawDependencies) *DrawServiceImpl {
	if deps.HistoryLimit <= 0 {
		deps.HistoryLimit = DefaultHistoryLimit
	}
	return &DrawServiceImpl{DrawDependencies: deps}
}

// RunDraw executes one draw under the draw lock. A concurrent call fails with
// ErrDrawInProgress instead of waiting.
func (s *DrawServiceImpl) RunDraw(ctx context.Context) (*models.DrawOutcome, error) {
	unlock, err := s.Locker.TryLock(ctx, DrawLockKey)
	if errors.Is(err, lock.ErrLocked) {
		s.Metrics.DrawAttempt(metrics.DrawInProgress)
		return nil, ErrDrawInProgress
	}
	if err != nil {
		s.Metrics.DrawAttempt(metrics.DrawFailed)
		return nil, storageErr("acquire draw lock", err)
	}
	defer func() {
		if err := unlock(context.Background()); err != nil {
			s.Logger.WithError(err).Warn("Failed to release draw lock")
		}
	}()

	start := time.Now()
	tickets, err := s.Tickets.ListPaid(ctx)
	if err != nil {
		s.Metrics.DrawAttempt(metrics.DrawFailed)
		return nil, storageErr("list paid tickets", err)
	}
	if len(tickets) == 0 {
		s.Metrics.DrawAttempt(metrics.DrawEmptyPool)
		s.Logger.Info("Draw declined: no paid tickets")
		return nil, ErrEmptyPool
	}

	winning := s.Sampler.Sample()
	entries := make([]draw.Entry, len(tickets))
	for i, t := range tickets {
		entries[i] = draw.Entry{TicketID: t.ID, UserID: t.UserID, Numbers: t.Numbers}
	}
	buckets := draw.Classify(winning, entries)
	alloc := s.Prizes.Allocate(len(tickets), buckets)

	settlement, err := s.Recorder.Record(ctx, winning, len(tickets), alloc)
	if err != nil {
		s.Metrics.DrawAttempt(metrics.DrawFailed)
		s.Logger.WithError(err).Error("Draw settlement failed")
		return nil, err
	}
	s.Metrics.DrawAttempt(metrics.DrawSettled)
	s.Metrics.DrawDuration(time.Since(start))
	s.Metrics.PrizeResults(len(settlement.Results))

	s.Logger.WithFields(logrus.Fields{
		"drawId":         settlement.Draw.ID,
		"winningNumbers": winning,
		"tickets":        len(tickets),
		"winners":        len(settlement.Results),
		"totalFund":      alloc.TotalFund.String(),
		"unallocated":    alloc.Unallocated.String(),
	}).Info("Draw settled")

	if s.Notifier != nil {
		s.Notifier.NotifyWinners(&settlement.Draw, settlement.Results)
	}
	if _, err := s.Jackpot.Broadcast(ctx); err != nil {
		s.Logger.WithError(err).Warn("Jackpot broadcast after draw failed")
	}

	return &models.DrawOutcome{
		Draw:                settlement.Draw,
		Results:             settlement.Results,
		WinnersByMatchCount: buckets.CountsByTier(s.Sampler.PickCount()),
		TierFunds:           alloc.TierFunds,
		PrizePerWinner:      alloc.PrizePerWinner,
		Unallocated:         alloc.Unallocated,
	}, nil
}

// ListRecentDraws clamps limit to 1..MaxHistoryLimit, using the configured
// history limit when limit is not positive
func (s *DrawServiceImpl) ListRecentDraws(ctx context.Context, limit int) ([]models.Draw, error) {
	if limit <= 0 {
		limit = s.HistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	draws, err := s.Draws.ListRecent(ctx, limit)
	if err != nil {
		return nil, storageErr("list recent draws", err)
	}
	return draws, nil
}

// GetResults returns ErrDrawNotFound for unknown ids
func (s *DrawServiceImpl) GetResults(ctx context.Context, drawID string) (*models.Draw, []models.PrizeResult, error) {
	d, err := s.Draws.FindByID(ctx, drawID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, ErrDrawNotFound
	}
	if err != nil {
		return nil, nil, storageErr("find draw", err)
	}
	results, err := s.PrizeResults.FindByDrawID(ctx, drawID)
	if err != nil {
		return nil, nil, storageErr("find prize results", err)
	}
	return d, results, nil
}
