package services

import (
	"context"

	"github.com/ArowuTest/numbers-lottery-backend/internal/metrics"
	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/ArowuTest/numbers-lottery-backend/internal/repositories"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var _ JackpotService = (*JackpotServiceImpl)(nil)

// JackpotServiceImpl derives the jackpot from the paid ticket count. The
// estimate is never stored.
type JackpotServiceImpl struct {
	tickets     repositories.TicketRepository
	base        decimal.Decimal
	perTicket   decimal.Decimal
	broadcaster Broadcaster
	metrics     *metrics.Metrics
	log         logrus.FieldLogger
}

// NewJackpotService creates a new JackpotServiceImpl
func NewJackpotService(
	tickets repositories.TicketRepository,
	base, perTicket decimal.Decimal,
	broadcaster Broadcaster,
	m *metrics.Metrics,
	log logrus.FieldLogger,
) *JackpotServiceImpl {
	return &JackpotServiceImpl{
		tickets:     tickets,
		base:        base,
		perTicket:   perTicket,
		broadcaster: broadcaster,
		metrics:     m,
		log:         log,
	}
}

// Current returns base + paid tickets * per-ticket contribution
func (s *JackpotServiceImpl) Current(ctx context.Context) (decimal.Decimal, error) {
	n, err := s.tickets.CountPaid(ctx)
	if err != nil {
		return decimal.Zero, storageErr("count paid tickets", err)
	}
	return s.base.Add(decimal.NewFromInt(n).Mul(s.perTicket)), nil
}

// Broadcast publishes the current estimate. Having no viewers is not an error.
func (s *JackpotServiceImpl) Broadcast(ctx context.Context) (decimal.Decimal, error) {
	jackpot, err := s.Current(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	value := jackpot.InexactFloat64()
	sent, err := s.broadcaster.Broadcast(models.JackpotUpdate{Type: models.JackpotUpdateType, Jackpot: value})
	if err != nil {
		return jackpot, err
	}
	s.metrics.Jackpot(value)
	s.log.WithFields(logrus.Fields{"jackpot": jackpot.String(), "viewers": sent}).Debug("Jackpot broadcast")
	return jackpot, nil
}

var _ JackpotService = OfflineJackpot{}

// OfflineJackpot is the JackpotService for batch tools with no viewers.
// It never touches the store, so bulk purchases skip the per-ticket recount.
type OfflineJackpot struct{}

func (OfflineJackpot) Current(context.Context) (decimal.Decimal, error)   { return decimal.Zero, nil }
func (OfflineJackpot) Broadcast(context.Context) (decimal.Decimal, error) { return decimal.Zero, nil }
