package services

import (
	"context"
	"fmt"

	"github.com/ArowuTest/numbers-lottery-backend/internal/draw"
	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/ArowuTest/numbers-lottery-backend/internal/repositories"
	"github.com/sirupsen/logrus"
)

var _ TicketService = (*TicketServiceImpl)(nil)

// TicketServiceImpl records purchased tickets. Payment is verified upstream;
// the paid flag is taken from the request.
type TicketServiceImpl struct {
	tickets     repositories.TicketRepository
	jackpot     JackpotService
	numberRange int
	pickCount   int
	log         logrus.FieldLogger
}

// NewTicketService creates a new TicketServiceImpl
func NewTicketService(tickets repositories.TicketRepository, jackpot JackpotService, numberRange, pickCount int, log logrus.FieldLogger) *TicketServiceImpl {
	return &TicketServiceImpl{
		tickets:     tickets,
		jackpot:     jackpot,
		numberRange: numberRange,
		pickCount:   pickCount,
		log:         log,
	}
}

// Buy validates every ticket before storing any, then republishes the jackpot
func (s *TicketServiceImpl) Buy(ctx context.Context, req *models.BuyTicketsRequest) ([]models.Ticket, error) {
	if req.UserID == nil {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidTicket)
	}
	userID := *req.UserID
	if len(req.Tickets) == 0 {
		return nil, fmt.Errorf("%w: no tickets in request", ErrInvalidTicket)
	}
	for i, numbers := range req.Tickets {
		if err := draw.ValidateNumbers(numbers, s.numberRange, s.pickCount); err != nil {
			return nil, fmt.Errorf("%w: ticket %d: %v", ErrInvalidTicket, i+1, err)
		}
	}

	created := make([]models.Ticket, 0, len(req.Tickets))
	for _, numbers := range req.Tickets {
		t := models.Ticket{
			UserID:  userID,
			Numbers: append([]int(nil), numbers...),
			Paid:    req.Paid,
			TxHash:  req.TxHash,
		}
		if err := s.tickets.Create(ctx, &t); err != nil {
			return created, storageErr("create ticket", err)
		}
		created = append(created, t)
	}

	s.log.WithFields(logrus.Fields{
		"userId":  userID,
		"tickets": len(created),
		"paid":    req.Paid,
		"txHash":  req.TxHash,
	}).Info("Tickets purchased")

	if _, err := s.jackpot.Broadcast(ctx); err != nil {
		s.log.WithError(err).Warn("Jackpot broadcast after purchase failed")
	}
	return created, nil
}

// ListByUser returns a user's tickets; user 0 has none
func (s *TicketServiceImpl) ListByUser(ctx context.Context, userID int64) ([]models.Ticket, error) {
	if userID == 0 {
		return []models.Ticket{}, nil
	}
	tickets, err := s.tickets.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storageErr("find user tickets", err)
	}
	return tickets, nil
}
