package services

import (
	"context"

	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/shopspring/decimal"
)

// DrawService defines the interface for draw-related operations
type DrawService interface {
	// RunDraw samples, classifies, allocates and settles one draw over every
	// paid ticket, then notifies winners and republishes the jackpot
	RunDraw(ctx context.Context) (*models.DrawOutcome, error)

	// ListRecentDraws returns at most limit draws, newest first
	ListRecentDraws(ctx context.Context, limit int) ([]models.Draw, error)

	// GetResults returns a draw and its prize results
	GetResults(ctx context.Context, drawID string) (*models.Draw, []models.PrizeResult, error)
}

// JackpotService defines the interface for the jackpot estimate
type JackpotService interface {
	// Current computes the estimate without publishing it
	Current(ctx context.Context) (decimal.Decimal, error)

	// Broadcast computes the estimate and pushes it to live viewers
	Broadcast(ctx context.Context) (decimal.Decimal, error)
}

// TicketService defines the interface for ticket purchase and history
type TicketService interface {
	Buy(ctx context.Context, req *models.BuyTicketsRequest) ([]models.Ticket, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Ticket, error)
}

// AuthService defines the interface for operator authentication
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

// WinnerNotifier hands winner messages off for delivery without blocking
type WinnerNotifier interface {
	NotifyWinners(draw *models.Draw, results []models.PrizeResult) int
}

// Broadcaster fans a message out to live viewers
type Broadcaster interface {
	Broadcast(v interface{}) (int, error)
}
