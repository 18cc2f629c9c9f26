package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/ArowuTest/numbers-lottery-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Money leaves the API as a JSON number
func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// tierMoney keys tiers by their decimal string, the way encoding/json renders int map keys
func tierMoney(m map[int]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for tier, v := range m {
		out[strconv.Itoa(tier)] = money(v)
	}
	return out
}

type drawResponse struct {
	ID             string    `json:"id"`
	WinningNumbers []int     `json:"winningNumbers"`
	DrawDate       time.Time `json:"drawDate"`
	TicketCount    int       `json:"ticketCount"`
	TotalFund      float64   `json:"totalFund"`
}

func newDrawResponse(d models.Draw) drawResponse {
	return drawResponse{
		ID:             d.ID,
		WinningNumbers: d.WinningNumbers,
		DrawDate:       d.DrawDate.UTC(),
		TicketCount:    d.TicketCount,
		TotalFund:      money(d.TotalFund),
	}
}

type prizeResultResponse struct {
	TicketID int64   `json:"ticketId"`
	UserID   int64   `json:"userId"`
	Matches  int     `json:"matches"`
	Prize    float64 `json:"prize"`
}

func newPrizeResultResponses(results []models.PrizeResult) []prizeResultResponse {
	out := make([]prizeResultResponse, len(results))
	for i, r := range results {
		out[i] = prizeResultResponse{TicketID: r.TicketID, UserID: r.UserID, Matches: r.Matches, Prize: money(r.Prize)}
	}
	return out
}

type winnerResponse struct {
	TicketID int64   `json:"ticketId"`
	UserID   int64   `json:"userId"`
	Prize    float64 `json:"prize"`
}

// winnersByTier lists the winning tickets of every tier 1..pickCount,
// empty tiers included
func winnersByTier(pickCount int, results []models.PrizeResult) map[string][]winnerResponse {
	out := make(map[string][]winnerResponse, pickCount)
	for tier := 1; tier <= pickCount; tier++ {
		out[strconv.Itoa(tier)] = []winnerResponse{}
	}
	for _, r := range results {
		key := strconv.Itoa(r.Matches)
		out[key] = append(out[key], winnerResponse{TicketID: r.TicketID, UserID: r.UserID, Prize: money(r.Prize)})
	}
	return out
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// failFromError maps service errors onto HTTP statuses
func failFromError(c *gin.Context, err error) {
	var storage *services.StorageError
	switch {
	case errors.Is(err, services.ErrDrawInProgress):
		fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrEmptyPool):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrDrawNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidTicket):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, err.Error())
	case errors.As(err, &storage):
		_ = c.Error(err)
		fail(c, http.StatusServiceUnavailable, "storage unavailable")
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, "internal error")
	}
}
