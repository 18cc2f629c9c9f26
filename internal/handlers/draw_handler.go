package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ArowuTest/numbers-lottery-backend/internal/services"
	"github.com/ArowuTest/numbers-lottery-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// DrawHandler handles draw-related HTTP requests
type DrawHandler struct {
	drawService services.DrawService
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(drawService services.DrawService) *DrawHandler {
	return &DrawHandler{drawService: drawService}
}

// RunDraw handles POST /draws
func (h *DrawHandler) RunDraw(c *gin.Context) {
	outcome, err := h.drawService.RunDraw(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}

	counts := make(map[string]int, len(outcome.WinnersByMatchCount))
	for tier, n := range outcome.WinnersByMatchCount {
		counts[strconv.Itoa(tier)] = n
	}
	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"drawId":              outcome.Draw.ID,
		"winningNumbers":      outcome.Draw.WinningNumbers,
		"ticketCount":         outcome.Draw.TicketCount,
		"totalFund":           money(outcome.Draw.TotalFund),
		"winnersByMatchCount": counts,
		"winnersByMatches":    winnersByTier(len(outcome.Draw.WinningNumbers), outcome.Results),
		"tierFunds":           tierMoney(outcome.TierFunds),
		"prizePerWinner":      tierMoney(outcome.PrizePerWinner),
		"unallocated":         money(outcome.Unallocated),
	})
}

// ListDraws handles GET /draws?limit=N
func (h *DrawHandler) ListDraws(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fail(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	draws, err := h.drawService.ListRecentDraws(c.Request.Context(), limit)
	if err != nil {
		failFromError(c, err)
		return
	}
	out := make([]drawResponse, len(draws))
	for i, d := range draws {
		out[i] = newDrawResponse(d)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "draws": out})
}

// GetResults handles GET /draws/:id/results
func (h *DrawHandler) GetResults(c *gin.Context) {
	d, results, err := h.drawService.GetResults(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"draw":    newDrawResponse(*d),
		"results": newPrizeResultResponses(results),
	})
}

// ExportResults handles GET /draws/:id/export
func (h *DrawHandler) ExportResults(c *gin.Context) {
	d, results, err := h.drawService.GetResults(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="draw-%s.csv"`, d.ID))
	c.Status(http.StatusOK)
	if err := utils.WriteResultsCSV(c.Writer, d, results); err != nil {
		_ = c.Error(err)
	}
}
