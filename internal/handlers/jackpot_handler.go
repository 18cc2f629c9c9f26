package handlers

import (
	"net/http"

	"github.com/ArowuTest/numbers-lottery-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// JackpotHandler serves the jackpot estimate
type JackpotHandler struct {
	jackpotService services.JackpotService
}

// NewJackpotHandler creates a new JackpotHandler
func NewJackpotHandler(jackpotService services.JackpotService) *JackpotHandler {
	return &JackpotHandler{jackpotService: jackpotService}
}

// GetJackpot handles GET /jackpot
func (h *JackpotHandler) GetJackpot(c *gin.Context) {
	jackpot, err := h.jackpotService.Current(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "jackpot": money(jackpot)})
}
