package handlers

import (
	"net/http"
	"strconv"

	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/ArowuTest/numbers-lottery-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// TicketHandler handles ticket purchase and history requests
type TicketHandler struct {
	ticketService services.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// BuyTickets handles POST /tickets
func (h *TicketHandler) BuyTickets(c *gin.Context) {
	var req models.BuyTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	tickets, err := h.ticketService.Buy(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	ids := make([]int64, len(tickets))
	for i, t := range tickets {
		ids[i] = t.ID
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "ticketIds": ids, "tickets": tickets})
}

// ListTickets handles GET /tickets?userId=
func (h *TicketHandler) ListTickets(c *gin.Context) {
	raw, ok := c.GetQuery("userId")
	if !ok {
		fail(c, http.StatusBadRequest, "userId is required")
		return
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "userId must be an integer")
		return
	}

	tickets, err := h.ticketService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tickets": tickets})
}
