package handlers

import (
	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/ArowuTest/numbers-lottery-backend/internal/realtime"
	"github.com/ArowuTest/numbers-lottery-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// WSHandler upgrades live viewers onto the hub and greets each new viewer
// with the current jackpot
type WSHandler struct {
	hub     *realtime.Hub
	jackpot services.JackpotService
	log     logrus.FieldLogger
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *realtime.Hub, jackpot services.JackpotService, log logrus.FieldLogger) *WSHandler {
	return &WSHandler{hub: hub, jackpot: jackpot, log: log}
}

// Serve handles GET /ws. Other viewers are not notified.
func (h *WSHandler) Serve(c *gin.Context) {
	var greeting interface{}
	if jackpot, err := h.jackpot.Current(c.Request.Context()); err != nil {
		h.log.WithError(err).Warn("Jackpot unavailable for new viewer")
	} else {
		greeting = models.JackpotUpdate{Type: models.JackpotUpdateType, Jackpot: jackpot.InexactFloat64()}
	}

	if err := h.hub.ServeWS(c.Writer, c.Request, greeting); err != nil {
		h.log.WithError(err).Warn("Viewer upgrade failed")
	}
}
