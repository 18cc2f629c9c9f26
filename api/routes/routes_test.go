package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ArowuTest/numbers-lottery-backend/internal/config"
	"github.com/ArowuTest/numbers-lottery-backend/internal/handlers"
	"github.com/ArowuTest/numbers-lottery-backend/internal/metrics"
	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/ArowuTest/numbers-lottery-backend/internal/realtime"
	"github.com/ArowuTest/numbers-lottery-backend/internal/services"
	"github.com/ArowuTest/numbers-lottery-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type drawStub struct{ ran bool }

func (s *drawStub) RunDraw(context.Context) (*models.DrawOutcome, error) {
	s.ran = true
	return nil, services.ErrEmptyPool
}

func (s *drawStub) ListRecentDraws(context.Context, int) ([]models.Draw, error) {
	return []models.Draw{}, nil
}

func (s *drawStub) GetResults(context.Context, string) (*models.Draw, []models.PrizeResult, error) {
	return nil, nil, services.ErrDrawNotFound
}

type jackpotStub struct{}

func (jackpotStub) Current(context.Context) (decimal.Decimal, error)   { return decimal.NewFromInt(1000), nil }
func (jackpotStub) Broadcast(context.Context) (decimal.Decimal, error) { return decimal.NewFromInt(1000), nil }

type ticketStub struct{}

func (ticketStub) Buy(context.Context, *models.BuyTicketsRequest) ([]models.Ticket, error) {
	return nil, services.ErrInvalidTicket
}

func (ticketStub) ListByUser(context.Context, int64) ([]models.Ticket, error) {
	return []models.Ticket{}, nil
}

type authStub struct{}

func (authStub) Login(context.Context, *models.LoginRequest) (*models.LoginResponse, error) {
	return nil, services.ErrInvalidCredentials
}

func newTestRouter(t *testing.T) (*gin.Engine, *drawStub, *jwt.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()
	tokens, err := jwt.NewTokenService("secret", time.Hour)
	require.NoError(t, err)
	hub := realtime.NewHub(log, nil, nil)
	t.Cleanup(hub.Close)

	draws := &drawStub{}
	cfg := &config.Config{Server: config.ServerConfig{AllowedHosts: []string{"*"}}}
	router := SetupRouter(cfg, HandlerDependencies{
		AuthHandler:    handlers.NewAuthHandler(authStub{}),
		DrawHandler:    handlers.NewDrawHandler(draws),
		JackpotHandler: handlers.NewJackpotHandler(jackpotStub{}),
		TicketHandler:  handlers.NewTicketHandler(ticketStub{}),
		WSHandler:      handlers.NewWSHandler(hub, jackpotStub{}, log),
		Tokens:         tokens,
		Metrics:        metrics.New(),
		Logger:         log,
	})
	return router, draws, tokens
}

func serve(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPublicRoutes(t *testing.T) {
	r, _, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/health", "").Code)
	assert.JSONEq(t, `{"success":true,"jackpot":1000}`, serve(r, http.MethodGet, "/api/v1/jackpot", "").Body.String())
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/draws", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/v1/draws/x/results", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/tickets?userId=0", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/metrics", "").Code)
}

func TestRunDrawRequiresOperator(t *testing.T) {
	r, draws, tokens := newTestRouter(t)

	w := serve(r, http.MethodPost, "/api/v1/draws", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, draws.ran)

	token, _, err := tokens.Issue("admin", jwt.RoleOperator)
	require.NoError(t, err)
	w = serve(r, http.MethodPost, "/api/v1/draws", token)
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty pool")
	assert.True(t, draws.ran)
}
