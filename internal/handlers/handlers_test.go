package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/ArowuTest/numbers-lottery-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type stubDrawService struct {
	outcome   *models.DrawOutcome
	runErr    error
	draws     []models.Draw
	listLimit int
	draw      *models.Draw
	results   []models.PrizeResult
	err       error
}

func (s *stubDrawService) RunDraw(context.Context) (*models.DrawOutcome, error) {
	return s.outcome, s.runErr
}

func (s *stubDrawService) ListRecentDraws(_ context.Context, limit int) ([]models.Draw, error) {
	s.listLimit = limit
	return s.draws, s.err
}

func (s *stubDrawService) GetResults(context.Context, string) (*models.Draw, []models.PrizeResult, error) {
	return s.draw, s.results, s.err
}

type stubJackpot struct {
	value decimal.Decimal
	err   error
}

func (s stubJackpot) Current(context.Context) (decimal.Decimal, error)   { return s.value, s.err }
func (s stubJackpot) Broadcast(context.Context) (decimal.Decimal, error) { return s.value, s.err }

type stubTickets struct {
	got  *models.BuyTicketsRequest
	err  error
	list []models.Ticket
}

func (s *stubTickets) Buy(_ context.Context, req *models.BuyTicketsRequest) ([]models.Ticket, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return []models.Ticket{{ID: 1, UserID: *req.UserID, Numbers: req.Tickets[0], Paid: req.Paid}}, nil
}

func (s *stubTickets) ListByUser(context.Context, int64) ([]models.Ticket, error) {
	return s.list, s.err
}

type stubAuth struct{ err error }

func (s stubAuth) Login(context.Context, *models.LoginRequest) (*models.LoginResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.LoginResponse{Token: "signed", ExpiresAt: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)}, nil
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func drawRouter(svc services.DrawService) *gin.Engine {
	h := NewDrawHandler(svc)
	r := gin.New()
	r.POST("/draws", h.RunDraw)
	r.GET("/draws", h.ListDraws)
	r.GET("/draws/:id/results", h.GetResults)
	r.GET("/draws/:id/export", h.ExportResults)
	return r
}

func TestRunDrawResponse(t *testing.T) {
	svc := &stubDrawService{outcome: &models.DrawOutcome{
		Draw:    models.Draw{ID: "d1", WinningNumbers: []int{1, 2, 3, 4, 5}, TicketCount: 10, TotalFund: dec("5")},
		Results: []models.PrizeResult{
			{ID: "r1", DrawID: "d1", TicketID: 7, UserID: 42, Matches: 5, Prize: dec("2")},
		},
		WinnersByMatchCount: map[int]int{5: 1, 4: 0, 3: 0, 2: 0, 1: 0},
		TierFunds:           map[int]decimal.Decimal{5: dec("2"), 4: dec("1.5")},
		PrizePerWinner:      map[int]decimal.Decimal{5: dec("2")},
		Unallocated:         dec("3"),
	}}

	w := do(drawRouter(svc), http.MethodPost, "/draws", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "d1", body["drawId"])
	assert.Equal(t, []interface{}{1.0, 2.0, 3.0, 4.0, 5.0}, body["winningNumbers"])
	assert.Equal(t, map[string]interface{}{"5": 1.0, "4": 0.0, "3": 0.0, "2": 0.0, "1": 0.0}, body["winnersByMatchCount"])

	byTier := body["winnersByMatches"].(map[string]interface{})
	require.Len(t, byTier, 5)
	assert.Equal(t, []interface{}{
		map[string]interface{}{"ticketId": 7.0, "userId": 42.0, "prize": 2.0},
	}, byTier["5"])
	for _, tier := range []string{"1", "2", "3", "4"} {
		assert.Equal(t, []interface{}{}, byTier[tier], "tier %s", tier)
	}
	assert.Equal(t, map[string]interface{}{"5": 2.0}, body["prizePerWinner"])
	assert.Equal(t, 5.0, body["totalFund"])
	assert.Equal(t, 3.0, body["unallocated"])
}

func TestRunDrawErrorStatuses(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrDrawInProgress, http.StatusConflict},
		{services.ErrEmptyPool, http.StatusBadRequest},
		{&services.StorageError{Op: "settle draw", Err: errors.New("connection refused")}, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := do(drawRouter(&stubDrawService{runErr: tc.err}), http.MethodPost, "/draws", "")
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.NotContains(t, w.Body.String(), "connection refused")
	}
}

func TestListDraws(t *testing.T) {
	svc := &stubDrawService{draws: []models.Draw{{ID: "d2", TotalFund: dec("6")}, {ID: "d1", TotalFund: dec("5")}}}
	r := drawRouter(svc)

	w := do(r, http.MethodGet, "/draws?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, svc.listLimit)
	draws := decode(t, w)["draws"].([]interface{})
	require.Len(t, draws, 2)
	assert.Equal(t, "d2", draws[0].(map[string]interface{})["id"])
	assert.Equal(t, 6.0, draws[0].(map[string]interface{})["totalFund"])

	do(r, http.MethodGet, "/draws", "")
	assert.Equal(t, 0, svc.listLimit, "no limit defers to the service default")

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/draws?limit=-3", "").Code)
}

func TestGetResults(t *testing.T) {
	svc := &stubDrawService{
		draw:    &models.Draw{ID: "d1", WinningNumbers: []int{1, 2, 3, 4, 5}},
		results: []models.PrizeResult{{ID: "r1", DrawID: "d1", TicketID: 7, UserID: 42, Matches: 5, Prize: dec("2")}},
	}
	w := do(drawRouter(svc), http.MethodGet, "/draws/d1/results", "")
	require.Equal(t, http.StatusOK, w.Code)
	results := decode(t, w)["results"].([]interface{})
	require.Len(t, results, 1)
	assert.Equal(t, 2.0, results[0].(map[string]interface{})["prize"])

	w = do(drawRouter(&stubDrawService{err: services.ErrDrawNotFound}), http.MethodGet, "/draws/nope/results", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportResults(t *testing.T) {
	svc := &stubDrawService{
		draw:    &models.Draw{ID: "d1", WinningNumbers: []int{1, 2, 3, 4, 5}},
		results: []models.PrizeResult{{ID: "r1", DrawID: "d1", TicketID: 7, UserID: 42, Matches: 5, Prize: dec("2")}},
	}
	w := do(drawRouter(svc), http.MethodGet, "/draws/d1/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "draw-d1.csv")
	assert.Contains(t, w.Body.String(), "d1,1 2 3 4 5,7,42,5,2\n")
}

func TestGetJackpot(t *testing.T) {
	r := gin.New()
	r.GET("/jackpot", NewJackpotHandler(stubJackpot{value: dec("1005")}).GetJackpot)
	w := do(r, http.MethodGet, "/jackpot", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"jackpot":1005}`, w.Body.String())

	r = gin.New()
	r.GET("/jackpot", NewJackpotHandler(stubJackpot{err: &services.StorageError{Op: "count", Err: errors.New("down")}}).GetJackpot)
	assert.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodGet, "/jackpot", "").Code)
}

func TestTicketHandler(t *testing.T) {
	svc := &stubTickets{list: []models.Ticket{{ID: 3, UserID: 42, Numbers: []int{1, 2, 3, 4, 5}}}}
	h := NewTicketHandler(svc)
	r := gin.New()
	r.POST("/tickets", h.BuyTickets)
	r.GET("/tickets", h.ListTickets)

	w := do(r, http.MethodPost, "/tickets", `{"userId":42,"tickets":[[1,2,3,4,5]],"paid":true}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, int64(42), *svc.got.UserID)
	assert.True(t, svc.got.Paid)
	assert.Equal(t, []interface{}{1.0}, decode(t, w)["ticketIds"])

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/tickets", `{"userId":42}`).Code)

	svc.got = nil
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/tickets", `{"tickets":[[1,2,3,4,5]]}`).Code)
	assert.Nil(t, svc.got, "missing userId never reaches the service")

	w = do(r, http.MethodPost, "/tickets", `{"userId":0,"tickets":[[1,2,3,4,5]]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, int64(0), *svc.got.UserID)

	svc.err = services.ErrInvalidTicket
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/tickets", `{"userId":1,"tickets":[[1,1,1,1,1]]}`).Code)
	svc.err = nil

	w = do(r, http.MethodGet, "/tickets?userId=42", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["tickets"], 1)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/tickets?userId=abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/tickets", "").Code)
}

func TestLogin(t *testing.T) {
	r := gin.New()
	r.POST("/login", NewAuthHandler(stubAuth{}).Login)
	w := do(r, http.MethodPost, "/login", `{"username":"admin","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "signed", decode(t, w)["token"])

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/login", `{"username":"admin"}`).Code)

	r = gin.New()
	r.POST("/login", NewAuthHandler(stubAuth{err: services.ErrInvalidCredentials}).Login)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/login", `{"username":"admin","password":"bad"}`).Code)
}
