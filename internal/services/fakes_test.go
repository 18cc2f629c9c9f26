package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ArowuTest/numbers-lottery-backend/internal/draw"
	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/ArowuTest/numbers-lottery-backend/internal/repositories"
	"github.com/shopspring/decimal"
)

var errStoreDown = errors.New("connection refused")

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets []models.Ticket
	listErr error
	counts  int
	// listGate, when set, blocks ListPaid until closed
	listGate chan struct{}
	entered  chan struct{}
}

func (r *fakeTicketRepo) ListPaid(ctx context.Context) ([]models.Ticket, error) {
	if r.entered != nil {
		r.entered <- struct{}{}
	}
	if r.listGate != nil {
		<-r.listGate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.Ticket
	for _, t := range r.tickets {
		if t.Paid {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) CountPaid(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts++
	if r.listErr != nil {
		return 0, r.listErr
	}
	var n int64
	for _, t := range r.tickets {
		if t.Paid {
			n++
		}
	}
	return n, nil
}

func (r *fakeTicketRepo) Create(ctx context.Context, t *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return r.listErr
	}
	t.ID = int64(len(r.tickets) + 1)
	t.CreatedAt = time.Now()
	r.tickets = append(r.tickets, *t)
	return nil
}

func (r *fakeTicketRepo) FindByUserID(ctx context.Context, userID int64) ([]models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Ticket{}
	for i := len(r.tickets) - 1; i >= 0; i-- {
		if r.tickets[i].UserID == userID {
			out = append(out, r.tickets[i])
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) addPaid(userID int64, numbers ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets = append(r.tickets, models.Ticket{ID: int64(len(r.tickets) + 1), UserID: userID, Numbers: numbers, Paid: true})
}

type fakeDrawStore struct {
	mu      sync.Mutex
	calls   int
	err     error
	draws   []models.Draw
	results map[string][]models.PrizeResult
}

func (s *fakeDrawStore) Settle(ctx context.Context, d *models.Draw, results []models.PrizeResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return s.err
	}
	if s.results == nil {
		s.results = make(map[string][]models.PrizeResult)
	}
	s.draws = append(s.draws, *d)
	s.results[d.ID] = results
	return nil
}

func (s *fakeDrawStore) ListRecent(ctx context.Context, limit int) ([]models.Draw, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := []models.Draw{}
	for i := len(s.draws) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.draws[i])
	}
	return out, nil
}

func (s *fakeDrawStore) FindByID(ctx context.Context, id string) (*models.Draw, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.draws {
		if d.ID == id {
			d := d
			return &d, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *fakeDrawStore) FindByDrawID(ctx context.Context, drawID string) ([]models.PrizeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results[drawID], nil
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	messages []interface{}
	err      error
}

func (b *fakeBroadcaster) Broadcast(v interface{}) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return 0, b.err
	}
	b.messages = append(b.messages, v)
	return 1, nil
}

func (b *fakeBroadcaster) last() interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.messages) == 0 {
		return nil
	}
	return b.messages[len(b.messages)-1]
}

type fakeNotifier struct {
	mu      sync.Mutex
	results []models.PrizeResult
}

func (n *fakeNotifier) NotifyWinners(d *models.Draw, results []models.PrizeResult) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.results = append(n.results, results...)
	return len(results)
}

// fixedSource yields vals in order, reduced into range.
type fixedSource struct {
	mu   sync.Mutex
	vals []int
	i    int
}

func (s *fixedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

// winningOneToFive makes the sampler draw 1, 2, 3, 4, 5.
func winningOneToFive() *draw.Sampler {
	s, err := draw.NewSampler(draw.DefaultNumberRange, draw.DefaultPickCount, &fixedSource{vals: []int{0, 1, 2, 3, 4}})
	if err != nil {
		panic(err)
	}
	return s
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func int64Ptr(v int64) *int64 { return &v }
