package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ArowuTest/numbers-lottery-backend/internal/metrics"
	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/ArowuTest/numbers-lottery-backend/pkg/messenger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var _ WinnerNotifier = (*NotificationService)(nil)

var (
	errQueueFull       = errors.New("notification queue full")
	errNotifierStopped = errors.New("notifier stopped")
)

// NotifierOptions sizes and throttles winner delivery
type NotifierOptions struct {
	Workers       int
	QueueSize     int
	RatePerSecond float64
	Burst         int
	Currency      string
}

type winnerNotice struct {
	winning []int
	result  models.PrizeResult
}

// NotificationService delivers winner messages from a bounded queue. Failed
// deliveries are logged as dead letters and never retried.
type NotificationService struct {
	gateway  messenger.Gateway
	limiter  *rate.Limiter
	queue    chan winnerNotice
	workers  int
	currency string
	metrics  *metrics.Metrics
	log      logrus.FieldLogger

	mu      sync.RWMutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(gateway messenger.Gateway, opts NotifierOptions, m *metrics.Metrics, log logrus.FieldLogger) *NotificationService {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 1
	}
	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}
	return &NotificationService{
		gateway:  gateway,
		limiter:  rate.NewLimiter(limit, opts.Burst),
		queue:    make(chan winnerNotice, opts.QueueSize),
		workers:  opts.Workers,
		currency: opts.Currency,
		metrics:  m,
		log:      log,
	}
}

// Start launches the delivery workers
func (s *NotificationService) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	ctx, s.cancel = context.WithCancel(ctx)
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(ctx)
	}
}

// Stop refuses new notices, drains the queue and waits for the workers
func (s *NotificationService) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.queue)
	started := s.started
	s.mu.Unlock()

	if !started {
		for n := range s.queue {
			s.deadLetter(n, errNotifierStopped, metrics.NotificationDropped)
		}
		return
	}
	s.wg.Wait()
	s.cancel()
}

// NotifyWinners queues one notice per result and returns how many were queued.
// Results without a messaging identity are skipped. It never blocks.
func (s *NotificationService) NotifyWinners(draw *models.Draw, results []models.PrizeResult) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	queued := 0
	for _, r := range results {
		if r.UserID == 0 {
			s.metrics.Notification(metrics.NotificationNoIdentity)
			continue
		}
		n := winnerNotice{winning: draw.WinningNumbers, result: r}
		if s.stopped {
			s.deadLetter(n, errNotifierStopped, metrics.NotificationDropped)
			continue
		}
		select {
		case s.queue <- n:
			queued++
		default:
			s.deadLetter(n, errQueueFull, metrics.NotificationDropped)
		}
	}
	return queued
}

func (s *NotificationService) worker(ctx context.Context) {
	defer s.wg.Done()
	for n := range s.queue {
		s.deliver(ctx, n)
	}
}

func (s *NotificationService) deliver(ctx context.Context, n winnerNotice) {
	if err := s.limiter.Wait(ctx); err != nil {
		s.deadLetter(n, err, metrics.NotificationFailed)
		return
	}
	text := WinnerMessage(n.result.Prize, s.currency, n.result.Matches, n.winning, n.result.TicketID)
	if err := s.gateway.SendMessage(ctx, n.result.UserID, text); err != nil {
		s.deadLetter(n, err, metrics.NotificationFailed)
		return
	}
	s.metrics.Notification(metrics.NotificationSent)
}

func (s *NotificationService) deadLetter(n winnerNotice, cause error, status string) {
	err := &NotificationDeliveryError{UserID: n.result.UserID, TicketID: n.result.TicketID, Err: cause}
	s.metrics.Notification(status)
	s.log.WithFields(logrus.Fields{
		"deadLetter": true,
		"drawId":     n.result.DrawID,
		"userId":     n.result.UserID,
		"ticketId":   n.result.TicketID,
		"prize":      n.result.Prize.String(),
	}).WithError(err).Warn("Winner notification not delivered")
}

// WinnerMessage renders the text sent to a winner
func WinnerMessage(prize decimal.Decimal, currency string, matches int, winning []int, ticketID int64) string {
	nums := make([]string, len(winning))
	for i, n := range winning {
		nums[i] = fmt.Sprint(n)
	}
	return fmt.Sprintf("🎉 You won %s %s!\nMatches: %d\nWinning numbers: %s\nTicket ID: %d\nCongratulations!",
		prize.StringFixed(2), currency, matches, strings.Join(nums, ", "), ticketID)
}
