package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lottery"

// Draw outcome labels
const (
	DrawSettled    = "settled"
	DrawEmptyPool  = "empty_pool"
	DrawInProgress = "in_progress"
	DrawFailed     = "failed"
)

// Notification outcome labels
const (
	NotificationSent       = "sent"
	NotificationFailed     = "failed"
	NotificationDropped    = "dropped"
	NotificationNoIdentity = "skipped"
)

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	draws         *prometheus.CounterVec
	drawDuration  prometheus.Histogram
	prizeResults  prometheus.Counter
	notifications *prometheus.CounterVec
	viewers       prometheus.Gauge
	jackpot       prometheus.Gauge
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		draws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draws_total",
			Help:      "Draw attempts by outcome.",
		}, []string{"status"}),
		drawDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "draw_duration_seconds",
			Help:      "Time from lock acquisition to settlement.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		prizeResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prize_results_total",
			Help:      "Prize results persisted.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Winner notifications by outcome.",
		}, []string{"status"}),
		viewers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_viewers",
			Help:      "Connected live viewers.",
		}),
		jackpot: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "jackpot_estimate",
			Help:      "Last published jackpot estimate.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "path"}),
	}

	m.Registry.MustRegister(
		m.draws,
		m.drawDuration,
		m.prizeResults,
		m.notifications,
		m.viewers,
		m.jackpot,
		m.httpRequests,
		m.httpDuration,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// The recording methods below are no-ops on a nil *Metrics.

func (m *Metrics) DrawAttempt(status string) {
	if m != nil {
		m.draws.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) DrawDuration(d time.Duration) {
	if m != nil {
		m.drawDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) PrizeResults(n int) {
	if m != nil {
		m.prizeResults.Add(float64(n))
	}
}

func (m *Metrics) Notification(status string) {
	if m != nil {
		m.notifications.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) Viewers(n int) {
	if m != nil {
		m.viewers.Set(float64(n))
	}
}

func (m *Metrics) Jackpot(v float64) {
	if m != nil {
		m.jackpot.Set(v)
	}
}

// HTTPRequest records one handled request.
func (m *Metrics) HTTPRequest(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}
