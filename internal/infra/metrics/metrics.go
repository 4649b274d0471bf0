// Package metrics exposes Prometheus collectors for the bot, the admin API,
// the broadcast engine and the scheduled sweeps. Collectors register on the
// default registry and are served by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	gobreaker "github.com/sony/gobreaker/v2"
)

var (
	// Telegram transport
	TelegramRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_requests_total",
			Help: "Telegram Bot API calls by method and result",
		},
		[]string{"method", "result"}, // result: success, failure, rejected
	)

	TelegramRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "telegram_request_duration_seconds",
			Help:    "Duration of Telegram Bot API calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	TelegramRateLimitWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "telegram_rate_limit_wait_seconds",
			Help:    "Time spent waiting for the outbound rate limiter",
			Buckets: []float64{.001, .01, .05, .1, .5, 1, 5},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Conversation
	UpdatesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Inbound updates by outcome",
		},
		[]string{"outcome"}, // handled, duplicate, failed
	)

	Registrations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_registrations_total",
			Help: "Completed onboarding flows",
		},
	)

	// Broadcast
	BroadcastRecipients = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_recipients_total",
			Help: "Broadcast send attempts by result",
		},
		[]string{"kind", "result"},
	)

	BroadcastDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "broadcast_duration_seconds",
			Help:    "Wall time of a whole broadcast batch",
			Buckets: []float64{.1, .5, 1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"kind"},
	)

	// Scheduler
	SweepRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sweep_runs_total",
			Help: "Scheduled sweep executions by result",
		},
		[]string{"sweep", "result"},
	)

	SweepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sweep_duration_seconds",
			Help:    "Duration of scheduled sweeps",
			Buckets: []float64{.01, .1, .5, 1, 5, 10, 30, 60},
		},
		[]string{"sweep"},
	)

	SweepNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sweep_notifications_total",
			Help: "Messages dispatched by scheduled sweeps",
		},
		[]string{"sweep"},
	)

	SweepSkippedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sweep_skipped_records_total",
			Help: "Records skipped because they could not be parsed",
		},
		[]string{"sweep"},
	)

	// Admin API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Admin API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Admin API latency",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "route"},
	)
)

func BreakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func ResultLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
