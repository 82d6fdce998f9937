package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Котировки
	QuoteRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_refresh_total",
			Help: "Quote refresh attempts per pair.",
		},
		[]string{"pair", "result"}, // ok|error
	)

	// Фоновые циклы
	WorkerTicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_ticks_total",
			Help: "Background loop iterations.",
		},
		[]string{"worker", "result"}, // ok|error|panic
	)

	TransactionsExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "transactions_expired_total",
			Help: "Pending transactions cancelled by the expiry sweeper.",
		},
	)

	TransactionsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "transactions_created_total",
			Help: "Transactions recorded.",
		},
	)

	registerOnce sync.Once
)

// Handler обработчик /metrics
var Handler = promhttp.Handler

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPLatency,
			QuoteRefreshTotal,
			WorkerTicksTotal,
			TransactionsExpiredTotal,
			TransactionsCreatedTotal,
		)
	})
}
