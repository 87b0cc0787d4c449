package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SscSPs/financeflow/internal/core/domain"
)

const namespace = "financeflow"

// Recorder owns the application's Prometheus collectors and the registry they live in.
type Recorder struct {
	registry *prometheus.Registry

	recomputes         prometheus.Counter
	recomputeDuration  prometheus.Histogram
	journalEntries     prometheus.Gauge
	ledgerAccounts     prometheus.Gauge
	trialBalanceOK     prometheus.Gauge
	classificationGaps prometheus.Counter

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewRecorder registers all collectors, plus the Go and process collectors, in a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		recomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recomputes_total",
			Help:      "Full rebuilds of ledgers, trial balance and summary.",
		}),
		recomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recompute_duration_seconds",
			Help:      "Time spent rebuilding derived artifacts.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		journalEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "journal_entries",
			Help:      "Entries in the journal after the last rebuild.",
		}),
		ledgerAccounts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_accounts",
			Help:      "Distinct accounts after the last rebuild.",
		}),
		trialBalanceOK: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "trial_balance_balanced",
			Help:      "1 when total debits equal total credits after the last rebuild.",
		}),
		classificationGaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classification_gaps_total",
			Help:      "Accounts defaulted to an account type because no rule matched, summed over rebuilds.",
		}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.recomputes,
		r.recomputeDuration,
		r.journalEntries,
		r.ledgerAccounts,
		r.trialBalanceOK,
		r.classificationGaps,
		r.httpInFlight,
		r.httpRequestsTotal,
		r.httpRequestDuration,
	)
	return r
}

// ObserveRecompute records one rebuild.
func (r *Recorder) ObserveRecompute(stats domain.RecomputeStats) {
	r.recomputes.Inc()
	r.recomputeDuration.Observe(stats.Duration.Seconds())
	r.journalEntries.Set(float64(stats.Entries))
	r.ledgerAccounts.Set(float64(stats.Accounts))
	r.classificationGaps.Add(float64(stats.ClassificationGaps))
	if stats.Balanced {
		r.trialBalanceOK.Set(1)
	} else {
		r.trialBalanceOK.Set(0)
	}
}

// Middleware measures request count, latency and in-flight requests per matched route.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		r.httpInFlight.Inc()
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		r.httpRequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		r.httpRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		r.httpInFlight.Dec()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
