// Package metrics exports ledger telemetry to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/talx-hub/points-ledger/internal/model/bonus"
)

const namespace = "ledger"

type Metrics struct {
	registry *prometheus.Registry

	MutationsTotal   *prometheus.CounterVec
	MutationRetries  *prometheus.CounterVec
	MutationDuration *prometheus.HistogramVec
	MutationsBusy    prometheus.Counter
	ReconcileDrift   prometheus.Counter
	ReconcileRuns    *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers every metric on a private registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		MutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mutations_total",
				Help:      "Balance mutations by strategy, direction and outcome",
			},
			[]string{"strategy", "direction", "outcome"},
		),
		MutationRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mutation_retries_total",
				Help:      "Internal mutation retries by strategy and reason",
			},
			[]string{"strategy", "reason"},
		),
		MutationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "mutation_duration_seconds",
				Help:      "Duration of balance mutations including retries",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"strategy"},
		),
		MutationsBusy: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mutations_rejected_busy_total",
				Help:      "Mutations rejected because too many were in flight",
			},
		),
		ReconcileDrift: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reconcile_drift_total",
				Help:      "Accounts found with a balance that disagrees with the log",
			},
		),
		ReconcileRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reconcile_runs_total",
				Help:      "Reconciliation passes by result",
			},
			[]string{"result"},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (m *Metrics) ObserveMutation(strategy string, direction bonus.TransactionType,
	outcome string, took time.Duration,
) {
	m.MutationsTotal.WithLabelValues(strategy, string(direction), outcome).Inc()
	m.MutationDuration.WithLabelValues(strategy).Observe(took.Seconds())
}

func (m *Metrics) ObserveRetry(strategy, reason string) {
	m.MutationRetries.WithLabelValues(strategy, reason).Inc()
}

func (m *Metrics) ObserveBusy() {
	m.MutationsBusy.Inc()
}

func (m *Metrics) ObserveReconcile(drifts int, err error) {
	if err != nil {
		m.ReconcileRuns.WithLabelValues("error").Inc()
		return
	}
	m.ReconcileRuns.WithLabelValues("ok").Inc()
	m.ReconcileDrift.Add(float64(drifts))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records every request under its chi route pattern so that
// path parameters do not explode the label space.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	}
	return http.HandlerFunc(fn)
}
