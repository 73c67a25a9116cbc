package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/points-ledger/internal/model/bonus"
)

func TestMetrics_ObserveMutation(t *testing.T) {
	m := New()
	m.ObserveMutation("optimistic", bonus.TypeEarn, "applied", 10*time.Millisecond)
	m.ObserveMutation("optimistic", bonus.TypeEarn, "applied", 20*time.Millisecond)
	m.ObserveMutation("pessimistic", bonus.TypeBurn, "insufficient_balance", time.Millisecond)
	m.ObserveRetry("optimistic", "version_conflict")

	assert.InDelta(t, 2, testutil.ToFloat64(
		m.MutationsTotal.WithLabelValues("optimistic", "EARN", "applied")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(
		m.MutationsTotal.WithLabelValues("pessimistic", "BURN", "insufficient_balance")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(
		m.MutationRetries.WithLabelValues("optimistic", "version_conflict")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.MutationDuration))
}

func TestMetrics_ObserveReconcile(t *testing.T) {
	m := New()
	m.ObserveReconcile(2, nil)
	m.ObserveReconcile(0, nil)
	m.ObserveReconcile(5, errors.New("db down"))

	assert.InDelta(t, 2, testutil.ToFloat64(m.ReconcileDrift), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.ReconcileRuns.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ReconcileRuns.WithLabelValues("error")), 0)
}

func TestMetrics_Middleware_uses_route_pattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/rules/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rules/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.InDelta(t, 2, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/rules/{id}", "418")), 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveBusy()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ledger_mutations_rejected_busy_total 1")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
