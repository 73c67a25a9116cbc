package reconciler

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/points-ledger/internal/ledger"
	"github.com/talx-hub/points-ledger/internal/ledger/memstore"
	"github.com/talx-hub/points-ledger/internal/model/bonus"
)

type stubFinder struct {
	err    error
	drifts []ledger.Drift
	calls  atomic.Int32
}

func (s *stubFinder) FindDrifts(context.Context) ([]ledger.Drift, error) {
	s.calls.Add(1)
	return s.drifts, s.err
}

type recordingObserver struct {
	drifts int
	errs   int
}

func (o *recordingObserver) ObserveReconcile(drifts int, err error) {
	if err != nil {
		o.errs++
		return
	}
	o.drifts += drifts
}

func TestReconciler_Check(t *testing.T) {
	drift := ledger.Drift{AccountID: "a", OwnerID: "o", Balance: 10, LedgerSum: 5, LastSnapshot: 5}

	tests := []struct {
		name       string
		finder     *stubFinder
		wantDrifts int
		wantErrs   int
	}{
		{name: "consistent", finder: &stubFinder{}},
		{name: "drift", finder: &stubFinder{drifts: []ledger.Drift{drift}}, wantDrifts: 1},
		{name: "store failure", finder: &stubFinder{err: errors.New("db down")}, wantErrs: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &recordingObserver{}
			r := New(tt.finder, obs, time.Minute)

			got := r.Check(context.Background())
			assert.Len(t, got, tt.wantDrifts)
			assert.Equal(t, tt.wantDrifts, obs.drifts)
			assert.Equal(t, tt.wantErrs, obs.errs)
		})
	}
}

func TestReconciler_Check_memstore_consistent(t *testing.T) {
	store := memstore.New()
	m, err := ledger.NewMutator(ledger.StrategyPessimistic, store, slog.Default(), nil)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = m.Mutate(ctx, ledger.MutateRequest{OwnerID: "owner", Direction: bonus.TypeEarn, Amount: 40})
	require.NoError(t, err)
	_, err = m.Mutate(ctx, ledger.MutateRequest{OwnerID: "owner", Direction: bonus.TypeBurn, Amount: 15})
	require.NoError(t, err)

	assert.Empty(t, New(store, nil, time.Minute).Check(ctx))
}

func TestReconciler_Run(t *testing.T) {
	finder := &stubFinder{}
	r := New(finder, nil, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return finder.calls.Load() >= 2 },
		time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reconciler did not stop")
	}
}

func TestReconciler_Run_disabled(t *testing.T) {
	finder := &stubFinder{}
	r := New(finder, nil, 0)

	r.Run(context.Background())
	assert.Equal(t, int32(0), finder.calls.Load())
}
