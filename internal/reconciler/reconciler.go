// Package reconciler periodically checks that every account balance still
// equals the sum of its signed transaction deltas.
package reconciler

import (
	"context"
	"log/slog"
	"time"

	"github.com/talx-hub/points-ledger/internal/ledger"
	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/utils/logger"
)

type driftFinder interface {
	FindDrifts(ctx context.Context) ([]ledger.Drift, error)
}

type Observer interface {
	ObserveReconcile(drifts int, err error)
}

type Reconciler struct {
	store    driftFinder
	obs      Observer
	interval time.Duration
	timeout  time.Duration
}

func New(store driftFinder, obs Observer, interval time.Duration) *Reconciler {
	return &Reconciler{
		store:    store,
		obs:      obs,
		interval: interval,
		timeout:  model.DefaultReconcileTimeout,
	}
}

// Run blocks until ctx is done. A non-positive interval disables the job.
func (r *Reconciler) Run(ctx context.Context) {
	log := logger.FromContext(ctx).With("service", "reconciler")
	if r.interval <= 0 {
		log.LogAttrs(ctx, slog.LevelInfo, "disabled")
		return
	}
	log.LogAttrs(ctx, slog.LevelInfo, "running", slog.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.LogAttrs(ctx, slog.LevelInfo, "stop signal received, exiting...")
			return
		case <-ticker.C:
			r.Check(ctx)
		}
	}
}

// Check runs one pass and returns the drifted accounts it found.
func (r *Reconciler) Check(ctx context.Context) []ledger.Drift {
	log := logger.FromContext(ctx).With("service", "reconciler")

	checkCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	drifts, err := r.store.FindDrifts(checkCtx)
	if r.obs != nil {
		r.obs.ObserveReconcile(len(drifts), err)
	}
	if err != nil {
		log.LogAttrs(ctx,
			slog.LevelError,
			"failed to reconcile balances",
			slog.Any(model.KeyLoggerError, err),
		)
		return nil
	}

	for _, d := range drifts {
		log.LogAttrs(ctx,
			slog.LevelError,
			"balance disagrees with transaction log",
			slog.String("account_id", d.AccountID),
			slog.String("owner_id", d.OwnerID),
			slog.Int64("balance", d.Balance),
			slog.Int64("ledger_sum", d.LedgerSum),
			slog.Int64("last_snapshot", d.LastSnapshot),
		)
	}
	if len(drifts) == 0 {
		log.LogAttrs(ctx, slog.LevelDebug, "balances consistent")
	}
	return drifts
}
