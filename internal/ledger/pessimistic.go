package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/model/wallet"
	"github.com/talx-hub/points-ledger/internal/serviceerrs"
)

// PessimisticMutator serializes mutations of one account behind an
// exclusive row lock held for the whole read-check-compute-write section.
// A missing account is created with zero balance under the same lock.
type PessimisticMutator struct {
	store Store
	log   *slog.Logger
	obs   Observer
	guard Guard
}

func NewPessimisticMutator(store Store, log *slog.Logger, obs Observer) *PessimisticMutator {
	if obs == nil {
		obs = nopObserver{}
	}
	return &PessimisticMutator{
		store: store,
		log:   log,
		obs:   obs,
	}
}

func (m *PessimisticMutator) Mutate(ctx context.Context, req MutateRequest,
) (res MutateResult, err error) {
	start := time.Now()
	defer func() {
		m.obs.ObserveMutation(StrategyPessimistic, req.Direction,
			outcomeOf(err, res.Applied), time.Since(start))
		logMutation(ctx, m.log, StrategyPessimistic, req, res, err)
	}()

	if err = req.normalize(); err != nil {
		return MutateResult{}, err
	}

	err = m.store.InTx(ctx, func(ctx context.Context, tx StoreTx) error {
		acc, err := lockOrCreate(ctx, tx, req.OwnerID)
		if err != nil {
			return err
		}

		replay, err := m.guard.Exists(ctx, tx, acc.ID, req.ExternalRef)
		if err != nil {
			return err
		}
		if replay {
			res = MutateResult{Balance: acc.Balance, Applied: false}
			return nil
		}

		balance, err := nextBalance(acc.Balance, req)
		if err != nil {
			return err
		}

		ok, err := tx.UpdateBalance(ctx, acc.ID, balance, acc.Version)
		if err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: version of locked account %s moved",
				serviceerrs.ErrUnexpected, acc.ID)
		}

		if err = tx.InsertTransaction(ctx, newTransaction(acc.ID, req, balance)); err != nil {
			return fmt.Errorf("failed to append transaction: %w", err)
		}

		res = MutateResult{Balance: balance, Applied: true}
		return nil
	})
	if err != nil {
		return MutateResult{}, err //nolint: wrapcheck // error from wrapped function
	}
	return res, nil
}

func lockOrCreate(ctx context.Context, tx StoreTx, ownerID string) (wallet.Account, error) {
	acc, err := tx.LockAccount(ctx, ownerID)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, serviceerrs.ErrNotFound) {
		return wallet.Account{}, fmt.Errorf("failed to lock account: %w", err)
	}

	if _, err = tx.CreateAccount(ctx, newAccount(ownerID, 0)); err != nil {
		return wallet.Account{}, fmt.Errorf("failed to create account: %w", err)
	}
	acc, err = tx.LockAccount(ctx, ownerID)
	if err != nil {
		return wallet.Account{}, fmt.Errorf("failed to lock created account: %w", err)
	}
	return acc, nil
}

// DeadlockRetrier repeats a mutation that the store aborted as a deadlock
// victim, backing off a little longer each time. Once attempts run out the
// caller gets serviceerrs.ErrLockConflict.
type DeadlockRetrier struct {
	next     Mutator
	log      *slog.Logger
	obs      Observer
	attempts int
	backoff  time.Duration
}

func NewDeadlockRetrier(next Mutator, log *slog.Logger, obs Observer) *DeadlockRetrier {
	if obs == nil {
		obs = nopObserver{}
	}
	return &DeadlockRetrier{
		next:     next,
		log:      log,
		obs:      obs,
		attempts: model.PessimisticMaxAttempts,
		backoff:  model.DeadlockBackoffStep,
	}
}

func (r *DeadlockRetrier) Mutate(ctx context.Context, req MutateRequest) (MutateResult, error) {
	for attempt := 1; ; attempt++ {
		res, err := r.next.Mutate(ctx, req)
		if !errors.Is(err, serviceerrs.ErrDeadlock) {
			return res, err
		}
		if attempt >= r.attempts {
			return MutateResult{}, fmt.Errorf("%w: %w", serviceerrs.ErrLockConflict, err)
		}

		r.obs.ObserveRetry(StrategyPessimistic, "deadlock")
		delay := r.backoff * time.Duration(attempt)
		r.log.LogAttrs(ctx,
			slog.LevelWarn,
			"deadlock detected, retrying mutation",
			slog.String("owner_id", req.OwnerID),
			slog.Int("attempt", attempt),
			slog.Duration("backoff", delay),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return MutateResult{}, fmt.Errorf("mutation cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	}
}
