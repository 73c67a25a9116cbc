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

type attemptKind int

const (
	attemptCommitted attemptKind = iota
	attemptReplayed
	attemptConflict
)

type attemptOutcome struct {
	kind    attemptKind
	balance int64
}

// OptimisticMutator reads the account without locking it and commits only
// if the version it read is still current. A lost race restarts the whole
// read-check-compute-commit cycle.
type OptimisticMutator struct {
	store       Store
	log         *slog.Logger
	obs         Observer
	guard       Guard
	maxAttempts int
}

func NewOptimisticMutator(store Store, log *slog.Logger, obs Observer) *OptimisticMutator {
	if obs == nil {
		obs = nopObserver{}
	}
	return &OptimisticMutator{
		store:       store,
		log:         log,
		obs:         obs,
		maxAttempts: model.OptimisticMaxAttempts,
	}
}

func (m *OptimisticMutator) Mutate(ctx context.Context, req MutateRequest,
) (res MutateResult, err error) {
	start := time.Now()
	defer func() {
		m.obs.ObserveMutation(StrategyOptimistic, req.Direction,
			outcomeOf(err, res.Applied), time.Since(start))
		logMutation(ctx, m.log, StrategyOptimistic, req, res, err)
	}()

	if err = req.normalize(); err != nil {
		return MutateResult{}, err
	}

	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		if err = ctx.Err(); err != nil {
			return MutateResult{}, fmt.Errorf("mutation cancelled: %w", err)
		}

		out, attemptErr := m.attempt(ctx, req)
		if attemptErr != nil {
			return MutateResult{}, attemptErr
		}

		switch out.kind {
		case attemptCommitted:
			return MutateResult{Balance: out.balance, Applied: true}, nil
		case attemptReplayed:
			return MutateResult{Balance: out.balance, Applied: false}, nil
		case attemptConflict:
			m.obs.ObserveRetry(StrategyOptimistic, "version_conflict")
			m.log.LogAttrs(ctx,
				slog.LevelDebug,
				"version conflict, reloading account",
				slog.String("owner_id", req.OwnerID),
				slog.Int("attempt", attempt),
			)
		}
	}

	return MutateResult{}, fmt.Errorf("%w: %d attempts for owner %s",
		serviceerrs.ErrConcurrencyExhausted, m.maxAttempts, req.OwnerID)
}

func (m *OptimisticMutator) attempt(ctx context.Context, req MutateRequest,
) (attemptOutcome, error) {
	var out attemptOutcome
	err := m.store.InTx(ctx, func(ctx context.Context, tx StoreTx) error {
		acc, found, err := readAccount(ctx, tx, req.OwnerID)
		if err != nil {
			return err
		}

		replay, err := m.guard.Exists(ctx, tx, acc.ID, req.ExternalRef)
		if err != nil {
			return err
		}
		if replay {
			out = attemptOutcome{kind: attemptReplayed, balance: acc.Balance}
			return nil
		}

		balance, err := nextBalance(acc.Balance, req)
		if err != nil {
			return err
		}

		if found {
			ok, err := tx.UpdateBalance(ctx, acc.ID, balance, acc.Version)
			if err != nil {
				return fmt.Errorf("failed to update balance: %w", err)
			}
			if !ok {
				return serviceerrs.ErrConcurrencyConflict
			}
		} else {
			acc = newAccount(req.OwnerID, balance)
			created, err := tx.CreateAccount(ctx, acc)
			if err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}
			if !created {
				return serviceerrs.ErrConcurrencyConflict
			}
		}

		err = tx.InsertTransaction(ctx, newTransaction(acc.ID, req, balance))
		if errors.Is(err, serviceerrs.ErrDuplicateExternalRef) {
			return serviceerrs.ErrConcurrencyConflict
		}
		if err != nil {
			return fmt.Errorf("failed to append transaction: %w", err)
		}

		out = attemptOutcome{kind: attemptCommitted, balance: balance}
		return nil
	})
	if errors.Is(err, serviceerrs.ErrConcurrencyConflict) {
		return attemptOutcome{kind: attemptConflict}, nil
	}
	if err != nil {
		return attemptOutcome{}, err //nolint: wrapcheck // error from wrapped function
	}
	return out, nil
}

// readAccount returns a zero account with found=false when the owner has
// none yet.
func readAccount(ctx context.Context, tx StoreTx, ownerID string,
) (wallet.Account, bool, error) {
	acc, err := tx.AccountByOwner(ctx, ownerID)
	if errors.Is(err, serviceerrs.ErrNotFound) {
		return wallet.Account{OwnerID: ownerID}, false, nil
	}
	if err != nil {
		return wallet.Account{}, false, fmt.Errorf("failed to read account: %w", err)
	}
	return acc, true, nil
}
