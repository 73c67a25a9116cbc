package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/model/bonus"
	"github.com/talx-hub/points-ledger/internal/model/wallet"
	"github.com/talx-hub/points-ledger/internal/serviceerrs"
)

const (
	StrategyOptimistic  = "optimistic"
	StrategyPessimistic = "pessimistic"
)

type MutateRequest struct {
	ExternalRef *string
	Description *string
	OwnerID     string
	Direction   bonus.TransactionType
	Amount      int64
}

type MutateResult struct {
	Balance int64
	Applied bool
}

// Mutator applies one EARN or BURN to an account.
//
// A request whose external reference was already applied to the account
// writes nothing and returns the current balance with Applied=false.
type Mutator interface {
	Mutate(ctx context.Context, req MutateRequest) (MutateResult, error)
}

// Observer receives mutation telemetry.
type Observer interface {
	ObserveMutation(strategy string, direction bonus.TransactionType, outcome string, took time.Duration)
	ObserveRetry(strategy, reason string)
}

type nopObserver struct{}

func (nopObserver) ObserveMutation(string, bonus.TransactionType, string, time.Duration) {}
func (nopObserver) ObserveRetry(string, string)                                          {}

// NewMutator builds the mutator for the given strategy. The pessimistic
// mutator comes wrapped in a DeadlockRetrier.
func NewMutator(strategy string, store Store, log *slog.Logger, obs Observer) (Mutator, error) {
	if obs == nil {
		obs = nopObserver{}
	}
	switch strategy {
	case StrategyOptimistic:
		return NewOptimisticMutator(store, log, obs), nil
	case StrategyPessimistic:
		return NewDeadlockRetrier(NewPessimisticMutator(store, log, obs), log, obs), nil
	default:
		return nil, fmt.Errorf("%w: unknown mutation strategy %q",
			serviceerrs.ErrInvalidArgument, strategy)
	}
}

func (r *MutateRequest) normalize() error {
	r.OwnerID = strings.TrimSpace(r.OwnerID)
	if r.OwnerID == "" {
		return fmt.Errorf("%w: owner id must be not empty", serviceerrs.ErrInvalidArgument)
	}
	if !r.Direction.IsValid() {
		return fmt.Errorf("%w: unknown direction %q", serviceerrs.ErrInvalidArgument, r.Direction)
	}
	if r.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %d",
			serviceerrs.ErrInvalidArgument, r.Amount)
	}
	if r.ExternalRef != nil && *r.ExternalRef == "" {
		r.ExternalRef = nil
	}
	return nil
}

func nextBalance(current int64, req MutateRequest) (int64, error) {
	if req.Direction == bonus.TypeEarn && req.Amount > math.MaxInt64-current {
		return 0, fmt.Errorf("%w: earning %d overflows balance %d",
			serviceerrs.ErrInvalidArgument, req.Amount, current)
	}
	next := current + req.Direction.Sign()*req.Amount
	if next < 0 {
		return 0, fmt.Errorf("%w: balance %d, requested %d",
			serviceerrs.ErrInsufficientBalance, current, req.Amount)
	}
	return next, nil
}

func newAccount(ownerID string, balance int64) wallet.Account {
	now := time.Now().UTC()
	return wallet.Account{
		CreatedAt: now,
		UpdatedAt: now,
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Balance:   balance,
		Version:   1,
	}
}

func newTransaction(accountID string, req MutateRequest, balanceAfter int64) bonus.Transaction {
	return bonus.Transaction{
		CreatedAt:    time.Now().UTC(),
		ExternalRef:  req.ExternalRef,
		Description:  req.Description,
		ID:           uuid.NewString(),
		AccountID:    accountID,
		Type:         req.Direction,
		Amount:       req.Amount,
		BalanceAfter: balanceAfter,
	}
}

func outcomeOf(err error, applied bool) string {
	switch {
	case err == nil && applied:
		return "applied"
	case err == nil:
		return "replayed"
	case errors.Is(err, serviceerrs.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, serviceerrs.ErrConcurrencyExhausted):
		return "concurrency_exhausted"
	case errors.Is(err, serviceerrs.ErrDeadlock), errors.Is(err, serviceerrs.ErrLockConflict):
		return "lock_conflict"
	case errors.Is(err, serviceerrs.ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "error"
	}
}

func logMutation(ctx context.Context, log *slog.Logger, strategy string,
	req MutateRequest, res MutateResult, err error,
) {
	if err == nil {
		log.LogAttrs(ctx,
			slog.LevelDebug,
			"mutation finished",
			slog.String("strategy", strategy),
			slog.String("owner_id", req.OwnerID),
			slog.String("direction", string(req.Direction)),
			slog.Int64("amount", req.Amount),
			slog.Int64("balance", res.Balance),
			slog.Bool("applied", res.Applied),
		)
		return
	}
	log.LogAttrs(ctx,
		slog.LevelWarn,
		"mutation rejected",
		slog.String("strategy", strategy),
		slog.String("owner_id", req.OwnerID),
		slog.String("direction", string(req.Direction)),
		slog.Int64("amount", req.Amount),
		slog.Any(model.KeyLoggerError, err),
	)
}
