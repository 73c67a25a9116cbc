package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/model/bonus"
	"github.com/talx-hub/points-ledger/internal/serviceerrs"
	"github.com/talx-hub/points-ledger/internal/utils/semaphore"
)

// PointsResolver converts money spent on a service into points.
type PointsResolver interface {
	ResolvePoints(ctx context.Context, serviceID *string, money model.Amount) (int64, error)
}

type EarnRequest struct {
	ServiceID   *string
	ExternalRef *string
	Description *string
	OwnerID     string
	// Strategy overrides the configured default when set.
	Strategy string
	Amount   model.Amount
}

type BurnRequest struct {
	ExternalRef *string
	Description *string
	OwnerID     string
	Strategy    string
	Amount      int64
}

type Balance struct {
	OwnerID string
	Balance int64
	Applied bool
}

type WalletConfig struct {
	DefaultStrategy string
	AdmitTimeout    time.Duration
}

// Wallet is the entry point used by the HTTP layer.
type Wallet struct {
	store    Store
	resolver PointsResolver
	reader   *Reader
	sema     *semaphore.Semaphore
	log      *slog.Logger
	busy     busyObserver
	mutators map[string]Mutator
	cfg      WalletConfig
}

// busyObserver is optionally implemented by an Observer to count
// mutations turned away by admission control.
type busyObserver interface {
	ObserveBusy()
}

func NewWallet(store Store, resolver PointsResolver, sema *semaphore.Semaphore,
	cfg WalletConfig, log *slog.Logger, obs Observer,
) (*Wallet, error) {
	mutators := make(map[string]Mutator, 2)
	for _, strategy := range []string{StrategyOptimistic, StrategyPessimistic} {
		m, err := NewMutator(strategy, store, log, obs)
		if err != nil {
			return nil, err
		}
		mutators[strategy] = m
	}
	if _, ok := mutators[cfg.DefaultStrategy]; !ok {
		return nil, fmt.Errorf("%w: unknown default strategy %q",
			serviceerrs.ErrInvalidArgument, cfg.DefaultStrategy)
	}
	if cfg.AdmitTimeout <= 0 {
		cfg.AdmitTimeout = model.DefaultTimeout
	}

	busy, _ := obs.(busyObserver)

	return &Wallet{
		busy:     busy,
		store:    store,
		resolver: resolver,
		reader:   NewReader(store),
		sema:     sema,
		log:      log,
		mutators: mutators,
		cfg:      cfg,
	}, nil
}

func (w *Wallet) Earn(ctx context.Context, req EarnRequest) (Balance, error) {
	if req.Amount.IsZero() {
		return Balance{}, fmt.Errorf("%w: amount must be positive", serviceerrs.ErrInvalidArgument)
	}
	points, err := w.resolver.ResolvePoints(ctx, req.ServiceID, req.Amount)
	if err != nil {
		return Balance{}, fmt.Errorf("failed to resolve points: %w", err)
	}

	return w.mutate(ctx, req.Strategy, MutateRequest{
		ExternalRef: req.ExternalRef,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		Direction:   bonus.TypeEarn,
		Amount:      points,
	})
}

// Burn spends points one to one.
func (w *Wallet) Burn(ctx context.Context, req BurnRequest) (Balance, error) {
	return w.mutate(ctx, req.Strategy, MutateRequest{
		ExternalRef: req.ExternalRef,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		Direction:   bonus.TypeBurn,
		Amount:      req.Amount,
	})
}

func (w *Wallet) GetBalance(ctx context.Context, ownerID string) (Balance, error) {
	acc, err := w.store.AccountByOwner(ctx, ownerID)
	if err != nil {
		return Balance{}, fmt.Errorf("failed to get account of %s: %w", ownerID, err)
	}
	return Balance{OwnerID: acc.OwnerID, Balance: acc.Balance}, nil
}

// ListTransactions returns an empty page for an owner that has no account yet.
func (w *Wallet) ListTransactions(ctx context.Context, ownerID string, skip, take int,
) (Page, error) {
	acc, err := w.store.AccountByOwner(ctx, ownerID)
	if errors.Is(err, serviceerrs.ErrNotFound) {
		return Page{Items: []bonus.Transaction{}, Total: 0}, nil
	}
	if err != nil {
		return Page{}, fmt.Errorf("failed to get account of %s: %w", ownerID, err)
	}
	return w.reader.List(ctx, acc.ID, skip, take)
}

func (w *Wallet) mutate(ctx context.Context, strategy string, req MutateRequest,
) (Balance, error) {
	req.OwnerID = strings.TrimSpace(req.OwnerID)
	if strategy == "" {
		strategy = w.cfg.DefaultStrategy
	}
	m, ok := w.mutators[strategy]
	if !ok {
		return Balance{}, fmt.Errorf("%w: unknown mutation strategy %q",
			serviceerrs.ErrInvalidArgument, strategy)
	}

	if w.sema != nil {
		if err := w.sema.AcquireWithTimeout(ctx, w.cfg.AdmitTimeout); err != nil {
			if w.busy != nil && errors.Is(err, serviceerrs.ErrMutationsBusy) {
				w.busy.ObserveBusy()
			}
			return Balance{}, err //nolint: wrapcheck // error from wrapped function
		}
		defer w.sema.Release()
	}

	res, err := m.Mutate(ctx, req)
	if err != nil {
		return Balance{}, err //nolint: wrapcheck // error from wrapped function
	}
	return Balance{OwnerID: req.OwnerID, Balance: res.Balance, Applied: res.Applied}, nil
}
