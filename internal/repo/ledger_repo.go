package repo

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/talx-hub/points-ledger/internal/ledger"
	"github.com/talx-hub/points-ledger/internal/model/bonus"
	"github.com/talx-hub/points-ledger/internal/model/wallet"
	"github.com/talx-hub/points-ledger/internal/repo/internal/db"
)

// LedgerRepository is the Postgres ledger.Store. Balance and log writes
// run inside InTx; everything else is a plain read of committed state.
type LedgerRepository struct {
	DB
	lockTimeout time.Duration
}

func NewLedgerRepository(pool connectionPool, log *slog.Logger) *LedgerRepository {
	return &LedgerRepository{
		DB: DB{
			pool: pool,
			log:  log,
		},
	}
}

// WithLockTimeout bounds the wait for an account row lock. A lock not
// granted in time is reported as serviceerrs.ErrDeadlock. Zero waits forever.
func (r *LedgerRepository) WithLockTimeout(timeout time.Duration) *LedgerRepository {
	r.lockTimeout = timeout
	return r
}

func (r *LedgerRepository) InTx(ctx context.Context,
	fn func(ctx context.Context, tx ledger.StoreTx) error,
) error {
	txLogic := func(ctx context.Context, tx connectionPool) (any, error) {
		unit := &ledgerTx{
			queries:     db.New(tx),
			lockTimeout: r.lockTimeout,
		}
		if err := fn(ctx, unit); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	}

	_, err := WithTX[struct{}](ctx, r.pool, r.log, txLogic)
	return err //nolint: wrapcheck // error from wrapped function
}

func (r *LedgerRepository) AccountByOwner(ctx context.Context, ownerID string,
) (wallet.Account, error) {
	findLogic := func() (wallet.Account, error) {
		acc, err := db.New(r.pool).GetAccountByOwner(ctx, ownerID)
		if err != nil {
			return wallet.Account{},
				fmt.Errorf("failed to find account of %s: %w", ownerID, classify(err))
		}
		return toAccount(acc), nil
	}

	return WithRetry[wallet.Account](ctx, findLogic, 0) //nolint: wrapcheck // error from wrapped function
}

func (r *LedgerRepository) ListTransactions(ctx context.Context,
	accountID string, skip, take int,
) ([]bonus.Transaction, int64, error) {
	type page struct {
		items []bonus.Transaction
		total int64
	}

	listLogic := func() (page, error) {
		queries := db.New(r.pool)
		total, err := queries.CountTransactionsByAccount(ctx, accountID)
		if err != nil {
			return page{}, fmt.Errorf("failed to count transactions of account %s: %w",
				accountID, classify(err))
		}

		rows, err := queries.ListTransactionsByAccount(ctx, db.ListTransactionsByAccountParams{
			AccountID: accountID,
			Limit:     toInt32(take),
			Offset:    toInt32(skip),
		})
		if err != nil {
			return page{}, fmt.Errorf("failed to list transactions of account %s: %w",
				accountID, classify(err))
		}

		items := make([]bonus.Transaction, len(rows))
		for i, row := range rows {
			items[i] = bonus.Transaction{
				CreatedAt:    row.CreatedAt.Time,
				ExternalRef:  row.ExternalRef,
				Description:  row.Description,
				ID:           row.ID,
				AccountID:    row.AccountID,
				Type:         bonus.TransactionType(row.Type),
				Amount:       row.Amount,
				BalanceAfter: row.BalanceAfter,
			}
		}
		return page{items: items, total: total}, nil
	}

	p, err := WithRetry[page](ctx, listLogic, 0)
	if err != nil {
		return nil, 0, err //nolint: wrapcheck // error from wrapped function
	}
	return p.items, p.total, nil
}

func (r *LedgerRepository) SumAmountByType(ctx context.Context, tp bonus.TransactionType,
) (int64, error) {
	sumLogic := func() (int64, error) {
		sum, err := db.New(r.pool).SumAmountByType(ctx, string(tp))
		if err != nil {
			return 0, fmt.Errorf("failed to sum %s amounts: %w", tp, err)
		}
		return sum, nil
	}

	return WithRetry[int64](ctx, sumLogic, 0) //nolint: wrapcheck // error from wrapped function
}

func (r *LedgerRepository) CountActiveAccounts(ctx context.Context) (int64, error) {
	countLogic := func() (int64, error) {
		n, err := db.New(r.pool).CountActiveAccounts(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count active accounts: %w", err)
		}
		return n, nil
	}

	return WithRetry[int64](ctx, countLogic, 0) //nolint: wrapcheck // error from wrapped function
}

func (r *LedgerRepository) FindDrifts(ctx context.Context) ([]ledger.Drift, error) {
	findLogic := func() ([]ledger.Drift, error) {
		rows, err := db.New(r.pool).FindDrifts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to find drifted accounts: %w", err)
		}

		drifts := make([]ledger.Drift, len(rows))
		for i, row := range rows {
			drifts[i] = ledger.Drift{
				AccountID:    row.ID,
				OwnerID:      row.OwnerID,
				Balance:      row.Balance,
				LedgerSum:    row.LedgerSum,
				LastSnapshot: row.LastSnapshot,
			}
		}
		return drifts, nil
	}

	return WithRetry[[]ledger.Drift](ctx, findLogic, 0) //nolint: wrapcheck // error from wrapped function
}

type ledgerTx struct {
	queries        *db.Queries
	lockTimeout    time.Duration
	lockTimeoutSet bool
}

func (t *ledgerTx) AccountByOwner(ctx context.Context, ownerID string,
) (wallet.Account, error) {
	acc, err := t.queries.GetAccountByOwner(ctx, ownerID)
	if err != nil {
		return wallet.Account{},
			fmt.Errorf("failed to read account of %s: %w", ownerID, classify(err))
	}
	return toAccount(acc), nil
}

func (t *ledgerTx) LockAccount(ctx context.Context, ownerID string,
) (wallet.Account, error) {
	if t.lockTimeout > 0 && !t.lockTimeoutSet {
		timeout := strconv.FormatInt(t.lockTimeout.Milliseconds(), 10) + "ms"
		if err := t.queries.SetLockTimeout(ctx, timeout); err != nil {
			return wallet.Account{}, fmt.Errorf("failed to set lock timeout: %w", err)
		}
		t.lockTimeoutSet = true
	}

	acc, err := t.queries.LockAccountByOwner(ctx, ownerID)
	if err != nil {
		return wallet.Account{},
			fmt.Errorf("failed to lock account of %s: %w", ownerID, classify(err))
	}
	return toAccount(acc), nil
}

func (t *ledgerTx) CreateAccount(ctx context.Context, acc wallet.Account) (bool, error) {
	createdAt := acc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	n, err := t.queries.InsertAccount(ctx, db.InsertAccountParams{
		ID:        acc.ID,
		OwnerID:   acc.OwnerID,
		Balance:   acc.Balance,
		Version:   acc.Version,
		CreatedAt: pgtype.Timestamptz{Time: createdAt, Valid: true},
	})
	if err != nil {
		return false, fmt.Errorf("failed to insert account of %s: %w", acc.OwnerID, classify(err))
	}
	return n == 1, nil
}

func (t *ledgerTx) UpdateBalance(ctx context.Context,
	accountID string, balance, expectedVersion int64,
) (bool, error) {
	n, err := t.queries.UpdateBalanceIfVersion(ctx, db.UpdateBalanceIfVersionParams{
		Balance: balance,
		ID:      accountID,
		Version: expectedVersion,
	})
	if err != nil {
		return false, fmt.Errorf("failed to update balance of %s: %w", accountID, classify(err))
	}
	return n == 1, nil
}

func (t *ledgerTx) TransactionExists(ctx context.Context, accountID, externalRef string,
) (bool, error) {
	exists, err := t.queries.TransactionExists(ctx, db.TransactionExistsParams{
		AccountID:   accountID,
		ExternalRef: &externalRef,
	})
	if err != nil {
		return false, fmt.Errorf("failed to look up external ref of %s: %w", accountID, classify(err))
	}
	return exists, nil
}

func (t *ledgerTx) InsertTransaction(ctx context.Context, tr bonus.Transaction) error {
	err := t.queries.InsertTransaction(ctx, db.InsertTransactionParams{
		ID:           tr.ID,
		AccountID:    tr.AccountID,
		Type:         string(tr.Type),
		Amount:       tr.Amount,
		BalanceAfter: tr.BalanceAfter,
		ExternalRef:  tr.ExternalRef,
		Description:  tr.Description,
	})
	if err != nil {
		return fmt.Errorf("failed to insert transaction into %s: %w", tr.AccountID, classify(err))
	}
	return nil
}

func toAccount(acc db.Account) wallet.Account {
	return wallet.Account{
		CreatedAt: acc.CreatedAt.Time,
		UpdatedAt: acc.UpdatedAt.Time,
		ID:        acc.ID,
		OwnerID:   acc.OwnerID,
		Balance:   acc.Balance,
		Version:   acc.Version,
	}
}

func toInt32(v int) int32 {
	switch {
	case v < 0:
		return 0
	case v > math.MaxInt32:
		return math.MaxInt32
	default:
		return int32(v)
	}
}
