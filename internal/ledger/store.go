package ledger

import (
	"context"

	"github.com/talx-hub/points-ledger/internal/model/bonus"
	"github.com/talx-hub/points-ledger/internal/model/wallet"
)

// Store owns accounts and their transaction log. Point-in-time reads see
// committed state only; every write goes through InTx.
type Store interface {
	// InTx runs fn as one atomic unit. An error from fn, or a cancelled ctx,
	// rolls back everything fn staged.
	InTx(ctx context.Context, fn func(ctx context.Context, tx StoreTx) error) error

	AccountByOwner(ctx context.Context, ownerID string) (wallet.Account, error)
	ListTransactions(ctx context.Context, accountID string, skip, take int,
	) ([]bonus.Transaction, int64, error)
	SumAmountByType(ctx context.Context, tp bonus.TransactionType) (int64, error)
	CountActiveAccounts(ctx context.Context) (int64, error)
	FindDrifts(ctx context.Context) ([]Drift, error)
}

// StoreTx is the explicit transaction handle passed to InTx callbacks.
type StoreTx interface {
	// AccountByOwner reads without locking. Returns serviceerrs.ErrNotFound.
	AccountByOwner(ctx context.Context, ownerID string) (wallet.Account, error)
	// LockAccount takes an exclusive row lock held until the unit ends.
	// Returns serviceerrs.ErrNotFound, or serviceerrs.ErrDeadlock when the
	// store gave up waiting.
	LockAccount(ctx context.Context, ownerID string) (wallet.Account, error)
	// CreateAccount inserts acc unless the owner already has an account.
	CreateAccount(ctx context.Context, acc wallet.Account) (bool, error)
	// UpdateBalance writes the balance only if the stored version still
	// equals expectedVersion, advancing it by one.
	UpdateBalance(ctx context.Context, accountID string, balance, expectedVersion int64) (bool, error)
	TransactionExists(ctx context.Context, accountID, externalRef string) (bool, error)
	// InsertTransaction returns serviceerrs.ErrDuplicateExternalRef when
	// the (account, external reference) pair is taken.
	InsertTransaction(ctx context.Context, tr bonus.Transaction) error
}

// Drift describes an account whose balance disagrees with its log.
type Drift struct {
	AccountID    string
	OwnerID      string
	Balance      int64
	LedgerSum    int64
	LastSnapshot int64
}

type Page struct {
	Items []bonus.Transaction
	Total int64
}
