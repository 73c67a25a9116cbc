package ledger

import (
	"context"
	"fmt"

	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/model/bonus"
	"github.com/talx-hub/points-ledger/internal/serviceerrs"
)

// Reader serves committed transaction history and aggregates.
type Reader struct {
	store Store
}

func NewReader(store Store) *Reader {
	return &Reader{store: store}
}

// List returns one page of an account's transactions, newest first.
// Negative skip is treated as zero, non-positive take as model.DefaultPageSize.
func (r *Reader) List(ctx context.Context, accountID string, skip, take int) (Page, error) {
	if skip < 0 {
		skip = 0
	}
	if take <= 0 {
		take = model.DefaultPageSize
	}

	items, total, err := r.store.ListTransactions(ctx, accountID, skip, take)
	if err != nil {
		return Page{}, fmt.Errorf("failed to list transactions of account %s: %w", accountID, err)
	}
	if items == nil {
		items = []bonus.Transaction{}
	}
	return Page{Items: items, Total: total}, nil
}

// SumByType sums transaction magnitudes of one type across all accounts.
func (r *Reader) SumByType(ctx context.Context, tp bonus.TransactionType) (int64, error) {
	if !tp.IsValid() {
		return 0, fmt.Errorf("%w: unknown transaction type %q", serviceerrs.ErrInvalidArgument, tp)
	}
	sum, err := r.store.SumAmountByType(ctx, tp)
	if err != nil {
		return 0, fmt.Errorf("failed to sum %s transactions: %w", tp, err)
	}
	return sum, nil
}

func (r *Reader) CountActiveAccounts(ctx context.Context) (int64, error) {
	n, err := r.store.CountActiveAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count active accounts: %w", err)
	}
	return n, nil
}
