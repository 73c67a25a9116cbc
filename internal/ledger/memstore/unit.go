package memstore

import (
	"context"
	"fmt"

	"github.com/talx-hub/points-ledger/internal/model/bonus"
	"github.com/talx-hub/points-ledger/internal/model/wallet"
	"github.com/talx-hub/points-ledger/internal/serviceerrs"
)

// unit is a single unit of work. Writes are staged and become visible to
// other units only on commit.
type unit struct {
	store    *Store
	held     map[string]chan struct{}
	accounts map[string]wallet.Account // staged, by owner
	owners   map[string]string         // staged account id -> owner
	records  []record
	closed   bool
}

func (u *unit) lock(ctx context.Context, ownerID string) error {
	if u.closed {
		return errTxClosed
	}
	if _, ok := u.held[ownerID]; ok {
		return nil
	}

	l := u.store.lockFor(ownerID)
	select {
	case l <- struct{}{}:
		u.held[ownerID] = l
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to lock account of %s: %w", ownerID, ctx.Err())
	}
}

func (u *unit) release() {
	for owner, l := range u.held {
		<-l
		delete(u.held, owner)
	}
	u.closed = true
}

func (u *unit) commit() {
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for owner, acc := range u.accounts {
		s.accounts[owner] = acc
		s.owners[acc.ID] = owner
	}
	for _, r := range u.records {
		s.seq++
		r.seq = s.seq
		s.records = append(s.records, r)
	}
}

func (u *unit) AccountByOwner(ctx context.Context, ownerID string) (wallet.Account, error) {
	if u.closed {
		return wallet.Account{}, errTxClosed
	}
	if acc, ok := u.accounts[ownerID]; ok {
		return acc, nil
	}
	return u.store.AccountByOwner(ctx, ownerID)
}

func (u *unit) LockAccount(ctx context.Context, ownerID string) (wallet.Account, error) {
	if err := u.lock(ctx, ownerID); err != nil {
		return wallet.Account{}, err
	}
	return u.AccountByOwner(ctx, ownerID)
}

func (u *unit) CreateAccount(ctx context.Context, acc wallet.Account) (bool, error) {
	if err := u.lock(ctx, acc.OwnerID); err != nil {
		return false, err
	}
	if _, err := u.AccountByOwner(ctx, acc.OwnerID); err == nil {
		return false, nil
	}

	u.accounts[acc.OwnerID] = acc
	u.owners[acc.ID] = acc.OwnerID
	return true, nil
}

func (u *unit) UpdateBalance(ctx context.Context,
	accountID string, balance, expectedVersion int64,
) (bool, error) {
	if balance < 0 {
		return false, fmt.Errorf("%w: negative balance %d", serviceerrs.ErrInvalidArgument, balance)
	}
	owner, ok := u.ownerOf(accountID)
	if !ok {
		return false, nil
	}
	if err := u.lock(ctx, owner); err != nil {
		return false, err
	}

	acc, err := u.AccountByOwner(ctx, owner)
	if err != nil {
		return false, err
	}
	if acc.Version != expectedVersion {
		return false, nil
	}

	acc.Balance = balance
	acc.Version++
	acc.UpdatedAt = now()
	u.accounts[owner] = acc
	return true, nil
}

func (u *unit) TransactionExists(_ context.Context, accountID, externalRef string) (bool, error) {
	if u.closed {
		return false, errTxClosed
	}
	for _, r := range u.records {
		if matchesRef(r.tr, accountID, externalRef) {
			return true, nil
		}
	}

	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if matchesRef(r.tr, accountID, externalRef) {
			return true, nil
		}
	}
	return false, nil
}

func (u *unit) InsertTransaction(ctx context.Context, tr bonus.Transaction) error {
	if tr.Amount <= 0 || tr.BalanceAfter < 0 || !tr.Type.IsValid() {
		return fmt.Errorf("%w: malformed transaction", serviceerrs.ErrInvalidArgument)
	}
	owner, ok := u.ownerOf(tr.AccountID)
	if !ok {
		return fmt.Errorf("account %s: %w", tr.AccountID, serviceerrs.ErrNotFound)
	}
	if err := u.lock(ctx, owner); err != nil {
		return err
	}

	if tr.ExternalRef != nil {
		exists, err := u.TransactionExists(ctx, tr.AccountID, *tr.ExternalRef)
		if err != nil {
			return err
		}
		if exists {
			return serviceerrs.ErrDuplicateExternalRef
		}
	}

	if tr.CreatedAt.IsZero() {
		tr.CreatedAt = now()
	}
	u.records = append(u.records, record{tr: tr})
	return nil
}

func (u *unit) ownerOf(accountID string) (string, bool) {
	if owner, ok := u.owners[accountID]; ok {
		return owner, true
	}
	return u.store.ownerOf(accountID)
}

func matchesRef(tr bonus.Transaction, accountID, externalRef string) bool {
	return tr.AccountID == accountID &&
		tr.ExternalRef != nil &&
		*tr.ExternalRef == externalRef
}
