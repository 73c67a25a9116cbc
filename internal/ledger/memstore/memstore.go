// Package memstore keeps the ledger in process memory. Each account has a
// row lock that a unit of work holds from first write (or explicit lock)
// until it ends, which gives the same blocking behaviour as a relational
// row lock.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/talx-hub/points-ledger/internal/ledger"
	"github.com/talx-hub/points-ledger/internal/model/bonus"
	"github.com/talx-hub/points-ledger/internal/model/wallet"
	"github.com/talx-hub/points-ledger/internal/serviceerrs"
)

var errTxClosed = errors.New("unit of work already closed")

type record struct {
	tr  bonus.Transaction
	seq uint64
}

type Store struct {
	accounts map[string]wallet.Account // by owner
	owners   map[string]string         // account id -> owner
	locks    map[string]chan struct{}  // by owner
	records  []record
	seq      uint64
	mu       sync.Mutex
}

func New() *Store {
	return &Store{
		accounts: make(map[string]wallet.Account),
		owners:   make(map[string]string),
		locks:    make(map[string]chan struct{}),
		records:  make([]record, 0),
	}
}

func (s *Store) InTx(ctx context.Context,
	fn func(ctx context.Context, tx ledger.StoreTx) error,
) error {
	tx := &unit{
		store:    s,
		held:     make(map[string]chan struct{}),
		accounts: make(map[string]wallet.Account),
		owners:   make(map[string]string),
	}
	defer tx.release()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("unit of work cancelled before commit: %w", err)
	}
	tx.commit()
	return nil
}

func (s *Store) AccountByOwner(_ context.Context, ownerID string) (wallet.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[ownerID]
	if !ok {
		return wallet.Account{}, fmt.Errorf("account of %s: %w", ownerID, serviceerrs.ErrNotFound)
	}
	return acc, nil
}

func (s *Store) ListTransactions(_ context.Context, accountID string, skip, take int,
) ([]bonus.Transaction, int64, error) {
	s.mu.Lock()
	matched := make([]record, 0)
	for _, r := range s.records {
		if r.tr.AccountID == accountID {
			matched = append(matched, r)
		}
	}
	s.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].tr.CreatedAt.Equal(matched[j].tr.CreatedAt) {
			return matched[i].tr.CreatedAt.After(matched[j].tr.CreatedAt)
		}
		return matched[i].seq > matched[j].seq
	})

	total := int64(len(matched))
	if skip >= len(matched) {
		return []bonus.Transaction{}, total, nil
	}
	end := min(skip+take, len(matched))

	items := make([]bonus.Transaction, 0, end-skip)
	for _, r := range matched[skip:end] {
		items = append(items, r.tr)
	}
	return items, total, nil
}

func (s *Store) SumAmountByType(_ context.Context, tp bonus.TransactionType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum int64
	for _, r := range s.records {
		if r.tr.Type == tp {
			sum += r.tr.Amount
		}
	}
	return sum, nil
}

func (s *Store) CountActiveAccounts(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make(map[string]struct{})
	for _, r := range s.records {
		active[r.tr.AccountID] = struct{}{}
	}
	return int64(len(active)), nil
}

func (s *Store) FindDrifts(_ context.Context) ([]ledger.Drift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type tally struct {
		sum     int64
		last    int64
		lastSeq uint64
	}
	tallies := make(map[string]*tally)
	for _, r := range s.records {
		t, ok := tallies[r.tr.AccountID]
		if !ok {
			t = &tally{}
			tallies[r.tr.AccountID] = t
		}
		t.sum += r.tr.Type.Sign() * r.tr.Amount
		if r.seq >= t.lastSeq {
			t.last = r.tr.BalanceAfter
			t.lastSeq = r.seq
		}
	}

	drifts := make([]ledger.Drift, 0)
	for owner, acc := range s.accounts {
		t, ok := tallies[acc.ID]
		if !ok {
			t = &tally{}
		}
		if t.sum != acc.Balance || t.last != acc.Balance {
			drifts = append(drifts, ledger.Drift{
				AccountID:    acc.ID,
				OwnerID:      owner,
				Balance:      acc.Balance,
				LedgerSum:    t.sum,
				LastSnapshot: t.last,
			})
		}
	}
	return drifts, nil
}

func (s *Store) lockFor(ownerID string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[ownerID]
	if !ok {
		l = make(chan struct{}, 1)
		s.locks[ownerID] = l
	}
	return l
}

func (s *Store) ownerOf(accountID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.owners[accountID]
	return owner, ok
}

func now() time.Time {
	return time.Now().UTC()
}
