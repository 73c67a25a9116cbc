// Package ledgertest holds the behaviour every ledger.Store and every
// mutation strategy must share. Store implementations run it from their
// own tests.
package ledgertest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/points-ledger/internal/ledger"
	"github.com/talx-hub/points-ledger/internal/model/bonus"
	"github.com/talx-hub/points-ledger/internal/serviceerrs"
)

const (
	testTimeout     = 10 * time.Second
	concurrentCalls = 20
	clientRetries   = 50
)

// StoreFactory returns the store a sub-test runs against. Stores may be
// shared between calls: every sub-test uses fresh owner ids.
type StoreFactory func(t *testing.T) ledger.Store

var strategies = []string{ledger.StrategyOptimistic, ledger.StrategyPessimistic}

func RunMutatorContract(t *testing.T, newStore StoreFactory) {
	t.Helper()

	for _, strategy := range strategies {
		t.Run(strategy, func(t *testing.T) {
			tests := []struct {
				name string
				run  func(t *testing.T, m ledger.Mutator, store ledger.Store)
			}{
				{"earn creates account", testEarnCreatesAccount},
				{"non-positive amount rejected", testInvalidAmount},
				{"duplicate external ref applied once", testIdempotentEarn},
				{"burn above balance rejected", testInsufficientBalance},
				{"burn of missing account rejected", testBurnMissingAccount},
				{"replay wins over balance check", testReplayedBurn},
				{"external ref scoped to account", testRefScopedToAccount},
				{"requests without ref never deduplicated", testNoRefNotDeduplicated},
				{"balance equals replayed log", testLogReplaysBalance},
				{"cancelled context leaves no state", testCancelled},
				{"concurrent earns converge", testConcurrentEarns},
				{"pagination newest first", testPagination},
				{"earn past max balance rejected", testEarnOverflow},
			}
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					store := newStore(t)
					m, err := ledger.NewMutator(strategy, store, slog.Default(), nil)
					require.NoError(t, err)
					tt.run(t, m, store)
				})
			}
			t.Run("storage failure rolls back", func(t *testing.T) {
				testStorageFailure(t, strategy, newStore(t))
			})
		})
	}
}

// RunEquivalence feeds one request sequence through both strategies and
// compares the resulting balances and logs.
func RunEquivalence(t *testing.T, newStore StoreFactory) {
	t.Helper()

	type logLine struct {
		ref          string
		tp           bonus.TransactionType
		amount       int64
		balanceAfter int64
	}

	run := func(strategy string) (int64, []logLine, []error) {
		store := newStore(t)
		m, err := ledger.NewMutator(strategy, store, slog.Default(), nil)
		require.NoError(t, err)
		owner := newOwner()

		seq := []ledger.MutateRequest{
			earn(owner, 100, ref("a")),
			burn(owner, 30, ref("b")),
			earn(owner, 100, ref("a")),
			burn(owner, 500, ref("c")),
			earn(owner, 7, nil),
			burn(owner, 77, ref("d")),
			burn(owner, 1, ref("d")),
		}
		errs := make([]error, 0, len(seq))
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		for _, req := range seq {
			_, err := m.Mutate(ctx, req)
			errs = append(errs, err)
		}

		acc, err := store.AccountByOwner(ctx, owner)
		require.NoError(t, err)
		items, _, err := store.ListTransactions(ctx, acc.ID, 0, 100)
		require.NoError(t, err)

		lines := make([]logLine, 0, len(items))
		for _, it := range items {
			line := logLine{tp: it.Type, amount: it.Amount, balanceAfter: it.BalanceAfter}
			if it.ExternalRef != nil {
				line.ref = *it.ExternalRef
			}
			lines = append(lines, line)
		}
		return acc.Balance, lines, errs
	}

	optBalance, optLog, optErrs := run(ledger.StrategyOptimistic)
	pesBalance, pesLog, pesErrs := run(ledger.StrategyPessimistic)

	assert.Equal(t, int64(0), optBalance)
	assert.Equal(t, optBalance, pesBalance)
	assert.Equal(t, optLog, pesLog)
	require.Len(t, pesErrs, len(optErrs))
	for i := range optErrs {
		assert.Equal(t, optErrs[i] == nil, pesErrs[i] == nil, "request #%d", i)
		assert.Equal(t,
			errors.Is(optErrs[i], serviceerrs.ErrInsufficientBalance),
			errors.Is(pesErrs[i], serviceerrs.ErrInsufficientBalance),
			"request #%d", i)
	}
}

func testEarnCreatesAccount(t *testing.T, m ledger.Mutator, store ledger.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	owner := newOwner()

	res, err := m.Mutate(ctx, earn(owner, 50, nil))
	require.NoError(t, err)
	assert.Equal(t, ledger.MutateResult{Balance: 50, Applied: true}, res)

	acc, err := store.AccountByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(50), acc.Balance)
	assert.Equal(t, owner, acc.OwnerID)

	items, total, err := store.ListTransactions(ctx, acc.ID, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, bonus.TypeEarn, items[0].Type)
	assert.Equal(t, int64(50), items[0].Amount)
	assert.Equal(t, int64(50), items[0].BalanceAfter)
}

func testInvalidAmount(t *testing.T, m ledger.Mutator, store ledger.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	owner := newOwner()

	for _, amount := range []int64{0, -5} {
		_, err := m.Mutate(ctx, earn(owner, amount, nil))
		require.ErrorIs(t, err, serviceerrs.ErrInvalidArgument)
		_, err = m.Mutate(ctx, burn(owner, amount, nil))
		require.ErrorIs(t, err, serviceerrs.ErrInvalidArgument)
	}
	_, err := m.Mutate(ctx, earn("", 10, nil))
	require.ErrorIs(t, err, serviceerrs.ErrInvalidArgument)

	_, err = store.AccountByOwner(ctx, owner)
	require.ErrorIs(t, err, serviceerrs.ErrNotFound)
}

func testIdempotentEarn(t *testing.T, m ledger.Mutator, store ledger.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	owner := newOwner()

	first, err := m.Mutate(ctx, earn(owner, 50, ref("X")))
	require.NoError(t, err)
	assert.Equal(t, ledger.MutateResult{Balance: 50, Applied: true}, first)

	second, err := m.Mutate(ctx, earn(owner, 50, ref("X")))
	require.NoError(t, err)
	assert.Equal(t, ledger.MutateResult{Balance: 50, Applied: false}, second)

	assert.Equal(t, int64(1), countTransactions(ctx, t, store, owner))
	assertBalance(ctx, t, store, owner, 50)
}

func testInsufficientBalance(t *testing.T, m ledger.Mutator, store ledger.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	owner := newOwner()

	_, err := m.Mutate(ctx, earn(owner, 100, nil))
	require.NoError(t, err)

	_, err = m.Mutate(ctx, burn(owner, 150, ref("too-much")))
	require.ErrorIs(t, err, serviceerrs.ErrInsufficientBalance)

	assertBalance(ctx, t, store, owner, 100)
	assert.Equal(t, int64(1), countTransactions(ctx, t, store, owner))

	res, err := m.Mutate(ctx, burn(owner, 100, ref("too-much")))
	require.NoError(t, err)
	assert.Equal(t, ledger.MutateResult{Balance: 0, Applied: true}, res)
}

func testBurnMissingAccount(t *testing.T, m ledger.Mutator, store ledger.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	owner := newOwner()

	_, err := m.Mutate(ctx, burn(owner, 1, nil))
	require.ErrorIs(t, err, serviceerrs.ErrInsufficientBalance)

	_, err = store.AccountByOwner(ctx, owner)
	require.ErrorIs(t, err, serviceerrs.ErrNotFound)
}

func testReplayedBurn(t *testing.T, m ledger.Mutator, store ledger.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	owner := newOwner()

	_, err := m.Mutate(ctx, earn(owner, 80, nil))
	require.NoError(t, err)
	_, err = m.Mutate(ctx, burn(owner, 60, ref("order-1")))
	require.NoError(t, err)

	res, err := m.Mutate(ctx, burn(owner, 60, ref("order-1")))
	require.NoError(t, err)
	assert.Equal(t, ledger.MutateResult{Balance: 20, Applied: false}, res)
	assert.Equal(t, int64(2), countTransactions(ctx, t, store, owner))
}

func testRefScopedToAccount(t *testing.T, m ledger.Mutator, store ledger.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	alice, bob := newOwner(), newOwner()

	for _, owner := range []string{alice, bob} {
		res, err := m.Mutate(ctx, earn(owner, 10, ref("shared")))
		require.NoError(t, err)
		assert.True(t, res.Applied)
		assertBalance(ctx, t, store, owner, 10)
	}
}

func testNoRefNotDeduplicated(t *testing.T, m ledger.Mutator, store ledger.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	owner := newOwner()

	for range 2 {
		res, err := m.Mutate(ctx, earn(owner, 5, nil))
		require.NoError(t, err)
		assert.True(t, res.Applied)
	}
	res, err := m.Mutate(ctx, earn(owner, 5, ref("")))
	require.NoError(t, err)
	assert.True(t, res.Applied)

	assertBalance(ctx, t, store, owner, 15)
	assert.Equal(t, int64(3), countTransactions(ctx, t, store, owner))
}

func testLogReplaysBalance(t *testing.T, m ledger.Mutator, store ledger.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	owner := newOwner()

	seq := []ledger.MutateRequest{
		earn(owner, 40, ref("1")),
		burn(owner, 15, ref("2")),
		earn(owner, 40, ref("1")),
		burn(owner, 100, ref("3")),
		earn(owner, 3, nil),
		burn(owner, 28, nil),
	}
	for _, req := range seq {
		_, _ = m.Mutate(ctx, req)
	}

	acc, err := store.AccountByOwner(ctx, owner)
	require.NoError(t, err)
	items, total, err := store.ListTransactions(ctx, acc.ID, 0, 100)
	require.NoError(t, err)
	require.Equal(t, int64(4), total)

	var replayed int64
	for i := len(items) - 1; i >= 0; i-- {
		replayed += items[i].Type.Sign() * items[i].Amount
		assert.Equal(t, replayed, items[i].BalanceAfter)
	}
	assert.Equal(t, acc.Balance, replayed)
	assert.Equal(t, int64(0), acc.Balance)
}

func testCancelled(t *testing.T, m ledger.Mutator, store ledger.Store) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	owner := newOwner()

	_, err := m.Mutate(ctx, earn(owner, 10, nil))
	require.Error(t, err)

	checkCtx, checkCancel := context.WithTimeout(context.Background(), testTimeout)
	defer checkCancel()
	_, err = store.AccountByOwner(checkCtx, owner)
	require.ErrorIs(t, err, serviceerrs.ErrNotFound)
}

// testConcurrentEarns retries requests the mutator reports as retryable,
// the way a client would. Distinct external refs make that safe.
func testConcurrentEarns(t *testing.T, m ledger.Mutator, store ledger.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	owner := newOwner()

	var wg sync.WaitGroup
	errs := make([]error, concurrentCalls)
	for i := range concurrentCalls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := earn(owner, 1, ref(fmt.Sprintf("earn-%d", i)))
			for range clientRetries {
				_, errs[i] = m.Mutate(ctx, req)
				if !serviceerrs.IsRetryable(errs[i]) {
					return
				}
			}
		}()
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "call #%d", i)
	}
	assertBalance(ctx, t, store, owner, concurrentCalls)
	assert.Equal(t, int64(concurrentCalls), countTransactions(ctx, t, store, owner))
}

func testPagination(t *testing.T, m ledger.Mutator, store ledger.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	owner := newOwner()

	for i := 1; i <= 4; i++ {
		_, err := m.Mutate(ctx, earn(owner, int64(i), ref(fmt.Sprintf("p-%d", i))))
		require.NoError(t, err)
	}

	acc, err := store.AccountByOwner(ctx, owner)
	require.NoError(t, err)
	reader := ledger.NewReader(store)

	first, err := reader.List(ctx, acc.ID, 0, 2)
	require.NoError(t, err)
	second, err := reader.List(ctx, acc.ID, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(4), first.Total)
	assert.Equal(t, int64(4), second.Total)
	require.Len(t, first.Items, 2)
	require.Len(t, second.Items, 2)

	got := make([]int64, 0, 4)
	seen := make(map[string]struct{})
	for _, it := range append(first.Items, second.Items...) {
		got = append(got, it.Amount)
		seen[it.ID] = struct{}{}
	}
	assert.Equal(t, []int64{4, 3, 2, 1}, got)
	assert.Len(t, seen, 4)
}

func testEarnOverflow(t *testing.T, m ledger.Mutator, store ledger.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	owner := newOwner()

	_, err := m.Mutate(ctx, earn(owner, math.MaxInt64, nil))
	require.NoError(t, err)

	_, err = m.Mutate(ctx, earn(owner, 1, ref("one-more")))
	require.ErrorIs(t, err, serviceerrs.ErrInvalidArgument)
	require.NotErrorIs(t, err, serviceerrs.ErrInsufficientBalance)

	assertBalance(ctx, t, store, owner, math.MaxInt64)
	assert.Equal(t, int64(1), countTransactions(ctx, t, store, owner))
}

var errInjected = errors.New("injected storage failure")

// failingStore hands out transaction handles whose InsertTransaction
// fails after the balance has already been written.
type failingStore struct {
	ledger.Store
}

func (s failingStore) InTx(ctx context.Context,
	fn func(ctx context.Context, tx ledger.StoreTx) error,
) error {
	return s.Store.InTx(ctx, func(ctx context.Context, tx ledger.StoreTx) error {
		return fn(ctx, failingTx{StoreTx: tx})
	})
}

type failingTx struct {
	ledger.StoreTx
}

func (failingTx) InsertTransaction(context.Context, bonus.Transaction) error {
	return errInjected
}

func testStorageFailure(t *testing.T, strategy string, store ledger.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	owner := newOwner()

	healthy, err := ledger.NewMutator(strategy, store, slog.Default(), nil)
	require.NoError(t, err)
	_, err = healthy.Mutate(ctx, earn(owner, 10, nil))
	require.NoError(t, err)
	before, err := store.AccountByOwner(ctx, owner)
	require.NoError(t, err)

	broken, err := ledger.NewMutator(strategy, failingStore{Store: store}, slog.Default(), nil)
	require.NoError(t, err)

	for _, req := range []ledger.MutateRequest{
		burn(owner, 3, ref("burn")),
		earn(owner, 5, ref("earn")),
	} {
		_, err = broken.Mutate(ctx, req)
		require.ErrorIs(t, err, errInjected)
	}

	after, err := store.AccountByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, before.Balance, after.Balance)
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, int64(1), countTransactions(ctx, t, store, owner))

	fresh := newOwner()
	_, err = broken.Mutate(ctx, earn(fresh, 5, nil))
	require.ErrorIs(t, err, errInjected)
	_, err = store.AccountByOwner(ctx, fresh)
	require.ErrorIs(t, err, serviceerrs.ErrNotFound)
}

func newOwner() string {
	return "owner-" + uuid.NewString()
}

func ref(s string) *string {
	return &s
}

func earn(owner string, amount int64, externalRef *string) ledger.MutateRequest {
	return ledger.MutateRequest{
		OwnerID:     owner,
		Direction:   bonus.TypeEarn,
		Amount:      amount,
		ExternalRef: externalRef,
	}
}

func burn(owner string, amount int64, externalRef *string) ledger.MutateRequest {
	return ledger.MutateRequest{
		OwnerID:     owner,
		Direction:   bonus.TypeBurn,
		Amount:      amount,
		ExternalRef: externalRef,
	}
}

func assertBalance(ctx context.Context, t *testing.T, store ledger.Store, owner string, want int64) {
	t.Helper()
	acc, err := store.AccountByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, want, acc.Balance)
}

func countTransactions(ctx context.Context, t *testing.T, store ledger.Store, owner string) int64 {
	t.Helper()
	acc, err := store.AccountByOwner(ctx, owner)
	require.NoError(t, err)
	_, total, err := store.ListTransactions(ctx, acc.ID, 0, 1)
	require.NoError(t, err)
	return total
}
