package repo

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/points-ledger/internal/ledger"
	"github.com/talx-hub/points-ledger/internal/ledger/ledgertest"
	"github.com/talx-hub/points-ledger/internal/model/bonus"
	"github.com/talx-hub/points-ledger/internal/serviceerrs"
)

func newLedgerStore(t *testing.T) ledger.Store {
	t.Helper()

	repo, _, cancel, _ := setupRepo(t, NewLedgerRepository)
	cancel()
	return repo
}

func TestLedgerRepository_MutatorContract(t *testing.T) {
	ledgertest.RunMutatorContract(t, newLedgerStore)
}

func TestLedgerRepository_Equivalence(t *testing.T) {
	ledgertest.RunEquivalence(t, newLedgerStore)
}

func earnReq(owner string, amount int64, ref string) ledger.MutateRequest {
	return ledger.MutateRequest{
		ExternalRef: &ref,
		OwnerID:     owner,
		Direction:   bonus.TypeEarn,
		Amount:      amount,
	}
}

func TestLedgerRepository_AccountByOwner(t *testing.T) {
	repo, ctx, cancel, _ := setupRepo(t, NewLedgerRepository)
	defer cancel()

	_, err := repo.AccountByOwner(ctx, "nobody-"+uuid.NewString())
	require.ErrorIs(t, err, serviceerrs.ErrNotFound)

	owner := uuid.NewString()
	m := ledger.NewOptimisticMutator(repo, slog.Default(), nil)
	_, err = m.Mutate(ctx, earnReq(owner, 15, "a"))
	require.NoError(t, err)

	acc, err := repo.AccountByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, owner, acc.OwnerID)
	assert.Equal(t, int64(15), acc.Balance)
	assert.Equal(t, int64(1), acc.Version)
	assert.NotEmpty(t, acc.ID)
	assert.False(t, acc.CreatedAt.IsZero())
}

func TestLedgerRepository_InsertTransaction_duplicate_ref(t *testing.T) {
	repo, ctx, cancel, _ := setupRepo(t, NewLedgerRepository)
	defer cancel()

	owner := uuid.NewString()
	m := ledger.NewPessimisticMutator(repo, slog.Default(), nil)
	_, err := m.Mutate(ctx, earnReq(owner, 10, "dup"))
	require.NoError(t, err)
	acc, err := repo.AccountByOwner(ctx, owner)
	require.NoError(t, err)

	ref := "dup"
	err = repo.InTx(ctx, func(ctx context.Context, tx ledger.StoreTx) error {
		return tx.InsertTransaction(ctx, bonus.Transaction{
			ExternalRef:  &ref,
			ID:           uuid.NewString(),
			AccountID:    acc.ID,
			Type:         bonus.TypeEarn,
			Amount:       10,
			BalanceAfter: 20,
		})
	})
	require.ErrorIs(t, err, serviceerrs.ErrDuplicateExternalRef)

	items, total, err := repo.ListTransactions(ctx, acc.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
}

func TestLedgerRepository_InTx_rollback(t *testing.T) {
	repo, ctx, cancel, _ := setupRepo(t, NewLedgerRepository)
	defer cancel()

	owner := uuid.NewString()
	err := repo.InTx(ctx, func(ctx context.Context, tx ledger.StoreTx) error {
		created, err := tx.CreateAccount(ctx, ledgerAccount(owner))
		require.NoError(t, err)
		require.True(t, created)
		return serviceerrs.ErrInsufficientBalance
	})
	require.ErrorIs(t, err, serviceerrs.ErrInsufficientBalance)

	_, err = repo.AccountByOwner(ctx, owner)
	require.ErrorIs(t, err, serviceerrs.ErrNotFound)
}

func TestLedgerRepository_UpdateBalance_version(t *testing.T) {
	repo, ctx, cancel, _ := setupRepo(t, NewLedgerRepository)
	defer cancel()

	acc := ledgerAccount(uuid.NewString())
	err := repo.InTx(ctx, func(ctx context.Context, tx ledger.StoreTx) error {
		_, err := tx.CreateAccount(ctx, acc)
		return err
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		version int64
		want    bool
	}{
		{name: "current version", version: 1, want: true},
		{name: "stale version", version: 1, want: false},
		{name: "advanced version", version: 2, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ok bool
			err := repo.InTx(ctx, func(ctx context.Context, tx ledger.StoreTx) error {
				var err error
				ok, err = tx.UpdateBalance(ctx, acc.ID, 5, tt.version)
				return err
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}

	stored, err := repo.AccountByOwner(ctx, acc.OwnerID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.Version)
}

func TestLedgerRepository_LockAccount_timeout(t *testing.T) {
	repo, ctx, cancel, pool := setupRepo(t, NewLedgerRepository)
	defer cancel()

	acc := ledgerAccount(uuid.NewString())
	require.NoError(t, repo.InTx(ctx, func(ctx context.Context, tx ledger.StoreTx) error {
		_, err := tx.CreateAccount(ctx, acc)
		return err
	}))

	locked := make(chan struct{})
	release := make(chan struct{})
	holderDone := make(chan error, 1)
	go func() {
		holderDone <- repo.InTx(ctx, func(ctx context.Context, tx ledger.StoreTx) error {
			if _, err := tx.LockAccount(ctx, acc.OwnerID); err != nil {
				return err
			}
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked

	impatient := NewLedgerRepository(pool, slog.Default()).WithLockTimeout(100 * time.Millisecond)
	err := impatient.InTx(ctx, func(ctx context.Context, tx ledger.StoreTx) error {
		_, err := tx.LockAccount(ctx, acc.OwnerID)
		return err
	})
	require.ErrorIs(t, err, serviceerrs.ErrDeadlock)

	close(release)
	require.NoError(t, <-holderDone)
}

// Sums span every account, so the ledger is emptied first: the mutator
// contract leaves a balance close to MaxInt64 behind.
func TestLedgerRepository_Aggregates(t *testing.T) {
	repo, ctx, cancel, pool := setupRepo(t, NewLedgerRepository)
	defer cancel()
	_, err := pool.Exec(ctx, "TRUNCATE transactions, accounts")
	require.NoError(t, err)

	earnedBefore, err := repo.SumAmountByType(ctx, bonus.TypeEarn)
	require.NoError(t, err)
	burnedBefore, err := repo.SumAmountByType(ctx, bonus.TypeBurn)
	require.NoError(t, err)
	activeBefore, err := repo.CountActiveAccounts(ctx)
	require.NoError(t, err)
	assert.Zero(t, earnedBefore+burnedBefore+activeBefore)

	owner := uuid.NewString()
	m := ledger.NewOptimisticMutator(repo, slog.Default(), nil)
	_, err = m.Mutate(ctx, earnReq(owner, 30, "agg-earn"))
	require.NoError(t, err)
	_, err = m.Mutate(ctx, ledger.MutateRequest{
		OwnerID:   owner,
		Direction: bonus.TypeBurn,
		Amount:    12,
	})
	require.NoError(t, err)

	earned, err := repo.SumAmountByType(ctx, bonus.TypeEarn)
	require.NoError(t, err)
	burned, err := repo.SumAmountByType(ctx, bonus.TypeBurn)
	require.NoError(t, err)
	active, err := repo.CountActiveAccounts(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(30), earned-earnedBefore)
	assert.Equal(t, int64(12), burned-burnedBefore)
	assert.Equal(t, int64(1), active-activeBefore)
}

func TestLedgerRepository_FindDrifts(t *testing.T) {
	repo, ctx, cancel, pool := setupRepo(t, NewLedgerRepository)
	defer cancel()
	require.NoError(t, loadFixtureFile(pool, "./fixtures/ledger_drift.sql"))

	owner := uuid.NewString()
	m := ledger.NewPessimisticMutator(repo, slog.Default(), nil)
	_, err := m.Mutate(ctx, earnReq(owner, 5, "healthy"))
	require.NoError(t, err)

	drifts, err := repo.FindDrifts(ctx)
	require.NoError(t, err)

	var found bool
	for _, d := range drifts {
		assert.NotEqual(t, owner, d.OwnerID)
		if d.OwnerID == "drift-owner" {
			found = true
			assert.Equal(t, int64(70), d.Balance)
			assert.Equal(t, int64(60), d.LedgerSum)
			assert.Equal(t, int64(60), d.LastSnapshot)
		}
	}
	assert.True(t, found)
}
