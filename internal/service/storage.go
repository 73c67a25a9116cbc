package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/talx-hub/points-ledger/internal/api/handlers"
	"github.com/talx-hub/points-ledger/internal/dbmanager"
	"github.com/talx-hub/points-ledger/internal/ledger"
	"github.com/talx-hub/points-ledger/internal/ledger/memstore"
	"github.com/talx-hub/points-ledger/internal/repo"
	"github.com/talx-hub/points-ledger/internal/rules"
	"github.com/talx-hub/points-ledger/internal/service/config"
)

type ledgerStore interface {
	ledger.Store
	FindDrifts(ctx context.Context) ([]ledger.Drift, error)
}

// storage is the persistence side of the service for one backend.
type storage struct {
	ledger ledgerStore
	rules  rules.Repository
	pinger handlers.Pinger
	close  func()
}

type memoryPinger struct{}

func (memoryPinger) Ping(context.Context) error {
	return nil
}

func newStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (*storage, error) {
	if cfg.Storage == config.StorageMemory {
		log.LogAttrs(ctx, slog.LevelWarn, "ledger is kept in memory and lost on exit")
		return &storage{
			ledger: memstore.New(),
			rules:  rules.NewMemoryRepository(rules.Seed()),
			pinger: memoryPinger{},
			close:  func() {},
		}, nil
	}

	const connectTO = 10 * time.Second
	connectCtx, cancel := context.WithTimeout(ctx, connectTO)
	defer cancel()

	dbManager := dbmanager.New(cfg.DatabaseURI, log).
		Connect(connectCtx).
		Ping(connectCtx).
		ApplyMigrations(connectCtx)
	if err := dbManager.Error(); err != nil {
		dbManager.Close()
		return nil, fmt.Errorf("db connection error: %w", err)
	}

	pool, err := dbManager.GetPool(connectCtx)
	if err != nil {
		dbManager.Close()
		return nil, fmt.Errorf("failed to get DB pool: %w", err)
	}

	return &storage{
		ledger: repo.NewLedgerRepository(pool, log).WithLockTimeout(cfg.LockTimeout),
		rules:  repo.NewRuleRepository(pool, log),
		pinger: pool,
		close:  dbManager.Close,
	}, nil
}
