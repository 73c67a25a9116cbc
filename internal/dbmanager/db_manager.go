package dbmanager

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talx-hub/points-ledger/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	minConns = 1
	maxConns = 20
)

// DBManager owns the connection pool. Its steps chain and stop at the
// first failure, which Error reports.
type DBManager struct {
	log  *slog.Logger
	pool *pgxpool.Pool
	err  error
	dsn  string
}

func New(dsn string, log *slog.Logger) *DBManager {
	return &DBManager{
		log: log,
		dsn: dsn,
	}
}

func (m *DBManager) Connect(ctx context.Context) *DBManager {
	if m.err != nil {
		return m
	}

	cfg, err := pgxpool.ParseConfig(m.dsn)
	if err != nil {
		m.fail(ctx, "failed to parse DSN", err)
		return m
	}
	cfg.MinConns = minConns
	cfg.MaxConns = maxConns
	cfg.ConnConfig.Tracer = &queryTracer{m.log}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		m.fail(ctx, "failed to init pgxpool", err)
		return m
	}

	m.pool = pool
	return m
}

func (m *DBManager) Ping(ctx context.Context) *DBManager {
	if m.err != nil {
		return m
	}
	if m.pool == nil {
		m.fail(ctx, "failed to ping the DB", errors.New("not connected"))
		return m
	}

	if err := m.pool.Ping(ctx); err != nil {
		m.fail(ctx, "failed to ping the DB", err)
	}
	return m
}

// ApplyMigrations brings the schema up to date. Already applied
// migrations are skipped.
func (m *DBManager) ApplyMigrations(ctx context.Context) *DBManager {
	if m.err != nil {
		return m
	}

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		m.fail(ctx, "failed to open embedded migrations", err)
		return m
	}
	mg, err := migrate.NewWithSourceInstance("iofs", src, m.dsn)
	if err != nil {
		m.fail(ctx, "failed to init migrator", err)
		return m
	}
	defer func() {
		srcErr, dbErr := mg.Close()
		if srcErr != nil || dbErr != nil {
			m.log.LogAttrs(ctx,
				slog.LevelWarn,
				"failed to close migrator",
				slog.Any(model.KeyLoggerError, errors.Join(srcErr, dbErr)),
			)
		}
	}()

	if err = mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		m.fail(ctx, "failed to apply migrations", err)
		return m
	}

	m.log.LogAttrs(ctx, slog.LevelInfo, "migrations applied")
	return m
}

func (m *DBManager) Error() error {
	return m.err
}

func (m *DBManager) GetPool(ctx context.Context) (*pgxpool.Pool, error) {
	if m.pool == nil {
		return nil, errors.New("DB is not connected")
	}
	if err := m.pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("DB is unreachable: %w", err)
	}
	return m.pool, nil
}

func (m *DBManager) Close() {
	if m.pool == nil {
		return
	}

	m.pool.Close()
	m.log.LogAttrs(context.TODO(),
		slog.LevelInfo,
		"connection to DB closed",
	)
}

func (m *DBManager) fail(ctx context.Context, msg string, err error) {
	m.log.LogAttrs(ctx,
		slog.LevelError,
		msg,
		slog.Any(model.KeyLoggerError, err),
	)
	m.err = fmt.Errorf("%s: %w", msg, err)
}
