package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/serviceerrs"
)

const (
	constraintExternalRef = "transactions_account_external_ref_key"
	constraintServiceName = "services_name_key"
	constraintOneDefault  = "conversion_rules_single_default_key"
)

type connectionPool interface {
	Begin(context.Context) (pgx.Tx, error)
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type DB struct {
	pool connectionPool
	log  *slog.Logger
}

type dbLogic func(ctx context.Context, tx connectionPool) (any, error)

func WithTX[T any](ctx context.Context,
	pool connectionPool, log *slog.Logger, f dbLogic,
) (T, error) {
	var zero T

	tx, err := pool.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("failed to begin TX: %w", err)
	}
	defer func() {
		rbErr := tx.Rollback(context.WithoutCancel(ctx))
		if rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.LogAttrs(ctx,
				slog.LevelError,
				"failed to rollback TX",
				slog.Any(model.KeyLoggerError, rbErr),
			)
		}
	}()

	res, err := f(ctx, tx)
	if err != nil {
		return zero, err //nolint: wrapcheck // error from wrapped function
	}

	if err = tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("failed to commit TX: %w", classify(err))
	}

	r, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("failed to convert any to %T", zero)
	}
	return r, nil
}

// WithRetry repeats dbQuery while the connection to the DB is unstable.
func WithRetry[T any](ctx context.Context, dbQuery func() (T, error), counter int) (T, error) {
	res, err := dbQuery()
	if err == nil {
		return res, nil
	}

	var zero T
	const maxAttemptCount = 3
	if counter >= maxAttemptCount {
		return zero, fmt.Errorf("failed to reattempt query to the DB: %w", err)
	}
	if !isRetryableError(err) {
		return zero, err
	}

	// count: 0 1 2 -> ms: 100 300 500
	delay := time.Duration(counter*2+1) * 100 * time.Millisecond
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return zero, fmt.Errorf("retry of the DB query cancelled: %w", ctx.Err())
	case <-timer.C:
	}
	return WithRetry[T](ctx, dbQuery, counter+1)
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ConnectionException,
			pgerrcode.ConnectionDoesNotExist,
			pgerrcode.ConnectionFailure,
			pgerrcode.CannotConnectNow,
			pgerrcode.SQLClientUnableToEstablishSQLConnection,
			pgerrcode.SQLServerRejectedEstablishmentOfSQLConnection:
			return true
		}
	}

	return false
}

// classify maps DB failures onto serviceerrs, keeping the original cause.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", serviceerrs.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.DeadlockDetected, pgerrcode.LockNotAvailable:
		return fmt.Errorf("%w: %w", serviceerrs.ErrDeadlock, err)
	case pgerrcode.UniqueViolation:
		switch pgErr.ConstraintName {
		case constraintExternalRef:
			return fmt.Errorf("%w: %w", serviceerrs.ErrDuplicateExternalRef, err)
		case constraintServiceName, constraintOneDefault:
			return fmt.Errorf("%w: %w", serviceerrs.ErrAlreadyExists, err)
		}
	case pgerrcode.ForeignKeyViolation, pgerrcode.InvalidTextRepresentation:
		return fmt.Errorf("%w: %w", serviceerrs.ErrNotFound, err)
	case pgerrcode.CheckViolation:
		return fmt.Errorf("%w: %w", serviceerrs.ErrInvalidArgument, err)
	}
	return err
}
