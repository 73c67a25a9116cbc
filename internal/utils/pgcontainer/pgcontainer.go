// Package pgcontainer starts a disposable Postgres in docker for
// integration tests.
package pgcontainer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/talx-hub/points-ledger/internal/model"
)

const (
	defaultTag = "17-alpine"
	pgPort     = "5432/tcp"
	maxWait    = 30 * time.Second

	testDBName       = "test"
	testUserName     = "test"
	testUserPassword = "test"
)

type PGContainer struct {
	log      *slog.Logger
	pool     *dockertest.Pool
	resource *dockertest.Resource
	hostPort string
}

func New(log *slog.Logger) *PGContainer {
	return &PGContainer{log: log}
}

func (c *PGContainer) RunContainer() error {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return fmt.Errorf("failed to initialize a docker pool: %w", err)
	}
	c.pool = pool

	resource, err := pool.RunWithOptions(
		&dockertest.RunOptions{
			Repository: "postgres",
			Tag:        imageTag(),
			Env: []string{
				"POSTGRES_USER=postgres",
				"POSTGRES_PASSWORD=postgres",
			},
			ExposedPorts: []string{pgPort},
		},
		func(config *docker.HostConfig) {
			config.AutoRemove = true
			config.RestartPolicy = docker.RestartPolicy{Name: "no"}
		},
	)
	if err != nil {
		return fmt.Errorf("failed to run postgres container: %w", err)
	}
	c.resource = resource
	c.hostPort = resource.GetHostPort(pgPort)

	pool.MaxWait = maxWait
	var conn *pgx.Conn
	if err = pool.Retry(func() error {
		conn, err = pgx.Connect(context.Background(), c.suDSN())
		if err != nil {
			return fmt.Errorf("failed to connect to the DB: %w", err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("retry failed: %w", err)
	}
	defer func() {
		if err := conn.Close(context.Background()); err != nil {
			c.log.LogAttrs(context.Background(),
				slog.LevelWarn,
				"failed to close super user connection",
				slog.Any(model.KeyLoggerError, err),
			)
		}
	}()

	return createTestDB(conn)
}

// GetDSN points at the test database owned by the test user.
func (c *PGContainer) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=disable",
		testUserName,
		testUserPassword,
		c.hostPort,
		testDBName,
	)
}

func (c *PGContainer) Close() {
	if c.pool == nil || c.resource == nil {
		return
	}
	if err := c.pool.Purge(c.resource); err != nil {
		c.log.LogAttrs(context.Background(),
			slog.LevelError,
			"failed to purge the postgres container",
			slog.Any(model.KeyLoggerError, err),
		)
	}
}

func (c *PGContainer) suDSN() string {
	return fmt.Sprintf(
		"postgres://postgres:postgres@%s/postgres?sslmode=disable",
		c.hostPort,
	)
}

func createTestDB(conn *pgx.Conn) error {
	const (
		createUser = `CREATE USER %s PASSWORD '%s';`
		createDB   = `CREATE DATABASE %s OWNER %s ENCODING 'UTF8';`
		timeout    = 5 * time.Second
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if _, err := conn.Exec(ctx, fmt.Sprintf(createUser, testUserName, testUserPassword)); err != nil {
		return fmt.Errorf("failed to create a test user: %w", err)
	}
	if _, err := conn.Exec(ctx, fmt.Sprintf(createDB, testDBName, testUserName)); err != nil {
		return fmt.Errorf("failed to create a test DB: %w", err)
	}
	return nil
}

// imageTag reads POSTGRES_TAG from the environment or from the .env file
// next to go.mod.
func imageTag() string {
	if root, err := moduleRoot(); err == nil {
		_ = godotenv.Load(filepath.Join(root, ".env"))
	}
	if tag := os.Getenv("POSTGRES_TAG"); tag != "" {
		return tag
	}
	return defaultTag
}

func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working dir: %w", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found")
		}
		dir = parent
	}
}
