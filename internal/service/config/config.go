package config

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/talx-hub/points-ledger/internal/ledger"
	"github.com/talx-hub/points-ledger/internal/model"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	RunAddr              string        `env:"RUN_ADDRESS"            envDefault:"localhost:8080"`
	DatabaseURI          string        `env:"DATABASE_URI"           envDefault:""`
	Storage              string        `env:"STORAGE"                envDefault:"postgres"`
	MutationStrategy     string        `env:"MUTATION_STRATEGY"      envDefault:"optimistic"`
	SecretKey            string        `env:"SECRET_KEY"             envDefault:""`
	LogLevel             string        `env:"LOG_LEVEL"              envDefault:"info"`
	RedisAddr            string        `env:"REDIS_ADDR"             envDefault:""`
	CORSOrigins          []string      `env:"CORS_ORIGINS"           envDefault:"http://localhost:5173" envSeparator:","`
	KPICacheTTL          time.Duration `env:"KPI_CACHE_TTL"          envDefault:"30s"`
	ReconcileInterval    time.Duration `env:"RECONCILE_INTERVAL"     envDefault:"1m"`
	LockTimeout          time.Duration `env:"LOCK_TIMEOUT"           envDefault:"2s"`
	MaxInflightMutations uint64        `env:"MAX_INFLIGHT_MUTATIONS" envDefault:"64"`
}

type Builder struct {
	cfg *Config
	log *slog.Logger
}

func NewBuilder(log *slog.Logger) *Builder {
	return &Builder{
		cfg: &Config{},
		log: log,
	}
}

// FromEnv reads the environment, seeded from an optional .env file.
func (b *Builder) FromEnv() *Builder {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		b.log.LogAttrs(context.Background(),
			slog.LevelWarn, "Failed to load .env", slog.Any(model.KeyLoggerError, err))
	}
	if err := env.Parse(b.cfg); err != nil {
		b.log.LogAttrs(context.Background(),
			slog.LevelError, "Failed to parse config", slog.Any(model.KeyLoggerError, err))
	}
	return b
}

func (b *Builder) FromFlags() *Builder {
	return b.fromArgs(os.Args[1:])
}

func (b *Builder) fromArgs(args []string) *Builder {
	flags := flag.NewFlagSet("ledger", flag.ContinueOnError)
	flags.StringVar(&b.cfg.RunAddr, "a", b.cfg.RunAddr, "Run address")
	flags.StringVar(&b.cfg.DatabaseURI, "d", b.cfg.DatabaseURI, "Database URI")
	flags.StringVar(&b.cfg.Storage, "s", b.cfg.Storage, "Storage backend: postgres or memory")
	flags.StringVar(&b.cfg.MutationStrategy, "m", b.cfg.MutationStrategy,
		"Default mutation strategy: optimistic or pessimistic")
	flags.StringVar(&b.cfg.SecretKey, "k", b.cfg.SecretKey, "Secret key")
	flags.StringVar(&b.cfg.LogLevel, "l", b.cfg.LogLevel, "Log level")
	flags.StringVar(&b.cfg.RedisAddr, "r", b.cfg.RedisAddr, "Redis address for the KPI cache")

	if err := flags.Parse(args); err != nil {
		b.log.LogAttrs(context.Background(),
			slog.LevelError, "Failed to parse flags", slog.Any(model.KeyLoggerError, err))
	}
	return b
}

func (b *Builder) GetConfig() *Config {
	return b.cfg
}

// Validate rejects unusable settings. A missing secret key is replaced
// with a random one, so tokens do not survive a restart.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage {
	case StoragePostgres:
		if c.DatabaseURI == "" {
			errs = append(errs, errors.New("postgres storage needs DATABASE_URI"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q", c.Storage))
	}

	if c.MutationStrategy != ledger.StrategyOptimistic &&
		c.MutationStrategy != ledger.StrategyPessimistic {
		errs = append(errs, fmt.Errorf("unknown mutation strategy %q", c.MutationStrategy))
	}
	if c.MaxInflightMutations == 0 {
		errs = append(errs, errors.New("MAX_INFLIGHT_MUTATIONS must be positive"))
	}
	if c.RunAddr == "" {
		errs = append(errs, errors.New("run address is empty"))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	if c.SecretKey == "" {
		const secretLen = 32
		raw := make([]byte, secretLen)
		if _, err := rand.Read(raw); err != nil {
			return fmt.Errorf("failed to generate secret key: %w", err)
		}
		c.SecretKey = hex.EncodeToString(raw)
	}
	return nil
}
