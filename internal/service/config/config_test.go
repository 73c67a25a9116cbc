package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_defaults(t *testing.T) {
	cfg := NewBuilder(slog.Default()).FromEnv().fromArgs(nil).GetConfig()

	assert.Equal(t, "localhost:8080", cfg.RunAddr)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "optimistic", cfg.MutationStrategy)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.KPICacheTTL)
	assert.Equal(t, time.Minute, cfg.ReconcileInterval)
	assert.Equal(t, 2*time.Second, cfg.LockTimeout)
	assert.Equal(t, uint64(64), cfg.MaxInflightMutations)
}

func TestBuilder_env_then_flags(t *testing.T) {
	t.Setenv("RUN_ADDRESS", ":7070")
	t.Setenv("DATABASE_URI", "postgres://env")
	t.Setenv("MUTATION_STRATEGY", "pessimistic")
	t.Setenv("CORS_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("RECONCILE_INTERVAL", "0s")
	t.Setenv("LOCK_TIMEOUT", "150ms")
	t.Setenv("MAX_INFLIGHT_MUTATIONS", "8")

	cfg := NewBuilder(slog.Default()).
		FromEnv().
		fromArgs([]string{"-a", ":9090", "-s", "memory", "-r", "localhost:6379"}).
		GetConfig()

	assert.Equal(t, ":9090", cfg.RunAddr)
	assert.Equal(t, "postgres://env", cfg.DatabaseURI)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "pessimistic", cfg.MutationStrategy)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, time.Duration(0), cfg.ReconcileInterval)
	assert.Equal(t, 150*time.Millisecond, cfg.LockTimeout)
	assert.Equal(t, uint64(8), cfg.MaxInflightMutations)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			RunAddr:              "localhost:8080",
			DatabaseURI:          "postgres://localhost/ledger",
			Storage:              StoragePostgres,
			MutationStrategy:     "optimistic",
			SecretKey:            "key",
			MaxInflightMutations: 1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"memory without dsn", func(c *Config) { c.Storage = StorageMemory; c.DatabaseURI = "" }, false},
		{"postgres without dsn", func(c *Config) { c.DatabaseURI = "" }, true},
		{"unknown storage", func(c *Config) { c.Storage = "sqlite" }, true},
		{"unknown strategy", func(c *Config) { c.MutationStrategy = "lucky" }, true},
		{"no admission slots", func(c *Config) { c.MaxInflightMutations = 0 }, true},
		{"no address", func(c *Config) { c.RunAddr = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_Validate_generates_secret(t *testing.T) {
	c := Config{
		RunAddr:              ":8080",
		Storage:              StorageMemory,
		MutationStrategy:     "optimistic",
		MaxInflightMutations: 1,
	}
	require.NoError(t, c.Validate())
	assert.Len(t, c.SecretKey, 64)
}
