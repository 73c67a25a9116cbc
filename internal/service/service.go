package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/talx-hub/points-ledger/internal/api/handlers"
	"github.com/talx-hub/points-ledger/internal/ledger"
	"github.com/talx-hub/points-ledger/internal/metrics"
	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/reconciler"
	"github.com/talx-hub/points-ledger/internal/reporting"
	"github.com/talx-hub/points-ledger/internal/router"
	"github.com/talx-hub/points-ledger/internal/rules"
	"github.com/talx-hub/points-ledger/internal/service/config"
	"github.com/talx-hub/points-ledger/internal/utils/logger"
	"github.com/talx-hub/points-ledger/internal/utils/semaphore"
)

const shutdownTimeout = 10 * time.Second

type service struct {
	server     *http.Server
	reconciler *reconciler.Reconciler
	storage    *storage
	rdb        *redis.Client
}

func initService(ctx context.Context, cfg *config.Config, log *slog.Logger) (*service, error) {
	st, err := newStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	ruleService := rules.New(st.rules, log)
	wallet, err := ledger.NewWallet(
		st.ledger,
		ruleService,
		semaphore.New(cfg.MaxInflightMutations),
		ledger.WalletConfig{
			DefaultStrategy: cfg.MutationStrategy,
			AdmitTimeout:    model.DefaultRequestTimeout,
		},
		log,
		m,
	)
	if err != nil {
		st.close()
		return nil, fmt.Errorf("failed to build wallet: %w", err)
	}

	rdb := newRedisClient(ctx, cfg.RedisAddr, log)
	kpis := reporting.New(ledger.NewReader(st.ledger), rdb, cfg.KPICacheTTL, log)

	rr := router.New([]byte(cfg.SecretKey), cfg.CORSOrigins, log)
	rr.SetRouter(
		handlers.New(log, []byte(cfg.SecretKey), wallet, ruleService, kpis, st.pinger),
		m,
	)

	return &service{
		server: &http.Server{
			Addr:              cfg.RunAddr,
			Handler:           rr.GetRouter(),
			ReadHeaderTimeout: model.DefaultRequestTimeout,
		},
		reconciler: reconciler.New(st.ledger, m, cfg.ReconcileInterval),
		storage:    st,
		rdb:        rdb,
	}, nil
}

// newRedisClient returns nil when the KPI cache is disabled. An unreachable
// Redis only degrades the cache, so it is not fatal.
func newRedisClient(ctx context.Context, addr string, log *slog.Logger) *redis.Client {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, model.DefaultTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.LogAttrs(ctx, slog.LevelWarn, "redis is unreachable, KPIs are computed on every request",
			slog.String("addr", addr),
			slog.Any(model.KeyLoggerError, err),
		)
	}
	return rdb
}

func (s *service) run(ctx context.Context, log *slog.Logger) error {
	bgCtx, stopBackground := context.WithCancel(logger.WithContext(ctx, log))
	defer stopBackground()
	reconcilerDone := make(chan struct{})
	go func() {
		defer close(reconcilerDone)
		s.reconciler.Run(bgCtx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		log.LogAttrs(ctx, slog.LevelInfo, "server started", slog.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.LogAttrs(context.Background(), slog.LevelInfo, "stop signal received, shutting down")
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("listen and serve error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		log.LogAttrs(shutdownCtx, slog.LevelError, "failed to shutdown http server",
			slog.Any(model.KeyLoggerError, err))
	}

	stopBackground()
	<-reconcilerDone
	s.close(log)
	return runErr
}

func (s *service) close(log *slog.Logger) {
	if s.rdb != nil {
		if err := s.rdb.Close(); err != nil {
			log.LogAttrs(context.Background(), slog.LevelError, "failed to close redis client",
				slog.Any(model.KeyLoggerError, err))
		}
	}
	s.storage.close()
}

func RunServer() {
	bootLog := slog.Default()
	cfg := config.NewBuilder(bootLog).
		FromEnv().
		FromFlags().
		GetConfig()

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		bootLog.LogAttrs(context.Background(), slog.LevelWarn, "falling back to info level",
			slog.Any(model.KeyLoggerError, err))
	}
	log := logger.New(level)

	if err := cfg.Validate(); err != nil {
		log.LogAttrs(context.Background(), slog.LevelError, "invalid config",
			slog.Any(model.KeyLoggerError, err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := initService(ctx, cfg, log)
	if err != nil {
		log.LogAttrs(ctx, slog.LevelError, "failed to init service",
			slog.Any(model.KeyLoggerError, err))
		return
	}

	if err := s.run(ctx, log); err != nil {
		log.LogAttrs(context.Background(), slog.LevelError, "service stopped with error",
			slog.Any(model.KeyLoggerError, err))
	}
}
