// Package reporting serves the admin KPIs.
package reporting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/model/bonus"
)

const CacheKey = "ledger:kpis"

type KPIs struct {
	TotalEarned   int64 `json:"totalEarned"`
	TotalBurned   int64 `json:"totalBurned"`
	ActiveWallets int64 `json:"activeWallets"`
}

type Aggregates interface {
	SumByType(ctx context.Context, tp bonus.TransactionType) (int64, error)
	CountActiveAccounts(ctx context.Context) (int64, error)
}

// Service computes KPIs from the ledger. With a Redis client it keeps the
// last result for ttl; Redis failures only cost a recomputation.
type Service struct {
	agg Aggregates
	rdb *redis.Client
	log *slog.Logger
	ttl time.Duration
}

func New(agg Aggregates, rdb *redis.Client, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		agg: agg,
		rdb: rdb,
		ttl: ttl,
		log: log,
	}
}

func (s *Service) GetKPIs(ctx context.Context) (KPIs, error) {
	if kpis, ok := s.fromCache(ctx); ok {
		return kpis, nil
	}

	kpis, err := s.compute(ctx)
	if err != nil {
		return KPIs{}, err
	}

	s.toCache(ctx, kpis)
	return kpis, nil
}

func (s *Service) compute(ctx context.Context) (KPIs, error) {
	earned, err := s.agg.SumByType(ctx, bonus.TypeEarn)
	if err != nil {
		return KPIs{}, fmt.Errorf("failed to compute total earned: %w", err)
	}
	burned, err := s.agg.SumByType(ctx, bonus.TypeBurn)
	if err != nil {
		return KPIs{}, fmt.Errorf("failed to compute total burned: %w", err)
	}
	active, err := s.agg.CountActiveAccounts(ctx)
	if err != nil {
		return KPIs{}, fmt.Errorf("failed to count active wallets: %w", err)
	}

	return KPIs{
		TotalEarned:   earned,
		TotalBurned:   burned,
		ActiveWallets: active,
	}, nil
}

func (s *Service) fromCache(ctx context.Context) (KPIs, bool) {
	if s.rdb == nil {
		return KPIs{}, false
	}

	raw, err := s.rdb.Get(ctx, CacheKey).Result()
	if errors.Is(err, redis.Nil) {
		return KPIs{}, false
	}
	if err != nil {
		s.log.LogAttrs(ctx,
			slog.LevelWarn,
			"failed to read KPIs from cache",
			slog.Any(model.KeyLoggerError, err),
		)
		return KPIs{}, false
	}

	var kpis KPIs
	if err = json.Unmarshal([]byte(raw), &kpis); err != nil {
		s.log.LogAttrs(ctx,
			slog.LevelWarn,
			"cached KPIs are malformed",
			slog.Any(model.KeyLoggerError, err),
		)
		return KPIs{}, false
	}
	return kpis, true
}

func (s *Service) toCache(ctx context.Context, kpis KPIs) {
	if s.rdb == nil || s.ttl <= 0 {
		return
	}

	raw, err := json.Marshal(kpis)
	if err != nil {
		return
	}
	if err = s.rdb.Set(ctx, CacheKey, string(raw), s.ttl).Err(); err != nil {
		s.log.LogAttrs(ctx,
			slog.LevelWarn,
			"failed to cache KPIs",
			slog.Any(model.KeyLoggerError, err),
		)
	}
}
