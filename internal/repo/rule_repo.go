package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/model/rule"
	"github.com/talx-hub/points-ledger/internal/repo/internal/db"
	"github.com/talx-hub/points-ledger/internal/serviceerrs"
)

type RuleRepository struct {
	DB
}

func NewRuleRepository(pool connectionPool, log *slog.Logger) *RuleRepository {
	return &RuleRepository{
		DB{
			pool: pool,
			log:  log,
		},
	}
}

func (r *RuleRepository) ListRules(ctx context.Context) ([]rule.Rule, error) {
	listLogic := func() ([]rule.Rule, error) {
		rows, err := db.New(r.pool).ListRules(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list rules: %w", err)
		}

		rules := make([]rule.Rule, 0, len(rows))
		for _, row := range rows {
			rl, err := toRule(row)
			if err != nil {
				r.log.LogAttrs(ctx,
					slog.LevelError,
					"invalid rule in DB",
					slog.String("rule_id", row.ID),
					slog.Any(model.KeyLoggerError, err),
				)
				continue
			}
			rules = append(rules, rl)
		}
		return rules, nil
	}

	return WithRetry[[]rule.Rule](ctx, listLogic, 0) //nolint: wrapcheck // error from wrapped function
}

func (r *RuleRepository) GetRule(ctx context.Context, id string) (rule.Rule, error) {
	return r.findRule(ctx, func(q *db.Queries) (db.RuleRow, error) {
		return q.GetRule(ctx, id)
	}, "rule "+id)
}

func (r *RuleRepository) RuleForService(ctx context.Context, serviceID, ruleType string,
) (rule.Rule, error) {
	return r.findRule(ctx, func(q *db.Queries) (db.RuleRow, error) {
		return q.RuleForService(ctx, db.RuleForServiceParams{
			ServiceID: &serviceID,
			RuleType:  ruleType,
		})
	}, "rule of service "+serviceID)
}

func (r *RuleRepository) DefaultRule(ctx context.Context, ruleType string) (rule.Rule, error) {
	return r.findRule(ctx, func(q *db.Queries) (db.RuleRow, error) {
		return q.DefaultRule(ctx, ruleType)
	}, "default "+ruleType+" rule")
}

func (r *RuleRepository) findRule(ctx context.Context,
	query func(q *db.Queries) (db.RuleRow, error), what string,
) (rule.Rule, error) {
	findLogic := func() (rule.Rule, error) {
		row, err := query(db.New(r.pool))
		if err != nil {
			return rule.Rule{}, fmt.Errorf("failed to find %s: %w", what, classify(err))
		}
		return toRule(row)
	}

	return WithRetry[rule.Rule](ctx, findLogic, 0) //nolint: wrapcheck // error from wrapped function
}

func (r *RuleRepository) CreateRule(ctx context.Context, rl rule.Rule) (rule.Rule, error) {
	rl.ID = uuid.NewString()

	createLogic := func(ctx context.Context, tx connectionPool) (any, error) {
		queries := db.New(tx)
		if rl.IsDefault {
			if err := queries.ClearDefaultRule(ctx, rl.RuleType); err != nil {
				return rule.Rule{}, fmt.Errorf("failed to reset default rule: %w", err)
			}
		}
		err := queries.InsertRule(ctx, db.InsertRuleParams{
			ID:                  rl.ID,
			ServiceID:           rl.ServiceID,
			RuleType:            rl.RuleType,
			PointsPerBaseAmount: rl.PointsPerBaseAmount,
			BaseAmount:          rl.BaseAmount.ToPGNumeric(),
			IsDefault:           rl.IsDefault,
		})
		if err != nil {
			return rule.Rule{}, fmt.Errorf("failed to insert rule: %w", classify(err))
		}

		row, err := queries.GetRule(ctx, rl.ID)
		if err != nil {
			return rule.Rule{}, fmt.Errorf("failed to read created rule: %w", err)
		}
		return toRule(row)
	}

	createWithTX := func() (rule.Rule, error) {
		return WithTX[rule.Rule](ctx, r.pool, r.log, createLogic)
	}
	return WithRetry[rule.Rule](ctx, createWithTX, 0) //nolint: wrapcheck // error from wrapped function
}

func (r *RuleRepository) UpdateRule(ctx context.Context, rl rule.Rule) error {
	updateLogic := func(ctx context.Context, tx connectionPool) (any, error) {
		queries := db.New(tx)
		if rl.IsDefault {
			if err := queries.ClearDefaultRule(ctx, rl.RuleType); err != nil {
				return struct{}{}, fmt.Errorf("failed to reset default rule: %w", err)
			}
		}
		n, err := queries.UpdateRule(ctx, db.UpdateRuleParams{
			ID:                  rl.ID,
			ServiceID:           rl.ServiceID,
			RuleType:            rl.RuleType,
			PointsPerBaseAmount: rl.PointsPerBaseAmount,
			BaseAmount:          rl.BaseAmount.ToPGNumeric(),
			IsDefault:           rl.IsDefault,
		})
		if err != nil {
			return struct{}{}, fmt.Errorf("failed to update rule %s: %w", rl.ID, classify(err))
		}
		if n == 0 {
			return struct{}{}, fmt.Errorf("rule %s: %w", rl.ID, serviceerrs.ErrNotFound)
		}
		return struct{}{}, nil
	}

	updateWithTX := func() (struct{}, error) {
		return WithTX[struct{}](ctx, r.pool, r.log, updateLogic)
	}
	_, err := WithRetry[struct{}](ctx, updateWithTX, 0)
	return err //nolint: wrapcheck // error from wrapped function
}

func (r *RuleRepository) DeleteRule(ctx context.Context, id string) error {
	deleteLogic := func() (struct{}, error) {
		n, err := db.New(r.pool).DeleteRule(ctx, id)
		if err != nil {
			return struct{}{}, fmt.Errorf("failed to delete rule %s: %w", id, classify(err))
		}
		if n == 0 {
			return struct{}{}, fmt.Errorf("rule %s: %w", id, serviceerrs.ErrNotFound)
		}
		return struct{}{}, nil
	}

	_, err := WithRetry[struct{}](ctx, deleteLogic, 0)
	return err //nolint: wrapcheck // error from wrapped function
}

func (r *RuleRepository) ListServices(ctx context.Context) ([]rule.Service, error) {
	listLogic := func() ([]rule.Service, error) {
		rows, err := db.New(r.pool).ListServices(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list services: %w", err)
		}

		services := make([]rule.Service, len(rows))
		for i, row := range rows {
			services[i] = rule.Service{
				ID:          row.ID,
				Name:        row.Name,
				Description: row.Description,
			}
		}
		return services, nil
	}

	return WithRetry[[]rule.Service](ctx, listLogic, 0) //nolint: wrapcheck // error from wrapped function
}

func (r *RuleRepository) GetService(ctx context.Context, id string) (rule.Service, error) {
	findLogic := func() (rule.Service, error) {
		row, err := db.New(r.pool).GetService(ctx, id)
		if err != nil {
			return rule.Service{}, fmt.Errorf("failed to find service %s: %w", id, classify(err))
		}
		return rule.Service{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
		}, nil
	}

	return WithRetry[rule.Service](ctx, findLogic, 0) //nolint: wrapcheck // error from wrapped function
}

func (r *RuleRepository) CreateService(ctx context.Context, s rule.Service) (rule.Service, error) {
	s.ID = uuid.NewString()

	createLogic := func() (rule.Service, error) {
		err := db.New(r.pool).InsertService(ctx, db.InsertServiceParams{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
		})
		if err != nil {
			return rule.Service{}, fmt.Errorf("failed to insert service %q: %w", s.Name, classify(err))
		}
		return s, nil
	}

	return WithRetry[rule.Service](ctx, createLogic, 0) //nolint: wrapcheck // error from wrapped function
}

func toRule(row db.RuleRow) (rule.Rule, error) {
	base, err := model.FromPGNumeric(row.BaseAmount)
	if err != nil {
		return rule.Rule{}, fmt.Errorf("invalid base amount of rule %s: %w", row.ID, err)
	}
	return rule.Rule{
		ServiceID:           row.ServiceID,
		ServiceName:         row.ServiceName,
		ID:                  row.ID,
		RuleType:            row.RuleType,
		BaseAmount:          base,
		PointsPerBaseAmount: row.PointsPerBaseAmount,
		IsDefault:           row.IsDefault,
	}, nil
}
