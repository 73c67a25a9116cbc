package rules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/model/rule"
	"github.com/talx-hub/points-ledger/internal/serviceerrs"
)

type Repository interface {
	ListRules(ctx context.Context) ([]rule.Rule, error)
	GetRule(ctx context.Context, id string) (rule.Rule, error)
	RuleForService(ctx context.Context, serviceID, ruleType string) (rule.Rule, error)
	DefaultRule(ctx context.Context, ruleType string) (rule.Rule, error)
	CreateRule(ctx context.Context, r rule.Rule) (rule.Rule, error)
	UpdateRule(ctx context.Context, r rule.Rule) error
	DeleteRule(ctx context.Context, id string) error

	ListServices(ctx context.Context) ([]rule.Service, error)
	GetService(ctx context.Context, id string) (rule.Service, error)
	CreateService(ctx context.Context, s rule.Service) (rule.Service, error)
}

// Service resolves points for money spent and administers rules and services.
type Service struct {
	repo Repository
	log  *slog.Logger
}

func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ResolvePoints applies the earning rule of the service, falling back to
// the default rule and then to one point per money unit. Only full base
// amounts earn points.
func (s *Service) ResolvePoints(ctx context.Context, serviceID *string, money model.Amount,
) (int64, error) {
	r, err := s.earningRule(ctx, serviceID)
	if err != nil {
		return 0, err
	}

	points, err := Points(r, money)
	if err != nil {
		return 0, err
	}
	if points <= 0 {
		return 0, fmt.Errorf("%w: %s is below the rule base amount %s",
			serviceerrs.ErrInvalidArgument, money.String(), r.BaseAmount.String())
	}
	return points, nil
}

// Points applies r to money. A product that does not fit in int64 is
// rejected rather than wrapped.
func Points(r rule.Rule, money model.Amount) (int64, error) {
	base := r.BaseAmount.TotalCents()
	if base <= 0 || r.PointsPerBaseAmount <= 0 || money.TotalCents() <= 0 {
		return 0, nil
	}
	units := money.TotalCents() / base
	perUnit := int64(r.PointsPerBaseAmount)
	if units > math.MaxInt64/perUnit {
		return 0, fmt.Errorf("%w: %s earns more points than a balance can hold",
			serviceerrs.ErrInvalidArgument, money.String())
	}
	return units * perUnit, nil
}

func (s *Service) earningRule(ctx context.Context, serviceID *string) (rule.Rule, error) {
	if serviceID != nil && *serviceID != "" {
		if _, err := s.repo.GetService(ctx, *serviceID); err != nil {
			return rule.Rule{}, fmt.Errorf("failed to find service %s: %w", *serviceID, err)
		}
		r, err := s.repo.RuleForService(ctx, *serviceID, rule.TypeEarning)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, serviceerrs.ErrNotFound) {
			return rule.Rule{}, fmt.Errorf("failed to find rule of service %s: %w", *serviceID, err)
		}
	}

	r, err := s.repo.DefaultRule(ctx, rule.TypeEarning)
	if errors.Is(err, serviceerrs.ErrNotFound) {
		s.log.LogAttrs(ctx, slog.LevelDebug, "no default rule, converting one to one")
		return rule.Rule{
			RuleType:            rule.TypeEarning,
			BaseAmount:          model.NewAmount(1, 0),
			PointsPerBaseAmount: 1,
		}, nil
	}
	if err != nil {
		return rule.Rule{}, fmt.Errorf("failed to find default rule: %w", err)
	}
	return r, nil
}

func (s *Service) ListRules(ctx context.Context) ([]rule.Rule, error) {
	return s.repo.ListRules(ctx) //nolint: wrapcheck // error from wrapped function
}

func (s *Service) GetRule(ctx context.Context, id string) (rule.Rule, error) {
	return s.repo.GetRule(ctx, id) //nolint: wrapcheck // error from wrapped function
}

func (s *Service) CreateRule(ctx context.Context, r rule.Rule) (rule.Rule, error) {
	if err := s.validateRule(ctx, &r); err != nil {
		return rule.Rule{}, err
	}
	created, err := s.repo.CreateRule(ctx, r)
	if err != nil {
		return rule.Rule{}, fmt.Errorf("failed to create rule: %w", err)
	}
	return created, nil
}

func (s *Service) UpdateRule(ctx context.Context, r rule.Rule) error {
	if err := s.validateRule(ctx, &r); err != nil {
		return err
	}
	if err := s.repo.UpdateRule(ctx, r); err != nil {
		return fmt.Errorf("failed to update rule %s: %w", r.ID, err)
	}
	return nil
}

func (s *Service) DeleteRule(ctx context.Context, id string) error {
	if err := s.repo.DeleteRule(ctx, id); err != nil {
		return fmt.Errorf("failed to delete rule %s: %w", id, err)
	}
	return nil
}

func (s *Service) ListServices(ctx context.Context) ([]rule.Service, error) {
	return s.repo.ListServices(ctx) //nolint: wrapcheck // error from wrapped function
}

func (s *Service) GetService(ctx context.Context, id string) (rule.Service, error) {
	return s.repo.GetService(ctx, id) //nolint: wrapcheck // error from wrapped function
}

func (s *Service) CreateService(ctx context.Context, svc rule.Service) (rule.Service, error) {
	svc.Name = strings.TrimSpace(svc.Name)
	if svc.Name == "" {
		return rule.Service{}, fmt.Errorf("%w: service name is empty", serviceerrs.ErrInvalidArgument)
	}
	created, err := s.repo.CreateService(ctx, svc)
	if err != nil {
		return rule.Service{}, fmt.Errorf("failed to create service %q: %w", svc.Name, err)
	}
	return created, nil
}

func (s *Service) validateRule(ctx context.Context, r *rule.Rule) error {
	if r.RuleType == "" {
		r.RuleType = rule.TypeEarning
	}
	if r.PointsPerBaseAmount <= 0 {
		return fmt.Errorf("%w: points per base amount must be positive",
			serviceerrs.ErrInvalidArgument)
	}
	if r.BaseAmount.IsZero() {
		return fmt.Errorf("%w: base amount must be positive", serviceerrs.ErrInvalidArgument)
	}
	if r.ServiceID != nil && *r.ServiceID == "" {
		r.ServiceID = nil
	}
	if r.ServiceID == nil && !r.IsDefault {
		return fmt.Errorf("%w: rule needs a service or the default flag",
			serviceerrs.ErrInvalidArgument)
	}
	if r.ServiceID != nil {
		if _, err := s.repo.GetService(ctx, *r.ServiceID); err != nil {
			return fmt.Errorf("failed to find service %s: %w", *r.ServiceID, err)
		}
	}
	return nil
}
