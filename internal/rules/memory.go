package rules

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/talx-hub/points-ledger/internal/model/rule"
	"github.com/talx-hub/points-ledger/internal/serviceerrs"
)

// MemoryRepository backs the memory storage mode.
type MemoryRepository struct {
	rules    map[string]rule.Rule
	services map[string]rule.Service
	mu       sync.RWMutex
}

func NewMemoryRepository(services []rule.Service, rules []rule.Rule) *MemoryRepository {
	r := &MemoryRepository{
		rules:    make(map[string]rule.Rule, len(rules)),
		services: make(map[string]rule.Service, len(services)),
	}
	for _, s := range services {
		r.services[s.ID] = s
	}
	for _, rl := range rules {
		r.rules[rl.ID] = rl
	}
	return r
}

func (r *MemoryRepository) ListRules(_ context.Context) ([]rule.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rule.Rule, 0, len(r.rules))
	for _, rl := range r.rules {
		out = append(out, r.withServiceName(rl))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) GetRule(_ context.Context, id string) (rule.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rl, ok := r.rules[id]
	if !ok {
		return rule.Rule{}, fmt.Errorf("rule %s: %w", id, serviceerrs.ErrNotFound)
	}
	return r.withServiceName(rl), nil
}

func (r *MemoryRepository) RuleForService(_ context.Context, serviceID, ruleType string,
) (rule.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rl := range r.rules {
		if rl.ServiceID != nil && *rl.ServiceID == serviceID && rl.RuleType == ruleType {
			return r.withServiceName(rl), nil
		}
	}
	return rule.Rule{}, fmt.Errorf("rule of service %s: %w", serviceID, serviceerrs.ErrNotFound)
}

func (r *MemoryRepository) DefaultRule(_ context.Context, ruleType string) (rule.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rl := range r.rules {
		if rl.IsDefault && rl.RuleType == ruleType {
			return rl, nil
		}
	}
	return rule.Rule{}, fmt.Errorf("default rule: %w", serviceerrs.ErrNotFound)
}

func (r *MemoryRepository) CreateRule(_ context.Context, rl rule.Rule) (rule.Rule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rl.ID = uuid.NewString()
	if rl.IsDefault {
		r.clearDefault()
	}
	r.rules[rl.ID] = rl
	return r.withServiceName(rl), nil
}

func (r *MemoryRepository) UpdateRule(_ context.Context, rl rule.Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rules[rl.ID]; !ok {
		return fmt.Errorf("rule %s: %w", rl.ID, serviceerrs.ErrNotFound)
	}
	if rl.IsDefault {
		r.clearDefault()
	}
	r.rules[rl.ID] = rl
	return nil
}

func (r *MemoryRepository) DeleteRule(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rules[id]; !ok {
		return fmt.Errorf("rule %s: %w", id, serviceerrs.ErrNotFound)
	}
	delete(r.rules, id)
	return nil
}

func (r *MemoryRepository) ListServices(_ context.Context) ([]rule.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rule.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepository) GetService(_ context.Context, id string) (rule.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.services[id]
	if !ok {
		return rule.Service{}, fmt.Errorf("service %s: %w", id, serviceerrs.ErrNotFound)
	}
	return s, nil
}

func (r *MemoryRepository) CreateService(_ context.Context, s rule.Service) (rule.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.services {
		if existing.Name == s.Name {
			return rule.Service{}, fmt.Errorf("service %q: %w", s.Name, serviceerrs.ErrAlreadyExists)
		}
	}
	s.ID = uuid.NewString()
	r.services[s.ID] = s
	return s, nil
}

func (r *MemoryRepository) clearDefault() {
	for id, rl := range r.rules {
		if rl.IsDefault {
			rl.IsDefault = false
			r.rules[id] = rl
		}
	}
}

func (r *MemoryRepository) withServiceName(rl rule.Rule) rule.Rule {
	if rl.ServiceID == nil {
		return rl
	}
	if s, ok := r.services[*rl.ServiceID]; ok {
		name := s.Name
		rl.ServiceName = &name
	}
	return rl
}
