package rules

import (
	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/model/rule"
)

const (
	ServiceCarWash = "11111111-1111-1111-1111-111111111111"
	ServiceTowing  = "22222222-2222-2222-2222-222222222222"
	ServiceRentals = "33333333-3333-3333-3333-333333333333"
)

// Seed mirrors the rows inserted by the seed migration.
func Seed() ([]rule.Service, []rule.Rule) {
	services := []rule.Service{
		{ID: ServiceCarWash, Name: "Car Wash", Description: "Standard car wash service"},
		{ID: ServiceTowing, Name: "Towing", Description: "Roadside towing service"},
		{ID: ServiceRentals, Name: "Rentals", Description: "Vehicle rental service"},
	}

	hundred := model.NewAmount(100, 0)
	svc := func(id string) *string { return &id }
	rules := []rule.Rule{
		{
			ID: "aaaaaaaa-0001-0001-0001-000000000000", RuleType: rule.TypeEarning,
			BaseAmount: model.NewAmount(1, 0), PointsPerBaseAmount: 1, IsDefault: true,
		},
		{
			ID: "aaaaaaaa-0001-0001-0001-000000000001", ServiceID: svc(ServiceCarWash),
			RuleType: rule.TypeEarning, BaseAmount: hundred, PointsPerBaseAmount: 10,
		},
		{
			ID: "aaaaaaaa-0001-0001-0001-000000000002", ServiceID: svc(ServiceTowing),
			RuleType: rule.TypeEarning, BaseAmount: hundred, PointsPerBaseAmount: 5,
		},
		{
			ID: "aaaaaaaa-0001-0001-0001-000000000003", ServiceID: svc(ServiceRentals),
			RuleType: rule.TypeEarning, BaseAmount: hundred, PointsPerBaseAmount: 2,
		},
	}
	return services, rules
}
