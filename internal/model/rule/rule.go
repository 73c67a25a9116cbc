package rule

import "github.com/talx-hub/points-ledger/internal/model"

const TypeEarning = "EARNING"

// Rule converts money spent on a service into points:
// every full BaseAmount yields PointsPerBaseAmount points.
type Rule struct {
	ServiceID           *string
	ServiceName         *string
	ID                  string
	RuleType            string
	BaseAmount          model.Amount
	PointsPerBaseAmount int32
	IsDefault           bool
}

type Service struct {
	ID          string
	Name        string
	Description string
}
