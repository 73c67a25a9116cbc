package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/model/bonus"
	"github.com/talx-hub/points-ledger/internal/model/rule"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct flattens validator failures into one error per field.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fmt.Errorf("field %s failed on %q", fe.Field(), fe.Tag()))
	}
	return errors.Join(errs...)
}

type LoginRequest struct {
	UserID string `json:"userId" validate:"max=128"`
}

func (r *LoginRequest) IsValid() error {
	return validateStruct(r)
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type EarnRequest struct {
	ServiceID   *string     `json:"serviceId,omitempty" validate:"omitempty,uuid"`
	ExternalRef *string     `json:"externalRef,omitempty" validate:"omitempty,min=1,max=128"`
	Description *string     `json:"description,omitempty" validate:"omitempty,max=512"`
	Amount      json.Number `json:"amount" validate:"required"`
}

func (r *EarnRequest) IsValid() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	_, err := r.Money()
	return err
}

// Money parses the amount of money spent, which must be positive.
func (r *EarnRequest) Money() (model.Amount, error) {
	a, err := model.FromString(r.Amount.String())
	if err != nil {
		return model.Amount{}, fmt.Errorf("bad amount: %w", err)
	}
	if a.IsZero() {
		return model.Amount{}, errors.New("amount must be positive")
	}
	return a, nil
}

type BurnRequest struct {
	ExternalRef *string `json:"externalRef,omitempty" validate:"omitempty,min=1,max=128"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=512"`
	Amount      int64   `json:"amount" validate:"gt=0"`
}

func (r *BurnRequest) IsValid() error {
	return validateStruct(r)
}

type MutationResponse struct {
	OwnerID string `json:"ownerId"`
	Balance int64  `json:"balance"`
	Applied bool   `json:"applied"`
}

type BalanceResponse struct {
	OwnerID string `json:"ownerId"`
	Balance int64  `json:"balance"`
}

type TransactionResponse struct {
	CreatedAt    time.Time             `json:"createdAt"`
	ExternalRef  *string               `json:"externalRef,omitempty"`
	Description  *string               `json:"description,omitempty"`
	ID           string                `json:"id"`
	Type         bonus.TransactionType `json:"type"`
	Amount       int64                 `json:"amount"`
	BalanceAfter int64                 `json:"balanceAfter"`
}

type TransactionsResponse struct {
	Items []TransactionResponse `json:"items"`
	Total int64                 `json:"total"`
}

func NewTransactionsResponse(items []bonus.Transaction, total int64) TransactionsResponse {
	resp := TransactionsResponse{
		Items: make([]TransactionResponse, 0, len(items)),
		Total: total,
	}
	for _, tx := range items {
		resp.Items = append(resp.Items, TransactionResponse{
			CreatedAt:    tx.CreatedAt,
			ExternalRef:  tx.ExternalRef,
			Description:  tx.Description,
			ID:           tx.ID,
			Type:         tx.Type,
			Amount:       tx.Amount,
			BalanceAfter: tx.BalanceAfter,
		})
	}
	return resp
}

type RuleRequest struct {
	ServiceID           *string     `json:"serviceId,omitempty" validate:"omitempty,uuid"`
	RuleType            string      `json:"ruleType" validate:"omitempty,oneof=EARNING"`
	BaseAmount          json.Number `json:"baseAmount" validate:"required"`
	PointsPerBaseAmount int32       `json:"pointsPerBaseAmount" validate:"gt=0"`
	IsDefault           bool        `json:"isDefault"`
}

func (r *RuleRequest) IsValid() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if r.ServiceID == nil && !r.IsDefault {
		return errors.New("rule needs a serviceId or isDefault")
	}
	return nil
}

// ToRule builds the domain rule; id is empty for a new rule.
func (r *RuleRequest) ToRule(id string) (rule.Rule, error) {
	base, err := model.FromString(r.BaseAmount.String())
	if err != nil {
		return rule.Rule{}, fmt.Errorf("bad base amount: %w", err)
	}
	return rule.Rule{
		ServiceID:           r.ServiceID,
		ID:                  id,
		RuleType:            r.RuleType,
		BaseAmount:          base,
		PointsPerBaseAmount: r.PointsPerBaseAmount,
		IsDefault:           r.IsDefault,
	}, nil
}

type RuleResponse struct {
	ServiceID           *string     `json:"serviceId,omitempty"`
	ServiceName         *string     `json:"serviceName,omitempty"`
	ID                  string      `json:"id"`
	RuleType            string      `json:"ruleType"`
	BaseAmount          json.Number `json:"baseAmount"`
	PointsPerBaseAmount int32       `json:"pointsPerBaseAmount"`
	IsDefault           bool        `json:"isDefault"`
}

func NewRuleResponse(r rule.Rule) RuleResponse {
	return RuleResponse{
		ServiceID:           r.ServiceID,
		ServiceName:         r.ServiceName,
		ID:                  r.ID,
		RuleType:            r.RuleType,
		BaseAmount:          json.Number(r.BaseAmount.String()),
		PointsPerBaseAmount: r.PointsPerBaseAmount,
		IsDefault:           r.IsDefault,
	}
}

type ServiceRequest struct {
	Name        string `json:"name" validate:"required,max=128"`
	Description string `json:"description" validate:"max=1024"`
}

func (r *ServiceRequest) IsValid() error {
	return validateStruct(r)
}

type ServiceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func NewServiceResponse(s rule.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
	}
}
