package bonus

import (
	"time"
)

type TransactionType string

const (
	TypeEarn TransactionType = "EARN"
	TypeBurn TransactionType = "BURN"
)

func (t TransactionType) IsValid() bool {
	return t == TypeEarn || t == TypeBurn
}

// Sign returns +1 for EARN and -1 for BURN.
func (t TransactionType) Sign() int64 {
	if t == TypeBurn {
		return -1
	}
	return 1
}

type Transaction struct {
	CreatedAt    time.Time       `json:"created_at"`
	ExternalRef  *string         `json:"external_ref,omitempty"`
	Description  *string         `json:"description,omitempty"`
	ID           string          `json:"id"`
	AccountID    string          `json:"account_id"`
	Type         TransactionType `json:"type"`
	Amount       int64           `json:"amount"`
	BalanceAfter int64           `json:"balance_after"`
}
