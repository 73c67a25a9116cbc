package model

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"
)

const centsInUnit = 100

// Amount is a non-negative money value with two fractional digits.
type Amount struct {
	units int64
	cents int64
}

func NewAmount(units, cents int64) Amount {
	total := units*centsInUnit + cents
	return Amount{
		units: total / centsInUnit,
		cents: total % centsInUnit,
	}
}

func (a *Amount) TotalCents() int64 {
	return a.units*centsInUnit + a.cents
}

func (a *Amount) ToFloat64() float64 {
	return float64(a.units) + float64(a.cents)/centsInUnit
}

func (a *Amount) IsZero() bool {
	return a.TotalCents() == 0
}

func (a Amount) String() string {
	return fmt.Sprintf("%d.%02d", a.units, a.cents)
}

func FromFloat(amount float64) (Amount, error) {
	if amount < 0 {
		return Amount{}, errors.New("money amount must be positive")
	}
	const maxPreciseInt = 9007199254740992
	if amount*centsInUnit >= maxPreciseInt {
		return Amount{}, errors.New("amount overflow")
	}

	var a Amount
	totalCents := int64(math.Round(amount * centsInUnit))
	a.units = totalCents / centsInUnit
	a.cents = totalCents % centsInUnit

	return a, nil
}

func FromString(amount string) (Amount, error) {
	f, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return Amount{}, fmt.Errorf("failed to parse amount %q: %w", amount, err)
	}
	return FromFloat(f)
}

func (a *Amount) ToPGNumeric() pgtype.Numeric {
	return pgtype.Numeric{
		Int:   big.NewInt(a.TotalCents()),
		Exp:   -2,
		Valid: true,
	}
}

func FromPGNumeric(n pgtype.Numeric) (Amount, error) {
	if !n.Valid {
		return Amount{}, errors.New("numeric is NULL")
	}
	f, err := n.Float64Value()
	if err != nil {
		return Amount{}, fmt.Errorf("failed to convert numeric: %w", err)
	}
	return FromFloat(f.Float64)
}
