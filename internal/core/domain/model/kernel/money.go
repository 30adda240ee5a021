package kernel

import (
	"fmt"

	"foodorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a non-negative decimal amount in the restaurant's currency, kept to
// cents. Binary floating point is never used for prices.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney is the zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney rounds amount to cents and rejects negative values.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money", fmt.Errorf("%s is negative", amount.String()))
	}
	return Money{amount: amount.Round(2)}, nil
}

// MoneyFromString parses a decimal literal such as "20.00".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(d)
}

// MustMoney is MoneyFromString for literals known to be valid.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub fails instead of producing a negative amount.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

// Mul multiplies by a quantity. Negative quantities yield an error.
func (m Money) Mul(quantity int) (Money, error) {
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(quantity))))
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}

func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalText(b []byte) error {
	parsed, err := MoneyFromString(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
