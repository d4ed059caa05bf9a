package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits every Money value carries
const MoneyScale = 2

var two = decimal.NewFromInt(2)

// Money is an immutable non-negative amount stored with exactly two fractional digits.
// The zero value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// NewMoney builds Money from a decimal, rounding half-up to two places
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, amount.String())
	}
	return Money{amount: amount.Round(MoneyScale)}, nil
}

// MoneyFromFloat builds Money from a float64
func MoneyFromFloat(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, fmt.Errorf("%w: %v is not a finite number", ErrInvalidAmount, amount)
	}
	return NewMoney(decimal.NewFromFloat(amount))
}

// MoneyFromString parses Money from its decimal string form ("150.00", "10.005")
func MoneyFromString(amount string) (Money, error) {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return Money{}, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, amount)
	}
	return NewMoney(d)
}

// MustMoney is MoneyFromString for literals known to be valid; it panics otherwise
func MustMoney(amount string) Money {
	m, err := MoneyFromString(amount)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns a zero amount
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Decimal returns the underlying rounded decimal
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns m + other
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).Round(MoneyScale)}
}

// Subtract returns m - other, failing when the result would be negative
func (m Money) Subtract(other Money) (Money, error) {
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrNegativeResult, m.String(), other.String())
	}
	return Money{amount: result.Round(MoneyScale)}, nil
}

// Halve returns half of m rounded half-up to two places
func (m Money) Halve() Money {
	return Money{amount: m.amount.Div(two).Round(MoneyScale)}
}

// IsGreaterThan returns true if m > other
func (m Money) IsGreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// IsLessThan returns true if m < other
func (m Money) IsLessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// IsEqualTo compares numerically, so 150 and 150.00 are equal
func (m Money) IsEqualTo(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsAtLeast returns true if m >= other
func (m Money) IsAtLeast(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is greater than zero
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// String returns the plain two-decimal form, e.g. "1234.50"
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

// Format returns the amount as a Brazilian real currency string, e.g. "R$ 1.234,50"
func (m Money) Format() string {
	fixed := m.amount.StringFixed(MoneyScale)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	return "R$ " + grouped.String() + "," + fracPart
}
