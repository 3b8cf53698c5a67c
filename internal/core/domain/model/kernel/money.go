package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrCurrencyIsNotConstructed indicates a zero-value Currency.
	ErrCurrencyIsNotConstructed = errs.NewValueIsRequiredError("Currency must be created via NewCurrency")

	// ErrMoneyIsNotConstructed indicates a zero-value Money.
	ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney or ZeroMoney")

	// ErrCurrencyMismatch is returned by arithmetic on two Money values carrying
	// different currencies. No implicit conversion exists in this core.
	ErrCurrencyMismatch = errs.NewValueIsInvalidError("money operands carry different currencies")
)

// Currency is an ISO 4217 alphabetic code value object ("EUR", "USD").
type Currency struct {
	code string
}

// NewCurrency validates and creates a Currency from a three-letter code.
// Lowercase input is accepted and normalized.
func NewCurrency(code string) (Currency, error) {
	if code == "" {
		return Currency{}, errs.NewValueIsRequiredError("currency")
	}
	if len(code) != 3 {
		return Currency{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a three-letter ISO 4217 code", code))
	}

	normalized := make([]byte, 3)
	for i := 0; i < 3; i++ {
		c := code[i]
		switch {
		case c >= 'A' && c <= 'Z':
			normalized[i] = c
		case c >= 'a' && c <= 'z':
			normalized[i] = c - ('a' - 'A')
		default:
			return Currency{}, errs.NewValueIsInvalidErrorWithCause("currency",
				fmt.Errorf("%q contains non-letter characters", code))
		}
	}

	return Currency{code: string(normalized)}, nil
}

// Code returns the uppercase three-letter code.
func (c Currency) Code() string {
	return c.code
}

// IsEqual compares two currencies by code.
func (c Currency) IsEqual(other Currency) bool {
	return c.code == other.code
}

// Validate returns ErrCurrencyIsNotConstructed for the zero value.
func (c Currency) Validate() error {
	if c.code == "" {
		return ErrCurrencyIsNotConstructed
	}
	return nil
}

// Money is an exact decimal amount in a single currency.
//
// Arithmetic is exact; rounding to the currency's conventional two decimal
// places happens only at presentation boundaries via Rounded. Money values are
// immutable; every operation returns a new value.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a Money value. Negative amounts are permitted (refund
// ledgers subtract fees); callers that require non-negative amounts check
// IsNegative at their boundary.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if err := currency.Validate(); err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: currency}, nil
}

// ZeroMoney creates a zero amount in the given currency.
func ZeroMoney(currency Currency) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

// Amount returns the exact decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency of the amount.
func (m Money) Currency() Currency {
	return m.currency
}

// Add returns m + other. Both operands must carry the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}
	if !m.currency.IsEqual(other.currency) {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Sub returns m - other. Both operands must carry the same currency.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}
	if !m.currency.IsEqual(other.currency) {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Mul returns the amount scaled by the given factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// Rounded returns the amount rounded half away from zero to two decimal
// places, the conventional minor-unit precision.
func (m Money) Rounded() Money {
	return Money{amount: m.amount.Round(2), currency: m.currency}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Cmp compares the amounts of two same-currency values: -1 if m < other,
// 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// IsEqual reports whether amount and currency both match.
func (m Money) IsEqual(other Money) bool {
	return m.currency.IsEqual(other.currency) && m.amount.Equal(other.amount)
}

// String renders "12.34 EUR" for logs and errors.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.String(), m.currency.Code())
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	if m.currency.code == "" {
		return ErrMoneyIsNotConstructed
	}
	return nil
}
