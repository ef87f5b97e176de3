package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// minorUnitExponent is the decimal exponent used when formatting amounts for
// display. All arithmetic stays in integer minor units.
const minorUnitExponent = -2

// Money is an integer minor-unit amount paired with a currency code.
// Core logic never converts to floating point; formatting happens only at
// the serialization boundary.
type Money struct {
	Amount       int64  `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

func NewMoney(amount int64, currencyCode string) Money {
	return Money{Amount: amount, CurrencyCode: currencyCode}
}

func (m Money) Sub(amount int64) Money {
	m.Amount -= amount
	return m
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

func (m Money) IsNegative() bool {
	return m.Amount < 0
}

// String renders the amount in major units, e.g. Money{250050, "IDR"} -> "IDR 2500.50".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.CurrencyCode, m.Formatted())
}

// Formatted returns the major-unit decimal representation of the amount.
func (m Money) Formatted() string {
	return decimal.New(m.Amount, minorUnitExponent).StringFixed(2)
}
