// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// Hundred is used for percentage arithmetic.
var Hundred = decimal.NewFromInt(100)

// ApplyPercentDiscount returns price reduced by pct percent.
// ApplyPercentDiscount(100, 15) = 85.
func ApplyPercentDiscount(price, pct Money) Money {
	factor := decimal.NewFromInt(1).Sub(pct.Div(Hundred))
	return price.Mul(factor)
}

// PercentOf returns pct percent of base.
// PercentOf(200, 50) = 100.
func PercentOf(base, pct Money) Money {
	return base.Mul(pct).Div(Hundred)
}

// MaxZero clamps negative values to zero. Final prices never go below zero.
func MaxZero(v Money) Money {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
