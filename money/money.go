// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package money provides the monetary amounts used in payment
// descriptors: a decimal amount in an ISO 4217 currency, formatted with
// the currency's standard number of decimal places.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Errors returned by New and its variants.
var (
	ErrInvalidCurrency = errors.New("money: invalid currency")
	ErrInvalidAmount   = errors.New("money: invalid amount")
)

// Money is an immutable non-negative amount of a currency.
type Money struct {
	amount decimal.Decimal
	unit   currency.Unit
}

// New returns amount of the currency with ISO 4217 code.  The amount
// must be non-negative and have no more decimal places than the
// currency uses; it is never rounded.
func New(amount decimal.Decimal, code string) (Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Money{}, fmt.Errorf("%w %q: %w", ErrInvalidCurrency, code, err)
	}
	m := Money{amount, unit}
	switch {
	case amount.IsNegative():
		return Money{}, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, amount)
	case !amount.Equal(amount.Truncate(m.scale())):
		return Money{}, fmt.Errorf("%w: %s has more than %d decimal places for %s",
			ErrInvalidAmount, amount, m.scale(), unit)
	}
	return m, nil
}

// NewFromString parses a decimal amount, as in "799.50".
func NewFromString(amount, code string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w %q: %w", ErrInvalidAmount, amount, err)
	}
	return New(d, code)
}

// NewFromMinor returns an amount given in minor units of the currency,
// so that NewFromMinor(79950, "CZK") is 799.50 CZK.
func NewFromMinor(minor int64, code string) (Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Money{}, fmt.Errorf("%w %q: %w", ErrInvalidCurrency, code, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return New(decimal.New(minor, -int32(scale)), code)
}

// Must returns m, panicking if err is not nil.  It is intended for
// tests and package-level variables.
func Must(m Money, err error) Money {
	if err != nil {
		panic(err)
	}
	return m
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency returns the currency.
func (m Money) Currency() currency.Unit { return m.unit }

// Decimal returns the amount with the currency's number of decimal
// places.
func (m Money) Decimal() string {
	return m.amount.StringFixed(m.scale())
}

// CurrencyCode returns the ISO 4217 currency code.
func (m Money) CurrencyCode() string {
	return m.unit.String()
}

// Equal reports whether m and o are the same amount of the same
// currency.
func (m Money) Equal(o Money) bool {
	return m.unit == o.unit && m.amount.Equal(o.amount)
}

// String formats m as "<amount> <currency>", for example "799.50 CZK".
func (m Money) String() string {
	return m.Decimal() + " " + m.CurrencyCode()
}

func (m Money) scale() int32 {
	scale, _ := currency.Standard.Rounding(m.unit)
	return int32(scale)
}
