// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package money

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromString(t *testing.T) {
	tests := []struct {
		amount, code string
		decimal      string
		str          string
	}{
		{"799.50", "CZK", "799.50", "799.50 CZK"},
		{"799.5", "CZK", "799.50", "799.50 CZK"},
		{"1", "EUR", "1.00", "1.00 EUR"},
		{"0", "CZK", "0.00", "0.00 CZK"},
		{"1500", "JPY", "1500", "1500 JPY"},
		{"9999999.99", "CZK", "9999999.99", "9999999.99 CZK"},
	}
	for _, tt := range tests {
		m, err := NewFromString(tt.amount, tt.code)
		require.NoError(t, err, "%s %s", tt.amount, tt.code)
		assert.Equal(t, tt.decimal, m.Decimal())
		assert.Equal(t, tt.code, m.CurrencyCode())
		assert.Equal(t, tt.str, m.String())
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		amount, code string
		err          error
	}{
		{"1", "", ErrInvalidCurrency},
		{"1", "CZ", ErrInvalidCurrency},
		{"1", "QQQ", ErrInvalidCurrency},
		{"abc", "CZK", ErrInvalidAmount},
		{"-1", "CZK", ErrInvalidAmount},
		{"1.005", "CZK", ErrInvalidAmount},
		{"1.5", "JPY", ErrInvalidAmount},
	}
	for _, tt := range tests {
		_, err := NewFromString(tt.amount, tt.code)
		assert.ErrorIs(t, err, tt.err, "%s %s", tt.amount, tt.code)
	}
}

func TestNewFromMinor(t *testing.T) {
	m, err := NewFromMinor(79950, "CZK")
	require.NoError(t, err)
	assert.Equal(t, "799.50", m.Decimal())
	assert.True(t, m.Equal(Must(NewFromString("799.5", "CZK"))))
	assert.False(t, m.Equal(Must(NewFromString("799.5", "EUR"))))
	assert.False(t, m.Equal(Must(NewFromString("799.49", "CZK"))))

	m, err = NewFromMinor(1500, "JPY")
	require.NoError(t, err)
	assert.Equal(t, "1500", m.Decimal())

	_, err = NewFromMinor(-1, "CZK")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = NewFromMinor(1, "??")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestAccessors(t *testing.T) {
	d := decimal.RequireFromString("12.3")
	m, err := New(d, "EUR")
	require.NoError(t, err)
	assert.True(t, d.Equal(m.Amount()))
	assert.Equal(t, "EUR", m.Currency().String())
}

func TestMust(t *testing.T) {
	assert.Panics(t, func() { Must(NewFromString("x", "CZK")) })
}

func ExampleNewFromMinor() {
	m, err := NewFromMinor(79950, "CZK")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(m.Decimal(), m.CurrencyCode())
	// Output: 799.50 CZK
}
