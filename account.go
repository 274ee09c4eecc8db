// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spayd

import (
	"strings"
	"time"
)

// An Account identifies a bank account by IBAN and optional BIC.
type Account struct {
	IBAN string
	BIC  string
}

// IBAN returns an Account without BIC.
func IBAN(iban string) Account {
	return Account{IBAN: iban}
}

// ParseAccount parses "IBAN" or "IBAN+BIC".
func ParseAccount(s string) (Account, error) {
	iban, bic, _ := strings.Cut(s, "+")
	a := Account{iban, bic}
	return a, a.check(KeyAccount.String())
}

// String returns the account as encoded in the ACC field.
func (a Account) String() string {
	if a.BIC == "" {
		return a.IBAN
	}
	return a.IBAN + "+" + a.BIC
}

func (a Account) check(key string) error {
	switch {
	case a.IBAN == "":
		return invalidField(key, "empty IBAN")
	case strings.ContainsAny(a.IBAN, "+,*"):
		return invalidField(key, "IBAN %q contains a separator", a.IBAN)
	case strings.ContainsAny(a.BIC, "+,*"):
		return invalidField(key, "BIC %q contains a separator", a.BIC)
	}
	return nil
}

// An Amount is a monetary value already rounded by the caller.
type Amount interface {
	// Decimal returns the amount as a fixed-point decimal, e.g. "799.50".
	Decimal() string
	// CurrencyCode returns the ISO 4217 code, e.g. "CZK".
	CurrencyCode() string
}

const dateLayout = "20060102"

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
