// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spayd encodes Short Payment Descriptors, the payment format
of Czech QR payments (https://qr-platba.cz/pro-vyvojare/specifikace-formatu/),
with optional embedded Short Invoice Descriptors.

A descriptor is a list of "KEY:value" fields terminated by "*",
starting with the format tag and version and the payee account, and
ending with the CRC-32 of everything before it:

	SPD*1.0*ACC:CZ7801000000000000000123*AM:799.50*CC:CZK*CRC32:8a0f48b6

Descriptor and Invoice are immutable values built by chaining With
methods.  Builder wraps a Descriptor for callers that add and remove
fields in place.  Package qrcode renders descriptors as QR codes.
*/
package spayd

import (
	"strconv"
	"strings"
	"time"
)

// Wire format constants.
const (
	MIMEType      = "application/x-shortpaymentdescriptor"
	FileExtension = "spayd"

	Separator  = ":" // between key and value
	Terminator = "*" // after each field

	format  = "SPD"
	version = "1.0"
)

// A Descriptor is a Short Payment Descriptor.
//
// A Descriptor is an immutable value.  Methods that add or remove
// fields return a new Descriptor.  The first error encountered while
// building a Descriptor is retained; it is reported by Err and by the
// encoding methods, and further fields are not added.
//
// Fields are encoded in the order they were last set, after ACC and
// before CRC32.
type Descriptor struct {
	account Account
	fields  FieldMap
	noCRC   bool
	err     error
}

// New returns a Descriptor for payments to account.
func New(account Account) Descriptor {
	return Descriptor{
		account: account,
		err:     account.check(KeyAccount.String()),
	}
}

// Create returns a Descriptor for a payment of amount to account.
func Create(account Account, amount Amount) Descriptor {
	return New(account).WithAmount(amount)
}

// CreateWithInvoice returns a Descriptor for the payment of inv to
// account.
func CreateWithInvoice(account Account, inv Invoice) Descriptor {
	return New(account).WithInvoice(inv)
}

// WithRaw returns a copy of d with the field key set to value.
// The value is used as is.  ACC and CRC32 are reserved.
func (d Descriptor) WithRaw(key, value string) Descriptor {
	if d.err != nil {
		return d
	}
	if key == KeyAccount.String() || key == KeyChecksum.String() {
		d.err = invalidField(key, "reserved key")
		return d
	}
	d.fields, d.err = d.fields.Set(key, value)
	return d
}

// With returns a copy of d with the field key set to value.
func (d Descriptor) With(key Key, value string) Descriptor {
	return d.WithRaw(key.String(), value)
}

// WithoutRaw returns a copy of d without the field key.
func (d Descriptor) WithoutRaw(key string) Descriptor {
	d.fields = d.fields.Remove(key)
	return d
}

// Without returns a copy of d without the field key.  AM and CC are
// removed together.
func (d Descriptor) Without(key Key) Descriptor {
	switch key {
	case KeyAmount, KeyCurrencyCode:
		return d.WithoutRaw(KeyAmount.String()).
			WithoutRaw(KeyCurrencyCode.String())
	}
	return d.WithoutRaw(key.String())
}

// WithChecksum returns a copy of d with the CRC32 field enabled or
// disabled.  It is enabled by default.
func (d Descriptor) WithChecksum(enabled bool) Descriptor {
	d.noCRC = !enabled
	return d
}

// WithAmount sets the AM and CC fields, in that order.
func (d Descriptor) WithAmount(amount Amount) Descriptor {
	if d.err != nil {
		return d
	}
	if amount == nil {
		d.err = invalidField(KeyAmount.String(), "missing amount")
		return d
	}
	return d.With(KeyAmount, amount.Decimal()).
		With(KeyCurrencyCode, amount.CurrencyCode())
}

// WithAlternativeAccounts sets the ALT-ACC field.
func (d Descriptor) WithAlternativeAccounts(accounts ...Account) Descriptor {
	if d.err != nil {
		return d
	}
	key := KeyAlternativeAccount.String()
	if len(accounts) == 0 {
		d.err = invalidField(key, "no accounts")
		return d
	}
	s := make([]string, len(accounts))
	for i, a := range accounts {
		if d.err = a.check(key); d.err != nil {
			return d
		}
		s[i] = a.String()
	}
	return d.WithRaw(key, strings.Join(s, ","))
}

// WithInvoice sets the amount of inv as by WithAmount, and the X-INV
// field to inv.
func (d Descriptor) WithInvoice(inv Invoice) Descriptor {
	if d.err != nil {
		return d
	}
	if d.err = inv.Err(); d.err != nil {
		return d
	}
	return d.WithAmount(inv.Amount()).With(KeyInvoice, inv.String())
}

// WithDueDate sets the DT field to the date of t.
func (d Descriptor) WithDueDate(t time.Time) Descriptor {
	return d.With(KeyDueDate, formatDate(t))
}

// WithConstantSymbol sets the X-KS field.
func (d Descriptor) WithConstantSymbol(n uint64) Descriptor {
	return d.With(KeyConstantSymbol, strconv.FormatUint(n, 10))
}

// WithSpecificSymbol sets the X-SS field.
func (d Descriptor) WithSpecificSymbol(n uint64) Descriptor {
	return d.With(KeySpecificSymbol, strconv.FormatUint(n, 10))
}

// WithVariableSymbol sets the X-VS field.
func (d Descriptor) WithVariableSymbol(n uint64) Descriptor {
	return d.With(KeyVariableSymbol, strconv.FormatUint(n, 10))
}

// WithReference sets the RF field, the payer's reference.
func (d Descriptor) WithReference(n uint64) Descriptor {
	return d.With(KeyReference, strconv.FormatUint(n, 10))
}

// WithMessage sets the MSG field, a message for the payee.
func (d Descriptor) WithMessage(msg string) Descriptor {
	return d.With(KeyMessage, msg)
}

// WithRecipientName sets the RN field.
func (d Descriptor) WithRecipientName(name string) Descriptor {
	return d.With(KeyRecipientName, name)
}

// WithPaymentType sets the PT field.
func (d Descriptor) WithPaymentType(t PaymentType) Descriptor {
	return d.With(KeyPaymentType, string(t))
}

// WithNotification sets the NT and NO fields, asking the payer's bank
// to notify the payee by phone or e-mail.
func (d Descriptor) WithNotification(kind NotificationKind, address string) Descriptor {
	return d.With(KeyNotificationType, string(kind)).
		With(KeyNotification, address)
}

// Account returns the payee account.
func (d Descriptor) Account() Account { return d.account }

// Get returns the value of the field key.
func (d Descriptor) Get(key Key) (string, bool) { return d.fields.Get(key.String()) }

// Fields returns the fields other than ACC and CRC32 in order.
func (d Descriptor) Fields() []Field { return d.fields.Entries() }

// Err returns the first error encountered while building d.
func (d Descriptor) Err() error { return d.err }

// Encode returns the encoded descriptor.  Errors wrap
// ErrCouldNotSerializeDescriptor.
func (d Descriptor) Encode() (string, error) {
	if d.err != nil {
		return "", couldNotSerialize(d.err)
	}
	if err := d.account.check(KeyAccount.String()); err != nil {
		return "", couldNotSerialize(err)
	}
	var b strings.Builder
	b.WriteString(format)
	b.WriteString(Terminator)
	b.WriteString(version)
	writeField(&b, Terminator, KeyAccount.String(), d.account.String())
	for _, f := range d.fields.f {
		writeField(&b, Terminator, f.Key, escape(f.Value))
	}
	if !d.noCRC {
		sum := Checksum([]byte(b.String()))
		writeField(&b, Terminator, KeyChecksum.String(), sum)
	}
	return b.String(), nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Descriptor) MarshalText() ([]byte, error) {
	s, err := d.Encode()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// String returns the encoded descriptor, or "" if d is invalid.
func (d Descriptor) String() string {
	s, _ := d.Encode()
	return s
}

// escape percent-encodes the terminator in a field value.
func escape(s string) string {
	return strings.ReplaceAll(s, Terminator, "%2A")
}
