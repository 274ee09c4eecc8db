// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spayd

import (
	"strings"
	"time"
)

// Short Invoice Descriptor, https://qr-faktura.cz/popis-formatu
const (
	invoiceFormat     = "SID"
	invoiceVersion    = "1.0"
	invoiceTerminator = "%2A"
)

// An Invoice is a Short Invoice Descriptor.  It is embedded in the
// X-INV field of a Descriptor, with fields terminated by "%2A" instead
// of "*".
//
// An Invoice is an immutable value.  Methods that add fields return a
// new Invoice.  The first error encountered while building an Invoice
// is retained; it is reported by Err and by MarshalText, and further
// fields are not added.
type Invoice struct {
	id     string
	issued time.Time
	amount Amount
	fields FieldMap
	err    error
}

// NewInvoice returns an Invoice with the given identifier, issue date
// and total amount.
func NewInvoice(id string, issueDate time.Time, amount Amount) Invoice {
	inv := Invoice{
		id:     stripTerminators(id),
		issued: issueDate,
		amount: amount,
	}
	switch {
	case inv.id == "":
		inv.err = invalidField(InvoiceKeyID.String(), "empty invoice id")
	case amount == nil:
		inv.err = invalidField(KeyAmount.String(), "missing amount")
	}
	return inv
}

// WithRaw returns a copy of inv with the field key set to value.
// Neither key nor value is normalized.
func (inv Invoice) WithRaw(key, value string) Invoice {
	if inv.err != nil {
		return inv
	}
	if key == InvoiceKeyID.String() || key == InvoiceKeyIssueDate.String() {
		inv.err = invalidField(key, "set by NewInvoice")
		return inv
	}
	inv.fields, inv.err = inv.fields.Set(key, value)
	return inv
}

// With returns a copy of inv with the field key set to the normalized
// value.
func (inv Invoice) With(key InvoiceKey, value string) Invoice {
	return inv.WithRaw(key.String(), stripTerminators(value))
}

// WithBuyerIdentificationNumber sets the INR field, the buyer's company ID.
func (inv Invoice) WithBuyerIdentificationNumber(id string) Invoice {
	return inv.With(InvoiceKeyBuyerIdentificationNumber, id)
}

// WithBuyerVatIdentificationNumber sets the VIR field, the buyer's VAT ID.
func (inv Invoice) WithBuyerVatIdentificationNumber(id string) Invoice {
	return inv.With(InvoiceKeyBuyerVatIdentificationNumber, id)
}

// WithSellerIdentificationNumber sets the INI field, the seller's company ID.
func (inv Invoice) WithSellerIdentificationNumber(id string) Invoice {
	return inv.With(InvoiceKeySellerIdentificationNumber, id)
}

// WithSellerVatIdentificationNumber sets the VII field, the seller's VAT ID.
func (inv Invoice) WithSellerVatIdentificationNumber(id string) Invoice {
	return inv.With(InvoiceKeySellerVatIdentificationNumber, id)
}

// WithMessage sets the MSG field of the invoice.
func (inv Invoice) WithMessage(msg string) Invoice {
	return inv.With(InvoiceKeyMessage, msg)
}

// ID returns the normalized invoice identifier.
func (inv Invoice) ID() string { return inv.id }

// IssueDate returns the issue date.
func (inv Invoice) IssueDate() time.Time { return inv.issued }

// Amount returns the invoice total.
func (inv Invoice) Amount() Amount { return inv.amount }

// Fields returns the optional fields in order.
func (inv Invoice) Fields() []Field { return inv.fields.Entries() }

// Err returns the first error encountered while building inv.
func (inv Invoice) Err() error { return inv.err }

// MarshalText returns the encoded invoice.
func (inv Invoice) MarshalText() ([]byte, error) {
	if inv.err != nil {
		return nil, couldNotSerialize(inv.err)
	}
	return []byte(inv.encode()), nil
}

// String returns the encoded invoice, or "" if inv is invalid.
func (inv Invoice) String() string {
	if inv.err != nil {
		return ""
	}
	return inv.encode()
}

func (inv Invoice) encode() string {
	var b strings.Builder
	b.WriteString(invoiceFormat)
	b.WriteString(invoiceTerminator)
	b.WriteString(invoiceVersion)
	writeField(&b, invoiceTerminator, InvoiceKeyID.String(), inv.id)
	writeField(&b, invoiceTerminator, InvoiceKeyIssueDate.String(),
		formatDate(inv.issued))
	for _, f := range inv.fields.f {
		writeField(&b, invoiceTerminator, f.Key, f.Value)
	}
	return b.String()
}

func writeField(b *strings.Builder, term, key, value string) {
	b.WriteString(term)
	b.WriteString(key)
	b.WriteByte(':')
	b.WriteString(value)
}

// stripTerminators removes every "*" and case-insensitive "%2A" from s,
// repeating until none is left.  The result is lossy.
func stripTerminators(s string) string {
	for {
		t := strings.ReplaceAll(s, "*", "")
		t = strings.ReplaceAll(t, "%2A", "")
		t = strings.ReplaceAll(t, "%2a", "")
		if t == s {
			return s
		}
		s = t
	}
}
