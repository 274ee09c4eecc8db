// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spayd

import (
	"encoding"
	"fmt"
	"strconv"
	"time"
)

// A Builder builds a Descriptor in place.  Each Add or Remove replaces
// the wrapped Descriptor; a failed Add leaves it unchanged.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	d Descriptor
}

// NewBuilder returns a Builder starting from d.
func NewBuilder(d Descriptor) *Builder {
	return &Builder{d}
}

// Add sets the field key to value.  Errors wrap
// ErrCouldNotAddKeyWithValue.
//
// Values are converted according to the key: an Amount for AM sets
// both AM and CC, an Invoice for X-INV sets AM, CC and X-INV, a
// time.Time for DT is formatted as a date, and an Account or []Account
// for ALT-ACC is joined as by Descriptor.WithAlternativeAccounts.
// AM and CC only accept an Amount, and X-INV only an Invoice; use
// AddRaw to set them to other values.
// Other values must be strings, integers, fmt.Stringers or
// encoding.TextMarshalers.
func (b *Builder) Add(key Key, value any) error {
	switch key {
	case KeyAmount, KeyCurrencyCode:
		if _, ok := value.(Amount); !ok {
			return couldNotAdd(key.String(), invalidField(key.String(),
				"value of type %T is not an Amount", value))
		}
	case KeyInvoice:
		if _, ok := value.(Invoice); !ok {
			return couldNotAdd(key.String(), invalidField(key.String(),
				"value of type %T is not an Invoice", value))
		}
	}
	var d Descriptor
	switch v := value.(type) {
	case Amount:
		if key != KeyAmount && key != KeyCurrencyCode {
			return b.AddRaw(key.String(), value)
		}
		d = b.d.WithAmount(v)
	case Invoice:
		if key != KeyInvoice {
			return b.AddRaw(key.String(), value)
		}
		d = b.d.WithInvoice(v)
	case time.Time:
		d = b.d.With(key, formatDate(v))
	case Account:
		if key != KeyAlternativeAccount {
			return b.AddRaw(key.String(), value)
		}
		d = b.d.WithAlternativeAccounts(v)
	case []Account:
		if key != KeyAlternativeAccount {
			return b.AddRaw(key.String(), value)
		}
		d = b.d.WithAlternativeAccounts(v...)
	default:
		return b.AddRaw(key.String(), value)
	}
	return b.replace(key.String(), d)
}

// AddRaw sets the field key to the text of value, with no conversion
// by key.  Errors wrap ErrCouldNotAddKeyWithValue.
func (b *Builder) AddRaw(key string, value any) error {
	s, err := text(key, value)
	if err != nil {
		return couldNotAdd(key, err)
	}
	return b.replace(key, b.d.WithRaw(key, s))
}

// AddInvoice sets the AM, CC and X-INV fields from inv.
func (b *Builder) AddInvoice(inv Invoice) error {
	return b.Add(KeyInvoice, inv)
}

func (b *Builder) replace(key string, d Descriptor) error {
	if err := d.Err(); err != nil {
		return couldNotAdd(key, err)
	}
	b.d = d
	return nil
}

// Remove deletes the field key as by Descriptor.Without.  Removing a
// missing field does nothing.
func (b *Builder) Remove(key Key) *Builder {
	b.d = b.d.Without(key)
	return b
}

// RemoveRaw deletes the field key.
func (b *Builder) RemoveRaw(key string) *Builder {
	b.d = b.d.WithoutRaw(key)
	return b
}

// Descriptor returns the current Descriptor.
func (b *Builder) Descriptor() Descriptor {
	return b.d
}

// Build returns the encoded Descriptor.
func (b *Builder) Build() (string, error) {
	return b.d.Encode()
}

// text converts a field value to text.
func text(key string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case encoding.TextMarshaler:
		b, err := v.MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	case fmt.Stringer:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	}
	return "", invalidField(key, "value of type %T is not text", value)
}
