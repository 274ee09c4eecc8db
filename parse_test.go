// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spayd_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixdj/spayd"
)

func TestParseRoundTrip(t *testing.T) {
	inv := spayd.NewInvoice("INV#123", date, czk("1.23")).WithMessage("x")
	for _, d := range []spayd.Descriptor{
		spayd.New(account),
		spayd.New(spayd.IBAN("CZ7801000000000000000123")).WithAmount(czk("799.50")),
		spayd.New(account).WithPaymentType(spayd.InstantPayment),
		spayd.New(account).WithInvoice(inv).WithDueDate(date),
		spayd.New(account).WithMessage("A*B:C").WithChecksum(false),
		spayd.New(account).WithAlternativeAccounts(altAcc, spayd.IBAN("CZ58")).
			WithNotification(spayd.NotifyPhone, "+420123456789"),
	} {
		s := d.String()
		require.NotEmpty(t, s)
		p, err := spayd.Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, p.String())
		assert.Equal(t, d.Account(), p.Account())
		assert.Len(t, p.Fields(), len(d.Fields()))
	}
}

func TestParseFields(t *testing.T) {
	d, err := spayd.Parse(prefix + "*AM:1.00*CC:CZK*MSG:A%2AB*X-URL:https://example.com/*")
	require.NoError(t, err)
	assert.Equal(t, account, d.Account())
	assert.Equal(t, []spayd.Field{
		{Key: "AM", Value: "1.00"},
		{Key: "CC", Value: "CZK"},
		{Key: "MSG", Value: "A%2AB"},
		{Key: "X-URL", Value: "https://example.com/"},
	}, d.Fields())
	// No CRC32 field, so none is added.
	assert.Equal(t, prefix+"*AM:1.00*CC:CZK*MSG:A%2AB*X-URL:https://example.com/", d.String())

	d, err = spayd.Parse(prefix + "*PT:IP*CRC32:07B4784F")
	require.NoError(t, err)
	assert.Equal(t, prefix+"*PT:IP*CRC32:07b4784f", d.String())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in  string
		err error
	}{
		{"", spayd.ErrMalformedDescriptor},
		{"SPD", spayd.ErrMalformedDescriptor},
		{"SPD*1.0", spayd.ErrMalformedDescriptor},
		{"SPD*1.0*", spayd.ErrMalformedDescriptor},
		{"SID*1.0*ACC:CZ65", spayd.ErrMalformedDescriptor},
		{"SPD*2.0*ACC:CZ65", spayd.ErrMalformedDescriptor},
		{"SPD*1.0*AM:1.00*ACC:CZ65", spayd.ErrMalformedDescriptor},
		{"SPD*1.0*ACC:", spayd.ErrMalformedDescriptor},
		{"SPD*1.0*ACC:CZ65*MSG", spayd.ErrMalformedDescriptor},
		{"SPD*1.0*ACC:CZ65*ACC:CZ66", spayd.ErrMalformedDescriptor},
		{"SPD*1.0*ACC:CZ65*MSG:a*MSG:b", spayd.ErrMalformedDescriptor},
		{"SPD*1.0*ACC:CZ65*:x", spayd.ErrMalformedDescriptor},
		{"SPD*1.0*ACC:CZ65*CRC32:00000000*MSG:a", spayd.ErrMalformedDescriptor},
		{prefix + "*PT:IP*CRC32:00000000", spayd.ErrChecksumMismatch},
		{prefix + "*PT:IQ*CRC32:07b4784f", spayd.ErrChecksumMismatch},
	}
	for _, tt := range tests {
		_, err := spayd.Parse(tt.in)
		assert.ErrorIs(t, err, tt.err, "%q", tt.in)
		assert.True(t, spayd.IsInputError(err), "%q", tt.in)
	}
}

func ExampleParse() {
	d, err := spayd.Parse("SPD*1.0*ACC:CZ7801000000000000000123*AM:799.50*CC:CZK*CRC32:8a0f48b6")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(d.Account())
	for _, f := range d.Fields() {
		fmt.Printf("%s=%s\n", f.Key, f.Value)
	}
	// Output:
	// CZ7801000000000000000123
	// AM=799.50
	// CC=CZK
}
