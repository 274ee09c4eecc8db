// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spayd

// A Key is a field key of the Short Payment Descriptor.
type Key int

// Descriptor keys.
const (
	KeyAccount            Key = iota // ACC: IBAN[+BIC]
	KeyAlternativeAccount            // ALT-ACC: comma-separated accounts
	KeyAmount                        // AM
	KeyCurrencyCode                  // CC
	KeyChecksum                      // CRC32
	KeyConstantSymbol                // X-KS
	KeyDueDate                       // DT: YYYYMMDD
	KeyInvoice                       // X-INV: embedded SIND
	KeyMessage                       // MSG
	KeyNotificationType              // NT: P or E
	KeyNotification                  // NO: phone number or e-mail address
	KeyPaymentType                   // PT
	KeyRecipientName                 // RN
	KeyReference                     // RF
	KeySpecificSymbol                // X-SS
	KeyVariableSymbol                // X-VS
	numKeys
)

var keyNames = [numKeys]string{
	KeyAccount:            "ACC",
	KeyAlternativeAccount: "ALT-ACC",
	KeyAmount:             "AM",
	KeyCurrencyCode:       "CC",
	KeyChecksum:           "CRC32",
	KeyConstantSymbol:     "X-KS",
	KeyDueDate:            "DT",
	KeyInvoice:            "X-INV",
	KeyMessage:            "MSG",
	KeyNotificationType:   "NT",
	KeyNotification:       "NO",
	KeyPaymentType:        "PT",
	KeyRecipientName:      "RN",
	KeyReference:          "RF",
	KeySpecificSymbol:     "X-SS",
	KeyVariableSymbol:     "X-VS",
}

// String returns the wire name of k.
func (k Key) String() string {
	if k < 0 || k >= numKeys {
		return ""
	}
	return keyNames[k]
}

// LookupKey returns the Key with the wire name s.
func LookupKey(s string) (Key, bool) {
	for k, v := range keyNames {
		if v == s {
			return Key(k), true
		}
	}
	return -1, false
}

// An InvoiceKey is a field key of the Short Invoice Descriptor.
type InvoiceKey int

// Invoice keys.
const (
	InvoiceKeyID                            InvoiceKey = iota // ID
	InvoiceKeyIssueDate                                       // DD: YYYYMMDD
	InvoiceKeySellerIdentificationNumber                      // INI
	InvoiceKeySellerVatIdentificationNumber                   // VII
	InvoiceKeyBuyerIdentificationNumber                       // INR
	InvoiceKeyBuyerVatIdentificationNumber                    // VIR
	InvoiceKeyMessage                                         // MSG
	numInvoiceKeys
)

var invoiceKeyNames = [numInvoiceKeys]string{
	InvoiceKeyID:                            "ID",
	InvoiceKeyIssueDate:                     "DD",
	InvoiceKeySellerIdentificationNumber:    "INI",
	InvoiceKeySellerVatIdentificationNumber: "VII",
	InvoiceKeyBuyerIdentificationNumber:     "INR",
	InvoiceKeyBuyerVatIdentificationNumber:  "VIR",
	InvoiceKeyMessage:                       "MSG",
}

// String returns the wire name of k.
func (k InvoiceKey) String() string {
	if k < 0 || k >= numInvoiceKeys {
		return ""
	}
	return invoiceKeyNames[k]
}

// A PaymentType is the value of the PT field.
type PaymentType string

// InstantPayment requests an instant credit transfer.
const InstantPayment PaymentType = "IP"

// A NotificationKind selects the channel named by the NT field.
type NotificationKind string

// Notification channels.
const (
	NotifyPhone NotificationKind = "P" // NO holds a phone number
	NotifyEmail NotificationKind = "E" // NO holds an e-mail address
)
