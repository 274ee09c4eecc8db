// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spayd

import (
	"fmt"
	"strings"
)

// Parse parses an encoded Short Payment Descriptor.  Field values are
// kept as they appear in s.  If s has a CRC32 field, it must be the
// last one and match the checksum of the text before it; the returned
// Descriptor then has its checksum enabled.
func Parse(s string) (Descriptor, error) {
	fields := strings.Split(s, Terminator)
	if len(fields) < 3 || fields[0] != format {
		return Descriptor{}, malformed("missing %s header", format)
	}
	if fields[1] != version {
		return Descriptor{}, malformed("unsupported version %q", fields[1])
	}
	fields = fields[2:]
	if fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1] // trailing terminator
	}
	if len(fields) == 0 {
		return Descriptor{}, malformed("missing %s field", KeyAccount)
	}
	d := Descriptor{noCRC: true}
	for i, f := range fields {
		key, value, ok := strings.Cut(f, Separator)
		if !ok {
			return Descriptor{}, malformed("field %q has no separator", f)
		}
		switch {
		case i == 0:
			if key != KeyAccount.String() {
				return Descriptor{}, malformed("first field is %q, want %s",
					key, KeyAccount)
			}
			acc, err := ParseAccount(value)
			if err != nil {
				return Descriptor{}, fmt.Errorf("%w: %w",
					ErrMalformedDescriptor, err)
			}
			d.account = acc
		case key == KeyChecksum.String():
			if i != len(fields)-1 {
				return Descriptor{}, malformed("%s is not the last field", key)
			}
			end := strings.LastIndex(s, Terminator+key+Separator)
			if sum := Checksum([]byte(s[:end])); sum != strings.ToLower(value) {
				return Descriptor{}, fmt.Errorf("%w: have %s, want %s",
					ErrChecksumMismatch, value, sum)
			}
			d.noCRC = false
		case key == KeyAccount.String():
			return Descriptor{}, malformed("duplicate field %q", key)
		default:
			if _, dup := d.fields.Get(key); dup {
				return Descriptor{}, malformed("duplicate field %q", key)
			}
			var err error
			if d.fields, err = d.fields.Set(key, value); err != nil {
				return Descriptor{}, fmt.Errorf("%w: %w",
					ErrMalformedDescriptor, err)
			}
		}
	}
	return d, nil
}
