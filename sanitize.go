// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spayd

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sanitize prepares free text for a length-limited field such as MSG
// (60 characters) or RN (35).  If upper is set, s is converted to upper
// case first.  The result is truncated to at most maxBytes bytes
// without splitting a UTF-8 sequence.
func Sanitize(s string, maxBytes int, upper bool) string {
	if upper {
		s = cases.Upper(language.Und).String(s)
	}
	if len(s) <= maxBytes {
		return s
	}
	if maxBytes <= 0 {
		return ""
	}
	n := maxBytes
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
