// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spayd

import (
	"fmt"
	"hash/crc32"
)

// Checksum returns the CRC-32 (IEEE) of b as 8 lowercase hex digits.
//
// A descriptor's checksum covers the descriptor text up to, but not
// including, the terminator preceding the CRC32 field.
func Checksum(b []byte) string {
	return fmt.Sprintf("%08x", crc32.ChecksumIEEE(b))
}
