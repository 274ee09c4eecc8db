// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrcode

import (
	"io"

	"github.com/HugoSmits86/nativewebp"
)

// maxWebPSide is the largest side of a VP8L image.
const maxWebPSide = 1 << 14

// encodeWebP writes a lossless WebP image.
func encodeWebP(w io.Writer, l *layout) error {
	if l.side > maxWebPSide {
		return ErrLargeImage
	}
	return nativewebp.Encode(w, l.image(), nil)
}
