// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrcode

import (
	"image/png"
	"io"
)

var pngEncoder = png.Encoder{CompressionLevel: png.BestCompression}

func encodePNG(w io.Writer, l *layout) error {
	return pngEncoder.Encode(w, l.image())
}
