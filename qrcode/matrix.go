// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrcode

import (
	"fmt"

	goqrcode "github.com/skip2/go-qrcode"
	"rsc.io/qr"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

// QR error correction levels.
const (
	L Level = iota // 7% of codewords can be restored
	M              // 15%
	Q              // 25%
	H              // 30%
)

// String returns the level letter, L, M, Q or H.
func (l Level) String() string {
	if l < L || l > H {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return "LMQH"[l : l+1]
}

// A Matrix is a square grid of QR modules without a quiet zone.
type Matrix struct {
	Bits   []byte // 1 is black, 0 is white; most significant bit first
	Size   int    // number of modules on a side
	Stride int    // number of bytes per row
}

// Black returns true if the module at (x,y) is black.
// Coordinates outside the matrix are white.
func (m *Matrix) Black(x, y int) bool {
	return 0 <= x && x < m.Size && 0 <= y && y < m.Size &&
		m.Bits[y*m.Stride+x/8]&(1<<uint(7-x&7)) != 0
}

func (m *Matrix) isValid() bool {
	return m != nil && m.Size > 0 && m.Stride >= (m.Size+7)/8 &&
		len(m.Bits) >= m.Stride*m.Size
}

// A MatrixFunc encodes text as a QR code in byte mode or any denser
// mode, choosing the smallest version that fits at the given level.
type MatrixFunc func(text string, level Level) (*Matrix, error)

var goLevels = [...]goqrcode.RecoveryLevel{
	L: goqrcode.Low,
	M: goqrcode.Medium,
	Q: goqrcode.High,
	H: goqrcode.Highest,
}

// GoQRCode encodes text using github.com/skip2/go-qrcode, which picks
// the mask pattern with the lowest penalty score.  It is the default.
func GoQRCode(text string, level Level) (*Matrix, error) {
	if level < L || level > H {
		return nil, fmt.Errorf("%w: level %v", ErrArgs, level)
	}
	q, err := goqrcode.New(text, goLevels[level])
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	bm := q.Bitmap()
	siz := len(bm)
	m := &Matrix{Size: siz, Stride: (siz + 7) / 8}
	m.Bits = make([]byte, m.Stride*siz)
	for y, row := range bm {
		b := m.Bits[y*m.Stride:]
		for x, black := range row {
			if black {
				b[x/8] |= 1 << uint(7-x&7)
			}
		}
	}
	return m, nil
}

// RSC encodes text using rsc.io/qr.
func RSC(text string, level Level) (*Matrix, error) {
	if level < L || level > H {
		return nil, fmt.Errorf("%w: level %v", ErrArgs, level)
	}
	c, err := qr.Encode(text, qr.Level(level))
	if err != nil {
		return nil, err
	}
	return &Matrix{Bits: c.Bitmap, Size: c.Size, Stride: c.Stride}, nil
}
