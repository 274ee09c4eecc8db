// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrcode

import (
	"bytes"
	"fmt"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomMatrix returns a matrix with random modules and random
// padding bits.  Rows are pad bytes wider than needed.
func randomMatrix(r *rand.Rand, siz, pad int) *Matrix {
	m := &Matrix{Size: siz, Stride: (siz+7)/8 + pad}
	m.Bits = make([]byte, m.Stride*siz)
	r.Read(m.Bits)
	return m
}

func TestLayout(t *testing.T) {
	m := &Matrix{Bits: make([]byte, 4*25), Size: 25, Stride: 4}
	tests := []struct {
		size, margin     int
		scale, off, side int
	}{
		{300, 0, 12, 0, 300},
		{100, 10, 4, 10, 120},
		{110, 0, 4, 5, 110},
		{25, 0, 1, 0, 25},
		{49, 3, 1, 15, 55},
		{51, 1, 2, 1, 53},
	}
	for _, tt := range tests {
		l, err := newLayout(m, tt.size, tt.margin)
		require.NoError(t, err, "size %d margin %d", tt.size, tt.margin)
		assert.Equal(t, tt.scale, l.scale, "scale for %d+%d", tt.size, tt.margin)
		assert.Equal(t, tt.off, l.off, "offset for %d+%d", tt.size, tt.margin)
		assert.Equal(t, tt.side, l.side, "side for %d+%d", tt.size, tt.margin)
		assert.Equal(t, tt.side, l.image().Bounds().Dx())
	}
}

func TestLayoutErrors(t *testing.T) {
	m := &Matrix{Bits: make([]byte, 4*25), Size: 25, Stride: 4}
	tests := []struct {
		m            *Matrix
		size, margin int
		err          error
	}{
		{m, 0, 0, ErrArgs},
		{m, -5, 0, ErrArgs},
		{m, 100, -1, ErrArgs},
		{m, 24, 0, ErrArgs},
		{m, maxSide + 1, 0, ErrLargeImage},
		{m, maxSide, 1, ErrLargeImage},
		{&Matrix{}, 100, 0, ErrArgs},
		{nil, 100, 0, ErrArgs},
		{&Matrix{Bits: make([]byte, 3), Size: 25, Stride: 4}, 100, 0, ErrArgs},
	}
	for _, tt := range tests {
		_, err := newLayout(tt.m, tt.size, tt.margin)
		assert.ErrorIs(t, err, tt.err, "size %d margin %d", tt.size, tt.margin)
	}
}

func TestLayoutImage(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	m := randomMatrix(r, 21, 0)
	l, err := newLayout(m, 50, 2)
	require.NoError(t, err)
	img := l.image()
	for y := 0; y < l.side; y++ {
		for x := 0; x < l.side; x++ {
			mx, my := (x-l.off)/l.scale, (y-l.off)/l.scale
			want := x >= l.off && y >= l.off && m.Black(mx, my)
			got := img.At(x, y) == blackColor
			if got != want {
				t.Fatalf("pixel (%d,%d): black %v, want %v", x, y, got, want)
			}
		}
	}
}

// TestPBMPixels checks every pixel of PBM images at the scales with
// bespoke row encoders and at arbitrary offsets.
func TestPBMPixels(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for _, scale := range []int{1, 2, 3, 4, 5, 7, 8, 9, 12} {
		for _, siz := range []int{21, 25, 29} {
			for _, extra := range []int{0, 1, 5, 8} {
				for _, margin := range []int{0, 1, 3, 4, 8, 13} {
					// Tight rows, and rows padded as by rsc.io/qr.
					for _, stride := range []int{(siz + 7) / 8, (siz + 7) &^ 7} {
						m := randomMatrix(r, siz, stride-(siz+7)/8)
						size := scale*siz + extra
						name := fmt.Sprintf("scale%d/size%d/margin%d/siz%d/stride%d",
							scale, size, margin, siz, stride)
						l, err := newLayout(m, size, margin)
						require.NoError(t, err, name)
						var b bytes.Buffer
						require.NoError(t, encodePBM(&b, l), name)
						checkPBM(t, name, b.Bytes(), l)
					}
				}
			}
		}
	}
}

func checkPBM(t *testing.T, name string, data []byte, l *layout) {
	t.Helper()
	ls := strconv.Itoa(l.side)
	header := "P4\n" + ls + " " + ls + "\n"
	require.True(t, bytes.HasPrefix(data, []byte(header)), name)
	data = data[len(header):]
	rowLen := (l.side + 7) / 8
	require.Len(t, data, rowLen*l.side, name)
	for y := 0; y < l.side; y++ {
		row := data[y*rowLen:]
		for x := 0; x < l.side; x++ {
			got := row[x/8]&(0x80>>uint(x&7)) != 0
			if want := l.black(x, y); got != want {
				t.Fatalf("%s: pixel (%d,%d): black %v, want %v",
					name, x, y, got, want)
			}
		}
	}
}
