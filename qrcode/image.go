// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrcode

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Errors returned by encoders.
var (
	ErrArgs       = errors.New("qrcode: invalid arguments")
	ErrLargeImage = errors.New("qrcode: image too large")
)

// maxSide is the largest image side in pixels.
const maxSide = 32767 * 8

// A layout places a Matrix in a square image.  The code occupies
// scale*m.Size pixels starting at off on both axes; the pixels left
// over when size is not a multiple of the matrix size go to the margin,
// split evenly.
type layout struct {
	m     *Matrix
	scale int // image pixels per module
	off   int // white pixels before the first module
	side  int // image pixels on a side
}

func newLayout(m *Matrix, size, margin int) (*layout, error) {
	switch {
	case !m.isValid():
		return nil, fmt.Errorf("%w: empty matrix", ErrArgs)
	case size <= 0:
		return nil, fmt.Errorf("%w: size %d", ErrArgs, size)
	case margin < 0:
		return nil, fmt.Errorf("%w: margin %d", ErrArgs, margin)
	case size > maxSide || margin > maxSide || size+2*margin > maxSide:
		return nil, ErrLargeImage
	}
	scale := size / m.Size
	if scale == 0 {
		return nil, fmt.Errorf("%w: size %d is less than %d modules",
			ErrArgs, size, m.Size)
	}
	return &layout{
		m:     m,
		scale: scale,
		off:   margin + (size-scale*m.Size)/2,
		side:  size + 2*margin,
	}, nil
}

// black returns true if the image pixel at (x,y) is black.
func (l *layout) black(x, y int) bool {
	x -= l.off
	y -= l.off
	if x < 0 || y < 0 {
		return false
	}
	return l.m.Black(x/l.scale, y/l.scale)
}

// image returns an Image displaying the code.
func (l *layout) image() image.Image {
	return &codeImage{l}
}

// codeImage implements image.Image
type codeImage struct {
	*layout
}

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

func (c *codeImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.side, c.side)
}

func (c *codeImage) At(x, y int) color.Color {
	if c.black(x, y) {
		return blackColor
	}
	return whiteColor
}

func (c *codeImage) ColorModel() color.Model {
	return color.GrayModel
}
