// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrcode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// A Format is an image file format.
type Format int

// Image formats.
const (
	PNG  Format = iota // Portable Network Graphics
	SVG                // Scalable Vector Graphics
	WebP               // lossless WebP
	PBM                // netpbm Portable Bit Map
	numFormats
)

var formats = [numFormats]struct {
	name, mime string
	write      func(io.Writer, *layout) error
}{
	PNG:  {"png", "image/png", encodePNG},
	SVG:  {"svg", "image/svg+xml", encodeSVG},
	WebP: {"webp", "image/webp", encodeWebP},
	PBM:  {"pbm", "image/x-portable-bitmap", encodePBM},
}

func (f Format) valid() bool { return f >= 0 && f < numFormats }

// String returns the lower case name of f, which is also its usual
// file name suffix.
func (f Format) String() string {
	if !f.valid() {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formats[f].name
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if !f.valid() {
		return ""
	}
	return formats[f].mime
}

// ParseFormat returns the Format named s, ignoring case.
func ParseFormat(s string) (Format, error) {
	for f := range formats {
		if strings.EqualFold(s, formats[f].name) {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown format %q", ErrArgs, s)
}

// Encoder returns an Encoder producing images in format f.
func (f Format) Encoder(opts ...EncoderOption) Encoder {
	e := &encoder{format: f, matrix: GoQRCode}
	for _, o := range opts {
		o(e)
	}
	return e
}

// An Encoder encodes text as a QR code image.  The code is scaled to
// fit in size pixels and surrounded by margin white pixels, so that the
// image is size+2*margin pixels on a side.
type Encoder interface {
	Encode(text string, size, margin int) (*Result, error)
}

// A Result is an encoded image.
type Result struct {
	Data        []byte
	ContentType string
}

// DataURI returns r as a base64 "data:" URI.
func (r *Result) DataURI() string {
	return "data:" + r.ContentType + ";base64," +
		base64.StdEncoding.EncodeToString(r.Data)
}

// An EncoderOption configures an Encoder returned by Format.Encoder.
type EncoderOption func(*encoder)

// WithLevel sets the error correction level.  The default is L.
func WithLevel(l Level) EncoderOption {
	return func(e *encoder) { e.level = l }
}

// WithMatrix sets the QR encoder.  The default is GoQRCode.
func WithMatrix(f MatrixFunc) EncoderOption {
	return func(e *encoder) { e.matrix = f }
}

type encoder struct {
	format Format
	level  Level
	matrix MatrixFunc
}

func (e *encoder) Encode(text string, size, margin int) (*Result, error) {
	if !e.format.valid() {
		return nil, fmt.Errorf("%w: %v", ErrArgs, e.format)
	}
	m, err := e.matrix(text, e.level)
	if err != nil {
		return nil, err
	}
	l, err := newLayout(m, size, margin)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	if err := formats[e.format].write(&b, l); err != nil {
		return nil, err
	}
	return &Result{b.Bytes(), e.format.ContentType()}, nil
}
