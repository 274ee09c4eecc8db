// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qrcode renders text, usually an encoded payment descriptor, as
a QR code image in PNG, SVG, WebP or PBM format.

The QR symbol is produced by a MatrixFunc (github.com/skip2/go-qrcode
by default, or rsc.io/qr) and drawn by an Encoder for the chosen
Format.  A Renderer holds the text and the Encoder:

	r, err := qrcode.FromDescriptor(d, qrcode.WithFormat(qrcode.SVG))
	if err != nil {
		return err
	}
	uri, err := r.DataURI(qrcode.DefaultSize, qrcode.DefaultMargin)
*/
package qrcode

import (
	"context"
	"encoding"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Rendering defaults.
const (
	DefaultSize   = 300 // pixels
	DefaultMargin = 0   // pixels
)

// ErrCouldNotGenerateQrCode wraps errors of Renderer methods.
var ErrCouldNotGenerateQrCode = errors.New("qrcode: could not generate QR code")

// A Renderer renders a fixed text as QR code images.  Every call
// encodes the text anew.
//
// A Renderer is not safe for concurrent use while its options are
// being changed.
type Renderer struct {
	text string
	enc  Encoder
	log  *slog.Logger
}

// An Option configures a Renderer.
type Option func(*Renderer)

// WithEncoder sets the image encoder.
func WithEncoder(e Encoder) Option {
	return func(r *Renderer) { r.enc = e }
}

// WithFormat sets the image encoder to f.Encoder(opts...).
// The default is PNG.
func WithFormat(f Format, opts ...EncoderOption) Option {
	return WithEncoder(f.Encoder(opts...))
}

// WithLogger sets a logger for debug records about rendering.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// New returns a Renderer for text.
func New(text string, opts ...Option) *Renderer {
	r := &Renderer{text: text}
	for _, o := range opts {
		o(r)
	}
	if r.enc == nil {
		r.enc = PNG.Encoder()
	}
	return r
}

// FromDescriptor returns a Renderer for the text of d.
func FromDescriptor(d encoding.TextMarshaler, opts ...Option) (*Renderer, error) {
	b, err := d.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCouldNotGenerateQrCode, err)
	}
	return New(string(b), opts...), nil
}

// Text returns the encoded text.
func (r *Renderer) Text() string { return r.text }

// Render returns the QR code image with the code size pixels wide and
// margin pixels of white around it.
func (r *Renderer) Render(size, margin int) (*Result, error) {
	res, err := r.enc.Encode(r.text, size, margin)
	if err != nil {
		r.debug("render failed", slog.Int("size", size),
			slog.Int("margin", margin), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrCouldNotGenerateQrCode, err)
	}
	r.debug("rendered", slog.Int("size", size), slog.Int("margin", margin),
		slog.String("content_type", res.ContentType),
		slog.Int("bytes", len(res.Data)))
	return res, nil
}

// ContentType returns the MIME type of the images.  Encoders other
// than those returned by Format.Encoder are asked by rendering an image
// of the default size.
func (r *Renderer) ContentType() (string, error) {
	if e, ok := r.enc.(*encoder); ok && e.format.valid() {
		return e.format.ContentType(), nil
	}
	res, err := r.Render(DefaultSize, DefaultMargin)
	if err != nil {
		return "", err
	}
	return res.ContentType, nil
}

// Content returns the image data.
func (r *Renderer) Content(size, margin int) ([]byte, error) {
	res, err := r.Render(size, margin)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// DataURI returns the image as a base64 "data:" URI.
func (r *Renderer) DataURI(size, margin int) (string, error) {
	res, err := r.Render(size, margin)
	if err != nil {
		return "", err
	}
	return res.DataURI(), nil
}

// WriteFile writes the image to the named file, creating it if
// necessary and truncating it otherwise.
func (r *Renderer) WriteFile(name string, size, margin int) error {
	res, err := r.Render(size, margin)
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, res.Data, 0666); err != nil {
		return err
	}
	r.debug("wrote file", slog.String("file", name),
		slog.Int("bytes", len(res.Data)))
	return nil
}

func (r *Renderer) debug(msg string, attrs ...slog.Attr) {
	if r.log != nil {
		r.log.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
	}
}

// DataURI returns the text of d rendered in format f as a base64
// "data:" URI.
func DataURI(d encoding.TextMarshaler, size, margin int, f Format) (string, error) {
	r, err := FromDescriptor(d, WithFormat(f))
	if err != nil {
		return "", err
	}
	return r.DataURI(size, margin)
}
