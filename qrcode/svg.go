// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrcode

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// An errWriter remembers the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	var n int
	n, w.err = w.w.Write(p)
	return n, w.err
}

// encodeSVG writes an SVG image.  Each horizontal run of black modules
// becomes a rectangle in a single path.
func encodeSVG(w io.Writer, l *layout) error {
	ew := &errWriter{w: w}
	c := svg.New(ew)
	side := l.side
	c.Start(side, side,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, side, side),
		`shape-rendering="crispEdges"`)
	c.Rect(0, 0, side, side, `fill="#fff"`)
	var d strings.Builder
	m := l.m
	siz := m.Size
	scale := l.scale
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; {
			for x < siz && !m.Black(x, y) {
				x++
			}
			if x == siz {
				break
			}
			b := x
			for x < siz && m.Black(x, y) {
				x++
			}
			fmt.Fprintf(&d, "M%d %dh%dv%dh-%dz",
				l.off+b*scale, l.off+y*scale,
				(x-b)*scale, scale, (x-b)*scale)
		}
	}
	if d.Len() != 0 {
		c.Path(d.String(), `fill="#000"`)
	}
	c.End()
	return ew.err
}
