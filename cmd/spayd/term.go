package main

import (
	"io"

	"github.com/unixdj/spayd/qrcode"
)

// quietZone is the border in modules around codes drawn as text.
const quietZone = 4

// ascii draws m with two '#' characters per black module.
func ascii(w io.Writer, m *qrcode.Matrix, rev bool) error {
	siz := m.Size
	pix := siz + 2*quietZone
	b := make([]byte, (pix*2+1)*pix)
	i := 0
	for y := -quietZone; y < siz+quietZone; y++ {
		for x := -quietZone; x < siz+quietZone; x++ {
			var p byte = ' '
			if m.Black(x, y) != rev {
				p = '#'
			}
			_ = b[i+1]
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}

// halfBlocks maps the black modules of two rows, top in bit 1, to a
// character cell.
var halfBlocks = [4]string{" ", "▄", "▀", "█"}

// utf8 draws m with one character cell per two rows of modules, black
// modules drawn as blocks.
func utf8(w io.Writer, m *qrcode.Matrix, rev bool) error {
	siz := m.Size
	var b []byte
	for y := -quietZone; y < siz+quietZone; y += 2 {
		for x := -quietZone; x < siz+quietZone; x++ {
			var c int
			if m.Black(x, y) != rev {
				c |= 2
			}
			if y+1 < siz+quietZone && m.Black(x, y+1) != rev {
				c |= 1
			}
			b = append(b, halfBlocks[c]...)
		}
		b = append(b, '\n')
	}
	_, err := w.Write(b)
	return err
}
