// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrcode

import (
	"bufio"
	"encoding/binary"
	"io"
	"strconv"
)

// encodePBM writes a Portable Bit Map image, for use with netpbm.
func encodePBM(w io.Writer, l *layout) error {
	b := bufio.NewWriter(w)
	siz := l.m.Size
	scale := l.scale
	off := l.off
	side := l.side
	ls := strconv.Itoa(side)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	row := make([]byte, (side+7)/8)
	for i := 0; i < off; i++ {
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	end := off + scale*siz
	data := row[off/8 : (end+7)/8]
	slen := off & 7
	stride := l.m.Stride
	bitmap := l.m.Bits[:stride*siz]
	for len(bitmap) >= stride {
		srow := bitmap[:stride]
		bitmap = bitmap[stride:]
		// Raw data.  Bespoke fast encoders for common cases.
		if scale == 8 && slen == 0 {
			pbmRow8(data, srow)
		} else if scale == 4 && slen&3 == 0 {
			pbmRow4(data, srow, slen)
		} else if scale == 1 && slen == 0 {
			copy(data, srow)
		} else {
			pbmRow(data, srow, scale, slen)
		}
		// Padding bits of srow may have spilled into the margin.
		if end&7 != 0 {
			row[end/8] &^= 0xff >> uint(end&7)
		}
		for i := 0; i < scale; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	for i := range data {
		data[i] = 0
	}
	for i := end; i < side; i++ {
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	return b.Flush()
}

// pbmRow8 encodes a row of QR modules in PBM format at scale 8.
func pbmRow8(row, srow []byte) {
	var b uint64
	for _, v := range srow {
		for i := 0; i < 8; i++ {
			b = b<<8 | uint64(-(v & 1))
			v >>= 1
		}
		if len(row) < 8 {
			break
		}
		binary.LittleEndian.PutUint64(row, b)
		row = row[8:]
	}
	if len(row) > 4 {
		binary.LittleEndian.PutUint32(row, uint32(b))
		b >>= 32
		row = row[4:]
	}
	for i := range row {
		row[i] = byte(b)
		b >>= 8
	}
}

// pbmRow4 encodes a row of QR modules in PBM format at scale 4,
// starting slen (0 or 4) pixels into row.
func pbmRow4(row, srow []byte, slen int) {
	var b uint32
	var last uint16
	slen >>= 2
	for _, v := range srow {
		last |= uint16(v)
		b = uint32(byte(last>>slen)) * 01001001 & 0300070007 *
			0111 & 0x11111111 * 0xf
		last <<= 8
		if len(row) < 4 {
			break
		}
		binary.BigEndian.PutUint32(row, b)
		row = row[4:]
	}
	for i := range row {
		row[i] = byte(b >> 24)
		b <<= 8
	}
}

// pbmRow encodes a row of QR modules in PBM format, starting slen
// pixels into row.
func pbmRow(row, srow []byte, scale, slen int) {
	j := 0
	var z byte
	if scale == 1 {
		for _, v := range srow {
			if j >= len(row) {
				return
			}
			row[j] = z | v>>slen
			z = v << (8 - slen)
			j++
		}
		if j < len(row) {
			row[j] = z
		}
		return
	}
	nz := slen
	for _, v := range srow {
		for i := 0; i < 8; i++ {
			bits := byte(int8(v) >> 7)
			v <<= 1
			shift := min(8-nz, scale)
			z = z<<shift | bits>>(8-shift)
			for nz += scale; nz >= 8; nz -= 8 {
				if j >= len(row) {
					return
				}
				row[j] = z
				z = bits
				j++
			}
		}
	}
	if nz != 0 && j < len(row) {
		row[j] = z << uint(8-nz)
	}
}
