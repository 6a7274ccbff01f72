// Copyright 2024 The Text Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"encoding/binary"
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/david-sledge/text"
)

// Messages passed to an ErrorHandler by the UTF-16 and UTF-32 decoders.
const (
	MsgInvalidUTF16LE = "Invalid UTF-16LE stream"
	MsgInvalidUTF16BE = "Invalid UTF-16BE stream"
	MsgInvalidUTF32LE = "Invalid UTF-32LE stream"
	MsgInvalidUTF32BE = "Invalid UTF-32BE stream"
)

const (
	surr1 = 0xD800
	surr2 = 0xDC00
	surr3 = 0xE000
)

// byteOrder is satisfied by binary.LittleEndian and binary.BigEndian.
type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// reportUnit applies h to one malformed code unit at byte offset pos,
// appending any replacement to out.
func reportUnit(h ErrorHandler, desc string, pos int, out []byte) ([]byte, error) {
	r, err := h(desc, NoByte)
	if err != nil {
		var ue *UnicodeError
		if errors.As(err, &ue) && ue.Pos == posUnknown {
			ue.Pos = pos
		}
		return nil, err
	}
	if r >= 0 {
		out = utf8.AppendRune(out, sanitize(r))
	}
	return out, nil
}

func decodeUTF16(h ErrorHandler, desc string, p []byte, bo byteOrder) (text.Text, error) {
	out := make([]byte, 0, len(p)+len(p)/2)
	var err error
	for i := 0; i < len(p); {
		if len(p)-i < 2 {
			// truncated final code unit
			if out, err = reportUnit(h, desc, i, out); err != nil {
				return text.Empty(), err
			}
			break
		}
		u := bo.Uint16(p[i:])
		if u < surr1 || surr3 <= u {
			out = utf8.AppendRune(out, rune(u))
			i += 2
			continue
		}
		if u < surr2 && len(p)-i >= 4 {
			if v := bo.Uint16(p[i+2:]); surr2 <= v && v < surr3 {
				r := 0x10000 + (rune(u)-surr1)<<10 + (rune(v) - surr2)
				out = utf8.AppendRune(out, r)
				i += 4
				continue
			}
		}
		// unpaired surrogate; the following unit is reconsidered on its own
		if out, err = reportUnit(h, desc, i, out); err != nil {
			return text.Empty(), err
		}
		i += 2
	}
	return text.FromValidBytes(out), nil
}

func encodeUTF16(t text.Text, bo byteOrder) []byte {
	out := make([]byte, 0, 2*t.Len())
	t.EachRune(func(r rune) bool {
		if r < 0x10000 {
			out = bo.AppendUint16(out, uint16(r))
		} else {
			hi, lo := utf16.EncodeRune(r)
			out = bo.AppendUint16(out, uint16(hi))
			out = bo.AppendUint16(out, uint16(lo))
		}
		return true
	})
	return out
}

// DecodeUTF16LEWith decodes little-endian UTF-16, consulting h once per
// malformed code unit: an unpaired surrogate or a truncated final unit.
func DecodeUTF16LEWith(h ErrorHandler, p []byte) (text.Text, error) {
	return decodeUTF16(h, MsgInvalidUTF16LE, p, binary.LittleEndian)
}

// DecodeUTF16LE decodes little-endian UTF-16 strictly.
func DecodeUTF16LE(p []byte) (text.Text, error) {
	return DecodeUTF16LEWith(Strict, p)
}

// DecodeUTF16BEWith decodes big-endian UTF-16 with the policy h.
func DecodeUTF16BEWith(h ErrorHandler, p []byte) (text.Text, error) {
	return decodeUTF16(h, MsgInvalidUTF16BE, p, binary.BigEndian)
}

// DecodeUTF16BE decodes big-endian UTF-16 strictly.
func DecodeUTF16BE(p []byte) (text.Text, error) {
	return DecodeUTF16BEWith(Strict, p)
}

// EncodeUTF16LE encodes t as little-endian UTF-16. It never fails.
func EncodeUTF16LE(t text.Text) []byte {
	return encodeUTF16(t, binary.LittleEndian)
}

// EncodeUTF16BE encodes t as big-endian UTF-16. It never fails.
func EncodeUTF16BE(t text.Text) []byte {
	return encodeUTF16(t, binary.BigEndian)
}
