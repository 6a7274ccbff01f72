// Copyright 2024 The Text Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/david-sledge/text"
)

func decodeUTF32(h ErrorHandler, desc string, p []byte, bo byteOrder) (text.Text, error) {
	out := make([]byte, 0, len(p))
	var err error
	for i := 0; i < len(p); i += 4 {
		if len(p)-i < 4 {
			// truncated final code unit
			if out, err = reportUnit(h, desc, i, out); err != nil {
				return text.Empty(), err
			}
			break
		}
		u := bo.Uint32(p[i:])
		if u < surr1 || (surr3 <= u && u <= utf8.MaxRune) {
			out = utf8.AppendRune(out, rune(u))
			continue
		}
		// surrogate or beyond U+10FFFF
		if out, err = reportUnit(h, desc, i, out); err != nil {
			return text.Empty(), err
		}
	}
	return text.FromValidBytes(out), nil
}

func encodeUTF32(t text.Text, bo byteOrder) []byte {
	out := make([]byte, 0, 4*t.RuneCount())
	t.EachRune(func(r rune) bool {
		out = bo.AppendUint32(out, uint32(r))
		return true
	})
	return out
}

// DecodeUTF32LEWith decodes little-endian UTF-32, consulting h once per
// malformed code unit: a surrogate value, a value beyond U+10FFFF, or a
// truncated final unit.
func DecodeUTF32LEWith(h ErrorHandler, p []byte) (text.Text, error) {
	return decodeUTF32(h, MsgInvalidUTF32LE, p, binary.LittleEndian)
}

// DecodeUTF32LE decodes little-endian UTF-32 strictly.
func DecodeUTF32LE(p []byte) (text.Text, error) {
	return DecodeUTF32LEWith(Strict, p)
}

// DecodeUTF32BEWith decodes big-endian UTF-32 with the policy h.
func DecodeUTF32BEWith(h ErrorHandler, p []byte) (text.Text, error) {
	return decodeUTF32(h, MsgInvalidUTF32BE, p, binary.BigEndian)
}

// DecodeUTF32BE decodes big-endian UTF-32 strictly.
func DecodeUTF32BE(p []byte) (text.Text, error) {
	return DecodeUTF32BEWith(Strict, p)
}

// EncodeUTF32LE encodes t as little-endian UTF-32. It never fails.
func EncodeUTF32LE(t text.Text) []byte {
	return encodeUTF32(t, binary.LittleEndian)
}

// EncodeUTF32BE encodes t as big-endian UTF-32. It never fails.
func EncodeUTF32BE(t text.Text) []byte {
	return encodeUTF32(t, binary.BigEndian)
}
