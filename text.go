// Copyright 2024 The Text Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package text provides an immutable Unicode text value backed by
// well-formed UTF-8, together with a Builder that assembles one from
// validated fragments.
//
// Conversion between Text and other byte encodings lives in the encoding
// subpackage.
package text

import (
	"encoding/binary"
	"math/bits"
	"strings"
	"unicode/utf8"
)

// Text is an immutable sequence of Unicode scalar values, stored as
// well-formed UTF-8. The zero value is the empty text.
//
// A Text shares its underlying buffer when copied; the buffer is never
// mutated after construction.
type Text struct {
	b []byte
}

// Empty returns the canonical empty Text.
func Empty() Text {
	return Text{}
}

// FromString returns the Text holding the contents of s. Any ill-formed
// UTF-8 in s is replaced with U+FFFD, so the result is always well formed.
func FromString(s string) Text {
	return Text{b: []byte(strings.ToValidUTF8(s, "�"))}
}

// FromValidBytes wraps b without copying. The caller asserts that b is
// well-formed UTF-8 and promises never to modify it afterwards; violating
// either breaks the Text invariant. Decoders use this to hand off buffers
// they have just validated.
func FromValidBytes(b []byte) Text {
	if len(b) == 0 {
		return Text{}
	}
	return Text{b: b}
}

// Len returns the length of the text in bytes.
func (t Text) Len() int {
	return len(t.b)
}

// IsEmpty reports whether the text contains no bytes.
func (t Text) IsEmpty() bool {
	return len(t.b) == 0
}

// String returns the contents as a Go string. The bytes are copied.
func (t Text) String() string {
	return string(t.b)
}

// Bytes returns a fresh copy of the underlying UTF-8 bytes.
func (t Text) Bytes() []byte {
	if len(t.b) == 0 {
		return nil
	}
	return append([]byte(nil), t.b...)
}

// AppendTo appends the text's bytes to dst and returns the result.
func (t Text) AppendTo(dst []byte) []byte {
	return append(dst, t.b...)
}

// CopyTo copies as many bytes as fit of t's bytes starting at offset off
// into dst, returning the number copied.
func (t Text) CopyTo(dst []byte, off int) int {
	return copy(dst, t.b[off:])
}

// Equal reports whether t and u contain the same bytes.
func (t Text) Equal(u Text) bool {
	return string(t.b) == string(u.b)
}

// RuneCount returns the number of Unicode scalar values in the text.
//
// Because the bytes are known to be well formed, the count is the number of
// non-continuation bytes. The wide loop counts continuation bytes eight at
// a time.
func (t Text) RuneCount() int {
	n := len(t.b)
	b := t.b
	cont := 0
	for len(b) >= 8 {
		qword := binary.LittleEndian.Uint64(b)
		b = b[8:]
		bit7 := qword & 0x8080808080808080
		if bit7 == 0 {
			continue
		}
		bit6 := qword << 1
		cont += bits.OnesCount64(bit7 &^ bit6)
	}
	for _, c := range b {
		if c&0xC0 == 0x80 {
			cont++
		}
	}
	return n - cont
}

// EachRune calls f for every scalar value in the text, in order, stopping
// early if f returns false.
func (t Text) EachRune(f func(r rune) bool) {
	for i := 0; i < len(t.b); {
		r, size := utf8.DecodeRune(t.b[i:])
		if !f(r) {
			return
		}
		i += size
	}
}
