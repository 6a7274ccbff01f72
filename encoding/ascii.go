// Copyright 2024 The Text Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import "github.com/david-sledge/text"

// asciiPrefixLen returns the length of the leading run of bytes < 0x80.
func asciiPrefixLen(p []byte) int {
	for i, c := range p {
		if c >= 0x80 {
			return i
		}
	}
	return len(p)
}

// DecodeASCIIPrefix copies the leading ASCII run of p into a Text and
// returns it along with the run's length. If n < len(p), p[n] is the
// first byte >= 0x80.
func DecodeASCIIPrefix(p []byte) (text.Text, int) {
	n := asciiPrefixLen(p)
	return text.FromValidBytes(append([]byte(nil), p[:n]...)), n
}

// DecodeASCII decodes p, which must contain only bytes < 0x80. The first
// byte outside that range is reported as a *NonASCIIError.
func DecodeASCII(p []byte) (text.Text, error) {
	t, n := DecodeASCIIPrefix(p)
	if n < len(p) {
		return text.Empty(), &NonASCIIError{Byte: p[n], Pos: n}
	}
	return t, nil
}

// DecodeLatin1 decodes p as ISO-8859-1. Every byte value maps to the
// scalar with the same number, so the conversion is total: ASCII runs are
// copied through and each byte >= 0x80 expands to its two-byte UTF-8 form.
func DecodeLatin1(p []byte) text.Text {
	out := make([]byte, 0, 2*len(p))
	for len(p) > 0 {
		n := asciiPrefixLen(p)
		out = append(out, p[:n]...)
		p = p[n:]
		if len(p) == 0 {
			break
		}
		c := p[0]
		out = append(out, 0xC0|c>>6, 0x80|c&0x3F)
		p = p[1:]
	}
	return text.FromValidBytes(out)
}
