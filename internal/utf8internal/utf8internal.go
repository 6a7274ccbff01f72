// Copyright 2024 The Text Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package utf8internal contains the byte-level automaton that recognises
// well-formed UTF-8 as defined by RFC 3629: no overlong forms, no
// surrogates, nothing above U+10FFFF.
package utf8internal

// The default lowest and highest continuation byte.
const (
	locb = 0x80
	hicb = 0xBF
)

const (
	// The states in the first table, packed as length | accept-index<<4.
	xx = 0xF1 // invalid: byte never starts a sequence
	as = 0xF0 // ASCII: one-byte sequence
	s1 = 0x02 // C2-DF: two bytes
	s2 = 0x13 // E0: three bytes, second byte A0-BF
	s3 = 0x03 // E1-EC, EE-EF: three bytes
	s4 = 0x23 // ED: three bytes, second byte 80-9F (no surrogates)
	s5 = 0x34 // F0: four bytes, second byte 90-BF
	s6 = 0x04 // F1-F3: four bytes
	s7 = 0x44 // F4: four bytes, second byte 80-8F (max U+10FFFF)
)

// first describes each possible first byte of a sequence.
var first = [256]uint8{
	//   1  2  3  4  5  6  7  8  9  A  B  C  D  E  F
	as, as, as, as, as, as, as, as, as, as, as, as, as, as, as, as, // 0x00-0x0F
	as, as, as, as, as, as, as, as, as, as, as, as, as, as, as, as, // 0x10-0x1F
	as, as, as, as, as, as, as, as, as, as, as, as, as, as, as, as, // 0x20-0x2F
	as, as, as, as, as, as, as, as, as, as, as, as, as, as, as, as, // 0x30-0x3F
	as, as, as, as, as, as, as, as, as, as, as, as, as, as, as, as, // 0x40-0x4F
	as, as, as, as, as, as, as, as, as, as, as, as, as, as, as, as, // 0x50-0x5F
	as, as, as, as, as, as, as, as, as, as, as, as, as, as, as, as, // 0x60-0x6F
	as, as, as, as, as, as, as, as, as, as, as, as, as, as, as, as, // 0x70-0x7F
	//   1  2  3  4  5  6  7  8  9  A  B  C  D  E  F
	xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, // 0x80-0x8F
	xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, // 0x90-0x9F
	xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, // 0xA0-0xAF
	xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, // 0xB0-0xBF
	xx, xx, s1, s1, s1, s1, s1, s1, s1, s1, s1, s1, s1, s1, s1, s1, // 0xC0-0xCF
	s1, s1, s1, s1, s1, s1, s1, s1, s1, s1, s1, s1, s1, s1, s1, s1, // 0xD0-0xDF
	s2, s3, s3, s3, s3, s3, s3, s3, s3, s3, s3, s3, s3, s4, s3, s3, // 0xE0-0xEF
	s5, s6, s6, s6, s7, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, // 0xF0-0xFF
}

// acceptRange gives the range of valid values for the second byte of a
// multi-byte sequence. Bytes after the second always accept locb-hicb.
type acceptRange struct {
	lo uint8 // lowest value for second byte
	hi uint8 // highest value for second byte
}

var acceptRanges = [...]acceptRange{
	0: {locb, hicb},
	1: {0xA0, hicb},
	2: {locb, 0x9F},
	3: {0x90, hicb},
	4: {locb, 0x8F},
}

// State is a node of the recognising automaton. The zero State is the
// start state, reached exactly between code points.
type State struct {
	want uint8 // continuation bytes still expected
	lo   uint8 // inclusive bounds for the next byte, valid when want > 0
	hi   uint8
}

// IsComplete reports whether s is the start state, i.e. no code point is
// in progress.
func (s State) IsComplete() bool {
	return s.want == 0
}

// Pending returns the number of continuation bytes still expected.
func (s State) Pending() int {
	return int(s.want)
}

// Step consumes one byte in state s. It returns the successor state and
// whether b is acceptable in s; on false the stream is malformed at b and
// the state is unchanged.
func Step(s State, b byte) (State, bool) {
	if s.want == 0 {
		if b < locb {
			return State{}, true
		}
		x := first[b]
		if x == xx {
			return State{}, false
		}
		ar := acceptRanges[x>>4]
		return State{want: x&7 - 1, lo: ar.lo, hi: ar.hi}, true
	}
	if b < s.lo || s.hi < b {
		return s, false
	}
	if s.want == 1 {
		return State{}, true
	}
	return State{want: s.want - 1, lo: locb, hi: hicb}, true
}

// RuneLen returns the length in bytes of the sequence started by lead,
// which must be a byte that can legally start one.
func RuneLen(lead byte) int {
	if lead < locb {
		return 1
	}
	return int(first[lead] & 7)
}
