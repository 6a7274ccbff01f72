// Copyright 2024 The Text Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"unicode/utf8"

	"github.com/david-sledge/text/internal/utf8internal"
)

// A Carry holds the bytes of a code point left unfinished at the end of a
// chunk, together with the automaton state that consumed them. The zero
// Carry is empty. A Carry is a plain value and may be copied freely.
type Carry struct {
	buf [3]byte
	n   uint8
	st  utf8internal.State
}

// Len returns the number of pending bytes, 0 through 3.
func (c Carry) Len() int {
	return int(c.n)
}

// Empty reports whether no code point is in progress.
func (c Carry) Empty() bool {
	return c.n == 0
}

// Bytes returns an independent copy of the pending bytes, or nil when the
// carry is empty.
func (c Carry) Bytes() []byte {
	if c.n == 0 {
		return nil
	}
	return append([]byte(nil), c.buf[:c.n]...)
}

// pending returns the pending bytes without copying. Internal callers must
// not retain the result past the next use of the carry.
func (c *Carry) pending() []byte {
	return c.buf[:c.n]
}

// ValidateUTF8Chunk scans p for its longest well-formed UTF-8 prefix and
// returns its length n.
//
// When the remainder of p is the valid start of a code point (possibly
// empty), resume is -1 and carry holds those bytes. When a malformed byte
// was found, resume is the index at which scanning may restart and
// p[n:resume] is the offending sequence: a lone invalid lead gives
// resume == n+1, while an invalid continuation byte gives resume equal to
// its own index so it is reconsidered as a lead.
func ValidateUTF8Chunk(p []byte) (n int, carry Carry, resume int) {
	last := 0

	// Validate all but a possibly unfinished trailing code point in bulk,
	// then walk the remainder byte by byte. Only a speedup; the scan below
	// covers everything when the bulk check fails.
	if len(p) >= 8 {
		b := len(p)
		switch {
		case p[b-1] >= 0xC2:
			b--
		case p[b-2] >= 0xE0:
			b -= 2
		case p[b-3] >= 0xF0:
			b -= 3
		}
		if utf8.Valid(p[:b]) {
			last = b
		}
	}

	var st utf8internal.State
	for i := last; i < len(p); i++ {
		ns, ok := utf8internal.Step(st, p[i])
		if !ok {
			if i == last {
				return last, Carry{}, i + 1
			}
			return last, Carry{}, i
		}
		st = ns
		if st.IsComplete() {
			last = i + 1
		}
	}

	carry.st = st
	carry.n = uint8(len(p) - last)
	copy(carry.buf[:], p[last:])
	return last, carry, -1
}

// ValidateNextUTF8Chunk resumes validation of p against the carry left by
// a previous chunk.
//
// When the carry is empty this is ValidateUTF8Chunk. Otherwise n is the
// end of the newly completed prefix of p, counting the bytes that finished
// the carried code point; n == -carry.Len() signals that nothing in p
// completed, because the carried code point was either cut short by a
// malformed byte (resume >= 0, offending range is the carry plus
// p[:resume]) or still unfinished when p ran out (resume == -1, next holds
// the extended carry).
func ValidateNextUTF8Chunk(p []byte, carry Carry) (n int, next Carry, resume int) {
	if carry.n == 0 {
		return ValidateUTF8Chunk(p)
	}
	st := carry.st
	for i := 0; i < len(p); i++ {
		ns, ok := utf8internal.Step(st, p[i])
		if !ok {
			return -int(carry.n), Carry{}, i
		}
		st = ns
		if st.IsComplete() {
			n, next, resume = ValidateUTF8Chunk(p[i+1:])
			n += i + 1
			if resume >= 0 {
				resume += i + 1
			}
			return n, next, resume
		}
	}
	next = carry
	copy(next.buf[next.n:], p)
	next.n += uint8(len(p))
	next.st = st
	return -int(carry.n), next, -1
}
