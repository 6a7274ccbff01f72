// Copyright 2024 The Text Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"github.com/david-sledge/text"
	"github.com/david-sledge/text/internal/utf8internal"
)

// A BuildStep writes a piece of encoder output. Called with a writable
// buffer, it writes as much as fits and returns the number of bytes
// written together with the continuation for the rest; next is nil once
// everything has been written. min is a lower bound on the free space the
// continuation needs to make progress. A BuildStep never writes past
// len(dst).
type BuildStep func(dst []byte) (n, min int, next BuildStep)

// An EscapePrim serialises a single ASCII byte, typically as an escape
// sequence. Write renders c into dst and returns the bytes written; the
// caller guarantees len(dst) >= Bound, and Write must never exceed Bound.
type EscapePrim struct {
	Bound int
	Write func(c byte, dst []byte) int
}

// EncodeUTF8Builder returns a BuildStep that writes out t's bytes,
// resuming across buffer-full boundaries.
func EncodeUTF8Builder(t text.Text) BuildStep {
	var step func(off int) BuildStep
	step = func(off int) BuildStep {
		return func(dst []byte) (int, int, BuildStep) {
			n := t.CopyTo(dst, off)
			if off+n == t.Len() {
				return n, 0, nil
			}
			return n, 1, step(off + n)
		}
	}
	return step(0)
}

// EncodeUTF8BuilderEscaped returns a BuildStep that writes t with every
// ASCII byte rendered through prim and all other bytes copied verbatim,
// code point by code point. Each iteration writes at most
// max(4, prim.Bound) bytes. A prim with Bound < 1 is a caller error and
// panics.
func EncodeUTF8BuilderEscaped(prim EscapePrim, t text.Text) BuildStep {
	if prim.Bound < 1 {
		panic("encoding: escape primitive bound must be at least 1")
	}
	need := prim.Bound
	if need < 4 {
		need = 4
	}
	s := t.String()
	var step func(off int) BuildStep
	step = func(off int) BuildStep {
		return func(dst []byte) (int, int, BuildStep) {
			n := 0
			for off < len(s) {
				if c := s[off]; c < 0x80 {
					if len(dst)-n < prim.Bound {
						return n, need, step(off)
					}
					n += prim.Write(c, dst[n:])
					off++
				} else {
					size := utf8internal.RuneLen(c)
					if len(dst)-n < size {
						return n, need, step(off)
					}
					n += copy(dst[n:], s[off:off+size])
					off += size
				}
			}
			return n, 0, nil
		}
	}
	return step(0)
}

// BuildBytes drives a BuildStep to completion, growing the output
// whenever the step asks for more room than is free.
func BuildBytes(step BuildStep) []byte {
	var out []byte
	for step != nil {
		if cap(out) == len(out) {
			out = growBuild(out, 64)
		}
		n, min, next := step(out[len(out):cap(out)])
		out = out[:len(out)+n]
		if next != nil && cap(out)-len(out) < min {
			out = growBuild(out, min)
		}
		step = next
	}
	return out
}

func growBuild(out []byte, min int) []byte {
	c := 2 * cap(out)
	if c < cap(out)+min {
		c = cap(out) + min
	}
	grown := make([]byte, len(out), c)
	copy(grown, out)
	return grown
}
