// Copyright 2024 The Text Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"errors"

	"github.com/david-sledge/text"
)

// DecodeUTF8Chunk validates p as ValidateUTF8Chunk does and pushes the
// well-formed prefix p[:n] onto b.
func DecodeUTF8Chunk(p []byte, b *text.Builder) (n int, carry Carry, resume int) {
	return DecodeNextUTF8Chunk(p, Carry{}, b)
}

// DecodeNextUTF8Chunk validates p as ValidateNextUTF8Chunk does. When the
// carried code point completes (n >= 0) it pushes the carry's pending
// bytes followed by p[:n] onto b; otherwise b is left untouched and the
// pending bytes stay in the carry or, on error, form the start of the
// offending range.
func DecodeNextUTF8Chunk(p []byte, carry Carry, b *text.Builder) (n int, next Carry, resume int) {
	n, next, resume = ValidateNextUTF8Chunk(p, carry)
	if n >= 0 {
		b.PushBytes(carry.pending())
		b.PushBytes(p[:n])
	}
	return n, next, resume
}

// HandleUTF8Error walks the malformed byte range [start, end), where
// negative indices address the carry's pending bytes (-carry.Len() is the
// first of them) and indices from zero address p. The handler is invoked
// once per byte; replacement runes are pushed onto b. A handler error
// stops the walk and is returned after its position, if reported as a
// *UnicodeError, has been filled in.
func HandleUTF8Error(h ErrorHandler, desc string, start, end int, carry Carry, p []byte, b *text.Builder) error {
	for i := start; i < end; i++ {
		var c byte
		if i < 0 {
			c = carry.buf[int(carry.n)+i]
		} else {
			c = p[i]
		}
		r, err := h(desc, int(c))
		if err != nil {
			var ue *UnicodeError
			if errors.As(err, &ue) && ue.Pos == posUnknown {
				ue.Pos = i
			}
			return err
		}
		if r < 0 {
			continue
		}
		b.PushRune(sanitize(r))
	}
	return nil
}

// DecodeUTF8With decodes p with h deciding the fate of malformed bytes.
// The returned Text contains everything h chose to keep; a handler error
// aborts the decode with no partial output.
func DecodeUTF8With(h ErrorHandler, p []byte) (text.Text, error) {
	var b text.Builder
	var carry Carry
	off := 0 // where scanning resumes in p; error positions stay relative to p
	for {
		n, next, resume := DecodeNextUTF8Chunk(p[off:], carry, &b)
		if resume < 0 {
			if !next.Empty() {
				err := HandleUTF8Error(h, MsgIncompleteUTF8, -next.Len(), 0, next, nil, &b)
				if err != nil {
					return text.Empty(), err
				}
			}
			return b.Text(), nil
		}
		if err := HandleUTF8Error(h, MsgInvalidUTF8, off+n, off+resume, carry, p, &b); err != nil {
			return text.Empty(), err
		}
		off += resume
		carry = Carry{}
	}
}

// DecodeUTF8 decodes p strictly: the result is the exact decoding of p,
// or a *UnicodeError if p is not well-formed UTF-8.
func DecodeUTF8(p []byte) (text.Text, error) {
	return DecodeUTF8With(Strict, p)
}

// MustDecodeUTF8 is like DecodeUTF8 but panics on malformed input.
func MustDecodeUTF8(p []byte) text.Text {
	t, err := DecodeUTF8(p)
	if err != nil {
		panic(err)
	}
	return t
}

// DecodeUTF8Lenient decodes p, replacing every malformed byte with
// U+FFFD. It never fails.
func DecodeUTF8Lenient(p []byte) text.Text {
	t, _ := DecodeUTF8With(Replace, p)
	return t
}

// A Decoding is one step of an incremental UTF-8 decode: the text completed
// by the latest chunk, and the trailing bytes of a code point still
// awaiting its continuation.
type Decoding struct {
	// Text is the text completed by the last chunk.
	Text text.Text

	// Leftover is an independent copy of the bytes held back because
	// their code point is incomplete. It is empty whenever the input so
	// far ends on a code point boundary.
	Leftover []byte

	h     ErrorHandler
	carry Carry
}

// Next decodes the next chunk of the stream, continuing from the held-back
// bytes. The error policy is the one the stream was created with.
func (d Decoding) Next(p []byte) (Decoding, error) {
	h := d.h
	if h == nil {
		h = Strict
	}
	return streamDecode(h, d.carry, p)
}

// StreamDecodeUTF8 begins an incremental strict decode of a UTF-8 stream
// with its first chunk. Unlike DecodeUTF8, a code point cut off by the end
// of the chunk is not an error: its bytes are held back for the next call.
func StreamDecodeUTF8(p []byte) (Decoding, error) {
	return streamDecode(Strict, Carry{}, p)
}

// StreamDecodeUTF8With is StreamDecodeUTF8 with an explicit policy, which
// stays in force for the whole stream.
func StreamDecodeUTF8With(h ErrorHandler, p []byte) (Decoding, error) {
	return streamDecode(h, Carry{}, p)
}

func streamDecode(h ErrorHandler, carry Carry, p []byte) (Decoding, error) {
	var b text.Builder
	off := 0 // where scanning resumes in p; error positions stay relative to p
	for {
		n, next, resume := DecodeNextUTF8Chunk(p[off:], carry, &b)
		if resume < 0 {
			return Decoding{Text: b.Text(), Leftover: next.Bytes(), h: h, carry: next}, nil
		}
		if err := HandleUTF8Error(h, MsgInvalidUTF8, off+n, off+resume, carry, p, &b); err != nil {
			return Decoding{}, err
		}
		off += resume
		carry = Carry{}
	}
}

// EncodeUTF8 returns the UTF-8 encoding of t. Since a Text already stores
// UTF-8, this is a copy of its bytes.
func EncodeUTF8(t text.Text) []byte {
	return t.Bytes()
}
