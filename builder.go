// Copyright 2024 The Text Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

import "unicode/utf8"

// A Builder accumulates validated fragments of UTF-8 and assembles them
// into a single Text with one allocation. The zero value is ready to use.
//
// Fragments are recorded by reference: a pushed slice must not be modified
// until Text has been called. Individual fragments may begin or end in the
// middle of a code point, as happens when a chunk boundary splits one; the
// requirement is that the concatenation of all pushed fragments be
// well-formed UTF-8.
//
// A Builder must not be copied after first use.
type Builder struct {
	segs  [][]byte
	total int

	// scratch backs the bytes produced by PushRune. Bytes are only ever
	// appended to it and a full buffer is replaced rather than reused, so
	// slices taken from it earlier stay valid.
	scratch []byte
}

// PushText appends the contents of t. Pushing an empty Text is a no-op.
func (b *Builder) PushText(t Text) {
	b.push(t.b)
}

// PushBytes appends a fragment of UTF-8 bytes. Pushing an empty slice is a
// no-op. The caller must not modify p until Text has been called.
func (b *Builder) PushBytes(p []byte) {
	b.push(p)
}

// PushRune appends the UTF-8 encoding of r. Invalid runes are encoded as
// U+FFFD, as by utf8.AppendRune.
func (b *Builder) PushRune(r rune) {
	if cap(b.scratch)-len(b.scratch) < utf8.UTFMax {
		b.scratch = make([]byte, 0, 64)
	}
	n := len(b.scratch)
	b.scratch = utf8.AppendRune(b.scratch, r)
	b.push(b.scratch[n:len(b.scratch):len(b.scratch)])
}

func (b *Builder) push(p []byte) {
	if len(p) == 0 {
		return
	}
	b.segs = append(b.segs, p)
	b.total += len(p)
}

// Len returns the total number of bytes accumulated so far.
func (b *Builder) Len() int {
	return b.total
}

// Text assembles the accumulated fragments into a Text and resets the
// Builder, releasing every fragment reference. The output buffer is
// allocated at exactly the accumulated size and filled back to front, most
// recently pushed fragment first.
func (b *Builder) Text() Text {
	if b.total == 0 {
		b.segs, b.scratch = nil, nil
		return Text{}
	}
	out := make([]byte, b.total)
	off := b.total
	for i := len(b.segs) - 1; i >= 0; i-- {
		seg := b.segs[i]
		off -= len(seg)
		copy(out[off:], seg)
	}
	b.segs, b.total, b.scratch = nil, 0, nil
	return Text{b: out}
}
