// Copyright 2024 The Text Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package encoding converts byte streams to and from text.Text values
// across ASCII, Latin-1, UTF-8, UTF-16 and UTF-32.
//
// The UTF-8 decoders are incremental: input may be split at arbitrary byte
// boundaries, with the 1-3 leading bytes of an unfinished code point
// carried between chunks. Malformed input is handled by an ErrorHandler,
// so strict, replacing and custom policies share one scan of the input.
//
// For use with the golang.org/x/text ecosystem, the package also exposes
// its codecs as transform.Transformer and encoding.Encoding values.
package encoding

import (
	"fmt"
	"unicode/utf8"
)

// Messages passed to an ErrorHandler by the UTF-8 decoders. Custom
// handlers can rely on the exact strings.
const (
	MsgInvalidUTF8    = "Invalid UTF-8 stream"
	MsgIncompleteUTF8 = "Incomplete UTF-8 code point"
)

// NoByte is passed to an ErrorHandler when the malformed code unit is
// wider than a byte, as for UTF-16 and UTF-32 input.
const NoByte = -1

// An ErrorHandler decides how a decoder reacts to malformed input. It is
// consulted once per offending code unit: per byte for UTF-8, per 2-byte
// unit for UTF-16, per 4-byte unit for UTF-32.
//
// desc describes the problem; b is the offending byte, or NoByte when the
// unit does not fit in a byte. The handler returns the rune to emit in
// place of the unit, or any negative rune to emit nothing. Surrogate
// replacements are remapped to U+FFFD. A non-nil error aborts the decode;
// the Decode functions then return no partial output, while a transformer
// reports the bytes it wrote to dst before the error.
type ErrorHandler func(desc string, b int) (rune, error)

var (
	// Strict aborts the decode on the first malformed unit, reporting it
	// as a *UnicodeError.
	Strict ErrorHandler = func(desc string, b int) (rune, error) {
		return 0, &UnicodeError{Desc: desc, Byte: b, Pos: posUnknown}
	}

	// Replace substitutes U+FFFD for every malformed unit.
	Replace ErrorHandler = func(string, int) (rune, error) {
		return utf8.RuneError, nil
	}

	// Ignore drops malformed units from the output.
	Ignore ErrorHandler = func(string, int) (rune, error) {
		return -1, nil
	}
)

const posUnknown = -1 << 31

// A UnicodeError reports malformed input rejected by a strict decode or
// by a custom handler that chose to fail.
type UnicodeError struct {
	Desc string // one of the Msg constants, or handler-supplied
	Byte int    // offending byte, or NoByte
	Pos  int    // offset in the current call's input; negative inside the carry
}

func (e *UnicodeError) Error() string {
	if e.Byte == NoByte {
		return fmt.Sprintf("encoding: %s at offset %d", e.Desc, e.Pos)
	}
	return fmt.Sprintf("encoding: %s at offset %d, byte %#02x", e.Desc, e.Pos, e.Byte)
}

// A NonASCIIError reports a byte >= 0x80 in input decoded as ASCII.
type NonASCIIError struct {
	Byte byte
	Pos  int
}

func (e *NonASCIIError) Error() string {
	return fmt.Sprintf("encoding: non-ASCII byte %#02x at offset %d", e.Byte, e.Pos)
}

// sanitize maps a handler-returned replacement onto a valid scalar value.
// Surrogates and out-of-range runes are never accepted from a handler.
func sanitize(r rune) rune {
	if utf8.ValidRune(r) {
		return r
	}
	return utf8.RuneError
}
