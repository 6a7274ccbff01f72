// Copyright 2024 The Text Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"encoding/binary"
	"errors"
	"io"
	"unicode/utf16"
	"unicode/utf8"

	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// asciiSub is the ASCII substitute character, written by encoders for
// runes outside the target repertoire.
const asciiSub = 0x1A

// UTF8Transformer returns a transform.Transformer that turns an arbitrary
// byte stream into well-formed UTF-8, holding the bytes of a code point
// that straddles Transform calls. Malformed bytes go through h: with
// Strict the transformation fails on the first one, with Replace each
// becomes U+FFFD.
func UTF8Transformer(h ErrorHandler) transform.Transformer {
	return &utf8Transform{h: h}
}

type utf8Transform struct {
	h     ErrorHandler
	carry Carry
}

func (t *utf8Transform) Reset() {
	t.carry = Carry{}
}

func (t *utf8Transform) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for {
		// Valid output is byte-for-byte input, so capping the chunk at the
		// free dst space guarantees the copy below fits.
		take := src[nSrc:]
		truncated := false
		if room, c := len(dst)-nDst, t.carry.Len(); len(take)+c > room {
			if room <= c {
				take = take[:0]
			} else {
				take = take[:room-c]
			}
			truncated = true
		}

		n, next, resume := ValidateNextUTF8Chunk(take, t.carry)
		if resume < 0 {
			if n >= 0 {
				nDst += copy(dst[nDst:], t.carry.pending())
				nDst += copy(dst[nDst:], take[:n])
			}
			nSrc += len(take)
			t.carry = next
			if truncated {
				return nDst, nSrc, transform.ErrShortDst
			}
			if atEOF && !t.carry.Empty() {
				return t.flushIncomplete(dst, nDst, nSrc)
			}
			return nDst, nSrc, nil
		}

		// Malformed input: commit the valid prefix, then let the handler
		// speak for each offending byte.
		if n >= 0 {
			nDst += copy(dst[nDst:], t.carry.pending())
			nDst += copy(dst[nDst:], take[:n])
			t.carry = Carry{}
		}
		if utf8.UTFMax*(resume-n) > len(dst)-nDst {
			if n > 0 {
				nSrc += n
			}
			return nDst, nSrc, transform.ErrShortDst
		}
		carry := t.carry
		for i := n; i < resume; i++ {
			var c byte
			if i < 0 {
				c = carry.buf[carry.Len()+i]
			} else {
				c = take[i]
			}
			r, herr := t.h(MsgInvalidUTF8, int(c))
			if herr != nil {
				var ue *UnicodeError
				if errors.As(herr, &ue) && ue.Pos == posUnknown {
					ue.Pos = nSrc + i
				}
				return nDst, nSrc, herr
			}
			if r >= 0 {
				nDst += utf8.EncodeRune(dst[nDst:], sanitize(r))
			}
		}
		nSrc += resume
		t.carry = Carry{}
	}
}

// flushIncomplete reports the carry bytes stranded at end of stream.
func (t *utf8Transform) flushIncomplete(dst []byte, nDst, nSrc int) (int, int, error) {
	c := t.carry
	if utf8.UTFMax*c.Len() > len(dst)-nDst {
		return nDst, nSrc, transform.ErrShortDst
	}
	for i := 0; i < c.Len(); i++ {
		r, herr := t.h(MsgIncompleteUTF8, int(c.buf[i]))
		if herr != nil {
			var ue *UnicodeError
			if errors.As(herr, &ue) && ue.Pos == posUnknown {
				ue.Pos = i - c.Len()
			}
			return nDst, nSrc, herr
		}
		if r >= 0 {
			nDst += utf8.EncodeRune(dst[nDst:], sanitize(r))
		}
	}
	t.carry = Carry{}
	return nDst, nSrc, nil
}

// NewUTF8Reader wraps r so that reads yield well-formed UTF-8, decoded
// incrementally under the policy h.
func NewUTF8Reader(r io.Reader, h ErrorHandler) io.Reader {
	return transform.NewReader(r, UTF8Transformer(h))
}

// UTF8 is an Encoding whose decoder and encoder both repair arbitrary
// input into well-formed UTF-8, replacing malformed bytes with U+FFFD.
var UTF8 xencoding.Encoding = utf8Codec{}

type utf8Codec struct{}

func (utf8Codec) NewDecoder() *xencoding.Decoder {
	return &xencoding.Decoder{Transformer: &utf8Transform{h: Replace}}
}

func (utf8Codec) NewEncoder() *xencoding.Encoder {
	return &xencoding.Encoder{Transformer: &utf8Transform{h: Replace}}
}

func (utf8Codec) String() string { return "UTF-8" }

// Latin1 is the ISO-8859-1 Encoding. Decoding is total; encoding writes
// the ASCII substitute character for runes above U+00FF.
var Latin1 xencoding.Encoding = latin1Codec{}

type latin1Codec struct{}

func (latin1Codec) NewDecoder() *xencoding.Decoder {
	return &xencoding.Decoder{Transformer: latin1Decoder{}}
}

func (latin1Codec) NewEncoder() *xencoding.Encoder {
	return &xencoding.Encoder{Transformer: latin1Encoder{}}
}

func (latin1Codec) String() string { return "ISO-8859-1" }

type latin1Decoder struct{ transform.NopResetter }

func (latin1Decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for ; nSrc < len(src); nSrc++ {
		c := src[nSrc]
		if c < utf8.RuneSelf {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			continue
		}
		if nDst+2 > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = 0xC0 | c>>6
		dst[nDst+1] = 0x80 | c&0x3F
		nDst += 2
	}
	return nDst, nSrc, nil
}

type latin1Encoder struct{ transform.NopResetter }

func (latin1Encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	r, size := rune(0), 0
	for ; nSrc < len(src); nSrc += size {
		r, size = rune(src[nSrc]), 1
		if r >= utf8.RuneSelf {
			r, size = utf8.DecodeRune(src[nSrc:])
			if size == 1 {
				if !atEOF && !utf8.FullRune(src[nSrc:]) {
					err = transform.ErrShortSrc
					break
				}
				r = utf8.RuneError
			}
			if r > 0xFF {
				r = asciiSub
			}
		}
		if nDst >= len(dst) {
			err = transform.ErrShortDst
			break
		}
		dst[nDst] = byte(r)
		nDst++
	}
	return nDst, nSrc, err
}

// UTF16LE, UTF16BE, UTF32LE and UTF32BE are Encodings for the fixed-unit
// Unicode transformation formats, without BOM handling. Their decoders
// replace each malformed code unit with U+FFFD.
var (
	UTF16LE xencoding.Encoding = unitCodec{name: "UTF-16LE", unit: 2, bo: binary.LittleEndian}
	UTF16BE xencoding.Encoding = unitCodec{name: "UTF-16BE", unit: 2, bo: binary.BigEndian}
	UTF32LE xencoding.Encoding = unitCodec{name: "UTF-32LE", unit: 4, bo: binary.LittleEndian}
	UTF32BE xencoding.Encoding = unitCodec{name: "UTF-32BE", unit: 4, bo: binary.BigEndian}
)

type unitCodec struct {
	name string
	unit int
	bo   byteOrder
}

func (c unitCodec) NewDecoder() *xencoding.Decoder {
	if c.unit == 2 {
		return &xencoding.Decoder{Transformer: utf16Decoder{bo: c.bo}}
	}
	return &xencoding.Decoder{Transformer: utf32Decoder{bo: c.bo}}
}

func (c unitCodec) NewEncoder() *xencoding.Encoder {
	if c.unit == 2 {
		return &xencoding.Encoder{Transformer: utf16Encoder{bo: c.bo}}
	}
	return &xencoding.Encoder{Transformer: utf32Encoder{bo: c.bo}}
}

func (c unitCodec) String() string { return c.name }

type utf16Decoder struct {
	transform.NopResetter
	bo byteOrder
}

func (d utf16Decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	r, size := rune(0), 0
loop:
	for ; nSrc < len(src); nSrc += size {
		if len(src)-nSrc < 2 {
			if !atEOF {
				err = transform.ErrShortSrc
				break loop
			}
			r, size = utf8.RuneError, len(src)-nSrc
		} else {
			switch u := d.bo.Uint16(src[nSrc:]); {
			case u < surr1, surr3 <= u:
				r, size = rune(u), 2
			case u < surr2:
				if len(src)-nSrc < 4 {
					if !atEOF {
						err = transform.ErrShortSrc
						break loop
					}
					r, size = utf8.RuneError, 2
					break
				}
				if v := d.bo.Uint16(src[nSrc+2:]); surr2 <= v && v < surr3 {
					r, size = 0x10000+(rune(u)-surr1)<<10+(rune(v)-surr2), 4
					break
				}
				r, size = utf8.RuneError, 2
			default:
				r, size = utf8.RuneError, 2
			}
		}
		if nDst+utf8.RuneLen(r) > len(dst) {
			err = transform.ErrShortDst
			break loop
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
	}
	return nDst, nSrc, err
}

type utf16Encoder struct {
	transform.NopResetter
	bo byteOrder
}

func (e utf16Encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	r, size := rune(0), 0
	for ; nSrc < len(src); nSrc += size {
		r, size = rune(src[nSrc]), 1
		if r >= utf8.RuneSelf {
			r, size = utf8.DecodeRune(src[nSrc:])
			if size == 1 {
				if !atEOF && !utf8.FullRune(src[nSrc:]) {
					err = transform.ErrShortSrc
					break
				}
				r = utf8.RuneError
			}
		}
		if r < 0x10000 {
			if nDst+2 > len(dst) {
				err = transform.ErrShortDst
				break
			}
			e.bo.PutUint16(dst[nDst:], uint16(r))
			nDst += 2
			continue
		}
		if nDst+4 > len(dst) {
			err = transform.ErrShortDst
			break
		}
		hi, lo := utf16.EncodeRune(r)
		e.bo.PutUint16(dst[nDst:], uint16(hi))
		e.bo.PutUint16(dst[nDst+2:], uint16(lo))
		nDst += 4
	}
	return nDst, nSrc, err
}

type utf32Decoder struct {
	transform.NopResetter
	bo byteOrder
}

func (d utf32Decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	r, size := rune(0), 0
	for ; nSrc < len(src); nSrc += size {
		if len(src)-nSrc < 4 {
			if !atEOF {
				err = transform.ErrShortSrc
				break
			}
			r, size = utf8.RuneError, len(src)-nSrc
		} else if u := d.bo.Uint32(src[nSrc:]); u < surr1 || surr3 <= u && u <= utf8.MaxRune {
			r, size = rune(u), 4
		} else {
			r, size = utf8.RuneError, 4
		}
		if nDst+utf8.RuneLen(r) > len(dst) {
			err = transform.ErrShortDst
			break
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
	}
	return nDst, nSrc, err
}

type utf32Encoder struct {
	transform.NopResetter
	bo byteOrder
}

func (e utf32Encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	r, size := rune(0), 0
	for ; nSrc < len(src); nSrc += size {
		r, size = rune(src[nSrc]), 1
		if r >= utf8.RuneSelf {
			r, size = utf8.DecodeRune(src[nSrc:])
			if size == 1 {
				if !atEOF && !utf8.FullRune(src[nSrc:]) {
					err = transform.ErrShortSrc
					break
				}
				r = utf8.RuneError
			}
		}
		if nDst+4 > len(dst) {
			err = transform.ErrShortDst
			break
		}
		e.bo.PutUint32(dst[nDst:], uint32(r))
		nDst += 4
	}
	return nDst, nSrc, err
}
