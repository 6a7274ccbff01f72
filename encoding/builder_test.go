// Copyright 2024 The Text Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/david-sledge/text"
)

func TestEncodeUTF8Builder(t *testing.T) {
	u := text.FromString("hé☃llo wörld")
	require.Equal(t, u.Bytes(), BuildBytes(EncodeUTF8Builder(u)))
	require.Empty(t, BuildBytes(EncodeUTF8Builder(text.Empty())))
}

// TestBuilderTinyBuffers drives the step by hand with every buffer size
// down to one byte, checking resumption across buffer-full boundaries.
func TestBuilderTinyBuffers(t *testing.T) {
	u := text.FromString("hé☃x")
	for size := 1; size <= u.Len(); size++ {
		var out []byte
		step := EncodeUTF8Builder(u)
		for step != nil {
			dst := make([]byte, size)
			n, min, next := step(dst)
			require.LessOrEqual(t, n, size)
			if next != nil {
				require.Greater(t, min, 0)
			}
			out = append(out, dst[:n]...)
			step = next
		}
		require.Equal(t, u.Bytes(), out, "buffer size %d", size)
	}
}

// hexPrim renders an ASCII byte as two hex digits.
var hexPrim = EscapePrim{
	Bound: 2,
	Write: func(c byte, dst []byte) int {
		const digits = "0123456789abcdef"
		dst[0] = digits[c>>4]
		dst[1] = digits[c&0x0F]
		return 2
	},
}

func TestEncodeUTF8BuilderEscaped(t *testing.T) {
	u := text.FromString("Aé☃")
	got := BuildBytes(EncodeUTF8BuilderEscaped(hexPrim, u))
	require.Equal(t, "41é☃", string(got))
}

func TestEncodeUTF8BuilderEscapedTinyBuffers(t *testing.T) {
	u := text.FromString("ab☃cd🎈e")
	want := string(BuildBytes(EncodeUTF8BuilderEscaped(hexPrim, u)))
	for size := 4; size <= 16; size++ {
		var out []byte
		step := EncodeUTF8BuilderEscaped(hexPrim, u)
		for step != nil {
			dst := make([]byte, size)
			n, _, next := step(dst)
			out = append(out, dst[:n]...)
			step = next
		}
		require.Equal(t, want, string(out), "buffer size %d", size)
	}
}

func TestEscapePrimZeroBoundPanics(t *testing.T) {
	require.Panics(t, func() {
		EncodeUTF8BuilderEscaped(EscapePrim{}, text.FromString("x"))
	})
}

func ExampleBuildBytes() {
	u := text.FromString("hi ☃")
	fmt.Printf("% x\n", BuildBytes(EncodeUTF8Builder(u)))
	// Output: 68 69 20 e2 98 83
}
