// Copyright 2024 The Text Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

import (
	"math/rand"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"hello", "hello"},
		{"héllo", "héllo"},
		{"snow☃man", "snow☃man"},
		{"bad\xffbyte", "bad�byte"},
		{"\xc3", "�"},
	}
	for _, tc := range testCases {
		got := FromString(tc.in)
		if got.String() != tc.want {
			t.Errorf("FromString(%q) = %q; want %q", tc.in, got.String(), tc.want)
		}
	}
}

func TestTextAccessors(t *testing.T) {
	e := Empty()
	require.True(t, e.IsEmpty())
	require.Equal(t, 0, e.Len())
	require.Nil(t, e.Bytes())

	u := FromString("Aé☃")
	require.Equal(t, 6, u.Len())
	require.Equal(t, []byte("Aé☃"), u.Bytes())
	require.True(t, u.Equal(FromString("Aé☃")))
	require.False(t, u.Equal(e))
	require.Equal(t, []byte("xAé☃"), u.AppendTo([]byte("x")))
}

func TestFromValidBytesSharesBuffer(t *testing.T) {
	b := []byte("shared")
	u := FromValidBytes(b)
	require.Equal(t, "shared", u.String())
	require.Same(t, &b[0], &u.b[0])
	require.True(t, FromValidBytes(nil).IsEmpty())
}

func TestCopyTo(t *testing.T) {
	u := FromString("abcdef")
	dst := make([]byte, 4)
	if n := u.CopyTo(dst, 0); n != 4 || string(dst) != "abcd" {
		t.Errorf("CopyTo(dst, 0) = %d, %q", n, dst)
	}
	if n := u.CopyTo(dst, 4); n != 2 || string(dst[:n]) != "ef" {
		t.Errorf("CopyTo(dst, 4) = %d, %q", n, dst[:n])
	}
}

func TestRuneCount(t *testing.T) {
	testCases := []string{
		"",
		"a",
		"hello, world",
		"héllo",
		"☃☃☃",
		"𝄞 clef",
		"mixed ascii with é and 中文 and 🎈🎈🎈 tail",
	}
	for _, s := range testCases {
		u := FromString(s)
		if got, want := u.RuneCount(), utf8.RuneCountInString(s); got != want {
			t.Errorf("RuneCount(%q) = %d; want %d", s, got, want)
		}
	}
}

func TestRuneCountRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		rs := make([]rune, rng.Intn(40))
		for j := range rs {
			rs[j] = randRune(rng)
		}
		s := string(rs)
		u := FromString(s)
		if got, want := u.RuneCount(), utf8.RuneCountInString(s); got != want {
			t.Fatalf("RuneCount(%q) = %d; want %d", s, got, want)
		}
	}
}

func randRune(rng *rand.Rand) rune {
	for {
		r := rune(rng.Intn(utf8.MaxRune + 1))
		if utf8.ValidRune(r) {
			return r
		}
	}
}

func TestEachRune(t *testing.T) {
	u := FromString("aé☃")
	var got []rune
	u.EachRune(func(r rune) bool {
		got = append(got, r)
		return true
	})
	require.Equal(t, []rune{'a', 'é', '☃'}, got)

	got = got[:0]
	u.EachRune(func(r rune) bool {
		got = append(got, r)
		return false
	})
	require.Equal(t, []rune{'a'}, got)
}

func TestBuilderEmpty(t *testing.T) {
	var b Builder
	require.Equal(t, 0, b.Len())
	require.True(t, b.Text().IsEmpty())

	b.PushBytes(nil)
	b.PushText(Empty())
	require.Equal(t, 0, b.Len())
	require.True(t, b.Text().IsEmpty())
}

func TestBuilderAssembles(t *testing.T) {
	var b Builder
	b.PushText(FromString("hi "))
	b.PushBytes([]byte{0xE2, 0x98}) // fragments may split a code point
	b.PushBytes([]byte{0x83})
	b.PushRune('!')
	require.Equal(t, 7, b.Len())
	require.Equal(t, "hi ☃!", b.Text().String())

	// the builder is reset after materialising
	require.Equal(t, 0, b.Len())
	require.True(t, b.Text().IsEmpty())
}

func TestBuilderTotalInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 100; i++ {
		var b Builder
		var want []byte
		for j := 0; j < rng.Intn(20); j++ {
			switch rng.Intn(3) {
			case 0:
				frag := make([]byte, rng.Intn(8))
				for k := range frag {
					frag[k] = byte(rng.Intn(0x80)) // keep the concatenation well formed
				}
				b.PushBytes(frag)
				want = append(want, frag...)
			case 1:
				r := randRune(rng)
				b.PushRune(r)
				want = utf8.AppendRune(want, r)
			case 2:
				u := FromString("seg")
				b.PushText(u)
				want = append(want, "seg"...)
			}
			if b.Len() != len(want) {
				t.Fatalf("builder total = %d; want %d", b.Len(), len(want))
			}
		}
		got := b.Text()
		if got.Len() != len(want) || got.String() != string(want) {
			t.Fatalf("materialised %q (%d bytes); want %q", got.String(), got.Len(), want)
		}
	}
}

func TestBuilderPushRuneInvalid(t *testing.T) {
	var b Builder
	b.PushRune(0xD800) // surrogate encodes as U+FFFD
	require.Equal(t, "�", b.Text().String())
}
