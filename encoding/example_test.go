// Copyright 2024 The Text Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding_test

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/transform"

	"github.com/david-sledge/text/encoding"
)

func ExampleDecodeUTF8Lenient() {
	u := encoding.DecodeUTF8Lenient([]byte{0x41, 0xFF, 0x42})
	fmt.Println(u.String())
	// Output: A�B
}

func ExampleStreamDecodeUTF8() {
	d, _ := encoding.StreamDecodeUTF8([]byte{0x68, 0x69, 0x20, 0xE2})
	fmt.Printf("%q leftover [% x]\n", d.Text.String(), d.Leftover)
	d, _ = d.Next([]byte{0x98, 0x83})
	fmt.Printf("%q leftover [% x]\n", d.Text.String(), d.Leftover)
	// Output:
	// "hi " leftover [e2]
	// "☃" leftover []
}

func ExampleDecodeLatin1() {
	u := encoding.DecodeLatin1([]byte{0x41, 0xE9})
	fmt.Println(u.String())
	// Output: Aé
}

func ExampleLatin1() {
	sr := strings.NewReader("Gar\xe7on !")
	tr := transform.NewReader(sr, encoding.Latin1.NewDecoder())
	io.Copy(os.Stdout, tr)
	// Output: Garçon !
}
