// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/lzkit/compress/internal/testutil"
)

// TestCodecs tests that the output of each registered encoder is a valid input
// for each registered decoder. This test runs in O(n^2) where n is the number
// of registered codecs. This assumes that the number of test inputs and
// compression formats stays relatively constant.
func TestCodecs(t *testing.T) {
	corpus := testutil.NewCorpus(1 << 18)
	for _, name := range corpus.Names() {
		dd := corpus[name]
		t.Run(fmt.Sprintf("Input:%v", name), func(t *testing.T) { testFormats(t, dd) })
	}
}

func testFormats(t *testing.T, dd []byte) {
	t.Parallel()
	for _, ft := range []Format{FormatZlib, FormatXZ} {
		if len(Encoders[ft]) == 0 || len(Decoders[ft]) == 0 {
			t.Skip("no codecs available")
		}
		t.Run(fmt.Sprintf("Format:%v", ft), func(t *testing.T) { testEncoders(t, ft, dd) })
	}
}

func testEncoders(t *testing.T, ft Format, dd []byte) {
	t.Parallel()
	const level = 6 // Default compression on all encoders
	for encName := range Encoders[ft] {
		encName := encName
		t.Run(fmt.Sprintf("Encoder:%v", encName), func(t *testing.T) {
			de, err := Compress(dd, Encoders[ft][encName], level)
			if err != nil {
				t.Fatalf("unexpected Compress error: %v", err)
			}
			testDecoders(t, ft, dd, de)
		})
	}
}

func testDecoders(t *testing.T, ft Format, dd, de []byte) {
	t.Parallel()
	for decName := range Decoders[ft] {
		decName := decName
		t.Run(fmt.Sprintf("Decoder:%v", decName), func(t *testing.T) {
			bd := make([]byte, len(dd))
			n, err := Decoders[ft][decName](bd, de)
			if err != nil {
				t.Fatalf("unexpected Decompress error: %v", err)
			}
			if n != len(dd) || !bytes.Equal(bd, dd) {
				t.Error("data mismatch")
			}
		})
	}
}
