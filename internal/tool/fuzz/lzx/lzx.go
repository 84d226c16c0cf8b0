// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

package lzx

import (
	"bytes"

	"github.com/lzkit/compress"
	"github.com/lzkit/compress/lzx"
)

const maxOutput = 1 << 20

func Fuzz(data []byte) int {
	var ok bool
	for _, wb := range []uint{15, 17, 21} {
		if testDecoder(data, wb) {
			ok = true
		}
	}
	if ok {
		return 1 // Favor valid inputs
	}
	return 0
}

// testDecoder tests that decoding is deterministic across reuse of a Decoder
// and that any error belongs to a known class.
func testDecoder(data []byte, windowBits uint) bool {
	conf := &lzx.DecoderConfig{WindowBits: windowBits, E8Translation: true}
	zd := lzx.NewDecoder(conf)

	b1 := make([]byte, maxOutput)
	n1, err1 := zd.Decompress(b1, data)
	b2 := make([]byte, maxOutput)
	n2, err2 := zd.Decompress(b2, data)

	if n1 != n2 || !bytes.Equal(b1[:n1], b2[:n2]) {
		panic("mismatching bytes")
	}
	if (err1 == nil) != (err2 == nil) {
		panic("mismatching errors")
	}
	if err1 != nil && !compress.IsCorrupted(err1) && !compress.IsBounds(err1) {
		panic(err1)
	}
	return err1 == nil && n1 > 0
}
