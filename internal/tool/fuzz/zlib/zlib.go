// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

package zlib

import (
	"bytes"
	stdzlib "compress/zlib"
	"io/ioutil"

	"github.com/lzkit/compress"
	"github.com/lzkit/compress/zlib"
)

const maxOutput = 1 << 20

func Fuzz(data []byte) int {
	data, ok := testDecoders(data)
	if ok {
		testRoundTrip(data)
		return 1 // Favor valid inputs
	}
	return 0
}

// testDecoders tests that the input can be handled by both this package and
// the standard library. This test does not panic if both decoders run into an
// error, since it means that they both agree that the input is bad.
func testDecoders(data []byte) ([]byte, bool) {
	buf := make([]byte, maxOutput)
	n, derr := zlib.Decompress(buf, data, nil)
	db := buf[:n]

	var sb []byte
	sr, serr := stdzlib.NewReader(bytes.NewReader(data))
	if serr == nil {
		sb, serr = ioutil.ReadAll(sr)
	}

	switch {
	case derr == nil && serr == nil:
		if !bytes.Equal(db, sb) {
			panic("mismatching bytes")
		}
		return db, true
	case derr != nil && serr == nil:
		// Output that did not fit in the buffer is not a disagreement.
		if compress.IsBounds(derr) && len(sb) > maxOutput {
			return nil, false
		}
		panic(derr)
	case derr == nil && serr != nil:
		// Check bits, preset dictionaries, and missing trailers are only
		// rejected by the standard library.
		return nil, false
	default:
		return nil, false
	}
}

// testRoundTrip tests that the output of the standard encoder is decoded
// back into the original data.
func testRoundTrip(data []byte) {
	for lvl := stdzlib.HuffmanOnly; lvl <= stdzlib.BestCompression; lvl++ {
		var buf bytes.Buffer
		zw, err := stdzlib.NewWriterLevel(&buf, lvl)
		if err != nil {
			panic(err)
		}
		zw.Write(data)
		if err := zw.Close(); err != nil {
			panic(err)
		}

		out := make([]byte, len(data))
		n, err := zlib.Decompress(out, buf.Bytes(), &zlib.DecoderConfig{VerifyHeader: true})
		if err != nil {
			panic(err)
		}
		if !bytes.Equal(out[:n], data) {
			panic("mismatching bytes")
		}
	}
}
