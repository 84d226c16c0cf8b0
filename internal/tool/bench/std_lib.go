// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_std_lib
// +build !no_std_lib

package bench

import (
	"bytes"
	"compress/zlib"
	"io"
)

func init() {
	RegisterEncoder(FormatZlib, "std",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := zlib.NewWriterLevel(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder(FormatZlib, "std",
		func(dst, src []byte) (int, error) {
			zr, err := zlib.NewReader(bytes.NewReader(src))
			if err != nil {
				return 0, err
			}
			return readFull(zr, dst)
		})
}
