// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_kp_lib
// +build !no_kp_lib

package bench

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

func init() {
	RegisterEncoder(FormatZlib, "kp",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := zlib.NewWriterLevel(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder(FormatZlib, "kp",
		func(dst, src []byte) (int, error) {
			zr, err := zlib.NewReader(bytes.NewReader(src))
			if err != nil {
				return 0, err
			}
			return readFull(zr, dst)
		})
}
