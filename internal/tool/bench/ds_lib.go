// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_ds_lib
// +build !no_ds_lib

package bench

import (
	"github.com/lzkit/compress/zlib"
)

func init() {
	RegisterDecoder(FormatZlib, "ds",
		func(dst, src []byte) (int, error) {
			return zlib.Decompress(dst, src, nil)
		})
}
