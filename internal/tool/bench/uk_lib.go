// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_uk_lib
// +build !no_uk_lib

package bench

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/ulikunitz/xz"
)

func init() {
	RegisterEncoder(FormatXZ, "uk",
		func(w io.Writer, lvl int) io.WriteCloser {
			// Approximate the dictionary sizes used by the xz presets.
			conf := xz.WriterConfig{DictCap: 1 << uint(16+lvl)}
			zw, err := conf.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder(FormatXZ, "uk",
		func(dst, src []byte) (int, error) {
			zr, err := xz.NewReader(bytes.NewReader(src))
			if err != nil {
				return 0, err
			}
			return readFull(ioutil.NopCloser(zr), dst)
		})
}
