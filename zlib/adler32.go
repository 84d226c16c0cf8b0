// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package zlib

import (
	"github.com/dsnet/golib/hashutil"
)

const (
	adlerMod = 65521 // Largest prime smaller than 65536

	// adlerMax is the largest n such that 255n(n+1)/2 + (n+1)(adlerMod-1)
	// fits in 32 bits.
	adlerMax = 5552
)

// Checksum returns the Adler-32 checksum of buf.
func Checksum(buf []byte) uint32 {
	return UpdateChecksum(1, buf)
}

// UpdateChecksum returns the result of adding the bytes in buf to the
// Adler-32 checksum adler. The initial value of a fresh checksum is 1.
func UpdateChecksum(adler uint32, buf []byte) uint32 {
	s1, s2 := adler&0xffff, adler>>16
	for len(buf) > 0 {
		n := len(buf)
		if n > adlerMax {
			n = adlerMax
		}
		for _, b := range buf[:n] {
			s1 += uint32(b)
			s2 += s1
		}
		s1 %= adlerMod
		s2 %= adlerMod
		buf = buf[n:]
	}
	return s2<<16 | s1
}

// CombineChecksum combines the checksums of two adjacent buffers, where
// adler1 covers the first, adler2 covers the second, and len2 is the length
// of the second buffer.
func CombineChecksum(adler1, adler2 uint32, len2 int64) uint32 {
	return hashutil.CombineAdler32(adler1, adler2, len2)
}
