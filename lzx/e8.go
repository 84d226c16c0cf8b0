// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzx

import (
	"encoding/binary"
)

// translateE8 reverses the x86 CALL preprocessing done by the encoder.
// Every 0xE8 byte is followed by a 32-bit absolute target, which is converted
// back into the relative displacement that the instruction actually holds.
// The last 10 bytes and anything beyond e8MaxOffset are left untouched.
func translateE8(buf []byte, fileSize int32) {
	end := len(buf) - 10
	if end > e8MaxOffset {
		end = e8MaxOffset
	}
	for i := 0; i < end; i++ {
		if buf[i] != 0xe8 {
			continue
		}
		pos := int32(i)
		abs := int32(binary.LittleEndian.Uint32(buf[i+1:]))
		if abs >= -pos && abs < fileSize {
			rel := abs - pos
			if abs < 0 {
				rel = abs + fileSize
			}
			binary.LittleEndian.PutUint32(buf[i+1:], uint32(rel))
		}
		i += 4
	}
}
