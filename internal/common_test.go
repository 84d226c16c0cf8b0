// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package internal

import "testing"

func TestReverse(t *testing.T) {
	vectors32 := []struct {
		input  uint32
		n      uint
		output uint32
	}{
		{0x00000001, 32, 0x80000000},
		{0x12345678, 32, 0x1e6a2c48},
		{0x00000001, 1, 0x00000001},
		{0x00000006, 3, 0x00000003},
		{0x0000b00f, 16, 0x0000f00d},
		{0x00000000, 0, 0x00000000},
	}
	for i, v := range vectors32 {
		if output := ReverseUint32N(v.input, v.n); output != v.output {
			t.Errorf("test %d, ReverseUint32N(0x%x, %d): got 0x%x, want 0x%x", i, v.input, v.n, output, v.output)
		}
	}

	vectors64 := []struct {
		input  uint64
		n      uint
		output uint64
	}{
		{0x0000000000000001, 64, 0x8000000000000000},
		{0x0123456789abcdef, 64, 0xf7b3d591e6a2c480},
		{0x0000000000000005, 4, 0x000000000000000a},
		{0x0000000000000000, 0, 0x0000000000000000},
	}
	for i, v := range vectors64 {
		if output := ReverseUint64N(v.input, v.n); output != v.output {
			t.Errorf("test %d, ReverseUint64N(0x%x, %d): got 0x%x, want 0x%x", i, v.input, v.n, output, v.output)
		}
	}

	for i := 0; i < 256; i++ {
		if got := ReverseLUT[ReverseLUT[i]]; got != byte(i) {
			t.Errorf("ReverseLUT[ReverseLUT[%d]]: got %d", i, got)
		}
	}
}
