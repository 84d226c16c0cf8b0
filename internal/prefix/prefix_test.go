// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"testing"

	"github.com/dsnet/golib/errs"
	"github.com/google/go-cmp/cmp"
	"github.com/lzkit/compress/internal/errors"
	"github.com/lzkit/compress/internal/testutil"
)

// packBits packs a stream of bits according to the given ordering.
func packBits(bits []bool, order BitOrder) []byte {
	unit := 8
	if order == MSBFirst16 {
		unit = 16
	}
	for len(bits)%unit != 0 {
		bits = append(bits, false)
	}
	buf := make([]byte, len(bits)/8)
	for i, b := range bits {
		if !b {
			continue
		}
		switch order {
		case LSBFirst:
			buf[i/8] |= 1 << uint(i%8)
		case MSBFirst16:
			w := 2 * (i / 16)
			k := 15 - i%16 // Bit position within the word
			buf[w+k/8] |= 1 << uint(k%8)
		}
	}
	return buf
}

// appendCode appends the bits of a prefix code in stream order.
func appendCode(bits []bool, c PrefixCode) []bool {
	for i := uint32(0); i < c.Len; i++ {
		bits = append(bits, c.Val>>i&1 == 1)
	}
	return bits
}

func readSymbols(pr *Reader, pd *Decoder, n int) (syms []uint, err error) {
	defer errs.Recover(&err)
	for i := 0; i < n; i++ {
		syms = append(syms, pr.ReadSymbol(pd))
	}
	return syms, nil
}

func TestCanonicalCodes(t *testing.T) {
	var pd Decoder
	codes := FromLengths([]uint8{2, 1, 3, 3})
	if err := pd.Init(codes, 15); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Canonical codes are A:10, B:0, C:110, D:111 (stored bit-reversed).
	want := PrefixCodes{
		{Sym: 0, Len: 2, Val: 0x1},
		{Sym: 1, Len: 1, Val: 0x0},
		{Sym: 2, Len: 3, Val: 0x3},
		{Sym: 3, Len: 3, Val: 0x7},
	}
	if diff := cmp.Diff(want, codes); diff != "" {
		t.Errorf("codes mismatch (-want +got):\n%s", diff)
	}
	if !pd.Complete() || pd.NumSyms() != 4 {
		t.Errorf("Complete() = %v, NumSyms() = %d; want true, 4", pd.Complete(), pd.NumSyms())
	}

	// Stream "0 10 110 111 0" decodes as B A C D B.
	input := testutil.MustDecodeBitGen("<<< > 0 10 110 111 0")
	var pr Reader
	pr.Init(input, LSBFirst)
	syms, err := readSymbols(&pr, &pd, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]uint{1, 0, 2, 3, 1}, syms); diff != "" {
		t.Errorf("symbols mismatch (-want +got):\n%s", diff)
	}
	if got := pr.BitsRead(); got != 10 {
		t.Errorf("BitsRead() = %d, want 10", got)
	}
}

func TestDecoderInit(t *testing.T) {
	vectors := []struct {
		desc     string
		lens     []uint8
		maxBits  uint
		complete bool
		err      error
	}{{
		desc:    "empty tree",
		lens:    []uint8{0, 0, 0},
		maxBits: 15,
	}, {
		desc:    "single code",
		lens:    []uint8{0, 1},
		maxBits: 15,
	}, {
		desc:     "two codes",
		lens:     []uint8{1, 1},
		maxBits:  15,
		complete: true,
	}, {
		desc:    "over-subscribed",
		lens:    []uint8{1, 1, 1},
		maxBits: 15,
		err:     ErrOverSubscribed,
	}, {
		desc:    "over-subscribed long codes",
		lens:    []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 15, 15},
		maxBits: 15,
		err:     ErrOverSubscribed,
	}, {
		desc:    "code too long",
		lens:    []uint8{1, 2, 16, 16},
		maxBits: 15,
		err:     ErrCodeTooLong,
	}, {
		desc:     "sixteen bit codes",
		lens:     []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 16},
		maxBits:  16,
		complete: true,
	}, {
		desc:    "incomplete",
		lens:    []uint8{2, 2, 2},
		maxBits: 15,
	}}

	for i, v := range vectors {
		var pd Decoder
		err := pd.InitLengths(v.lens, v.maxBits)
		if err != v.err {
			t.Errorf("test %d, %s\nerror mismatch: got %v, want %v", i, v.desc, err, v.err)
			continue
		}
		if err == nil && pd.Complete() != v.complete {
			t.Errorf("test %d, %s\ncompleteness mismatch: got %v, want %v", i, v.desc, pd.Complete(), v.complete)
		}
	}
}

func TestInvalidCodes(t *testing.T) {
	vectors := []struct {
		desc  string
		lens  []uint8
		input string
		err   error
	}{{
		desc:  "empty tree",
		lens:  []uint8{0, 0},
		input: "<<< 0*8",
		err:   ErrInvalidCode,
	}, {
		desc:  "unused code in single code tree",
		lens:  []uint8{0, 1},
		input: "<<< > 1 0*7",
		err:   ErrInvalidCode,
	}, {
		desc:  "unused code in incomplete tree",
		lens:  []uint8{2, 2, 2},
		input: "<<< > 11 0*6",
		err:   ErrInvalidCode,
	}, {
		desc:  "truncated code",
		lens:  []uint8{1, 2, 3, 3},
		input: "<<< > 0 0 0 0 0 0 0 1",
		err:   ErrTruncated,
	}}

	for i, v := range vectors {
		var pd Decoder
		if err := pd.InitLengths(v.lens, 15); err != nil {
			t.Errorf("test %d, %s\nunexpected error: %v", i, v.desc, err)
			continue
		}
		var pr Reader
		pr.Init(testutil.MustDecodeBitGen(v.input), LSBFirst)
		_, err := readSymbols(&pr, &pd, 8)
		if err != v.err {
			t.Errorf("test %d, %s\nerror mismatch: got %v, want %v", i, v.desc, err, v.err)
		}
		if !errors.IsCorrupted(err) {
			t.Errorf("test %d, %s\nIsCorrupted(%v) = false", i, v.desc, err)
		}
	}
}

// TestRoundTrip encodes random symbols from trees with long codes and checks
// that both bit orderings decode them back, which exercises the links table.
func TestRoundTrip(t *testing.T) {
	rand := testutil.NewRand(0)
	trees := [][]uint8{
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 15},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 16},
		{3, 3, 3, 3, 3, 3, 3, 3},
		{0, 4, 0, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4},
	}
	for i, lens := range trees {
		for _, order := range []BitOrder{LSBFirst, MSBFirst16} {
			var pd Decoder
			codes := FromLengths(lens)
			if err := pd.Init(codes, 16); err != nil {
				t.Errorf("test %d, unexpected error: %v", i, err)
				continue
			}

			var bits []bool
			var want []uint
			for j := 0; j < 1000; j++ {
				c := codes[rand.Intn(len(codes))]
				bits = appendCode(bits, c)
				want = append(want, uint(c.Sym))
			}

			var pr Reader
			pr.Init(packBits(bits, order), order)
			got, err := readSymbols(&pr, &pd, len(want))
			if err != nil {
				t.Errorf("test %d, order %d, unexpected error: %v", i, order, err)
				continue
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("test %d, order %d, symbols mismatch (-want +got):\n%s", i, order, diff)
			}
		}
	}
}

func TestReader(t *testing.T) {
	readAll := func(pr *Reader, nbs []uint) (vals []uint, err error) {
		defer errs.Recover(&err)
		for _, nb := range nbs {
			vals = append(vals, pr.ReadBits(nb))
		}
		return vals, nil
	}

	vectors := []struct {
		desc   string
		input  string
		order  BitOrder
		nbs    []uint
		output []uint
		offset int64
		err    error
	}{{
		desc:   "LSB fields",
		input:  "<<< < D3:5 D13:4660 D16:65535 D32:305419896",
		order:  LSBFirst,
		nbs:    []uint{3, 13, 16, 32},
		output: []uint{5, 4660, 65535, 305419896},
		offset: 8,
	}, {
		desc:   "MSB word fields",
		input:  ">>>16 > D3:5 D13:4660 D16:65535 D32:305419896",
		order:  MSBFirst16,
		nbs:    []uint{3, 13, 16, 32},
		output: []uint{5, 4660, 65535, 305419896},
		offset: 8,
	}, {
		desc:   "MSB partial word",
		input:  ">>>16 > D4:9 D17:70000",
		order:  MSBFirst16,
		nbs:    []uint{4, 17, 0},
		output: []uint{9, 70000, 0},
		offset: 4,
	}, {
		desc:  "truncated LSB",
		input: "<<< X:ffff",
		order: LSBFirst,
		nbs:   []uint{8, 9},
		err:   ErrTruncated,
	}, {
		desc:  "odd trailing byte in word mode",
		input: "<<< X:ffffff",
		order: MSBFirst16,
		nbs:   []uint{16, 8},
		err:   ErrTruncated,
	}}

	for i, v := range vectors {
		var pr Reader
		pr.Init(testutil.MustDecodeBitGen(v.input), v.order)
		vals, err := readAll(&pr, v.nbs)
		if err != v.err {
			t.Errorf("test %d, %s\nerror mismatch: got %v, want %v", i, v.desc, err, v.err)
			continue
		}
		if err != nil {
			continue
		}
		if diff := cmp.Diff(v.output, vals); diff != "" {
			t.Errorf("test %d, %s\nvalues mismatch (-want +got):\n%s", i, v.desc, diff)
		}
		if got := pr.Offset(); got != v.offset {
			t.Errorf("test %d, %s\noffset mismatch: got %d, want %d", i, v.desc, got, v.offset)
		}
	}
}

func TestReadAligned(t *testing.T) {
	var pr Reader
	pr.Init(testutil.MustDecodeBitGen("<<< < D3:5 0*5 X:0102030405"), LSBFirst)

	var b1, b2 []byte
	err := func() (err error) {
		defer errs.Recover(&err)
		if v := pr.ReadBits(3); v != 5 {
			t.Errorf("ReadBits(3) = %d, want 5", v)
		}
		if v := pr.ReadPads(); v != 0 {
			t.Errorf("ReadPads() = %d, want 0", v)
		}
		b1 = pr.ReadAligned(2)
		if v := pr.ReadBits(8); v != 0x03 {
			t.Errorf("ReadBits(8) = %d, want 3", v)
		}
		if got := pr.Remaining(); got != 2 {
			t.Errorf("Remaining() = %d, want 2", got)
		}
		b2 = pr.ReadAligned(2)
		pr.ReadAligned(1)
		return nil
	}()
	if err != ErrTruncated {
		t.Errorf("error mismatch: got %v, want %v", err, ErrTruncated)
	}
	if diff := cmp.Diff([]byte{0x01, 0x02}, b1); diff != "" {
		t.Errorf("first slice mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]byte{0x04, 0x05}, b2); diff != "" {
		t.Errorf("second slice mismatch (-want +got):\n%s", diff)
	}
}

func TestRangeCodes(t *testing.T) {
	rcs := MakeRangeCodes(3, []uint{0, 0, 1, 1, 2})
	want := RangeCodes{{3, 0}, {4, 0}, {5, 1}, {7, 1}, {9, 2}}
	if diff := cmp.Diff(want, rcs); diff != "" {
		t.Errorf("range codes mismatch (-want +got):\n%s", diff)
	}
	if rcs.Base() != 3 || rcs.End() != 13 {
		t.Errorf("range = [%d, %d), want [3, 13)", rcs.Base(), rcs.End())
	}

	var pr Reader
	pr.Init(testutil.MustDecodeBitGen("<<< < D2:2 D1:1"), LSBFirst)
	if got := pr.ReadOffset(4, rcs); got != 11 {
		t.Errorf("ReadOffset(4) = %d, want 11", got)
	}
	if got := pr.ReadOffset(2, rcs); got != 6 {
		t.Errorf("ReadOffset(2) = %d, want 6", got)
	}
}

func BenchmarkReadSymbol(b *testing.B) {
	var pd Decoder
	codes := FromLengths([]uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 15})
	if err := pd.Init(codes, 15); err != nil {
		b.Fatalf("unexpected error: %v", err)
	}
	rand := testutil.NewRand(0)
	var bits []bool
	for len(bits) < 1<<20 {
		bits = appendCode(bits, codes[rand.Intn(4)])
	}
	input := packBits(bits, LSBFirst)

	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var pr Reader
		pr.Init(input, LSBFirst)
		for pr.BitsRead() < int64(len(bits)) {
			pr.ReadSymbol(&pd)
		}
	}
}
