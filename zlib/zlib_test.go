// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package zlib

import (
	"bytes"
	stdzlib "compress/zlib"
	"fmt"
	"io"
	"testing"

	"github.com/dgryski/go-ddmin"
	"github.com/dgryski/go-tinyfuzz"
	"github.com/google/go-cmp/cmp"
	kpzlib "github.com/klauspost/compress/zlib"
	"github.com/lzkit/compress/internal/errors"
	"github.com/lzkit/compress/internal/testutil"
	"github.com/stretchr/testify/assert"
)

var errFuncs = map[string]func(error) bool{
	"IsInvalid":   errors.IsInvalid,
	"IsBounds":    errors.IsBounds,
	"IsCorrupted": errors.IsCorrupted,
	"IsChecksum":  errors.IsChecksum,
}

func TestDecompress(t *testing.T) {
	db := testutil.MustDecodeBitGen

	vectors := []struct {
		desc   string         // Description of the test
		input  []byte         // Test input string
		conf   *DecoderConfig // Decoder configuration
		output []byte         // Expected output string
		inIdx  int64          // Expected input offset after reading
		errf   string         // Name of error checking callback
	}{{
		desc: "empty input",
		errf: "IsInvalid",
	}, {
		desc:  "single byte input",
		input: []byte{0x78},
		errf:  "IsInvalid",
	}, {
		desc: "stored block",
		input: db(`<<<
			X:7801                # Header: window 32KiB, level 0
			< 1 00 0*5            # Last, raw block, padding
			< H16:0005 H16:fffa   # RawSize: 5
			X:68656c6c6f          # Raw data
			X:062c0215            # Adler-32
		`),
		output: []byte("hello"),
		inIdx:  16,
	}, {
		desc: "fixed block with a back-reference",
		input: db(`<<<
			X:789c                # Header: window 32KiB, level 2
			< 1 01                # Last, fixed block
			> 01110001            # Literal: 'A'
			> 0000001 D5:0        # Length: 3, Distance: 1
			> 0000000 0*2         # EOB marker, padding
			X:028e0105            # Adler-32
		`),
		output: []byte("AAAA"),
		inIdx:  10,
	}, {
		desc: "fixed block without checksum",
		input: db(`<<<
			X:789c
			< 1 01 > 01110001 0000001 D5:0 0000000
		`),
		output: []byte("AAAA"),
		inIdx:  6,
	}, {
		desc: "fixed block with partial checksum",
		input: db(`<<<
			X:789c
			< 1 01 > 01110001 0000001 D5:0 0000000 0*2
			X:028e01
		`),
		output: []byte("AAAA"),
		inIdx:  6,
	}, {
		desc: "checksum mismatch",
		input: db(`<<<
			X:7801
			< 1 00 0*5 < H16:0005 H16:fffa X:68656c6c6f
			X:062c0216
		`),
		output: []byte("hello"),
		errf:   "IsChecksum",
	}, {
		desc: "checksum mismatch ignored",
		input: db(`<<<
			X:7801
			< 1 00 0*5 < H16:0005 H16:fffa X:68656c6c6f
			X:062c0216
		`),
		conf:   &DecoderConfig{SkipChecksum: true},
		output: []byte("hello"),
		inIdx:  16,
	}, {
		desc: "preset dictionary identifier",
		input: db(`<<<
			X:78bb12345678        # Header with dictionary id
			< 1 00 0*5 < H16:0005 H16:fffa X:68656c6c6f
			X:062c0215
		`),
		output: []byte("hello"),
		inIdx:  20,
	}, {
		desc:  "truncated preset dictionary identifier",
		input: db("<<< X:78bb1234"),
		errf:  "IsCorrupted",
	}, {
		desc:  "unsupported method",
		input: db("<<< X:7701 < 1 01 > 0000000"),
		errf:  "IsCorrupted",
	}, {
		desc:  "window too large",
		input: db("<<< X:8801 < 1 01 > 0000000"),
		errf:  "IsCorrupted",
	}, {
		desc:   "bad check bits are ignored by default",
		input:  db("<<< X:7800 < 1 01 > 0000000"),
		output: []byte{},
		inIdx:  4,
	}, {
		desc:  "bad check bits",
		input: db("<<< X:7800 < 1 01 > 0000000"),
		conf:  &DecoderConfig{VerifyHeader: true},
		errf:  "IsCorrupted",
	}, {
		desc: "truncated body",
		input: db(`<<<
			X:7801
			< 1 00 0*5 < H16:0005 H16:fffa X:68656c
		`),
		errf: "IsCorrupted",
	}, {
		desc: "output too small",
		input: db(`<<<
			X:7801
			< 0 00 0*5 < H16:0005 H16:fffa X:68656c6c6f
			< 1 00 0*5 < H16:fffe H16:0001 X:00*65534
		`),
		output: []byte("hello"),
		errf:   "IsBounds",
	}}

	for i, v := range vectors {
		dst := make([]byte, 1<<16)
		zd := NewDecoder(v.conf)
		n, err := zd.Decompress(dst, v.input)
		output := dst[:n]

		if v.errf != "" && !errFuncs[v.errf](err) {
			t.Errorf("test %d, %s\nmismatching error:\ngot %v\nwant %s(got) == true", i, v.desc, err, v.errf)
		} else if v.errf == "" && err != nil {
			t.Errorf("test %d, %s\nunexpected error: got %v", i, v.desc, err)
		}
		if !bytes.Equal(output, v.output) {
			t.Errorf("test %d, %s\noutput mismatch:\ngot  %x\nwant %x", i, v.desc, output, v.output)
		}
		if v.errf == "" && zd.InputOffset != v.inIdx {
			t.Errorf("test %d, %s\ninput offset mismatch: got %d, want %d", i, v.desc, zd.InputOffset, v.inIdx)
		}
	}
}

func TestChecksumKind(t *testing.T) {
	input := testutil.MustDecodeBitGen(`<<<
		X:7801
		< 1 00 0*5 < H16:0005 H16:fffa X:68656c6c6f
		X:00000000
	`)
	_, err := Decompress(make([]byte, 16), input, nil)
	assert.Equal(t, ErrChecksum, err)
	assert.True(t, errors.IsChecksum(err))
	assert.False(t, errors.IsCorrupted(err))
}

func TestReadHeader(t *testing.T) {
	vectors := []struct {
		input []byte
		want  Header
		errf  string
	}{
		{input: []byte{0x78, 0x01}, want: Header{Method: 8, WindowSize: 32768, Level: 0, CheckBits: 1, size: 2}},
		{input: []byte{0x78, 0x9c}, want: Header{Method: 8, WindowSize: 32768, Level: 2, CheckBits: 28, size: 2}},
		{input: []byte{0x78, 0xda}, want: Header{Method: 8, WindowSize: 32768, Level: 3, CheckBits: 26, size: 2}},
		{input: []byte{0x08, 0x1d}, want: Header{Method: 8, WindowSize: 256, Level: 0, CheckBits: 29, size: 2}},
		{
			input: []byte{0x78, 0xbb, 0xde, 0xad, 0xbe, 0xef},
			want:  Header{Method: 8, WindowSize: 32768, HasDict: true, DictID: 0xdeadbeef, Level: 2, CheckBits: 27, size: 6},
		},
		{input: []byte{0x78}, errf: "IsInvalid"},
		{input: []byte{0x79, 0x01}, errf: "IsCorrupted"},
		{input: []byte{0xf8, 0x01}, errf: "IsCorrupted"},
		{input: []byte{0x78, 0xbb, 0xde}, errf: "IsCorrupted"},
	}

	for i, v := range vectors {
		got, err := ReadHeader(v.input)
		if v.errf != "" {
			if !errFuncs[v.errf](err) {
				t.Errorf("test %d, mismatching error: got %v, want %s(got) == true", i, err, v.errf)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
		}
		if diff := cmp.Diff(v.want, got, cmp.AllowUnexported(Header{})); diff != "" {
			t.Errorf("test %d, header mismatch (-want +got):\n%s", i, diff)
		}
	}
}

type zlibWriter interface {
	io.WriteCloser
	Flush() error
}

var writers = map[string]func(io.Writer, int) (zlibWriter, error){
	"std": func(w io.Writer, lvl int) (zlibWriter, error) { return stdzlib.NewWriterLevel(w, lvl) },
	"kp":  func(w io.Writer, lvl int) (zlibWriter, error) { return kpzlib.NewWriterLevel(w, lvl) },
}

func compress(name string, input []byte, lvl int) ([]byte, error) {
	var buf bytes.Buffer
	wr, err := writers[name](&buf, lvl)
	if err != nil {
		return nil, err
	}
	if _, err := wr.Write(input); err != nil {
		return nil, err
	}
	if err := wr.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func roundTrip(name string, input []byte, lvl int) error {
	comp, err := compress(name, input, lvl)
	if err != nil {
		return err
	}
	dst := make([]byte, len(input))
	zd := NewDecoder(&DecoderConfig{VerifyHeader: true})
	n, err := zd.Decompress(dst, comp)
	if err != nil {
		return err
	}
	if !bytes.Equal(dst[:n], input) {
		return fmt.Errorf("output mismatch")
	}
	if zd.InputOffset != int64(len(comp)) {
		return fmt.Errorf("input offset mismatch: got %d, want %d", zd.InputOffset, len(comp))
	}
	return nil
}

func TestRoundTrip(t *testing.T) {
	corpus := testutil.NewCorpus(1 << 16)
	corpus["empty"] = nil
	for _, wn := range []string{"std", "kp"} {
		for _, name := range corpus.Names() {
			for _, lvl := range []int{0, 1, 6, 9} {
				if err := roundTrip(wn, corpus[name], lvl); err != nil {
					t.Errorf("%s/%s/%d: %v", wn, name, lvl, err)
				}
			}
		}
	}
}

func TestRoundTripQuick(t *testing.T) {
	err := tinyfuzz.Fuzz(func(b []byte) bool {
		return roundTrip("kp", b, 6) == nil
	}, nil)
	if err != nil {
		t.Errorf("Error testing round-trip: %v", err)
	}
}

func TestNoPanic(t *testing.T) {
	err := tinyfuzz.Fuzz(func(b []byte) bool {
		// Arbitrary input must fail cleanly with a typed error.
		_, err := Decompress(make([]byte, 1024), b, nil)
		if err == nil {
			return true
		}
		_, ok := err.(errors.Error)
		return ok
	}, nil)
	if err != nil {
		t.Errorf("Error testing arbitrary input: %v", err)
	}
}

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte("hello, world"))
	f.Add(testutil.Repeats(4096))
	f.Fuzz(func(t *testing.T, b []byte) {
		if err := roundTrip("kp", b, 6); err != nil {
			t.Error("fuzz: round-trip:", err)

			t.Logf("minimizing: %x", b)

			fn := func(b []byte) ddmin.Result {
				got := roundTrip("kp", b, 6)
				if got == nil {
					return ddmin.Pass
				}
				if got.Error() == err.Error() {
					return ddmin.Fail
				}
				return ddmin.Unresolved
			}
			m := ddmin.Minimize(b, fn)
			t.Logf("minimized: %x", m)
		}

		// Decoding arbitrary input must not panic.
		Decompress(make([]byte, 1024), b, nil)
	})
}

func BenchmarkDecompress(b *testing.B) {
	const size = 1 << 20
	corpus := testutil.NewCorpus(size)
	for _, name := range corpus.Names() {
		comp, err := compress("kp", corpus[name], 6)
		if err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
		b.Run(name, func(b *testing.B) {
			zd := NewDecoder(nil)
			dst := make([]byte, size)
			b.SetBytes(size)
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := zd.Decompress(dst, comp); err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}
