// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package prefix implements bit readers and canonical prefix decoders shared
// by the DEFLATE and LZX engines.
package prefix

import (
	"github.com/lzkit/compress/internal/errors"
)

const (
	countBits = 5 // Number of bits to store the bit-length of the code
	countMask = (1 << countBits) - 1

	// MaxCodeBits is the largest code length any format in this module uses.
	MaxCodeBits = 16

	maxChunkBits = 9 // This can be tuned for better performance
)

var (
	// ErrTruncated is raised when the input ends in the middle of a field.
	ErrTruncated error = errors.Error{Code: errors.Corrupted, Pkg: "compress", Msg: "unexpected end of stream"}

	// ErrInvalidCode is raised when decoding a code that is not assigned to
	// any symbol, or when decoding with an empty tree.
	ErrInvalidCode error = errors.Error{Code: errors.Corrupted, Pkg: "compress", Msg: "invalid prefix code"}

	// ErrOverSubscribed is returned when code lengths do not form a prefix code.
	ErrOverSubscribed error = errors.Error{Code: errors.Corrupted, Pkg: "compress", Msg: "over-subscribed prefix code"}

	// ErrCodeTooLong is returned when a code length exceeds the configured limit.
	ErrCodeTooLong error = errors.Error{Code: errors.Corrupted, Pkg: "compress", Msg: "prefix code length too large"}

	errUnsorted  error = errors.Error{Code: errors.Internal, Pkg: "compress", Msg: "prefix symbols are not sorted"}
	errUnaligned error = errors.Error{Code: errors.Internal, Pkg: "compress", Msg: "bit reader is not aligned"}
)

// PrefixCode is a representation of a prefix code, which is conceptually a
// mapping from some arbitrary symbol to some bit-string.
//
// The Sym and Len fields are required.
// The Val field is assigned by the Decoder when it generates canonical codes.
type PrefixCode struct {
	Sym uint32 // The symbol being mapped
	Len uint32 // Bit length of the prefix code
	Val uint32 // Value of the prefix code, bit-reversed (must be in 0..(1<<Len)-1)
}

type PrefixCodes []PrefixCode

// FromLengths converts a list of code lengths indexed by symbol into a sorted
// list of prefix codes. Symbols with a zero length are omitted.
func FromLengths(lens []uint8) PrefixCodes {
	codes := make(PrefixCodes, 0, len(lens))
	for sym, n := range lens {
		if n > 0 {
			codes = append(codes, PrefixCode{Sym: uint32(sym), Len: uint32(n)})
		}
	}
	return codes
}

// checkPrefixes reports whether all codes have non-overlapping prefixes.
func (pc PrefixCodes) checkPrefixes() bool {
	for i, c1 := range pc {
		for j, c2 := range pc {
			mask := uint32(1)<<c1.Len - 1
			if i != j && c1.Len <= c2.Len && c1.Val&mask == c2.Val&mask {
				return false
			}
		}
	}
	return true
}

// RangeCode is a representation of some range of integers. Formats like
// DEFLATE and LZX encode a base symbol with a prefix code and then read Len
// extra bits to offset from the symbol's base value.
type RangeCode struct {
	Base uint32 // Starting base offset of the range
	Len  uint32 // Bit-length of a subsequent integer to add to base offset
}

type RangeCodes []RangeCode

// End reports the non-inclusive ending range.
func (rc RangeCode) End() uint32 { return rc.Base + (1 << rc.Len) }

// MakeRangeCodes creates a RangeCodes, where each region is assumed to be
// contiguously stacked, without any gaps, with bit-lengths taken from bits.
func MakeRangeCodes(minBase uint, bits []uint) (rc RangeCodes) {
	for _, nb := range bits {
		rc = append(rc, RangeCode{Base: uint32(minBase), Len: uint32(nb)})
		minBase += 1 << nb
	}
	return rc
}

// Base reports the smallest value covered by the range codes.
func (rcs RangeCodes) Base() uint32 { return rcs[0].Base }

// End reports the non-inclusive ending range of the range codes.
func (rcs RangeCodes) End() uint32 { return rcs[len(rcs)-1].End() }

// extendUint32s returns a slice with length n, reusing s if possible.
func extendUint32s(s []uint32, n int) []uint32 {
	if cap(s) >= n {
		return s[:n]
	}
	return append(s[:cap(s)], make([]uint32, n-cap(s))...)
}

// extendSliceUint32s returns a slice with length n, reusing s if possible.
func extendSliceUint32s(s [][]uint32, n int) [][]uint32 {
	if cap(s) >= n {
		return s[:n]
	}
	return append(s[:cap(s)], make([][]uint32, n-cap(s))...)
}
