// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lzx implements a decoder for the LZX compressed data format used by
// Microsoft Cabinet, CHM, and WIM files.
//
// The input is the raw LZX bit-stream without any container framing. Bits are
// packed into 16-bit little-endian words, starting with the most significant
// bit of each word.
package lzx

import (
	"github.com/lzkit/compress/internal/errors"
	"github.com/lzkit/compress/internal/prefix"
	"github.com/rs/zerolog"
)

const (
	minWindowBits     = 15
	maxWindowBits     = 21
	defaultWindowBits = minWindowBits

	defaultBlockSize = 32768
	numLitSyms       = 256
	numLenHeaders    = 8 // Length headers per position slot
	numLenSyms       = 249
	numAlignedSyms   = 8
	numPretreeSyms   = 20
	minMatchLen      = 2

	maxMainBits    = 16
	maxPretreeBits = 15
	maxAlignedBits = 7

	// e8MaxOffset is the output offset at which E8 translation stops.
	e8MaxOffset = 1 << 30
)

// Block types.
type blockType uint

const (
	blockVerbatim     blockType = 1
	blockAligned      blockType = 2
	blockUncompressed blockType = 3
)

func (bt blockType) String() string {
	switch bt {
	case blockVerbatim:
		return "verbatim"
	case blockAligned:
		return "aligned"
	case blockUncompressed:
		return "uncompressed"
	default:
		return "invalid"
	}
}

// numPositionSlots maps the window size in bits to the number of position
// slots, which determines the size of the main tree.
var numPositionSlots = map[uint]int{
	15: 30, 16: 32, 17: 34, 18: 36, 19: 38, 20: 42, 21: 50,
}

// footerBits is the number of extra bits that follow each position slot.
var footerBits = func() (bits []uint) {
	for slot := 0; slot < 50; slot++ {
		nb := uint(0)
		if slot >= 4 {
			nb = uint(slot/2 - 1)
		}
		if nb > 17 {
			nb = 17
		}
		bits = append(bits, nb)
	}
	return bits
}()

// positionLUT holds the base position and footer size of each position slot.
var positionLUT = prefix.MakeRangeCodes(0, footerBits)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Errorf(c, "lzx", f, a...)
}

var (
	errWindowBits     = errorf(errors.Invalid, "window size must be within 15..21 bits")
	errInvalidBlock   = errorf(errors.Corrupted, "invalid block type")
	errInvalidDelta   = errorf(errors.Corrupted, "invalid code length delta in run")
	errInvalidPretree = errorf(errors.Corrupted, "invalid pretree symbol")
)

// DecoderConfig configures a Decoder. The zero value and a nil pointer both
// select the defaults.
type DecoderConfig struct {
	// WindowBits is the base-2 logarithm of the window size, within 15..21.
	// It determines the number of position slots. The default is 15.
	WindowBits uint

	// MaxBlocks limits the number of blocks decoded. Zero means no limit;
	// decoding then stops once the output is full or the input is exhausted.
	MaxBlocks int

	// E8Translation enables reversal of the x86 CALL instruction
	// preprocessing on the decoded output.
	E8Translation bool

	// E8FileSize is the translation size used by E8Translation.
	// If zero, the length of the decoded output is used.
	E8FileSize int32

	// Logger receives block-level debug events.
	// A nil Logger disables logging.
	Logger *zerolog.Logger

	_ struct{} // Blank field to prevent unkeyed struct literals
}

func (c *DecoderConfig) logger() zerolog.Logger {
	if c == nil || c.Logger == nil {
		return zerolog.Nop()
	}
	return c.Logger.With().Str("pkg", "lzx").Logger()
}
