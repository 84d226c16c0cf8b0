// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"github.com/dsnet/golib/errs"
	"github.com/lzkit/compress/internal"
)

// BitOrder selects how bits are extracted from the input bytes.
type BitOrder int

const (
	// LSBFirst consumes bytes sequentially, starting with the least
	// significant bit of each byte. DEFLATE uses this ordering.
	LSBFirst BitOrder = iota

	// MSBFirst16 consumes 16-bit little-endian words, starting with the most
	// significant bit of each word. LZX uses this ordering.
	MSBFirst16
)

// Reader reads bits and prefix codes from an in-memory buffer.
//
// Internally, the next bit of the stream is always the least significant bit
// of bufBits. In MSBFirst16 mode, every word is loaded bit-reversed, which
// allows the same Decoder tables to be used for both orderings.
//
// Methods that need more bits than the buffer holds panic with ErrTruncated
// through errs.Panic. Callers are expected to recover with errs.Recover.
type Reader struct {
	buf     []byte   // Entire input stream
	pos     int      // Index of the next byte of buf to load
	bufBits uint64   // Buffer to hold some bits
	numBits uint     // Number of valid bits in bufBits
	order   BitOrder // Bit-packing mode
}

// Init resets the Reader to read from buf with the given bit ordering.
func (pr *Reader) Init(buf []byte, order BitOrder) {
	*pr = Reader{buf: buf, order: order}
}

// unitBits is the granularity at which bits are loaded from buf.
func (pr *Reader) unitBits() uint {
	if pr.order == MSBFirst16 {
		return 16
	}
	return 8
}

// Offset reports the number of input bytes consumed so far.
// Partially consumed bytes (or words) are counted as consumed.
func (pr *Reader) Offset() int64 {
	unit := pr.unitBits()
	return int64(pr.pos) - int64(pr.numBits/unit*unit/8)
}

// BitsRead reports the total number of bits consumed so far.
func (pr *Reader) BitsRead() int64 {
	return 8*int64(pr.pos) - int64(pr.numBits)
}

// Remaining reports the number of whole input bytes that have not been
// consumed, including those that have only been buffered.
func (pr *Reader) Remaining() int {
	return len(pr.buf) - int(pr.Offset())
}

// FeedBits ensures that at least nb bits exist in the bit buffer.
// It fills the buffer with as many whole units as will fit.
func (pr *Reader) FeedBits(nb uint) {
	if pr.order == MSBFirst16 {
		for pr.numBits <= 48 && len(pr.buf)-pr.pos >= 2 {
			b0, b1 := pr.buf[pr.pos], pr.buf[pr.pos+1]
			w := uint64(internal.ReverseLUT[b1]) | uint64(internal.ReverseLUT[b0])<<8
			pr.bufBits |= w << pr.numBits
			pr.numBits += 16
			pr.pos += 2
		}
	} else {
		for pr.numBits <= 56 && pr.pos < len(pr.buf) {
			pr.bufBits |= uint64(pr.buf[pr.pos]) << pr.numBits
			pr.numBits += 8
			pr.pos++
		}
	}
	if pr.numBits < nb {
		errs.Panic(ErrTruncated)
	}
}

// TryReadBits attempts to read nb bits using the contents of the bit buffer
// alone. It returns the value and whether it succeeded.
//
// This method is designed to be inlined for performance reasons.
func (pr *Reader) TryReadBits(nb uint) (uint, bool) {
	if pr.numBits < nb {
		return 0, false
	}
	val := uint32(pr.bufBits & (uint64(1)<<nb - 1))
	pr.bufBits >>= nb
	pr.numBits -= nb
	if pr.order == MSBFirst16 {
		val = internal.ReverseUint32N(val, nb)
	}
	return uint(val), true
}

// ReadBits reads nb bits from the underlying buffer, where nb is within 0..32.
// In LSBFirst mode, the first bit read is the least significant bit of the
// result. In MSBFirst16 mode, the first bit read is the most significant.
func (pr *Reader) ReadBits(nb uint) uint {
	if pr.numBits < nb {
		pr.FeedBits(nb)
	}
	val, _ := pr.TryReadBits(nb)
	return val
}

// ReadPads discards the bits needed to reach the next unit boundary, which is
// a byte in LSBFirst mode and a 16-bit word in MSBFirst16 mode.
// It returns the discarded bits in stream order starting at the low bit.
func (pr *Reader) ReadPads() uint {
	nb := pr.numBits % pr.unitBits()
	val := uint(pr.bufBits & (uint64(1)<<nb - 1))
	pr.bufBits >>= nb
	pr.numBits -= nb
	return val
}

// ReadAligned returns the next n bytes of the input as a sub-slice of it.
// The Reader must be on a unit boundary. Whole bytes held in the bit buffer
// are returned to the input before slicing.
func (pr *Reader) ReadAligned(n int) []byte {
	if pr.numBits%pr.unitBits() != 0 {
		errs.Panic(errUnaligned)
	}
	pr.pos -= int(pr.numBits / 8)
	pr.bufBits, pr.numBits = 0, 0
	if n < 0 || n > len(pr.buf)-pr.pos {
		pr.pos = len(pr.buf)
		errs.Panic(ErrTruncated)
	}
	b := pr.buf[pr.pos : pr.pos+n]
	pr.pos += n
	return b
}

// TryReadSymbol attempts to decode the next symbol using the contents of the
// bit buffer alone. It returns the decoded symbol and whether it succeeded.
//
// This method is designed to be inlined for performance reasons.
func (pr *Reader) TryReadSymbol(pd *Decoder) (uint, bool) {
	if pr.numBits < uint(pd.minBits) || len(pd.chunks) == 0 {
		return 0, false
	}
	chunk := pd.chunks[uint32(pr.bufBits)&pd.chunkMask]
	nb := uint(chunk & countMask)
	if nb == 0 || nb > pr.numBits || nb > uint(pd.chunkBits) {
		return 0, false
	}
	pr.bufBits >>= nb
	pr.numBits -= nb
	return uint(chunk >> countBits), true
}

// ReadSymbol reads the next symbol using the provided prefix Decoder.
func (pr *Reader) ReadSymbol(pd *Decoder) uint {
	if len(pd.chunks) == 0 {
		errs.Panic(ErrInvalidCode) // Decode with empty tree
	}

	nb := uint(pd.minBits)
	for {
		if pr.numBits < nb {
			pr.FeedBits(nb)
		}
		chunk := pd.chunks[uint32(pr.bufBits)&pd.chunkMask]
		nb = uint(chunk & countMask)
		width := uint(pd.chunkBits)
		if nb > uint(pd.chunkBits) {
			linkIdx := chunk >> countBits
			chunk = pd.links[linkIdx][uint32(pr.bufBits>>pd.chunkBits)&pd.linkMask]
			nb = uint(chunk & countMask)
			width = uint(pd.maxBits)
		}
		if nb == 0 {
			// Bits past numBits are zero, so only fail once the whole
			// lookup index came from the stream.
			if pr.numBits >= width {
				errs.Panic(ErrInvalidCode)
			}
			nb = width
			continue
		}
		if nb <= pr.numBits {
			pr.bufBits >>= nb
			pr.numBits -= nb
			return uint(chunk >> countBits)
		}
	}
}

// ReadOffset reads an offset value using the provided RangeCodes indexed by
// the given symbol.
func (pr *Reader) ReadOffset(sym uint, rcs RangeCodes) uint {
	rc := rcs[sym]
	return uint(rc.Base) + pr.ReadBits(uint(rc.Len))
}
