// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"github.com/lzkit/compress/internal"
)

// Decoder is a canonical prefix decoder backed by a two-level lookup table.
//
// Each table entry packs a symbol and a bit-length as sym<<countBits | len.
// An entry with a zero length marks a bit-string that is not assigned to any
// symbol. A first-level entry whose length exceeds chunkBits is a pointer into
// the links table instead of a symbol.
type Decoder struct {
	chunks    []uint32   // First-level lookup map
	links     [][]uint32 // Second-level lookup map
	chunkMask uint32     // Mask the length of the chunks table
	linkMask  uint32     // Mask the length of the link table
	chunkBits uint32     // Bit-length of the chunks table
	maxBits   uint32     // Longest code length in the tree
	minBits   uint32     // The minimum number of bits to safely make progress
	numSyms   uint32     // Number of symbols
	complete  bool       // Whether the codes fill the entire code space
}

// Init initializes Decoder according to the codes provided.
// The symbols provided must be unique and in ascending order.
// Canonical code values are assigned to the Val field of each code.
//
// Over-subscribed code lengths and lengths above maxBits are rejected.
// Incomplete code sets are accepted; Complete reports whether the code space
// is fully used and decoding an unused bit-string fails with ErrInvalidCode.
// An empty set of codes produces a tree that fails on any decode.
func (pd *Decoder) Init(codes PrefixCodes, maxBits uint) error {
	*pd = Decoder{chunks: pd.chunks[:0], links: pd.links[:0]}
	if len(codes) == 0 {
		return nil
	}

	// Compute basic statistics on the symbols.
	var bitCnts [MaxCodeBits + 1]uint
	minBits, treeBits := uint32(MaxCodeBits), uint32(0)
	symLast := -1
	for _, c := range codes {
		if c.Len == 0 || int(c.Sym) <= symLast {
			return errUnsorted
		}
		if c.Len > uint32(maxBits) || c.Len > MaxCodeBits {
			return ErrCodeTooLong
		}
		if minBits > c.Len {
			minBits = c.Len
		}
		if treeBits < c.Len {
			treeBits = c.Len
		}
		bitCnts[c.Len]++     // Histogram of bit counts
		symLast = int(c.Sym) // Keep track of last symbol
	}

	// Check the Kraft inequality.
	left := 1
	for n := uint32(1); n <= treeBits; n++ {
		left = left<<1 - int(bitCnts[n])
		if left < 0 {
			return ErrOverSubscribed
		}
	}

	// Compute the next code for a symbol of a given bit length.
	var nextCodes [MaxCodeBits + 1]uint
	var code uint
	for n := uint32(1); n <= treeBits; n++ {
		code = (code + bitCnts[n-1]) << 1
		nextCodes[n] = code
	}

	pd.numSyms = uint32(len(codes))
	pd.complete = left == 0
	pd.minBits = minBits
	pd.maxBits = treeBits
	pd.chunkBits = treeBits
	if pd.chunkBits > maxChunkBits {
		pd.chunkBits = maxChunkBits
	}
	numChunks := 1 << pd.chunkBits
	pd.chunks = extendUint32s(pd.chunks, numChunks)
	pd.chunkMask = uint32(numChunks - 1)
	for i := range pd.chunks {
		pd.chunks[i] = 0 // Unassigned until proven otherwise
	}

	// Allocate links tables if necessary.
	if pd.chunkBits < treeBits {
		numLinks := 1 << (treeBits - pd.chunkBits)
		pd.linkMask = uint32(numLinks - 1)

		baseCode := nextCodes[pd.chunkBits+1] >> 1
		pd.links = extendSliceUint32s(pd.links, numChunks-int(baseCode))
		for linkIdx := range pd.links {
			code := internal.ReverseUint32N(uint32(baseCode)+uint32(linkIdx), uint(pd.chunkBits))
			pd.links[linkIdx] = extendUint32s(pd.links[linkIdx], numLinks)
			for i := range pd.links[linkIdx] {
				pd.links[linkIdx][i] = 0
			}
			pd.chunks[code] = uint32(linkIdx<<countBits) | (pd.chunkBits + 1)
		}
	}

	// Fill out chunks and links tables with values.
	for i := range codes {
		c := &codes[i]
		c.Val = internal.ReverseUint32N(uint32(nextCodes[c.Len]), uint(c.Len))
		nextCodes[c.Len]++

		chunk := c.Sym<<countBits | c.Len
		if c.Len <= pd.chunkBits {
			skip := 1 << c.Len
			for j := int(c.Val); j < len(pd.chunks); j += skip {
				pd.chunks[j] = chunk
			}
		} else {
			linkIdx := pd.chunks[c.Val&pd.chunkMask] >> countBits
			links := pd.links[linkIdx]
			skip := 1 << (c.Len - pd.chunkBits)
			for j := int(c.Val >> pd.chunkBits); j < len(links); j += skip {
				links[j] = chunk
			}
		}
	}

	if internal.Debug && !codes.checkPrefixes() {
		panic("overlapping prefix codes") // The canonical assignment is broken
	}
	return nil
}

// InitLengths initializes Decoder from a list of code lengths indexed by
// symbol, where a zero length marks an absent symbol.
func (pd *Decoder) InitLengths(lens []uint8, maxBits uint) error {
	return pd.Init(FromLengths(lens), maxBits)
}

// Complete reports whether the codes fill the entire code space.
// Empty trees are never complete.
func (pd *Decoder) Complete() bool { return pd.complete }

// NumSyms reports the number of symbols with an assigned code.
func (pd *Decoder) NumSyms() int { return int(pd.numSyms) }
