// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import (
	"github.com/dsnet/golib/errs"
	"github.com/lzkit/compress/internal/prefix"
)

const (
	maxNumCLenSyms = 19
	maxNumLitSyms  = 286
	maxNumDistSyms = 30
)

var (
	lenLUT   prefix.RangeCodes // RFC section 3.2.5
	distLUT  prefix.RangeCodes // RFC section 3.2.5
	litTree  prefix.Decoder    // RFC section 3.2.6
	distTree prefix.Decoder    // RFC section 3.2.6
)

var (
	// RFC section 3.2.7.
	// Prefix code lengths for code lengths alphabet.
	clenLens = [maxNumCLenSyms]uint{
		16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
	}
)

func init() {
	// These come from the RFC section 3.2.5.
	var lenBits [maxNumLitSyms - 257]uint
	for i := range lenBits[:len(lenBits)-1] {
		if i >= 4 {
			lenBits[i] = uint(i/4 - 1)
		}
	}
	lenLUT = prefix.MakeRangeCodes(3, lenBits[:len(lenBits)-1])
	lenLUT = append(lenLUT, prefix.RangeCode{Base: 258, Len: 0})

	// These come from the RFC section 3.2.5.
	var distBits [maxNumDistSyms]uint
	for i := range distBits {
		if i >= 2 {
			distBits[i] = uint(i/2 - 1)
		}
	}
	distLUT = prefix.MakeRangeCodes(1, distBits[:])

	// These come from the RFC section 3.2.6.
	var litLens [288]uint8
	for i := range litLens {
		switch {
		case i < 144:
			litLens[i] = 8
		case i < 256:
			litLens[i] = 9
		case i < 280:
			litLens[i] = 7
		default:
			litLens[i] = 8
		}
	}
	errs.Panic(litTree.InitLengths(litLens[:], maxPrefixBits))

	// The distance codes 30 and 31 are assigned but never valid.
	var distLens [32]uint8
	for i := range distLens {
		distLens[i] = 5
	}
	errs.Panic(distTree.InitLengths(distLens[:], maxPrefixBits))
}

// readPrefixCodes reads the literal and distance prefix codes according to
// RFC section 3.2.7.
func (fd *Decoder) readPrefixCodes(hl, hd *prefix.Decoder) {
	rd := &fd.rd
	numLitSyms := rd.ReadBits(5) + 257
	numDistSyms := rd.ReadBits(5) + 1
	numCLenSyms := rd.ReadBits(4) + 4
	errs.Assert(numLitSyms <= maxNumLitSyms && numDistSyms <= maxNumDistSyms, errTreeTooLarge)

	// Read the code-lengths prefix table.
	var clens [maxNumCLenSyms]uint8
	for _, sym := range clenLens[:numCLenSyms] {
		clens[sym] = uint8(rd.ReadBits(3))
	}
	fd.initTree(&fd.clenTree, clens[:])

	// Use code-lengths table to decode HLIT and HDIST prefix tables.
	var lens [maxNumLitSyms + maxNumDistSyms]uint8
	var clenLast uint8
	for sym, maxSyms := uint(0), numLitSyms+numDistSyms; sym < maxSyms; {
		clen := rd.ReadSymbol(&fd.clenTree)
		if clen < 16 {
			// Literal bit-length symbol used.
			lens[sym] = uint8(clen)
			clenLast = uint8(clen)
			sym++
			continue
		}

		// Repeater symbol used.
		var repCnt uint
		var repLen uint8
		switch clen {
		case 16:
			errs.Assert(sym > 0, errRepeatFirst)
			repLen = clenLast
			repCnt = 3 + rd.ReadBits(2)
		case 17:
			repCnt = 3 + rd.ReadBits(3)
		case 18:
			repCnt = 11 + rd.ReadBits(7)
		default:
			errs.Panic(errInvalidSymbol)
		}
		errs.Assert(sym+repCnt <= maxSyms, errRepeatOverrun)
		for symEnd := sym + repCnt; sym < symEnd; sym++ {
			lens[sym] = repLen
		}
		clenLast = repLen
	}

	litLens := lens[:numLitSyms]
	distLens := lens[numLitSyms : numLitSyms+numDistSyms]
	errs.Assert(litLens[endBlockSym] > 0, errMissingEOB)
	fd.initTree(hl, litLens)
	fd.initTree(hd, distLens)
	fd.log.Trace().
		Uint("hlit", numLitSyms).
		Uint("hdist", numDistSyms).
		Uint("hclen", numCLenSyms).
		Int("lits", hl.NumSyms()).
		Int("dists", hd.NumSyms()).
		Msg("dynamic prefix codes")
}

// initTree builds a prefix decoder from code lengths.
//
// RFC section 3.2.7 allows a degenerate tree with a single one-bit code,
// where the other one-bit code is left unused. Any other incomplete tree is
// rejected. An empty tree is accepted and fails only when used.
func (fd *Decoder) initTree(pd *prefix.Decoder, lens []uint8) {
	errs.Panic(pd.InitLengths(lens, maxPrefixBits))
	if pd.Complete() || pd.NumSyms() == 0 {
		return
	}
	if pd.NumSyms() == 1 {
		for _, n := range lens {
			if n == 1 {
				return
			}
		}
	}
	errs.Panic(errIncompleteTree)
}
