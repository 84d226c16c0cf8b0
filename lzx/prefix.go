// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzx

import (
	"github.com/dsnet/golib/errs"
	"github.com/lzkit/compress/internal/prefix"
)

// readCodeLengths reads a pretree followed by delta-coded lengths for lens.
// On entry, lens holds the lengths from the previous block, which serve as
// the base for the deltas.
func (zd *Decoder) readCodeLengths(lens []uint8) {
	var ptLens [numPretreeSyms]uint8
	for i := range ptLens {
		ptLens[i] = uint8(zd.rd.ReadBits(4))
	}
	errs.Panic(zd.pretree.InitLengths(ptLens[:], maxPretreeBits))

	delta := func(i int, sym uint) uint8 {
		return uint8((int(lens[i]) - int(sym) + 17) % 17)
	}

	for i := 0; i < len(lens); {
		sym := zd.rd.ReadSymbol(&zd.pretree)
		if sym <= 16 {
			lens[i] = delta(i, sym)
			i++
			continue
		}

		var cnt int
		var val uint8
		switch sym {
		case 17:
			cnt = 4 + int(zd.rd.ReadBits(4))
		case 18:
			cnt = 20 + int(zd.rd.ReadBits(5))
		case 19:
			cnt = 4 + int(zd.rd.ReadBits(1))
			sym2 := zd.rd.ReadSymbol(&zd.pretree)
			errs.Assert(sym2 <= 16, errInvalidDelta)
			val = delta(i, sym2)
		default:
			errs.Panic(errInvalidPretree)
		}
		if cnt > len(lens)-i {
			zd.log.Debug().
				Uint("sym", sym).
				Int("count", cnt).
				Int("left", len(lens)-i).
				Msg("clamped code length run")
			cnt = len(lens) - i
		}
		for ; cnt > 0; cnt-- {
			lens[i] = val
			i++
		}
	}
}

// readTrees reads the main and length trees of a verbatim or aligned block.
func (zd *Decoder) readTrees() {
	lens := zd.mainLens[:numLitSyms+numLenHeaders*zd.numSlots]
	zd.readCodeLengths(lens[:numLitSyms])
	zd.readCodeLengths(lens[numLitSyms:])
	initTree(&zd.mainTree, lens, maxMainBits)

	zd.readCodeLengths(zd.lenLens[:])
	initTree(&zd.lenTree, zd.lenLens[:], maxMainBits)

	zd.log.Trace().
		Int("main_syms", zd.mainTree.NumSyms()).
		Int("len_syms", zd.lenTree.NumSyms()).
		Msg("trees")
}

// readAlignedTree reads the eight 3-bit lengths of the aligned offset tree.
func (zd *Decoder) readAlignedTree() {
	var lens [numAlignedSyms]uint8
	for i := range lens {
		lens[i] = uint8(zd.rd.ReadBits(3))
	}
	initTree(&zd.alignedTree, lens[:], maxAlignedBits)
}

// initTree builds a tree from lens. Incomplete trees are accepted, including
// empty ones, since encoders emit them for alphabets a block does not use.
func initTree(pd *prefix.Decoder, lens []uint8, maxBits uint) {
	errs.Panic(pd.InitLengths(lens, maxBits))
}
