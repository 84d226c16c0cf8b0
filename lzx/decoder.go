// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzx

import (
	"encoding/binary"

	"github.com/dsnet/golib/errs"
	"github.com/lzkit/compress/internal/dict"
	"github.com/lzkit/compress/internal/prefix"
	"github.com/rs/zerolog"
)

// Decoder decodes LZX streams. A Decoder may be reused for multiple streams,
// but must not be used concurrently.
type Decoder struct {
	InputOffset  int64 // Number of input bytes consumed by the last call
	OutputOffset int64 // Number of output bytes produced by the last call
	NumBlocks    int   // Number of blocks decoded by the last call

	rd       prefix.Reader // Input source
	dict     dict.Window   // Output destination and history
	log      zerolog.Logger
	conf     DecoderConfig
	numSlots int       // Number of position slots for the window size
	recent   [3]uint32 // Recently used match offsets, most recent first

	mainLens [numLitSyms + numLenHeaders*50]uint8 // Main tree lengths of the previous block
	lenLens  [numLenSyms]uint8                    // Length tree lengths of the previous block

	pretree     prefix.Decoder
	mainTree    prefix.Decoder
	lenTree     prefix.Decoder
	alignedTree prefix.Decoder
}

// NewDecoder creates a new Decoder. The conf may be nil to use the defaults.
func NewDecoder(conf *DecoderConfig) *Decoder {
	zd := &Decoder{log: conf.logger()}
	if conf != nil {
		zd.conf = *conf
	}
	if zd.conf.WindowBits == 0 {
		zd.conf.WindowBits = defaultWindowBits
	}
	return zd
}

// Decompress decodes the LZX stream in src into dst and reports the number of
// bytes written. The length of dst is the expected size of the output.
//
// Blocks are decoded until MaxBlocks blocks are done, dst is full, or fewer
// than two bytes of input remain. On error, n reports how many bytes were
// produced before the failure, but the contents of dst should not be trusted.
func Decompress(dst, src []byte, conf *DecoderConfig) (int, error) {
	return NewDecoder(conf).Decompress(dst, src)
}

// Decompress is like the package-level Decompress, but reuses the internal
// state of zd across calls.
func (zd *Decoder) Decompress(dst, src []byte) (n int, err error) {
	zd.rd.Init(src, prefix.MSBFirst16)
	zd.dict.Init(dst)
	zd.recent = [3]uint32{1, 1, 1}
	zd.mainLens = [len(zd.mainLens)]uint8{}
	zd.lenLens = [len(zd.lenLens)]uint8{}
	zd.NumBlocks = 0
	defer func() {
		zd.InputOffset = zd.rd.Offset()
		zd.OutputOffset = int64(zd.dict.Len())
		n = zd.dict.Len()
		if err != nil {
			zd.log.Debug().Err(err).
				Int64("in", zd.InputOffset).
				Int64("out", zd.OutputOffset).
				Int("blocks", zd.NumBlocks).
				Msg("decode failed")
		}
	}()
	defer errs.Recover(&err)

	var ok bool
	if zd.numSlots, ok = numPositionSlots[zd.conf.WindowBits]; !ok {
		errs.Panic(errWindowBits)
	}

	for zd.conf.MaxBlocks == 0 || zd.NumBlocks < zd.conf.MaxBlocks {
		if zd.dict.Avail() == 0 || zd.rd.Remaining() < 2 {
			break
		}
		zd.readBlock()
		zd.NumBlocks++
	}

	if zd.conf.E8Translation {
		size := zd.conf.E8FileSize
		if size == 0 {
			size = int32(zd.dict.Len())
		}
		translateE8(zd.dict.Bytes(), size)
	}
	return zd.dict.Len(), nil
}

// readBlock reads the block header and the block contents.
func (zd *Decoder) readBlock() {
	bt := blockType(zd.rd.ReadBits(3))
	size := defaultBlockSize
	if zd.rd.ReadBits(1) == 0 {
		size = int(zd.rd.ReadBits(16))
	}
	zd.log.Trace().
		Stringer("type", bt).
		Int("size", size).
		Int64("offset", zd.rd.Offset()).
		Msg("block header")

	switch bt {
	case blockAligned:
		zd.readAlignedTree()
		fallthrough
	case blockVerbatim:
		zd.readTrees()
		zd.readCompressedBlock(size, bt == blockAligned)
	case blockUncompressed:
		zd.readUncompressedBlock(size)
	default:
		errs.Panic(errInvalidBlock)
	}
}

// readUncompressedBlock reads the recent offsets and raw data that follow an
// uncompressed block header.
func (zd *Decoder) readUncompressedBlock(size int) {
	// Padding is always present, even when already on a word boundary.
	zd.rd.ReadBits(uint(16 - zd.rd.BitsRead()%16))

	hdr := zd.rd.ReadAligned(12)
	for i := range zd.recent {
		zd.recent[i] = binary.LittleEndian.Uint32(hdr[4*i:])
	}
	zd.dict.WriteSlice(zd.rd.ReadAligned(size))
	if size%2 == 1 {
		zd.rd.ReadAligned(1)
	}
}

// readCompressedBlock decodes symbols until size bytes have been produced.
// Matches may extend past the end of the block.
func (zd *Decoder) readCompressedBlock(size int, aligned bool) {
	rd, wr := &zd.rd, &zd.dict
	for end := wr.Len() + size; wr.Len() < end; {
		// Read the main symbol.
		sym, ok := rd.TryReadSymbol(&zd.mainTree)
		if !ok {
			sym = rd.ReadSymbol(&zd.mainTree)
		}
		if sym < numLitSyms {
			wr.WriteLiteral(byte(sym))
			continue
		}

		// Decode the match length.
		hdr := sym - numLitSyms
		cpyLen := int(hdr % numLenHeaders)
		if cpyLen == numLenHeaders-1 {
			cpyLen += int(rd.ReadSymbol(&zd.lenTree))
		}
		cpyLen += minMatchLen

		// Decode the match offset.
		dist := zd.readOffset(hdr/numLenHeaders, aligned)
		wr.WriteCopy(int(dist), cpyLen)
	}
}

// readOffset decodes the match offset for a position slot and updates the
// recent offsets accordingly.
func (zd *Decoder) readOffset(slot uint, aligned bool) uint32 {
	r := &zd.recent
	if slot < uint(len(r)) {
		off := r[slot]
		r[slot] = r[0]
		r[0] = off
		return off
	}

	rc := positionLUT[slot]
	var extra uint
	if aligned && rc.Len >= 3 {
		extra = zd.rd.ReadBits(uint(rc.Len-3)) << 3
		extra |= zd.rd.ReadSymbol(&zd.alignedTree)
	} else {
		extra = zd.rd.ReadBits(uint(rc.Len))
	}
	off := rc.Base + uint32(extra) - 2
	r[2], r[1], r[0] = r[1], r[0], off
	return off
}
