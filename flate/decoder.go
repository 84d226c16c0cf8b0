// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import (
	"github.com/dsnet/golib/errs"
	"github.com/lzkit/compress/internal/dict"
	"github.com/lzkit/compress/internal/prefix"
	"github.com/rs/zerolog"
)

// Decoder decodes raw DEFLATE streams. A Decoder may be reused for multiple
// streams, but must not be used concurrently.
type Decoder struct {
	InputOffset  int64 // Number of input bytes consumed by the last call
	OutputOffset int64 // Number of output bytes produced by the last call

	rd   prefix.Reader // Input source
	dict dict.Window   // Output destination and history
	last bool          // Last block bit detected
	log  zerolog.Logger

	clenTree prefix.Decoder // Code-lengths symbol prefix decoder
	litTree  prefix.Decoder // Literal and length symbol prefix decoder
	distTree prefix.Decoder // Backward distance symbol prefix decoder
}

// NewDecoder creates a new Decoder. The conf may be nil to use the defaults.
func NewDecoder(conf *DecoderConfig) *Decoder {
	return &Decoder{log: conf.logger()}
}

// Decompress decodes the DEFLATE stream in src into dst and reports the number
// of bytes written. Decoding stops after the block marked as last; any input
// after it is left unread and InputOffset reports where it begins.
//
// On error, n reports how many bytes were produced before the failure, but the
// contents of dst should not be trusted.
func Decompress(dst, src []byte, conf *DecoderConfig) (n int, err error) {
	return NewDecoder(conf).Decompress(dst, src)
}

// Decompress is like the package-level Decompress, but reuses the internal
// state of fd across calls.
func (fd *Decoder) Decompress(dst, src []byte) (n int, err error) {
	fd.rd.Init(src, prefix.LSBFirst)
	fd.dict.Init(dst)
	fd.last = false
	defer func() {
		fd.InputOffset = fd.rd.Offset()
		fd.OutputOffset = int64(fd.dict.Len())
		n = fd.dict.Len()
		if err != nil {
			fd.log.Debug().Err(err).
				Int64("in", fd.InputOffset).
				Int64("out", fd.OutputOffset).
				Msg("decode failed")
		}
	}()
	defer errs.Recover(&err)

	for !fd.last {
		fd.readBlock()
	}
	return fd.dict.Len(), nil
}

// readBlock reads one block according to RFC section 3.2.3.
func (fd *Decoder) readBlock() {
	fd.last = fd.rd.ReadBits(1) == 1
	bt := blockType(fd.rd.ReadBits(2))
	fd.log.Trace().
		Stringer("type", bt).
		Bool("last", fd.last).
		Int64("offset", fd.rd.Offset()).
		Msg("block header")

	switch bt {
	case blockStored:
		fd.readStoredBlock()
	case blockFixed:
		fd.readCompressedBlock(&litTree, &distTree)
	case blockDynamic:
		fd.readPrefixCodes(&fd.litTree, &fd.distTree)
		fd.readCompressedBlock(&fd.litTree, &fd.distTree)
	default:
		errs.Panic(errReservedBlock)
	}
}

// readStoredBlock reads raw data according to RFC section 3.2.4.
func (fd *Decoder) readStoredBlock() {
	fd.rd.ReadPads()
	n := uint16(fd.rd.ReadBits(16))
	nn := uint16(fd.rd.ReadBits(16))
	errs.Assert(n^nn == 0xffff, errStoredSize)
	fd.dict.WriteSlice(fd.rd.ReadAligned(int(n)))
}

// readCompressedBlock reads block commands according to RFC section 3.2.5.
func (fd *Decoder) readCompressedBlock(lt, dt *prefix.Decoder) {
	rd, wr := &fd.rd, &fd.dict
	for {
		// Read the literal symbol.
		litSym, ok := rd.TryReadSymbol(lt)
		if !ok {
			litSym = rd.ReadSymbol(lt)
		}
		switch {
		case litSym < endBlockSym:
			wr.WriteLiteral(byte(litSym))
			continue
		case litSym == endBlockSym:
			return
		case litSym >= maxNumLitSyms:
			errs.Panic(errInvalidSymbol)
		}

		// Decode the copy length.
		rec := lenLUT[litSym-257]
		extra, ok := rd.TryReadBits(uint(rec.Len))
		if !ok {
			extra = rd.ReadBits(uint(rec.Len))
		}
		cpyLen := int(rec.Base) + int(extra)

		// Read the distance symbol.
		distSym, ok := rd.TryReadSymbol(dt)
		if !ok {
			distSym = rd.ReadSymbol(dt)
		}
		errs.Assert(distSym < maxNumDistSyms, errInvalidSymbol)

		// Decode the copy distance.
		dist := int(rd.ReadOffset(distSym, distLUT))

		// Perform a backwards copy according to RFC section 3.2.3.
		wr.WriteCopy(dist, cpyLen)
	}
}
