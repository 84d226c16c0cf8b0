// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package zlib

import (
	"encoding/binary"

	"github.com/lzkit/compress/flate"
	"github.com/lzkit/compress/internal"
	"github.com/rs/zerolog"
)

// ReadHeader parses the zlib header at the start of src, including the preset
// dictionary identifier when present. The check bits are reported but not
// validated.
func ReadHeader(src []byte) (Header, error) {
	return readHeader(src, false)
}

func readHeader(src []byte, verify bool) (h Header, err error) {
	if len(src) < headerSize {
		return h, errShortInput
	}
	cmf, flg := src[0], src[1]
	h = Header{
		Method:     int(cmf & 0x0f),
		WindowSize: 1 << (uint(cmf>>4) + 8),
		HasDict:    flg&0x20 != 0,
		Level:      int(flg >> 6),
		CheckBits:  int(flg & 0x1f),
		size:       headerSize,
	}
	switch {
	case h.Method != methodDeflate:
		return h, errMethod
	case h.WindowSize > maxWindowSize:
		return h, errWindowSize
	case verify && (uint(cmf)<<8|uint(flg))%31 != 0:
		return h, errCheckBits
	}
	if h.HasDict {
		if len(src) < headerSize+dictIDSize {
			return h, errMissingDict
		}
		h.DictID = binary.BigEndian.Uint32(src[headerSize:])
		h.size += dictIDSize
	}
	return h, nil
}

// Decoder decodes zlib streams. A Decoder may be reused for multiple streams,
// but must not be used concurrently.
type Decoder struct {
	Header       Header // Header of the last stream
	InputOffset  int64  // Number of input bytes consumed by the last call
	OutputOffset int64  // Number of output bytes produced by the last call

	fd   *flate.Decoder
	log  zerolog.Logger
	conf DecoderConfig
}

// NewDecoder creates a new Decoder. The conf may be nil to use the defaults.
func NewDecoder(conf *DecoderConfig) *Decoder {
	zd := &Decoder{log: conf.logger()}
	if conf != nil {
		zd.conf = *conf
	}
	zd.fd = flate.NewDecoder(&flate.DecoderConfig{Logger: zd.conf.Logger})
	return zd
}

// Decompress decodes the zlib stream in src into dst and reports the number
// of bytes written. The length of dst bounds the size of the output.
//
// The trailing Adler-32 is verified when at least four bytes follow the
// DEFLATE data; a mismatch is reported as ErrChecksum, in which case all n
// bytes were decoded but cannot be trusted. Preset dictionaries are reported
// in the Header but never applied.
func Decompress(dst, src []byte, conf *DecoderConfig) (int, error) {
	return NewDecoder(conf).Decompress(dst, src)
}

// Decompress is like the package-level Decompress, but reuses the internal
// state of zd across calls.
func (zd *Decoder) Decompress(dst, src []byte) (n int, err error) {
	zd.InputOffset, zd.OutputOffset = 0, 0
	defer func() {
		zd.OutputOffset = int64(n)
		if err != nil {
			zd.log.Debug().Err(err).
				Int64("in", zd.InputOffset).
				Int64("out", zd.OutputOffset).
				Msg("decode failed")
		}
	}()

	zd.Header, err = readHeader(src, zd.conf.VerifyHeader)
	if err != nil {
		return 0, err
	}
	zd.InputOffset = int64(zd.Header.size)
	zd.log.Debug().
		Int("window", zd.Header.WindowSize).
		Int("level", zd.Header.Level).
		Bool("dict", zd.Header.HasDict).
		Uint32("dict_id", zd.Header.DictID).
		Msg("header")

	body := src[zd.Header.size:]
	n, err = zd.fd.Decompress(dst, body)
	zd.InputOffset += zd.fd.InputOffset
	if err != nil {
		return n, err
	}

	rest := body[zd.fd.InputOffset:]
	if len(rest) < checksumSize {
		zd.log.Debug().Int("trailing", len(rest)).Msg("checksum missing")
		return n, nil
	}
	zd.InputOffset += checksumSize
	if zd.conf.SkipChecksum || internal.GoFuzz {
		return n, nil
	}
	want := binary.BigEndian.Uint32(rest)
	got := Checksum(dst[:n])
	zd.log.Debug().Uint32("want", want).Uint32("got", got).Msg("checksum")
	if got != want {
		return n, ErrChecksum
	}
	return n, nil
}
