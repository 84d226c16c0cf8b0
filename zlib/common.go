// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package zlib implements a decoder for the zlib compressed data format,
// described in RFC 1950.
//
// A zlib stream is a two byte header, an optional preset dictionary
// identifier, a raw DEFLATE stream, and a big-endian Adler-32 checksum of the
// uncompressed data.
package zlib

import (
	"github.com/lzkit/compress/internal/errors"
	"github.com/rs/zerolog"
)

const (
	methodDeflate = 8     // The only compression method defined
	maxWindowSize = 32768 // Largest window allowed by RFC 1950
	headerSize    = 2
	dictIDSize    = 4
	checksumSize  = 4
)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Errorf(c, "zlib", f, a...)
}

var (
	// ErrChecksum reports that the decoded data does not match the Adler-32
	// checksum stored in the stream.
	ErrChecksum = errorf(errors.Checksum, "Adler-32 mismatch")

	errShortInput  = errorf(errors.Invalid, "input shorter than the zlib header")
	errMethod      = errorf(errors.Corrupted, "unsupported compression method")
	errWindowSize  = errorf(errors.Corrupted, "window size exceeds 32768")
	errCheckBits   = errorf(errors.Corrupted, "header check bits mismatch")
	errMissingDict = errorf(errors.Corrupted, "truncated preset dictionary identifier")
)

// Header is the parsed form of the zlib stream header.
type Header struct {
	Method     int    // Compression method; always 8 in a valid stream
	WindowSize int    // LZ77 window size in bytes
	HasDict    bool   // Whether a preset dictionary identifier follows
	DictID     uint32 // Adler-32 of the preset dictionary, if HasDict is set
	Level      int    // Compression level hint in 0..3
	CheckBits  int    // FCHECK field

	size int // Number of bytes the header occupies in the stream
}

// DecoderConfig configures decompression. The zero value and a nil pointer both
// select the defaults.
type DecoderConfig struct {
	// VerifyHeader enables validation of the header check bits.
	VerifyHeader bool

	// SkipChecksum disables comparison of the trailing Adler-32.
	SkipChecksum bool

	// Logger receives header and checksum debug events.
	// A nil Logger disables logging.
	Logger *zerolog.Logger

	_ struct{} // Blank field to prevent unkeyed struct literals
}

func (c *DecoderConfig) logger() zerolog.Logger {
	if c == nil || c.Logger == nil {
		return zerolog.Nop()
	}
	return c.Logger.With().Str("pkg", "zlib").Logger()
}
