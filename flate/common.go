// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package flate implements a decoder for the DEFLATE compressed data format,
// described in RFC 1951.
//
// The decoder operates on complete in-memory buffers: the compressed input
// and a caller-allocated output buffer whose length bounds the output size.
package flate

import (
	"github.com/lzkit/compress/internal/errors"
	"github.com/rs/zerolog"
)

const (
	maxPrefixBits = 15  // Longest code length in DEFLATE
	endBlockSym   = 256 // End-of-block symbol
)

// Block types, according to RFC section 3.2.3.
type blockType uint

const (
	blockStored  blockType = 0
	blockFixed   blockType = 1
	blockDynamic blockType = 2
	blockInvalid blockType = 3 // Reserved
)

func (bt blockType) String() string {
	switch bt {
	case blockStored:
		return "stored"
	case blockFixed:
		return "fixed"
	case blockDynamic:
		return "dynamic"
	default:
		return "reserved"
	}
}

func errorf(c int, f string, a ...interface{}) error {
	return errors.Errorf(c, "flate", f, a...)
}

var (
	errReservedBlock  = errorf(errors.Corrupted, "reserved block type")
	errStoredSize     = errorf(errors.Corrupted, "stored block length does not match its complement")
	errInvalidSymbol  = errorf(errors.Corrupted, "invalid literal/length or distance symbol")
	errTreeTooLarge   = errorf(errors.Corrupted, "too many literal/length or distance codes")
	errRepeatFirst    = errorf(errors.Corrupted, "repeat of previous code length without a previous length")
	errRepeatOverrun  = errorf(errors.Corrupted, "code length repeat exceeds the number of codes")
	errMissingEOB     = errorf(errors.Corrupted, "end-of-block symbol has no code")
	errIncompleteTree = errorf(errors.Corrupted, "incomplete prefix code")
)

// DecoderConfig configures a Decoder. The zero value and a nil pointer both
// select the defaults.
type DecoderConfig struct {
	// Logger receives block-level debug events. A nil Logger disables logging.
	Logger *zerolog.Logger

	_ struct{} // Blank field to prevent unkeyed struct literals
}

func (c *DecoderConfig) logger() zerolog.Logger {
	if c == nil || c.Logger == nil {
		return zerolog.Nop()
	}
	return c.Logger.With().Str("pkg", "flate").Logger()
}
