// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package compress is a collection of decompression engines for formats built
// on canonical prefix codes and LZ77 back-references.
//
// Each engine decodes a complete compressed buffer into a caller-provided
// output buffer. The sub-packages are:
//	flate: raw DEFLATE streams (RFC 1951)
//	zlib:  DEFLATE with the zlib wrapper and Adler-32 trailer (RFC 1950)
//	lzx:   raw LZX block streams
package compress

// Error is the interface satisfied by every error returned by the engines in
// this module. The methods report which class of failure occurred.
type Error interface {
	error
	CompressError()

	// IsInvalid reports whether the caller provided invalid arguments,
	// such as an input that is too short to hold a header.
	IsInvalid() bool

	// IsBounds reports whether a write would have exceeded the output buffer
	// or a back-reference pointed before the start of the output.
	IsBounds() bool

	// IsCorrupted reports whether the input stream is malformed or truncated.
	IsCorrupted() bool

	// IsChecksum reports whether the decoded data failed checksum validation.
	IsChecksum() bool
}

// IsInvalid reports whether err is an invalid argument error.
func IsInvalid(err error) bool {
	cerr, ok := err.(Error)
	return ok && cerr.IsInvalid()
}

// IsBounds reports whether err is an output bounds error.
func IsBounds(err error) bool {
	cerr, ok := err.(Error)
	return ok && cerr.IsBounds()
}

// IsCorrupted reports whether err is a corrupted input error.
func IsCorrupted(err error) bool {
	cerr, ok := err.(Error)
	return ok && cerr.IsCorrupted()
}

// IsChecksum reports whether err is a checksum mismatch error.
func IsChecksum(err error) bool {
	cerr, ok := err.(Error)
	return ok && cerr.IsChecksum()
}
