// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package errors implements the error type shared by all engines.
//
// Engines decode by panicking with an Error when the input is bad and
// recovering at the public API boundary with errs.Recover.
package errors

import (
	"fmt"
	"strings"
)

const (
	// Unknown indicates that there is no classification for this error.
	Unknown = iota

	// Internal indicates that this error is due to an internal bug.
	// Users should file a issue report if this type of error is encountered.
	Internal

	// Invalid indicates that this error is due to the user misusing the API
	// and is indicative of a bug on the user's part.
	Invalid

	// Bounds indicates that the output buffer is too small or that a
	// back-reference points before the start of the output.
	Bounds

	// Corrupted indicates that the input stream is corrupted or truncated.
	Corrupted

	// Checksum indicates that the decoded data does not match the checksum
	// stored in the stream.
	Checksum
)

var codeMap = map[int]string{
	Unknown:   "unknown error",
	Internal:  "internal error",
	Invalid:   "invalid argument",
	Bounds:    "out of bounds",
	Corrupted: "corrupted input",
	Checksum:  "checksum mismatch",
}

type Error struct {
	Code int    // The error type
	Pkg  string // Name of the package where the error originated
	Msg  string // Descriptive message about the error (optional)
}

func (e Error) Error() string {
	var ss []string
	for _, s := range []string{e.Pkg, codeMap[e.Code], e.Msg} {
		if s != "" {
			ss = append(ss, s)
		}
	}
	return strings.Join(ss, ": ")
}

func (e Error) CompressError()    {}
func (e Error) IsInternal() bool  { return e.Code == Internal }
func (e Error) IsInvalid() bool   { return e.Code == Invalid }
func (e Error) IsBounds() bool    { return e.Code == Bounds }
func (e Error) IsCorrupted() bool { return e.Code == Corrupted }
func (e Error) IsChecksum() bool  { return e.Code == Checksum }

// New returns an Error with the given classification.
func New(code int, pkg, msg string) error {
	return Error{Code: code, Pkg: pkg, Msg: msg}
}

// Errorf returns an Error with a formatted message.
func Errorf(code int, pkg, format string, args ...interface{}) error {
	return Error{Code: code, Pkg: pkg, Msg: fmt.Sprintf(format, args...)}
}

func IsInternal(err error) bool  { return isCode(err, Internal) }
func IsInvalid(err error) bool   { return isCode(err, Invalid) }
func IsBounds(err error) bool    { return isCode(err, Bounds) }
func IsCorrupted(err error) bool { return isCode(err, Corrupted) }
func IsChecksum(err error) bool  { return isCode(err, Checksum) }

func isCode(err error, code int) bool {
	if cerr, ok := err.(Error); ok && cerr.Code == code {
		return true
	}
	return false
}
