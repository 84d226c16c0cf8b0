// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package dict implements the output window that LZ77 decoders write into.
//
// The window is the caller's output buffer itself, so back-references can
// reach any byte produced so far. Every write is bounds-checked and a failed
// check panics through errs.Panic with a Bounds error.
package dict

import (
	"github.com/dsnet/golib/errs"
	"github.com/lzkit/compress/internal/errors"
)

var (
	// ErrShortBuffer is raised when a write would exceed the window capacity.
	ErrShortBuffer error = errors.Error{Code: errors.Bounds, Pkg: "compress", Msg: "output buffer too small"}

	// ErrDistance is raised when a back-reference points before the start of
	// the output or has a zero distance.
	ErrDistance error = errors.Error{Code: errors.Bounds, Pkg: "compress", Msg: "back-reference distance out of range"}
)

// Window is a fixed-capacity output buffer written sequentially from the start.
type Window struct {
	buf []byte // Caller-owned output buffer
	pos int    // Number of bytes written
}

// Init resets the window to write into buf starting at offset zero.
func (w *Window) Init(buf []byte) {
	*w = Window{buf: buf}
}

// Len reports the number of bytes written.
func (w *Window) Len() int { return w.pos }

// Avail reports the number of bytes that can still be written.
func (w *Window) Avail() int { return len(w.buf) - w.pos }

// Bytes returns the bytes written so far.
func (w *Window) Bytes() []byte { return w.buf[:w.pos] }

// WriteLiteral appends a single byte.
func (w *Window) WriteLiteral(c byte) {
	if w.pos >= len(w.buf) {
		errs.Panic(ErrShortBuffer)
	}
	w.buf[w.pos] = c
	w.pos++
}

// WriteSlice appends raw bytes.
func (w *Window) WriteSlice(b []byte) {
	if len(b) > len(w.buf)-w.pos {
		errs.Panic(ErrShortBuffer)
	}
	w.pos += copy(w.buf[w.pos:], b)
}

// WriteCopy appends length bytes copied from dist bytes back in the output.
// Overlapping copies, where dist < length, replicate the most recent bytes.
//
// This is the single primitive through which back-references are resolved.
// A dist outside 1..Len() or a copy that would exceed the capacity fails
// without writing anything.
func (w *Window) WriteCopy(dist, length int) {
	if dist <= 0 || dist > w.pos {
		errs.Panic(ErrDistance)
	}
	if length > len(w.buf)-w.pos {
		errs.Panic(ErrShortBuffer)
	}

	src := w.pos - dist
	if dist >= length {
		w.pos += copy(w.buf[w.pos:w.pos+length], w.buf[src:src+length])
		return
	}
	for end := w.pos + length; w.pos < end; {
		w.buf[w.pos] = w.buf[src]
		w.pos++
		src++
	}
}
