// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package dict

import (
	"testing"

	"github.com/dsnet/golib/errs"
	"github.com/lzkit/compress/internal/errors"
	"github.com/stretchr/testify/assert"
)

type op struct {
	lit  string // Literal bytes to write
	dist int    // Distance of a back-reference
	n    int    // Length of a back-reference
}

func run(w *Window, ops []op) (err error) {
	defer errs.Recover(&err)
	for _, o := range ops {
		if o.lit != "" {
			for i := 0; i < len(o.lit); i++ {
				w.WriteLiteral(o.lit[i])
			}
			continue
		}
		w.WriteCopy(o.dist, o.n)
	}
	return nil
}

func TestWindow(t *testing.T) {
	vectors := []struct {
		desc   string
		size   int
		ops    []op
		output string
		err    error
	}{{
		desc:   "literals only",
		size:   5,
		ops:    []op{{lit: "hello"}},
		output: "hello",
	}, {
		desc:   "non-overlapping copy",
		size:   8,
		ops:    []op{{lit: "abcd"}, {dist: 4, n: 4}},
		output: "abcdabcd",
	}, {
		desc:   "overlapping run",
		size:   6,
		ops:    []op{{lit: "A"}, {dist: 1, n: 5}},
		output: "AAAAAA",
	}, {
		desc:   "overlapping pattern",
		size:   7,
		ops:    []op{{lit: "ab"}, {dist: 2, n: 5}},
		output: "abababa",
	}, {
		desc:   "distance past start",
		size:   10,
		ops:    []op{{lit: "ab"}, {dist: 3, n: 2}},
		output: "ab",
		err:    ErrDistance,
	}, {
		desc:   "zero distance",
		size:   10,
		ops:    []op{{lit: "ab"}, {dist: 0, n: 2}},
		output: "ab",
		err:    ErrDistance,
	}, {
		desc:   "copy past end",
		size:   4,
		ops:    []op{{lit: "ab"}, {dist: 1, n: 3}},
		output: "ab",
		err:    ErrShortBuffer,
	}, {
		desc:   "literal past end",
		size:   2,
		ops:    []op{{lit: "abc"}},
		output: "ab",
		err:    ErrShortBuffer,
	}}

	for i, v := range vectors {
		var w Window
		w.Init(make([]byte, v.size))
		err := run(&w, v.ops)
		assert.Equal(t, v.err, err, "test %d, %s", i, v.desc)
		assert.Equal(t, v.output, string(w.Bytes()), "test %d, %s", i, v.desc)
		if err != nil {
			assert.True(t, errors.IsBounds(err), "test %d, %s", i, v.desc)
		}
	}
}

func TestWriteSlice(t *testing.T) {
	var w Window
	w.Init(make([]byte, 4))
	err := func() (err error) {
		defer errs.Recover(&err)
		w.WriteSlice([]byte("abc"))
		assert.Equal(t, 1, w.Avail())
		w.WriteSlice([]byte("de"))
		return nil
	}()
	assert.Equal(t, ErrShortBuffer, err)
	assert.Equal(t, "abc", string(w.Bytes()))
	assert.Equal(t, 3, w.Len())
}
