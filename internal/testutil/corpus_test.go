// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"bytes"
	"testing"
)

func TestCorpus(t *testing.T) {
	want := []string{"digits", "random", "repeats", "text", "zeros"}
	for _, n := range []int{0, 1, 1000, 1 << 16} {
		c1, c2 := NewCorpus(n), NewCorpus(n)
		names := c1.Names()
		if len(names) != len(want) {
			t.Fatalf("size %d, mismatching names: got %v, want %v", n, names, want)
		}
		for i, name := range names {
			if name != want[i] {
				t.Errorf("size %d, mismatching name: got %s, want %s", n, name, want[i])
			}
			if len(c1[name]) != n {
				t.Errorf("size %d, %s: mismatching length: got %d", n, name, len(c1[name]))
			}
			if !bytes.Equal(c1[name], c2[name]) {
				t.Errorf("size %d, %s: output is not deterministic", n, name)
			}
		}
	}

	// Text starts with a capital letter and only contains printable ASCII.
	b := Text(4096)
	if b[0] < 'A' || b[0] > 'Z' {
		t.Errorf("first byte not capitalized: %q", b[0])
	}
	for i, c := range b {
		if c != '\n' && (c < ' ' || c > '~') {
			t.Fatalf("byte %d: unexpected character %q", i, c)
		}
	}
}
