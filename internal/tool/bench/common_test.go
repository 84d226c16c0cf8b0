// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetName(t *testing.T) {
	assert.Equal(t, "text:6:1e6", getName("text", 6, 1e6))
	assert.Equal(t, "twain.txt:1:1e4", getName("/tmp/data/twain.txt", 1, 1e4))
}

func TestLoadInput(t *testing.T) {
	for _, name := range []string{"zeros", "random", "repeats", "digits", "text"} {
		b, err := LoadInput(name, 12345)
		assert.NoError(t, err, name)
		assert.Len(t, b, 12345, name)
	}

	_, err := LoadInput("does-not-exist.bin", 100)
	assert.Error(t, err)
}

func TestDecoderSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping benchmark suite in short mode")
	}
	ref := Encoders[FormatZlib]["std"]
	decs := []string{"std", "ds"}
	results, names := BenchmarkDecoderSuite(FormatZlib, decs, []string{"text"}, []int{6}, []int{1e4}, ref, nil)
	assert.Equal(t, []string{"text:6:1e4"}, names)
	assert.Len(t, results, 1)
	for i, r := range results[0] {
		assert.Greater(t, r.R, 0.0, decs[i])
	}
	assert.Equal(t, 1.0, results[0][0].D)
}
