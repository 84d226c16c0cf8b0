// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"bytes"
	"sort"
	"strconv"
)

// Corpus is a set of named test inputs with different statistical properties.
// Each input is generated deterministically and is exactly n bytes long.
type Corpus map[string][]byte

// NewCorpus generates the standard set of test inputs of size n.
func NewCorpus(n int) Corpus {
	return Corpus{
		"zeros":   make([]byte, n),
		"random":  NewRand(0).Bytes(n),
		"repeats": Repeats(n),
		"digits":  Digits(n),
		"text":    Text(n),
	}
}

// Names returns the names of the inputs in sorted order.
func (c Corpus) Names() []string {
	var ss []string
	for s := range c {
		ss = append(ss, s)
	}
	sort.Strings(ss)
	return ss
}

// Repeats generates data that heavily favors LZ77 based compression since a
// large bulk of it is a copy from some distance ago. Since the source data is
// mostly random, prefix encoding does not benefit as much.
func Repeats(n int) []byte {
	var b []byte
	r := NewRand(0)

	// randLen returns a length in 4..512 with a bias towards shorter lengths.
	randLen := func() int {
		nb := 2 + uint(r.Intn(7))
		return 1<<nb + r.Intn(1<<nb)
	}

	// randDist returns a distance in 1..32768 that is within the output.
	randDist := func() (d int) {
		for d == 0 || d > len(b) {
			nb := uint(r.Intn(15))
			d = 1<<nb + r.Intn(1<<nb)
		}
		return d
	}

	writeRand := func(l int) {
		b = append(b, r.Bytes(l)...)
	}

	writeCopy := func(d, l int) {
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}

	writeRand(512)
	for len(b) < n {
		switch p := r.Intn(10); {
		case p < 1:
			// Generate random new data.
			writeRand(randLen())
		case p < 9:
			// Write a long distance copy.
			d, l := randDist(), randLen()
			for d <= l {
				d, l = randDist(), randLen()
			}
			writeCopy(d, l)
		default:
			// Write a possibly short distance copy.
			writeCopy(randDist(), randLen())
		}
	}
	return b[:n]
}

// Digits generates the decimal digits of a pseudo-random sequence, which has
// a small alphabet with little repetition.
func Digits(n int) []byte {
	var b []byte
	r := NewRand(1)
	for len(b) < n {
		b = strconv.AppendInt(b, int64(r.Int()), 10)
	}
	return b[:n]
}

// Text generates English-like text from a fixed vocabulary.
func Text(n int) []byte {
	words := bytes.Fields([]byte(`
		the of and to in is was that for it with as his on be at by had he not
		are but from or have an they which one you were her all she there would
		their we him been has when who will more no if out so said what up its
		about into than them can only other new some could time these two may
		then do first any my now such like our over man me even most made after
		also did many before must through back years where much your way well
		down should because each just those people how too little state good
		very make world still own see men work long get here between both life
		being under never day same another know while last might us great old
		year off come since against go came right used take three river house
	`))
	var b []byte
	r := NewRand(2)
	for len(b) < n {
		w := words[r.Intn(len(words))]
		i := len(b)
		b = append(b, w...)
		if i == 0 || b[i-1] == '\n' {
			b[i] -= 'a' - 'A'
		}
		switch r.Intn(16) {
		case 0:
			b = append(b, ".\n"...)
		case 1, 2:
			b = append(b, ", "...)
		default:
			b = append(b, ' ')
		}
	}
	return b[:n]
}
