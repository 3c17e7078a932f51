// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package noise

// FilteredNoise is white noise drawn once into a looped buffer and passed
// through a BandpassFilter. After construction it is fully deterministic.
type FilteredNoise struct {
	Buf    []float64
	Pos    int
	Filter BandpassFilter
}

// NewFilteredNoise draws loopSize values from src, maps them to [-1,1) and
// sets up the bandpass at (f0, q)
func NewFilteredNoise(f0, q float64, sampleRate uint32, loopSize int, src NoiseSource) *FilteredNoise {
	fn := &FilteredNoise{}
	fn.Buf = make([]float64, loopSize)
	for i := range fn.Buf {
		fn.Buf[i] = 2.0*src.Noise() - 1.0
	}
	fn.Filter.Update(f0, q, sampleRate)
	return fn
}

// White returns the next looped white noise value
func (fn *FilteredNoise) White() float64 {
	if fn.Pos >= len(fn.Buf) {
		fn.Pos = 0
	}
	v := fn.Buf[fn.Pos]
	fn.Pos++
	return v
}

// Next implements Generator
func (fn *FilteredNoise) Next() float64 {
	return fn.Filter.Filter(fn.White())
}
