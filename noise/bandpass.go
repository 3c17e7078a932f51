// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package noise

import (
	"math"
)

// BandpassFilter is a second-order IIR bandpass (constant 0 dB peak gain),
// with coefficients stored normalized by a0
type BandpassFilter struct {
	nb0 float64
	nb1 float64
	nb2 float64
	na1 float64
	na2 float64
	xn1 float64
	xn2 float64
	yn1 float64
	yn2 float64
}

// NewBandpassFilter returns a filter centered on f0 with quality q
func NewBandpassFilter(f0, q float64, sampleRate uint32) *BandpassFilter {
	bf := &BandpassFilter{}
	bf.Update(f0, q, sampleRate)
	return bf
}

// Update sets the filter coefficients based on center frequency, quality and sample rate.
// History is left untouched.
func (bf *BandpassFilter) Update(f0, q float64, sampleRate uint32) {
	w0 := 2.0 * math.Pi * f0 / float64(sampleRate)
	alpha := math.Sin(w0) / (2.0 * q)
	b0 := alpha
	b1 := 0.0
	b2 := -alpha
	a0 := 1.0 + alpha
	a1 := -2.0 * math.Cos(w0)
	a2 := 1.0 - alpha
	bf.nb0 = b0 / a0
	bf.nb1 = b1 / a0
	bf.nb2 = b2 / a0
	bf.na1 = a1 / a0
	bf.na2 = a2 / a0
}

// Reset sets the filter history to zero
func (bf *BandpassFilter) Reset() {
	bf.xn1 = 0.0
	bf.xn2 = 0.0
	bf.yn1 = 0.0
	bf.yn2 = 0.0
}

// Filter returns the next output for input x
func (bf *BandpassFilter) Filter(x float64) float64 {
	y := bf.nb0*x + bf.nb1*bf.xn1 + bf.nb2*bf.xn2 - bf.na1*bf.yn1 - bf.na2*bf.yn2

	bf.xn2 = bf.xn1
	bf.xn1 = x
	bf.yn2 = bf.yn1
	bf.yn1 = y
	return y
}
