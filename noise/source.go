// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package noise provides the noise and filter primitives used by the
// articulatory synthesizer: an injected uniform noise source, a biquad
// bandpass filter, looped filtered noise and smooth simplex noise.
package noise

import "math/rand"

// NoiseSource produces independent uniform values in [0,1) on demand.
// Implementations must be cheap and non-blocking; the synthesizer pulls from
// it only while constructing its noise buffers.
type NoiseSource interface {
	Noise() float64
}

// Generator is a stateful stream of samples.
type Generator interface {
	Next() float64
}

// RandSource adapts a math/rand generator to NoiseSource
type RandSource struct {
	Rand *rand.Rand
}

// NewRandSource returns a RandSource seeded with seed
func NewRandSource(seed int64) *RandSource {
	return &RandSource{Rand: rand.New(rand.NewSource(seed))}
}

// Noise returns the next uniform value in [0,1)
func (rs *RandSource) Noise() float64 {
	return rs.Rand.Float64()
}
