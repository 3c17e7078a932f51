// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package noise

import "math"

const (
	xsSeedX uint64 = 521288629 << 32
	xsSeedY uint64 = 362436069
)

// XorShift128 is a small deterministic generator (Marsaglia xorshift128+ variant
// as used by the Troschuetz generators). It is the reference NoiseSource for
// reproducible renders and regression tests.
type XorShift128 struct {
	Seed uint32 `desc:"seed the generator was last reset with"`
	x    uint64
	y    uint64
}

// NewXorShift128 returns a generator reset to seed
func NewXorShift128(seed uint32) *XorShift128 {
	xs := &XorShift128{}
	xs.Reset(seed)
	return xs
}

// Reset restarts the sequence for seed
func (xs *XorShift128) Reset(seed uint32) {
	xs.Seed = seed
	xs.x = xsSeedX + uint64(seed)
	xs.y = xsSeedY * (uint64(seed) << 32)
	xs.Uint64()
}

// Uint64 returns the next raw 64-bit value
func (xs *XorShift128) Uint64() uint64 {
	tx := xs.x
	ty := xs.y
	xs.x = ty
	tx ^= tx << 23
	tx ^= tx >> 17
	tx ^= ty ^ (ty >> 26)
	xs.y = tx
	return tx + ty
}

// Float64 returns the next value in [0,1), built from the top 52 bits
func (xs *XorShift128) Float64() float64 {
	v := (xs.Uint64() >> 12) | 0x3FF0000000000000
	return math.Float64frombits(v) - 1.0
}

// Noise implements NoiseSource
func (xs *XorShift128) Noise() float64 {
	return xs.Float64()
}
