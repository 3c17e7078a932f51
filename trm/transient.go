// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trm

import "math"

// Transient is an exponentially decaying pressure impulse injected at a fixed
// segment, modeling the release of a plosive. Transients are owned by the
// Tract, which drops them once they outlive LifeTime.
type Transient struct {
	Position  int     `desc:"tract segment the impulse is injected into"`
	StartTime float32 `desc:"tract time at creation, in seconds"`
	LifeTime  float32 `desc:"seconds until removal"`
	Strength  float64 `desc:"initial amplitude"`
	Exponent  float64 `desc:"decay rate: amplitude halves every 1/Exponent seconds"`
}

// Amplitude returns the impulse amplitude after age seconds
func (tr *Transient) Amplitude(age float32) float64 {
	return tr.Strength * math.Pow(2, -tr.Exponent*float64(age))
}

// Plosive release defaults
const (
	TransientLifeTime = 0.2
	TransientStrength = 0.3
	TransientExponent = 200.0
)
