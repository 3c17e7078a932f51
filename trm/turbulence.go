// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trm

import "github.com/chewxy/math32"

// FricativeAttackTime is the ramp time of turbulence onset and release, in seconds
const FricativeAttackTime = 0.1

// TurbulencePoint is a sustained frication noise source at a (fractional)
// tract position. Points are added and removed by the caller; the Tract only
// reads them.
type TurbulencePoint struct {
	Position  float32 `desc:"fractional segment index of the constriction"`
	Diameter  float32 `desc:"constriction diameter -- noise only occurs for narrow but open constrictions"`
	StartTime float32 `desc:"tract time the noise starts, in seconds"`
	EndTime   float32 `desc:"tract time the noise is released, NaN while active"`
}

// NewTurbulencePoint returns an active point starting at start
func NewTurbulencePoint(position, diameter, start float32) TurbulencePoint {
	return TurbulencePoint{Position: position, Diameter: diameter, StartTime: start, EndTime: math32.NaN()}
}

// Active reports whether the point has not been released
func (tp *TurbulencePoint) Active() bool {
	return math32.IsNaN(tp.EndTime)
}

// Envelope returns the attack/release envelope in [0,1] at time
func (tp *TurbulencePoint) Envelope(time float32) float32 {
	var v float32
	if tp.Active() {
		v = (time - tp.StartTime) / FricativeAttackTime
	} else {
		v = 1 - (time-tp.EndTime)/FricativeAttackTime
	}
	return clamp32(v, 0, 1)
}

// Finished reports whether a released point has fully faded out by time
func (tp *TurbulencePoint) Finished(time float32) bool {
	return !tp.Active() && time-tp.EndTime >= FricativeAttackTime
}
