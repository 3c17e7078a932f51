// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trm

import (
	"math"
)

// Shaper constants
const (
	GridOffset    = 1.7
	MovementSpeed = 15.0

	// nose[0] must be below this for a closure release to produce a transient
	VelumPlosiveMax = 0.223
)

// TractShaper turns articulator controls (tongue, constrictions, velum) into
// target diameters and moves the Tract toward them at a bounded rate.
// It detects closures and fires a Transient when one is released.
type TractShaper struct {
	Tract             Tract          `view:"inline" desc:"the waveguide being shaped"`
	TongueIndex       float64        `min:"0" max:"44" desc:"position of the tongue body along the tract"`
	TongueDiameter    float64        `min:"0" max:"3" desc:"tongue height -- larger is a more open tract"`
	Constrictions     []Constriction `desc:"additional narrowings applied on top of the tongue shape"`
	Velum             Velum          `desc:"velum state"`
	VelumOpenTarget   float32        `def:"0.4" desc:"velum diameter when open"`
	VelumClosedTarget float32        `def:"0.01" desc:"velum diameter when closed"`
	VelumTarget       float32        `inactive:"+" desc:"current velum diameter target"`
	TargetDiameter    [N]float64     `view:"-" desc:"target diameter per segment"`

	lastObstruction int
}

// Defaults sets the articulator defaults
func (ts *TractShaper) Defaults() {
	ts.VelumOpenTarget = 0.4
	ts.VelumClosedTarget = 0.01
	ts.VelumTarget = 0
	ts.TongueIndex = 12.9
	ts.TongueDiameter = 2.43
	ts.Constrictions = nil
	ts.lastObstruction = -1
}

// Init shapes the nose with an open velum so the one-time nasal reflections
// see an open passage, then applies velum and shapes the main tract.
// The Tract must already be initialized.
func (ts *TractShaper) Init(velum Velum) {
	ts.Defaults()
	ts.shapeNose(VelumOpen)
	ts.Tract.CalculateNoseReflections()
	ts.shapeNose(velum)
	ts.shapeMainTract()
}

func (ts *TractShaper) shapeMainTract() {
	ts.CalcTargets()
	ts.Tract.Diameter = ts.TargetDiameter
}

func (ts *TractShaper) shapeNose(velum Velum) {
	ts.SetVelum(velum)
	for i := 0; i < NoseLen; i++ {
		var diameter float64
		d := float64(i) * 2 / NoseLen
		switch {
		case i == 0:
			diameter = float64(ts.VelumTarget)
		case d < 1:
			diameter = 0.4 + 1.6*d
		default:
			diameter = 0.5 + 1.5*(2-d)
		}
		ts.Tract.NoseDiameter[i] = math.Min(diameter, 1.9)
	}
}

// SetVelum sets the velum state and its diameter target
func (ts *TractShaper) SetVelum(velum Velum) {
	ts.Velum = velum
	if velum == VelumOpen {
		ts.VelumTarget = ts.VelumOpenTarget
	} else {
		ts.VelumTarget = ts.VelumClosedTarget
	}
}

// RestDiameter returns the diameter of segment i given only the tongue
func (ts *TractShaper) RestDiameter(i int) float64 {
	if i < 7 {
		return 0.6
	}
	if i < BladeStart {
		return 1.1
	}
	if i >= LipStart {
		return 1.5
	}

	t := 1.1 * math.Pi * (ts.TongueIndex - float64(i)) / (TipStart - BladeStart)
	fixedTongueDiameter := 2 + (ts.TongueDiameter-2)/1.5
	curve := (1.5 - fixedTongueDiameter + GridOffset) * math.Cos(t)

	// smooth the ends of the blade region
	if i == BladeStart-2 || i == LipStart-1 {
		curve *= 0.8
	}
	if i == BladeStart || i == LipStart-2 {
		curve *= 0.94
	}
	return 1.5 - curve
}

// CalcTargets recomputes TargetDiameter from the tongue and constrictions
func (ts *TractShaper) CalcTargets() {
	for i := 0; i < N; i++ {
		ts.TargetDiameter[i] = ts.RestDiameter(i)
	}
	for ci := range ts.Constrictions {
		ts.Constrictions[ci].Apply(&ts.TargetDiameter)
	}
}

// slowReturn is the relative opening speed of segment i: throat movements
// are slower than tongue tip movements
func slowReturn(i int) float64 {
	switch {
	case i < NoseStart:
		return 0.6
	case i >= TipStart:
		return 1.0
	default:
		return 0.6 + 0.4*float64(i-NoseStart)/(TipStart-NoseStart)
	}
}

// AdjustTractShape is called once per block of deltaTime seconds
func (ts *TractShaper) AdjustTractShape(deltaTime float64) {
	ts.CalcTargets()
	amount := deltaTime * MovementSpeed
	newLastObstruction := -1
	for i := 0; i < N; i++ {
		diameter := ts.Tract.Diameter[i]
		if diameter <= 0 {
			newLastObstruction = i
		}
		ts.Tract.Diameter[i] = moveTowards(diameter, ts.TargetDiameter[i], slowReturn(i)*amount, 2*amount)
	}

	if ts.lastObstruction >= 0 && newLastObstruction < 0 && ts.Tract.NoseDiameter[0] < VelumPlosiveMax {
		ts.Tract.AddTransient(ts.lastObstruction)
	}
	ts.lastObstruction = newLastObstruction

	ts.Tract.NoseDiameter[0] = moveTowards(ts.Tract.NoseDiameter[0], float64(ts.VelumTarget), amount*0.25, amount*0.1)
}

// LastObstruction returns the highest closed segment seen in the last
// adjustment, or -1
func (ts *TractShaper) LastObstruction() int {
	return ts.lastObstruction
}
