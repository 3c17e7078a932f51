// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trm

import "math"

// Constriction narrows the target tract shape around Index, as made by the
// tongue tip or lips. A Diameter of 0 is a full closure; releasing a closure
// produces a plosive Transient.
type Constriction struct {
	Index    float64 `min:"2" max:"44" desc:"fractional segment index of the center of the constriction"`
	Diameter float64 `min:"0" max:"3" desc:"target diameter at the center"`
}

// Width returns the half-width in segments of the shrink window: wide in the
// throat, narrow at the tongue tip and lips
func (cn *Constriction) Width() float64 {
	switch {
	case cn.Index < 25:
		return 10
	case cn.Index >= TipStart:
		return 5
	default:
		return 10 - 5*(cn.Index-25)/(TipStart-25)
	}
}

// Apply narrows targets in place
func (cn *Constriction) Apply(targets *[N]float64) {
	diameter := math.Max(0, cn.Diameter)
	if cn.Index < 2 || cn.Index >= N || diameter >= 3 {
		return
	}
	width := cn.Width()
	center := int(math.Round(cn.Index))
	for i := -int(math.Ceil(width)) - 1; float64(i) < width+1; i++ {
		idx := center + i
		if idx < 0 || idx >= N {
			continue
		}
		relpos := math.Abs(float64(idx)-cn.Index) - 0.5
		var shrink float64
		switch {
		case relpos <= 0:
			shrink = 0
		case relpos > width:
			shrink = 1
		default:
			shrink = 0.5 * (1 - math.Cos(math.Pi*relpos/width))
		}
		if diameter < targets[idx] {
			targets[idx] = diameter + (targets[idx]-diameter)*shrink
		}
	}
}
