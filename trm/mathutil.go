// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trm

import "math"

// sin32 is math.Sin rounded to float32
func sin32(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// lerp32 returns i0 + v*(i1-i0)
func lerp32(i0, i1, v float32) float32 {
	return i0 + v*(i1-i0)
}

// lerp returns i0 + v*(i1-i0)
func lerp(i0, i1, v float64) float64 {
	return i0 + v*(i1-i0)
}

// moveTowards steps current toward target by at most amountUp when rising
// and amountDown when falling, never overshooting
func moveTowards(current, target, amountUp, amountDown float64) float64 {
	if current < target {
		return math.Min(target, current+amountUp)
	}
	return math.Max(target, current-amountDown)
}

func sqr(x float64) float64 {
	return x * x
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
