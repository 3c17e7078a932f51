// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"errors"

	"github.com/emer/etable/etensor"
)

// Params defines how a signal is stepped through in fixed size windows
type Params struct {
	WinMs  float32 `def:"25" desc:"input window -- number of milliseconds worth of sound to filter at a time"`
	StepMs float32 `def:"5,10,12.5" desc:"input step -- number of milliseconds worth of sound that the input is stepped along to obtain the next window sample"`

	// these are calculated
	WinSamples  int `inactive:"+" desc:"number of samples to process each step"`
	StepSamples int `inactive:"+" desc:"number of samples to step input by"`
}

// Defaults initializes the window params
func (sp *Params) Defaults() {
	sp.WinMs = 25.0
	sp.StepMs = 10.0
}

// Config computes the sample counts for rate
func (sp *Params) Config(rate int) {
	sp.WinSamples = MSecToSamples(sp.WinMs, rate)
	sp.StepSamples = MSecToSamples(sp.StepMs, rate)
}

// NSteps returns the number of whole windows in a signal of n samples
func (sp *Params) NSteps(n int) int {
	if sp.StepSamples <= 0 || n < sp.WinSamples {
		return 0
	}
	return (n-sp.WinSamples)/sp.StepSamples + 1
}

// SndToWindow copies the window starting at sample start of a 1D signal into
// window. Samples before the start of the signal are zero.
func (sp *Params) SndToWindow(signal *etensor.Float32, start int, window *etensor.Float32) error {
	if signal.NumDims() != 1 {
		return errors.New("SndToWindow: signal must be one channel")
	}
	end := start + sp.WinSamples
	if end > len(signal.Values) {
		return errors.New("SndToWindow: end beyond signal length")
	}
	window.SetShape([]int{sp.WinSamples}, nil, nil)
	for i := range window.Values {
		si := start + i
		if si < 0 {
			window.Values[i] = 0
		} else {
			window.Values[i] = signal.Values[si]
		}
	}
	return nil
}

// MSecToSamples converts milliseconds to samples, in terms of sample rate
func MSecToSamples(ms float32, rate int) int {
	return int(ms * float32(rate) / 1000.0)
}

// SamplesToMSec converts samples to milliseconds, in terms of sample rate
func SamplesToMSec(samples int, rate int) float32 {
	return 1000.0 * float32(samples) / float32(rate)
}
