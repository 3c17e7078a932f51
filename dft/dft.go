// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dft

import (
	"math"

	"github.com/emer/etable/etensor"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Params holds the settings and buffers for the power spectrum of a window
type Params struct {
	CompLogPow bool    `def:"true" desc:"compute the log of the power and save that to a separate table -- generaly more useful for visualization of power than raw power values"`
	LogMin     float32 `viewif:"CompLogPow" def:"-100" desc:"minimum value a log can produce -- puts a lower limit on log output"`
	LogOffSet  float32 `viewif:"CompLogPow" def:"0" desc:"add this amount when taking the log of the dft power -- e.g., 1.0 makes everything positive -- affects the relative contrast of the outputs"`
	PrevSmooth float32 `def:"0" desc:"how much of the previous step's power value to include in this one -- smooths out the power spectrum which can be artificially bumpy due to discrete window samples"`
	CurSmooth  float32 `inactive:"+" desc:" how much of current power to include"`
	Hann       bool    `def:"true" desc:"apply a Hann window before the transform"`

	SampleRate int          `inactive:"+" desc:"sample rate of the input"`
	Fft        []complex128 `inactive:"+" desc:" discrete fourier transform (fft) output complex representation"`
	fft        *fourier.CmplxFFT
	win        []float64
}

// Initialize sets the defaults and allocates for windows of winSamples
func (dft *Params) Initialize(winSamples int, sampleRate int) {
	dft.PrevSmooth = 0
	dft.CurSmooth = 1.0 - dft.PrevSmooth
	dft.CompLogPow = true
	dft.LogOffSet = 0
	dft.LogMin = -100
	dft.Hann = true
	dft.SampleRate = sampleRate
	dft.Fft = make([]complex128, winSamples)
	dft.fft = fourier.NewCmplxFFT(winSamples)
	dft.win = make([]float64, winSamples)
	for i := range dft.win {
		dft.win[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(winSamples))
	}
}

// NBins returns the number of power values for a window
func (dft *Params) NBins() int {
	return len(dft.Fft)/2 + 1
}

// BinFreq returns the center frequency of bin k in Hz
func (dft *Params) BinFreq(k int) float64 {
	return float64(k) * float64(dft.SampleRate) / float64(len(dft.Fft))
}

// Filter computes the power (and log power) of windowIn. If firstStep is
// false, the previous power is blended in by PrevSmooth.
func (dft *Params) Filter(windowIn *etensor.Float32, firstStep bool, power *etensor.Float32, logPower *etensor.Float32) {
	dft.Input(windowIn)
	dft.Power(firstStep, power, logPower)
}

// FftReal copies the (windowed) input into the complex buffer
func (dft *Params) FftReal(in *etensor.Float32) {
	for i := 0; i < len(dft.Fft); i++ {
		v := in.FloatVal1D(i)
		if dft.Hann {
			v *= dft.win[i]
		}
		dft.Fft[i] = complex(v, 0)
	}
}

// Input applies dft (fft) to input
func (dft *Params) Input(windowIn *etensor.Float32) {
	dft.FftReal(windowIn)
	dft.Fft = dft.fft.Coefficients(dft.Fft, dft.Fft)
}

// Power computes the power spectrum of the last Input into power, and the
// log power into logPower if CompLogPow
func (dft *Params) Power(firstStep bool, power *etensor.Float32, logPower *etensor.Float32) {
	nb := dft.NBins()
	if power.Len() != nb {
		power.SetShape([]int{nb}, nil, nil)
	}
	if dft.CompLogPow && logPower.Len() != nb {
		logPower.SetShape([]int{nb}, nil, nil)
	}
	for k := 0; k < nb; k++ {
		rl := real(dft.Fft[k])
		im := imag(dft.Fft[k])
		powr := rl*rl + im*im
		if !firstStep {
			powr = float64(dft.PrevSmooth)*power.FloatVal1D(k) + float64(dft.CurSmooth)*powr
		}
		power.SetFloat1D(k, powr)

		if dft.CompLogPow {
			var logp float64
			powr += float64(dft.LogOffSet)
			if powr == 0 {
				logp = float64(dft.LogMin)
			} else {
				logp = math.Max(float64(dft.LogMin), math.Log(powr))
			}
			logPower.SetFloat1D(k, logp)
		}
	}
}

// PeakFreq returns the frequency of the strongest bin, skipping DC
func (dft *Params) PeakFreq(power *etensor.Float32) float64 {
	best := 1
	for k := 2; k < power.Len(); k++ {
		if power.Values[k] > power.Values[best] {
			best = k
		}
	}
	return dft.BinFreq(best)
}

// Centroid returns the power weighted mean frequency
func (dft *Params) Centroid(power *etensor.Float32) float64 {
	var sum, wsum float64
	for k := 0; k < power.Len(); k++ {
		p := float64(power.Values[k])
		sum += p
		wsum += p * dft.BinFreq(k)
	}
	if sum == 0 {
		return 0
	}
	return wsum / sum
}
