// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trm

import (
	"github.com/chewxy/math32"
	"github.com/emer/pinktrombone/noise"
)

// AspirationLoop is the number of white noise samples looped by the
// aspiration and frication noise generators
const AspirationLoop = 0x8000

// LFWave holds the shape of one period of the Liljencrants-Fant glottal flow
// derivative, normalized to period 1 and excitation strength 1
type LFWave struct {
	Alpha   float32 `desc:"growth rate of the open phase"`
	E0      float32 `desc:"open phase amplitude"`
	Epsilon float32 `desc:"return phase decay rate"`
	Shift   float32 `desc:"return phase offset so the period ends at 0"`
	Delta   float32 `desc:"return phase normalizer"`
	Te      float32 `desc:"time of the excitation (end of open phase)"`
	Omega   float32 `desc:"open phase angular frequency"`
}

// Setup solves the LF shape for the given tenseness
func (lf *LFWave) Setup(tenseness float32) {
	rd := clamp32(3*(1-tenseness), 0.5, 2.7)

	// normalized to time = 1, Ee = 1
	ra := -0.01 + 0.048*rd
	rk := 0.224 + 0.118*rd
	rg := (rk / 4) * (0.5 + 1.2*rk) / (0.11*rd - ra*(0.5+1.2*rk))

	ta := ra
	tp := 1 / (2 * rg)
	te := tp + tp*rk

	epsilon := 1 / ta
	shift := math32.Exp(-epsilon * (1 - te))
	delta := 1 - shift

	rhsIntegral := ((1/epsilon)*(shift-1) + (1-te)*shift) / delta
	totalLowerIntegral := rhsIntegral - (te-tp)/2
	totalUpperIntegral := -totalLowerIntegral

	omega := math32.Pi / tp
	s := sin32(omega * te)

	// E0*e^(alpha*Te)*s = -1 meets the return phase at -1, and
	// E0*e^(alpha*Tp/2)*Tp*2/pi approximates the upper integral;
	// with y = e^(alpha*(Tp/2-Te)) the ratio gives y*Tp*2/(pi*s) = -totalUpperIntegral
	y := -math32.Pi * s * totalUpperIntegral / (tp * 2)
	z := math32.Log(y)
	alpha := z / (tp/2 - te)
	e0 := -1 / (s * math32.Exp(alpha*te))

	lf.Alpha = alpha
	lf.E0 = e0
	lf.Epsilon = epsilon
	lf.Shift = shift
	lf.Delta = delta
	lf.Te = te
	lf.Omega = omega
}

// Value returns the normalized waveform at phase t in [0,1]
func (lf *LFWave) Value(t float32) float32 {
	if t > lf.Te {
		return (-math32.Exp(-lf.Epsilon*(t-lf.Te)) + lf.Shift) / lf.Delta
	}
	return lf.E0 * math32.Exp(lf.Alpha*t) * sin32(lf.Omega*t)
}

// Glottis generates the glottal source: LF pulses plus aspiration noise.
// Frequency and tenseness are double buffered (old/new) and interpolated by
// the block fraction lambda when a new period starts.
type Glottis struct {
	AlwaysVoice      bool    `desc:"keep voicing without an explicit touch"`
	AutoWobble       bool    `desc:"add slow random pitch wander to the vibrato"`
	Touched          bool    `desc:"voicing is being actively articulated -- suppresses the onset attack boost"`
	TargetTenseness  float32 `min:"0" max:"1" desc:"vocal fold tenseness 0 = breathy, 1 = tense"`
	TargetFrequency  float32 `min:"10" desc:"pitch target in Hz"`
	VibratoAmount    float32 `min:"0" desc:"vibrato depth as a fraction of frequency"`
	VibratoFrequency float32 `min:"0" desc:"vibrato rate in Hz"`
	Intensity        float32 `min:"0" max:"1" desc:"voicing intensity, ramps toward 1 when voiced"`
	Loudness         float32 `min:"0" max:"1" desc:"recomputed from tenseness at each period"`

	SampleRate  uint32 `inactive:"+" desc:"sample rate in Hz"`
	SampleCount uint64 `inactive:"+" desc:"number of samples generated"`
	Wave        LFWave `view:"inline" desc:"shape of the current period"`

	smoothFrequency float32
	timeInWaveform  float32
	oldTenseness    float32
	newTenseness    float32
	oldFrequency    float32
	newFrequency    float32
	waveformLength  float32

	aspiration noise.Generator
	smooth     *noise.Simplex
}

// Defaults sets the voice control defaults
func (gl *Glottis) Defaults() {
	gl.AlwaysVoice = true
	gl.AutoWobble = true
	gl.Touched = false
	gl.TargetTenseness = 0.6
	gl.TargetFrequency = 140
	gl.VibratoAmount = 0.005
	gl.VibratoFrequency = 6
	gl.Intensity = 0
	gl.Loudness = 1
}

// Init sets defaults, builds the aspiration noise from src and computes the
// first period. Panics if sampleRate is 0.
func (gl *Glottis) Init(sampleRate uint32, src noise.NoiseSource, seed uint16) {
	if sampleRate == 0 {
		panic("trm: Glottis sample rate must be > 0")
	}
	gl.Defaults()
	gl.SampleRate = sampleRate
	gl.SampleCount = 0
	gl.smoothFrequency = 140
	gl.timeInWaveform = 0
	gl.oldTenseness = 0.6
	gl.newTenseness = 0.6
	gl.oldFrequency = 140
	gl.newFrequency = 140
	gl.waveformLength = 0
	gl.smooth = noise.NewSimplex(seed)
	gl.aspiration = noise.NewFilteredNoise(500, 0.5, sampleRate, AspirationLoop, src)
	gl.setupWaveform(0)
}

// SetMusicalNote sets TargetFrequency to semitone relative to A4 (440 Hz)
func (gl *Glottis) SetMusicalNote(semitone float32) {
	const a4 = 440.0
	gl.TargetFrequency = a4 * math32.Pow(2, semitone*(1.0/12.0))
}

// Time returns the elapsed time in seconds
func (gl *Glottis) Time() float32 {
	return float32(gl.SampleCount) / float32(gl.SampleRate)
}

// WaveformLength returns the duration of the current period in seconds
func (gl *Glottis) WaveformLength() float32 {
	return gl.waveformLength
}

// Step returns the next glottal source sample
func (gl *Glottis) Step(lambda float32) float32 {
	time := gl.Time()

	if gl.timeInWaveform > gl.waveformLength {
		gl.timeInWaveform -= gl.waveformLength
		gl.setupWaveform(lambda)
	}

	out := gl.Wave.Value(gl.timeInWaveform/gl.waveformLength) * gl.Intensity * gl.Loudness
	aspNoise := float32(gl.aspiration.Next())
	asp := gl.Intensity * (1 - math32.Sqrt(gl.TargetTenseness)) * gl.NoiseModulator() * aspNoise
	asp *= 0.2 + 0.02*gl.smooth.Simplex1(time*1.99)

	gl.SampleCount++
	gl.timeInWaveform += 1 / float32(gl.SampleRate)
	return out + asp
}

// NoiseModulator shapes aspiration and frication by the glottal phase, peaking
// around closure when voiced
func (gl *Glottis) NoiseModulator() float32 {
	voiced := 0.1 + 0.2*math32.Max(0, sin32(math32.Pi*2*gl.timeInWaveform/gl.waveformLength))
	return gl.TargetTenseness*gl.Intensity*voiced + (1-gl.TargetTenseness*gl.Intensity)*0.3
}

// AdjustParameters is called once per block of deltaTime seconds
func (gl *Glottis) AdjustParameters(deltaTime float32) {
	delta := deltaTime * float32(gl.SampleRate) / 512
	oldTime := gl.Time()
	newTime := oldTime + deltaTime
	gl.adjustIntensity(delta)
	gl.calcNewFrequency(newTime, delta)
	gl.calcNewTenseness(newTime)
}

func (gl *Glottis) calcNewFrequency(time, delta float32) {
	switch {
	case gl.Intensity == 0:
		gl.smoothFrequency = gl.TargetFrequency
	case gl.TargetFrequency > gl.smoothFrequency:
		gl.smoothFrequency = math32.Min(gl.TargetFrequency, gl.smoothFrequency*(1+0.1*delta))
	case gl.TargetFrequency < gl.smoothFrequency:
		gl.smoothFrequency = math32.Max(gl.TargetFrequency, gl.smoothFrequency/(1+0.1*delta))
	}

	gl.oldFrequency = gl.newFrequency
	gl.newFrequency = math32.Max(10, gl.smoothFrequency*(1+gl.vibrato(time)))
}

func (gl *Glottis) calcNewTenseness(time float32) {
	gl.oldTenseness = gl.newTenseness
	gl.newTenseness = gl.TargetTenseness +
		0.1*gl.smooth.Simplex1(time*0.46) +
		0.05*gl.smooth.Simplex1(time*0.36)
	gl.newTenseness = math32.Max(0, gl.newTenseness)

	if !gl.Touched && gl.AlwaysVoice {
		// attack
		gl.newTenseness += (3 - gl.TargetTenseness) * (1 - gl.Intensity)
	}
}

func (gl *Glottis) adjustIntensity(delta float32) {
	if gl.Touched || gl.AlwaysVoice {
		gl.Intensity += 0.13 * delta
	} else {
		gl.Intensity -= 0.05 * delta
	}
	gl.Intensity = clamp32(gl.Intensity, 0, 1)
}

func (gl *Glottis) vibrato(time float32) float32 {
	v := gl.VibratoAmount * sin32(math32.Pi*2*time*gl.VibratoFrequency)
	v += 0.02 * gl.smooth.Simplex1(time*4.07)
	v += 0.04 * gl.smooth.Simplex1(time*2.15)
	if gl.AutoWobble {
		v += 0.2 * gl.smooth.Simplex1(time*0.96)
		v += 0.4 * gl.smooth.Simplex1(time*0.5)
	}
	return v
}

func (gl *Glottis) setupWaveform(lambda float32) {
	frequency := lerp32(gl.oldFrequency, gl.newFrequency, lambda)
	tenseness := lerp32(gl.oldTenseness, gl.newTenseness, lambda)
	gl.waveformLength = 1 / frequency
	gl.Loudness = math32.Pow(math32.Max(0, tenseness), 0.25)
	gl.Wave.Setup(tenseness)
}
