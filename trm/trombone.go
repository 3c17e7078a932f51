// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trm

import (
	"math"
	"time"

	"github.com/emer/pinktrombone/noise"
)

// MaxBlockLen is the largest number of output samples computed with one set
// of block parameters
const MaxBlockLen = 512

// PinkTrombone is the complete voice: a Glottis feeding a Tract that is
// shaped by a TractShaper. The tract runs at twice the output sample rate.
type PinkTrombone struct {
	Shaper TractShaper `view:"inline" desc:"articulators, owning the tract and glottis"`

	sampleRate uint32
}

// New returns a voice at sampleRate Hz. All random white noise is drawn from
// src during construction (aspiration first, then frication) and seed
// scrambles the smooth noise used for pitch and tenseness wander.
func New(sampleRate uint32, src noise.NoiseSource, seed uint16) (*PinkTrombone, error) {
	pt := &PinkTrombone{}
	if err := pt.Init(sampleRate, src, seed); err != nil {
		return nil, err
	}
	return pt, nil
}

// Init initializes the voice in place, see New
func (pt *PinkTrombone) Init(sampleRate uint32, src noise.NoiseSource, seed uint16) error {
	if sampleRate == 0 {
		return ErrZeroSampleRate
	}
	if sampleRate >= math.MaxUint32/2 {
		return ErrSampleRateTooLarge
	}
	pt.sampleRate = sampleRate
	tr := pt.Tract()
	tr.Glottis.Init(sampleRate, src, seed)
	tr.Init(2*sampleRate, src)
	pt.Shaper.Init(VelumClosed)
	return nil
}

// Tract returns the waveguide
func (pt *PinkTrombone) Tract() *Tract {
	return &pt.Shaper.Tract
}

// Glottis returns the voice source
func (pt *PinkTrombone) Glottis() *Glottis {
	return &pt.Shaper.Tract.Glottis
}

// SampleRate returns the output sample rate in Hz
func (pt *PinkTrombone) SampleRate() uint32 {
	return pt.sampleRate
}

// Time returns how much audio has been generated so far
func (pt *PinkTrombone) Time() time.Duration {
	return time.Duration(float64(pt.Tract().Time) * float64(time.Second))
}

// Intensity is the voicing intensity, 0..1
func (pt *PinkTrombone) Intensity() float32 { return pt.Glottis().Intensity }

// SetIntensity sets the voicing intensity
func (pt *PinkTrombone) SetIntensity(v float32) { pt.Glottis().Intensity = v }

// Loudness is 0..1, recomputed from tenseness at every glottal period
func (pt *PinkTrombone) Loudness() float32 { return pt.Glottis().Loudness }

// SetLoudness sets the loudness until the next glottal period
func (pt *PinkTrombone) SetLoudness(v float32) { pt.Glottis().Loudness = v }

// TargetFrequency is the pitch target in Hz
func (pt *PinkTrombone) TargetFrequency() float32 { return pt.Glottis().TargetFrequency }

// SetTargetFrequency sets the pitch target in Hz
func (pt *PinkTrombone) SetTargetFrequency(v float32) { pt.Glottis().TargetFrequency = v }

// TargetTenseness is 0..1
func (pt *PinkTrombone) TargetTenseness() float32 { return pt.Glottis().TargetTenseness }

// SetTargetTenseness sets the tenseness target
func (pt *PinkTrombone) SetTargetTenseness(v float32) { pt.Glottis().TargetTenseness = v }

// TongueIndex is the tongue body position, 0..N
func (pt *PinkTrombone) TongueIndex() float64 { return pt.Shaper.TongueIndex }

// SetTongueIndex moves the tongue body
func (pt *PinkTrombone) SetTongueIndex(v float64) { pt.Shaper.TongueIndex = v }

// TongueDiameter is the tongue height, about 0..3
func (pt *PinkTrombone) TongueDiameter() float64 { return pt.Shaper.TongueDiameter }

// SetTongueDiameter sets the tongue height
func (pt *PinkTrombone) SetTongueDiameter(v float64) { pt.Shaper.TongueDiameter = v }

// VibratoGain is the vibrato depth
func (pt *PinkTrombone) VibratoGain() float32 { return pt.Glottis().VibratoAmount }

// SetVibratoGain sets the vibrato depth
func (pt *PinkTrombone) SetVibratoGain(v float32) { pt.Glottis().VibratoAmount = v }

// VibratoFrequency is the vibrato rate in Hz
func (pt *PinkTrombone) VibratoFrequency() float32 { return pt.Glottis().VibratoFrequency }

// SetVibratoFrequency sets the vibrato rate in Hz
func (pt *PinkTrombone) SetVibratoFrequency(v float32) { pt.Glottis().VibratoFrequency = v }

// VibratoWobble reports whether slow pitch wander is on
func (pt *PinkTrombone) VibratoWobble() bool { return pt.Glottis().AutoWobble }

// SetVibratoWobble turns slow pitch wander on or off
func (pt *PinkTrombone) SetVibratoWobble(on bool) { pt.Glottis().AutoWobble = on }

// VelumOpen reports whether the velum target is open
func (pt *PinkTrombone) VelumOpen() bool { return pt.Shaper.Velum == VelumOpen }

// SetVelumOpen opens or closes the velum
func (pt *PinkTrombone) SetVelumOpen(open bool) {
	if open {
		pt.Shaper.SetVelum(VelumOpen)
	} else {
		pt.Shaper.SetVelum(VelumClosed)
	}
}

// SetMusicalNote sets the pitch target to semitone relative to A4
func (pt *PinkTrombone) SetMusicalNote(semitone float32) {
	pt.Glottis().SetMusicalNote(semitone)
}

// TurbulencePoints returns the live frication sources for direct editing
func (pt *PinkTrombone) TurbulencePoints() *[]TurbulencePoint {
	return &pt.Tract().TurbulencePoints
}

// AddTurbulencePoint starts frication at position with the given
// constriction diameter, and returns its index
func (pt *PinkTrombone) AddTurbulencePoint(position, diameter float32) int {
	tr := pt.Tract()
	tr.TurbulencePoints = append(tr.TurbulencePoints, NewTurbulencePoint(position, diameter, tr.Time))
	return len(tr.TurbulencePoints) - 1
}

// ReleaseTurbulencePoint starts the decay of point idx if it is still
// active. Returns false if idx is out of range. Indices stay valid until
// PruneTurbulencePoints is called.
func (pt *PinkTrombone) ReleaseTurbulencePoint(idx int) bool {
	tr := pt.Tract()
	if idx < 0 || idx >= len(tr.TurbulencePoints) {
		return false
	}
	if tp := &tr.TurbulencePoints[idx]; tp.Active() {
		tp.EndTime = tr.Time
	}
	return true
}

// PruneTurbulencePoints drops points that have fully decayed. It
// invalidates indices returned by AddTurbulencePoint.
func (pt *PinkTrombone) PruneTurbulencePoints() {
	tr := pt.Tract()
	keep := tr.TurbulencePoints[:0]
	for _, p := range tr.TurbulencePoints {
		if !p.Finished(tr.Time) {
			keep = append(keep, p)
		}
	}
	tr.TurbulencePoints = keep
}

// SetConstrictions replaces the narrowings applied on top of the tongue shape
func (pt *PinkTrombone) SetConstrictions(cs ...Constriction) {
	pt.Shaper.Constrictions = append(pt.Shaper.Constrictions[:0], cs...)
}

// Synthesize fills buf with audio, in blocks of at most MaxBlockLen samples
func (pt *PinkTrombone) Synthesize(buf []float32) {
	for p := 0; p < len(buf); {
		n := len(buf) - p
		if n > MaxBlockLen {
			n = MaxBlockLen
		}
		pt.synthesizeBlock(buf[p : p+n])
		p += n
	}
}

// Reset rolls the block parameters forward without advancing time, so that
// control changes take effect from the next sample on
func (pt *PinkTrombone) Reset() {
	pt.calcNewBlockParameters(0)
}

func (pt *PinkTrombone) synthesizeBlock(buf []float32) {
	n := len(buf)
	deltaTime := float32(n) / float32(pt.sampleRate)
	pt.calcNewBlockParameters(deltaTime)
	gl := pt.Glottis()
	tr := pt.Tract()
	for i := range buf {
		lambda1 := float64(i) / float64(n)
		lambda2 := (float64(i) + 0.5) / float64(n)
		glot := float64(gl.Step(float32(lambda1)))
		v1 := tr.Step(glot, lambda1)
		v2 := tr.Step(glot, lambda2)
		buf[i] = (v1 + v2) * 0.125
	}
}

func (pt *PinkTrombone) calcNewBlockParameters(deltaTime float32) {
	pt.Glottis().AdjustParameters(deltaTime)
	pt.Shaper.AdjustTractShape(float64(deltaTime))
	pt.Tract().CalculateNewBlockParameters()
}
