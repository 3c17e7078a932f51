// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trm

import (
	"fmt"
	"math"

	"github.com/emer/pinktrombone/noise"
)

// Tract geometry, in segments from the glottis (0) to the lips (N-1)
const (
	N          = 44
	BladeStart = 10
	TipStart   = 32
	LipStart   = 39
	NoseLen    = 28
	NoseStart  = N - NoseLen + 1
)

// Fixed boundary reflections and losses
const (
	GlottalReflection = 0.75
	LipReflection     = -0.85
	TractLoss         = 0.999
	AmplitudeDecay    = 0.9999
)

// Tract is the digital waveguide: a main tube of N segments and a nasal
// branch of NoseLen segments joined by a three-way junction at NoseStart.
// Reflection coefficients are kept in two generations (current and new) and
// interpolated by the block fraction lambda at every step.
type Tract struct {
	Glottis     Glottis `view:"inline" desc:"the glottal source driving the tract"`
	SampleRate  uint32  `inactive:"+" desc:"internal rate, twice the output rate"`
	SampleCount uint64  `inactive:"+" desc:"number of steps taken"`
	Time        float32 `inactive:"+" desc:"tract time in seconds"`

	Diameter         [N]float64       `desc:"current segment diameters, 0 is a full closure"`
	Right            [N]float64       `view:"-" desc:"rightward (toward lips) traveling wave"`
	Left             [N]float64       `view:"-" desc:"leftward (toward glottis) traveling wave"`
	Reflection       [N]float64       `view:"-" desc:"reflection coefficients of the previous block"`
	NewReflection    [N]float64       `view:"-" desc:"reflection coefficients of the current block"`
	MaxAmplitude     [N]float64       `view:"-" desc:"decaying peak amplitude per segment"`
	NoseDiameter     [NoseLen]float64 `desc:"nasal segment diameters, 0 is the velum"`
	NoseRight        [NoseLen]float64 `view:"-"`
	NoseLeft         [NoseLen]float64 `view:"-"`
	NoseReflection   [NoseLen]float64 `view:"-" desc:"nasal reflection coefficients, computed once with an open velum"`
	NoseMaxAmplitude [NoseLen]float64 `view:"-"`

	ReflectionLeft     float64 `view:"-"`
	ReflectionRight    float64 `view:"-"`
	ReflectionNose     float64 `view:"-"`
	NewReflectionLeft  float64 `view:"-"`
	NewReflectionRight float64 `view:"-"`
	NewReflectionNose  float64 `view:"-"`

	LipOutput  float64 `inactive:"+" desc:"lip output of the last step"`
	NoseOutput float64 `inactive:"+" desc:"nostril output of the last step"`

	Transients       []Transient       `desc:"active plosive transients"`
	TurbulencePoints []TurbulencePoint `desc:"frication sources, managed by the caller"`

	junctionRight     [N]float64
	junctionLeft      [N + 1]float64
	noseJunctionRight [NoseLen]float64
	noseJunctionLeft  [NoseLen + 1]float64

	frication noise.Generator
}

// Init resets the waveguide and builds the frication noise from src.
// The Glottis must be initialized first, so that it draws its noise
// buffer before the tract. Panics if sampleRate is 0.
func (tr *Tract) Init(sampleRate uint32, src noise.NoiseSource) {
	if sampleRate == 0 {
		panic("trm: Tract sample rate must be > 0")
	}
	tr.SampleRate = sampleRate
	tr.frication = noise.NewFilteredNoise(1000, 0.5, sampleRate, AspirationLoop, src)
	tr.Reset()
}

// Reset clears all waves, coefficients and time, keeping the noise buffer
func (tr *Tract) Reset() {
	tr.SampleCount = 0
	tr.Time = 0
	tr.Diameter = [N]float64{}
	tr.Right = [N]float64{}
	tr.Left = [N]float64{}
	tr.Reflection = [N]float64{}
	tr.NewReflection = [N]float64{}
	tr.MaxAmplitude = [N]float64{}
	tr.NoseDiameter = [NoseLen]float64{}
	tr.NoseRight = [NoseLen]float64{}
	tr.NoseLeft = [NoseLen]float64{}
	tr.NoseReflection = [NoseLen]float64{}
	tr.NoseMaxAmplitude = [NoseLen]float64{}
	tr.junctionRight = [N]float64{}
	tr.junctionLeft = [N + 1]float64{}
	tr.noseJunctionRight = [NoseLen]float64{}
	tr.noseJunctionLeft = [NoseLen + 1]float64{}
	tr.ReflectionLeft, tr.ReflectionRight, tr.ReflectionNose = 0, 0, 0
	tr.NewReflectionLeft, tr.NewReflectionRight, tr.NewReflectionNose = 0, 0, 0
	tr.LipOutput, tr.NoseOutput = 0, 0
	tr.Transients = nil
	tr.TurbulencePoints = nil
}

// CalculateNoseReflections computes the nasal reflections from the current
// nose diameters. Called once at construction, with the velum open.
func (tr *Tract) CalculateNoseReflections() {
	var a [NoseLen]float64
	for i := 0; i < NoseLen; i++ {
		a[i] = math.Max(1e-6, sqr(tr.NoseDiameter[i]))
	}
	for i := 1; i < NoseLen; i++ {
		tr.NoseReflection[i] = assertVolume((a[i-1] - a[i]) / (a[i-1] + a[i]))
	}
}

// CalculateNewBlockParameters rolls the new reflections into the current
// generation and recomputes them from the current diameters
func (tr *Tract) CalculateNewBlockParameters() {
	tr.calcMainReflections()
	tr.calcJunctionReflections()
}

func (tr *Tract) calcMainReflections() {
	var a [N]float64
	for i := 0; i < N; i++ {
		a[i] = sqr(tr.Diameter[i])
	}
	for i := 1; i < N; i++ {
		tr.Reflection[i] = tr.NewReflection[i]
		sum := a[i-1] + a[i]
		if math.Abs(sum) > 1e-6 {
			tr.NewReflection[i] = (a[i-1] - a[i]) / sum
		} else {
			tr.NewReflection[i] = 1
		}
	}
}

func (tr *Tract) calcJunctionReflections() {
	tr.ReflectionLeft = tr.NewReflectionLeft
	tr.ReflectionRight = tr.NewReflectionRight
	tr.ReflectionNose = tr.NewReflectionNose

	velumA := sqr(tr.NoseDiameter[0])
	an0 := sqr(tr.Diameter[NoseStart])
	an1 := sqr(tr.Diameter[NoseStart+1])
	sum := an0 + an1 + velumA

	if math.Abs(sum) > 1e-6 {
		tr.NewReflectionLeft = (2*an0 - sum) / sum
		tr.NewReflectionRight = (2*an1 - sum) / sum
		tr.NewReflectionNose = (2*velumA - sum) / sum
	} else {
		tr.NewReflectionLeft = 1
		tr.NewReflectionRight = 1
		tr.NewReflectionNose = 1
	}
}

// Step advances the waveguide by one internal sample, driven by glottal,
// and returns lip plus nose output
func (tr *Tract) Step(glottal float64, lambda float64) float32 {
	tr.processTransients()
	tr.addTurbulence()

	// mouth
	tr.junctionRight[0] = tr.Left[0]*GlottalReflection + glottal
	tr.junctionLeft[N] = tr.Right[N-1] * LipReflection

	for i := 1; i < N; i++ {
		r := lerp(tr.Reflection[i], tr.NewReflection[i], lambda)
		w := r * (tr.Right[i-1] + tr.Left[i])
		tr.junctionRight[i] = assertVolume(tr.Right[i-1] - w)
		tr.junctionLeft[i] = assertVolume(tr.Left[i] + w)
	}

	// junction with the nose
	i := NoseStart
	r := lerp(tr.ReflectionLeft, tr.NewReflectionLeft, lambda)
	tr.junctionLeft[i] = assertVolume(r*tr.Right[i-1] + (1+r)*(tr.NoseLeft[0]+tr.Left[i]))
	r = lerp(tr.ReflectionRight, tr.NewReflectionRight, lambda)
	tr.junctionRight[i] = assertVolume(r*tr.Left[i] + (1+r)*(tr.Right[i-1]+tr.NoseLeft[0]))
	r = lerp(tr.ReflectionNose, tr.NewReflectionNose, lambda)
	tr.noseJunctionRight[0] = assertVolume(r*tr.NoseLeft[0] + (1+r)*(tr.Left[i]+tr.Right[i-1]))

	for i := 0; i < N; i++ {
		right := tr.junctionRight[i] * TractLoss
		left := tr.junctionLeft[i+1] * TractLoss
		tr.Right[i] = right
		tr.Left[i] = left

		amp := math.Abs(right + left)
		tr.MaxAmplitude[i] *= AmplitudeDecay
		tr.MaxAmplitude[i] = math.Max(tr.MaxAmplitude[i], amp)
	}
	tr.LipOutput = tr.Right[N-1]

	// nose
	tr.noseJunctionLeft[NoseLen] = tr.NoseRight[NoseLen-1] * LipReflection

	for i := 1; i < NoseLen; i++ {
		w := tr.NoseReflection[i] * (tr.NoseRight[i-1] + tr.NoseLeft[i])
		tr.noseJunctionRight[i] = assertVolume(tr.NoseRight[i-1] - w)
		tr.noseJunctionLeft[i] = assertVolume(tr.NoseLeft[i] + w)
	}

	for i := 0; i < NoseLen; i++ {
		right := tr.noseJunctionRight[i]
		left := tr.noseJunctionLeft[i+1]
		tr.NoseRight[i] = right
		tr.NoseLeft[i] = left

		amp := math.Abs(right + left)
		tr.NoseMaxAmplitude[i] *= AmplitudeDecay
		tr.NoseMaxAmplitude[i] = math.Max(tr.NoseMaxAmplitude[i], amp)
	}
	tr.NoseOutput = tr.NoseRight[NoseLen-1]

	tr.SampleCount++
	tr.Time = float32(tr.SampleCount) / float32(tr.SampleRate)

	return float32(tr.LipOutput + tr.NoseOutput)
}

// AddTransient starts a plosive release at segment position
func (tr *Tract) AddTransient(position int) {
	tr.Transients = append(tr.Transients, Transient{
		Position:  position,
		StartTime: tr.Time,
		LifeTime:  TransientLifeTime,
		Strength:  TransientStrength,
		Exponent:  TransientExponent,
	})
}

func (tr *Tract) processTransients() {
	for i := len(tr.Transients) - 1; i >= 0; i-- {
		trans := &tr.Transients[i]
		age := tr.Time - trans.StartTime
		if age > trans.LifeTime {
			tr.Transients = append(tr.Transients[:i], tr.Transients[i+1:]...)
			continue
		}
		amp := trans.Amplitude(age)
		tr.Right[trans.Position] += amp * 0.5
		tr.Left[trans.Position] += amp * 0.5
	}
}

func (tr *Tract) addTurbulence() {
	for pi := range tr.TurbulencePoints {
		p := &tr.TurbulencePoints[pi]
		if p.Position < 2 || p.Position > N {
			continue
		}
		if p.Diameter <= 0 {
			continue
		}
		env := p.Envelope(tr.Time)
		if env <= 0 {
			continue
		}
		turb := 0.66 * tr.frication.Next() * float64(env) * float64(tr.Glottis.NoiseModulator())
		tr.addTurbulenceAt(turb, float64(p.Position), float64(p.Diameter))
	}
}

// addTurbulenceAt splits noise across the two segments straddling position,
// scaled so that only narrow but open constrictions produce frication
func (tr *Tract) addTurbulenceAt(turb, position, diameter float64) {
	i := int(math.Floor(position))
	delta := position - float64(i)
	thinness := clampf(8*(0.7-diameter), 0, 1)
	openness := clampf(30*(diameter-0.3), 0, 1)
	noise0 := turb * (1 - delta) * thinness * openness
	noise1 := turb * delta * thinness * openness
	if i+1 < N {
		tr.Right[i+1] += noise0 * 0.5
		tr.Left[i+1] += noise0 * 0.5
	}
	if i+2 < N {
		tr.Right[i+2] += noise1 * 0.5
		tr.Left[i+2] += noise1 * 0.5
	}
}

// assertVolume passes v through; debug builds panic when v leaves [-1,1]
func assertVolume(v float64) float64 {
	if DebugAssert && math.Abs(v) > 1 {
		panic(fmt.Sprintf("trm: waveguide value out of range: %v", v))
	}
	return v
}
