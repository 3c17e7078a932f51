// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trm

import (
	"math"
	"testing"

	"github.com/emer/pinktrombone/noise"
)

// uniformTract returns an initialized tract with every segment at diameter d
func uniformTract(d float64) *Tract {
	tr := &Tract{}
	src := noise.NewXorShift128(7)
	tr.Glottis.Init(48000, src, 7)
	tr.Init(96000, src)
	for i := range tr.Diameter {
		tr.Diameter[i] = d
	}
	for i := range tr.NoseDiameter {
		tr.NoseDiameter[i] = d
	}
	tr.CalculateNoseReflections()
	tr.CalculateNewBlockParameters()
	tr.CalculateNewBlockParameters()
	return tr
}

func TestReflectionSymmetry(t *testing.T) {
	tr := uniformTract(1.5)
	for i := 1; i < N; i++ {
		if tr.NewReflection[i] != 0 {
			t.Errorf("segment %d: uniform reflection = %v, want 0", i, tr.NewReflection[i])
		}
	}

	tr.Diameter[20], tr.Diameter[21] = 1, 2
	tr.CalculateNewBlockParameters()
	r := tr.NewReflection[21]
	tr.Diameter[20], tr.Diameter[21] = 2, 1
	tr.CalculateNewBlockParameters()
	if tr.NewReflection[21] != -r {
		t.Errorf("swapped reflection = %v, want %v", tr.NewReflection[21], -r)
	}
	if want := (1.0 - 4.0) / (1.0 + 4.0); math.Abs(r-want) > 1e-12 {
		t.Errorf("reflection = %v, want %v", r, want)
	}
}

func TestReflectionClosedFallback(t *testing.T) {
	tr := uniformTract(1.5)
	tr.Diameter[30], tr.Diameter[31] = 0, 0
	tr.CalculateNewBlockParameters()
	if tr.NewReflection[31] != 1 {
		t.Errorf("closed pair reflection = %v, want 1", tr.NewReflection[31])
	}
	// previous generation rolled forward
	if tr.Reflection[31] != 0 {
		t.Errorf("previous reflection = %v, want 0", tr.Reflection[31])
	}
}

func TestJunctionReflectionsSum(t *testing.T) {
	tr := uniformTract(1.5)
	tr.NoseDiameter[0] = 0.4
	tr.CalculateNewBlockParameters()
	// (2a-sum)/sum over the three branches sums to -1
	sum := tr.NewReflectionLeft + tr.NewReflectionRight + tr.NewReflectionNose
	if math.Abs(sum+1) > 1e-12 {
		t.Errorf("junction reflections sum to %v, want -1", sum)
	}
}

func TestSilentTractStaysSilent(t *testing.T) {
	tr := uniformTract(1.5)
	for i := 0; i < 1000; i++ {
		if v := tr.Step(0, 0.5); v != 0 {
			t.Fatalf("step %d: output %v from silence", i, v)
		}
	}
}

func TestTransientDecay(t *testing.T) {
	tr := uniformTract(1.5)
	tr.AddTransient(20)
	if len(tr.Transients) != 1 {
		t.Fatalf("transients = %d, want 1", len(tr.Transients))
	}
	var peak float64
	steps := int(0.25 * float64(tr.SampleRate))
	for i := 0; i < steps; i++ {
		v := math.Abs(float64(tr.Step(0, 0)))
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		t.Error("transient produced no output")
	}
	if len(tr.Transients) != 0 {
		t.Errorf("transients after lifetime = %d, want 0", len(tr.Transients))
	}
	tt := Transient{Strength: TransientStrength, Exponent: TransientExponent, LifeTime: TransientLifeTime}
	if a := tt.Amplitude(TransientLifeTime); a >= 1e-4 {
		t.Errorf("amplitude at removal = %v, want < 1e-4", a)
	}
}

func TestTransientAmplitude(t *testing.T) {
	tt := Transient{Strength: TransientStrength, Exponent: TransientExponent, LifeTime: TransientLifeTime}
	if a := tt.Amplitude(0); a != TransientStrength {
		t.Errorf("amplitude at 0 = %v, want %v", a, TransientStrength)
	}
	if a := tt.Amplitude(0.01); math.Abs(a-0.075) > 1e-6 {
		t.Errorf("amplitude at 10ms = %v, want 0.075", a)
	}
}

func TestTurbulenceEnvelope(t *testing.T) {
	tp := NewTurbulencePoint(30, 0.5, 0)
	if !tp.Active() {
		t.Fatal("new point is not active")
	}
	tests := []struct {
		time float32
		want float32
	}{
		{0, 0},
		{0.05, 0.5},
		{0.2, 1},
	}
	for _, tc := range tests {
		if got := tp.Envelope(tc.time); math.Abs(float64(got-tc.want)) > 1e-5 {
			t.Errorf("envelope(%v) = %v, want %v", tc.time, got, tc.want)
		}
	}
	tp.EndTime = 1
	if got := tp.Envelope(1.05); math.Abs(float64(got-0.5)) > 1e-5 {
		t.Errorf("release envelope = %v, want 0.5", got)
	}
	if tp.Finished(1.05) {
		t.Error("point finished during release")
	}
	if !tp.Finished(1.2) {
		t.Error("point not finished after release")
	}
}

func TestTurbulenceAddsNoise(t *testing.T) {
	tr := uniformTract(1.5)
	tr.TurbulencePoints = append(tr.TurbulencePoints, NewTurbulencePoint(30, 0.5, 0))
	var energy float64
	for i := 0; i < 20000; i++ {
		v := float64(tr.Step(0, 0))
		energy += v * v
	}
	if energy == 0 {
		t.Error("turbulence point produced no output")
	}

	// wide open constrictions are silent
	tr = uniformTract(1.5)
	tr.TurbulencePoints = append(tr.TurbulencePoints, NewTurbulencePoint(30, 1.5, 0))
	for i := 0; i < 20000; i++ {
		if v := tr.Step(0, 0); v != 0 {
			t.Fatalf("step %d: open constriction output %v", i, v)
		}
	}
}

func TestConstrictionApply(t *testing.T) {
	var targets [N]float64
	for i := range targets {
		targets[i] = 1.5
	}
	cn := Constriction{Index: 36, Diameter: 0}
	cn.Apply(&targets)
	if targets[36] != 0 {
		t.Errorf("center target = %v, want 0", targets[36])
	}
	if !(targets[35] > 0 && targets[35] < 1.5) {
		t.Errorf("neighbor target = %v, want between 0 and 1.5", targets[35])
	}
	if targets[20] != 1.5 {
		t.Errorf("far target = %v, want 1.5", targets[20])
	}

	for _, cn := range []Constriction{{Index: 1, Diameter: 0}, {Index: 44, Diameter: 0}, {Index: 20, Diameter: 3}} {
		var tg [N]float64
		for i := range tg {
			tg[i] = 1.5
		}
		cn.Apply(&tg)
		for i := range tg {
			if tg[i] != 1.5 {
				t.Errorf("%+v changed target %d to %v", cn, i, tg[i])
				break
			}
		}
	}
}
