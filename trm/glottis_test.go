// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trm

import (
	"math"
	"testing"

	"github.com/emer/pinktrombone/noise"
)

func TestSetMusicalNote(t *testing.T) {
	tests := []struct {
		semitone float32
		want     float64
	}{
		{0, 440},
		{-12, 220},
		{12, 880},
		{3, 523.2511},
	}
	gl := &Glottis{}
	gl.Init(48000, noise.NewXorShift128(1), 1)
	for _, tc := range tests {
		gl.SetMusicalNote(tc.semitone)
		if math.Abs(float64(gl.TargetFrequency)-tc.want) > 1e-2 {
			t.Errorf("note %v: frequency = %v, want %v", tc.semitone, gl.TargetFrequency, tc.want)
		}
	}
}

func TestLFWaveShape(t *testing.T) {
	for _, tense := range []float32{0.1, 0.6, 0.9} {
		var lf LFWave
		lf.Setup(tense)
		if v := lf.Value(0); v != 0 {
			t.Errorf("tenseness %v: value at 0 = %v, want 0", tense, v)
		}
		if v := lf.Value(1); math.Abs(float64(v)) > 1e-4 {
			t.Errorf("tenseness %v: value at 1 = %v, want 0", tense, v)
		}
		if v := lf.Value(lf.Te); math.Abs(float64(v+1)) > 1e-3 {
			t.Errorf("tenseness %v: value at Te = %v, want -1", tense, v)
		}
		if lf.Te <= 0 || lf.Te >= 1 {
			t.Errorf("tenseness %v: Te = %v out of (0,1)", tense, lf.Te)
		}
	}
}

func TestGlottisIntensityRamp(t *testing.T) {
	gl := &Glottis{}
	gl.Init(48000, noise.NewXorShift128(1), 1)
	dt := float32(MaxBlockLen) / 48000
	for i := 0; i < 20; i++ {
		gl.AdjustParameters(dt)
	}
	if gl.Intensity != 1 {
		t.Errorf("voiced intensity = %v, want 1", gl.Intensity)
	}
	gl.AlwaysVoice = false
	for i := 0; i < 40; i++ {
		gl.AdjustParameters(dt)
	}
	if gl.Intensity != 0 {
		t.Errorf("released intensity = %v, want 0", gl.Intensity)
	}
}

func TestGlottisPeriod(t *testing.T) {
	const sr = 48000
	gl := &Glottis{}
	gl.Init(sr, noise.NewXorShift128(1), 1)
	gl.AutoWobble = false
	gl.VibratoAmount = 0
	gl.TargetFrequency = 220
	dt := float32(MaxBlockLen) / sr
	for b := 0; b < 100; b++ {
		gl.AdjustParameters(dt)
		for i := 0; i < MaxBlockLen; i++ {
			v := gl.Step(float32(i) / MaxBlockLen)
			if math.IsNaN(float64(v)) || math.Abs(float64(v)) > 2 {
				t.Fatalf("block %d sample %d: glottal output %v", b, i, v)
			}
		}
	}
	period := float64(gl.WaveformLength())
	if math.Abs(period*220-1) > 0.1 {
		t.Errorf("period = %v s, want about %v", period, 1.0/220)
	}
	if got, want := gl.Time(), float32(100*MaxBlockLen)/sr; math.Abs(float64(got-want)) > 1e-4 {
		t.Errorf("time = %v, want %v", got, want)
	}
}

func TestGlottisZeroRatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Init with zero sample rate did not panic")
		}
	}()
	gl := &Glottis{}
	gl.Init(0, noise.NewXorShift128(1), 1)
}
