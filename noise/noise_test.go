// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package noise

import (
	"fmt"
	"math"
	"testing"
)

func TestXorShiftReproducible(t *testing.T) {
	xs := NewXorShift128(9452)
	var v float64
	for i := 0; i < 461456; i++ {
		v = xs.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of range: %v", i, v)
		}
	}
	if got := fmt.Sprintf("%.10f", v); got != "0.5612585810" {
		t.Errorf("last draw = %s, want 0.5612585810", got)
	}
}

func TestXorShiftReset(t *testing.T) {
	xs := NewXorShift128(17)
	first := []float64{xs.Noise(), xs.Noise(), xs.Noise()}
	xs.Reset(17)
	for i, want := range first {
		if got := xs.Noise(); got != want {
			t.Errorf("draw %d after reset = %v, want %v", i, got, want)
		}
	}
}

func TestBandpassCenterGain(t *testing.T) {
	const sr = 48000
	tests := []struct {
		name string
		freq float64
		peak bool
	}{
		{"center", 1000, true},
		{"low", 50, false},
		{"high", 20000, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bf := NewBandpassFilter(1000, 2, sr)
			var peak float64
			for i := 0; i < sr; i++ {
				y := bf.Filter(math.Sin(2 * math.Pi * tc.freq * float64(i) / sr))
				if i > sr/2 {
					peak = math.Max(peak, math.Abs(y))
				}
			}
			if tc.peak && math.Abs(peak-1) > 0.01 {
				t.Errorf("gain at center = %v, want ~1", peak)
			}
			if !tc.peak && peak > 0.2 {
				t.Errorf("gain off center = %v, want < 0.2", peak)
			}
		})
	}
}

func TestBandpassReset(t *testing.T) {
	bf := NewBandpassFilter(500, 0.5, 44100)
	a := []float64{bf.Filter(1), bf.Filter(0), bf.Filter(0)}
	bf.Reset()
	for i, want := range a {
		x := 0.0
		if i == 0 {
			x = 1
		}
		if got := bf.Filter(x); got != want {
			t.Errorf("sample %d after reset = %v, want %v", i, got, want)
		}
	}
}

func TestFilteredNoiseDeterministic(t *testing.T) {
	a := NewFilteredNoise(500, 0.5, 48000, 64, NewXorShift128(3))
	b := NewFilteredNoise(500, 0.5, 48000, 64, NewXorShift128(3))
	for i := 0; i < 1000; i++ {
		x, y := a.Next(), b.Next()
		if x != y {
			t.Fatalf("sample %d differs: %v != %v", i, x, y)
		}
	}
}

func TestFilteredNoiseLoops(t *testing.T) {
	fn := NewFilteredNoise(1000, 0.5, 48000, 8, NewXorShift128(5))
	for _, v := range fn.Buf {
		if v < -1 || v >= 1 {
			t.Fatalf("white value out of range: %v", v)
		}
	}
	first := make([]float64, 8)
	for i := range first {
		first[i] = fn.White()
	}
	for i := range first {
		if got := fn.White(); got != first[i] {
			t.Errorf("loop index %d = %v, want %v", i, got, first[i])
		}
	}
}

func TestSimplexSmoothAndBounded(t *testing.T) {
	sn := NewSimplex(9452)
	prev := sn.Simplex1(0)
	for i := 1; i < 100000; i++ {
		v := sn.Simplex1(float32(i) * 0.001)
		if v < -1.01 || v > 1.01 {
			t.Fatalf("value %v at step %d out of range", v, i)
		}
		if d := math.Abs(float64(v - prev)); d > 0.05 {
			t.Fatalf("jump of %v at step %d", d, i)
		}
		prev = v
	}
}

func TestSimplexSeeds(t *testing.T) {
	a := NewSimplex(1)
	b := NewSimplex(1)
	c := NewSimplex(2)
	differs := false
	for i := 0; i < 100; i++ {
		x := float32(i) * 0.37
		if a.Simplex1(x) != b.Simplex1(x) {
			t.Fatalf("same seed differs at %v", x)
		}
		if a.Simplex1(x) != c.Simplex1(x) {
			differs = true
		}
	}
	if !differs {
		t.Error("different seeds produced identical noise")
	}
}
