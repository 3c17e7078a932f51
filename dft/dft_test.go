// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dft

import (
	"math"
	"testing"

	"github.com/emer/etable/etensor"
)

func TestSinePeak(t *testing.T) {
	const (
		rate = 16000
		n    = 512
	)
	tests := []struct {
		name string
		freq float64
	}{
		{"500Hz", 500},
		{"1000Hz", 1000},
		{"3000Hz", 3000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var dp Params
			dp.Initialize(n, rate)
			win := etensor.NewFloat32([]int{n}, nil, nil)
			for i := range win.Values {
				win.Values[i] = float32(math.Sin(2 * math.Pi * tc.freq * float64(i) / rate))
			}
			var pow, logPow etensor.Float32
			dp.Filter(win, true, &pow, &logPow)
			if pow.Len() != dp.NBins() || logPow.Len() != dp.NBins() {
				t.Fatalf("power bins %d, log %d, want %d", pow.Len(), logPow.Len(), dp.NBins())
			}
			if pk := dp.PeakFreq(&pow); pk != tc.freq {
				t.Errorf("peak = %v, want %v", pk, tc.freq)
			}
			if c := dp.Centroid(&pow); math.Abs(c-tc.freq) > 50 {
				t.Errorf("centroid = %v, want near %v", c, tc.freq)
			}
		})
	}
}

func TestSilence(t *testing.T) {
	var dp Params
	dp.Initialize(64, 8000)
	win := etensor.NewFloat32([]int{64}, nil, nil)
	var pow, logPow etensor.Float32
	dp.Filter(win, true, &pow, &logPow)
	if c := dp.Centroid(&pow); c != 0 {
		t.Errorf("centroid of silence = %v", c)
	}
	if v := logPow.Values[3]; v != dp.LogMin {
		t.Errorf("log power of silence = %v, want %v", v, dp.LogMin)
	}
}
