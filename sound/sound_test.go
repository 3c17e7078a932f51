// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/emer/etable/etensor"
)

func sine(n int, freq, rate float64) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = float32(0.8 * math.Sin(2*math.Pi*freq*float64(i)/rate))
	}
	return s
}

func TestWaveRoundTrip(t *testing.T) {
	in := sine(4800, 440, 48000)
	snd := NewWave(48000, 16)
	if err := snd.FromFloats(in); err != nil {
		t.Fatal(err)
	}
	fn := filepath.Join(t.TempDir(), "sine.wav")
	if err := snd.WriteWave(fn); err != nil {
		t.Fatal(err)
	}

	var ld Wave
	if err := ld.Load(fn); err != nil {
		t.Fatal(err)
	}
	if ld.SampleRate() != 48000 || ld.Channels() != 1 {
		t.Errorf("loaded %d Hz, %d channels", ld.SampleRate(), ld.Channels())
	}
	out := ld.Floats(0)
	if len(out) != len(in) {
		t.Fatalf("loaded %d samples, want %d", len(out), len(in))
	}
	for i := range in {
		if d := math.Abs(float64(out[i] - in[i])); d > 1.0/0x7FFF {
			t.Fatalf("sample %d = %v, want %v", i, out[i], in[i])
		}
	}

	var tsr etensor.Float32
	if !ld.ToTensor(&tsr, -1) {
		t.Fatal("ToTensor failed")
	}
	if tsr.Len() != len(in) || tsr.Values[100] != out[100] {
		t.Errorf("tensor len %d, value %v want %v", tsr.Len(), tsr.Values[100], out[100])
	}
}

func TestFromFloatsClips(t *testing.T) {
	snd := NewWave(8000, 16)
	if err := snd.FromFloats([]float32{2, -2, 0}); err != nil {
		t.Fatal(err)
	}
	want := []int{0x7FFF, -0x7FFF, 0}
	for i, w := range want {
		if snd.Buf.Data[i] != w {
			t.Errorf("sample %d = %d, want %d", i, snd.Buf.Data[i], w)
		}
	}
}

func TestWaveErrors(t *testing.T) {
	if err := NewWave(8000, 12).FromFloats([]float32{0}); !errors.Is(err, ErrBitDepth) {
		t.Errorf("err = %v, want %v", err, ErrBitDepth)
	}
	var empty Wave
	if err := empty.WriteWave(filepath.Join(t.TempDir(), "x.wav")); !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want %v", err, ErrNoData)
	}
	fn := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(fn, []byte("not a wave file at all"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := empty.Load(fn); !errors.Is(err, ErrInvalidWav) {
		t.Errorf("err = %v, want %v", err, ErrInvalidWav)
	}
}

type constSynth struct {
	v float32
}

func (cs constSynth) Synthesize(buf []float32) {
	for i := range buf {
		buf[i] = cs.v
	}
}

func (cs constSynth) SampleRate() uint32 { return 8000 }

func TestStreamRead(t *testing.T) {
	st := NewStream(constSynth{0.5}, 3)
	p := make([]byte, 10)
	n, err := st.Read(p)
	if err != nil || n != 6 {
		t.Fatalf("read %d, %v", n, err)
	}
	for i := 0; i < 3; i++ {
		if s := int16(p[2*i]) | int16(p[2*i+1])<<8; s != 16384 {
			t.Errorf("sample %d = %d, want 16384", i, s)
		}
	}
	if _, err := st.Read(p); err != io.EOF {
		t.Errorf("err = %v, want EOF", err)
	}

	st = NewStream(constSynth{-3}, -1)
	st.Do(func() { st.Gain = 0.5 })
	if n, _ := st.Read(p[:4]); n != 4 {
		t.Fatalf("endless read %d", n)
	}
	if s := int16(p[0]) | int16(p[1])<<8; s != -math.MaxInt16 {
		t.Errorf("clipped sample = %d", s)
	}
}

func TestBeepStreamer(t *testing.T) {
	bs := NewStream(constSynth{0.25}, 5).Beep()
	samples := make([][2]float64, 8)
	n, ok := bs.Stream(samples)
	if n != 5 || !ok {
		t.Fatalf("stream = %d, %v", n, ok)
	}
	if samples[4] != [2]float64{0.25, 0.25} {
		t.Errorf("sample = %v", samples[4])
	}
	if n, ok := bs.Stream(samples); n != 0 || ok {
		t.Errorf("drained stream = %d, %v", n, ok)
	}
	if bs.Err() != nil {
		t.Error(bs.Err())
	}
}

func TestWindows(t *testing.T) {
	var sp Params
	sp.Defaults()
	sp.Config(1000)
	if sp.WinSamples != 25 || sp.StepSamples != 10 {
		t.Fatalf("window %d step %d", sp.WinSamples, sp.StepSamples)
	}
	if n := sp.NSteps(100); n != 8 {
		t.Errorf("steps = %d, want 8", n)
	}
	sig := etensor.NewFloat32([]int{100}, nil, nil)
	for i := range sig.Values {
		sig.Values[i] = float32(i + 1)
	}
	var win etensor.Float32
	if err := sp.SndToWindow(sig, -5, &win); err != nil {
		t.Fatal(err)
	}
	if win.Values[4] != 0 || win.Values[5] != 1 {
		t.Errorf("padded window starts %v", win.Values[:6])
	}
	if err := sp.SndToWindow(sig, 90, &win); err == nil {
		t.Error("no error past end of signal")
	}
	if ms := SamplesToMSec(25, 1000); ms != 25 {
		t.Errorf("ms = %v", ms)
	}
}
