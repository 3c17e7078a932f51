// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/oto"
)

// PlayWav decodes the wav file fn, resampled to rate, and plays it to the
// end on context. The decoded stream is 16 bit stereo.
func PlayWav(context *oto.Context, fn string, rate int) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := wav.DecodeWithSampleRate(rate, f)
	if err != nil {
		return err
	}
	p := context.NewPlayer()
	if _, err := io.Copy(p, s); err != nil {
		p.Close()
		return err
	}
	return p.Close()
}

// Play opens an audio device and plays the wav file fn. bitdepth is in
// bytes per sample.
func Play(fn string, rate int, channels int, bitdepth int) error {
	c, err := oto.NewContext(rate, channels, bitdepth, 4096)
	if err != nil {
		return err
	}
	defer c.Close()
	return PlayWav(c, fn, rate)
}
