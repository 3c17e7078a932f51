// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/emer/etable/etensor"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	// ErrNoData is returned when a Wave has no buffer
	ErrNoData = errors.New("sound: wave has no data")
	// ErrBitDepth is returned for bit depths other than 8, 16, 24 or 32
	ErrBitDepth = errors.New("sound: unsupported bit depth")
	// ErrInvalidWav is returned by Load for files that are not PCM wav
	ErrInvalidWav = errors.New("sound: not a valid wav file")
)

// Wave is mono or multichannel integer PCM audio, as read from and written
// to wav files
type Wave struct {
	Buf *audio.IntBuffer `inactive:"+"`
}

// NewWave returns an empty mono Wave
func NewWave(sampleRate, bitDepth int) *Wave {
	return &Wave{Buf: &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}}
}

// MaxValue returns the integer full scale for bitDepth, 0 if unsupported
func MaxValue(bitDepth int) int {
	switch bitDepth {
	case 32:
		return 0x7FFFFFFF
	case 24:
		return 0x7FFFFF
	case 16:
		return 0x7FFF
	case 8:
		return 0x7F
	}
	return 0
}

// FromFloats replaces the data with mono samples, clipped to -1..1
func (snd *Wave) FromFloats(samples []float32) error {
	if snd.Buf == nil {
		return ErrNoData
	}
	mx := MaxValue(snd.Buf.SourceBitDepth)
	if mx == 0 {
		return fmt.Errorf("%w: %d", ErrBitDepth, snd.Buf.SourceBitDepth)
	}
	snd.Buf.Format.NumChannels = 1
	snd.Buf.Data = make([]int, len(samples))
	for i, v := range samples {
		v = float32(math.Max(-1, math.Min(1, float64(v))))
		snd.Buf.Data[i] = int(math.Round(float64(v) * float64(mx)))
	}
	return nil
}

// Floats returns the samples of channel as -1..1 floats
func (snd *Wave) Floats(channel int) []float32 {
	if snd.Buf == nil {
		return nil
	}
	nch := snd.Channels()
	nf := snd.Buf.NumFrames()
	out := make([]float32, nf)
	for i := 0; i < nf; i++ {
		out[i] = snd.GetFloatAtIdx(snd.Buf, i*nch+channel)
	}
	return out
}

// Load loads the sound file and decodes it
func (snd *Wave) Load(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		log.Printf("sound.Load: couldn't open %s %v", fn, err)
		return err
	}
	defer f.Close()
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return fmt.Errorf("%w: %s", ErrInvalidWav, fn)
	}
	snd.Buf, err = d.FullPCMBuffer()
	if err != nil {
		log.Printf("sound.Load: decoding %s: %v", fn, err)
		return err
	}
	return nil
}

// WriteWave encodes the signal data and writes it to file using the sample rate and
// other values of the buf object
func (snd *Wave) WriteWave(fn string) error {
	if snd.Buf == nil {
		return ErrNoData
	}
	out, err := os.Create(fn)
	if err != nil {
		log.Printf("unable to create %s: %v", fn, err)
		return err
	}

	PCM := 1
	e := wav.NewEncoder(out, snd.SampleRate(), snd.Buf.SourceBitDepth, snd.Channels(), PCM)
	if err = e.Write(snd.Buf); err != nil {
		log.Printf("Encoding failed on write: %v", err)
		out.Close()
		return err
	}

	if err = e.Close(); err != nil {
		log.Printf("could not close wav file encoder")
		out.Close()
		return err
	}
	return out.Close()
}

// SampleRate returns the sample rate of the sound or 0 is snd is nil
func (snd *Wave) SampleRate() int {
	if snd == nil || snd.Buf == nil {
		log.Printf("sound.SampleRate: Sound is nil")
		return 0
	}
	return int(snd.Buf.Format.SampleRate)
}

// Channels returns the number of channels in the wav data or 0 is snd is nil
func (snd *Wave) Channels() int {
	if snd == nil || snd.Buf == nil {
		log.Printf("sound.Channels: Sound is nil")
		return 0
	}
	return int(snd.Buf.Format.NumChannels)
}

// NumFrames returns the number of samples per channel
func (snd *Wave) NumFrames() int {
	if snd.Buf == nil {
		return 0
	}
	return snd.Buf.NumFrames()
}

// ToTensor converts sound data to floating point etensor with normalized -1..1 values.
// channel selects a specific channel (formats samples as a single-dimensional matrix of frames size),
// and -1 gets all available channels (formats samples as a two-dimensional matrix with outer dimension as
// channels and inner dimension frames)
func (snd *Wave) ToTensor(samples *etensor.Float32, channel int) bool {
	if snd.Buf == nil {
		return false
	}
	nFrames := snd.Buf.NumFrames()
	nch := snd.Channels()

	if channel < 0 && nch > 1 { // multiple channels and we process all of them
		samples.SetShape([]int{nch, nFrames}, nil, nil)
		idx := 0
		for i := 0; i < nFrames; i++ {
			for c := 0; c < nch; c, idx = c+1, idx+1 {
				samples.SetFloat([]int{c, i}, float64(snd.GetFloatAtIdx(snd.Buf, idx)))
			}
		}
		return true
	}
	if channel < 0 {
		channel = 0
	}
	samples.SetShape([]int{nFrames}, nil, nil)
	idx := 0
	for i := 0; i < nFrames; i++ {
		samples.SetFloat1D(i, float64(snd.GetFloatAtIdx(snd.Buf, idx+channel)))
		idx += nch
	}
	return true
}

// GetFloatAtIdx returns the sample at idx scaled to -1..1
func (snd *Wave) GetFloatAtIdx(buf *audio.IntBuffer, idx int) float32 {
	mx := MaxValue(buf.SourceBitDepth)
	if mx == 0 {
		return 0
	}
	return float32(buf.Data[idx]) / float32(mx)
}
