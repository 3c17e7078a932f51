// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"io"
	"math"
	"sync"

	"github.com/hajimehoshi/oto"
)

// Synthesizer is a source of mono float audio, such as a trm.PinkTrombone
type Synthesizer interface {
	Synthesize(buf []float32)
	SampleRate() uint32
}

// Stream reads a Synthesizer as 16 bit little endian mono PCM. Reads and
// calls to Do are serialized, so controls can be changed from another
// goroutine while the stream plays.
type Stream struct {
	Gain float32 `def:"1" desc:"scale applied before conversion"`

	mu    sync.Mutex
	synth Synthesizer
	buf   []float32
	left  int64
}

// NewStream returns a stream of n samples from synth, or an endless one if
// n < 0
func NewStream(synth Synthesizer, n int64) *Stream {
	return &Stream{Gain: 1, synth: synth, left: n}
}

// Do runs fn with the stream locked, between reads
func (st *Stream) Do(fn func()) {
	st.mu.Lock()
	defer st.mu.Unlock()
	fn()
}

// Read implements io.Reader, always returning whole samples
func (st *Stream) Read(p []byte) (int, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.left == 0 {
		return 0, io.EOF
	}
	n := len(p) / 2
	if st.left > 0 && int64(n) > st.left {
		n = int(st.left)
	}
	if n == 0 {
		return 0, nil
	}
	if cap(st.buf) < n {
		st.buf = make([]float32, n)
	}
	buf := st.buf[:n]
	st.synth.Synthesize(buf)
	for i, v := range buf {
		s := int16(math.Round(math.Max(-1, math.Min(1, float64(v*st.Gain))) * math.MaxInt16))
		p[2*i] = byte(s)
		p[2*i+1] = byte(s >> 8)
	}
	if st.left > 0 {
		st.left -= int64(n)
	}
	return 2 * n, nil
}

// PlayStream plays st on a new mono 16 bit audio device until it ends
func PlayStream(st *Stream) error {
	rate := int(st.synth.SampleRate())
	c, err := oto.NewContext(rate, 1, 2, 4096)
	if err != nil {
		return err
	}
	defer c.Close()
	p := c.NewPlayer()
	if _, err := io.Copy(p, st); err != nil {
		p.Close()
		return err
	}
	return p.Close()
}
