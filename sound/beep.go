// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// beepStreamer adapts a Stream to beep, with the mono signal on both channels
type beepStreamer struct {
	st *Stream
}

// Beep returns st as a beep.Streamer. It shares the lock and the sample
// budget of st, so it must not be read as an io.Reader at the same time.
func (st *Stream) Beep() beep.Streamer {
	return &beepStreamer{st: st}
}

func (bs *beepStreamer) Stream(samples [][2]float64) (int, bool) {
	st := bs.st
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.left == 0 {
		return 0, false
	}
	n := len(samples)
	if st.left > 0 && int64(n) > st.left {
		n = int(st.left)
	}
	if cap(st.buf) < n {
		st.buf = make([]float32, n)
	}
	buf := st.buf[:n]
	st.synth.Synthesize(buf)
	for i, v := range buf {
		s := float64(v * st.Gain)
		samples[i] = [2]float64{s, s}
	}
	if st.left > 0 {
		st.left -= int64(n)
	}
	return n, true
}

func (bs *beepStreamer) Err() error {
	return nil
}

// PlayBeep plays st through the beep speaker and returns when it ends.
// bufferSize trades latency for robustness against underruns.
func PlayBeep(st *Stream, bufferSize time.Duration) error {
	sr := beep.SampleRate(st.synth.SampleRate())
	if err := speaker.Init(sr, sr.N(bufferSize)); err != nil {
		return err
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(st.Beep(), beep.Callback(func() {
		close(done)
	})))
	<-done
	return nil
}
