// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trm

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/emer/pinktrombone/noise"
	"github.com/goki/gi/gi"
)

// Config describes a voice: how to build it and its initial controls
type Config struct {
	SampleRate       uint32         `def:"48000" desc:"output sample rate in Hz"`
	Seed             uint16         `desc:"seed for the white noise source and the smooth noise"`
	Frequency        float32        `def:"140" desc:"pitch target in Hz"`
	Tenseness        float32        `def:"0.6" min:"0" max:"1" desc:"vocal fold tenseness"`
	TongueIndex      float64        `def:"12.9" desc:"tongue body position"`
	TongueDiameter   float64        `def:"2.43" desc:"tongue height"`
	VibratoGain      float32        `def:"0.005" desc:"vibrato depth"`
	VibratoFrequency float32        `def:"6" desc:"vibrato rate in Hz"`
	VibratoWobble    bool           `def:"true" desc:"slow random pitch wander"`
	Velum            Velum          `desc:"initial velum state"`
	Constrictions    []Constriction `desc:"narrowings on top of the tongue shape"`
}

// Defaults matches the state of a freshly constructed voice
func (cf *Config) Defaults() {
	cf.SampleRate = 48000
	cf.Seed = 9452
	cf.Frequency = 140
	cf.Tenseness = 0.6
	cf.TongueIndex = 12.9
	cf.TongueDiameter = 2.43
	cf.VibratoGain = 0.005
	cf.VibratoFrequency = 6
	cf.VibratoWobble = true
	cf.Velum = VelumClosed
	cf.Constrictions = nil
}

// OpenJSON opens config from a JSON-formatted file. Fields missing from the
// file keep their current values.
func (cf *Config) OpenJSON(fn gi.FileName) error {
	b, err := ioutil.ReadFile(string(fn))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, cf); err != nil {
		return fmt.Errorf("trm: config %s: %w", fn, err)
	}
	return nil
}

// SaveJSON saves config to a JSON-formatted file
func (cf *Config) SaveJSON(fn gi.FileName) error {
	b, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(string(fn), b, 0644)
}

// Apply sets the controls of pt from the config
func (cf *Config) Apply(pt *PinkTrombone) {
	pt.SetTargetFrequency(cf.Frequency)
	pt.SetTargetTenseness(cf.Tenseness)
	pt.SetTongueIndex(cf.TongueIndex)
	pt.SetTongueDiameter(cf.TongueDiameter)
	pt.SetVibratoGain(cf.VibratoGain)
	pt.SetVibratoFrequency(cf.VibratoFrequency)
	pt.SetVibratoWobble(cf.VibratoWobble)
	pt.SetVelumOpen(cf.Velum == VelumOpen)
	pt.SetConstrictions(cf.Constrictions...)
}

// New builds a voice with an XorShift128 noise source seeded with Seed and
// applies the controls
func (cf *Config) New() (*PinkTrombone, error) {
	pt, err := New(cf.SampleRate, noise.NewXorShift128(uint32(cf.Seed)), cf.Seed)
	if err != nil {
		return nil, err
	}
	cf.Apply(pt)
	return pt, nil
}
