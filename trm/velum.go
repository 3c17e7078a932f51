// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trm

import "github.com/goki/ki/kit"

// Velum is the state of the soft palate, which couples the nasal cavity
// into the tract when open
type Velum int32

//go:generate stringer -type=Velum

var KiT_Velum = kit.Enums.AddEnum(VelumN, kit.NotBitFlag, nil)

func (ev Velum) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Velum) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// VelumClosed isolates the nose (oral sounds)
	VelumClosed Velum = iota

	// VelumOpen couples the nose (nasal sounds)
	VelumOpen

	VelumN
)
