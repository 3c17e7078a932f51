// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trm

import "errors"

// Construction errors. The tract runs at twice the output rate, so rates at or
// above half the uint32 range are rejected.
var (
	ErrZeroSampleRate     = errors.New("trm: sample rate must not be 0")
	ErrSampleRateTooLarge = errors.New("trm: sample rate too large")
)
