// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !trmdebug

package trm

// DebugAssert is true when built with the trmdebug tag; scatter outputs
// outside [-1,1] then panic instead of passing through
const DebugAssert = false
