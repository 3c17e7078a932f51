// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package noise

import (
	"github.com/chewxy/math32"
)

// Ken Perlin's reference permutation
var perlinPerm = [256]uint8{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

// x,y components of the 12 edge gradients of the cube (z is unused in 2D)
var grad3 = [12][2]float32{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {1, 0}, {-1, 0},
	{0, 1}, {0, -1}, {0, 1}, {0, -1},
}

var (
	simplexF2 = 0.5 * (math32.Sqrt(3) - 1)
	simplexG2 = (3 - math32.Sqrt(3)) / 6
)

// Simplex is seeded 2D simplex noise, sampled along a line to give a smooth
// band-limited 1D signal in roughly [-1,1]
type Simplex struct {
	Seed  uint16 `desc:"seed used to scramble the permutation table"`
	perm  [512]int
	gradP [512][2]float32
}

// NewSimplex returns a Simplex seeded with seed
func NewSimplex(seed uint16) *Simplex {
	sn := &Simplex{}
	sn.SetSeed(seed)
	return sn
}

// SetSeed rebuilds the permutation tables. Seeds below 256 are spread to
// both bytes so that every seed scrambles the whole table.
func (sn *Simplex) SetSeed(seed uint16) {
	sn.Seed = seed
	s := int(seed)
	if s < 256 {
		s |= s << 8
	}
	for i := 0; i < 256; i++ {
		var v int
		if i&1 != 0 {
			v = int(perlinPerm[i]) ^ (s & 255)
		} else {
			v = int(perlinPerm[i]) ^ ((s >> 8) & 255)
		}
		sn.perm[i] = v
		sn.perm[i+256] = v
		sn.gradP[i] = grad3[v%12]
		sn.gradP[i+256] = grad3[v%12]
	}
}

// Simplex1 samples the noise at t
func (sn *Simplex) Simplex1(t float32) float32 {
	return sn.Simplex2(t*1.2, -t*0.7)
}

// Simplex2 is 2D simplex noise at (xin, yin)
func (sn *Simplex) Simplex2(xin, yin float32) float32 {
	var n0, n1, n2 float32

	// skew to find the simplex cell
	s := (xin + yin) * simplexF2
	i := math32.Floor(xin + s)
	j := math32.Floor(yin + s)
	t := (i + j) * simplexG2
	x0 := xin - i + t
	y0 := yin - j + t

	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}
	x1 := x0 - float32(i1) + simplexG2
	y1 := y0 - float32(j1) + simplexG2
	x2 := x0 - 1 + 2*simplexG2
	y2 := y0 - 1 + 2*simplexG2

	ii := int(i) & 255
	jj := int(j) & 255
	g0 := sn.gradP[ii+sn.perm[jj]]
	g1 := sn.gradP[ii+i1+sn.perm[jj+j1]]
	g2 := sn.gradP[ii+1+sn.perm[jj+1]]

	t0 := 0.5 - x0*x0 - y0*y0
	if t0 >= 0 {
		t0 *= t0
		n0 = t0 * t0 * (g0[0]*x0 + g0[1]*y0)
	}
	t1 := 0.5 - x1*x1 - y1*y1
	if t1 >= 0 {
		t1 *= t1
		n1 = t1 * t1 * (g1[0]*x1 + g1[1]*y1)
	}
	t2 := 0.5 - x2*x2 - y2*y2
	if t2 >= 0 {
		t2 *= t2
		n2 = t2 * t2 * (g2[0]*x2 + g2[1]*y2)
	}
	return 70 * (n0 + n1 + n2)
}
