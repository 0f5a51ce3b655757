// Copyright 2026 go-cimsim Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fixedpoint

import "math"

// Codec describes a signed fixed-point format with IntBits integer bits
// (sign included) and FracBits fractional bits. A positive Clip bounds
// the input to [-Clip, Clip] before quantization; Clip <= 0 disables the
// pre-clip.
type Codec struct {
	IntBits  int
	FracBits int
	Clip     float64
}

// LSB returns the real value of one code step, 2^-FracBits.
func (c Codec) LSB() float64 {
	return math.Exp2(float64(-c.FracBits))
}

// TotalBits returns the full code width IntBits+FracBits.
func (c Codec) TotalBits() int {
	return c.IntBits + c.FracBits
}

// CodeRange returns the inclusive [min, max] integer code range of the
// format: [-2^(T-1), 2^(T-1)-1] for total width T.
func (c Codec) CodeRange() (int64, int64) {
	half := int64(1) << (c.TotalBits() - 1)
	return -half, half - 1
}

// Encode quantizes x to the nearest representable code, saturating at
// the code range; half-LSB ties round to the even code. The result
// decodes back to real units as code*LSB.
func (c Codec) Encode(x []float64) []int64 {
	lsb := c.LSB()
	minCode, maxCode := c.CodeRange()

	codes := make([]int64, len(x))
	for i, v := range x {
		if c.Clip > 0 {
			if v > c.Clip {
				v = c.Clip
			} else if v < -c.Clip {
				v = -c.Clip
			}
		}
		q := int64(math.RoundToEven(v / lsb))
		if q > maxCode {
			q = maxCode
		} else if q < minCode {
			q = minCode
		}
		codes[i] = q
	}
	return codes
}

// EncodeBatch encodes every row of a batch independently.
func (c Codec) EncodeBatch(rows [][]float64) [][]int64 {
	out := make([][]int64, len(rows))
	for r, row := range rows {
		out[r] = c.Encode(row)
	}
	return out
}

// Decode maps codes back to real units, code*LSB.
func (c Codec) Decode(codes []int64) []float64 {
	lsb := c.LSB()
	out := make([]float64, len(codes))
	for i, q := range codes {
		out[i] = float64(q) * lsb
	}
	return out
}

// Bitplanes decomposes a batch of signed codes into totalBits two's-
// complement bit planes ordered LSB to MSB. The result is indexed
// [bit][row][col] with entries 0 or 1.
//
// Codes are masked to totalBits and shifted in the unsigned domain, so
// sign extension never leaks into higher planes.
func Bitplanes(codes [][]int64, totalBits int) [][][]uint8 {
	mask := uint64(1)<<uint(totalBits) - 1

	planes := make([][][]uint8, totalBits)
	for b := 0; b < totalBits; b++ {
		plane := make([][]uint8, len(codes))
		for r, row := range codes {
			bits := make([]uint8, len(row))
			for i, q := range row {
				bits[i] = uint8((uint64(q) & mask) >> uint(b) & 1)
			}
			plane[r] = bits
		}
		planes[b] = plane
	}
	return planes
}

// PlaneWeight returns the signed real-unit weight of bit plane b in a
// totalBits-wide code with the given LSB: 2^b·lsb, negated at the MSB to
// realize the two's-complement sign.
func PlaneWeight(b, totalBits int, lsb float64) float64 {
	w := math.Exp2(float64(b)) * lsb
	if b == totalBits-1 {
		w = -w
	}
	return w
}
