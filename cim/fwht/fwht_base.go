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

package fwht

import (
	"errors"

	"github.com/ajroetker/go-highway/hwy"
)

// ErrLength reports a transform length that is zero or not a power of two.
var ErrLength = errors.New("fwht: length must be a positive power of two")

// PowerOfTwo reports whether n is a positive power of two.
func PowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Transform computes the unnormalized Walsh-Hadamard transform of x and
// returns it as a new slice. The input is not modified.
//
// Applying Transform twice yields len(x) times the original vector.
func Transform(x []float64) ([]float64, error) {
	if !PowerOfTwo(len(x)) {
		return nil, ErrLength
	}
	a := make([]float64, len(x))
	copy(a, x)
	transformInPlace(a)
	return a, nil
}

// TransformBatch computes the transform of every row independently and
// returns the results as a new batch. All rows must share one
// power-of-two length.
func TransformBatch(rows [][]float64) ([][]float64, error) {
	if len(rows) == 0 {
		return nil, ErrLength
	}
	n := len(rows[0])
	if !PowerOfTwo(n) {
		return nil, ErrLength
	}
	out := make([][]float64, len(rows))
	for r, row := range rows {
		if len(row) != n {
			return nil, ErrLength
		}
		a := make([]float64, n)
		copy(a, row)
		transformInPlace(a)
		out[r] = a
	}
	return out, nil
}

// transformInPlace runs the butterfly recursion on a validated
// power-of-two-length slice.
func transformInPlace(a []float64) {
	n := len(a)
	lanes := hwy.NumLanes[float64]()

	for h := 1; h < n; h <<= 1 {
		for i := 0; i < n; i += h << 1 {
			left := a[i : i+h]
			right := a[i+h : i+(h<<1)]

			j := 0
			for ; j+lanes <= h; j += lanes {
				u := hwy.Load(left[j:])
				v := hwy.Load(right[j:])
				hwy.Store(hwy.Add(u, v), left[j:])
				hwy.Store(hwy.Sub(u, v), right[j:])
			}

			// Scalar tail (and entire early stages where h < lanes).
			for ; j < h; j++ {
				u, v := left[j], right[j]
				left[j] = u + v
				right[j] = u - v
			}
		}
	}
}
