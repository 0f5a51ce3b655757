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
	"github.com/ajroetker/go-highway/hwy/contrib/matvec"
)

// Matrix builds the order-n Sylvester Hadamard matrix as a row-major
// slice of length n*n with entries +1 and -1. It fails with ErrLength
// when n is not a positive power of two.
//
// The construction doubles the top-left block in place:
//
//	[[H, H], [H, -H]]
func Matrix(n int) ([]float64, error) {
	if !PowerOfTwo(n) {
		return nil, ErrLength
	}
	h := make([]float64, n*n)
	h[0] = 1
	for m := 1; m < n; m <<= 1 {
		for r := 0; r < m; r++ {
			for c := 0; c < m; c++ {
				v := h[r*n+c]
				h[r*n+c+m] = v
				h[(r+m)*n+c] = v
				h[(r+m)*n+c+m] = -v
			}
		}
	}
	return h, nil
}

// MatrixTransform computes the dense product H·x of an order-n Hadamard
// matrix (as returned by Matrix) with x, returning a new slice. It is
// the O(n²) reference for Transform.
//
// Panics if len(h) < n*n or len(x) < n, matching matvec semantics.
func MatrixTransform(h []float64, n int, x []float64) []float64 {
	out := make([]float64, n)
	matvec.MatVec(h, n, n, x, out)
	return out
}
