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

// Package metrics quantifies the fidelity loss of a hardware engine
// against the ideal transform.
package metrics

import (
	"math"

	"github.com/ajroetker/go-highway/hwy/contrib/vec"
)

// psnrEpsilon guards the PSNR ratio against a zero RMSE.
const psnrEpsilon = 1e-12

// RMSE returns the root-mean-square error between a reference vector and
// a model output of the same length.
func RMSE(ref, got []float64) float64 {
	n := len(ref)
	if n == 0 {
		return 0
	}
	r := make([]float64, n)
	for i := range r {
		r[i] = ref[i] - got[i]
	}
	return math.Sqrt(vec.Dot(r, r) / float64(n))
}

// PSNR returns the peak signal-to-noise ratio in dB of a model output
// against its reference: 20·log10(peak(ref)/rmse).
func PSNR(ref, got []float64) float64 {
	peak := 0.0
	for _, v := range ref {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return 20 * math.Log10(peak/(RMSE(ref, got)+psnrEpsilon))
}
