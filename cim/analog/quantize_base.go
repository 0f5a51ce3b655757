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

package analog

import (
	"math"

	"github.com/ajroetker/go-highway/hwy"
)

// autoRangeEpsilon pads the observed peak when auto-ranging so a
// full-scale sample still lands inside the top code.
const autoRangeEpsilon = 1e-12

// ADC is a uniform quantizer over [-vmax, vmax] with 2^Bits levels.
// A positive Clip fixes vmax; otherwise each conversion group
// auto-ranges to its observed peak plus a small epsilon. ADC is
// stateless; every conversion is a pure function of its inputs.
type ADC struct {
	Bits int
	Clip float64
}

// Quantize converts v in place as one conversion group:
//
//	q = round((v+vmax)/step)*step - vmax, step = 2*vmax/(levels-1)
//
// Samples beyond vmax clamp to full scale first. Half-step ties round
// to the even code.
func (q ADC) Quantize(v []float64) {
	q.quantizeGroup([][]float64{v})
}

// QuantizeRows converts all rows as a single conversion group sharing
// one vmax, in place.
func (q ADC) QuantizeRows(rows [][]float64) {
	q.quantizeGroup(rows)
}

func (q ADC) quantizeGroup(rows [][]float64) {
	vmax := q.Clip
	if vmax <= 0 {
		peak := 0.0
		for _, row := range rows {
			if m := maxAbs(row); m > peak {
				peak = m
			}
		}
		vmax = peak + autoRangeEpsilon
	}

	levels := float64(uint64(1) << uint(q.Bits))
	step := 2 * vmax / (levels - 1)

	lanes := hwy.NumLanes[float64]()
	loVec := hwy.Set(-vmax)
	hiVec := hwy.Set(vmax)
	invStepVec := hwy.Set(1 / step)
	stepVec := hwy.Set(step)

	for _, row := range rows {
		n := len(row)
		i := 0
		for ; i+lanes <= n; i += lanes {
			v := hwy.Clamp(hwy.Load(row[i:]), loVec, hiVec)
			code := hwy.RoundToEven(hwy.Mul(hwy.Add(v, hiVec), invStepVec))
			hwy.Store(hwy.Sub(hwy.Mul(code, stepVec), hiVec), row[i:])
		}
		for ; i < n; i++ {
			v := row[i]
			if v > vmax {
				v = vmax
			} else if v < -vmax {
				v = -vmax
			}
			row[i] = math.RoundToEven((v+vmax)/step)*step - vmax
		}
	}
}

// maxAbs returns the largest absolute value in v, 0 for an empty slice.
func maxAbs(v []float64) float64 {
	n := len(v)
	lanes := hwy.NumLanes[float64]()

	peak := 0.0
	i := 0
	if n >= lanes {
		acc := hwy.Abs(hwy.Load(v))
		i = lanes
		for ; i+lanes <= n; i += lanes {
			acc = hwy.Max(acc, hwy.Abs(hwy.Load(v[i:])))
		}
		buf := make([]float64, lanes)
		hwy.Store(acc, buf)
		for _, m := range buf {
			if m > peak {
				peak = m
			}
		}
	}
	for ; i < n; i++ {
		if m := math.Abs(v[i]); m > peak {
			peak = m
		}
	}
	return peak
}
