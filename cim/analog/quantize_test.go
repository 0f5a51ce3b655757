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
	"math/rand/v2"
	"testing"
)

func TestQuantizeFixedClip(t *testing.T) {
	// 2 bits over [-1, 1]: codes at -1, -1/3, 1/3, 1.
	q := ADC{Bits: 2, Clip: 1}
	v := []float64{-1, -0.5, 0, 0.2, 1, 5}
	q.Quantize(v)

	want := []float64{-1, -1.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0, 1, 1}
	for i := range want {
		if math.Abs(v[i]-want[i]) > 1e-12 {
			t.Fatalf("at %d: got %g, want %g", i, v[i], want[i])
		}
	}
}

func TestQuantizeTiesRoundToEven(t *testing.T) {
	// 2 bits over [-1.5, 1.5]: unit step, codes at -1.5, -0.5, 0.5, 1.5.
	// Inputs -1, 0, and 1 all land exactly between two codes; the even
	// code wins, so -1 drops to -1.5 while 0 and 1 both rise to 0.5.
	q := ADC{Bits: 2, Clip: 1.5}

	// Long enough to exercise the vector path as well as the tail.
	v := make([]float64, 16)
	want := make([]float64, 16)
	for i := range v {
		switch i % 3 {
		case 0:
			v[i], want[i] = -1, -1.5
		case 1:
			v[i], want[i] = 0, 0.5
		case 2:
			v[i], want[i] = 1, 0.5
		}
	}
	q.Quantize(v)

	for i := range want {
		if math.Abs(v[i]-want[i]) > 1e-12 {
			t.Fatalf("at %d: got %g, want %g", i, v[i], want[i])
		}
	}
}

func TestQuantizeAutoRange(t *testing.T) {
	// Auto-ranging anchors full scale at the observed peak, so the peak
	// sample survives (near-)exactly.
	q := ADC{Bits: 8}
	v := []float64{0.1, -2.0, 0.7}
	q.Quantize(v)

	if math.Abs(v[1]-(-2.0)) > 1e-9 {
		t.Fatalf("peak sample: got %g, want -2", v[1])
	}
}

func TestQuantizeRowsShareRange(t *testing.T) {
	q := ADC{Bits: 4}
	rows := [][]float64{{0.5}, {4.0}}
	q.QuantizeRows(rows)

	// With a shared vmax of ~4, the 15-level step is ~0.533; 0.5 lands
	// on a code near 0.533, not on a per-row full scale.
	if math.Abs(rows[1][0]-4.0) > 1e-9 {
		t.Fatalf("peak row: got %g, want 4", rows[1][0])
	}
	if math.Abs(rows[0][0]-0.5) < 1e-6 {
		t.Fatalf("shared range expected coarse step, got exact %g", rows[0][0])
	}
}

func TestQuantizeErrorBound(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	q := ADC{Bits: 10, Clip: 4}
	step := 2 * 4.0 / float64((1<<10)-1)

	v := make([]float64, 128)
	orig := make([]float64, len(v))
	for i := range v {
		v[i] = rng.NormFloat64()
		orig[i] = v[i]
	}
	q.Quantize(v)

	for i := range v {
		if math.Abs(v[i]-orig[i]) > step/2+1e-12 {
			t.Fatalf("at %d: error %g exceeds half step %g", i, math.Abs(v[i]-orig[i]), step/2)
		}
	}
}

func TestQuantizeMoreBitsNeverCoarser(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	x := make([]float64, 256)
	for i := range x {
		x[i] = rng.NormFloat64() * 3
	}

	prev := math.Inf(1)
	for _, bits := range []int{2, 4, 8, 12, 16} {
		q := ADC{Bits: bits, Clip: 10}
		v := append([]float64(nil), x...)
		q.Quantize(v)

		var sq float64
		for i := range v {
			d := v[i] - x[i]
			sq += d * d
		}
		rmse := math.Sqrt(sq / float64(len(x)))
		if rmse > prev {
			t.Fatalf("bits %d: rmse %g worse than previous %g", bits, rmse, prev)
		}
		prev = rmse
	}
}

func TestQuantizeAllZeros(t *testing.T) {
	q := ADC{Bits: 8}
	v := []float64{0, 0, 0}
	q.Quantize(v)
	for i := range v {
		if math.Abs(v[i]) > 1e-9 {
			t.Fatalf("at %d: got %g, want 0", i, v[i])
		}
	}
}
