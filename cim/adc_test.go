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

package cim

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/ajroetker/go-cimsim/cim/fwht"
	"github.com/ajroetker/go-cimsim/cim/metrics"
)

// With every error source off and a near-ideal converter, the engine
// must collapse to the ideal transform.
func TestADCArrayDegenerateMatchesIdeal(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	const n = 64

	e, err := NewADCArray(n, ADCConfig{Gain: 1.0, ADCBits: 48})
	if err != nil {
		t.Fatalf("NewADCArray: %v", err)
	}

	x := randVec(rng, n)
	want, err := fwht.Transform(x)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	got, err := e.Apply(x)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("at %d: got %g, want %g", i, got[i], want[i])
		}
	}
}

func TestADCArrayGainOffset(t *testing.T) {
	// One butterfly stage at n=2: sum 4 and diff 2, then 2v+1.
	e, err := NewADCArray(2, ADCConfig{Gain: 2.0, Offset: 1.0, ADCBits: 48})
	if err != nil {
		t.Fatalf("NewADCArray: %v", err)
	}
	got, err := e.Apply([]float64{3, 1})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for i, want := range []float64{9, 5} {
		if math.Abs(got[i]-want) > 1e-9 {
			t.Fatalf("at %d: got %g, want %g", i, got[i], want)
		}
	}
}

func TestADCArrayIRDrop(t *testing.T) {
	// n=4, stage h=2: the second column of each sum/diff group is
	// attenuated by 1-alpha before the next stage sees it.
	e, err := NewADCArray(4, ADCConfig{Gain: 1.0, IRDropAlpha: 0.5, ADCBits: 48})
	if err != nil {
		t.Fatalf("NewADCArray: %v", err)
	}

	x := []float64{1, 2, 3, 4}
	got, err := e.Apply(x)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// Stage 1 (h=1): width-1 groups, ramp is identity: [3,-1,7,-1].
	// Stage 2 (h=2): sums [10,-2] ramp to [10,-1], diffs [-4,0] unchanged.
	want := []float64{10, -1, -4, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("at %d: got %g, want %g", i, got[i], want[i])
		}
	}
}

// Increasing ADC resolution with all other error sources off must not
// increase the error against the ideal transform.
func TestADCArrayMonotonicFidelity(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	const n = 64
	x := randVec(rng, n)

	want, err := fwht.Transform(x)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	prev := math.Inf(1)
	for _, bits := range []int{3, 6, 10, 16} {
		e, err := NewADCArray(n, ADCConfig{Gain: 1.0, ADCBits: bits})
		if err != nil {
			t.Fatalf("NewADCArray: %v", err)
		}
		got, err := e.Apply(x)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		rmse := metrics.RMSE(want, got)
		if rmse > prev {
			t.Fatalf("bits %d: rmse %g worse than previous %g", bits, rmse, prev)
		}
		prev = rmse
	}
}

// A fixed clip below the signal range must saturate, not fail.
func TestADCArraySaturation(t *testing.T) {
	e, err := NewADCArray(2, ADCConfig{Gain: 1.0, ADCBits: 8, ADCClip: 1.0})
	if err != nil {
		t.Fatalf("NewADCArray: %v", err)
	}
	got, err := e.Apply([]float64{10, 10})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if math.Abs(got[0]-1.0) > 1e-9 {
		t.Fatalf("sum output: got %g, want clamp at 1", got[0])
	}
}

func TestADCArrayBatchMatchesRowwiseNoiseless(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	const n, batch = 16, 4

	e, err := NewADCArray(n, ADCConfig{Gain: 1.0, ADCBits: 12, ADCClip: 64})
	if err != nil {
		t.Fatalf("NewADCArray: %v", err)
	}

	rows := make([][]float64, batch)
	for r := range rows {
		rows[r] = randVec(rng, n)
	}
	got, err := e.ApplyBatch(rows)
	if err != nil {
		t.Fatalf("ApplyBatch: %v", err)
	}

	// With a fixed clip and zero noise, batch rows are independent.
	for r := range rows {
		want, err := e.Apply(rows[r])
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		for i := range want {
			if math.Abs(got[r][i]-want[i]) > 1e-12 {
				t.Fatalf("row %d at %d: got %g, want %g", r, i, got[r][i], want[i])
			}
		}
	}
}
