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
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/ajroetker/go-highway/hwy"
)

// Sentinel errors. Construction-time validation surfaces
// ErrNotPowerOfTwo, ErrADCBits, and ErrBitWidth; Apply surfaces
// ErrWidth before any state mutation or randomness consumption.
var (
	ErrNotPowerOfTwo = errors.New("cim: size must be a positive power of two")
	ErrADCBits       = errors.New("cim: adc bits must be in 1..52")
	ErrBitWidth      = errors.New("cim: fixed-point width out of range")
	ErrWidth         = errors.New("cim: input width does not match configured size")
)

// maxADCBits caps converter resolution at the float64 mantissa width,
// keeping the level count and step size exactly representable.
const maxADCBits = 52

// Engine is the contract shared by the three hardware models. Apply
// transforms one vector; ApplyBatch transforms each row of a batch with
// one shared noise draw pattern. Inputs are never modified.
type Engine interface {
	Size() int
	Apply(x []float64) ([]float64, error)
	ApplyBatch(rows [][]float64) ([][]float64, error)
}

// newRNG returns rng, or a freshly seeded generator the engine owns
// thereafter when rng is nil.
func newRNG(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func checkSize(n int) error {
	if n <= 0 || n&(n-1) != 0 {
		return fmt.Errorf("n=%d: %w", n, ErrNotPowerOfTwo)
	}
	return nil
}

// checkBatch validates every row width against n before any engine
// touches its state.
func checkBatch(rows [][]float64, n int) error {
	if len(rows) == 0 {
		return fmt.Errorf("empty batch: %w", ErrWidth)
	}
	for r, row := range rows {
		if len(row) != n {
			return fmt.Errorf("row %d width %d, want %d: %w", r, len(row), n, ErrWidth)
		}
	}
	return nil
}

func cloneRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for r, row := range rows {
		out[r] = append([]float64(nil), row...)
	}
	return out
}

// scaleRows multiplies every element of every row by s in place.
func scaleRows(rows [][]float64, s float64) {
	lanes := hwy.NumLanes[float64]()
	sVec := hwy.Set(s)
	for _, row := range rows {
		i := 0
		for ; i+lanes <= len(row); i += lanes {
			hwy.Store(hwy.Mul(hwy.Load(row[i:]), sVec), row[i:])
		}
		for ; i < len(row); i++ {
			row[i] *= s
		}
	}
}

// applyOne routes a 1D vector through a batch implementation and
// unwraps the single result row, preserving shape symmetry.
func applyOne(x []float64, applyBatch func([][]float64) ([][]float64, error)) ([]float64, error) {
	rows, err := applyBatch([][]float64{x})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}
