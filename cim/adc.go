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
	"fmt"
	"math/rand/v2"

	"github.com/ajroetker/go-cimsim/cim/analog"
	"github.com/ajroetker/go-highway/hwy"
)

// ADCConfig holds the non-ideality parameters of an ADCArray. Fields are
// taken literally; DefaultADCConfig returns the reference profile. A nil
// RNG gives the engine its own default-seeded generator.
type ADCConfig struct {
	Gain        float64 // multiplicative error on every butterfly output
	Offset      float64 // additive error on every butterfly output
	NoiseSigma  float64 // additive Gaussian noise sigma (0 disables)
	IRDropAlpha float64 // column attenuation ramp coefficient
	ADCBits     int     // quantizer resolution, 1..52
	ADCClip     float64 // fixed ADC full scale; <= 0 auto-ranges per group
	RNG         *rand.Rand
}

// DefaultADCConfig returns unit gain, zero error terms, and an 8-bit
// auto-ranging ADC.
func DefaultADCConfig() ADCConfig {
	return ADCConfig{Gain: 1.0, ADCBits: 8}
}

// ADCArray models a crossbar that runs the transform's butterfly network
// in the numeric domain, perturbing every stage's sum and diff outputs
// with IR drop, gain/offset error, additive noise, and ADC quantization.
type ADCArray struct {
	n   int
	cfg ADCConfig
	rng *rand.Rand
	adc analog.ADC
}

// NewADCArray constructs an engine of size n. It fails with
// ErrNotPowerOfTwo when n is not a positive power of two and ErrADCBits
// when cfg.ADCBits falls outside 1..52.
func NewADCArray(n int, cfg ADCConfig) (*ADCArray, error) {
	if err := checkSize(n); err != nil {
		return nil, fmt.Errorf("cim: new adc array: %w", err)
	}
	if cfg.ADCBits <= 0 || cfg.ADCBits > maxADCBits {
		return nil, fmt.Errorf("cim: new adc array: bits=%d: %w", cfg.ADCBits, ErrADCBits)
	}
	return &ADCArray{
		n:   n,
		cfg: cfg,
		rng: newRNG(cfg.RNG),
		adc: analog.ADC{Bits: cfg.ADCBits, Clip: cfg.ADCClip},
	}, nil
}

// Size returns the configured transform size.
func (e *ADCArray) Size() int { return e.n }

// Apply transforms one vector of width Size.
func (e *ADCArray) Apply(x []float64) ([]float64, error) {
	return applyOne(x, e.ApplyBatch)
}

// ApplyBatch transforms every row of a batch. Rows share one noise draw
// pattern per stage; they are not independently seeded.
func (e *ADCArray) ApplyBatch(rows [][]float64) ([][]float64, error) {
	if err := checkBatch(rows, e.n); err != nil {
		return nil, fmt.Errorf("cim: adc array apply: %w", err)
	}

	y := cloneRows(rows)
	batch := len(y)

	for h := 1; h < e.n; h <<= 1 {
		for i := 0; i < e.n; i += h << 1 {
			sum := make([][]float64, batch)
			diff := make([][]float64, batch)
			for r := 0; r < batch; r++ {
				row := y[r]
				sum[r] = make([]float64, h)
				diff[r] = make([]float64, h)
				for j := 0; j < h; j++ {
					sum[r][j] = row[i+j] + row[i+h+j]
					diff[r][j] = row[i+j] - row[i+h+j]
				}
			}

			// Sum outputs pass the analog path before diff outputs, so
			// noise draws and auto-ranging stay in that order.
			e.nonideal(sum)
			e.nonideal(diff)

			for r := 0; r < batch; r++ {
				copy(y[r][i:i+h], sum[r])
				copy(y[r][i+h:i+(h<<1)], diff[r])
			}
		}
	}
	return y, nil
}

// nonideal distorts one group of butterfly outputs in place: IR-drop
// ramp, gain and offset, Gaussian noise, then quantization over the
// whole group.
func (e *ADCArray) nonideal(group [][]float64) {
	cols := len(group[0])
	ir := analog.Ramp(cols, e.cfg.IRDropAlpha)

	lanes := hwy.NumLanes[float64]()
	gainVec := hwy.Set(e.cfg.Gain)
	offVec := hwy.Set(e.cfg.Offset)

	for _, row := range group {
		i := 0
		for ; i+lanes <= cols; i += lanes {
			v := hwy.Mul(hwy.Load(row[i:]), hwy.Load(ir[i:]))
			hwy.Store(hwy.MulAdd(v, gainVec, offVec), row[i:])
		}
		for ; i < cols; i++ {
			row[i] = e.cfg.Gain*row[i]*ir[i] + e.cfg.Offset
		}
	}

	if e.cfg.NoiseSigma > 0 {
		for _, row := range group {
			for i := range row {
				row[i] += e.rng.NormFloat64() * e.cfg.NoiseSigma
			}
		}
	}

	e.adc.QuantizeRows(group)
}
