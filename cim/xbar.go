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
)

// XbarConfig holds the electrical constants of a differential crossbar.
type XbarConfig struct {
	G0         float64 // unit conductance per +1 entry, Siemens
	DACGain    float64 // volts per numeric unit
	RF         float64 // TIA feedback resistance, Ohms
	ADCBits    int     // sense-path ADC resolution, 1..52
	ADCClip    float64 // fixed ADC full scale in volts; <= 0 auto-ranges per pair
	NoiseSigma float64 // sense-voltage noise sigma in volts (0 disables)
	WlAlpha    float64 // attenuation of the second wordline
	BlAlpha    float64 // bitline attenuation ramp across a block
	RNG        *rand.Rand
}

// DefaultXbarConfig returns 10 µS cells, a unit DAC, a 100 kΩ TIA, and a
// 10-bit auto-ranging ADC.
func DefaultXbarConfig() XbarConfig {
	return XbarConfig{G0: 10e-6, DACGain: 1.0, RF: 100e3, ADCBits: 10}
}

// Xbar is the most granular engine: every butterfly pair at every stage
// is sensed as its own 2x2 differential crossbar, walking the full
// signal path from DAC to ADC and back to numeric units.
type Xbar struct {
	n   int
	cfg XbarConfig
	rng *rand.Rand
	adc analog.ADC
}

// NewXbar constructs an engine of size n. It fails with ErrNotPowerOfTwo
// when n is not a positive power of two and ErrADCBits when cfg.ADCBits
// falls outside 1..52.
func NewXbar(n int, cfg XbarConfig) (*Xbar, error) {
	if err := checkSize(n); err != nil {
		return nil, fmt.Errorf("cim: new xbar: %w", err)
	}
	if cfg.ADCBits <= 0 || cfg.ADCBits > maxADCBits {
		return nil, fmt.Errorf("cim: new xbar: bits=%d: %w", cfg.ADCBits, ErrADCBits)
	}
	return &Xbar{
		n:   n,
		cfg: cfg,
		rng: newRNG(cfg.RNG),
		adc: analog.ADC{Bits: cfg.ADCBits, Clip: cfg.ADCClip},
	}, nil
}

// Size returns the configured transform size.
func (e *Xbar) Size() int { return e.n }

// Apply transforms one vector of width Size.
func (e *Xbar) Apply(x []float64) ([]float64, error) {
	return applyOne(x, e.ApplyBatch)
}

// ApplyBatch transforms every row of a batch. Pairs are traversed
// sequentially in block-then-position order; attenuation, noise draws,
// and auto-ranging depend on the pair position, so there is no
// columnwise vectorization across a block.
func (e *Xbar) ApplyBatch(rows [][]float64) ([][]float64, error) {
	if err := checkBatch(rows, e.n); err != nil {
		return nil, fmt.Errorf("cim: xbar apply: %w", err)
	}

	y := cloneRows(rows)
	batch := len(y)
	cfg := e.cfg

	// Numeric units out of the sense path: V_adc / (rf * g0 * dacGain).
	senseGain := cfg.RF * cfg.G0 * cfg.DACGain

	vSum := make([]float64, batch)
	vDiff := make([]float64, batch)

	for h := 1; h < e.n; h <<= 1 {
		for i := 0; i < e.n; i += h << 1 {
			for j := 0; j < h; j++ {
				blScale := 1.0
				if h > 1 {
					blScale = 1.0 - cfg.BlAlpha*float64(j)/float64(h-1)
				}

				for r := 0; r < batch; r++ {
					// DAC conversion and wordline attenuation; the first
					// row of the pair is the reference, the second sits
					// one wordline further out.
					v0 := cfg.DACGain * y[r][i+j]
					v1 := cfg.DACGain * y[r][i+h+j] * (1.0 - cfg.WlAlpha)

					// Differential columns: (+1,+1) senses the sum,
					// (+1,-1) the difference.
					iSum := cfg.G0 * (v0 + v1) * blScale
					iDiff := cfg.G0 * (v0 - v1) * blScale

					vSum[r] = iSum * cfg.RF
					vDiff[r] = iDiff * cfg.RF
				}

				if cfg.NoiseSigma > 0 {
					for r := 0; r < batch; r++ {
						vSum[r] += e.rng.NormFloat64() * cfg.NoiseSigma
					}
					for r := 0; r < batch; r++ {
						vDiff[r] += e.rng.NormFloat64() * cfg.NoiseSigma
					}
				}

				// Each output column converts on its own ADC reference.
				e.adc.Quantize(vSum)
				e.adc.Quantize(vDiff)

				for r := 0; r < batch; r++ {
					y[r][i+j] = vSum[r] / senseGain
					y[r][i+h+j] = vDiff[r] / senseGain
				}
			}
		}
	}
	return y, nil
}
