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
	"github.com/ajroetker/go-cimsim/cim/fixedpoint"
	"github.com/ajroetker/go-cimsim/cim/fwht"
)

// ChargeSerialConfig holds the encoding widths and accumulator physics
// of a ChargeSerial engine.
type ChargeSerialConfig struct {
	IntBits       int // fixed-point integer bits, sign included
	FracBits      int // fixed-point fractional bits
	CapacitanceF  float64
	TemperatureK  float64
	WordlineAlpha float64
	BitlineAlpha  float64
	LeakDecay     float64
	RNG           *rand.Rand
}

// DefaultChargeSerialConfig returns a 6.10 fixed-point format on the
// reference 1 pF, 300 K accumulator.
func DefaultChargeSerialConfig() ChargeSerialConfig {
	return ChargeSerialConfig{IntBits: 6, FracBits: 10, CapacitanceF: 1e-12, TemperatureK: 300.0}
}

// ChargeSerial realizes the transform bit-serially: the input is encoded
// to fixed point and decomposed into two's-complement bit planes, and
// the ideal transform of each plane, scaled by that bit's signed weight,
// is accumulated step by step through the charge-sharing physics.
//
// Linearity makes the trick exact in the noiseless limit: the transform
// of the weighted plane sum equals the weighted sum of per-plane
// transforms.
type ChargeSerial struct {
	n     int
	codec fixedpoint.Codec
	accum *analog.Accumulator
}

// NewChargeSerial constructs an engine of size n. It fails with
// ErrNotPowerOfTwo on an invalid size and ErrBitWidth when the total
// code width falls outside [1, 63].
func NewChargeSerial(n int, cfg ChargeSerialConfig) (*ChargeSerial, error) {
	if err := checkSize(n); err != nil {
		return nil, fmt.Errorf("cim: new charge serial: %w", err)
	}
	total := cfg.IntBits + cfg.FracBits
	if total < 1 || total > 63 || cfg.IntBits < 1 || cfg.FracBits < 0 {
		return nil, fmt.Errorf("cim: new charge serial: %d.%d bits: %w", cfg.IntBits, cfg.FracBits, ErrBitWidth)
	}
	return &ChargeSerial{
		n:     n,
		codec: fixedpoint.Codec{IntBits: cfg.IntBits, FracBits: cfg.FracBits},
		accum: analog.NewAccumulator(analog.AccumulatorConfig{
			CapacitanceF:  cfg.CapacitanceF,
			TemperatureK:  cfg.TemperatureK,
			WordlineAlpha: cfg.WordlineAlpha,
			BitlineAlpha:  cfg.BitlineAlpha,
			LeakDecay:     cfg.LeakDecay,
			RNG:           cfg.RNG,
		}),
	}, nil
}

// Size returns the configured transform size.
func (e *ChargeSerial) Size() int { return e.n }

// Apply transforms one vector of width Size.
func (e *ChargeSerial) Apply(x []float64) ([]float64, error) {
	return applyOne(x, e.ApplyBatch)
}

// ApplyBatch transforms every row of a batch through one bit-serial
// accumulation run. The accumulator is reset at the start of every call.
func (e *ChargeSerial) ApplyBatch(rows [][]float64) ([][]float64, error) {
	if err := checkBatch(rows, e.n); err != nil {
		return nil, fmt.Errorf("cim: charge serial apply: %w", err)
	}

	codes := e.codec.EncodeBatch(rows)
	total := e.codec.TotalBits()
	planes := fixedpoint.Bitplanes(codes, total)
	lsb := e.codec.LSB()

	e.accum.Reset()
	for b := 0; b < total; b++ {
		plane := make([][]float64, len(rows))
		for r, bits := range planes[b] {
			row := make([]float64, len(bits))
			for i, v := range bits {
				row[i] = float64(v)
			}
			plane[r] = row
		}

		contrib, err := fwht.TransformBatch(plane)
		if err != nil {
			return nil, fmt.Errorf("cim: charge serial apply: %w", err)
		}
		scaleRows(contrib, fixedpoint.PlaneWeight(b, total, lsb))
		e.accum.Step(contrib)
	}

	// Copy the readout so the result survives the next Apply's reset.
	return cloneRows(e.accum.Readout()), nil
}
