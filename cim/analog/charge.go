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

	"github.com/ajroetker/go-highway/hwy"
)

// Boltzmann is the Boltzmann constant in J/K.
const Boltzmann = 1.380649e-23

// minCapacitance floors the capacitance when computing the kT/C sigma so
// a zero-valued config cannot divide by zero.
const minCapacitance = 1e-30

// AccumulatorConfig holds the physical constants of a charge-sharing
// accumulator. Fields are taken literally; see DefaultAccumulatorConfig
// for the reference profile. A nil RNG gives the accumulator its own
// default-seeded generator.
type AccumulatorConfig struct {
	CapacitanceF  float64 // storage capacitance in Farads
	TemperatureK  float64 // temperature in Kelvin
	WordlineAlpha float64 // row attenuation ramp coefficient
	BitlineAlpha  float64 // column attenuation ramp coefficient
	LeakDecay     float64 // per-step stored-charge decay in [0, 1]
	RNG           *rand.Rand
}

// DefaultAccumulatorConfig returns the reference hardware profile: 1 pF
// at 300 K with no attenuation or leakage.
func DefaultAccumulatorConfig() AccumulatorConfig {
	return AccumulatorConfig{CapacitanceF: 1e-12, TemperatureK: 300.0}
}

// Accumulator models a capacitive storage node accumulating successive
// voltage contributions. The state array is exclusively owned by the
// accumulator and persists across Step calls until the next Reset.
type Accumulator struct {
	cfg    AccumulatorConfig
	rng    *rand.Rand
	vAcc   [][]float64
	primed bool
}

// NewAccumulator constructs an accumulator with the given physical
// constants. The state starts unprimed, as after Reset.
func NewAccumulator(cfg AccumulatorConfig) *Accumulator {
	rng := cfg.RNG
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Accumulator{cfg: cfg, rng: rng}
}

// NoiseSigma returns the kT/C thermal noise standard deviation in volts.
func (a *Accumulator) NoiseSigma() float64 {
	c := a.cfg.CapacitanceF
	if c < minCapacitance {
		c = minCapacitance
	}
	return math.Sqrt(Boltzmann * a.cfg.TemperatureK / c)
}

// Reset discards the stored charge. The next Step primes the node and
// skips the leak decay.
func (a *Accumulator) Reset() {
	a.vAcc = nil
	a.primed = false
}

// Step accumulates one voltage contribution of shape [batch][n] and
// returns the updated state. The returned slices alias the internal
// state; callers that keep the result across further steps must copy.
//
// Noise is drawn per node in row-major order from the accumulator's
// generator, one pattern covering the whole batch.
func (a *Accumulator) Step(vIn [][]float64) [][]float64 {
	batch := len(vIn)
	n := 0
	if batch > 0 {
		n = len(vIn[0])
	}

	if !a.primed {
		a.vAcc = make([][]float64, batch)
		for r := range a.vAcc {
			a.vAcc[r] = make([]float64, n)
		}
	}

	bl := Ramp(n, a.cfg.BitlineAlpha)
	wl := Ramp(batch, a.cfg.WordlineAlpha)
	keep := 1.0 - a.cfg.LeakDecay
	lanes := hwy.NumLanes[float64]()

	for r := 0; r < batch; r++ {
		acc := a.vAcc[r]
		row := vIn[r]
		rowScale := hwy.Set(wl[r])
		keepVec := hwy.Set(keep)

		i := 0
		for ; i+lanes <= n; i += lanes {
			v := hwy.Mul(hwy.Mul(hwy.Load(row[i:]), hwy.Load(bl[i:])), rowScale)
			node := hwy.Load(acc[i:])
			if a.primed {
				node = hwy.Mul(node, keepVec)
			}
			hwy.Store(hwy.Add(node, v), acc[i:])
		}
		for ; i < n; i++ {
			v := row[i] * bl[i] * wl[r]
			if a.primed {
				acc[i] = acc[i]*keep + v
			} else {
				acc[i] += v
			}
		}
	}

	if sigma := a.NoiseSigma(); sigma > 0 {
		for r := 0; r < batch; r++ {
			acc := a.vAcc[r]
			for i := range acc {
				acc[i] += a.rng.NormFloat64() * sigma
			}
		}
	}

	a.primed = true
	return a.vAcc
}

// Readout returns the current stored voltage without mutation. The
// slices alias the internal state.
func (a *Accumulator) Readout() [][]float64 {
	return a.vAcc
}

// Ramp returns the linear attenuation profile 1 - alpha*i/(n-1) over n
// positions (all ones when n < 2). It models IR drop and wordline or
// bitline degradation along a resistive line.
func Ramp(n int, alpha float64) []float64 {
	s := make([]float64, n)
	denom := float64(n - 1)
	if denom < 1 {
		denom = 1
	}
	for i := range s {
		s[i] = 1.0 - alpha*float64(i)/denom
	}
	return s
}
