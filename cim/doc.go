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

// Package cim simulates how compute-in-memory hardware executes the Fast
// Walsh-Hadamard Transform with non-ideal analog components: finite DACs
// and ADCs, resistive crossbar currents, charge-sharing accumulation,
// thermal noise, and positional attenuation.
//
// # Engines
//
// Three engines reproduce the transform's butterfly network at
// increasing physical granularity:
//
//   - ADCArray perturbs every butterfly output numerically with IR-drop
//     attenuation, gain/offset error, Gaussian noise, and ADC
//     quantization.
//   - ChargeSerial realizes the transform bit-serially: fixed-point
//     encode, per-bit-plane ideal transforms scaled by signed bit
//     weights, accumulated through a charge-sharing node.
//   - Xbar walks every individual butterfly pair through an explicit
//     crossbar signal path: DAC, wordline attenuation, differential
//     conductance currents, bitline attenuation, transimpedance sensing,
//     sense noise, and ADC conversion.
//
// All engines share one contract: construct once with a power-of-two
// size n and physical constants, then Apply any number of vectors of
// width n (or ApplyBatch for batches). Construction fails fast on an
// invalid size or ADC width; Apply fails on a width mismatch before
// consuming any randomness. Out-of-range signals saturate silently, as
// the hardware would clamp them.
//
// Each Apply runs to completion on the calling goroutine. Engines are
// not safe for concurrent use: the noise generator and (for
// ChargeSerial) the accumulator state advance across calls. Reseed or
// inject a fresh generator per run for reproducible results.
package cim
