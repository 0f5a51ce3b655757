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

// Package analog models the shared analog primitives of the
// compute-in-memory engines: a charge-sharing accumulator and a uniform
// ADC quantizer.
//
// # Charge Accumulator
//
// An Accumulator owns one voltage-domain state array and advances it one
// Step at a time. Each step applies a bitline attenuation ramp across
// columns and a wordline ramp across rows, decays the stored node by the
// leak factor, adds the attenuated contribution, and injects zero-mean
// Gaussian kT/C thermal noise with sigma = sqrt(k_B·T/C). Reset must be
// called before the first Step of every run; the priming step skips the
// leak decay because there is no stored charge yet.
//
// Config fields are taken literally: a zero temperature means a
// noiseless 0 K node, not a default. DefaultAccumulatorConfig returns
// the reference hardware profile (1 pF, 300 K).
//
// # ADC
//
// ADC quantizes voltages uniformly to 2^Bits levels over [-vmax, vmax].
// With a positive Clip, vmax is fixed; otherwise the converter
// auto-ranges to the observed peak of each conversion group, so the step
// size is data-dependent per call. Values beyond vmax clamp silently,
// modeling the converter's hard full-scale limit.
package analog
