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

// Package fixedpoint converts real-valued samples to signed fixed-point
// codes and decomposes those codes into two's-complement bit planes, the
// digital front end of the bit-serial charge engine.
//
// # Encoding
//
// A Codec with I integer bits and F fractional bits represents reals in
// [-2^(I-1), 2^(I-1) - 2^-F] at a resolution of one LSB = 2^-F. Encode
// rounds to the nearest code and clamps to the representable range;
// out-of-range input saturates silently, modeling a hard clamp rather
// than a reportable failure.
//
// # Bit Planes
//
// Bitplanes extracts per-bit 0/1 planes from a batch of codes, ordered
// LSB to MSB. Extraction masks the code to the requested width and works
// in the unsigned domain so that shifting never sign-extends. The signed
// per-plane weights returned by PlaneWeight (2^b scaled by the LSB, with
// the top bit negated) make the decomposition exact:
//
//	code = Σ_b plane[b] · PlaneWeight(b, totalBits, lsb) / lsb
package fixedpoint
