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

// Package fwht provides the ideal Fast Walsh-Hadamard Transform used as
// ground truth by the compute-in-memory engines.
//
// The transform is unnormalized: applying it twice to a vector of length n
// yields n times the original vector. This self-inverse-up-to-scale
// property is the core correctness invariant of the package and of
// everything built on top of it.
//
// # Transform Functions
//
//	Transform(x)        // FWHT of one vector, returns a new slice
//	TransformBatch(x)   // row-wise FWHT of a batch of vectors
//
// Both fail with ErrLength when the vector length is zero or not a power
// of two.
//
// # Butterfly Structure
//
// The transform runs the standard in-place butterfly recursion: for stage
// half-widths h = 1, 2, 4, ..., n/2, every block of 2h positions is split
// into halves (left, right) and each pair (left[j], right[j]) is replaced
// by (left[j]+right[j], left[j]-right[j]). Block halves wide enough to
// fill a vector register go through hwy; the remainder is scalar.
//
// # Reference Matrix Path
//
// Matrix(n) builds the order-n Sylvester Hadamard matrix (recursive block
// doubling [[H, H], [H, -H]]) as a row-major slice, and MatrixTransform
// computes the dense product H·x through hwy/contrib/matvec. The matrix
// path is O(n²) and exists for verification and testing, not for the
// simulation hot path.
package fwht
