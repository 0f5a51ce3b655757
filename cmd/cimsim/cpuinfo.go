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

package main

import (
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-highway/hwy"
)

// printCPUInfo reports which SIMD path the engines' vector kernels
// dispatch to on this machine.
func printCPUInfo(w io.Writer) {
	fmt.Fprintf(w, "GOOS: %s\n", runtime.GOOS)
	fmt.Fprintf(w, "GOARCH: %s\n", runtime.GOARCH)
	fmt.Fprintf(w, "NumCPU: %d\n", runtime.NumCPU())
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Highway dispatch level: %s\n", hwy.CurrentLevel())
	fmt.Fprintf(w, "Highway dispatch width: %d bytes\n", hwy.CurrentWidth())
	fmt.Fprintf(w, "Highway dispatch name: %s\n", hwy.CurrentName())

	switch runtime.GOARCH {
	case "arm64":
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  HasASIMD: %v (NEON baseline)\n", cpu.ARM64.HasASIMD)
		fmt.Fprintf(w, "  HasFP:    %v (floating point)\n", cpu.ARM64.HasFP)
		fmt.Fprintf(w, "  HasSVE:   %v (Scalable Vector Extension)\n", cpu.ARM64.HasSVE)
		fmt.Fprintf(w, "  HasSVE2:  %v (SVE2)\n", cpu.ARM64.HasSVE2)
	case "amd64":
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  HasAVX2:    %v\n", cpu.X86.HasAVX2)
		fmt.Fprintf(w, "  HasAVX512F: %v\n", cpu.X86.HasAVX512F)
		fmt.Fprintf(w, "  HasFMA:     %v\n", cpu.X86.HasFMA)
	}
}
