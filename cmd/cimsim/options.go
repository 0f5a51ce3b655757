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
	"flag"
	"fmt"
)

// Engine names accepted by -engine.
const (
	EngineADC    = "adc"
	EngineCharge = "charge"
	EngineXbar   = "xbar"
)

// Options holds all CLI flags. Engine-specific fields map 1:1 onto the
// corresponding cim config structs.
type Options struct {
	Engine string
	Size   int

	// ADC engine
	ADCBits     int
	ADCClip     float64
	NoiseSigma  float64
	IRDropAlpha float64
	Gain        float64
	Offset      float64

	// Charge engine
	IntBits  int
	FracBits int
	CapF     float64
	TempK    float64
	WlAlpha  float64
	BlAlpha  float64
	Leak     float64

	// Xbar engine
	XG0      float64
	XDACGain float64
	XRF      float64
	XADCBits int
	XADCClip float64
	XNoise   float64
	XWlAlpha float64
	XBlAlpha float64

	Repeat int
	Seed   uint64

	CPUInfo bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: compute-in-memory Hadamard transform simulator

Runs a hardware engine (adc | charge | xbar) on random inputs and
reports mean RMSE/PSNR against the ideal transform.

Version: %s

Usage of %s:
`, name, version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returning an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Engine, "engine", EngineADC, "engine/model to use: adc | charge | xbar [adc]")
	fs.IntVar(&opt.Size, "size", 256, "transform size, power of two [256]")

	// ADC engine params
	fs.IntVar(&opt.ADCBits, "adc-bits", 8, "ADC resolution in bits [8]")
	fs.Float64Var(&opt.ADCClip, "adc-clip", 0, "fixed ADC full scale (0 = auto-range) [0]")
	fs.Float64Var(&opt.NoiseSigma, "noise-sigma", 0, "additive Gaussian noise sigma [0]")
	fs.Float64Var(&opt.IRDropAlpha, "ir-drop-alpha", 0, "IR-drop attenuation coefficient [0]")
	fs.Float64Var(&opt.Gain, "gain", 1.0, "crossbar gain [1]")
	fs.Float64Var(&opt.Offset, "offset", 0, "crossbar offset [0]")

	// Charge engine params
	fs.IntVar(&opt.IntBits, "int-bits", 6, "integer bits for input encoding [6]")
	fs.IntVar(&opt.FracBits, "frac-bits", 10, "fractional bits for input encoding [10]")
	fs.Float64Var(&opt.CapF, "cap-f", 1e-12, "accumulator capacitance in Farads [1e-12]")
	fs.Float64Var(&opt.TempK, "temp-k", 300.0, "temperature in Kelvin [300]")
	fs.Float64Var(&opt.WlAlpha, "wl-alpha", 0, "wordline attenuation coefficient [0]")
	fs.Float64Var(&opt.BlAlpha, "bl-alpha", 0, "bitline attenuation coefficient [0]")
	fs.Float64Var(&opt.Leak, "leak", 0, "leakage decay per step (0..1) [0]")

	// Xbar engine params
	fs.Float64Var(&opt.XG0, "x-g0", 10e-6, "unit conductance per +1 entry in Siemens [10e-6]")
	fs.Float64Var(&opt.XDACGain, "x-dac-gain", 1.0, "DAC gain in volts per numeric unit [1]")
	fs.Float64Var(&opt.XRF, "x-rf", 100e3, "TIA feedback resistance in Ohms [100e3]")
	fs.IntVar(&opt.XADCBits, "x-adc-bits", 10, "ADC bits in sense path [10]")
	fs.Float64Var(&opt.XADCClip, "x-adc-clip", 0, "ADC full scale in volts (0 = auto-range) [0]")
	fs.Float64Var(&opt.XNoise, "x-noise", 0, "sense voltage noise sigma in volts [0]")
	fs.Float64Var(&opt.XWlAlpha, "x-wl-alpha", 0, "wordline attenuation of the second row [0]")
	fs.Float64Var(&opt.XBlAlpha, "x-bl-alpha", 0, "bitline attenuation across a block [0]")

	fs.IntVar(&opt.Repeat, "repeat", 1, "repeat runs and average metrics [1]")
	fs.Uint64Var(&opt.Seed, "seed", 123, "random seed [123]")

	fs.BoolVar(&opt.CPUInfo, "cpuinfo", false, "print SIMD dispatch and CPU features, then exit [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version || opt.CPUInfo {
		return opt, nil
	}

	switch opt.Engine {
	case EngineADC, EngineCharge, EngineXbar:
	default:
		return opt, fmt.Errorf("unknown engine %q (want adc | charge | xbar)", opt.Engine)
	}
	if opt.Repeat < 1 {
		return opt, fmt.Errorf("repeat must be at least 1, got %d", opt.Repeat)
	}
	return opt, nil
}
