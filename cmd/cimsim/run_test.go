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
	"bytes"
	"strings"
	"testing"
)

func runCapture(t *testing.T, argv ...string) (string, string, int) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := run(argv, &out, &errBuf)
	return out.String(), errBuf.String(), code
}

func TestRunReportsMetrics(t *testing.T) {
	for _, engine := range []string{EngineADC, EngineCharge, EngineXbar} {
		t.Run(engine, func(t *testing.T) {
			out, errOut, code := runCapture(t,
				"-engine", engine, "-size", "32", "-repeat", "2", "-seed", "7")
			if code != 0 {
				t.Fatalf("exit %d, stderr: %q", code, errOut)
			}
			if !strings.Contains(out, "engine="+engine) || !strings.Contains(out, "N=32") {
				t.Fatalf("missing header: %q", out)
			}
			if !strings.Contains(out, "RMSE=") || !strings.Contains(out, "PSNR=") {
				t.Fatalf("missing metrics: %q", out)
			}
		})
	}
}

func TestRunSameSeedReproduces(t *testing.T) {
	args := []string{"-engine", "adc", "-size", "64", "-noise-sigma", "0.1", "-seed", "99"}
	first, _, _ := runCapture(t, args...)
	second, _, _ := runCapture(t, args...)
	if first != second {
		t.Fatalf("same seed diverged:\n%q\n%q", first, second)
	}
}

func TestRunRejectsBadSize(t *testing.T) {
	_, errOut, code := runCapture(t, "-size", "100")
	if code == 0 {
		t.Fatal("expected nonzero exit for non-power-of-two size")
	}
	if !strings.Contains(errOut, "power of two") {
		t.Fatalf("stderr: %q", errOut)
	}
}

func TestRunVersion(t *testing.T) {
	out, _, code := runCapture(t, "-version")
	if code != 0 || !strings.Contains(out, version) {
		t.Fatalf("exit %d, out %q", code, out)
	}
}

func TestRunCPUInfo(t *testing.T) {
	out, _, code := runCapture(t, "-cpuinfo")
	if code != 0 || !strings.Contains(out, "Highway dispatch") {
		t.Fatalf("exit %d, out %q", code, out)
	}
}
