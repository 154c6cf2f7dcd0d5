// Copyright 2025 Florian Zenker (flo@znkr.io)
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

package benchmarks

import (
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
	"znkr.io/linediff"
	"znkr.io/linediff/textdiff"
)

type testdata struct {
	name string
	x, y []byte
}

func loadTestdata(t testing.TB) []testdata {
	t.Helper()
	testFiles, err := filepath.Glob("testdata/*.test")
	if err != nil {
		t.Fatalf("Failed to read testdata: %v", err)
	}
	var tests []testdata
	for _, filename := range testFiles {
		ar, err := txtar.ParseFile(filename)
		if err != nil {
			t.Fatalf("failed to parse test case: %v", err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(filename, "testdata/"), ".test")
		test := testdata{
			name: name,
		}

		for _, f := range ar.Files {
			switch f.Name {
			case "x":
				test.x = f.Data
			case "y":
				test.y = f.Data
			default:
				t.Fatalf("unknown file in archive: %v", f)
			}
		}
		tests = append(tests, test)
	}
	return tests
}

// distance returns the minimal number of edits for td.
func distance(t testing.TB, td testdata) int {
	t.Helper()
	script, err := textdiff.Diff(td.x, td.y)
	if err != nil {
		t.Fatalf("Diff(...) failed: %v", err)
	}
	return linediff.Distance(script)
}

// TestNoImplBeatsMinimal checks that no implementation finds fewer edits than the minimal edit
// script.
func TestNoImplBeatsMinimal(t *testing.T) {
	for _, td := range loadTestdata(t) {
		d := distance(t, td)
		for _, impl := range Impls {
			if got := CountEdits(impl.Diff(td.x, td.y)); got < d {
				t.Errorf("%s on %s: %d edits, fewer than minimal %d", impl.Name, td.name, got, d)
			}
		}
		if got := CountEdits(Impls[0].Diff(td.x, td.y)); got != d {
			t.Errorf("%s on %s: %d edits, want %d", Impls[0].Name, td.name, got, d)
		}
	}
}

func BenchmarkDiffs(b *testing.B) {
	minimal := make(map[string]int)
	for _, td := range loadTestdata(b) {
		minimal[td.name] = distance(b, td)
	}

	for _, impl := range Impls {
		b.Run("impl="+impl.Name, func(b *testing.B) {
			for _, td := range loadTestdata(b) {
				b.Run("name="+td.name, func(b *testing.B) {
					for b.Loop() {
						_ = impl.Diff(td.x, td.y)
					}
					b.StopTimer()

					edits := CountEdits(impl.Diff(td.x, td.y))
					b.ReportMetric(float64(edits), "edits")
					b.ReportMetric(float64(edits-minimal[td.name]), "excess-edits")
				})
			}
		})
	}
}
