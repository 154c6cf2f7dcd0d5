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

package linediff

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// render converts an edit script to a compact string, e.g. "MDI" for Equal, Delete, Insert.
func render[T any](script []Edit[T]) string {
	var sb strings.Builder
	for _, e := range script {
		switch e.Op {
		case Equal:
			sb.WriteByte('M')
		case Delete:
			sb.WriteByte('D')
		case Insert:
			sb.WriteByte('I')
		default:
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		want []Edit[string]
	}{
		{
			name: "both-empty",
			want: nil,
		},
		{
			name: "identical",
			x:    "abc",
			y:    "abc",
			want: []Edit[string]{{Equal, "a"}, {Equal, "b"}, {Equal, "c"}},
		},
		{
			name: "x-empty",
			y:    "abc",
			want: []Edit[string]{{Insert, "a"}, {Insert, "b"}, {Insert, "c"}},
		},
		{
			name: "y-empty",
			x:    "abc",
			want: []Edit[string]{{Delete, "a"}, {Delete, "b"}, {Delete, "c"}},
		},
		{
			name: "substitution",
			x:    "abc",
			y:    "axc",
			want: []Edit[string]{{Equal, "a"}, {Delete, "b"}, {Insert, "x"}, {Equal, "c"}},
		},
		{
			name: "swap",
			x:    "ab",
			y:    "ba",
			want: []Edit[string]{{Delete, "a"}, {Equal, "b"}, {Insert, "a"}},
		},
		{
			name: "ABCABBA_to_CBABAC",
			x:    "ABCABBA",
			y:    "CBABAC",
			want: []Edit[string]{
				{Delete, "A"},
				{Delete, "B"},
				{Equal, "C"},
				{Insert, "B"},
				{Equal, "A"},
				{Equal, "B"},
				{Delete, "B"},
				{Equal, "A"},
				{Insert, "C"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := strings.Split(tt.x, "")
			y := strings.Split(tt.y, "")
			got, err := Diff(x, y)
			if err != nil {
				t.Fatalf("Diff(...) failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Diff(...) result are different [-want,+got]:\n%s", diff)
			}

			gotFunc, err := DiffFunc(x, y, func(a, b string) bool { return a == b })
			if err != nil {
				t.Fatalf("DiffFunc(...) failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, gotFunc); diff != "" {
				t.Errorf("DiffFunc(...) result are different [-want,+got]:\n%s", diff)
			}

			applied, err := Apply(x, got)
			if err != nil {
				t.Fatalf("Apply(...) failed: %v", err)
			}
			if diff := cmp.Diff(y, applied, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Apply(...) result are different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestDiffFunc(t *testing.T) {
	x := []string{"Foo", "bar", "BAZ"}
	y := []string{"foo", "qux", "baz"}
	got, err := DiffFunc(x, y, strings.EqualFold)
	if err != nil {
		t.Fatalf("DiffFunc(...) failed: %v", err)
	}
	want := []Edit[string]{{Equal, "Foo"}, {Delete, "bar"}, {Insert, "qux"}, {Equal, "BAZ"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DiffFunc(...) result are different [-want,+got]:\n%s", diff)
	}
}

func TestMaxCost(t *testing.T) {
	x := []rune("abcdef")
	y := []rune("uvwxyz")

	if _, err := Diff(x, y, MaxCost(11)); !errors.Is(err, ErrCostLimit) {
		t.Errorf("Diff(..., MaxCost(11)) error = %v, want %v", err, ErrCostLimit)
	}
	got, err := Diff(x, y, MaxCost(12))
	if err != nil {
		t.Fatalf("Diff(..., MaxCost(12)) failed: %v", err)
	}
	if got, want := render(got), "DDDDDDIIIIII"; got != want {
		t.Errorf("Diff(..., MaxCost(12)) = %q, want %q", got, want)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		x       []string
		script  []Edit[string]
		want    []string
		wantErr *ScriptError
	}{
		{
			name: "empty",
			want: []string{},
		},
		{
			name:   "insert-only",
			script: []Edit[string]{{Insert, "a"}, {Insert, "b"}},
			want:   []string{"a", "b"},
		},
		{
			name:   "line-of-equal-is-ignored",
			x:      []string{"a", "b"},
			script: []Edit[string]{{Equal, "x"}, {Delete, "y"}, {Insert, "c"}},
			want:   []string{"a", "c"},
		},
		{
			name:   "unconsumed-old-lines",
			x:      []string{"a", "b", "c"},
			script: []Edit[string]{{Equal, "a"}},
			want:   []string{"a"},
		},
		{
			name:    "equal-past-end",
			x:       []string{"a"},
			script:  []Edit[string]{{Equal, "a"}, {Equal, "b"}},
			wantErr: &ScriptError{Index: 1, Op: Equal, Reason: "old sequence is exhausted"},
		},
		{
			name:    "delete-past-end",
			script:  []Edit[string]{{Insert, "a"}, {Delete, "a"}},
			wantErr: &ScriptError{Index: 1, Op: Delete, Reason: "old sequence is exhausted"},
		},
		{
			name:    "unknown-op",
			x:       []string{"a"},
			script:  []Edit[string]{{Op(7), "a"}},
			wantErr: &ScriptError{Index: 0, Op: Op(7), Reason: "unknown operation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.x, tt.script)
			if tt.wantErr != nil {
				if !errors.Is(err, ErrMalformedScript) {
					t.Fatalf("Apply(...) error = %v, want %v", err, ErrMalformedScript)
				}
				var serr *ScriptError
				if !errors.As(err, &serr) {
					t.Fatalf("Apply(...) error = %T, want *ScriptError", err)
				}
				if diff := cmp.Diff(tt.wantErr, serr); diff != "" {
					t.Errorf("Apply(...) error is different [-want,+got]:\n%s", diff)
				}
				if got != nil {
					t.Errorf("Apply(...) = %v, want nil on error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply(...) failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply(...) result are different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestScriptErrorMessage(t *testing.T) {
	err := &ScriptError{Index: 2, Op: Delete, Reason: "old sequence is exhausted"}
	want := "linediff: malformed edit script: edit 2 (Delete): old sequence is exhausted"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestDistance(t *testing.T) {
	script, err := Diff([]byte("ABCABBA"), []byte("CBABAC"))
	if err != nil {
		t.Fatalf("Diff(...) failed: %v", err)
	}
	if got, want := Distance(script), 5; got != want {
		t.Errorf("Distance(...) = %d, want %d", got, want)
	}
	if got := Distance[byte](nil); got != 0 {
		t.Errorf("Distance(nil) = %d, want 0", got)
	}
}

func TestHunks(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		opts []Option
		want []Hunk[string]
	}{
		{
			name: "identical",
			x:    "abc",
			y:    "abc",
			want: nil,
		},
		{
			name: "empty",
			want: nil,
		},
		{
			name: "x-empty",
			y:    "abc",
			want: []Hunk[string]{
				{
					PosX:  0,
					EndX:  0,
					PosY:  0,
					EndY:  3,
					Edits: []Edit[string]{{Insert, "a"}, {Insert, "b"}, {Insert, "c"}},
				},
			},
		},
		{
			name: "ABCABBA_to_CBABAC",
			x:    "ABCABBA",
			y:    "CBABAC",
			want: []Hunk[string]{
				{
					PosX: 0,
					EndX: 7,
					PosY: 0,
					EndY: 6,
					Edits: []Edit[string]{
						{Delete, "A"},
						{Delete, "B"},
						{Equal, "C"},
						{Insert, "B"},
						{Equal, "A"},
						{Equal, "B"},
						{Delete, "B"},
						{Equal, "A"},
						{Insert, "C"},
					},
				},
			},
		},
		{
			name: "ABCABBA_to_CBABAC_no_context",
			x:    "ABCABBA",
			y:    "CBABAC",
			opts: []Option{Context(0)},
			want: []Hunk[string]{
				{PosX: 0, EndX: 2, PosY: 0, EndY: 0, Edits: []Edit[string]{{Delete, "A"}, {Delete, "B"}}},
				{PosX: 3, EndX: 3, PosY: 1, EndY: 2, Edits: []Edit[string]{{Insert, "B"}}},
				{PosX: 5, EndX: 6, PosY: 4, EndY: 4, Edits: []Edit[string]{{Delete, "B"}}},
				{PosX: 7, EndX: 7, PosY: 5, EndY: 6, Edits: []Edit[string]{{Insert, "C"}}},
			},
		},
		{
			name: "separate-hunks",
			x:    "a123456789b",
			y:    "x123456789y",
			opts: []Option{Context(2)},
			want: []Hunk[string]{
				{
					PosX:  0,
					EndX:  3,
					PosY:  0,
					EndY:  3,
					Edits: []Edit[string]{{Delete, "a"}, {Insert, "x"}, {Equal, "1"}, {Equal, "2"}},
				},
				{
					PosX:  8,
					EndX:  11,
					PosY:  8,
					EndY:  11,
					Edits: []Edit[string]{{Equal, "8"}, {Equal, "9"}, {Delete, "b"}, {Insert, "y"}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := Diff(strings.Split(tt.x, ""), strings.Split(tt.y, ""))
			if err != nil {
				t.Fatalf("Diff(...) failed: %v", err)
			}
			got := Hunks(script, tt.opts...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Hunks(...) result are different [-want,+got]:\n%s", diff)
			}
		})
	}
}

// distance computes the edit distance via the longest common subsequence.
func distance(x, y []byte) int {
	n, m := len(x), len(y)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := range n {
		for j := range m {
			if x[i] == y[j] {
				lcs[i+1][j+1] = lcs[i][j] + 1
			} else {
				lcs[i+1][j+1] = max(lcs[i][j+1], lcs[i+1][j])
			}
		}
	}
	return n + m - 2*lcs[n][m]
}

func TestRandomRoundTrip(t *testing.T) {
	for _, alphabet := range []string{"ab", "abc", "abcdefghij"} {
		t.Run(fmt.Sprintf("alphabet-%d", len(alphabet)), func(t *testing.T) {
			seed := sha256.Sum256([]byte(t.Name()))
			rng := rand.New(rand.NewChaCha8(seed))
			gen := func() []byte {
				b := make([]byte, rng.IntN(40))
				for i := range b {
					b[i] = alphabet[rng.IntN(len(alphabet))]
				}
				return b
			}
			for range 500 {
				x, y := gen(), gen()
				script, err := Diff(x, y)
				if err != nil {
					t.Fatalf("Diff(%q, %q) failed: %v", x, y, err)
				}
				got, err := Apply(x, script)
				if err != nil {
					t.Fatalf("Apply(%q, ...) failed: %v", x, err)
				}
				if diff := cmp.Diff(y, got, cmpopts.EquateEmpty()); diff != "" {
					t.Fatalf("Apply(%q, Diff(%q, %q)) result are different [-want,+got]:\n%s", x, x, y, diff)
				}
				if got, want := Distance(script), distance(x, y); got != want {
					t.Fatalf("Distance(Diff(%q, %q)) = %d, want %d", x, y, got, want)
				}
				if got, want := len(script)-Distance(script), (len(x)+len(y)-distance(x, y))/2; got != want {
					t.Fatalf("number of equal edits for (%q, %q) = %d, want %d", x, y, got, want)
				}
			}
		})
	}
}

func TestOptionsNotAllowed(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Diff(..., Context(1)) did not panic")
		}
	}()
	Diff([]int{1}, []int{2}, Context(1))
}

func BenchmarkDiff(b *testing.B) {
	seed := sha256.Sum256([]byte(b.Name()))
	rng := rand.New(rand.NewChaCha8(seed))
	x := make([]int, 500)
	y := make([]int, 500)
	for i := range x {
		x[i] = rng.IntN(50)
		y[i] = rng.IntN(50)
	}
	for b.Loop() {
		Diff(x, y)
	}
}
