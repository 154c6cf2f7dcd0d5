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
	"slices"

	"znkr.io/linediff/internal/config"
	"znkr.io/linediff/internal/edits"
	"znkr.io/linediff/internal/myers"
)

// Op describes an edit operation.
type Op = edits.Op

const (
	Equal  = edits.Equal  // An element shared by both sequences
	Delete = edits.Delete // A deletion of an element from the old sequence
	Insert = edits.Insert // An insertion of an element from the new sequence
)

// Edit describes a single edit of an edit script.
//
//   - For Equal, Line is the element shared by both sequences (taken from the old sequence).
//   - For Delete, Line is the deleted element of the old sequence.
//   - For Insert, Line is the inserted element of the new sequence.
type Edit[T any] struct {
	Op   Op
	Line T
}

// Hunk describes a sequence of consecutive edits.
type Hunk[T any] struct {
	PosX, EndX int       // Start and end position in old.
	PosY, EndY int       // Start and end position in new.
	Edits      []Edit[T] // Edits to transform old[PosX:EndX] to new[PosY:EndY]
}

// Diff compares the contents of old and new and returns a minimal edit script to convert from
// one to the other.
//
// Diff returns one edit for every element of the inputs that is kept and one for every element
// that is deleted or inserted. If old and new are identical, the output consists of an Equal edit
// for every element. If both are empty, the output is nil.
//
// The following option is supported: [MaxCost]
//
// An error is only returned if the cost limit is exceeded, or in case of an internal error. In
// both cases the error matches [ErrCostLimit] or [ErrInternal] respectively.
func Diff[T comparable](old, new []T, opts ...Option) ([]Edit[T], error) {
	cfg := config.FromOptions(opts, config.MaxCost)
	ops, err := myers.Diff(len(old), len(new), func(s, t int) bool { return old[s] == new[t] }, cfg)
	if err != nil {
		return nil, err
	}
	return script(old, new, ops), nil
}

// DiffFunc compares the contents of old and new using the provided equality comparison and
// returns a minimal edit script to convert from one to the other.
//
// The following option is supported: [MaxCost]
func DiffFunc[T any](old, new []T, eq func(a, b T) bool, opts ...Option) ([]Edit[T], error) {
	cfg := config.FromOptions(opts, config.MaxCost)
	ops, err := myers.Diff(len(old), len(new), func(s, t int) bool { return eq(old[s], new[t]) }, cfg)
	if err != nil {
		return nil, err
	}
	return script(old, new, ops), nil
}

func script[T any](old, new []T, ops []edits.Op) []Edit[T] {
	if len(ops) == 0 {
		return nil
	}
	out := make([]Edit[T], len(ops))
	s, t := 0, 0
	for i, op := range ops {
		switch op {
		case Equal:
			out[i] = Edit[T]{Equal, old[s]}
			s++
			t++
		case Delete:
			out[i] = Edit[T]{Delete, old[s]}
			s++
		case Insert:
			out[i] = Edit[T]{Insert, new[t]}
			t++
		default:
			panic("never reached")
		}
	}
	return out
}

// Distance returns the number of Delete and Insert edits in script. For an edit script returned
// by [Diff] this is the edit distance between the inputs.
func Distance[T any](script []Edit[T]) int {
	d := 0
	for _, e := range script {
		if e.Op != Equal {
			d++
		}
	}
	return d
}

// Hunks groups the changes of an edit script into hunks.
//
// A hunk represents a contiguous block of changes (insertions and deletions) along with some
// surrounding Equal edits as context. The amount of context can be configured using [Context].
// Hunks whose context would overlap are merged.
//
// If script contains no changes, the output has length zero.
//
// The following option is supported: [Context]
func Hunks[T any](script []Edit[T], opts ...Option) []Hunk[T] {
	cfg := config.FromOptions(opts, config.Context)

	ops := make([]edits.Op, len(script))
	for i, e := range script {
		ops[i] = e.Op
	}

	var out []Hunk[T]
	for h := range edits.Hunks(ops, cfg.Context) {
		out = append(out, Hunk[T]{
			PosX:  h.S0,
			EndX:  h.S1,
			PosY:  h.T0,
			EndY:  h.T1,
			Edits: slices.Clip(script[h.E0:h.E1]),
		})
	}
	return out
}
