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

// Package edits contains the internal edit representation shared by the myers algorithm, the
// public API, and the wire format.
package edits

import "iter"

// Op describes a single edit operation. The numeric values are part of the wire format and must
// not change.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Equal  Op = iota // Both inputs share the element
	Delete           // The element is removed from x
	Insert           // The element is added from y
)

// Valid reports whether op is one of Equal, Delete or Insert.
func (op Op) Valid() bool {
	return op >= Equal && op <= Insert
}

// Hunk describes a sequence of consecutive edits.
type Hunk struct {
	S0, S1 int // Start and end of the hunk in x.
	T0, T1 int // Start and end of the hunk in y.
	E0, E1 int // Start and end of the hunk in the edit script.
}

// Hunks groups the changes in ops into hunks. Every hunk contains up to context Equal edits
// before its first and after its last change. Hunks that would be separated by 2*context or
// fewer Equal edits are merged.
func Hunks(ops []Op, context int) iter.Seq[Hunk] {
	return func(yield func(Hunk) bool) {
		context = max(0, context)

		// Positions in x and y before every edit.
		sx := make([]int, len(ops)+1)
		ty := make([]int, len(ops)+1)
		for i, op := range ops {
			sx[i+1], ty[i+1] = sx[i], ty[i]
			if op != Insert {
				sx[i+1]++
			}
			if op != Delete {
				ty[i+1]++
			}
		}
		hunk := func(e0, last int) Hunk {
			e1 := min(last+1+context, len(ops))
			return Hunk{sx[e0], sx[e1], ty[e0], ty[e1], e0, e1}
		}

		e0, last := -1, -1 // start of the current hunk and its last change
		for i, op := range ops {
			if op == Equal {
				continue
			}
			if e0 >= 0 && i-last-1 > 2*context {
				if !yield(hunk(e0, last)) {
					return
				}
				e0 = -1
			}
			if e0 < 0 {
				e0 = max(0, i-context)
			}
			last = i
		}
		if e0 >= 0 {
			yield(hunk(e0, last))
		}
	}
}
