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

package myers

// Vector maps diagonals to the furthest x reached on them for one edit distance d. It covers the
// diagonals -(d+1) to d+1. Diagonals that have not been set read as 0.
type Vector struct {
	off int
	xs  []int
}

// NewVector returns an empty vector for d = 0.
func NewVector() Vector {
	return Vector{off: 1, xs: make([]int, 3)}
}

// Get returns the furthest x on diagonal k.
func (v Vector) Get(k int) int {
	i := k + v.off
	if i < 0 || i >= len(v.xs) {
		return 0
	}
	return v.xs[i]
}

// Set records x as the furthest point on diagonal k. The diagonal must be covered by v.
func (v Vector) Set(k, x int) {
	v.xs[k+v.off] = x
}

// Extend returns a copy of v that covers the diagonals for edit distance d.
func (v Vector) Extend(d int) Vector {
	off := max(v.off, d+1)
	w := Vector{off: off, xs: make([]int, 2*off+1)}
	copy(w.xs[off-v.off:], v.xs)
	return w
}

// Len returns the number of diagonals covered by v.
func (v Vector) Len() int { return len(v.xs) }

// Trace holds one vector for every edit distance explored by [Search]. A search that finds an
// edit script with d edits produces a trace with d+1 vectors.
type Trace []Vector

// Depth returns the edit distance the trace ends at.
func (tr Trace) Depth() int { return len(tr) - 1 }
