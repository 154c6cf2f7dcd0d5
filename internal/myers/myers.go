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

import (
	"errors"
	"fmt"
	"slices"

	"znkr.io/linediff/internal/config"
	"znkr.io/linediff/internal/edits"
)

var (
	// ErrInternal is returned if the search or the backtracking end up in a state that is
	// impossible for a correct implementation.
	ErrInternal = errors.New("linediff: internal error")

	// ErrCostLimit is returned if the edit distance exceeds the configured limit.
	ErrCostLimit = errors.New("linediff: cost limit exceeded")
)

// Diff computes a minimal edit script transforming a sequence of length n into a sequence of
// length m. The function eq reports whether x[s] and y[t] are equal.
func Diff(n, m int, eq func(s, t int) bool, cfg config.Config) ([]edits.Op, error) {
	tr, err := Search(n, m, eq, cfg.MaxCost)
	if err != nil {
		return nil, err
	}
	return Backtrack(n, m, tr)
}

// Search finds the edit distance between a sequence of length n and one of length m and returns
// the trace of the search. If maxCost > 0, the search is aborted once the edit distance exceeds
// it.
func Search(n, m int, eq func(s, t int) bool, maxCost int) (Trace, error) {
	v := NewVector()
	var tr Trace
	for d := 0; d <= n+m; d++ {
		if maxCost > 0 && d > maxCost {
			return nil, fmt.Errorf("%w: more than %d edits", ErrCostLimit, maxCost)
		}
		next := v.Extend(d)
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || k != d && v.Get(k-1) < v.Get(k+1) {
				x = v.Get(k + 1) // step down
			} else {
				x = v.Get(k-1) + 1 // step right
			}
			y := x - k
			for x < n && y < m && eq(x, y) {
				x++
				y++
			}
			next.Set(k, x)
			if x >= n && y >= m {
				return append(tr, next), nil
			}
		}
		tr = append(tr, next)
		v = next
	}
	return nil, fmt.Errorf("%w: no edit script with at most %d edits", ErrInternal, n+m)
}

// Backtrack reconstructs the edit script from a trace produced by [Search] for the same n and m.
func Backtrack(n, m int, tr Trace) ([]edits.Op, error) {
	if len(tr) == 0 {
		return nil, fmt.Errorf("%w: empty trace", ErrInternal)
	}
	if n+m == 0 {
		return nil, nil
	}

	// The script is assembled back to front.
	ops := make([]edits.Op, 0, n+m)
	x, y := n, m
	for d := tr.Depth(); d > 0; d-- {
		v := tr[d]
		k := x - y
		var prevK int
		if k == -d || k != d && v.Get(k-1) < v.Get(k+1) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v.Get(prevK)
		prevY := prevX - prevK

		// (sx, sy) is the point right after the non-diagonal step.
		sx, sy, op := prevX, prevY+1, edits.Insert
		if prevK == k-1 {
			sx, sy, op = prevX+1, prevY, edits.Delete
		}
		if prevX < 0 || prevY < 0 || sx > x || sy > y || x-sx != y-sy {
			return nil, fmt.Errorf("%w: inconsistent trace at d=%d, (%d, %d) from (%d, %d)", ErrInternal, d, x, y, prevX, prevY)
		}
		for ; x > sx; x-- {
			ops = append(ops, edits.Equal)
		}
		ops = append(ops, op)
		x, y = prevX, prevY
	}
	if x != y {
		return nil, fmt.Errorf("%w: path does not start at (0, 0), ended at (%d, %d)", ErrInternal, x, y)
	}
	for ; x > 0; x-- {
		ops = append(ops, edits.Equal)
	}

	slices.Reverse(ops)
	return ops, nil
}
