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

// Package myers contains an implementation of the greedy shortest edit script algorithm from
// Myers' paper, in its basic form: a forward search that keeps a snapshot of the search state for
// every edit distance, followed by a backtracking pass over those snapshots.
//
// No heuristics are applied and the linear space refinement is not used. The result is always a
// minimal edit script and, for a given input, always the same one. The runtime is O((N+M)D) and
// the trace needs O(D²) memory where N = len(x), M = len(y) and D is the number of edits.
//
// # Edit Graph
//
// Transforming x = "abc" into y = "axc" can be drawn as a grid:
//
//	(0,0)   a   b   c
//	    ┌───┬───┬───┐ 0
//	 a  │ ╲ │   │   │
//	    ├───┼───┼───┤ 1
//	 x  │   │   │   │
//	    ├───┼───┼───┤ 2
//	 c  │   │   │ ╲ │
//	    └───┴───┴───┘ 3
//	    0   1   2   3   (3,3)
//
// A vertex (x, y) is the state where the first x elements of the old sequence and the first y
// elements of the new sequence have been consumed. A step to the right deletes old[x], a step
// down inserts new[y] and a diagonal step, which only exists where old[x] == new[y], keeps the
// element. Horizontal and vertical steps cost 1, diagonal steps are free. A minimal edit script
// is a cheapest path from (0,0) to (N,M).
//
// # Search
//
// Vertices are grouped by diagonal k = x - y. A path with d non-diagonal steps ends on one of the
// diagonals -d, -d+2, ..., d. For every d the search computes, for each of those diagonals, the
// furthest x any such path can reach. The furthest point on diagonal k is found by taking the
// furthest (d-1)-point on diagonal k+1 followed by a step down, or the one on diagonal k-1
// followed by a step right, whichever reaches further, and then following free diagonal steps
// as long as possible. On the outermost diagonals only one of the two neighbors exists.
//
// Diagonals that have not been visited yet read as x = 0. This default, together with the rule to
// prefer k+1 on ties, determines which of several minimal scripts is produced.
//
// The search stops as soon as a point reaches (N,M). The current d is the edit distance.
//
// # Backtracking
//
// The search keeps a copy of the state table after every d, the trace. Starting at (N,M), the
// backtracking pass uses the table of depth d to recompute which neighbor diagonal the search
// extended from, which locates the previous point and the single non-diagonal step between
// them. Doing this for d, d-1, ..., 1 recovers the whole path. The choice is recomputed instead of
// stored, so the table only holds one integer per diagonal.
//
// ## References:
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
package myers
