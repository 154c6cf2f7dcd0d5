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

// Package linediff computes minimal edit scripts between two sequences and applies edit scripts
// to reconstruct the target sequence.
//
// The main functions are [Diff], which returns every individual edit needed to transform one
// sequence into the other, and [Apply], which replays such an edit script on the original
// sequence. [Hunks] groups the changes of an edit script into contextual blocks for display.
//
// The edit script is computed with the classical greedy algorithm by Eugene W. Myers without any
// heuristics. The result is always minimal, and for a given input it is always the same. Time
// complexity is O((N+M)D) and memory use is O(D²), where N = len(old), M = len(new) and D is the
// number of edits. Use [MaxCost] to bound the work for inputs with many differences.
//
// Note: For a line-by-line diff of text, please see [znkr.io/linediff/textdiff]. To exchange
// edit scripts with programs in other languages, see [znkr.io/linediff/wire] and
// [znkr.io/linediff/abi].
//
// [znkr.io/linediff/textdiff]: https://pkg.go.dev/znkr.io/linediff/textdiff
// [znkr.io/linediff/wire]: https://pkg.go.dev/znkr.io/linediff/wire
// [znkr.io/linediff/abi]: https://pkg.go.dev/znkr.io/linediff/abi
package linediff
