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

// Apply replays script on old and returns the resulting sequence.
//
// Equal edits copy the next element of old, Delete edits skip it and Insert edits emit the
// element carried by the edit. The Line of Equal and Delete edits is not inspected. For any
// script returned by [Diff] for old and new, Apply(old, script) returns new.
//
// If script consumes more elements than old has, or contains an unknown operation, Apply returns
// a [*ScriptError] that matches [ErrMalformedScript] and no output.
func Apply[T any](old []T, script []Edit[T]) ([]T, error) {
	out := make([]T, 0, len(old))
	cursor := 0
	for i, e := range script {
		switch e.Op {
		case Equal:
			if cursor >= len(old) {
				return nil, &ScriptError{Index: i, Op: e.Op, Reason: "old sequence is exhausted"}
			}
			out = append(out, old[cursor])
			cursor++
		case Delete:
			if cursor >= len(old) {
				return nil, &ScriptError{Index: i, Op: e.Op, Reason: "old sequence is exhausted"}
			}
			cursor++
		case Insert:
			out = append(out, e.Line)
		default:
			return nil, &ScriptError{Index: i, Op: e.Op, Reason: "unknown operation"}
		}
	}
	return out, nil
}
