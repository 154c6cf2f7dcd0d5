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
	"errors"
	"fmt"

	"znkr.io/linediff/internal/myers"
)

var (
	// ErrInternal reports a broken invariant of the diff algorithm. It indicates a bug in this
	// package.
	ErrInternal = myers.ErrInternal

	// ErrCostLimit is returned if an edit script needs more edits than allowed by [MaxCost].
	ErrCostLimit = myers.ErrCostLimit

	// ErrMalformedScript is returned if an edit script can't be applied.
	ErrMalformedScript = errors.New("linediff: malformed edit script")
)

// ScriptError describes why an edit script can't be applied.
type ScriptError struct {
	Index  int    // Index of the offending edit in the script.
	Op     Op     // Operation of the offending edit.
	Reason string // Human readable description of the problem.
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%v: edit %d (%v): %s", ErrMalformedScript, e.Index, e.Op, e.Reason)
}

// Unwrap returns [ErrMalformedScript].
func (e *ScriptError) Unwrap() error { return ErrMalformedScript }
