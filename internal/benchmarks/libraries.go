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

// Package benchmarks compares this module's line diff with other Go diff libraries.
package benchmarks

import (
	"bytes"
	"strings"

	udiff "github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/linediff"
	"znkr.io/linediff/textdiff"
)

// Impl is a diff implementation producing output in (or close to) the unified diff layout.
type Impl struct {
	Name string
	Diff func(x, y []byte) []byte
}

var Impls = []Impl{
	{
		Name: "linediff",
		Diff: func(x, y []byte) []byte {
			out, err := textdiff.Format(x, y)
			if err != nil {
				panic(err)
			}
			return out
		},
	},
	{
		Name: "linediff-no-context",
		Diff: func(x, y []byte) []byte {
			out, err := textdiff.Format(x, y, linediff.Context(0))
			if err != nil {
				panic(err)
			}
			return out
		},
	},
	{
		Name: "go-internal",
		Diff: func(x, y []byte) []byte {
			return gointernal.Diff("x", x, "y", y)
		},
	},
	{
		Name: "diffmatchpatch",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			dmp := diffmatchpatch.New()
			rx, ry, lines := dmp.DiffLinesToRunes(string(x), string(y))
			diffs := dmp.DiffMainRunes(rx, ry, false)
			diffs = dmp.DiffCharsToLines(diffs, lines)

			var buf bytes.Buffer
			for _, diff := range diffs {
				var prefix string
				switch diff.Type {
				case diffmatchpatch.DiffInsert:
					prefix = "+"
				case diffmatchpatch.DiffDelete:
					prefix = "-"
				case diffmatchpatch.DiffEqual:
					prefix = " "
				}
				for _, line := range strings.SplitAfter(diff.Text, "\n") {
					if line == "" {
						continue
					}
					buf.WriteString(prefix)
					buf.WriteString(line)
				}
			}
			return buf.Bytes()
		},
	},
	{
		Name: "godebug",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			return []byte(godebug.Diff(string(x), string(y)))
		},
	},
	{
		Name: "mb0",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			d := mb0lines{
				x: textdiff.Lines(x),
				y: textdiff.Lines(y),
			}
			changes := mb0.Diff(len(d.x), len(d.y), d)
			var buf bytes.Buffer
			a := 0
			for _, ch := range changes {
				for a < ch.A {
					buf.WriteString(" ")
					buf.WriteString(d.x[a])
					a++
				}
				for i := range ch.Del {
					buf.WriteString("-")
					buf.WriteString(d.x[ch.A+i])
					a++
				}
				for i := range ch.Ins {
					buf.WriteString("+")
					buf.WriteString(d.y[ch.B+i])
				}
			}
			for a < len(d.x) {
				buf.WriteString(" ")
				buf.WriteString(d.x[a])
				a++
			}
			return buf.Bytes()
		},
	},
	{
		Name: "udiff",
		Diff: func(x, y []byte) []byte {
			return []byte(udiff.Format("x", "y", string(x), string(y)))
		},
	},
}

type mb0lines struct {
	x []string
	y []string
}

func (d mb0lines) Equal(i, j int) bool { return d.x[i] == d.y[j] }

// CountEdits counts the deleted and inserted lines in the output of an [Impl]. File headers are
// not counted.
func CountEdits(out []byte) int {
	edits := 0
	for _, line := range bytes.Split(out, []byte("\n")) {
		if bytes.HasPrefix(line, []byte("+++ ")) || bytes.HasPrefix(line, []byte("--- ")) {
			continue
		}
		if bytes.HasPrefix(line, []byte{'+'}) || bytes.HasPrefix(line, []byte{'-'}) {
			edits++
		}
	}
	return edits
}
