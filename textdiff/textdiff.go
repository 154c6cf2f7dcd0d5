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

// Package textdiff provides functions to compare text line by line.
//
// Text is split into lines after each '\n'. The newline character stays part of the line, so a
// line without a trailing newline (only possible for the last line) is different from the same
// line with one. Concatenating the lines reproduces the input exactly.
package textdiff

import (
	"bytes"
	"fmt"
	"io"

	"znkr.io/linediff"
	"znkr.io/linediff/internal/config"
	"znkr.io/linediff/internal/lines"
)

const (
	prefixMatch  = " "
	prefixDelete = "-"
	prefixInsert = "+"
)

const missingNewline = "\n\\ No newline at end of file\n"

// Lines splits in into lines. Each line includes its terminating newline character, a final line
// without one is kept as is.
func Lines[T string | []byte](in T) []string {
	switch in := any(in).(type) {
	case string:
		return lines.Split(in)
	case []byte:
		return lines.Split(string(in))
	}
	panic("never reached")
}

// Diff compares the lines in old and new and returns a minimal edit script to convert from one
// to the other.
//
// The following option is supported: [linediff.MaxCost]
func Diff[T string | []byte](old, new T, opts ...linediff.Option) ([]linediff.Edit[string], error) {
	return linediff.Diff(Lines(old), Lines(new), opts...)
}

// Apply replays script line by line on old and returns the resulting text.
//
// See [linediff.Apply] for details and errors.
func Apply[T string | []byte](old T, script []linediff.Edit[string]) (T, error) {
	var zero T
	applied, err := linediff.Apply(lines.Split(lines.View(old)), script)
	if err != nil {
		return zero, err
	}
	size := 0
	for _, l := range applied {
		size += len(l)
	}
	var b lines.Builder[T]
	b.Grow(size)
	for _, l := range applied {
		b.WriteString(l)
	}
	return b.Build(), nil
}

// Hunks compares the lines in old and new and returns the changes grouped into hunks.
//
// The following options are supported: [linediff.Context], [linediff.MaxCost]
func Hunks[T string | []byte](old, new T, opts ...linediff.Option) ([]linediff.Hunk[string], error) {
	cfg := config.FromOptions(opts, config.Context|config.MaxCost)
	script, err := linediff.Diff(Lines(old), Lines(new), linediff.MaxCost(cfg.MaxCost))
	if err != nil {
		return nil, err
	}
	return linediff.Hunks(script, linediff.Context(cfg.Context)), nil
}

// Format compares the lines in old and new and renders the changes for display. The rendering
// uses the hunk layout described in [Write]. It resembles a unified diff, but it's not meant to be
// used as a patch file: there are no file headers and hunk positions of empty ranges are not
// adjusted the way patch(1) expects.
//
// The following options are supported: [linediff.Context], [linediff.MaxCost], [TerminalColors]
func Format[T string | []byte](old, new T, opts ...linediff.Option) (T, error) {
	var zero T
	cfg := config.FromOptions(opts, config.Context|config.MaxCost|config.Colors)
	script, err := linediff.Diff(Lines(old), Lines(new), linediff.MaxCost(cfg.MaxCost))
	if err != nil {
		return zero, err
	}
	var b lines.Builder[T]
	if err := write(&b, script, cfg); err != nil {
		return zero, err
	}
	return b.Build(), nil
}

// Write renders the hunks of script to w for display. Every hunk starts with a header of
// the form "@@ -pos,len +pos,len @@" followed by the lines of the hunk prefixed with ' ' for
// equal, '-' for deleted and '+' for inserted lines. Lines without a trailing newline are marked
// with "\ No newline at end of file".
//
// The following options are supported: [linediff.Context], [TerminalColors]
func Write(w io.Writer, script []linediff.Edit[string], opts ...linediff.Option) error {
	cfg := config.FromOptions(opts, config.Context|config.Colors)
	return write(w, script, cfg)
}

func write(w io.Writer, script []linediff.Edit[string], cfg config.Config) error {
	var b bytes.Buffer
	for _, h := range linediff.Hunks(script, linediff.Context(cfg.Context)) {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.PosX+1, h.EndX-h.PosX, h.PosY+1, h.EndY-h.PosY)
		writeColored(&b, cfg.Colors, hunkHeader, "", header+"\n")
		for _, e := range h.Edits {
			switch e.Op {
			case linediff.Equal:
				writeColored(&b, cfg.Colors, linediff.Equal, prefixMatch, e.Line)
			case linediff.Delete:
				writeColored(&b, cfg.Colors, linediff.Delete, prefixDelete, e.Line)
			case linediff.Insert:
				writeColored(&b, cfg.Colors, linediff.Insert, prefixInsert, e.Line)
			default:
				return fmt.Errorf("%w: unknown operation %v", linediff.ErrMalformedScript, e.Op)
			}
		}
	}
	_, err := w.Write(b.Bytes())
	return err
}

// hunkHeader selects the hunk header color in writeColored.
const hunkHeader linediff.Op = -1

func writeColored(b *bytes.Buffer, colors *config.ColorConfig, op linediff.Op, prefix, line string) {
	code := ""
	if colors != nil {
		switch op {
		case hunkHeader:
			code = colors.HunkHeader
		case linediff.Equal:
			code = colors.Match
		case linediff.Delete:
			code = colors.Delete
		case linediff.Insert:
			code = colors.Insert
		}
	}

	text, nl := line, missingNewline
	if !lines.MissingNewline(line) {
		text, nl = line[:len(line)-1], "\n"
	}

	if code != "" {
		b.WriteString(code)
	}
	b.WriteString(prefix)
	b.WriteString(text)
	if code != "" {
		b.WriteString(colors.Reset)
	}
	b.WriteString(nl)
}
