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

// Package color changes the palette used by textdiff.TerminalColors.
//
// A colored rendering wraps every hunk header and every edit line, prefix included, in the
// escape sequence of its kind and the reset sequence. Newlines and the "\ No newline at end of
// file" marker are written after the reset, so a color never bleeds into the next line. A kind
// with an empty sequence is written without any escape sequences; equal lines are written that
// way unless [Matches] is used.
//
// Each option takes [Select Graphic Rendition parameters] and joins them into a single sequence.
// For example, HunkHeaders(1, 33) renders hunk headers in bold yellow using \033[1;33m. An
// option called without parameters yields \033[m, which most terminals treat as a reset.
//
// The parameters are not validated. Whether they are supported depends on the terminal.
//
// [Select Graphic Rendition parameters]: https://en.wikipedia.org/wiki/ANSI_escape_code#SGR
package color

import (
	"fmt"
	"strings"

	"znkr.io/linediff/internal/config"
)

// An Option sets the escape sequence for one kind of rendered line.
type Option func(*config.ColorConfig)

// HunkHeaders colors the "@@ -pos,len +pos,len @@" header preceding every hunk. Cyan by
// default.
func HunkHeaders(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.HunkHeader = code
	}
}

// Matches colors the context lines prefixed with ' '. They are uncolored by default.
func Matches(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Match = code
	}
}

// Deletes colors lines prefixed with '-'. Red by default.
func Deletes(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Delete = code
	}
}

// Inserts colors lines prefixed with '+'. Green by default.
func Inserts(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Insert = code
	}
}

// Resets sets the sequence written after the text of every colored line, before its newline.
// The default, \033[0m, resets all attributes.
func Resets(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Reset = code
	}
}

func format(params []int) string {
	var sb strings.Builder
	sb.WriteString("\033[")
	for i, v := range params {
		if i > 0 {
			sb.WriteRune(';')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteRune('m')
	return sb.String()
}
