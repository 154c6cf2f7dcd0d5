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

package textdiff

import (
	"znkr.io/linediff"
	"znkr.io/linediff/internal/config"
	"znkr.io/linediff/textdiff/color"
)

// TerminalColors colors the output of [Format] and [Write] using ANSI escape sequences. Without
// any options, hunk headers are cyan, deleted lines red and inserted lines green. Use the options
// in package [color] to change the palette.
func TerminalColors(opts ...color.Option) linediff.Option {
	cc := config.DefaultColors
	for _, opt := range opts {
		opt(&cc)
	}
	return func(cfg *config.Config) config.Flag {
		colors := cc
		cfg.Colors = &colors
		return config.Colors
	}
}
