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

package config_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/linediff"
	"znkr.io/linediff/internal/config"
	"znkr.io/linediff/textdiff"
	"znkr.io/linediff/textdiff/color"
)

func TestFromOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []config.Option
		want config.Config
	}{
		{
			name: "default",
			opts: nil,
			want: config.Default,
		},
		{
			name: "context",
			opts: []config.Option{
				linediff.Context(5),
			},
			want: config.Config{
				Context: 5,
				MaxCost: config.Default.MaxCost,
			},
		},
		{
			name: "negative-context",
			opts: []config.Option{
				linediff.Context(-2),
			},
			want: config.Config{
				Context: 0,
				MaxCost: config.Default.MaxCost,
			},
		},
		{
			name: "max-cost",
			opts: []config.Option{
				linediff.MaxCost(100),
			},
			want: config.Config{
				Context: config.Default.Context,
				MaxCost: 100,
			},
		},
		{
			name: "context-override",
			opts: []config.Option{
				linediff.Context(5),
				linediff.MaxCost(10),
				linediff.Context(1),
			},
			want: config.Config{
				Context: 1,
				MaxCost: 10,
			},
		},
		{
			name: "everything",
			opts: []config.Option{
				linediff.Context(5),
				linediff.MaxCost(7),
				textdiff.TerminalColors(color.Deletes(1, 31)),
			},
			want: config.Config{
				Context: 5,
				MaxCost: 7,
				Colors: &config.ColorConfig{
					HunkHeader: config.DefaultColors.HunkHeader,
					Match:      config.DefaultColors.Match,
					Delete:     "\033[1;31m",
					Insert:     config.DefaultColors.Insert,
					Reset:      config.DefaultColors.Reset,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FromOptions(tt.opts, config.Context|config.MaxCost|config.Colors)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromOptions(...) result are different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestFromOptionsNotAllowed(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("FromOptions(...) did not panic")
		}
		if got, want := r, "Option linediff.Context not allowed here"; got != want {
			t.Errorf("FromOptions(...) panicked with %q, want %q", got, want)
		}
	}()
	config.FromOptions([]config.Option{linediff.Context(1)}, config.MaxCost)
}
