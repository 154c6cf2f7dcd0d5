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

package color

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/linediff/internal/config"
)

func TestOptions(t *testing.T) {
	var got config.ColorConfig
	for _, opt := range []Option{
		HunkHeaders(1, 33),
		Matches(2),
		Deletes(31),
		Inserts(1, 4, 32),
		Resets(),
	} {
		opt(&got)
	}
	want := config.ColorConfig{
		HunkHeader: "\033[1;33m",
		Match:      "\033[2m",
		Delete:     "\033[31m",
		Insert:     "\033[1;4;32m",
		Reset:      "\033[m",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("options produced a different palette [-want,+got]:\n%s", diff)
	}
}
