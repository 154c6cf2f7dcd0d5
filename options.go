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

import "znkr.io/linediff/internal/config"

// Option configures the behavior of functions in this module.
type Option = config.Option

// Context sets the number of Equal edits to include as a prefix and postfix for hunks returned by
// [Hunks]. The default is 3.
func Context(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Context = max(0, n)
		return config.Context
	}
}

// MaxCost limits the number of edits [Diff] is willing to search for. If old and new differ by
// more than n edits, Diff stops early and returns an error matching [ErrCostLimit]. A value of
// zero or less removes the limit, which is the default.
//
// The time needed by Diff grows with the number of edits, so this limit bounds the work spent on
// very different inputs.
func MaxCost(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MaxCost = max(0, n)
		return config.MaxCost
	}
}
