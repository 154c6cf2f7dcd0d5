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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// linediff.Option.
package config

// Config collects all configurable parameters for functions in this module.
type Config struct {
	// Context is the number of matches to include as a prefix and postfix for hunks returned.
	Context int

	// MaxCost limits the number of edits the search explores before giving up. Zero means no
	// limit.
	MaxCost int

	// Colors used when rendering edits to a terminal. Rendering is uncolored if nil.
	Colors *ColorConfig
}

// ColorConfig holds the ANSI escape sequences used to color rendered edits.
type ColorConfig struct {
	HunkHeader string
	Match      string
	Delete     string
	Insert     string
	Reset      string
}

// DefaultColors is the color configuration used by textdiff.TerminalColors if no other options
// are provided.
var DefaultColors = ColorConfig{
	HunkHeader: "\033[36m",
	Match:      "",
	Delete:     "\033[31m",
	Insert:     "\033[32m",
	Reset:      "\033[0m",
}

// Default is the default configuration.
var Default = Config{
	Context: 3,
	MaxCost: 0,
	Colors:  nil,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	Context Flag = 1 << iota
	MaxCost
	Colors
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Context:
		return "linediff.Context"
	case MaxCost:
		return "linediff.MaxCost"
	case Colors:
		return "textdiff.TerminalColors"
	default:
		panic("never reached")
	}
}
