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

// linediff compares files line by line and applies edit scripts.
//
// Usage:
//
//	linediff [flags] old new             print the differences
//	linediff -wire script [flags] old new write the edit script in wire format to script
//	linediff -apply script old           apply a wire format edit script to old
//
// The exit status is 0 if the inputs are identical, 1 if they differ and 2 on error.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"znkr.io/linediff"
	"znkr.io/linediff/abi"
	"znkr.io/linediff/textdiff"
	"znkr.io/linediff/wire"
)

type config struct {
	context int
	maxCost int
	color   bool
	wire    string
	apply   string
	verbose bool
}

var errDifferent = errors.New("inputs differ")

func main() {
	var cfg config
	flag.IntVar(&cfg.context, "context", 3, "number of context lines around changes")
	flag.IntVar(&cfg.maxCost, "maxcost", 0, "if >0, fail if the inputs need more edits than the value of the flag")
	flag.BoolVar(&cfg.color, "color", false, "color the output using ANSI escape sequences")
	flag.StringVar(&cfg.wire, "wire", "", "write the edit script in wire format to this file")
	flag.StringVar(&cfg.apply, "apply", "", "apply the edit script in wire format from this file")
	flag.BoolVar(&cfg.verbose, "v", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: linediff [flags] old new\n       linediff -apply script old\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	err := run(os.Stdout, &cfg, flag.Args())
	switch {
	case errors.Is(err, errDifferent):
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

func run(w io.Writer, cfg *config, args []string) error {
	if cfg.apply != "" {
		if len(args) != 1 {
			return fmt.Errorf("-apply needs exactly one input file, got %d", len(args))
		}
		return apply(w, cfg.apply, args[0])
	}
	if len(args) != 2 {
		return fmt.Errorf("need exactly two input files, got %d", len(args))
	}

	old, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	new, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}

	if cfg.wire != "" {
		return writeWire(cfg.wire, old, new)
	}

	script, err := textdiff.Diff(old, new, linediff.MaxCost(cfg.maxCost))
	if err != nil {
		return err
	}
	d := linediff.Distance(script)
	slog.Debug("computed edit script", "old", args[0], "new", args[1], "edits", len(script), "distance", d)
	if d == 0 {
		return nil
	}

	opts := []linediff.Option{linediff.Context(cfg.context)}
	if cfg.color {
		opts = append(opts, textdiff.TerminalColors())
	}
	if err := textdiff.Write(w, script, opts...); err != nil {
		return err
	}
	return errDifferent
}

// writeWire computes the edit script via an abi arena so that the handle discipline used by
// foreign callers is exercised end to end.
func writeWire(path string, old, new []byte) error {
	arena := abi.NewArena()
	s, err := arena.ComputeDiff(textdiff.Lines(old), textdiff.Lines(new))
	if err != nil {
		return err
	}
	defer s.Release()

	data, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	edits, err := s.Edits()
	if err != nil {
		return err
	}
	slog.Debug("wrote edit script", "path", path, "bytes", len(data), "edits", len(edits))
	if linediff.Distance(edits) > 0 {
		return errDifferent
	}
	return nil
}

func apply(w io.Writer, scriptPath, oldPath string) error {
	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return err
	}
	old, err := os.ReadFile(oldPath)
	if err != nil {
		return err
	}

	arena := abi.NewArena()
	l, err := arena.ApplyScriptWire(wire.MarshalLines(textdiff.Lines(old)), script)
	if err != nil {
		return fmt.Errorf("applying %s to %s: %w", scriptPath, oldPath, err)
	}
	defer l.Release()

	lines, err := l.Lines()
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
