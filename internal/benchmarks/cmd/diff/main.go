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

// diff prints the output of one of the benchmarked diff implementations for two inputs.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/tools/txtar"
	"znkr.io/linediff/internal/benchmarks"
)

type config struct {
	lib   string
	x, y  string
	txtar string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.lib, "lib", "linediff", "library to use for diffing")
	flag.StringVar(&cfg.txtar, "txtar", "", "use testdata txtar file instead of two input files")
	flag.Parse()

	if cfg.txtar != "" {
		if flag.CommandLine.NArg() != 0 {
			fmt.Fprintf(os.Stderr, "error: usage: diff -txtar <file>\n")
			os.Exit(1)
		}
	} else {
		if flag.CommandLine.NArg() != 2 {
			fmt.Fprintf(os.Stderr, "error: usage: diff <x> <y>\n")
			os.Exit(1)
		}
		cfg.x = flag.CommandLine.Arg(0)
		cfg.y = flag.CommandLine.Arg(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	var lib *benchmarks.Impl
	for i := range benchmarks.Impls {
		if benchmarks.Impls[i].Name == cfg.lib {
			lib = &benchmarks.Impls[i]
		}
	}
	if lib == nil {
		return fmt.Errorf("lib not found %q", cfg.lib)
	}

	var x, y []byte
	if cfg.txtar != "" {
		ar, err := txtar.ParseFile(cfg.txtar)
		if err != nil {
			return err
		}
		for _, f := range ar.Files {
			switch f.Name {
			case "x":
				x = f.Data
			case "y":
				y = f.Data
			}
		}
	} else {
		var err error
		x, err = os.ReadFile(cfg.x)
		if err != nil {
			return err
		}
		y, err = os.ReadFile(cfg.y)
		if err != nil {
			return err
		}
	}

	out := lib.Diff(x, y)
	if _, err := os.Stdout.Write(out); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%s: %d edits\n", lib.Name, benchmarks.CountEdits(out))
	return nil
}
