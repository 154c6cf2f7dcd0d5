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

// eval validates the diff algorithm against the history of a git repository: for every changed
// file it computes an edit script, checks the script's invariants and applies it to the old
// version, which must reproduce the new version exactly.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"cloudeng.io/errors"
	"golang.org/x/sync/errgroup"
	"znkr.io/linediff"
	"znkr.io/linediff/internal/cmd/eval/internal/git"
	"znkr.io/linediff/textdiff"
)

type config struct {
	repo     string
	sample   int
	parallel int
	stats    string
	maxCost  int
	verbose  bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.repo, "repo", "", "repository to use for evaluation")
	flag.IntVar(&cfg.sample, "sample", 0, "if >0, sample commits to the value of the flag")
	flag.IntVar(&cfg.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	flag.StringVar(&cfg.stats, "stats", "", "file to store stats in")
	flag.IntVar(&cfg.maxCost, "maxcost", 0, "if >0, skip files that need more edits than the value of the flag")
	flag.BoolVar(&cfg.verbose, "v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if len(flag.CommandLine.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected command line arguments: %v\n", flag.CommandLine.Args())
		os.Exit(1)
	}

	if err := run(context.Background(), &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var bars = []string{
	" ",
	"▏",
	"▎",
	"▍",
	"▌",
	"▋",
	"▊",
	"▉",
	"█",
}

type change struct {
	commitID string
	filename string
	old, new string
}

type result struct {
	commitID string
	file     string
	N, M     int
	D        int
	duration time.Duration
}

func run(ctx context.Context, cfg *config) error {
	start := time.Now()
	var commitsDone atomic.Int64
	var processed atomic.Int64
	var failures errors.M

	var stats *os.File
	if cfg.stats != "" {
		var err error
		stats, err = os.Create(cfg.stats)
		if err != nil {
			return fmt.Errorf("creating stats file: %w", err)
		}
		defer stats.Close()
	}

	repo, err := git.Open(cfg.repo)
	if err != nil {
		return fmt.Errorf("opening git repository: %w", err)
	}

	commitIDs, err := repo.RevList(ctx)
	if err != nil {
		repo.Close()
		return fmt.Errorf("reading rev-list: %w", err)
	}
	slog.Debug("read history", "repo", cfg.repo, "commits", len(commitIDs))

	// Sample commits
	if cfg.sample > 0 && cfg.sample < len(commitIDs) {
		perm := rand.Perm(len(commitIDs))[:cfg.sample]
		sample := make([]string, 0, cfg.sample)
		for _, i := range perm {
			sample = append(sample, commitIDs[i])
		}
		commitIDs = sample
	}

	// Read changes.
	changes := make(chan change)
	var readers errgroup.Group
	chunkSize := max(1, len(commitIDs)/(4*runtime.GOMAXPROCS(0)))
	for chunk := range slices.Chunk(commitIDs, chunkSize) {
		readers.Go(func() error {
			for _, commitID := range chunk {
				files, err := repo.DiffTree(ctx, commitID)
				if err != nil {
					failures.Append(fmt.Errorf("%s: processing commit: %w", commitID, err))
				}
				for _, file := range files {
					if strings.HasSuffix(file.Name, ".zip") || strings.HasSuffix(file.Name, ".syso") {
						continue
					}
					repo.Read([]string{file.OldID, file.NewID}, func(res []string, err error) {
						if err != nil {
							failures.Append(fmt.Errorf("%s:%s: reading blobs: %w", commitID, file.Name, err))
							return
						}
						changes <- change{
							commitID: commitID,
							filename: file.Name,
							old:      res[0],
							new:      res[1],
						}
					})
				}
				commitsDone.Add(1)
			}
			return nil
		})
	}

	// Evaluate changes.
	var results chan result
	if stats != nil {
		results = make(chan result)
	}
	var workers errgroup.Group
	for range cfg.parallel {
		workers.Go(func() error {
			for c := range changes {
				res, err := evaluate(c, cfg.maxCost)
				if errors.Is(err, errSkipped) {
					slog.Debug("skipping expensive change", "commit", c.commitID, "file", c.filename)
				} else if err != nil {
					failures.Append(fmt.Errorf("%s:%s: %w", c.commitID, c.filename, err))
					slog.Debug("evaluation failed", "commit", c.commitID, "file", c.filename, "err", err)
				} else if results != nil {
					results <- res
				}
				processed.Add(1)
			}
			return nil
		})
	}

	// Render progress and write stats.
	done := make(chan struct{})
	var ioWG sync.WaitGroup
	render := func() {
		const width = 60
		commits := commitsDone.Load()
		processed := processed.Load()
		progress := 1.0
		if len(commitIDs) > 0 {
			progress = float64(commits) / float64(len(commitIDs))
		}
		whole := int(progress * width)
		remainder := math.Mod(progress*width, 1)
		last := bars[max(0, min(len(bars)-1, int(remainder*float64(len(bars)))))]
		if width-whole < 1 {
			last = ""
		}
		bar := strings.Repeat(bars[len(bars)-1], whole) + last
		var commitsPerSec, evalsPerSec int
		if commits > 0 {
			commitsPerSec = int((time.Duration(commits) * time.Second) / time.Since(start))
		}
		if processed > 0 {
			evalsPerSec = int((time.Duration(processed) * time.Second) / time.Since(start))
		}
		fmt.Printf("\r[%-*s] % 3.1f%% (%d commits/s, %d evals/s) ", width, bar, 100*progress, commitsPerSec, evalsPerSec)
	}
	ioWG.Add(1)
	go func() {
		defer ioWG.Done()
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				render()
			case <-done:
				render()
				fmt.Printf("\n")
				return
			}
		}
	}()
	if results != nil {
		ioWG.Add(1)
		go func() {
			defer ioWG.Done()
			w := bufio.NewWriter(stats)
			w.WriteString("commit_id,file,N,M,D,duration_ns\n")
			for r := range results {
				fmt.Fprintf(w, "%s,%s,%d,%d,%d,%d\n", r.commitID, r.file, r.N, r.M, r.D, r.duration.Nanoseconds())
			}
			if err := w.Flush(); err != nil {
				failures.Append(fmt.Errorf("writing stats: %w", err))
			}
		}()
	}

	// Shutdown
	readers.Wait()
	repo.Close()
	close(changes)
	workers.Wait()
	close(done)
	if results != nil {
		close(results)
	}
	ioWG.Wait()

	slog.Info("evaluation finished", "commits", commitsDone.Load(), "files", processed.Load(), "duration", time.Since(start))
	return failures.Err()
}

var errSkipped = errors.New("skipped")

// evaluate diffs a single change and verifies the result.
func evaluate(c change, maxCost int) (result, error) {
	start := time.Now()
	script, err := textdiff.Diff(c.old, c.new, linediff.MaxCost(maxCost))
	duration := time.Since(start)
	if errors.Is(err, linediff.ErrCostLimit) {
		return result{}, errSkipped
	}
	if err != nil {
		return result{}, err
	}

	old, new := textdiff.Lines(c.old), textdiff.Lines(c.new)
	var equal, deletes, inserts int
	for _, e := range script {
		switch e.Op {
		case linediff.Equal:
			equal++
		case linediff.Delete:
			deletes++
		case linediff.Insert:
			inserts++
		}
	}
	if equal+deletes != len(old) || equal+inserts != len(new) {
		return result{}, fmt.Errorf("inconsistent edit script: %d equal, %d deletes, %d inserts for %d and %d lines", equal, deletes, inserts, len(old), len(new))
	}

	applied, err := textdiff.Apply(c.old, script)
	if err != nil {
		return result{}, fmt.Errorf("applying edit script: %w", err)
	}
	if applied != c.new {
		return result{}, fmt.Errorf("file is different after applying edit script. got:\n%s\nwant:\n%s", applied, c.new)
	}

	return result{
		commitID: c.commitID,
		file:     c.filename,
		N:        len(old),
		M:        len(new),
		D:        deletes + inserts,
		duration: duration,
	}, nil
}
