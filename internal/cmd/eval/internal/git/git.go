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

// Package git provides a simplified git interface for reading a repository for evaluations.
package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

const nullID = "0000000000000000000000000000000000000000"

// Repo is a git repository. Blob contents are read through a single long running
// "git cat-file" process.
type Repo struct {
	dir    string
	gitcat chan<- readRequest
	done   chan struct{}
	cmd    *exec.Cmd
}

// Open opens the repository in dir.
func Open(dir string) (*Repo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	r := &Repo{dir: dir}
	if err := r.startCatFile(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close stops the background process. It waits until all pending reads have been delivered.
func (r *Repo) Close() {
	close(r.gitcat)
	<-r.done
	if err := r.cmd.Wait(); err != nil {
		slog.Debug("git cat-file exited", "err", err)
	}
}

// RevList returns the IDs of all non-merge commits reachable from HEAD.
func (r *Repo) RevList(ctx context.Context) ([]string, error) {
	out, err := git(ctx, "-C", r.dir, "rev-list", "--no-merges", "HEAD")
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// FileDiff describes a file changed by a commit.
type FileDiff struct {
	Name  string
	OldID string
	NewID string
}

// DiffTree returns the files changed by commit.
func (r *Repo) DiffTree(ctx context.Context, commit string) ([]FileDiff, error) {
	out, err := git(ctx, "-C", r.dir, "diff-tree", "-r", commit)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(out, "\n")[1:]
	ret := make([]FileDiff, 0, len(lines))
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		if line[0] != ':' {
			return nil, fmt.Errorf("diff-tree file not starting with ':': %q", line)
		}
		fields := strings.Fields(line[1:])
		if len(fields) < 6 {
			return nil, fmt.Errorf("diff-tree line with %d fields, want 6: %q", len(fields), line)
		}
		ret = append(ret, FileDiff{
			Name:  fields[5],
			OldID: fields[2],
			NewID: fields[3],
		})
	}
	return ret, nil
}

// Read reads the contents of the blobs and passes them to cb. The null ID reads as empty
// content. Calls are asynchronous; cb is called from a background goroutine in request order.
func (r *Repo) Read(blobIDs []string, cb func([]string, error)) {
	r.gitcat <- readRequest{blobIDs, cb}
}

func git(ctx context.Context, args ...string) (string, error) {
	var wout, werr strings.Builder
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stdout = &wout
	cmd.Stderr = &werr
	slog.Debug("running git", "args", args)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running git command %v: %w\n%s", cmd, err, werr.String())
	}
	return wout.String(), nil
}

type readRequest struct {
	blobIDs []string
	cb      func([]string, error)
}

// startCatFile starts "git cat-file --batch-command" with one goroutine writing batched requests
// and one goroutine reading the responses.
func (r *Repo) startCatFile() error {
	wc := make(chan readRequest)
	rc := make(chan []readRequest, runtime.GOMAXPROCS(0))
	done := make(chan struct{})

	cmd := exec.Command("git", "-C", r.dir, "cat-file", "--batch-command", "--buffer")
	in, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("connecting stdin: %w", err)
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("connecting stdout: %w", err)
	}
	var werr bytes.Buffer
	cmd.Stderr = &werr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting git cat-file: %w", err)
	}

	br := bufio.NewReader(out)
	go func() {
		defer close(rc)
		defer in.Close()
		const N = 32
		var writeErr error
		request := func(req readRequest) {
			for _, id := range req.blobIDs {
				if id == nullID || writeErr != nil {
					continue
				}
				_, writeErr = fmt.Fprintf(in, "contents %s\n", id)
			}
		}
		for req := range wc {
			// Batch all requests that are immediately available.
			bundle := make([]readRequest, 0, N)
			request(req)
			bundle = append(bundle, req)
		Batch:
			for len(bundle) < N {
				select {
				case req, ok := <-wc:
					if !ok {
						break Batch
					}
					request(req)
					bundle = append(bundle, req)
				default:
					break Batch
				}
			}
			if writeErr == nil {
				_, writeErr = fmt.Fprintf(in, "flush\n")
			}
			if writeErr != nil {
				for _, req := range bundle {
					req.cb(nil, fmt.Errorf("writing to git cat-file: %w", writeErr))
				}
				continue
			}
			rc <- bundle
		}
	}()

	go func() {
		defer close(done)
		var rerr error
		for bundle := range rc {
			for _, req := range bundle {
				if rerr != nil {
					req.cb(nil, rerr)
					continue
				}
				var res []string
				res, rerr = readBlobs(br, req.blobIDs)
				if rerr != nil {
					rerr = fmt.Errorf("reading from git cat-file: %w\n%s", rerr, werr.String())
					req.cb(nil, rerr)
					continue
				}
				req.cb(res, nil)
			}
		}
	}()

	r.gitcat, r.done, r.cmd = wc, done, cmd
	return nil
}

func readBlobs(r *bufio.Reader, ids []string) ([]string, error) {
	out := make([]string, len(ids))
	for i, id := range ids {
		if id == nullID {
			continue
		}
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("found %v fields, expected 3: %q", len(fields), line)
		}
		if fields[0] != id {
			return nil, fmt.Errorf("ids don't match %s vs %s", fields[0], id)
		}
		n, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, n+1)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		out[i] = string(buf[:n])
	}
	return out, nil
}
