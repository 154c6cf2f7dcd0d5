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

// Package abi exposes diff computation and script application through owned handles.
//
// It is the boundary used by callers that manage memory explicitly, e.g. bindings for other
// languages. Every [Script] returned by [Arena.ComputeDiff] and every [Lines] returned by
// [Arena.ApplyScript] is owned by the caller and must be released exactly once. An [Arena] keeps
// track of all live handles; releasing a handle twice or passing a handle to a different arena is
// reported as an error instead of corrupting state.
//
// Inputs are borrowed for the duration of a call only. Handles never share memory with them.
package abi

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"znkr.io/linediff"
	"znkr.io/linediff/wire"
)

var (
	// ErrReleased is returned when using or releasing a handle that was already released.
	ErrReleased = errors.New("abi: handle already released")

	// ErrForeignHandle is returned when passing a handle to an arena that did not create it.
	ErrForeignHandle = errors.New("abi: handle belongs to a different arena")

	// ErrNilHandle is returned when passing a nil handle where a live one is required.
	ErrNilHandle = errors.New("abi: nil handle")
)

// Arena creates handles and tracks which of them are still live. It is safe for concurrent use.
// The zero value is an empty arena ready to use.
type Arena struct {
	mu   sync.Mutex
	next uint64
	live map[uint64]struct{}
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{live: make(map[uint64]struct{})}
}

// Outstanding returns the number of handles that were created but not released yet.
func (a *Arena) Outstanding() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

func (a *Arena) register() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.live == nil {
		a.live = make(map[uint64]struct{})
	}
	a.next++
	a.live[a.next] = struct{}{}
	return a.next
}

func (a *Arena) isLive(id uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.live[id]
	return ok
}

func (a *Arena) release(id uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.live[id]; !ok {
		return ErrReleased
	}
	delete(a.live, id)
	return nil
}

// ComputeDiff computes a minimal edit script converting old into new. The returned script owns
// copies of all lines it refers to.
func (a *Arena) ComputeDiff(old, new []string) (*Script, error) {
	script, err := linediff.Diff(old, new)
	if err != nil {
		return nil, err
	}
	for i := range script {
		script[i].Line = strings.Clone(script[i].Line)
	}
	return &Script{arena: a, id: a.register(), edits: script}, nil
}

// ComputeDiffWire is like [Arena.ComputeDiff] but takes both sequences in wire encoding (see
// package [wire]).
func (a *Arena) ComputeDiffWire(old, new []byte) (*Script, error) {
	x, err := wire.UnmarshalLines(old)
	if err != nil {
		return nil, err
	}
	y, err := wire.UnmarshalLines(new)
	if err != nil {
		return nil, err
	}
	return a.ComputeDiff(x, y)
}

// ApplyScript applies s to old and returns the resulting sequence.
//
// Errors match [ErrNilHandle], [ErrReleased] or [ErrForeignHandle] for an unusable script and
// [linediff.ErrMalformedScript] if the script doesn't fit old.
func (a *Arena) ApplyScript(old []string, s *Script) (*Lines, error) {
	if s == nil {
		return nil, ErrNilHandle
	}
	if s.arena != a {
		return nil, ErrForeignHandle
	}
	if !a.isLive(s.id) {
		return nil, ErrReleased
	}
	return a.apply(old, s.edits)
}

// ApplyScriptWire is like [Arena.ApplyScript] but takes the old sequence and the edit script in
// wire encoding.
func (a *Arena) ApplyScriptWire(old, script []byte) (*Lines, error) {
	x, err := wire.UnmarshalLines(old)
	if err != nil {
		return nil, err
	}
	edits, err := wire.UnmarshalScript(script)
	if err != nil {
		return nil, err
	}
	return a.apply(x, edits)
}

func (a *Arena) apply(old []string, script []linediff.Edit[string]) (*Lines, error) {
	out, err := linediff.Apply(old, script)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i] = strings.Clone(out[i])
	}
	return &Lines{arena: a, id: a.register(), lines: out}, nil
}

// Script is an owned edit script. It must be released with [Script.Release]. A script may be
// read concurrently, but it must not be released while it is in use.
type Script struct {
	arena *Arena
	id    uint64
	edits []linediff.Edit[string]
}

// Edits returns a copy of the edit script.
func (s *Script) Edits() ([]linediff.Edit[string], error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return slices.Clone(s.edits), nil
}

// MarshalBinary returns the wire encoding of the edit script.
func (s *Script) MarshalBinary() ([]byte, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return wire.MarshalScript(s.edits)
}

// Release frees the script. Releasing a nil script is a no-op, releasing a script twice returns
// [ErrReleased].
func (s *Script) Release() error {
	if s == nil {
		return nil
	}
	if s.arena == nil {
		return ErrForeignHandle
	}
	if err := s.arena.release(s.id); err != nil {
		return err
	}
	s.edits = nil
	return nil
}

func (s *Script) check() error {
	if s == nil {
		return ErrNilHandle
	}
	if s.arena == nil {
		return ErrForeignHandle
	}
	if !s.arena.isLive(s.id) {
		return ErrReleased
	}
	return nil
}

// Lines is an owned sequence of lines. It must be released with [Lines.Release].
type Lines struct {
	arena *Arena
	id    uint64
	lines []string
}

// Lines returns a copy of the sequence.
func (l *Lines) Lines() ([]string, error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	return slices.Clone(l.lines), nil
}

// MarshalBinary returns the wire encoding of the sequence.
func (l *Lines) MarshalBinary() ([]byte, error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	return wire.MarshalLines(l.lines), nil
}

// Release frees the sequence. Releasing nil is a no-op, releasing twice returns [ErrReleased].
func (l *Lines) Release() error {
	if l == nil {
		return nil
	}
	if l.arena == nil {
		return ErrForeignHandle
	}
	if err := l.arena.release(l.id); err != nil {
		return err
	}
	l.lines = nil
	return nil
}

func (l *Lines) check() error {
	if l == nil {
		return ErrNilHandle
	}
	if l.arena == nil {
		return ErrForeignHandle
	}
	if !l.arena.isLive(l.id) {
		return ErrReleased
	}
	return nil
}
