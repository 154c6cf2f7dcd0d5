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

// Package lines splits text into lines and assembles text from lines for both string and []byte.
package lines

import (
	"slices"
	"strings"
	"sync"
	"unsafe"
)

// View returns the contents of in as a string without copying.
//
// The result must not be retained beyond the lifetime of in and in must not be modified while the
// view is in use.
func View[T string | []byte](in T) string {
	switch in := any(in).(type) {
	case string:
		return in
	case []byte:
		return unsafe.String(unsafe.SliceData(in), len(in))
	}
	panic("never reached")
}

// Split splits s after each '\n'. A final line without a newline character is kept as is, an
// empty input has no lines. Concatenating the result reproduces s.
func Split(s string) []string {
	n := strings.Count(s, "\n")
	if len(s) > 0 && s[len(s)-1] != '\n' {
		n++
	}
	if n == 0 {
		return nil
	}
	a := make([]string, 0, n)
	for len(s) > 0 {
		m := strings.IndexByte(s, '\n')
		if m < 0 {
			a = append(a, s)
			break
		}
		a = append(a, s[:m+1])
		s = s[m+1:]
	}
	return a
}

// MissingNewline reports whether line lacks a terminating newline character.
func MissingNewline(line string) bool {
	return !strings.HasSuffix(line, "\n")
}

// Builder assembles a string or []byte from lines.
type Builder[T string | []byte] struct {
	_   [0]sync.Mutex // don't copy
	buf []byte
}

func (b *Builder[T]) Grow(n int) {
	b.buf = slices.Grow(b.buf, n)
}

func (b *Builder[T]) Write(v []byte) (n int, err error) {
	b.buf = append(b.buf, v...)
	return len(v), nil
}

func (b *Builder[T]) WriteString(v string) (n int, err error) {
	b.buf = append(b.buf, v...)
	return len(v), nil
}

// Build returns the assembled value and resets the builder.
func (b *Builder[T]) Build() T {
	defer func() {
		b.buf = nil
	}()
	switch any((*T)(nil)).(type) {
	case *string:
		return T(unsafe.String(unsafe.SliceData(b.buf), len(b.buf)))
	case *[]byte:
		return T(b.buf)
	}
	panic("never reached")
}
