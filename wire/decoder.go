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

package wire

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"znkr.io/linediff"
)

// Decoder reads encoded values from an input stream.
type Decoder struct {
	r      *bufio.Reader
	strict bool
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder introduces its own buffering and may read data from r beyond the values requested.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// DisallowInvalidUTF8 causes the decoder to return an error matching [ErrInvalidUTF8] for text
// that is not valid UTF-8 instead of replacing ill-formed bytes with U+FFFD.
func (d *Decoder) DisallowInvalidUTF8() {
	d.strict = true
}

// ReadLines reads a sequence of lines up to and including its terminating sentinel.
func (d *Decoder) ReadLines() ([]string, error) {
	var lines []string
	for {
		s, ok, err := d.value()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", len(lines), err)
		}
		if !ok {
			return lines, nil
		}
		lines = append(lines, s)
	}
}

// ReadScript reads an edit script up to and including its terminating record.
func (d *Decoder) ReadScript() ([]linediff.Edit[string], error) {
	var script []linediff.Edit[string]
	for {
		n := len(script)
		tag, err := d.r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", n, eof(err))
		}
		op := linediff.Op(tag)
		if !op.Valid() {
			return nil, fmt.Errorf("%w: record %d has operation %d", ErrInvalidOp, n, tag)
		}
		s, ok, err := d.value()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", n, err)
		}
		if !ok {
			if op != linediff.Equal {
				return nil, fmt.Errorf("record %d (%v): %w", n, op, ErrMissingText)
			}
			return script, nil
		}
		script = append(script, linediff.Edit[string]{Op: op, Line: s})
	}
}

// value reads a single value; ok is false for an absent value.
func (d *Decoder) value() (s string, ok bool, err error) {
	tag, err := d.r.ReadByte()
	if err != nil {
		return "", false, eof(err)
	}
	switch tag {
	case tagAbsent:
		return "", false, nil
	case tagText:
	default:
		return "", false, fmt.Errorf("%w 0x%02x", errInvalidTag, tag)
	}

	n, err := binary.ReadUvarint(d.r)
	if err != nil {
		return "", false, eof(err)
	}
	if n > MaxTextLen {
		return "", false, fmt.Errorf("%w: %d bytes", errTooLong, n)
	}
	// Grow with the payload actually present, not with the declared length.
	var sb strings.Builder
	if _, err := io.CopyN(&sb, d.r, int64(n)); err != nil {
		return "", false, eof(err)
	}
	s = sb.String()
	if !utf8.ValidString(s) {
		if d.strict {
			return "", false, ErrInvalidUTF8
		}
		s = sanitize(s)
	}
	return s, true, nil
}

func (d *Decoder) expectEOF() error {
	if _, err := d.r.ReadByte(); err != io.EOF {
		if err != nil {
			return err
		}
		return ErrTrailingData
	}
	return nil
}

// eof maps a premature end of input to ErrUnterminated.
func eof(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrUnterminated
	}
	return err
}
