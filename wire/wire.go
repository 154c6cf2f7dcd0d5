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

// Package wire implements a self-delimiting binary encoding for text sequences and edit scripts.
//
// The encoding is meant to exchange data with programs written in other languages that cannot
// share Go memory. Every value is encoded as
//
//	text:   0x01 uvarint(len) bytes
//	absent: 0x00
//
// A sequence of lines is a list of text values terminated by an absent value. An edit script is
// a list of records, each a tag byte (0 = Equal, 1 = Delete, 2 = Insert) followed by a text
// value; the script is terminated by the record "tag 0, absent". Since text values are length
// prefixed, lines may contain any byte including NUL.
//
// Text is UTF-8. Ill-formed UTF-8 is replaced with U+FFFD both when encoding and when decoding,
// so the conversion is lossy for text that is not valid UTF-8. Use
// [Decoder.DisallowInvalidUTF8] to reject such input instead.
package wire

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"znkr.io/linediff"
)

const (
	tagAbsent byte = 0x00
	tagText   byte = 0x01
)

// MaxTextLen is the longest text value a [Decoder] accepts.
const MaxTextLen = 1 << 30

var (
	// ErrUnterminated is returned if the input ends before the terminating sentinel.
	ErrUnterminated = errors.New("wire: missing terminating sentinel")

	// ErrInvalidOp is returned for a script record with a tag that is not an edit operation. It
	// also matches [linediff.ErrMalformedScript].
	ErrInvalidOp = fmt.Errorf("wire: invalid edit operation: %w", linediff.ErrMalformedScript)

	// ErrMissingText is returned for a Delete or Insert record without text.
	ErrMissingText = errors.New("wire: edit record without text")

	// ErrInvalidUTF8 is returned by a strict [Decoder] for text that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("wire: invalid UTF-8")

	// ErrTrailingData is returned if there is data after the end of an encoded value.
	ErrTrailingData = errors.New("wire: trailing data")

	errInvalidTag = errors.New("wire: invalid value tag")
	errTooLong    = errors.New("wire: text too long")
)

// sanitize replaces ill-formed UTF-8 in s with U+FFFD.
func sanitize(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	out, _, err := transform.String(runes.ReplaceIllFormed(), s)
	if err != nil {
		panic("never reached")
	}
	return out
}

// MarshalLines returns the encoding of lines.
func MarshalLines(lines []string) []byte {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.WriteLines(lines); err != nil {
		panic("never reached")
	}
	return buf.Bytes()
}

// UnmarshalLines decodes a sequence of lines. data must contain exactly one encoded sequence.
func UnmarshalLines(data []byte) ([]string, error) {
	dec := NewDecoder(bytes.NewReader(data))
	lines, err := dec.ReadLines()
	if err != nil {
		return nil, err
	}
	if err := dec.expectEOF(); err != nil {
		return nil, err
	}
	return lines, nil
}

// MarshalScript returns the encoding of script.
//
// An error matching [ErrInvalidOp] is returned if the script contains an unknown operation.
func MarshalScript(script []linediff.Edit[string]) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.WriteScript(script); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalScript decodes an edit script. data must contain exactly one encoded script.
func UnmarshalScript(data []byte) ([]linediff.Edit[string], error) {
	dec := NewDecoder(bytes.NewReader(data))
	script, err := dec.ReadScript()
	if err != nil {
		return nil, err
	}
	if err := dec.expectEOF(); err != nil {
		return nil, err
	}
	return script, nil
}
