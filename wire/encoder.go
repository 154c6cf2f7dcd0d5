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
	"fmt"
	"io"

	"znkr.io/linediff"
)

// Encoder writes encoded values to an output stream.
type Encoder struct {
	w   *bufio.Writer
	tmp [binary.MaxVarintLen64]byte
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// WriteLines writes lines followed by the terminating sentinel and flushes the output.
func (e *Encoder) WriteLines(lines []string) error {
	for _, l := range lines {
		e.text(l)
	}
	e.w.WriteByte(tagAbsent)
	return e.w.Flush()
}

// WriteScript writes the records of script followed by the terminating record and flushes the
// output.
//
// Nothing is written if the script contains an unknown operation.
func (e *Encoder) WriteScript(script []linediff.Edit[string]) error {
	for i, ed := range script {
		if !ed.Op.Valid() {
			return fmt.Errorf("%w: record %d has operation %d", ErrInvalidOp, i, int(ed.Op))
		}
	}
	for _, ed := range script {
		e.w.WriteByte(byte(ed.Op))
		e.text(ed.Line)
	}
	e.w.WriteByte(byte(linediff.Equal))
	e.w.WriteByte(tagAbsent)
	return e.w.Flush()
}

// text writes a text value. Write errors are sticky in bufio.Writer and reported by Flush.
func (e *Encoder) text(s string) {
	s = sanitize(s)
	e.w.WriteByte(tagText)
	n := binary.PutUvarint(e.tmp[:], uint64(len(s)))
	e.w.Write(e.tmp[:n])
	e.w.WriteString(s)
}
