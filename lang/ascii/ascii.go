// This file is part of intcode - https://github.com/davidgovea/intcode
//
// Copyright 2019 The intcode Authors
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

// Package ascii provides helpers for intcode programs that talk ASCII: they
// read text one character per input value and print text one character per
// output value. Values outside of the ASCII range are not text; by convention
// they carry a numeric result and are printed in decimal on a line of their
// own.
package ascii

import (
	"io"
	"strconv"
	"strings"

	"github.com/davidgovea/intcode/internal/ici"
	"github.com/davidgovea/intcode/vm"
)

// MaxChar is the largest output value treated as a character.
const MaxChar = 127

// IsChar returns true if v is an ASCII character.
func IsChar(v vm.Cell) bool {
	return v >= 0 && v <= MaxChar
}

// Encode returns the input values for s, one per rune.
func Encode(s string) []vm.Cell {
	values := make([]vm.Cell, 0, len(s))
	for _, r := range s {
		values = append(values, vm.Cell(r))
	}
	return values
}

// Input returns an option that queues s as input.
func Input(s string) vm.Option {
	return vm.Input(Encode(s)...)
}

// Lines returns an option that queues each line as input, terminated by a
// newline.
func Lines(lines ...string) vm.Option {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return Input(b.String())
}

func appendValue(b []byte, v vm.Cell) []byte {
	if IsChar(v) {
		return append(b, byte(v))
	}
	b = strconv.AppendInt(b, int64(v), 10)
	return append(b, '\n')
}

// Decode converts output values to text.
func Decode(values []vm.Cell) string {
	b := make([]byte, 0, len(values))
	for _, v := range values {
		b = appendValue(b, v)
	}
	return string(b)
}

// Split returns the text part of values and the non-ASCII values, in order.
func Split(values []vm.Cell) (text string, numbers []vm.Cell) {
	b := make([]byte, 0, len(values))
	for _, v := range values {
		if IsChar(v) {
			b = append(b, byte(v))
		} else {
			numbers = append(numbers, v)
		}
	}
	return string(b), numbers
}

// Writer returns an output handler that prints values to w.
func Writer(w io.Writer) vm.OutHandler {
	ew := ici.NewErrWriter(w)
	var b []byte
	return func(_ *vm.Instance, v vm.Cell) error {
		b = appendValue(b[:0], v)
		_, err := ew.Write(b)
		return err
	}
}

// ReaderInput returns an input policy reading runes from r. Carriage returns
// and CRLF pairs are read as a single newline, so that programs see the same
// line endings from a terminal in raw mode, a Windows console or a plain
// file.
func ReaderInput(r io.Reader) vm.InputFunc {
	next := vm.ReaderInput(r)
	cr := false
	return func(i *vm.Instance) (vm.Cell, error) {
		for {
			c, err := next(i)
			if err != nil {
				return c, err
			}
			if c == '\n' && cr {
				cr = false
				continue
			}
			cr = c == '\r'
			if cr {
				c = '\n'
			}
			return c, nil
		}
	}
}
