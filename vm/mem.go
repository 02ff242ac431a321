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

package vm

import (
	"io"
	"strconv"

	"github.com/davidgovea/intcode/internal/ici"
)

// Memory is a fixed size Intcode memory image. Accesses through Fetch and Store
// are bounds checked and never grow the image.
type Memory []Cell

// Fetch returns the value stored at address addr.
func (m Memory) Fetch(addr Cell) (Cell, error) {
	if addr < 0 || addr >= Cell(len(m)) {
		return 0, &Error{Kind: MemoryAccessFault, Addr: addr}
	}
	return m[addr], nil
}

// Store writes v at address addr.
func (m Memory) Store(addr, v Cell) error {
	if addr < 0 || addr >= Cell(len(m)) {
		return &Error{Kind: MemoryAccessFault, Addr: addr}
	}
	m[addr] = v
	return nil
}

// Clone returns a copy of m.
func (m Memory) Clone() Memory {
	if m == nil {
		return nil
	}
	c := make(Memory, len(m))
	copy(c, m)
	return c
}

// Equal reports whether m and o have the same length and contents.
func (m Memory) Equal(o Memory) bool {
	if len(m) != len(o) {
		return false
	}
	for k := range m {
		if m[k] != o[k] {
			return false
		}
	}
	return true
}

// WriteTo writes the memory image to w in program text form: base 10 values
// separated by commas, followed by a newline.
func (m Memory) WriteTo(w io.Writer) (int64, error) {
	ew := ici.NewErrWriter(w)
	b := make([]byte, 0, 24)
	for k, v := range m {
		b = b[:0]
		if k > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		ew.Write(b)
	}
	ew.Write([]byte{'\n'})
	return ew.N, ew.Err
}

func (m Memory) String() string {
	b := make([]byte, 0, len(m)*4)
	for k, v := range m {
		if k > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
	}
	return string(b)
}
