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

package asm

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/davidgovea/intcode/internal/ici"
	"github.com/davidgovea/intcode/vm"
)

const maxErrors = 10

// maxImageSize is the largest address accepted by .org.
const maxImageSize = 1 << 24

var aliases = map[string]vm.Opcode{
	"jnz":  vm.OpJumpIfTrue,
	"jz":   vm.OpJumpIfFalse,
	"halt": vm.OpHalt,
}

func lookup(s string) (vm.Opcode, bool) {
	if op, ok := aliases[s]; ok {
		return op, true
	}
	return vm.Lookup(s)
}

// ErrAsm wraps the errors found during assembly. It holds at most 10 entries.
type ErrAsm []struct {
	Pos scanner.Position
	Msg string
}

func (e ErrAsm) Error() string {
	var b strings.Builder
	for k, err := range e {
		if k > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Pos.String())
		b.WriteString(": ")
		b.WriteString(err.Msg)
	}
	return b.String()
}

func (e ErrAsm) sort() {
	sort.SliceStable(e, func(a, b int) bool {
		return e[a].Pos.Offset < e[b].Pos.Offset
	})
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting memory image and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (vm.Memory, error) {
	return newParser().Parse(name, r)
}

// Disassemble writes a disassembly of the instruction at position pc in mem to
// the specified io.Writer and returns the position of the next instruction and
// any write error.
//
// Words that do not decode to a valid instruction are written as a .dat
// directive. Operands past the end of mem are written as ???.
func Disassemble(mem vm.Memory, pc int, w io.Writer) (next int, err error) {
	ew := ici.NewErrWriter(w)
	if pc < 0 || pc >= len(mem) {
		ew.WriteString("???")
		return len(mem), ew.Err
	}
	ins, derr := vm.Decode(mem[pc])
	if derr != nil {
		ew.WriteString(".dat ")
		ew.WriteString(strconv.FormatInt(int64(mem[pc]), 10))
		return pc + 1, ew.Err
	}
	ew.WriteString(ins.Op.String())
	pc++
	for n := 0; n < ins.Op.Arity(); n++ {
		ew.Write([]byte{' '})
		if pc >= len(mem) {
			ew.WriteString("???")
			return len(mem), ew.Err
		}
		if ins.Modes[n] == vm.Immediate {
			ew.Write([]byte{'#'})
		}
		ew.WriteString(strconv.FormatInt(int64(mem[pc]), 10))
		pc++
	}
	return pc, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (mem[0]). It will return any write error.
//
// Data and code are indistinguishable in an Intcode image: the output is only
// meaningful where mem actually holds instructions.
func DisassembleAll(mem vm.Memory, base int, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	for pc := 0; pc < len(mem); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(mem, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
