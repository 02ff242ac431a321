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

import "strconv"

// Opcode selects one of the machine operations.
type Opcode Cell

// Intcode opcodes.
const (
	OpAdd         Opcode = 1
	OpMul         Opcode = 2
	OpIn          Opcode = 3
	OpOut         Opcode = 4
	OpJumpIfTrue  Opcode = 5
	OpJumpIfFalse Opcode = 6
	OpLessThan    Opcode = 7
	OpEquals      Opcode = 8
	OpHalt        Opcode = 99
)

// MaxParams is the largest number of parameters taken by any instruction.
const MaxParams = 3

var opcodes = map[Opcode]struct {
	name  string
	arity int
	dst   int // 1-based index of the destination parameter, 0 if none
}{
	OpAdd:         {"add", 3, 3},
	OpMul:         {"mul", 3, 3},
	OpIn:          {"in", 1, 1},
	OpOut:         {"out", 1, 0},
	OpJumpIfTrue:  {"jt", 2, 0},
	OpJumpIfFalse: {"jf", 2, 0},
	OpLessThan:    {"lt", 3, 3},
	OpEquals:      {"eq", 3, 3},
	OpHalt:        {"hlt", 0, 0},
}

// Valid reports whether op is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Arity returns the number of parameters taken by op.
func (op Opcode) Arity() int {
	return opcodes[op].arity
}

// Dst returns the 1-based index of the parameter op writes to, or 0 if op does
// not write to memory.
func (op Opcode) Dst() int {
	return opcodes[op].dst
}

func (op Opcode) String() string {
	if o, ok := opcodes[op]; ok {
		return o.name
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// Lookup returns the opcode for the given mnemonic.
func Lookup(name string) (Opcode, bool) {
	for op, o := range opcodes {
		if o.name == name {
			return op, true
		}
	}
	return 0, false
}

// Mode is a parameter addressing mode.
type Mode uint8

// Addressing modes.
const (
	Position  Mode = iota // parameter is an address
	Immediate             // parameter is a literal value
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Instruction is a decoded instruction word. Only the first Op.Arity() entries
// of Modes are meaningful.
type Instruction struct {
	Op    Opcode
	Modes [MaxParams]Mode
}

// Decode decodes an instruction word. Mode digits beyond the opcode's arity are
// ignored.
func Decode(word Cell) (Instruction, error) {
	var ins Instruction
	if word < 0 {
		return ins, &Error{Kind: InvalidOpcode, Word: word}
	}
	ins.Op = Opcode(word % 100)
	if !ins.Op.Valid() {
		return ins, &Error{Kind: InvalidOpcode, Word: word}
	}
	m := word / 100
	for n := 0; n < ins.Op.Arity(); n++ {
		switch d := Mode(m % 10); d {
		case Position, Immediate:
			ins.Modes[n] = d
		default:
			return ins, &Error{Kind: InvalidAddressingMode, Word: word}
		}
		m /= 10
	}
	return ins, nil
}
