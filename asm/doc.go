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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	Parameters written a, b are read, c is written. Destination parameters
//	are always addresses and cannot be immediate.
//
//	opcode	asm		params	description
//	------	---		------	------------------------------------------------
//	1	add		a b c	c = a + b
//	2	mul		a b c	c = a * b
//	3	in		c	c = next input value
//	4	out		a	produce a as output
//	5	jt, jnz		a b	jump to b if a != 0
//	6	jf, jz		a b	jump to b if a == 0
//	7	lt		a b c	c = 1 if a < b, else 0
//	8	eq		a b c	c = 1 if a == b, else 0
//	99	hlt, halt		halt the machine
//
// Operands:
//
// A plain operand uses position mode: its value is an address and the
// instruction works on the cell at that address. Prefixing an operand with '#'
// selects immediate mode, where the value is used as is:
//
//	add 10 #5 12	( mem[12] = mem[10] + 5, compiles as 1001,10,5,12 )
//
// An operand value is an integer literal (anything strconv.ParseInt accepts
// with base 0), a character literal such as 'a', a constant defined with .equ,
// or a label. A label used as an operand stands for its address:
//
//	jt #1 #loop	( unconditional jump to label loop )
//	out counter	( output the value stored at label counter )
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space.
//
//	( this is a valid comment )
//	(this is not, "(this" is taken as a token )
//
// Labels:
//
// Labels are defined by prefixing them with a colon and may be referenced
// before they are defined:
//
//	:loop	in counter
//		jt counter #loop
//		hlt
//	:counter .dat 0
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value usable anywhere an integer is expected.
//
//	.org <value>
//
// places the next instruction or data at the given address. Skipped cells are
// zero.
//
//	.dat <value> ...
//
// compiles the following values as-is, until the next instruction, label or
// directive.
package asm
