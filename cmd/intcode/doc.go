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

// The intcode command line tool runs intcode programs.
//
// Usage:
//
//	intcode [options] program
//
//	-ascii
//		  exchange input and output as ASCII text
//	-asm
//		  assemble the program from source instead of loading program text
//	-debug
//		  enable debug diagnostics
//	-disasm
//		  disassemble the program and exit
//	-dump
//		  dump machine state and memory to stderr upon exit
//	-feedback
//		  connect amplifiers in a feedback loop
//	-input values
//		  queue comma separated values as input (can be specified multiple times)
//	-limit n
//		  fault after n instructions (0 for no limit)
//	-noraw
//		  disable raw terminal IO in ASCII mode
//	-noun value
//		  store value at address 1 before running
//	-o filename
//		  save the final memory image to filename
//	-phases settings
//		  find the highest signal of amplifiers running the program with these phase settings
//	-target value
//		  search the noun and verb producing value at address 0
//	-trace
//		  trace executed instructions to stderr
//	-verb value
//		  store value at address 2 before running
//
// The program file holds comma separated base 10 integers, or assembly source
// with -asm (see package github.com/davidgovea/intcode/asm).
//
// By default, output values are printed one per line and input values are
// taken first from the -input flags, then read from stdin as integers
// separated by white space or commas. With -ascii, stdin is read as text and
// output values are printed as characters; values outside of the ASCII range
// are printed in decimal on a line of their own.
//
// -ascii: upon startup, intcode switches the terminal to unbuffered mode
// unless stdin has been redirected, so that programs see keys as they are
// typed. In this mode, CTRL-D ends input. -noraw disables this behavior.
//
// -debug: prints error stack traces and the machine state should the program
// fault.
//
// -noun, -verb: patch addresses 1 and 2 before running. The value left at
// address 0 is printed once the program halts.
//
// -target: runs the program with every noun and verb in [0, 100) until address
// 0 holds the target value, then prints the pair and 100*noun+verb.
//
// -phases: runs one copy of the program per phase setting, chained: each copy
// reads its phase setting, then the previous copy's outputs. The first copy
// reads 0 after its phase setting. Every ordering of the settings is tried and
// the highest final output is printed. With -feedback the last copy's outputs
// are fed back into the first one until all copies halt.
package main
