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

// Package vm implements the Intcode virtual machine.
//
// An Intcode program is a flat sequence of signed integers. The machine reads
// instructions from that same memory, so programs are free to overwrite their
// own code. Each instruction word encodes an opcode in its two low decimal
// digits and one addressing mode digit per parameter above them:
//
//	1002,4,3,4
//	  ^^ opcode 2 (multiply)
//	 ^   parameter 1: position mode (0)
//	^    parameter 2: immediate mode (1)
//	     parameter 3: position mode (missing digits default to 0)
//
// The machine is driven one step at a time. Step runs the fetch-decode-execute
// loop until an output instruction completes, an input instruction finds no
// value, or the machine halts or faults, and reports what happened as an Event.
// A host reacts to NeedsInput by calling Supply (or PushInput) and stepping
// again; the pending input instruction is then retried from the start. This
// lets a single goroutine drive any number of instances, routing the outputs of
// one to the inputs of another, without threads or shared state.
//
// For hosts that do not need fine grained control, Run drives an instance to
// completion, feeding it from its input queue or InputFunc and handing outputs
// to an OutHandler. The Exec helper does the same for one-shot computations.
//
// Faults are terminal: once an instance reports a Fault event, every further
// Step reports the same fault and memory is left as it was when the fault
// occurred.
package vm
