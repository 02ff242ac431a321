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

import "github.com/pkg/errors"

// EventKind identifies the kind of an Event.
type EventKind int

// Event kinds.
const (
	Produced   EventKind = iota // an output instruction completed, Value holds the output
	NeedsInput                  // an input instruction found no value; supply one and step again
	Done                        // the machine halted
	Fault                       // the machine faulted, Err holds the *Error
)

var eventNames = [...]string{"produced", "needs input", "done", "fault"}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "invalid event"
	}
	return eventNames[k]
}

// Event is the result of a call to Step.
type Event struct {
	Kind  EventKind
	Value Cell  // output value for Produced events
	Err   error // *Error for Fault events
}

func (i *Instance) fault(err error) Event {
	var e *Error
	if !errors.As(err, &e) {
		e = &Error{Kind: IOError, Err: err}
	}
	e.PC = i.PC
	i.err = e
	i.state = Faulted
	return Event{Kind: Fault, Err: e}
}

// param returns the raw value of the n-th (1-based) parameter of the current
// instruction.
func (i *Instance) param(n int) (Cell, error) {
	return i.Mem.Fetch(Cell(i.PC + n))
}

// read resolves the n-th parameter of ins to a value.
func (i *Instance) read(ins Instruction, n int) (Cell, error) {
	raw, err := i.param(n)
	if err != nil {
		return 0, err
	}
	if ins.Modes[n-1] == Immediate {
		return raw, nil
	}
	return i.Mem.Fetch(raw)
}

// target resolves the n-th parameter of ins to a write address. Bounds are
// checked by the store itself.
func (i *Instance) target(ins Instruction, n int) (Cell, error) {
	if ins.Modes[n-1] != Position {
		return 0, &Error{Kind: InvalidWriteTarget}
	}
	return i.param(n)
}

// Step runs the machine until it produces an output, needs an input value that
// is not available, halts or faults, and reports which of these happened.
//
// After a NeedsInput event the instruction pointer still points at the input
// instruction. A value must be made available with Supply or PushInput before
// the next call to Step, otherwise the instance faults with
// InputRequestedWithNoPolicy. Once an instance has halted or faulted, Step
// keeps returning the same Done or Fault event.
func (i *Instance) Step() Event {
	switch i.state {
	case Halted:
		return Event{Kind: Done}
	case Faulted:
		return Event{Kind: Fault, Err: i.err}
	}
	retry := i.state == AwaitingInput
	i.state = Running

	for {
		if i.maxSteps > 0 && i.insCount >= i.maxSteps {
			return i.fault(&Error{Kind: StepLimitExceeded})
		}
		if i.traceH != nil {
			i.traceH(i)
		}
		word, err := i.Mem.Fetch(Cell(i.PC))
		if err != nil {
			return i.fault(err)
		}
		ins, err := Decode(word)
		if err != nil {
			return i.fault(err)
		}
		switch ins.Op {
		case OpAdd, OpMul, OpLessThan, OpEquals:
			lhs, err := i.read(ins, 1)
			if err != nil {
				return i.fault(err)
			}
			rhs, err := i.read(ins, 2)
			if err != nil {
				return i.fault(err)
			}
			dst, err := i.target(ins, 3)
			if err != nil {
				return i.fault(err)
			}
			var v Cell
			switch ins.Op {
			case OpAdd:
				v = lhs + rhs
			case OpMul:
				v = lhs * rhs
			case OpLessThan:
				if lhs < rhs {
					v = 1
				}
			case OpEquals:
				if lhs == rhs {
					v = 1
				}
			}
			if err = i.Mem.Store(dst, v); err != nil {
				return i.fault(err)
			}
			i.PC += 4
		case OpJumpIfTrue, OpJumpIfFalse:
			cond, err := i.read(ins, 1)
			if err != nil {
				return i.fault(err)
			}
			to, err := i.read(ins, 2)
			if err != nil {
				return i.fault(err)
			}
			if (cond != 0) == (ins.Op == OpJumpIfTrue) {
				i.PC = int(to)
			} else {
				i.PC += 3
			}
		case OpIn:
			dst, err := i.target(ins, 1)
			if err != nil {
				return i.fault(err)
			}
			v, ok, err := i.nextInput()
			if err != nil {
				return i.fault(&Error{Kind: IOError, Err: err})
			}
			if !ok {
				if retry {
					return i.fault(&Error{Kind: InputRequestedWithNoPolicy})
				}
				i.state = AwaitingInput
				return Event{Kind: NeedsInput}
			}
			if err = i.Mem.Store(dst, v); err != nil {
				return i.fault(err)
			}
			i.PC += 2
		case OpOut:
			v, err := i.read(ins, 1)
			if err != nil {
				return i.fault(err)
			}
			i.PC += 2
			i.insCount++
			return Event{Kind: Produced, Value: v}
		case OpHalt:
			i.state = Halted
			i.insCount++
			return Event{Kind: Done}
		}
		retry = false
		i.insCount++
	}
}
