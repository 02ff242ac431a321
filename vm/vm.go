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
	"encoding/binary"
	"io"

	"github.com/spaolacci/murmur3"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// State is the execution state of an Instance.
type State int

// Machine states. Halted and Faulted are terminal.
const (
	Ready State = iota
	Running
	AwaitingInput
	Halted
	Faulted
)

var stateNames = [...]string{"ready", "running", "awaiting input", "halted", "faulted"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "invalid state"
	}
	return stateNames[s]
}

// Instance represents an Intcode VM instance.
type Instance struct {
	PC       int    // Program Counter (aka. Instruction Pointer)
	Mem      Memory // Memory image
	state    State
	err      *Error
	insCount int64
	input    []Cell
	inF      InputFunc
	outH     OutHandler
	traceH   TraceHandler
	maxSteps int64
}

// Option interface
type Option func(*Instance) error

// InputFunc is the function prototype for input policies. It is called when an
// input instruction executes and the input queue is empty. It must return
// ErrNoInput (or io.EOF) if it has no value to offer, in which case the
// instance suspends with a NeedsInput event. Any other error faults the
// instance with an IOError.
type InputFunc func(i *Instance) (Cell, error)

// OutHandler is the function prototype for output handlers used by Run.
type OutHandler func(i *Instance, v Cell) error

// TraceHandler is called before each instruction is executed, with i.PC
// pointing at the instruction word.
type TraceHandler func(i *Instance)

// Input appends the given values to the input queue.
func Input(values ...Cell) Option {
	return func(i *Instance) error { i.PushInput(values...); return nil }
}

// InputPolicy sets the input policy consulted when the input queue is empty.
func InputPolicy(f InputFunc) Option {
	return func(i *Instance) error {
		i.inF = f
		return nil
	}
}

// Output sets the handler receiving produced values in Run.
func Output(h OutHandler) Option {
	return func(i *Instance) error {
		i.outH = h
		return nil
	}
}

// Trace sets a handler called before each instruction is executed.
func Trace(h TraceHandler) Option {
	return func(i *Instance) error {
		i.traceH = h
		return nil
	}
}

// StepLimit sets the maximum number of instructions the instance may execute.
// Once the budget is spent, the next instruction faults the instance with
// StepLimitExceeded. A limit <= 0 means no limit, which is the default.
func StepLimit(n int64) Option {
	return func(i *Instance) error {
		i.maxSteps = n
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode Virtual Machine instance.
//
// The mem parameter is the initial memory image. New works on a private copy
// of it, so the same image can be used to start any number of instances.
//
// Options will be set by calling SetOptions.
func New(mem Memory, opts ...Option) (*Instance, error) {
	i := &Instance{
		Mem: mem.Clone(),
	}
	if i.Mem == nil {
		i.Mem = Memory{}
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// State returns the current execution state.
func (i *Instance) State() State {
	return i.state
}

// Err returns the fault that stopped the instance, or nil if it has not
// faulted.
func (i *Instance) Err() error {
	if i.err == nil {
		return nil
	}
	return i.err
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Snapshot returns a copy of the instance's memory.
func (i *Instance) Snapshot() Memory {
	return i.Mem.Clone()
}

// Dump writes the instance's memory to w in program text form.
func (i *Instance) Dump(w io.Writer) error {
	_, err := i.Mem.WriteTo(w)
	return err
}

// Fingerprint returns a hash of the instruction pointer and memory contents.
// Two instances with the same fingerprint are, for all practical purposes, in
// the same machine state.
func (i *Instance) Fingerprint() uint64 {
	h := murmur3.New64()
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(i.PC))
	h.Write(b[:])
	for _, v := range i.Mem {
		binary.LittleEndian.PutUint64(b[:], uint64(v))
		h.Write(b[:])
	}
	return h.Sum64()
}
