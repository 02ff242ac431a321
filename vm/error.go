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
	"strconv"

	"github.com/pkg/errors"
)

// ErrorKind describes the reason for a machine fault.
type ErrorKind int

// Fault kinds.
const (
	InvalidOpcode ErrorKind = iota + 1
	InvalidAddressingMode
	InvalidWriteTarget
	MemoryAccessFault
	InputRequestedWithNoPolicy
	IOError
	StepLimitExceeded
)

var strError = [...]string{
	"no error",
	"invalid opcode",
	"invalid addressing mode",
	"invalid write target",
	"memory access fault",
	"input requested with no policy",
	"I/O error",
	"step limit exceeded",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(strError) {
		return "error kind " + strconv.Itoa(int(k))
	}
	return strError[k]
}

// Error describes the cause and the context of a machine fault.
type Error struct {
	Kind ErrorKind
	PC   int   // instruction pointer of the faulting instruction
	Word Cell  // instruction word when Kind is InvalidOpcode or InvalidAddressingMode
	Addr Cell  // address when Kind is MemoryAccessFault
	Err  error // underlying error when Kind is IOError
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	switch e.Kind {
	case InvalidOpcode, InvalidAddressingMode:
		msg += " " + strconv.FormatInt(int64(e.Word), 10)
	case MemoryAccessFault:
		msg += " at address " + strconv.FormatInt(int64(e.Addr), 10)
	case IOError:
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
	}
	return msg + " @pc=" + strconv.Itoa(e.PC)
}

// Unwrap returns the underlying I/O error, if any.
func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the fault kind of err, or 0 if err is not a machine fault.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Host protocol errors. These never fault the instance.
var (
	// ErrUnexpectedInput is returned by Supply when the instance is not waiting
	// for input, or already has a value pending.
	ErrUnexpectedInput = errors.New("input supplied while not awaiting input")
	// ErrNoInput is returned by an InputFunc when it has no value available.
	ErrNoInput = errors.New("no input available")
)
