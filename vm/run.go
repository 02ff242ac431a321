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

// Run drives the instance until it halts or faults.
//
// Produced values are passed to the handler set with the Output option, or
// discarded if there is none. Input requests are served from the input queue
// and the input policy; if neither can provide a value, the instance faults with
// InputRequestedWithNoPolicy.
//
// Run returns nil once the instance has halted, the *Error that stopped it, or
// any error returned by the output handler. In the latter case the instance is
// left suspended just after the output instruction and Run may be called again.
func (i *Instance) Run() error {
	for {
		ev := i.Step()
		switch ev.Kind {
		case Produced:
			if i.outH == nil {
				continue
			}
			if err := i.outH(i, ev.Value); err != nil {
				return errors.Wrapf(err, "output @pc=%d", i.PC)
			}
		case NeedsInput:
			// nothing to feed it with: the next step reports the fault.
		case Done:
			return nil
		case Fault:
			return ev.Err
		}
	}
}

// Exec runs a copy of the memory image to completion with the given input
// values and returns the values it produced and its final memory.
//
// On error, the outputs produced so far and the memory at the time of the
// error are returned along with it.
func Exec(mem Memory, inputs ...Cell) (outputs []Cell, final Memory, err error) {
	collect := func(_ *Instance, v Cell) error {
		outputs = append(outputs, v)
		return nil
	}
	i, err := New(mem, Input(inputs...), Output(collect))
	if err != nil {
		return nil, nil, err
	}
	err = i.Run()
	return outputs, i.Mem, err
}
