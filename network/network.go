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

// Package network runs several intcode instances connected in a chain, each
// one's outputs feeding the next one's inputs, optionally with the last
// instance feeding back into the first.
//
// Instances are driven cooperatively from a single goroutine: each tick steps
// every runnable instance until it blocks on input, halts or faults.
package network

import (
	"github.com/pkg/errors"

	"github.com/davidgovea/intcode/vm"
)

var (
	// ErrDeadlock is returned by Run when every live instance is waiting for
	// input that no other instance will produce.
	ErrDeadlock = errors.New("deadlock: all instances waiting for input")
	// ErrNoOutput is returned by Run when the last instance halted without
	// producing any output.
	ErrNoOutput = errors.New("no output from the last instance")
)

// Chain is a chain of instances.
type Chain struct {
	Nodes []*vm.Instance
	ticks int
}

// New returns a chain over the given instances, in order.
func New(nodes ...*vm.Instance) *Chain {
	return &Chain{Nodes: nodes}
}

// Ticks returns the number of scheduler rounds of the last call to Run.
func (c *Chain) Ticks() int {
	return c.ticks
}

func runnable(i *vm.Instance) bool {
	switch i.State() {
	case vm.Halted, vm.Faulted:
		return false
	case vm.AwaitingInput:
		return i.Pending() > 0
	}
	return true
}

// Run queues signal as input to the first instance and runs the chain to
// completion. Outputs of node k are queued as input to node k+1. Outputs of
// the last node are forwarded to the first one if feedback is true, otherwise
// they are dropped. Run returns the last value output by the last node.
func (c *Chain) Run(signal vm.Cell, feedback bool) (vm.Cell, error) {
	var (
		last   vm.Cell
		output bool
		n      = len(c.Nodes)
	)
	if n == 0 {
		return 0, errors.New("empty chain")
	}
	c.ticks = 0
	c.Nodes[0].PushInput(signal)
	for {
		progress := false
		for k, node := range c.Nodes {
			for runnable(node) {
				progress = true
				ev := node.Step()
				switch ev.Kind {
				case vm.Produced:
					if k < n-1 {
						c.Nodes[k+1].PushInput(ev.Value)
						continue
					}
					last, output = ev.Value, true
					if feedback {
						c.Nodes[0].PushInput(ev.Value)
					}
				case vm.Fault:
					return 0, errors.Wrapf(ev.Err, "node %d", k)
				}
			}
		}
		if !progress {
			break
		}
		c.ticks++
	}
	for k, node := range c.Nodes {
		if node.State() == vm.AwaitingInput {
			return 0, errors.Wrapf(ErrDeadlock, "node %d", k)
		}
	}
	if !output {
		return 0, ErrNoOutput
	}
	return last, nil
}
