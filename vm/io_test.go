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

package vm_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/pkg/errors"

	"github.com/davidgovea/intcode/program"
	"github.com/davidgovea/intcode/vm"
)

const echo = "3,0,4,0,1105,1,0"

func TestInputPolicy_constant(t *testing.T) {
	var outs C
	one := func(*vm.Instance) (vm.Cell, error) { return 1, nil }
	collect := func(_ *vm.Instance, v vm.Cell) error {
		outs = append(outs, v)
		if len(outs) == 3 {
			return errStop
		}
		return nil
	}
	i := newInstance(t, echo, vm.InputPolicy(one), vm.Output(collect))
	if err := i.Run(); errors.Cause(err) != errStop {
		t.Fatalf("unexpected error %v", err)
	}
	if !cellsEqual(outs, C{1, 1, 1}) {
		t.Errorf("expected 1,1,1, got %v", outs)
	}
}

var errStop = errors.New("stop")

func TestInputPolicy_queueFirst(t *testing.T) {
	calls := 0
	policy := func(*vm.Instance) (vm.Cell, error) { calls++; return 9, nil }
	i := newInstance(t, echo, vm.Input(4, 5), vm.InputPolicy(policy))
	expectEvent(t, i, vm.Produced, 4)
	expectEvent(t, i, vm.Produced, 5)
	if calls != 0 {
		t.Errorf("policy called %d times before the queue was drained", calls)
	}
	expectEvent(t, i, vm.Produced, 9)
	if calls != 1 {
		t.Errorf("expected 1 policy call, got %d", calls)
	}
}

func TestInputPolicy_noInput(t *testing.T) {
	policy := func(*vm.Instance) (vm.Cell, error) { return 0, vm.ErrNoInput }
	i := newInstance(t, echo, vm.InputPolicy(policy))
	expectEvent(t, i, vm.NeedsInput, 0)
	if err := i.Supply(12); err != nil {
		t.Fatal(err)
	}
	expectEvent(t, i, vm.Produced, 12)
	expectEvent(t, i, vm.NeedsInput, 0)
	if ev := i.Step(); vm.KindOf(ev.Err) != vm.InputRequestedWithNoPolicy {
		t.Errorf("expected InputRequestedWithNoPolicy, got %v", ev.Err)
	}
}

func TestInputPolicy_wrappedEOF(t *testing.T) {
	policies := []vm.InputFunc{
		func(*vm.Instance) (vm.Cell, error) { return 0, fmt.Errorf("source: %w", io.EOF) },
		func(*vm.Instance) (vm.Cell, error) { return 0, fmt.Errorf("source: %w", vm.ErrNoInput) },
		func(*vm.Instance) (vm.Cell, error) { return 0, errors.Wrap(io.EOF, "source") },
	}
	for k, policy := range policies {
		i := newInstance(t, echo, vm.InputPolicy(policy))
		if ev := i.Step(); ev.Kind != vm.NeedsInput {
			t.Errorf("policy %d: expected NeedsInput, got %v %v", k, ev.Kind, ev.Err)
		}
	}
}

func TestInputPolicy_error(t *testing.T) {
	broken := errors.New("broken policy")
	policy := func(*vm.Instance) (vm.Cell, error) { return 0, broken }
	i := newInstance(t, echo, vm.InputPolicy(policy))
	ev := i.Step()
	if ev.Kind != vm.Fault {
		t.Fatalf("expected a fault, got %v", ev.Kind)
	}
	if vm.KindOf(ev.Err) != vm.IOError {
		t.Errorf("expected IOError, got %v", ev.Err)
	}
	if !errors.Is(ev.Err, broken) {
		t.Errorf("%v does not wrap %v", ev.Err, broken)
	}
	if i.PC != 0 {
		t.Errorf("expected PC 0, got %d", i.PC)
	}
}

func TestInputReader(t *testing.T) {
	i := newInstance(t, echo, vm.InputReader(strings.NewReader("hé")))
	expectEvent(t, i, vm.Produced, 'h')
	expectEvent(t, i, vm.Produced, 'é')
	expectEvent(t, i, vm.NeedsInput, 0)
}

func TestInputReader_plainReader(t *testing.T) {
	// iotest.OneByteReader hides ReadRune
	r := iotest.OneByteReader(strings.NewReader("é!"))
	i := newInstance(t, echo, vm.InputReader(r))
	expectEvent(t, i, vm.Produced, 'é')
	expectEvent(t, i, vm.Produced, '!')
	expectEvent(t, i, vm.NeedsInput, 0)
}

func TestInputReader_error(t *testing.T) {
	broken := errors.New("read error")
	i := newInstance(t, echo, vm.InputReader(iotest.ErrReader(broken)))
	err := i.Run()
	if vm.KindOf(err) != vm.IOError {
		t.Fatalf("expected IOError, got %v", err)
	}
	if errors.Cause(errors.Unwrap(err)) != broken {
		t.Errorf("%v does not wrap %v", err, broken)
	}
}

func TestOutput_error(t *testing.T) {
	fail := true
	var outs C
	h := func(_ *vm.Instance, v vm.Cell) error {
		if fail {
			fail = false
			return errStop
		}
		outs = append(outs, v)
		return nil
	}
	i := newInstance(t, "104,1,104,2,99", vm.Output(h))
	err := i.Run()
	if errors.Cause(err) != errStop {
		t.Fatalf("expected errStop, got %v", err)
	}
	if i.State() != vm.Running {
		t.Errorf("expected state %v, got %v", vm.Running, i.State())
	}
	// the instance resumes after the failed output
	if err = i.Run(); err != nil {
		t.Fatal(err)
	}
	if !cellsEqual(outs, C{2}) {
		t.Errorf("expected 2, got %v", outs)
	}
}

func TestExec_noInput(t *testing.T) {
	out, final, err := vm.Exec(program.MustParse("104,5,3,0,99"))
	if vm.KindOf(err) != vm.InputRequestedWithNoPolicy {
		t.Fatalf("expected InputRequestedWithNoPolicy, got %v", err)
	}
	if !cellsEqual(out, C{5}) {
		t.Errorf("expected output 5, got %v", out)
	}
	var e *vm.Error
	if !errors.As(err, &e) || e.PC != 2 {
		t.Errorf("expected fault at pc 2, got %v", err)
	}
	if final[0] != 104 {
		t.Errorf("memory was modified: %v", final)
	}
}
