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
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/davidgovea/intcode/asm"
	"github.com/davidgovea/intcode/program"
	"github.com/davidgovea/intcode/vm"
)

func newInstance(t *testing.T, code string, opts ...vm.Option) *vm.Instance {
	t.Helper()
	i, err := vm.New(program.MustParse(code), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return i
}

func assemble(t *testing.T, code string) vm.Memory {
	t.Helper()
	mem, err := asm.Assemble(t.Name(), strings.NewReader(code))
	if err != nil {
		t.Fatal(err)
	}
	return mem
}

func expectEvent(t *testing.T, i *vm.Instance, kind vm.EventKind, v vm.Cell) {
	t.Helper()
	ev := i.Step()
	if ev.Kind != kind || (kind == vm.Produced && ev.Value != v) {
		t.Fatalf("expected %v %d, got %v %d (%v)", kind, v, ev.Kind, ev.Value, ev.Err)
	}
}

func TestSuspend(t *testing.T) {
	i := newInstance(t, "3,0,4,0,99")
	if i.State() != vm.Ready {
		t.Fatalf("expected state %v, got %v", vm.Ready, i.State())
	}
	before := i.Snapshot()

	expectEvent(t, i, vm.NeedsInput, 0)
	if i.State() != vm.AwaitingInput {
		t.Errorf("expected state %v, got %v", vm.AwaitingInput, i.State())
	}
	if i.PC != 0 {
		t.Errorf("expected PC 0, got %d", i.PC)
	}
	if !before.Equal(i.Mem) {
		t.Errorf("memory changed while suspended: %v", i.Mem)
	}

	if err := i.Supply(7); err != nil {
		t.Fatal(err)
	}
	if err := i.Supply(8); errors.Cause(err) != vm.ErrUnexpectedInput {
		t.Errorf("second Supply: expected ErrUnexpectedInput, got %v", err)
	}

	expectEvent(t, i, vm.Produced, 7)
	if i.State() != vm.Running {
		t.Errorf("expected state %v, got %v", vm.Running, i.State())
	}
	if i.PC != 4 {
		t.Errorf("expected PC 4, got %d", i.PC)
	}
	expectEvent(t, i, vm.Done, 0)
	expectEvent(t, i, vm.Done, 0)
	if i.State() != vm.Halted {
		t.Errorf("expected state %v, got %v", vm.Halted, i.State())
	}
	if err := i.Supply(1); errors.Cause(err) != vm.ErrUnexpectedInput {
		t.Errorf("Supply after halt: expected ErrUnexpectedInput, got %v", err)
	}
	if i.Err() != nil {
		t.Errorf("unexpected error %v", i.Err())
	}
}

func TestSupply_notAwaiting(t *testing.T) {
	i := newInstance(t, "3,0,99")
	if err := i.Supply(1); errors.Cause(err) != vm.ErrUnexpectedInput {
		t.Errorf("expected ErrUnexpectedInput, got %v", err)
	}
	// the failed Supply did not queue anything
	expectEvent(t, i, vm.NeedsInput, 0)
}

func TestSuspend_unsupplied(t *testing.T) {
	i := newInstance(t, "3,0,99")
	expectEvent(t, i, vm.NeedsInput, 0)
	ev := i.Step()
	if ev.Kind != vm.Fault || vm.KindOf(ev.Err) != vm.InputRequestedWithNoPolicy {
		t.Fatalf("expected InputRequestedWithNoPolicy fault, got %v %v", ev.Kind, ev.Err)
	}
	if err := i.Supply(1); err == nil {
		t.Error("Supply on a faulted instance should fail")
	}
}

func TestPushInput(t *testing.T) {
	mem := assemble(t, "in a in b add a b a out a hlt :a .dat 0 :b .dat 0")
	i, err := vm.New(mem, vm.Input(1))
	if err != nil {
		t.Fatal(err)
	}
	// the first input comes from the queue, the second one is missing
	expectEvent(t, i, vm.NeedsInput, 0)
	if i.PC != 2 {
		t.Fatalf("expected PC 2, got %d", i.PC)
	}
	i.PushInput(41, 100)
	if i.Pending() != 2 {
		t.Errorf("expected 2 pending values, got %d", i.Pending())
	}
	expectEvent(t, i, vm.Produced, 42)
	if i.Pending() != 1 {
		t.Errorf("expected 1 pending value, got %d", i.Pending())
	}
	expectEvent(t, i, vm.Done, 0)
}

func TestFeedback(t *testing.T) {
	// each instance adds its own increment to its input and passes it along.
	code := "in x add x #%d x out x jt #1 #0 :x .dat 0"
	var ring []*vm.Instance
	for _, inc := range []string{"1", "10", "100"} {
		mem := assemble(t, strings.Replace(code, "%d", inc, 1))
		i, err := vm.New(mem)
		if err != nil {
			t.Fatal(err)
		}
		ring = append(ring, i)
	}
	ring[0].PushInput(0)
	var last vm.Cell
	for round := 0; round < 4; round++ {
		for k, i := range ring {
			ev := i.Step()
			if ev.Kind != vm.Produced {
				t.Fatalf("round %d instance %d: unexpected %v", round, k, ev.Kind)
			}
			ring[(k+1)%len(ring)].PushInput(ev.Value)
			last = ev.Value
		}
	}
	if last != 444 {
		t.Errorf("expected 444, got %d", last)
	}
	// every instance is now blocked on its next input, except the first one
	// which holds the last value.
	for k, i := range ring[1:] {
		if ev := i.Step(); ev.Kind != vm.NeedsInput {
			t.Errorf("instance %d: expected NeedsInput, got %v", k+1, ev.Kind)
		}
	}
}

func TestDeterminism(t *testing.T) {
	mem := program.MustParse(compare8)
	var prints []uint64
	for n := 0; n < 3; n++ {
		out, final, err := vm.Exec(mem, 5)
		if err != nil {
			t.Fatal(err)
		}
		if !cellsEqual(out, C{999}) {
			t.Errorf("run %d: unexpected output %v", n, out)
		}
		i, _ := vm.New(final)
		prints = append(prints, i.Fingerprint())
	}
	if prints[0] != prints[1] || prints[1] != prints[2] {
		t.Errorf("fingerprints differ: %v", prints)
	}
	// the source image is untouched
	if !mem.Equal(program.MustParse(compare8)) {
		t.Error("Exec modified its input image")
	}
}

func TestFingerprint(t *testing.T) {
	a := newInstance(t, "3,0,99")
	b := newInstance(t, "3,0,99")
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical instances have different fingerprints")
	}
	b.PushInput(3)
	b.Step()
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("different states have the same fingerprint")
	}
}

func TestSnapshot(t *testing.T) {
	src := program.MustParse("1,0,0,0,99")
	i, err := vm.New(src)
	if err != nil {
		t.Fatal(err)
	}
	src[0] = 2
	snap := i.Snapshot()
	snap[4] = 0
	if err = i.Run(); err != nil {
		t.Fatal(err)
	}
	if want := (vm.Memory{2, 0, 0, 0, 99}); !i.Mem.Equal(want) {
		t.Errorf("expected %v, got %v", want, i.Mem)
	}
	if i.InstructionCount() != 2 {
		t.Errorf("expected 2 instructions, got %d", i.InstructionCount())
	}
}

func TestTrace(t *testing.T) {
	var pcs []int
	trace := func(i *vm.Instance) { pcs = append(pcs, i.PC) }
	i := newInstance(t, "1101,2,3,7,4,7,99,0", vm.Trace(trace))
	expectEvent(t, i, vm.Produced, 5)
	expectEvent(t, i, vm.Done, 0)
	if want := []int{0, 4, 6}; len(pcs) != len(want) || pcs[0] != 0 || pcs[1] != 4 || pcs[2] != 6 {
		t.Errorf("expected %v, got %v", want, pcs)
	}
}

func TestStepLimit(t *testing.T) {
	i := newInstance(t, "1105,1,0", vm.StepLimit(100))
	err := i.Run()
	if vm.KindOf(err) != vm.StepLimitExceeded {
		t.Fatalf("expected StepLimitExceeded, got %v", err)
	}
	if i.InstructionCount() != 100 {
		t.Errorf("expected 100 instructions, got %d", i.InstructionCount())
	}
	if i.State() != vm.Faulted {
		t.Errorf("expected state %v, got %v", vm.Faulted, i.State())
	}
}

func TestDump(t *testing.T) {
	i := newInstance(t, "1002,4,3,4,33")
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := i.Dump(&b); err != nil {
		t.Fatal(err)
	}
	if b.String() != "1002,4,3,4,99\n" {
		t.Errorf("unexpected dump %q", b.String())
	}
}
