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

package search_test

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"

	"github.com/davidgovea/intcode/program"
	"github.com/davidgovea/intcode/search"
	"github.com/davidgovea/intcode/vm"
)

func TestCompute(t *testing.T) {
	image := program.MustParse("1,9,10,3,2,3,11,0,99,30,40,50")
	r, err := search.Compute(image, 9, 10)
	if err != nil {
		t.Fatal(err)
	}
	if r != 3500 {
		t.Errorf("expected 3500, got %d", r)
	}
	if image[1] != 9 || image[3] != 3 {
		t.Errorf("image modified: %v", image)
	}

	_, err = search.Compute(image, 50, 0)
	if vm.KindOf(err) != vm.MemoryAccessFault {
		t.Errorf("expected MemoryAccessFault, got %v", err)
	}
	_, err = search.Compute(program.MustParse("99,0"), 1, 2)
	if vm.KindOf(err) != vm.MemoryAccessFault {
		t.Errorf("expected MemoryAccessFault on a short image, got %v", err)
	}
}

func TestNounVerb(t *testing.T) {
	// computes noun + verb
	image := program.MustParse("1101,0,0,0,99")
	tests := [...]struct {
		target     vm.Cell
		noun, verb vm.Cell
		err        error
	}{
		{0, 0, 0, nil},
		{42, 0, 42, nil},
		{150, 51, 99, nil},
		{198, 99, 99, nil},
		{199, 0, 0, search.ErrNotFound},
		{-1, 0, 0, search.ErrNotFound},
	}
	for _, test := range tests {
		noun, verb, err := search.NounVerb(image, test.target)
		if errors.Cause(err) != test.err {
			t.Errorf("target %d: expected error %v, got %v", test.target, test.err, err)
			continue
		}
		if noun != test.noun || verb != test.verb {
			t.Errorf("target %d: expected %d, %d, got %d, %d", test.target, test.noun, test.verb, noun, verb)
		}
	}
}

func TestNounVerb_fault(t *testing.T) {
	// reads mem[noun], which is out of range for nouns >= 5
	image := program.MustParse("1,0,0,0,99")
	_, _, err := search.NounVerb(image, 1000)
	if vm.KindOf(err) != vm.MemoryAccessFault {
		t.Fatalf("expected MemoryAccessFault, got %v", err)
	}
	if want := "noun 0, verb 5: "; err.Error()[:len(want)] != want {
		t.Errorf("unexpected error message %q", err)
	}
}

func ExampleNounVerb() {
	image := program.MustParse("1102,0,0,0,99")
	noun, verb, err := search.NounVerb(image, 1843)
	fmt.Println(noun, verb, 100*noun+verb, err)
	// Output:
	// 19 97 1997 <nil>
}
