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

// Package search looks for the memory patch that makes a program compute a
// given result.
//
// A program's noun and verb are the values stored at addresses 1 and 2 before
// it runs; its result is the value left at address 0 when it halts.
package search

import (
	"github.com/pkg/errors"

	"github.com/davidgovea/intcode/vm"
)

// Range is the exclusive upper bound of nouns and verbs tried by NounVerb.
const Range = 100

// ErrNotFound is returned by NounVerb when no noun and verb produce the
// target.
var ErrNotFound = errors.New("no noun and verb produce the target")

// Compute runs a copy of image with the given noun and verb and returns its
// result.
func Compute(image vm.Memory, noun, verb vm.Cell, opts ...vm.Option) (vm.Cell, error) {
	i, err := vm.New(image, opts...)
	if err != nil {
		return 0, err
	}
	if err = i.Mem.Store(1, noun); err != nil {
		return 0, err
	}
	if err = i.Mem.Store(2, verb); err != nil {
		return 0, err
	}
	if err = i.Run(); err != nil {
		return 0, err
	}
	return i.Mem[0], nil
}

// NounVerb returns the first noun and verb in [0, Range) for which image
// computes target. Nouns are tried in increasing order, then verbs. A program
// that fails with any pair aborts the search.
func NounVerb(image vm.Memory, target vm.Cell, opts ...vm.Option) (noun, verb vm.Cell, err error) {
	for noun = 0; noun < Range; noun++ {
		for verb = 0; verb < Range; verb++ {
			r, err := Compute(image, noun, verb, opts...)
			if err != nil {
				return 0, 0, errors.Wrapf(err, "noun %d, verb %d", noun, verb)
			}
			if r == target {
				return noun, verb, nil
			}
		}
	}
	return 0, 0, errors.Wrapf(ErrNotFound, "target %d", target)
}
