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

package network

import (
	"github.com/pkg/errors"

	"github.com/davidgovea/intcode/vm"
)

// Amplify runs one copy of image per phase setting, chained in order. Each copy
// reads its phase setting as its first input. The first copy then receives
// the input signal 0. It returns the final output signal.
//
// The options are applied to every copy.
func Amplify(image vm.Memory, phases []vm.Cell, feedback bool, opts ...vm.Option) (vm.Cell, error) {
	nodes := make([]*vm.Instance, len(phases))
	for k, p := range phases {
		i, err := vm.New(image, append([]vm.Option{vm.Input(p)}, opts...)...)
		if err != nil {
			return 0, err
		}
		nodes[k] = i
	}
	return New(nodes...).Run(0, feedback)
}

// MaxSignal tries Amplify with every ordering of phases and returns the
// highest signal along with the phase ordering that produced it.
func MaxSignal(image vm.Memory, phases []vm.Cell, feedback bool, opts ...vm.Option) (best vm.Cell, order []vm.Cell, err error) {
	if len(phases) == 0 {
		return 0, nil, errors.New("no phase settings")
	}
	p := append([]vm.Cell(nil), phases...)
	found := false
	err = permute(p, len(p), func(perm []vm.Cell) error {
		s, err := Amplify(image, perm, feedback, opts...)
		if err != nil {
			return errors.Wrapf(err, "phases %v", perm)
		}
		if !found || s > best {
			best, found = s, true
			order = append(order[:0], perm...)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return best, order, nil
}

// permute calls f for every permutation of p[:k] (Heap's algorithm).
func permute(p []vm.Cell, k int, f func([]vm.Cell) error) error {
	if k <= 1 {
		return f(p)
	}
	for i := 0; i < k-1; i++ {
		if err := permute(p, k-1, f); err != nil {
			return err
		}
		if k%2 == 0 {
			p[i], p[k-1] = p[k-1], p[i]
		} else {
			p[0], p[k-1] = p[k-1], p[0]
		}
	}
	return permute(p, k-1, f)
}
