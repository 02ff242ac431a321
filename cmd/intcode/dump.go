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

package main

import (
	"io"
	"strconv"

	"github.com/davidgovea/intcode/internal/ici"
	"github.com/davidgovea/intcode/program"
	"github.com/davidgovea/intcode/vm"
)

// dumpVM dumps the machine registers and memory image to the specified
// io.Writer.
func dumpVM(i *vm.Instance, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	ew.WriteString("pc=" + strconv.Itoa(i.PC))
	ew.WriteString(" state=" + strconv.Quote(i.State().String()))
	ew.WriteString(" instructions=" + strconv.FormatInt(i.InstructionCount(), 10))
	ew.WriteString(" fingerprint=" + strconv.FormatUint(i.Fingerprint(), 16) + "\n")
	if err := program.Format(ew, i.Mem, 16); err != nil {
		return err
	}
	return ew.Err
}
