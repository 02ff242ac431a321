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

// Package program reads and writes intcode programs in their text form: base
// 10 signed integers separated by commas. Whitespace around values and a
// trailing comma are ignored.
package program

import (
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/davidgovea/intcode/internal/ici"
	"github.com/davidgovea/intcode/vm"
)

type cell vm.Cell

func (c *cell) Capture(values []string) error {
	v, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return err
	}
	*c = cell(v)
	return nil
}

type text struct {
	Cells []cell `parser:"( @Int ( \",\" @Int )* \",\"? )?"`
}

var textLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Punct", Pattern: `,`},
})

var parser = participle.MustBuild[text](
	participle.Lexer(textLexer),
	participle.Elide("Whitespace"),
)

func memory(t *text) vm.Memory {
	mem := make(vm.Memory, len(t.Cells))
	for k, c := range t.Cells {
		mem[k] = vm.Cell(c)
	}
	return mem
}

// Parse reads a program from r. The name is used in error positions.
func Parse(name string, r io.Reader) (vm.Memory, error) {
	t, err := parser.Parse(name, r)
	if err != nil {
		return nil, err
	}
	return memory(t), nil
}

// ParseString parses the program text s.
func ParseString(s string) (vm.Memory, error) {
	t, err := parser.ParseString("", s)
	if err != nil {
		return nil, err
	}
	return memory(t), nil
}

// MustParse is like ParseString but panics on error.
func MustParse(s string) vm.Memory {
	mem, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return mem
}

// Load loads a program from the named file.
func Load(fileName string) (vm.Memory, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	mem, err := Parse(fileName, f)
	if err != nil {
		return nil, errors.Wrap(err, "parse failed")
	}
	return mem, nil
}

// Format writes mem to w in program text form, wrapping lines after
// perLine values. A perLine <= 0 puts everything on a single line.
func Format(w io.Writer, mem vm.Memory, perLine int) error {
	if perLine <= 0 {
		_, err := mem.WriteTo(w)
		return err
	}
	ew := ici.NewErrWriter(w)
	for len(mem) > 0 {
		n := perLine
		if n > len(mem) {
			n = len(mem)
		}
		line := mem[:n].String()
		mem = mem[n:]
		if len(mem) > 0 {
			line += ","
		}
		ew.WriteString(line + "\n")
	}
	return ew.Err
}

// Save writes mem to the named file.
func Save(fileName string, mem vm.Memory) error {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	if _, err = mem.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrap(err, "write failed")
	}
	return errors.Wrap(f.Close(), "close failed")
}
