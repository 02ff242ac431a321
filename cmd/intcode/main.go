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
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/davidgovea/intcode/asm"
	"github.com/davidgovea/intcode/lang/ascii"
	"github.com/davidgovea/intcode/network"
	"github.com/davidgovea/intcode/program"
	"github.com/davidgovea/intcode/search"
	"github.com/davidgovea/intcode/vm"
)

// cellList is a flag.Value accumulating comma separated values.
type cellList []vm.Cell

func (l *cellList) String() string { return vm.Memory(*l).String() }
func (l *cellList) Set(s string) error {
	values, err := program.ParseString(s)
	if err != nil {
		return err
	}
	*l = append(*l, values...)
	return nil
}
func (l *cellList) Get() interface{} { return *l }

// optCell is a flag.Value for a single value that may be left unset.
type optCell struct {
	v   vm.Cell
	set bool
}

func (c *optCell) String() string {
	if !c.set {
		return ""
	}
	return strconv.FormatInt(int64(c.v), 10)
}
func (c *optCell) Set(s string) error {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	c.v, c.set = vm.Cell(v), true
	return nil
}
func (c *optCell) Get() interface{} { return c.v }

var (
	inputs      cellList
	phases      cellList
	noun, verb  optCell
	target      optCell
	asmSource   bool
	asciiIO     bool
	noRawIO     bool
	debug       bool
	dump        bool
	trace       bool
	disasm      bool
	feedback    bool
	limit       int64
	outFileName string
)

// numberInput returns an input policy reading base 10 integers separated by
// white space or commas.
func numberInput(r io.Reader) vm.InputFunc {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	var pending []string
	return func(*vm.Instance) (vm.Cell, error) {
		for len(pending) == 0 {
			if !s.Scan() {
				if err := s.Err(); err != nil {
					return 0, err
				}
				return 0, vm.ErrNoInput
			}
			for _, f := range strings.Split(s.Text(), ",") {
				if f != "" {
					pending = append(pending, f)
				}
			}
		}
		f := pending[0]
		pending = pending[1:]
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return 0, errors.Wrap(err, "bad input")
		}
		return vm.Cell(v), nil
	}
}

// numberOutput prints each output value on its own line.
func numberOutput(w io.Writer) vm.OutHandler {
	b := make([]byte, 0, 24)
	return func(_ *vm.Instance, v vm.Cell) error {
		b = strconv.AppendInt(b[:0], int64(v), 10)
		b = append(b, '\n')
		_, err := w.Write(b)
		return err
	}
}

// ttyInput wraps an input policy reading from a terminal in raw mode, where
// CTRL-D must be handled by hand.
func ttyInput(f vm.InputFunc) vm.InputFunc {
	return func(i *vm.Instance) (vm.Cell, error) {
		v, err := f(i)
		if err == nil && v == 4 {
			return 0, vm.ErrNoInput
		}
		return v, err
	}
}

// flushing flushes pending output before asking f for input.
func flushing(w *bufio.Writer, f vm.InputFunc) vm.InputFunc {
	return func(i *vm.Instance) (vm.Cell, error) {
		if err := w.Flush(); err != nil {
			return 0, err
		}
		return f(i)
	}
}

func traceHandler(w io.Writer) vm.TraceHandler {
	return func(i *vm.Instance) {
		fmt.Fprintf(w, "% 10d\t", i.PC)
		asm.Disassemble(i.Mem, i.PC, w)
		io.WriteString(w, "\n")
	}
}

func loadImage(fileName string) (vm.Memory, error) {
	if !asmSource {
		return program.Load(fileName)
	}
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	return asm.Assemble(fileName, f)
}

func patch(image vm.Memory) (vm.Memory, error) {
	if !noun.set && !verb.set {
		return image, nil
	}
	image = image.Clone()
	if noun.set {
		if err := image.Store(1, noun.v); err != nil {
			return nil, errors.Wrap(err, "noun")
		}
	}
	if verb.set {
		if err := image.Store(2, verb.v); err != nil {
			return nil, errors.Wrap(err, "verb")
		}
	}
	return image, nil
}

func setupIO() (raw bool, tearDown func()) {
	if noRawIO || !isTerminal(0) {
		return false, nil
	}
	tearDown, err := setRawIO()
	if err != nil {
		return false, nil
	}
	return true, tearDown
}

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		if i.PC >= 0 && i.PC < len(i.Mem) {
			fmt.Fprintf(os.Stderr, "PC: %v (%v), state: %v, instructions: %d\n", i.PC, i.Mem[i.PC], i.State(), i.InstructionCount())
		} else {
			fmt.Fprintf(os.Stderr, "PC: %v, state: %v, instructions: %d\n", i.PC, i.State(), i.InstructionCount())
		}
	}
	os.Exit(1)
}

func main() {
	var err error
	var i *vm.Instance

	stdout := bufio.NewWriter(os.Stdout)

	// flush output, catch and log errors
	defer func() {
		if ferr := stdout.Flush(); err == nil {
			err = ferr
		}
		if err == nil && dump && i != nil {
			err = dumpVM(i, os.Stderr)
		}
		atExit(i, err)
	}()

	flag.Var(&inputs, "input", "queue comma separated `values` as input (can be specified multiple times)")
	flag.BoolVar(&asmSource, "asm", false, "assemble the program from source instead of loading program text")
	flag.BoolVar(&asciiIO, "ascii", false, "exchange input and output as ASCII text")
	flag.BoolVar(&noRawIO, "noraw", false, "disable raw terminal IO in ASCII mode")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.BoolVar(&dump, "dump", false, "dump machine state and memory to stderr upon exit")
	flag.BoolVar(&trace, "trace", false, "trace executed instructions to stderr")
	flag.BoolVar(&disasm, "disasm", false, "disassemble the program and exit")
	flag.Int64Var(&limit, "limit", 0, "fault after `n` instructions (0 for no limit)")
	flag.Var(&noun, "noun", "store `value` at address 1 before running")
	flag.Var(&verb, "verb", "store `value` at address 2 before running")
	flag.Var(&target, "target", "search the noun and verb producing `value` at address 0")
	flag.Var(&phases, "phases", "find the highest signal of amplifiers running the program with these phase `settings`")
	flag.BoolVar(&feedback, "feedback", false, "connect amplifiers in a feedback loop")
	flag.StringVar(&outFileName, "o", "", "save the final memory image to `filename`")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] program\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	image, err := loadImage(flag.Arg(0))
	if err != nil {
		return
	}

	var opts []vm.Option
	if limit > 0 {
		opts = append(opts, vm.StepLimit(limit))
	}
	if trace {
		opts = append(opts, vm.Trace(traceHandler(os.Stderr)))
	}

	switch {
	case disasm:
		err = asm.DisassembleAll(image, 0, stdout)
		return
	case len(phases) > 0:
		var (
			best  vm.Cell
			order []vm.Cell
		)
		best, order, err = network.MaxSignal(image, phases, feedback, opts...)
		if err == nil {
			fmt.Fprintf(stdout, "%d (phases %v)\n", best, vm.Memory(order))
		}
		return
	case target.set:
		var n, v vm.Cell
		n, v, err = search.NounVerb(image, target.v, opts...)
		if err == nil {
			fmt.Fprintf(stdout, "noun %d, verb %d: %d\n", n, v, 100*n+v)
		}
		return
	}

	if image, err = patch(image); err != nil {
		return
	}

	opts = append(opts, vm.Input(inputs...))
	if asciiIO {
		rawtty, ioTearDownFn := setupIO()
		if ioTearDownFn != nil {
			defer ioTearDownFn()
		}
		var in vm.InputFunc
		if rawtty {
			in = ttyInput(ascii.ReaderInput(os.Stdin))
		} else {
			in = ascii.ReaderInput(bufio.NewReader(os.Stdin))
		}
		opts = append(opts, vm.InputPolicy(flushing(stdout, in)), vm.Output(ascii.Writer(stdout)))
	} else {
		opts = append(opts,
			vm.InputPolicy(flushing(stdout, numberInput(os.Stdin))),
			vm.Output(numberOutput(stdout)))
	}

	if i, err = vm.New(image, opts...); err != nil {
		return
	}
	if err = i.Run(); err != nil {
		return
	}
	if noun.set || verb.set {
		fmt.Fprintln(stdout, i.Mem[0])
	}
	if outFileName != "" {
		err = program.Save(outFileName, i.Mem)
	}
}
