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

import (
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// PushInput appends values to the input queue. Queued values are consumed by
// input instructions in order, before the input policy is consulted.
//
// Unlike Supply, PushInput may be called at any time. It is the natural way to
// route values between instances in a network.
func (i *Instance) PushInput(values ...Cell) {
	i.input = append(i.input, values...)
}

// Pending returns the number of queued input values.
func (i *Instance) Pending() int {
	return len(i.input)
}

// Supply hands exactly one value to an instance that reported NeedsInput. It
// returns ErrUnexpectedInput if the instance is not awaiting input or already
// has a value to consume, and leaves the instance untouched in that case.
func (i *Instance) Supply(v Cell) error {
	if i.state != AwaitingInput || len(i.input) > 0 {
		return errors.Wrapf(ErrUnexpectedInput, "supply %d in state %v", v, i.state)
	}
	i.input = append(i.input, v)
	return nil
}

// nextInput returns the next input value. ok is false if no value is
// available.
func (i *Instance) nextInput() (v Cell, ok bool, err error) {
	if len(i.input) > 0 {
		v = i.input[0]
		i.input = i.input[1:]
		if len(i.input) == 0 {
			i.input = nil
		}
		return v, true, nil
	}
	if i.inF == nil {
		return 0, false, nil
	}
	v, err = i.inF(i)
	switch {
	case err == nil:
		return v, true, nil
	case errors.Is(err, ErrNoInput), errors.Is(err, io.EOF):
		return 0, false, nil
	}
	return 0, false, err
}

// runeReaderWrapper wraps a basic reader into a io.RuneReader.
type runeReaderWrapper struct {
	io.Reader
}

func (r *runeReaderWrapper) ReadRune() (ret rune, size int, err error) {
	var (
		b = [utf8.UTFMax]byte{}
		i = 0
	)
	for i < utf8.UTFMax && err == nil && !utf8.FullRune(b[:i]) {
		var n int
		n, err = r.Reader.Read(b[i : i+1])
		i += n
	}
	if i == 0 {
		return 0, 0, err
	}
	ret, size = rune(b[0]), 1
	if ret >= utf8.RuneSelf {
		ret, size = utf8.DecodeRune(b[:i])
	}
	return ret, size, err
}

func newRuneReader(r io.Reader) io.RuneReader {
	switch rr := r.(type) {
	case nil:
		return nil
	case io.RuneReader:
		return rr
	default:
		return &runeReaderWrapper{r}
	}
}

// ReaderInput returns an InputFunc that reads runes from r, one rune per
// input value. At end of input it reports no available input.
func ReaderInput(r io.Reader) InputFunc {
	rr := newRuneReader(r)
	return func(i *Instance) (Cell, error) {
		c, size, err := rr.ReadRune()
		if size > 0 {
			return Cell(c), nil
		}
		if err == nil || err == io.EOF {
			return 0, ErrNoInput
		}
		return 0, errors.Wrap(err, "read input")
	}
}

// InputReader sets an input policy reading runes from r. See ReaderInput.
func InputReader(r io.Reader) Option {
	return InputPolicy(ReaderInput(r))
}
