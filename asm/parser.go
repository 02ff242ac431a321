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

package asm

import (
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/davidgovea/intcode/vm"
)

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type parser struct {
	i      vm.Memory
	pc     int
	size   int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]labelSite
	errs   ErrAsm
}

func newParser() *parser {
	return &parser{
		labels: make(map[string]*label),
		consts: make(map[string]labelSite),
	}
}

func (p *parser) error(msg string) {
	pos := p.s.Position
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	p.errorAt(pos, msg)
}

func (p *parser) errorAt(pos scanner.Position, msg string) {
	if len(p.errs) >= maxErrors {
		return
	}
	p.errs = append(p.errs, struct {
		Pos scanner.Position
		Msg string
	}{pos, msg})
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make(vm.Memory, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

func (p *parser) useLabel(name string, pos scanner.Position, address int) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{labelSite{pos, -1}, nil}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{pos, address})
}

func (p *parser) defineLabel(name string) {
	if name == "" {
		p.error("empty label name")
		return
	}
	if cst, ok := p.consts[name]; ok {
		p.error("label redefinition: " + name + ", previously defined as a constant here: " + cst.pos.String())
		return
	}
	if l, ok := p.labels[name]; ok {
		if l.address != -1 {
			p.error("label redefinition: " + name + ", previous definition here: " + l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = p.s.Position
		return
	}
	p.labels[name] = &label{labelSite{p.s.Position, p.pc}, nil}
}

// number converts s to an integer value if s is an integer literal, a
// character literal or a known constant.
func (p *parser) number(s string) (v vm.Cell, ok bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			p.error("invalid character literal " + s)
			return 0, true
		}
		return vm.Cell(r), true
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true
	}
	return 0, false
}

// value emits an integer or label reference.
func (p *parser) value(s string) {
	if v, ok := p.number(s); ok {
		p.write(v)
		return
	}
	if strings.HasPrefix(s, ":") || strings.HasPrefix(s, ".") {
		p.error("unexpected " + s + " where a value is expected")
		return
	}
	p.useLabel(s, p.s.Position, p.pc)
	p.write(0)
}

// next scans the next token, skipping comments. It returns false at EOF.
func (p *parser) next() (string, bool) {
	for {
		tok := p.s.Scan()
		if tok == scanner.EOF {
			return "", false
		}
		s := p.s.TokenText()
		if s != "(" {
			return s, true
		}
		for {
			tok = p.s.Scan()
			if tok == scanner.EOF {
				p.error("unterminated comment")
				return "", false
			}
			if p.s.TokenText() == ")" {
				break
			}
		}
	}
}

func (p *parser) instruction(op vm.Opcode) {
	var (
		word = vm.Cell(op)
		mul  = vm.Cell(100)
	)
	at := p.pc
	p.write(0) // placeholder for the instruction word
	for n := 0; n < op.Arity(); n++ {
		s, ok := p.next()
		if !ok {
			p.error("missing operand for " + op.String())
			return
		}
		if _, isOp := lookup(s); isOp || s[0] == ':' || s[0] == '.' {
			p.error("unexpected " + s + " as operand of " + op.String())
			return
		}
		if s[0] == '#' {
			if n+1 == op.Dst() {
				p.error("immediate destination operand " + s)
			}
			word += mul * vm.Cell(vm.Immediate)
			s = s[1:]
			if s == "" {
				p.error("empty immediate operand")
				return
			}
		}
		p.value(s)
		mul *= 10
	}
	p.i[at] = word
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) (vm.Memory, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.error(msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	data := false
	for s, ok := p.next(); ok && len(p.errs) < maxErrors; s, ok = p.next() {
		if op, isOp := lookup(s); isOp {
			data = false
			p.instruction(op)
			continue
		}
		switch s[0] {
		case ':':
			data = false
			p.defineLabel(s[1:])
		case '.':
			data = false
			p.directive(s, &data)
		default:
			if !data {
				p.error("unexpected " + s + ", expected an instruction, label or directive")
				continue
			}
			p.value(s)
		}
	}

	// resolve labels
	for n, l := range p.labels {
		if l.address == -1 {
			for _, u := range l.uses {
				p.errorAt(u.pos, "undefined label "+n)
			}
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		p.errs.sort()
		return nil, p.errs
	}
	return p.i[:p.size], nil
}

func (p *parser) directive(s string, data *bool) {
	switch s {
	case ".dat":
		*data = true
	case ".org":
		t, ok := p.next()
		if !ok {
			p.error(".org: missing address")
			return
		}
		v, ok := p.number(t)
		if !ok || v < 0 {
			p.error(".org: expected a non-negative integer or constant, got " + t)
			return
		}
		if v > maxImageSize {
			p.error(".org: address out of range: " + t)
			return
		}
		p.pc = int(v)
		if p.pc > len(p.i) {
			p.i = append(p.i, make(vm.Memory, p.pc-len(p.i))...)
		}
		if p.pc > p.size {
			p.size = p.pc
		}
	case ".equ":
		n, ok := p.next()
		if !ok {
			p.error(".equ: missing identifier")
			return
		}
		if l, ok := p.labels[n]; ok {
			p.error(".equ: redefinition of " + n + ", previously defined/used as a label here: " + l.pos.String())
			return
		}
		pos := p.s.Position
		t, ok := p.next()
		if !ok {
			p.error(".equ: missing value for " + n)
			return
		}
		v, ok := p.number(t)
		if !ok {
			p.error(".equ: expected an integer or constant, got " + t)
			return
		}
		p.consts[n] = labelSite{pos, int(v)}
	default:
		p.error("unknown directive: " + s)
	}
}
