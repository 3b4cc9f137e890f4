// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for testing chips.
//
package simtest

import (
	"fmt"
	"io/ioutil"
	"math/rand"
	"strings"
	"testing"

	"github.com/db47h/logicsim"
	"github.com/sirupsen/logrus"
)

// Part identifies a chip type in a library.
//
type Part struct {
	Lib  *logicsim.Library
	Type string
}

// DUT is the component id of the chip under test in a Harness.
//
const DUT = "dut"

// A Harness is a circuit made of a single instance of a chip whose input pins
// are wired to boundary inputs of the same name.
//
type Harness struct {
	c   *logicsim.Circuit
	def *logicsim.ChipDef
}

// Netlist returns the source of a netlist with one instance of chip type typ
// and a wire from a boundary input to each of its input pins.
//
func Netlist(typ string, inputs []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s 0 0\n", typ, DUT)
	for _, in := range inputs {
		fmt.Fprintf(&b, "WIRE %s %s %s\n", in, DUT, in)
	}
	return b.String()
}

// NewHarness builds a test harness for p. All inputs start low.
//
func NewHarness(tb testing.TB, p Part) *Harness {
	tb.Helper()
	d, ok := p.Lib.Lookup(p.Type)
	if !ok {
		tb.Fatalf("unknown chip type %q", p.Type)
	}
	log := logrus.New()
	log.Out = ioutil.Discard
	h := &Harness{
		c:   logicsim.New(p.Lib, logicsim.Options{Logger: log}),
		def: d,
	}
	in := make(map[string]bool, len(d.Inputs))
	for _, n := range d.Inputs {
		in[n] = false
	}
	h.c.SetInputs(in)
	h.c.Assemble(Netlist(p.Type, d.Inputs))
	if ws := h.c.Warnings(); len(ws) > 0 {
		tb.Fatalf("%s: unexpected warnings: %v", p.Type, ws)
	}
	return h
}

// Circuit returns the harness circuit.
//
func (h *Harness) Circuit() *logicsim.Circuit { return h.c }

// Inputs returns the input pin names of the chip under test.
//
func (h *Harness) Inputs() []string { return h.def.Inputs }

// Outputs returns the output pin names of the chip under test.
//
func (h *Harness) Outputs() []string { return h.def.Outputs }

// Set sets the chip inputs, in declared order, and stabilizes the circuit.
// It returns false if the circuit did not settle.
//
func (h *Harness) Set(in ...bool) bool {
	m := make(map[string]bool, len(in))
	for i, v := range in {
		m[h.def.Inputs[i]] = v
	}
	h.c.SetInputs(m)
	return h.c.Settled()
}

// Get returns the chip outputs in declared order. Chips that declare no
// outputs return their scalar value.
//
func (h *Harness) Get() []bool {
	c := h.c.Component(DUT)
	if len(h.def.Outputs) == 0 {
		return []bool{c.Value}
	}
	out := make([]bool, len(h.def.Outputs))
	for i, n := range h.def.Outputs {
		out[i] = c.Outputs[n]
	}
	return out
}

// Value returns the scalar value of the chip under test.
//
func (h *Harness) Value() bool { return h.c.Component(DUT).Value }

// maxExhaustive is the input count above which combinations are sampled.
const maxExhaustive = 12

// combinations calls fn with every combination of n inputs, or with a random
// sample if n is large. The first input is the most significant bit.
//
func combinations(n int, fn func(in []bool)) {
	in := make([]bool, n)
	if n > maxExhaustive {
		for i := 0; i < 1<<maxExhaustive; i++ {
			for j := range in {
				in[j] = rand.Int63()&(1<<62) != 0
			}
			fn(in)
		}
		return
	}
	for i := 0; i < 1<<uint(n); i++ {
		for bit := range in {
			in[n-bit-1] = i&(1<<uint(bit)) != 0
		}
		fn(in)
	}
}

func inString(names []string, in []bool) string {
	var b strings.Builder
	for i, n := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%d", n, bit(in[i]))
	}
	return b.String()
}

func bit(v bool) int {
	if v {
		return 1
	}
	return 0
}

// CheckTruthTable checks the outputs of p against fn for every combination of
// inputs. fn receives the inputs in declared order and must return the
// expected outputs in declared order (or the scalar value for chips with no
// declared outputs).
//
func CheckTruthTable(tb testing.TB, p Part, fn func(in []bool) []bool) {
	tb.Helper()
	h := NewHarness(tb, p)
	combinations(len(h.Inputs()), func(in []bool) {
		if !h.Set(in...) {
			tb.Fatalf("%s: %s: circuit did not settle", p.Type, inString(h.Inputs(), in))
		}
		got, exp := h.Get(), fn(in)
		for i := range exp {
			if got[i] != exp[i] {
				name := "value"
				if i < len(h.Outputs()) {
					name = h.Outputs()[i]
				}
				tb.Errorf("%s: %s => %s=%d, got %d", p.Type, inString(h.Inputs(), in), name, bit(exp[i]), bit(got[i]))
			}
		}
	})
}

// ComparePart takes two parts and compares their outputs given the same
// inputs. Both parts must have the same input and output pins.
//
func ComparePart(tb testing.TB, p1, p2 Part) {
	tb.Helper()
	h1, h2 := NewHarness(tb, p1), NewHarness(tb, p2)
	if !equalNames(h1.Inputs(), h2.Inputs()) {
		tb.Fatalf("inputs differ: %v != %v", h1.Inputs(), h2.Inputs())
	}
	if !equalNames(h1.Outputs(), h2.Outputs()) {
		tb.Fatalf("outputs differ: %v != %v", h1.Outputs(), h2.Outputs())
	}
	combinations(len(h1.Inputs()), func(in []bool) {
		h1.Set(in...)
		h2.Set(in...)
		o1, o2 := h1.Get(), h2.Get()
		for i := range o1 {
			if o1[i] != o2[i] {
				tb.Fatalf("%s: %s: output %d: %s=%d, %s=%d", p1.Type, inString(h1.Inputs(), in), i, p1.Type, bit(o1[i]), p2.Type, bit(o2[i]))
			}
		}
		if h1.Value() != h2.Value() {
			tb.Fatalf("%s: value: %s=%v, %s=%v", inString(h1.Inputs(), in), p1.Type, h1.Value(), p2.Type, h2.Value())
		}
	})
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
