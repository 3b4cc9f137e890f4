// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simtest_test

import (
	"testing"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/chiplib"
	"github.com/db47h/logicsim/simtest"
)

func TestComparePart(t *testing.T) {
	lib, err := chiplib.Default().With(&logicsim.ChipDef{
		Name:    "CUSTOM_OR",
		Inputs:  []string{"A", "B"},
		Outputs: []string{"OUT"},
		Components: []logicsim.ComponentTemplate{
			{ID: "notA", Type: "NAND"},
			{ID: "notB", Type: "NAND"},
			{ID: "out", Type: "NAND"},
		},
		Wires: []logicsim.WireTemplate{
			{From: "A", To: "notA"},
			{From: "A", To: "notA"},
			{From: "B", To: "notB"},
			{From: "B", To: "notB"},
			{From: "notA", To: "out"},
			{From: "notB", To: "out"},
		},
		IOMapping: &logicsim.IOMapping{Output: "out"},
	})
	if err != nil {
		t.Fatal(err)
	}
	simtest.ComparePart(t, simtest.Part{Lib: lib, Type: "OR"}, simtest.Part{Lib: lib, Type: "CUSTOM_OR"})
}

func TestCheckTruthTable(t *testing.T) {
	simtest.CheckTruthTable(t, simtest.Part{Lib: chiplib.Default(), Type: "FULL_ADDER"}, func(in []bool) []bool {
		n := 0
		for _, v := range in {
			if v {
				n++
			}
		}
		return []bool{n&1 != 0, n > 1}
	})
}

func TestNetlist(t *testing.T) {
	const want = "AND dut 0 0\nWIRE A dut A\nWIRE B dut B\n"
	if got := simtest.Netlist("AND", []string{"A", "B"}); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
