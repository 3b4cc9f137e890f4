// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim_test

import (
	"strings"
	"testing"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/chiplib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_wires(t *testing.T) {
	src := `
// forward references are fine
WIRE ha CARRY n
WIRE n ha A
WIRE ha SUM ha B
WIRE n ha Bogus
WIRE g n
NOT n 0 0
HALF_ADDER ha 0 0
INPUT g 0 0
`
	s, ws := logicsim.Build(chiplib.Default(), src)
	require.Empty(t, ws)
	assert.Equal(t, []logicsim.Wire{
		{From: "ha", FromPin: logicsim.ByName("CARRY"), To: "n", Line: 3},
		{From: "n", To: "ha", ToPin: logicsim.ByName("A"), Line: 4},
		{From: "ha", FromPin: logicsim.ByName("SUM"), To: "ha", ToPin: logicsim.ByName("B"), Line: 5},
		{From: "n", FromPin: logicsim.ByName("Bogus"), To: "ha", Line: 6},
		{From: "g", To: "n", Line: 7},
	}, s.Wires)

	// not evaluated yet
	for _, c := range s.Components {
		assert.False(t, c.Value, c.ID)
		assert.Empty(t, c.Inputs, c.ID)
	}
}

func TestBuild_components(t *testing.T) {
	s, ws := logicsim.Build(chiplib.Default(), "and g1 10 -20\nHalf_Adder ha 1 2\n  INPUT   in   3\t4  \n")
	require.Empty(t, ws)
	require.Len(t, s.Components, 3)
	g := s.Components[0]
	assert.Equal(t, "g1", g.ID)
	assert.Equal(t, "AND", g.Type)
	assert.Equal(t, 10, g.X)
	assert.Equal(t, -20, g.Y)
	assert.Nil(t, g.Scope)

	ha := s.Lookup("ha")
	assert.Equal(t, "HALF_ADDER", ha.Type)
	require.NotNil(t, ha.Scope)
	assert.Len(t, ha.Scope.Components, 2)
	assert.Equal(t, logicsim.ByName("A"), ha.Scope.Wires[0].ToPin)
	assert.Equal(t, 0, ha.Scope.Wires[0].Line)

	in := s.Lookup("in")
	assert.Equal(t, 3, in.X)
	assert.Equal(t, 4, in.Y)
}

func TestBuild_warnings(t *testing.T) {
	td := []struct {
		name string
		src  string
		exp  []logicsim.Warning
	}{
		{"empty", "\n\n   \n# nothing\n", nil},
		{"short decl", "AND g1 0\nAND g2 0 0\n", []logicsim.Warning{
			{Kind: logicsim.ParseWarning, Line: 1, Msg: "declaration needs TYPE ID X Y, got 3 fields"},
		}},
		{"short wire", "WIRE a\nWIRE\n", []logicsim.Warning{
			{Kind: logicsim.ParseWarning, Line: 1, Msg: "wire needs a source and a target"},
			{Kind: logicsim.ParseWarning, Line: 2, Msg: "wire needs a source and a target"},
		}},
		{"bad coords", "AND g1 x 1.5\n", []logicsim.Warning{
			{Kind: logicsim.ParseWarning, Line: 1, Msg: `invalid coordinate "x", using 0`},
			{Kind: logicsim.ParseWarning, Line: 1, Msg: `invalid coordinate "1.5", using 0`},
		}},
		{"unknown type", "AND g1 0 0\nFLUX c 0 0\n", []logicsim.Warning{
			{Kind: logicsim.UnknownChipType, Line: 2, Msg: "unknown chip type FLUX for c"},
		}},
		{"dangling", "AND g1 0 0\nWIRE in_a g1 A\nWIRE g1 g2\n", []logicsim.Warning{
			{Kind: logicsim.DanglingWireSource, Line: 2, Msg: "wire source in_a is not a component"},
		}},
		{"extra fields", "AND g1 0 0\nAND g2 0 0\nWIRE g1 g2 OUT A B\n", []logicsim.Warning{
			{Kind: logicsim.ParseWarning, Line: 3, Msg: "extra fields after target pin ignored"},
		}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, ws := logicsim.Build(chiplib.Default(), d.src)
			assert.Equal(t, d.exp, ws)
		})
	}
}

func TestBuild_longLines(t *testing.T) {
	long := strings.Repeat("x", 1<<21)
	s, ws := logicsim.Build(chiplib.Default(), "AND g1 0 0\n# "+long+"\nNOT n 0 0\nAND "+long+" 0 0\nWIRE g1 n\n")
	assert.Equal(t, []logicsim.Warning{
		{Kind: logicsim.ParseWarning, Line: 4, Msg: "line too long, skipped"},
	}, ws)
	require.Len(t, s.Components, 2)
	assert.NotNil(t, s.Lookup("n"))
	assert.Equal(t, []logicsim.Wire{{From: "g1", To: "n", Line: 5}}, s.Wires)
}

func TestWarning_String(t *testing.T) {
	assert.Equal(t, "line 3: oops", logicsim.Warning{Kind: logicsim.ParseWarning, Line: 3, Msg: "oops"}.String())
	assert.Equal(t, "oops", logicsim.Warning{Kind: logicsim.OscillationWarning, Line: 0, Msg: "oops"}.String())
	assert.Equal(t, "dangling_wire", logicsim.DanglingWireSource.String())
	assert.Equal(t, "WarningKind(42)", logicsim.WarningKind(42).String())
}
