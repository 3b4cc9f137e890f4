// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim_test

import (
	"testing"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/chiplib"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuit_endToEnd(t *testing.T) {
	c := logicsim.New(chiplib.Default(), logicsim.Options{Logger: quietLogger()})
	c.SetInput("in_a", true)
	c.SetInput("in_b", true)
	root := c.Assemble("AND g1 0 0\nWIRE in_a g1 A\nWIRE in_b g1 B\n")
	require.Same(t, root, c.Root())
	require.Empty(t, c.Warnings())
	assert.True(t, c.Settled())
	assert.True(t, c.Component("g1").Value)
	assert.Equal(t, map[string]bool{"A": true, "B": true}, c.Component("g1").Inputs)

	assert.True(t, c.ToggleInput("in_a"))
	assert.False(t, c.Component("g1").Value)
	assert.Equal(t, map[string]bool{"in_a": false, "in_b": true}, c.Inputs())

	c.SetInput("in_a", true)
	assert.True(t, c.Component("g1").Value)
}

func TestCircuit_ToggleInput(t *testing.T) {
	c := logicsim.New(chiplib.Default(), logicsim.Options{Logger: quietLogger()})
	c.Assemble("INPUT a 0 0\nNOT n 0 0\nWIRE a n\n")
	a, n := c.Component("a"), c.Component("n")
	assert.False(t, a.Value)
	assert.True(t, n.Value)

	assert.True(t, c.ToggleInput("a"))
	assert.True(t, a.Value)
	assert.Equal(t, map[string]bool{logicsim.PinOut: true}, a.Outputs)
	assert.False(t, n.Value)

	// not an input
	assert.False(t, c.ToggleInput("n"))
	assert.False(t, n.Value)
	// unknown
	assert.False(t, c.ToggleInput("zz"))
	assert.Empty(t, c.Inputs())
	assert.Empty(t, c.Warnings())
}

func TestCircuit_oscillation(t *testing.T) {
	log, hook := test.NewNullLogger()
	reg := prometheus.NewRegistry()
	m := logicsim.NewMetrics(reg)
	c := logicsim.New(chiplib.Default(), logicsim.Options{Logger: log, Metrics: m})

	c.Assemble("NOT n 0 0\nWIRE n n\n")
	assert.False(t, c.Settled())
	assert.Equal(t, logicsim.DefaultMaxRounds, c.Rounds())
	assert.Equal(t, []logicsim.Warning{
		{Kind: logicsim.OscillationWarning, Msg: "circuit did not settle after 100 rounds"},
	}, c.Warnings())

	require.Len(t, hook.Entries, 1)
	e := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, e.Level)
	assert.Equal(t, "circuit did not settle after 100 rounds", e.Message)
	assert.Equal(t, "oscillation", e.Data["kind"])
	assert.Equal(t, 1.0, metricValue(t, reg, "logicsim_oscillations_total"))

	// rebuilding clears warnings
	hook.Reset()
	c.Assemble("NOT n 0 0\n")
	assert.True(t, c.Settled())
	assert.Empty(t, c.Warnings())
	assert.Empty(t, hook.Entries)
}

func TestCircuit_MaxRounds(t *testing.T) {
	log, hook := test.NewNullLogger()
	c := logicsim.New(chiplib.Default(), logicsim.Options{Logger: log, MaxRounds: 7})
	c.Assemble("INPUT a 0 0\nNOT n1 0 0\nNOT n2 0 0\nNOT n3 0 0\nWIRE n3 n1\nWIRE n1 n2\nWIRE n2 n3\n")
	assert.False(t, c.Settled())
	assert.Equal(t, 7, c.Rounds())
	require.Len(t, c.Warnings(), 1)

	// warnings accumulate until the next build
	c.ToggleInput("a")
	assert.Len(t, c.Warnings(), 2)
	assert.Len(t, hook.AllEntries(), 2)
}

func TestCircuit_warnings(t *testing.T) {
	log, hook := test.NewNullLogger()
	c := logicsim.New(chiplib.Default(), logicsim.Options{Logger: log})
	c.Assemble("AND g1 0 0\nFOO f 0 0\nWIRE ghost g1 A\nAND short 0\n")
	ws := c.Warnings()
	require.Len(t, ws, 3)
	assert.Equal(t, logicsim.ParseWarning, ws[0].Kind)
	assert.Equal(t, logicsim.UnknownChipType, ws[1].Kind)
	assert.Equal(t, logicsim.DanglingWireSource, ws[2].Kind)

	require.Len(t, hook.Entries, 3)
	assert.Equal(t, 4, hook.Entries[0].Data["line"])
	assert.Equal(t, "parse", hook.Entries[0].Data["kind"])
	assert.Equal(t, 2, hook.Entries[1].Data["line"])

	// returned warnings are a copy
	ws[0].Msg = "changed"
	assert.NotEqual(t, "changed", c.Warnings()[0].Msg)

	// the circuit still runs
	assert.True(t, c.Settled())
	assert.False(t, c.Component("g1").Value)
	assert.False(t, c.Component("f").Value)
	assert.Equal(t, 2, c.Size())
}

func TestCircuit_deterministic(t *testing.T) {
	const src = `
FULL_ADDER fa 0 0
BIT b 0 0
MUX m 0 0
WIRE x fa A
WIRE y fa B
WIRE fa SUM b In
WIRE x b Load
WIRE fa Cout m Sel
WIRE b m A
WIRE y m B
`
	run := func() map[string]state {
		c := newCircuit(t, chiplib.Default(), src, map[string]bool{"x": true, "y": true})
		c.ToggleInput("y")
		c.ToggleInput("x")
		return snapshot(t, c.Root())
	}
	first := run()
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, run()); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
	assert.True(t, first["b"].Value)
	assert.True(t, first["m"].Value)
	assert.False(t, first["fa"].Outputs["Cout"])
}

func TestCircuit_Size(t *testing.T) {
	c := logicsim.New(chiplib.Default(), logicsim.Options{Logger: quietLogger()})
	assert.Equal(t, 0, c.Size())
	assert.True(t, c.Settled())
	c.Assemble("AND g 0 0\nXOR x 0 0\nHALF_ADDER ha 0 0\n")
	// 1 + (1+3) + (1 + 4 + 1)
	assert.Equal(t, 11, c.Size())
	assert.Same(t, chiplib.Default(), c.Library())
}

func TestCircuit_SetInput_beforeAssemble(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := logicsim.New(chiplib.Default(), logicsim.Options{Logger: quietLogger(), Metrics: logicsim.NewMetrics(reg)})
	c.SetInput("in_a", true)
	c.SetInputs(map[string]bool{"in_b": true})
	assert.Equal(t, 0, c.Rounds())
	assert.True(t, c.Settled())
	assert.Equal(t, map[string]bool{"in_a": true, "in_b": true}, c.Inputs())
	assert.Equal(t, 0.0, metricValue(t, reg, "logicsim_stabilizations_total"))
	assert.Equal(t, 0.0, metricValue(t, reg, "logicsim_input_toggles_total"))

	c.Assemble("AND g1 0 0\nWIRE in_a g1 A\nWIRE in_b g1 B\n")
	assert.True(t, c.Component("g1").Value)
	assert.Equal(t, 1.0, metricValue(t, reg, "logicsim_stabilizations_total"))
	c.SetInput("in_b", false)
	assert.False(t, c.Component("g1").Value)
	assert.Equal(t, 1.0, metricValue(t, reg, "logicsim_input_toggles_total"))
}
