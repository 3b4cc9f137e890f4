// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"

	"github.com/sirupsen/logrus"
)

// DefaultMaxRounds is the default limit on evaluation rounds per
// stabilization.
//
const DefaultMaxRounds = 100

// Options configures a Circuit. The zero value is ready to use.
//
type Options struct {
	// MaxRounds limits the number of evaluation rounds of a single
	// stabilization. Defaults to DefaultMaxRounds if <= 0.
	MaxRounds int
	// Logger receives warnings and debug traces. Defaults to the logrus
	// standard logger.
	Logger logrus.FieldLogger
	// Metrics, if not nil, collects simulation statistics.
	Metrics *Metrics
}

// Circuit is an editing session: a netlist built from a chip library, its
// boundary inputs, and the warnings collected so far.
//
// A Circuit is not safe for concurrent use.
//
type Circuit struct {
	lib     *Library
	max     int
	log     logrus.FieldLogger
	metrics *Metrics

	root      *Scope
	inputs    map[string]bool
	warnings  []Warning
	rounds    int
	settled   bool
	assembled bool
}

// New returns a new empty circuit using the chips in lib.
//
func New(lib *Library, opts Options) *Circuit {
	c := &Circuit{
		lib:     lib,
		max:     opts.MaxRounds,
		log:     opts.Logger,
		metrics: opts.Metrics,
		root:    &Scope{},
		inputs:  make(map[string]bool),
		settled: true,
	}
	if c.max <= 0 {
		c.max = DefaultMaxRounds
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	return c
}

// Library returns the circuit's chip library.
//
func (c *Circuit) Library() *Library { return c.lib }

// Assemble replaces the circuit's netlist with the one described by src and
// runs the simulation until it settles. Warnings from previous builds are
// discarded.
//
func (c *Circuit) Assemble(src string) *Scope {
	root, ws := build(c.lib, src, c.inputs)
	c.root = root
	c.assembled = true
	c.warnings = c.warnings[:0]
	for _, w := range ws {
		c.warn(w)
	}
	c.metrics.build()
	c.log.WithField("components", len(root.Components)).WithField("wires", len(root.Wires)).Debug("netlist assembled")
	c.Stabilize()
	return root
}

func (c *Circuit) warn(w Warning) {
	c.warnings = append(c.warnings, w)
	c.metrics.warn(w.Kind)
	e := c.log.WithField("kind", w.Kind.String())
	if w.Line > 0 {
		e = e.WithField("line", w.Line)
	}
	e.Warn(w.Msg)
}

// Root returns the root scope of the circuit.
//
func (c *Circuit) Root() *Scope { return c.root }

// Component returns the component at the given dot separated path, e.g.
// "fa0.ha1.xor0", or nil.
//
func (c *Circuit) Component(path string) *Component { return c.root.Find(path) }

// Warnings returns the warnings collected since the last call to Assemble.
//
func (c *Circuit) Warnings() []Warning {
	return append([]Warning(nil), c.warnings...)
}

// Settled returns true if the last stabilization reached a fixed point.
//
func (c *Circuit) Settled() bool { return c.settled }

// Rounds returns the number of rounds used by the last stabilization.
//
func (c *Circuit) Rounds() int { return c.rounds }

// Size returns the total component count in the circuit, including the
// internals of composite chips.
//
func (c *Circuit) Size() int {
	n := 0
	c.root.Walk(func(string, *Component) error { n++; return nil })
	return n
}

// Stabilize evaluates root until a whole round leaves it unchanged or
// maxRounds rounds have run. It returns the number of rounds used and whether
// the circuit settled. When maxRounds is reached, the last computed values are
// kept.
//
func Stabilize(lib *Library, root *Scope, boundary map[string]bool, maxRounds int) (rounds int, settled bool) {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	for rounds < maxRounds {
		rounds++
		if !root.Evaluate(lib, boundary) {
			return rounds, true
		}
	}
	return rounds, false
}

// Stabilize runs the simulation until the circuit settles or the round limit
// is reached, in which case an OscillationWarning is recorded.
//
func (c *Circuit) Stabilize() (rounds int, settled bool) {
	c.rounds, c.settled = Stabilize(c.lib, c.root, c.inputs, c.max)
	c.metrics.stabilized(c.rounds, c.settled)
	if !c.settled {
		c.warn(Warning{Kind: OscillationWarning, Msg: "circuit did not settle after " + strconv.Itoa(c.rounds) + " rounds"})
	} else {
		c.log.WithField("rounds", c.rounds).Debug("circuit settled")
	}
	return c.rounds, c.settled
}

// ToggleInput flips the value of the INPUT component id of the root scope, or
// if there is no such component, of the boundary input named id. It then
// stabilizes the circuit. It returns false and does nothing if id is neither.
//
func (c *Circuit) ToggleInput(id string) bool {
	if comp := c.root.Lookup(id); comp != nil {
		if comp.Type != Input {
			c.log.WithField("id", id).Debug("toggle ignored: not an input")
			return false
		}
		comp.Value = !comp.Value
		comp.Outputs = map[string]bool{PinOut: comp.Value}
	} else if v, ok := c.inputs[id]; ok {
		c.inputs[id] = !v
	} else {
		c.log.WithField("id", id).Debug("toggle ignored: no such input")
		return false
	}
	c.metrics.toggle()
	c.Stabilize()
	return true
}

// SetInput sets the boundary input name of the root scope and stabilizes the
// circuit. Root wires whose source is not a component read boundary inputs.
// Before the first call to Assemble, the value is only recorded.
//
func (c *Circuit) SetInput(name string, v bool) {
	c.inputs[name] = v
	c.inputChanged()
}

// SetInputs sets several boundary inputs of the root scope at once and
// stabilizes the circuit.
//
func (c *Circuit) SetInputs(in map[string]bool) {
	for k, v := range in {
		c.inputs[k] = v
	}
	c.inputChanged()
}

func (c *Circuit) inputChanged() {
	if !c.assembled {
		return
	}
	c.metrics.toggle()
	c.Stabilize()
}

// Inputs returns a copy of the root boundary inputs.
//
func (c *Circuit) Inputs() map[string]bool {
	m := make(map[string]bool, len(c.inputs))
	for k, v := range c.inputs {
		m[k] = v
	}
	return m
}
