// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"sort"
	"strings"
)

// A Component is an instance of a chip within a Scope.
//
type Component struct {
	ID   string
	Type string
	// Layout metadata, ignored by the simulation.
	X, Y int

	// Value is the component's scalar (main) output.
	Value bool
	// Inputs holds the pin values resolved during the last evaluation.
	Inputs map[string]bool
	// Outputs holds the named output pin values.
	Outputs map[string]bool

	// Scope is the component's private copy of its chip's sub-netlist. It is
	// nil for primitives.
	Scope *Scope
}

// A Scope holds the components and wires of one level of the chip hierarchy:
// the root netlist or the internals of a composite component.
//
type Scope struct {
	Components []*Component
	Wires      []Wire

	index map[string]*Component
}

// Add appends c to the scope. If a component with the same id already exists,
// c is still evaluated but Lookup keeps returning the first one.
//
func (s *Scope) Add(c *Component) {
	if s.index == nil {
		s.index = make(map[string]*Component)
	}
	if _, ok := s.index[c.ID]; !ok {
		s.index[c.ID] = c
	}
	s.Components = append(s.Components, c)
}

// Lookup returns the component with the given id in s, or nil.
//
func (s *Scope) Lookup(id string) *Component {
	if s == nil {
		return nil
	}
	return s.index[id]
}

// newComponent creates a component of the given type. Composite chips found in
// lib get a deep copy of their sub-netlist.
//
func newComponent(lib *Library, id, typ string, x, y int, v bool) *Component {
	c := &Component{
		ID:      id,
		Type:    typeName(typ),
		X:       x,
		Y:       y,
		Value:   v,
		Inputs:  map[string]bool{},
		Outputs: map[string]bool{},
	}
	if d, ok := lib.Lookup(typ); ok && d.IsComposite() {
		c.Scope = instantiate(lib, d)
	}
	return c
}

// instantiate clones the sub-netlist of d. Library validation guarantees that
// the recursion terminates.
//
func instantiate(lib *Library, d *ChipDef) *Scope {
	s := &Scope{
		Components: make([]*Component, 0, len(d.Components)),
		Wires:      make([]Wire, 0, len(d.Wires)),
		index:      make(map[string]*Component, len(d.Components)),
	}
	for _, t := range d.Components {
		s.Add(newComponent(lib, t.ID, t.Type, t.X, t.Y, t.Value != 0))
	}
	for _, w := range d.Wires {
		s.Wires = append(s.Wires, Wire{
			From:    w.From,
			FromPin: ByName(w.FromPin),
			To:      w.To,
			ToPin:   ByName(w.ToPin),
		})
	}
	return s
}

func equalStates(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}

// Evaluate updates every component of s once, in declaration order, and
// returns true if any input, output or value changed. Composite components are
// evaluated recursively with their resolved inputs as the boundary inputs of
// their internal scope.
//
// Components are updated in place: a component sees the values computed
// earlier in the same pass by the components declared before it.
//
func (s *Scope) Evaluate(lib *Library, boundary map[string]bool) bool {
	changed := false
	for _, c := range s.Components {
		in := s.ResolveInputs(lib, c, boundary)
		if !equalStates(in, c.Inputs) {
			c.Inputs = in
			changed = true
		}

		oldValue, oldOut := c.Value, c.Outputs
		d, ok := lib.Lookup(c.Type)
		if c.Scope != nil && ok {
			if c.Scope.Evaluate(lib, in) {
				changed = true
			}
			c.Outputs = mapOutputs(d, c.Scope)
			if m := d.IOMapping; m != nil && m.Output != "" {
				c.Value = false
				if oc := c.Scope.Lookup(m.Output); oc != nil {
					c.Value = oc.Value
				}
			}
		} else {
			c.Value = evalPrimitive(c.Type, d, in, c.Value)
			c.Outputs = map[string]bool{PinOut: c.Value}
		}

		if c.Value != oldValue || !equalStates(c.Outputs, oldOut) {
			changed = true
		}
	}
	return changed
}

// mapOutputs computes the named outputs of a composite chip from its internal
// scope. Declared outputs come first; mapped outputs that are not declared are
// exported as well. A declared output with no mapping reads the chip's main
// output component.
//
func mapOutputs(d *ChipDef, s *Scope) map[string]bool {
	var m IOMapping
	if d.IOMapping != nil {
		m = *d.IOMapping
	}
	out := make(map[string]bool, len(d.Outputs)+len(m.Outputs))

	read := func(r PinRef) bool {
		c := s.Lookup(r.ID)
		if c == nil {
			return false
		}
		if r.Pin != "" {
			if v, ok := c.Outputs[r.Pin]; ok {
				return v
			}
		}
		return c.Value
	}

	for _, p := range d.Outputs {
		if r, ok := m.Outputs[p]; ok {
			out[p] = read(r)
		} else if m.Output != "" {
			// unmapped ports read the main output component instead of
			// staying low, so that "WIRE x g OUT A" works on an XOR.
			out[p] = read(PinRef{ID: m.Output})
		} else {
			out[p] = false
		}
	}
	extra := make([]string, 0, len(m.Outputs))
	for p := range m.Outputs {
		if _, ok := out[p]; !ok {
			extra = append(extra, p)
		}
	}
	sort.Strings(extra)
	for _, p := range extra {
		out[p] = read(m.Outputs[p])
	}
	return out
}

// Walk calls fn for every component in s and its nested scopes, depth first,
// in declaration order. path is the dot separated list of component ids from
// s down to c. If fn returns an error, Walk stops and returns it.
//
func (s *Scope) Walk(fn func(path string, c *Component) error) error {
	return s.walk("", fn)
}

func (s *Scope) walk(prefix string, fn func(string, *Component) error) error {
	for _, c := range s.Components {
		p := c.ID
		if prefix != "" {
			p = prefix + "." + c.ID
		}
		if err := fn(p, c); err != nil {
			return err
		}
		if c.Scope != nil {
			if err := c.Scope.walk(p, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Find returns the component at the given dot separated path, or nil.
//
func (s *Scope) Find(path string) *Component {
	var c *Component
	for _, id := range strings.Split(path, ".") {
		if c != nil {
			s = c.Scope
		}
		if c = s.Lookup(id); c == nil {
			return nil
		}
	}
	return c
}
