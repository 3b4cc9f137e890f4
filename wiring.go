// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// A Port selects the pin at one end of a wire: either a pin given by name or,
// for the zero value Positional, a default chosen by position.
//
// On the source side of a wire, Positional reads the source's scalar value.
// On the target side, it assigns the first declared input pin of the target
// not yet connected in the current resolution pass.
//
type Port struct {
	name string
}

// Positional is the default, unnamed Port.
//
var Positional Port

// ByName returns a Port for the named pin. ByName("") is Positional.
//
func ByName(pin string) Port { return Port{pin} }

// Name returns the pin name and true for named ports, or "" and false for
// Positional.
//
func (p Port) Name() (string, bool) { return p.name, p.name != "" }

func (p Port) String() string {
	if p.name == "" {
		return "*"
	}
	return p.name
}

// A Wire connects a source to an input pin of a component in the same scope.
// From names either a sibling component or a boundary input of the scope.
//
type Wire struct {
	From    string
	FromPin Port
	To      string
	ToPin   Port
	// Line is the netlist line the wire was declared on, 0 for wires cloned
	// from a chip template.
	Line int
}

func (w *Wire) String() string {
	return w.From + "." + w.FromPin.String() + " -> " + w.To + "." + w.ToPin.String()
}

// source returns the current value of the wire's source: a sibling
// component's output, a boundary input, or false.
//
func (s *Scope) source(w *Wire, boundary map[string]bool) bool {
	if c := s.Lookup(w.From); c != nil {
		if pin, ok := w.FromPin.Name(); ok {
			return c.Outputs[pin]
		}
		return c.Value
	}
	return boundary[w.From]
}

// ResolveInputs computes the input pin values of component c from the wires
// of scope s. Wires are processed in declaration order; sources that resolve
// to nothing read as false.
//
func (s *Scope) ResolveInputs(lib *Library, c *Component, boundary map[string]bool) map[string]bool {
	in := make(map[string]bool)
	var pins []string
	for i := range s.Wires {
		w := &s.Wires[i]
		if w.To != c.ID {
			continue
		}
		v := s.source(w, boundary)
		if pin, ok := w.ToPin.Name(); ok {
			in[pin] = v
			continue
		}
		if pins == nil {
			d, _ := lib.Lookup(c.Type)
			pins = inputPins(d)
		}
		for _, p := range pins {
			if _, ok := in[p]; !ok {
				in[p] = v
				break
			}
		}
	}
	return in
}
