// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/db47h/logicsim/internal/netlist"
)

// Build parses netlist source and instantiates its components using the chips
// in lib. The returned scope has not been evaluated yet.
//
// Build never fails. Malformed lines, unknown chip types and wires from
// unknown sources are reported as warnings.
//
// Declarations are processed before wires, so a wire may reference a
// component declared further down. A wire with a single pin name uses it as
// the target pin if the target's chip declares an input with that name,
// otherwise as the source pin.
//
func Build(lib *Library, src string) (*Scope, []Warning) {
	return build(lib, src, nil)
}

// build is Build with a set of boundary input names that are valid wire
// sources.
//
func build(lib *Library, src string, inputs map[string]bool) (*Scope, []Warning) {
	f := netlist.Parse(src)
	var ws []Warning
	for _, i := range f.Issues {
		ws = append(ws, Warning{ParseWarning, i.Line, i.Msg})
	}

	root := &Scope{index: make(map[string]*Component, len(f.Decls))}
	for _, d := range f.Decls {
		if _, ok := lib.Lookup(d.Type); !ok {
			ws = append(ws, Warning{UnknownChipType, d.Line, "unknown chip type " + d.Type + " for " + d.ID})
		}
		root.Add(newComponent(lib, d.ID, d.Type, d.X, d.Y, false))
	}

	for _, w := range f.Wires {
		wr := Wire{From: w.Src, To: w.Tgt, Line: w.Line}
		switch len(w.Pins) {
		case 2:
			wr.FromPin, wr.ToPin = ByName(w.Pins[0]), ByName(w.Pins[1])
		case 1:
			if isTargetInput(lib, root, w.Tgt, w.Pins[0]) {
				wr.ToPin = ByName(w.Pins[0])
			} else {
				wr.FromPin = ByName(w.Pins[0])
			}
		}
		if _, ok := inputs[w.Src]; !ok && root.Lookup(w.Src) == nil {
			ws = append(ws, Warning{DanglingWireSource, w.Line, "wire source " + w.Src + " is not a component"})
		}
		root.Wires = append(root.Wires, wr)
	}
	return root, ws
}

func isTargetInput(lib *Library, s *Scope, id, pin string) bool {
	c := s.Lookup(id)
	if c == nil {
		return false
	}
	d, ok := lib.Lookup(c.Type)
	return ok && d.HasInput(pin)
}
