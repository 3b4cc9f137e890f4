// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// A ChipDef wraps a chip specification (its blueprint).
//
// A primitive chip only declares its pins:
//
//	and := &logicsim.ChipDef{
//		Name:    "AND",
//		Inputs:  []string{"A", "B"},
//		Outputs: []string{"OUT"},
//	}
//
// A composite chip also carries a sub-netlist that is cloned into every
// instance of the chip:
//
//	not := &logicsim.ChipDef{
//		Name:   "NOT2",
//		Inputs: []string{"In"},
//		Components: []logicsim.ComponentTemplate{
//			{ID: "n", Type: "NAND"},
//		},
//		Wires: []logicsim.WireTemplate{
//			{From: "In", To: "n", ToPin: "A"},
//			{From: "In", To: "n", ToPin: "B"},
//		},
//		IOMapping: &logicsim.IOMapping{Output: "n"},
//	}
//
type ChipDef struct {
	// Chip type name. Filled in from the library key when loading from YAML.
	Name string `json:"name,omitempty"`
	// Input pin names, in declared order. Positional wires are assigned to
	// these pins in this order.
	Inputs []string `json:"inputs"`
	// Output pin names. Primitives expose a single implicit OUT pin.
	Outputs []string `json:"outputs,omitempty"`

	// Sub-netlist. A nil Components slice marks a primitive.
	Components []ComponentTemplate `json:"components,omitempty"`
	Wires      []WireTemplate      `json:"wires,omitempty"`

	IOMapping *IOMapping `json:"ioMapping,omitempty"`
}

// IsComposite returns true if d has a sub-netlist.
//
func (d *ChipDef) IsComposite() bool {
	return d.Components != nil
}

// HasInput returns true if name is one of d's declared input pins.
//
func (d *ChipDef) HasInput(name string) bool {
	for _, in := range d.Inputs {
		if in == name {
			return true
		}
	}
	return false
}

// ComponentTemplate is a component declaration inside a composite chip.
//
type ComponentTemplate struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	X     int    `json:"x,omitempty"`
	Y     int    `json:"y,omitempty"`
	Value int    `json:"value,omitempty"`
}

// WireTemplate is a wire declaration inside a composite chip. From may name a
// sibling component or one of the chip's input pins.
//
type WireTemplate struct {
	From    string `json:"from"`
	To      string `json:"to"`
	FromPin string `json:"fromPin,omitempty"`
	ToPin   string `json:"toPin,omitempty"`
}

// PinRef references a pin of a component inside a composite chip. An empty Pin
// designates the component's scalar value.
//
// In the YAML/JSON schema, a PinRef is either an object {id, pin} or a bare
// component id.
//
type PinRef struct {
	ID  string `json:"id"`
	Pin string `json:"pin,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
//
func (r *PinRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*r = PinRef{ID: id}
		return nil
	}
	type plain PinRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.Wrap(err, "pin reference must be an id or {id, pin}")
	}
	*r = PinRef(p)
	return nil
}

// IOMapping describes how a composite chip's external pins relate to its
// internals.
//
// Inputs is informational: internal wires bind to input pins by using the
// external pin name as their source. Outputs maps external output pins to
// internal sources and Output names the internal component whose scalar value
// becomes the chip's own value.
//
type IOMapping struct {
	Inputs  map[string][]PinRef `json:"inputs,omitempty"`
	Outputs map[string]PinRef   `json:"outputs,omitempty"`
	Output  string              `json:"output,omitempty"`
}
