// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// Common pin and chip names.
//
const (
	// PinOut is the name of the single output pin of primitive chips.
	PinOut = "OUT"
	// Input is the type name of primary inputs: primitives with no input pins
	// that hold their value until toggled.
	Input = "INPUT"
)

// positional pin names for chips missing from the library.
var defaultInputs = []string{"A", "B"}

type gate func(a, b bool) bool

var gates = map[string]gate{
	"AND":  func(a, b bool) bool { return a && b },
	"NAND": func(a, b bool) bool { return !(a && b) },
	"OR":   func(a, b bool) bool { return a || b },
	"NOR":  func(a, b bool) bool { return !(a || b) },
	"XOR":  func(a, b bool) bool { return a != b },
	"XNOR": func(a, b bool) bool { return a == b },
	"NOT":  func(a, _ bool) bool { return !a },
}

// inputPins returns the declared input pins of a chip, or the default A, B
// pair for unknown chips.
//
func inputPins(d *ChipDef) []string {
	if d == nil || d.Inputs == nil {
		return defaultInputs
	}
	return d.Inputs
}

// evalPrimitive computes the output of a primitive chip of the given type.
// The first two declared inputs are the gate operands. INPUT chips keep their
// current value and unknown types are always false.
//
func evalPrimitive(typ string, d *ChipDef, in map[string]bool, cur bool) bool {
	typ = typeName(typ)
	if typ == Input {
		return cur
	}
	g, ok := gates[typ]
	if !ok {
		return false
	}
	var ops [2]bool
	for i, p := range inputPins(d) {
		if i >= len(ops) {
			break
		}
		ops[i] = in[p]
	}
	return g(ops[0], ops[1])
}

// IsPrimitiveGate returns true if typ has a built-in truth table.
//
func IsPrimitiveGate(typ string) bool {
	_, ok := gates[typeName(typ)]
	return ok
}
