/*
Package logicsim provides an interactive digital logic simulator.

Circuits are described by a small line oriented netlist language and built
from a Library of chips. Primitive chips (AND, OR, NAND, NOR, XOR, XNOR, NOT
and INPUT) have a fixed truth table; composite chips are made of other chips
and can be nested to any depth. Every instance of a composite chip owns a
private copy of the chip's internals.

	AND g1 0 0
	INPUT a 0 100
	WIRE a g1 A
	WIRE in_b g1 B

The simulator does not model propagation delays. Instead, it evaluates every
component of the circuit in rounds, in declaration order, until a round
changes nothing. Feedback loops are allowed: this is how memory cells are
built. Circuits that never settle, like a NOT gate wired to itself, are
stopped after a fixed number of rounds and reported with a warning.

The simulator is lenient because the netlist language is meant for
live editing: malformed lines are skipped, unknown chips always output false
and unconnected pins read false. These anomalies are reported as Warnings, not
errors.
*/
package logicsim
