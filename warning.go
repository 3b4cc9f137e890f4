// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "strconv"

// WarningKind classifies the anomalies the simulator absorbs instead of
// failing.
//
type WarningKind int

// Warning kinds.
//
const (
	// ParseWarning is reported for netlist lines that were skipped or only
	// partially understood.
	ParseWarning WarningKind = iota
	// UnknownChipType is reported for components whose type is not in the
	// library. Such components always output false.
	UnknownChipType
	// DanglingWireSource is reported for wires whose source is neither a
	// component nor a known input. They read false.
	DanglingWireSource
	// OscillationWarning is reported when a circuit did not settle within the
	// maximum number of rounds.
	OscillationWarning
)

var kindNames = [...]string{
	ParseWarning:       "parse",
	UnknownChipType:    "unknown_chip",
	DanglingWireSource: "dangling_wire",
	OscillationWarning: "oscillation",
}

func (k WarningKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "WarningKind(" + strconv.Itoa(int(k)) + ")"
}

// A Warning describes an anomaly found while building or running a circuit.
//
type Warning struct {
	Kind WarningKind
	// Line is the netlist line number, 0 if not applicable.
	Line int
	Msg  string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return "line " + strconv.Itoa(w.Line) + ": " + w.Msg
	}
	return w.Msg
}
