// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package chiplib provides the standard chip library for logicsim.
//
// Primitives:
//
//	INPUT                 primary input, toggled by the user
//	AND, OR, NAND, NOR,   two input gates. Inputs: A, B. Output: OUT
//	XNOR
//	NOT                   Inputs: In. Output: OUT
//
// Composite chips:
//
//	XOR          Inputs: A, B. Outputs: OUT. Built from OR, NAND and AND.
//	MUX          Inputs: A, B, Sel. Outputs: OUT. OUT = Sel ? B : A
//	DMUX         Inputs: In, Sel. Outputs: A, B.
//	HALF_ADDER   Inputs: A, B. Outputs: SUM, CARRY.
//	FULL_ADDER   Inputs: A, B, Cin. Outputs: SUM, Cout.
//	ADDER_4_BIT  Inputs: A0, B0 ... A3, B3. Outputs: S0 ... S3, Cout.
//	BIT          Inputs: In, Load. Outputs: OUT. 1 bit storage cell.
//	REGISTER_4   Inputs: In0 ... In3, Load0 ... Load3. Outputs: Out0 ... Out3.
//
package chiplib

import (
	_ "embed" // std.yaml
	"sync"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

//go:embed std.yaml
var stdYAML []byte

var (
	once   sync.Once
	stdLib *logicsim.Library
	stdErr error
)

// Definitions returns a fresh copy of the standard chip definitions.
//
func Definitions() ([]*logicsim.ChipDef, error) {
	defs, err := logicsim.ParseLibrary(stdYAML)
	if err != nil {
		return nil, errors.Wrap(err, "standard library")
	}
	return defs, nil
}

// Default returns the standard library. The returned library is shared and
// must not be modified; use its With method to extend it.
//
func Default() *logicsim.Library {
	once.Do(func() {
		var defs []*logicsim.ChipDef
		if defs, stdErr = Definitions(); stdErr == nil {
			stdLib, stdErr = logicsim.NewLibrary(defs...)
		}
	})
	if stdErr != nil {
		panic(stdErr)
	}
	return stdLib
}
