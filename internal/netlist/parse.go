// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package netlist splits netlist source text into declaration and wire
// statements.
//
// The syntax is line oriented and whitespace separated:
//
//	TYPE ID X Y               declare component ID of chip type TYPE at X, Y
//	WIRE SRC TGT [PIN [PIN]]  connect SRC to TGT
//
// Lines starting with # or // are comments. Lines with too few fields are
// reported as issues and otherwise ignored.
//
package netlist

import (
	"strconv"
	"strings"
)

// KeywordWire is the leading keyword of wire statements.
//
const KeywordWire = "WIRE"

// MaxLineLen is the length above which a non-comment line is skipped.
//
const MaxLineLen = 1 << 20

// Decl is a component declaration.
//
type Decl struct {
	Line int
	Type string // upper case
	ID   string
	X, Y int
}

// Wire is a wire statement. Pins holds the zero to two optional trailing pin
// names. Extra fields are dropped.
//
type Wire struct {
	Line int
	Src  string
	Tgt  string
	Pins []string
}

// Issue is a problem found on a line.
//
type Issue struct {
	Line int
	Msg  string
}

// File is a parsed netlist.
//
type File struct {
	Decls  []Decl
	Wires  []Wire
	Issues []Issue
}

func isComment(l string) bool {
	return strings.HasPrefix(l, "#") || strings.HasPrefix(l, "//")
}

// Parse parses netlist source. It never fails: malformed lines are reported in
// File.Issues.
//
func Parse(src string) *File {
	f := new(File)
	for i, l := range strings.Split(src, "\n") {
		line := i + 1
		l = strings.TrimSpace(l)
		if l == "" || isComment(l) {
			continue
		}
		if len(l) > MaxLineLen {
			f.issue(line, "line too long, skipped")
			continue
		}
		fs := strings.Fields(l)
		kw := strings.ToUpper(fs[0])
		if kw == KeywordWire {
			f.parseWire(line, fs)
		} else {
			f.parseDecl(line, kw, fs)
		}
	}
	return f
}

func (f *File) issue(line int, msg string) {
	f.Issues = append(f.Issues, Issue{line, msg})
}

func (f *File) parseWire(line int, fs []string) {
	if len(fs) < 3 {
		f.issue(line, "wire needs a source and a target")
		return
	}
	w := Wire{Line: line, Src: fs[1], Tgt: fs[2]}
	if len(fs) > 3 {
		w.Pins = fs[3:]
		if len(w.Pins) > 2 {
			f.issue(line, "extra fields after target pin ignored")
			w.Pins = w.Pins[:2]
		}
	}
	f.Wires = append(f.Wires, w)
}

func (f *File) parseDecl(line int, typ string, fs []string) {
	if len(fs) < 4 {
		f.issue(line, "declaration needs TYPE ID X Y, got "+strconv.Itoa(len(fs))+" fields")
		return
	}
	d := Decl{Line: line, Type: typ, ID: fs[1]}
	d.X = f.coord(line, fs[2])
	d.Y = f.coord(line, fs[3])
	f.Decls = append(f.Decls, d)
}

func (f *File) coord(line int, s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		f.issue(line, "invalid coordinate "+strconv.Quote(s)+", using 0")
		return 0
	}
	return n
}
