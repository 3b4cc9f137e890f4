// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"io"
	"io/ioutil"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// A Library is a read-only catalog of chip definitions indexed by type name.
// Type names are case insensitive.
//
type Library struct {
	defs map[string]*ChipDef
}

func typeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NewLibrary returns a new library containing the given definitions.
//
// It returns an error if a name is empty or used twice, or if composite chips
// reference each other in a cycle (a chip that directly or indirectly contains
// itself could never be instantiated).
//
func NewLibrary(defs ...*ChipDef) (*Library, error) {
	l := &Library{defs: make(map[string]*ChipDef, len(defs))}
	for _, d := range defs {
		if d == nil {
			continue
		}
		n := typeName(d.Name)
		if n == "" {
			return nil, errors.New("chip definition with empty name")
		}
		if _, ok := l.defs[n]; ok {
			return nil, errors.New("duplicate chip definition " + n)
		}
		l.defs[n] = d
	}
	if err := l.checkCycles(); err != nil {
		return nil, err
	}
	return l, nil
}

// With returns a new library with defs added to the definitions in l.
// Definitions in defs replace those of l with the same name. A nil l is
// treated as an empty library.
//
func (l *Library) With(defs ...*ChipDef) (*Library, error) {
	if l == nil {
		return NewLibrary(defs...)
	}
	over := make(map[string]bool, len(defs))
	for _, d := range defs {
		if d != nil {
			over[typeName(d.Name)] = true
		}
	}
	all := make([]*ChipDef, 0, len(l.defs)+len(defs))
	for _, n := range l.Names() {
		if !over[n] {
			all = append(all, l.defs[n])
		}
	}
	return NewLibrary(append(all, defs...)...)
}

// Lookup returns the definition for the given chip type.
//
func (l *Library) Lookup(name string) (*ChipDef, bool) {
	if l == nil {
		return nil, false
	}
	d, ok := l.defs[typeName(name)]
	return d, ok
}

// Names returns the sorted list of chip type names in l.
//
func (l *Library) Names() []string {
	if l == nil {
		return nil
	}
	ns := make([]string, 0, len(l.defs))
	for n := range l.defs {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

const (
	white = iota
	grey
	black
)

func (l *Library) checkCycles() error {
	color := make(map[string]int, len(l.defs))
	var path []string

	var visit func(n string) error
	visit = func(n string) error {
		switch color[n] {
		case black:
			return nil
		case grey:
			i := len(path) - 1
			for i > 0 && path[i] != n {
				i--
			}
			return errors.New("chip type cycle: " + strings.Join(append(path[i:], n), " -> "))
		}
		d := l.defs[n]
		if d == nil || !d.IsComposite() {
			color[n] = black
			return nil
		}
		color[n] = grey
		path = append(path, n)
		for _, c := range d.Components {
			if err := visit(typeName(c.Type)); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		color[n] = black
		return nil
	}

	for _, n := range l.Names() {
		if err := visit(n); err != nil {
			return err
		}
	}
	return nil
}

// ParseLibrary decodes chip definitions from YAML or JSON. The document must
// be a mapping of chip type names to definitions:
//
//	AND:
//	  inputs: [A, B]
//	  outputs: [OUT]
//	HALF_ADDER:
//	  inputs: [A, B]
//	  components:
//	    - {id: xor0, type: XOR}
//	    - {id: and0, type: AND}
//	  wires:
//	    - {from: A, to: xor0, toPin: A}
//	    ...
//	  ioMapping:
//	    output: xor0
//	    outputs: {SUM: xor0, CARRY: and0}
//
// Definitions are returned sorted by name. Since YAML documents are decoded
// with YAML 1.1 rules, mapping keys such as y, n, on or off must be quoted.
//
func ParseLibrary(data []byte) ([]*ChipDef, error) {
	var m map[string]*ChipDef
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "decode chip definitions")
	}
	defs := make([]*ChipDef, 0, len(m))
	for n, d := range m {
		if d == nil {
			d = &ChipDef{}
		}
		d.Name = typeName(n)
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, nil
}

// LoadLibrary reads chip definitions from r. See ParseLibrary.
//
func LoadLibrary(r io.Reader) ([]*ChipDef, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read chip definitions")
	}
	return ParseLibrary(data)
}
