package compiler

import (
	"github.com/SnowyMouse/riat/pkg/hsc/diag"
	"github.com/SnowyMouse/riat/pkg/hsc/node"
	"github.com/SnowyMouse/riat/pkg/hsc/target"
)

// Parameter is one compiled script parameter.
type Parameter struct {
	Name string
	Type target.ValueType
}

// Script is one compiled script table entry. RootNode is the arena index
// of the script's body.
type Script struct {
	Name       string
	Type       target.ScriptType
	ReturnType target.ValueType
	Parameters []Parameter
	RootNode   int
	File       string
	Line       int
	Column     int
}

// Global is one compiled global table entry. RootNode is the arena index
// of the global's initializer.
type Global struct {
	Name     string
	Type     target.ValueType
	RootNode int
	File     string
	Line     int
	Column   int
}

// Output is the result of a successful compile: the script table, global
// table and node arena, in engine order. An Output is immutable; callers
// must not modify the returned slices.
type Output struct {
	scripts  []Script
	globals  []Global
	nodes    []node.Node
	files    []string
	warnings []diag.Warning
}

// Scripts returns the script table. Scripts keep declaration order, with
// replaced stubs removed; a script's position is its table index.
func (o *Output) Scripts() []Script {
	return o.scripts
}

// Globals returns the global table in declaration order.
func (o *Output) Globals() []Global {
	return o.globals
}

// Nodes returns the node arena.
func (o *Output) Nodes() []node.Node {
	return o.nodes
}

// Files returns the names of the source files that went into the compile,
// in load order.
func (o *Output) Files() []string {
	return o.files
}

// Warnings returns every warning raised during the compile.
func (o *Output) Warnings() []diag.Warning {
	return o.warnings
}
