// Package node defines the compiled node arena the engine runtime walks.
// Nodes are flat: children are reached through arena indices (a call's
// Offset points at its function-name node) and sibling Next links, never
// through Go pointers.
package node

import "github.com/SnowyMouse/riat/pkg/hsc/target"

// NoNode is the sentinel arena index meaning "no node". It terminates
// sibling chains and fills unused Offset fields.
const NoNode = -1

// Kind says how a node's payload is to be interpreted.
type Kind int

// Node kinds
const (
	// Primitive nodes hold a literal value: one of the Boolean, Short,
	// Long or Real fields depending on Type, or just StringData for
	// string and engine-domain types.
	Primitive Kind = iota

	// GlobalReference nodes name a global; StringData holds the name.
	GlobalReference

	// ParameterReference nodes read a script parameter; Index holds the
	// parameter's position.
	ParameterReference

	// FunctionCall nodes call an engine function. Offset points at the
	// function-name node; arguments follow via that node's Next chain.
	// Index is the engine's function-table slot.
	FunctionCall

	// ScriptCall nodes call a static script. Laid out like FunctionCall,
	// with Index holding the script's table index instead.
	ScriptCall
)

// kindNames maps Kind to its string representation.
var kindNames = map[Kind]string{
	Primitive:          "primitive",
	GlobalReference:    "global reference",
	ParameterReference: "parameter reference",
	FunctionCall:       "function call",
	ScriptCall:         "script call",
}

// String returns a string representation of the node kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Node is one entry in the compiled arena. Exactly one payload field is
// meaningful, selected by Kind and Type; the rest stay zero.
type Node struct {
	// Type is the node's resolved value type.
	Type target.ValueType

	// Kind selects the payload interpretation.
	Kind Kind

	// Boolean, Short, Long and Real hold parsed literal values for
	// Primitive nodes of the corresponding type.
	Boolean bool
	Short   int16
	Long    int32
	Real    float32

	// Offset is the arena index of the function-name node for call
	// nodes, NoNode otherwise.
	Offset int

	// StringData is the original token text. The runtime uses it for
	// engine-domain types, names, and the function-name node.
	StringData string

	// Index is the function-table slot for FunctionCall, the script
	// table index for ScriptCall, the parameter position for
	// ParameterReference, and the global table index for
	// GlobalReference. The variable node of a `set` call stores 0xFFFF;
	// the engine re-resolves it by name.
	Index uint16

	// Next is the arena index of the next sibling argument, NoNode at
	// the end of a chain.
	Next int

	// Source position of the token this node was compiled from.
	File   string
	Line   int
	Column int
}
