package compiler

import (
	"github.com/SnowyMouse/riat/pkg/hsc/diag"
	"github.com/SnowyMouse/riat/pkg/hsc/node"
	"github.com/SnowyMouse/riat/pkg/hsc/target"
)

// optimizeBegin collapses begin blocks with a single expression into that
// expression. The engine evaluates the result identically but walks fewer
// nodes.
func optimizeBegin(n *exprNode) {
	for n.kind == callFunction && n.stringData == "begin" && len(n.args) == 1 {
		*n = *n.args[0]
	}
	if n.kind == callFunction || n.kind == callScript {
		for _, arg := range n.args {
			optimizeBegin(arg)
		}
	}
}

// removeReplacedStubs drops every stub script that has a static replacement
// and warns about stubs that were never replaced. Declaration order is
// preserved for the survivors.
func removeReplacedStubs(scripts []*scriptDecl, warnings *[]diag.Warning) []*scriptDecl {
	replaced := make(map[string]bool)
	for _, s := range scripts {
		if s.scriptType == target.Static {
			replaced[s.name] = true
		}
	}

	kept := scripts[:0]
	for _, s := range scripts {
		if s.scriptType == target.Stub {
			if replaced[s.name] {
				continue
			}
			*warnings = append(*warnings, diag.Warningf(s.expr.File, s.expr.Line, s.expr.Column,
				"stub script '%s' was never replaced by a static script", s.name))
		}
		kept = append(kept, s)
	}
	return kept
}

// emit assigns table indices, runs the remaining whole-program checks and
// flattens every declaration tree into the arena.
func emit(catalog *target.Catalog, scripts []*scriptDecl, globals []*globalDecl, files []sourceFile, warnings []diag.Warning) *Output {
	scriptIndices := make(map[string]int, len(scripts))
	for i, s := range scripts {
		scriptIndices[s.name] = i
	}
	globalIndices := make(map[string]int, len(globals))
	for i, g := range globals {
		globalIndices[g.name] = i
	}

	for _, s := range scripts {
		assignIndices(s.node, s.parameters, scriptIndices, globalIndices, catalog)
	}
	for gi, g := range globals {
		assignIndices(g.node, nil, scriptIndices, globalIndices, catalog)
		warnUninitializedGlobals(g.node, gi, globalIndices, &warnings)
	}

	var nodes []node.Node

	output := &Output{warnings: warnings}
	for _, s := range scripts {
		parameters := make([]Parameter, 0, len(s.parameters))
		for _, p := range s.parameters {
			parameters = append(parameters, Parameter{Name: p.name, Type: p.valueType})
		}
		output.scripts = append(output.scripts, Script{
			Name:       s.name,
			Type:       s.scriptType,
			ReturnType: s.returnType,
			Parameters: parameters,
			RootNode:   emitNode(s.node, &nodes),
			File:       s.expr.File,
			Line:       s.expr.Line,
			Column:     s.expr.Column,
		})
	}
	for _, g := range globals {
		output.globals = append(output.globals, Global{
			Name:     g.name,
			Type:     g.valueType,
			RootNode: emitNode(g.node, &nodes),
			File:     g.expr.File,
			Line:     g.expr.Line,
			Column:   g.expr.Column,
		})
	}

	limits := catalog.Limits()
	if len(nodes) > limits.MaximumNodes {
		output.warnings = append(output.warnings, diag.Warningf("", 0, 0,
			"maximum node limit of %d exceeded (%d nodes); the scenario will not fit stock tag space",
			limits.MaximumNodes, len(nodes)))
	}

	output.nodes = nodes
	for _, f := range files {
		output.files = append(output.files, f.name)
	}
	return output
}

// assignIndices fills in script, global, parameter and function table
// indices throughout a resolved tree.
func assignIndices(n *exprNode, params []scriptParameter, scriptIndices, globalIndices map[string]int, catalog *target.Catalog) {
	switch n.kind {
	case primitiveStatic:
		if n.valueType == target.Script {
			n.data = dataShort
			n.short = int16(scriptIndices[n.stringData])
		}

	case primitiveLocal:
		for i := range params {
			if params[i].name == n.stringData {
				n.data = dataLong
				n.long = int32(i)
				if n.index < 0 {
					n.index = i
				}
				break
			}
		}

	case primitiveGlobal:
		if i, ok := globalIndices[n.stringData]; ok {
			n.data = dataLong
			n.long = int32(i)
			if n.index < 0 {
				n.index = i
			}
		} else if n.index < 0 {
			// Engine globals are resolved by name at runtime.
			n.index = int(target.NullIndex)
		}

	case callFunction:
		if fn, ok := catalog.Function(n.stringData); ok {
			n.index = int(fn.Index)
		}
		for _, arg := range n.args {
			assignIndices(arg, params, scriptIndices, globalIndices, catalog)
		}

	case callScript:
		n.index = scriptIndices[n.stringData]
		for _, arg := range n.args {
			assignIndices(arg, params, scriptIndices, globalIndices, catalog)
		}
	}
}

// warnUninitializedGlobals warns when a global's initializer reads another
// user global that has not been initialized yet. Globals initialize in
// declaration order, so any reference at or past the current position reads
// a zero value.
func warnUninitializedGlobals(n *exprNode, position int, globalIndices map[string]int, warnings *[]diag.Warning) {
	switch n.kind {
	case primitiveGlobal:
		if i, ok := globalIndices[n.stringData]; ok && i >= position {
			*warnings = append(*warnings, diag.Warningf(n.file, n.line, n.column,
				"use of uninitialized global '%s'", n.stringData))
		}
	case callFunction, callScript:
		for _, arg := range n.args {
			warnUninitializedGlobals(arg, position, globalIndices, warnings)
		}
	}
}

// emitNode flattens one resolved tree into the arena and returns the arena
// index of its root. A call emits its call node, then its function-name
// node, then each argument, with the name node and arguments joined by
// Next links.
func emitNode(n *exprNode, nodes *[]node.Node) int {
	index := uint16(0)
	if n.index >= 0 {
		index = uint16(n.index)
	}

	switch n.kind {
	case callFunction, callScript:
		kind := node.FunctionCall
		if n.kind == callScript {
			kind = node.ScriptCall
		}

		callIndex := len(*nodes)
		nameIndex := callIndex + 1
		*nodes = append(*nodes, node.Node{
			Type:   n.valueType,
			Kind:   kind,
			Offset: nameIndex,
			Index:  index,
			Next:   node.NoNode,
			File:   n.file,
			Line:   n.line,
			Column: n.column,
		})
		*nodes = append(*nodes, node.Node{
			Type:       target.FunctionName,
			Kind:       node.Primitive,
			StringData: n.stringData,
			Offset:     node.NoNode,
			Index:      index,
			Next:       node.NoNode,
			File:       n.file,
			Line:       n.line,
			Column:     n.column,
		})

		previous := nameIndex
		for _, arg := range n.args {
			next := emitNode(arg, nodes)
			(*nodes)[previous].Next = next
			previous = next
		}
		return callIndex

	default:
		kind := node.Primitive
		switch n.kind {
		case primitiveLocal:
			kind = node.ParameterReference
		case primitiveGlobal:
			kind = node.GlobalReference
		}

		compiled := node.Node{
			Type:       n.valueType,
			Kind:       kind,
			StringData: n.stringData,
			Offset:     node.NoNode,
			Index:      index,
			Next:       node.NoNode,
			File:       n.file,
			Line:       n.line,
			Column:     n.column,
		}
		switch n.data {
		case dataBoolean:
			compiled.Boolean = n.boolean
		case dataShort:
			compiled.Short = n.short
		case dataLong:
			compiled.Long = n.long
		case dataReal:
			compiled.Real = n.real
		}

		result := len(*nodes)
		*nodes = append(*nodes, compiled)
		return result
	}
}
