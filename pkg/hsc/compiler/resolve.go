package compiler

import (
	"strconv"

	"github.com/SnowyMouse/riat/pkg/hsc/diag"
	"github.com/SnowyMouse/riat/pkg/hsc/sexpr"
	"github.com/SnowyMouse/riat/pkg/hsc/target"
)

// nodeKind classifies a resolved tree node before arena emission.
type nodeKind int

const (
	// primitiveStatic is a literal whose text is parsed once the final
	// passthrough type is known.
	primitiveStatic nodeKind = iota

	// primitiveLocal reads a script parameter.
	primitiveLocal

	// primitiveGlobal reads a user or engine global.
	primitiveGlobal

	// callFunction calls an engine function.
	callFunction

	// callScript calls a static script.
	callScript
)

// dataKind says which payload field of an exprNode is set.
type dataKind int

const (
	dataNone dataKind = iota
	dataBoolean
	dataShort
	dataLong
	dataReal
)

// exprNode is a resolved expression tree node. Emission flattens these into
// the sibling-linked arena.
type exprNode struct {
	valueType  target.ValueType
	kind       nodeKind
	data       dataKind
	boolean    bool
	short      int16
	long       int32
	real       float32
	stringData string
	raw        string // original token text, kept until literal parsing
	index      int    // table index; -1 until assigned
	args       []*exprNode
	file       string
	line       int
	column     int
}

// callSignature normalizes engine functions and callable user scripts for
// the argument loop.
type callSignature struct {
	returnType        target.ValueType
	parameters        []target.Parameter
	numberPassthrough bool
	passthroughLast   bool
	inequality        bool
	engine            bool
}

func (s *callSignature) parameterFor(i int) (target.Parameter, bool) {
	if i < len(s.parameters) {
		return s.parameters[i], true
	}
	if n := len(s.parameters); n > 0 && s.parameters[n-1].Many {
		return s.parameters[n-1], true
	}
	return target.Parameter{}, false
}

func (s *callSignature) minimumParameterCount() int {
	n := 0
	for _, p := range s.parameters {
		if !p.Optional {
			n++
		}
	}
	return n
}

// resolver resolves declaration bodies into typed expression trees. Scripts
// and globals are looked up by name, so declaration order never matters.
type resolver struct {
	catalog  *target.Catalog
	scripts  map[string]*scriptDecl
	globals  map[string]*globalDecl
	warnings *[]diag.Warning
}

// lowercase lowers ASCII letters only, matching the engine's own casing
// rules for script text.
func lowercase(s string) string {
	lowered := []byte(s)
	changed := false
	for i := 0; i < len(lowered); i++ {
		if lowered[i] >= 'A' && lowered[i] <= 'Z' {
			lowered[i] += 'a' - 'A'
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(lowered)
}

func (r *resolver) warnf(file string, line, column int, format string, args ...any) {
	*r.warnings = append(*r.warnings, diag.Warningf(file, line, column, format, args...))
}

// resolveBody wraps a declaration body in an implicit begin block and
// resolves it against the declared type.
func (r *resolver) resolveBody(owner *sexpr.Expression, expected target.ValueType, body []sexpr.Expression, params []scriptParameter) (*exprNode, error) {
	return r.resolveCall("begin", owner, expected, body, params)
}

// resolveExpression resolves one expression against the expected type.
func (r *resolver) resolveExpression(e *sexpr.Expression, expected target.ValueType, params []scriptParameter) (*exprNode, error) {
	if !e.IsAtom() {
		head := &e.Children[0]
		if !head.IsAtom() {
			return nil, diag.Errorf(diag.Syntax, head.File, head.Line, head.Column,
				"expected function name, got a block instead")
		}
		return r.resolveCall(lowercase(head.Literal), e, expected, e.Children[1:], params)
	}

	name := lowercase(e.Literal)

	// calculateType fits a variable of the given type to the expected
	// type, warning on lossy-but-legal numeric conversions.
	calculateType := func(what string, valueType target.ValueType) (target.ValueType, error) {
		if expected == target.Passthrough {
			return valueType, nil
		}
		if !valueType.CanConvertTo(expected) {
			return 0, diag.Errorf(diag.Type, e.File, e.Line, e.Column,
				"%s '%s' is '%s' which cannot convert to '%s'", what, name, valueType, expected)
		}
		if valueType.ConversionWarns(expected) {
			r.warnf(e.File, e.Line, e.Column,
				"value of %s '%s' is converted from '%s' to '%s'", what, name, valueType, expected)
		}
		return expected, nil
	}

	node := &exprNode{
		stringData: name,
		raw:        e.Literal,
		index:      -1,
		file:       e.File,
		line:       e.Line,
		column:     e.Column,
	}

	// A quoted string can never be a variable reference.
	if !e.Quoted {
		for i := range params {
			if params[i].name == name {
				finalType, err := calculateType("parameter", params[i].valueType)
				if err != nil {
					return nil, err
				}
				node.kind = primitiveLocal
				node.valueType = finalType
				return node, nil
			}
		}
		if g, ok := r.lookupGlobalType(name); ok {
			finalType, err := calculateType("global", g)
			if err != nil {
				return nil, err
			}
			node.kind = primitiveGlobal
			node.valueType = finalType
			return node, nil
		}
	}

	// Not a variable. The literal is parsed later, once the surrounding
	// call has settled its passthrough type.
	node.kind = primitiveStatic
	node.valueType = expected
	return node, nil
}

// lookupGlobalType finds a user or engine global's type, user first.
func (r *resolver) lookupGlobalType(name string) (target.ValueType, bool) {
	if g, ok := r.globals[name]; ok {
		return g.valueType, true
	}
	if g, ok := r.catalog.Global(name); ok {
		return g.Type, true
	}
	return 0, false
}

// resolveCall resolves a function or script call.
func (r *resolver) resolveCall(name string, call *sexpr.Expression, expected target.ValueType, args []sexpr.Expression, params []scriptParameter) (*exprNode, error) {
	// cond is pure syntax; rewrite it into nested ifs and resolve those.
	if name == "cond" {
		rewritten, err := desugarCond(call, args)
		if err != nil {
			return nil, err
		}
		return r.resolveExpression(rewritten, expected, params)
	}

	sig, err := r.lookupCallable(name, call)
	if err != nil {
		return nil, err
	}

	if len(args) < sig.minimumParameterCount() {
		return nil, diag.Errorf(diag.Type, call.File, call.Line, call.Column,
			"function '%s' takes at least %d parameter(s), got %d instead",
			name, sig.minimumParameterCount(), len(args))
	}

	// Settle the call's type against the expectation. Passthrough-returning
	// functions adapt to whatever is expected; everything else must convert.
	finalType := expected
	if expected == target.Passthrough {
		finalType = sig.returnType
	} else if sig.returnType != target.Passthrough {
		if !sig.returnType.CanConvertTo(expected) {
			return nil, diag.Errorf(diag.Type, call.File, call.Line, call.Column,
				"function '%s' returns '%s' which cannot convert to '%s'", name, sig.returnType, expected)
		}
		if sig.returnType.ConversionWarns(expected) {
			r.warnf(call.File, call.Line, call.Column,
				"result of '%s' is converted from '%s' to '%s'", name, sig.returnType, expected)
		}
	}

	// Determine the passthrough parameter type up front where possible.
	var passthroughType *target.ValueType
	havePassthrough := false
	setPassthrough := func(t target.ValueType) {
		passthroughType = &t
		havePassthrough = true
	}

	if name == "set" && sig.engine {
		// set's passthrough type is the variable's type.
		variable := &args[0]
		if !variable.IsAtom() {
			return nil, diag.Errorf(diag.Type, call.File, call.Line, call.Column,
				"function 'set' cannot take a block as the variable name")
		}
		variableName := lowercase(variable.Literal)
		globalType, ok := r.lookupGlobalType(variableName)
		if !ok {
			return nil, diag.Errorf(diag.Resolution, call.File, call.Line, call.Column,
				"parameter '%s' is not a global variable name", variableName)
		}
		setPassthrough(globalType)
	} else if sig.returnType == target.Passthrough && finalType != target.Passthrough {
		setPassthrough(finalType)
	}

	// Resolve the arguments.
	nodes := make([]*exprNode, 0, len(args))
	for i := range args {
		arg := &args[i]
		parameter, ok := sig.parameterFor(i)
		if !ok {
			return nil, diag.Errorf(diag.Type, arg.File, arg.Line, arg.Column,
				"function '%s' takes at most %d parameter(s) but extraneous parameter(s) were given",
				name, len(sig.parameters))
		}

		argIsPassthrough := false
		argExpected := parameter.Type
		if argExpected == target.Passthrough {
			switch {
			case sig.passthroughLast && i+1 != len(args):
				// Only the last value of a block carries through; the
				// rest are evaluated for effect.
				argExpected = target.Void
			case havePassthrough:
				argExpected = *passthroughType
			default:
				argIsPassthrough = true
			}
		}

		argNode, err := r.resolveExpression(arg, argExpected, params)
		if err != nil {
			return nil, err
		}
		if argIsPassthrough && argNode.valueType != target.Passthrough {
			setPassthrough(argNode.valueType)
		}
		nodes = append(nodes, argNode)
	}

	// The engine re-resolves set's variable by name at runtime.
	if name == "set" && sig.engine {
		nodes[0].index = 0xFFFF
	}

	// Unresolved passthrough defaults to real.
	finalPassthrough := target.Real
	if havePassthrough {
		finalPassthrough = *passthroughType
	}
	passthroughIsNumeric := finalPassthrough.CanConvertTo(target.Real)

	if sig.numberPassthrough && !passthroughIsNumeric {
		return nil, diag.Errorf(diag.Type, call.File, call.Line, call.Column,
			"passthrough parameters resolve to '%s', but function '%s' takes only numeric parameters",
			finalPassthrough, name)
	}
	if sig.inequality && !passthroughIsNumeric &&
		finalPassthrough != target.GameDifficulty && finalPassthrough != target.Team {
		return nil, diag.Errorf(diag.Type, call.File, call.Line, call.Column,
			"passthrough parameters resolve to '%s', but function '%s' is an inequality operator",
			finalPassthrough, name)
	}

	// Parse the literals now that every type is settled.
	for i, argNode := range nodes {
		if argNode.kind != primitiveStatic {
			continue
		}
		parameter, _ := sig.parameterFor(i)
		if argNode.valueType == target.Passthrough {
			argNode.valueType = finalPassthrough
		}
		if err := r.parseLiteral(argNode, parameter.AllowUppercase); err != nil {
			return nil, err
		}
	}

	// A passthrough-returning call with no expectation takes the type its
	// arguments settled on.
	if finalType == target.Passthrough {
		finalType = finalPassthrough
	}

	kind := callFunction
	if !sig.engine {
		kind = callScript
	}
	return &exprNode{
		valueType:  finalType,
		kind:       kind,
		stringData: name,
		index:      -1,
		args:       nodes,
		file:       call.File,
		line:       call.Line,
		column:     call.Column,
	}, nil
}

// lookupCallable finds the call signature for a name. User scripts shadow
// engine functions of the same name.
func (r *resolver) lookupCallable(name string, call *sexpr.Expression) (*callSignature, error) {
	if s, ok := r.scripts[name]; ok {
		sig := &callSignature{returnType: s.returnType}
		for _, p := range s.parameters {
			sig.parameters = append(sig.parameters, target.Parameter{Type: p.valueType})
		}
		return sig, nil
	}
	if fn, ok := r.catalog.Function(name); ok {
		return &callSignature{
			returnType:        fn.ReturnType,
			parameters:        fn.Parameters,
			numberPassthrough: fn.NumberPassthrough,
			passthroughLast:   fn.PassthroughLast,
			inequality:        fn.Inequality,
			engine:            true,
		}, nil
	}
	return nil, diag.Errorf(diag.Resolution, call.File, call.Line, call.Column,
		"function '%s' is not defined", name)
}

// desugarCond rewrites (cond (c1 e1...) (c2 e2...) ...) into
// (if c1 (begin e1...) (if c2 (begin e2...) ...)).
func desugarCond(call *sexpr.Expression, args []sexpr.Expression) (*sexpr.Expression, error) {
	if len(args) == 0 {
		return nil, diag.Errorf(diag.Syntax, call.File, call.Line, call.Column,
			"cond requires at least one set of expressions")
	}

	var ifBlocks []sexpr.Expression
	for ai := range args {
		arm := &args[ai]
		if arm.IsAtom() || len(arm.Children) < 2 {
			return nil, diag.Errorf(diag.Syntax, arm.File, arm.Line, arm.Column,
				"cond requires each parameter to be (<condition> <expression(s)>)")
		}

		condition := arm.Children[0]
		expressions := arm.Children[1:]

		beginChildren := make([]sexpr.Expression, 0, len(expressions)+1)
		beginChildren = append(beginChildren, sexpr.Expression{
			Literal: "begin",
			File:    expressions[0].File,
			Line:    expressions[0].Line,
			Column:  expressions[0].Column,
		})
		beginChildren = append(beginChildren, expressions...)

		ifBlocks = append(ifBlocks, sexpr.Expression{
			Children: []sexpr.Expression{
				{Literal: "if", File: arm.File, Line: arm.Line, Column: arm.Column},
				condition,
				{
					Children: beginChildren,
					File:     expressions[0].File,
					Line:     expressions[0].Line,
					Column:   expressions[0].Column,
				},
			},
			File:   arm.File,
			Line:   arm.Line,
			Column: arm.Column,
		})
	}

	// Nest each if block as the else branch of the one before it.
	for i := len(ifBlocks) - 2; i >= 0; i-- {
		ifBlocks[i].Children = append(ifBlocks[i].Children, ifBlocks[i+1])
	}
	return &ifBlocks[0], nil
}

// parseLiteral parses a static primitive's text according to its settled
// value type.
func (r *resolver) parseLiteral(n *exprNode, allowUppercase bool) error {
	text := n.raw
	if !allowUppercase {
		text = lowercase(text)
	}

	complain := func(allowedValues string) error {
		if _, err := r.lookupCallable(text, &sexpr.Expression{File: n.file, Line: n.line, Column: n.column}); err == nil {
			return diag.Errorf(diag.Type, n.file, n.line, n.column,
				"cannot parse token '%s' as %s and no global of this name defined; did you mean to call '(%s)' as a function?",
				text, n.valueType, text)
		}
		return diag.Errorf(diag.Type, n.file, n.line, n.column,
			"cannot parse token '%s' as %s and no global of this name defined (expected %s)",
			text, n.valueType, allowedValues)
	}

	clearStringData := false
	switch n.valueType {
	case target.Boolean:
		clearStringData = true
		switch text {
		case "0", "false", "off":
			n.data, n.boolean = dataBoolean, false
		case "1", "true", "on":
			n.data, n.boolean = dataBoolean, true
		default:
			return complain("0/1/false/true/off/on")
		}

	case target.Short:
		clearStringData = true
		v, err := strconv.ParseInt(text, 10, 16)
		if err != nil {
			return complain("integer between [-32768,32767]")
		}
		n.data, n.short = dataShort, int16(v)

	case target.Long:
		clearStringData = true
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return complain("integer between [-2147483648,2147483647]")
		}
		n.data, n.long = dataLong, int32(v)

	case target.Real:
		clearStringData = true
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return complain("numeric value")
		}
		n.data, n.real = dataReal, float32(v)

	case target.GameDifficulty:
		difficulties := map[string]int16{"easy": 0, "normal": 1, "hard": 2, "impossible": 3}
		v, ok := difficulties[text]
		if !ok {
			return complain("easy/normal/hard/impossible")
		}
		n.data, n.short = dataShort, v

	case target.Team:
		teams := map[string]int16{
			"default": 0, "player": 1, "human": 2, "covenant": 3, "flood": 4,
			"sentinel": 5, "unused6": 6, "unused7": 7, "unused8": 8, "unused9": 9,
		}
		v, ok := teams[text]
		if !ok {
			return complain("default/player/human/covenant/flood/sentinel/unused6/unused7/unused8/unused9")
		}
		n.data, n.short = dataShort, v

	case target.Script:
		if _, ok := r.scripts[text]; !ok {
			if _, isFunction := r.catalog.Function(text); isFunction {
				return diag.Errorf(diag.Type, n.file, n.line, n.column,
					"no script '%s' defined (a function is defined by this name, but it cannot be used here)", text)
			}
			return complain("script name")
		}

	case target.Void:
		return complain("function call or global")

	default:
		// String and engine-domain types keep their text; the engine
		// resolves them against scenario data.
	}

	n.stringData = text
	if clearStringData {
		n.stringData = ""
	}
	return nil
}
