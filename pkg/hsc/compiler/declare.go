package compiler

import (
	"github.com/SnowyMouse/riat/pkg/hsc/diag"
	"github.com/SnowyMouse/riat/pkg/hsc/sexpr"
	"github.com/SnowyMouse/riat/pkg/hsc/target"
)

// scriptParameter is one declared parameter of a static or stub script.
type scriptParameter struct {
	name      string
	valueType target.ValueType
	file      string
	line      int
	column    int
}

// scriptDecl is a script declaration before resolution.
type scriptDecl struct {
	name       string
	scriptType target.ScriptType
	returnType target.ValueType
	parameters []scriptParameter
	body       []sexpr.Expression
	expr       *sexpr.Expression
	node       *exprNode
}

// globalDecl is a global declaration before resolution.
type globalDecl struct {
	name      string
	valueType target.ValueType
	init      []sexpr.Expression
	expr      *sexpr.Expression
	node      *exprNode
}

// reservedScriptNames cannot be overridden by a script.
var reservedScriptNames = map[string]bool{
	"begin": true,
	"if":    true,
	"cond":  true,
}

// declaration tracks the first declaration seen for a name. paired is set
// once a stub has met its static replacement; any further use of the name
// is a plain duplicate.
type declaration struct {
	script *scriptDecl
	global *globalDecl
	paired bool
}

// collectDeclarations walks every top-level block of every loaded file and
// collects script and global declarations. Bodies are not resolved yet, so
// forward references are fine. Scripts and globals share one namespace: a
// name declared twice is an error at the second occurrence, except a stub
// script paired with one static script of the same name and return type.
func collectDeclarations(files []sourceFile, catalog *target.Catalog, warnings *[]diag.Warning) ([]*scriptDecl, []*globalDecl, error) {
	var scripts []*scriptDecl
	var globals []*globalDecl

	seen := make(map[string]declaration)

	limits := catalog.Limits()

	for fi := range files {
		file := &files[fi]
		for ei := range file.forest {
			expr := &file.forest[ei]
			if expr.IsAtom() {
				return nil, nil, diag.Errorf(diag.Syntax, expr.File, expr.Line, expr.Column,
					"expected a '(global ...)' or '(script ...)' block, got '%s'", expr.Literal)
			}

			head := &expr.Children[0]
			if !head.IsAtom() {
				return nil, nil, diag.Errorf(diag.Syntax, head.File, head.Line, head.Column,
					"expected 'global' or 'script', got a block instead")
			}

			switch lowercase(head.Literal) {
			case "global":
				g, err := collectGlobal(expr)
				if err != nil {
					return nil, nil, err
				}
				if err := checkName(g.name, expr, seen[g.name], limits); err != nil {
					return nil, nil, err
				}
				seen[g.name] = declaration{global: g}
				globals = append(globals, g)

			case "script":
				s, err := collectScript(expr, catalog, limits, warnings)
				if err != nil {
					return nil, nil, err
				}
				prior := seen[s.name]
				if prior.script != nil && !prior.paired {
					// The one permitted collision: a stub and the
					// static script that replaces it.
					if err := checkStubPair(prior.script, s, expr); err != nil {
						return nil, nil, err
					}
					survivor := s
					if s.scriptType == target.Stub {
						survivor = prior.script
					}
					seen[s.name] = declaration{script: survivor, paired: true}
				} else if err := checkName(s.name, expr, prior, limits); err != nil {
					return nil, nil, err
				} else {
					seen[s.name] = declaration{script: s}
				}
				scripts = append(scripts, s)

			default:
				return nil, nil, diag.Errorf(diag.Syntax, head.File, head.Line, head.Column,
					"expected 'global' or 'script', got '%s' instead", head.Literal)
			}
		}
	}

	// The script limit is checked after stub replacement; a replaced stub
	// does not occupy a script table slot.
	if len(globals) > limits.MaximumGlobals {
		over := globals[limits.MaximumGlobals]
		return nil, nil, diag.Errorf(diag.Declaration, over.expr.File, over.expr.Line, over.expr.Column,
			"maximum global limit of %d exceeded (%d globals defined)", limits.MaximumGlobals, len(globals))
	}

	return scripts, globals, nil
}

// checkName rejects names that are too long or already declared. The error
// for a duplicate points at the second occurrence and names the first.
func checkName(name string, expr *sexpr.Expression, prior declaration, limits target.Limits) error {
	if len(name) > limits.MaximumNameLength {
		return diag.Errorf(diag.Declaration, expr.File, expr.Line, expr.Column,
			"name '%s' exceeds %d characters in length", name, limits.MaximumNameLength)
	}
	switch {
	case prior.script != nil:
		first := prior.script.expr
		return diag.Errorf(diag.Declaration, expr.File, expr.Line, expr.Column,
			"'%s' is already declared as a script at %s:%d:%d", name, first.File, first.Line, first.Column)
	case prior.global != nil:
		first := prior.global.expr
		return diag.Errorf(diag.Declaration, expr.File, expr.Line, expr.Column,
			"'%s' is already declared as a global at %s:%d:%d", name, first.File, first.Line, first.Column)
	}
	return nil
}

// checkStubPair validates the stub/static replacement pair. Exactly one of
// the two must be a stub, the other static, with matching return types.
func checkStubPair(first, second *scriptDecl, at *sexpr.Expression) error {
	var stub, replacement *scriptDecl
	switch {
	case first.scriptType == target.Stub && second.scriptType != target.Stub:
		stub, replacement = first, second
	case second.scriptType == target.Stub && first.scriptType != target.Stub:
		stub, replacement = second, first
	default:
		firstAt := first.expr
		return diag.Errorf(diag.Declaration, at.File, at.Line, at.Column,
			"'%s' is already declared as a script at %s:%d:%d", second.name, firstAt.File, firstAt.Line, firstAt.Column)
	}

	if replacement.scriptType != target.Static {
		return diag.Errorf(diag.Declaration, at.File, at.Line, at.Column,
			"cannot replace stub script '%s' with a non-static script", stub.name)
	}
	if replacement.returnType != stub.returnType {
		return diag.Errorf(diag.Declaration, at.File, at.Line, at.Column,
			"cannot replace stub script '%s' returning '%s' with a static script returning '%s'",
			stub.name, stub.returnType, replacement.returnType)
	}
	return nil
}

// collectGlobal parses (global <type> <name> <expression>).
func collectGlobal(expr *sexpr.Expression) (*globalDecl, error) {
	children := expr.Children
	if len(children) < 4 {
		return nil, diag.Errorf(diag.Declaration, expr.File, expr.Line, expr.Column,
			"incomplete global definition, expected (global <type> <name> <expression>)")
	}
	if len(children) > 4 {
		extra := &children[4]
		return nil, diag.Errorf(diag.Declaration, extra.File, extra.Line, extra.Column,
			"extraneous token in global definition (note: globals do not have implicit begin blocks)")
	}

	typeToken := &children[1]
	if !typeToken.IsAtom() {
		return nil, diag.Errorf(diag.Declaration, typeToken.File, typeToken.Line, typeToken.Column,
			"expected global value type, got a block instead")
	}
	typeName := lowercase(typeToken.Literal)
	valueType, ok := target.ValueTypeFromString(typeName)
	if !ok {
		return nil, diag.Errorf(diag.Declaration, typeToken.File, typeToken.Line, typeToken.Column,
			"expected global value type, got '%s' instead", typeName)
	}
	if valueType == target.Passthrough {
		return nil, diag.Errorf(diag.Declaration, typeToken.File, typeToken.Line, typeToken.Column,
			"cannot define '%s' globals", typeName)
	}

	nameToken := &children[2]
	if !nameToken.IsAtom() {
		return nil, diag.Errorf(diag.Declaration, nameToken.File, nameToken.Line, nameToken.Column,
			"expected global name, got a block instead")
	}

	return &globalDecl{
		name:      lowercase(nameToken.Literal),
		valueType: valueType,
		init:      children[3:4],
		expr:      expr,
	}, nil
}

// collectScript parses (script <type> [<return type>] <name or (name params)>
// <expression(s)>).
func collectScript(expr *sexpr.Expression, catalog *target.Catalog, limits target.Limits, warnings *[]diag.Warning) (*scriptDecl, error) {
	children := expr.Children
	if len(children) < 2 {
		return nil, diag.Errorf(diag.Declaration, expr.File, expr.Line, expr.Column,
			"incomplete script definition, expected script type after 'script'")
	}

	typeToken := &children[1]
	if !typeToken.IsAtom() {
		return nil, diag.Errorf(diag.Declaration, typeToken.File, typeToken.Line, typeToken.Column,
			"expected script type, got a block instead")
	}
	typeName := lowercase(typeToken.Literal)
	scriptType, ok := target.ScriptTypeFromString(typeName)
	if !ok {
		return nil, diag.Errorf(diag.Declaration, typeToken.File, typeToken.Line, typeToken.Column,
			"expected script type, got '%s' instead", typeName)
	}

	// Body starts after (script <type> <name>) for void script types and
	// after (script <type> <return type> <name>) otherwise.
	typed := !scriptType.AlwaysReturnsVoid()
	bodyOffset := 3
	if typed {
		bodyOffset = 4
	}
	if len(children) < bodyOffset+1 {
		hint := ""
		if typed {
			hint = " <return type>"
		}
		return nil, diag.Errorf(diag.Declaration, expr.File, expr.Line, expr.Column,
			"incomplete script definition, expected (script %s%s <name> <expression(s)>)", typeName, hint)
	}

	returnType := target.Void
	if typed {
		returnToken := &children[2]
		if !returnToken.IsAtom() {
			return nil, diag.Errorf(diag.Declaration, returnToken.File, returnToken.Line, returnToken.Column,
				"expected script return value type, got a block instead")
		}
		returnName := lowercase(returnToken.Literal)
		returnType, ok = target.ValueTypeFromString(returnName)
		if !ok {
			return nil, diag.Errorf(diag.Declaration, returnToken.File, returnToken.Line, returnToken.Column,
				"expected script return value type, got '%s' instead", returnName)
		}
		if returnType == target.Passthrough {
			return nil, diag.Errorf(diag.Declaration, returnToken.File, returnToken.Line, returnToken.Column,
				"cannot define '%s' scripts", returnName)
		}
	}

	nameToken := &children[bodyOffset-1]
	var name string
	var parameters []scriptParameter
	if nameToken.IsAtom() {
		name = lowercase(nameToken.Literal)
	} else {
		// (name (<type> <param>)...) declares script parameters.
		var err error
		name, parameters, err = collectScriptParameters(nameToken, scriptType, catalog, limits, warnings)
		if err != nil {
			return nil, err
		}
	}

	if reservedScriptNames[name] {
		return nil, diag.Errorf(diag.Declaration, nameToken.File, nameToken.Line, nameToken.Column,
			"function '%s' cannot be overridden by a script", name)
	}

	return &scriptDecl{
		name:       name,
		scriptType: scriptType,
		returnType: returnType,
		parameters: parameters,
		body:       children[bodyOffset:],
		expr:       expr,
	}, nil
}

// collectScriptParameters parses the (name (<type> <param>)...) header form.
func collectScriptParameters(nameToken *sexpr.Expression, scriptType target.ScriptType, catalog *target.Catalog, limits target.Limits, warnings *[]diag.Warning) (string, []scriptParameter, error) {
	if limits.MaximumScriptParameters == 0 {
		return "", nil, diag.Errorf(diag.Declaration, nameToken.File, nameToken.Line, nameToken.Column,
			"script parameters are not supported on %s", catalog.Target())
	}
	if scriptType != target.Static && scriptType != target.Stub {
		return "", nil, diag.Errorf(diag.Declaration, nameToken.File, nameToken.Line, nameToken.Column,
			"script parameters can only be used in static or stub scripts")
	}

	inner := &nameToken.Children[0]
	if !inner.IsAtom() {
		return "", nil, diag.Errorf(diag.Declaration, inner.File, inner.Line, inner.Column,
			"expected script name, got a block instead")
	}
	name := lowercase(inner.Literal)

	parameterExprs := nameToken.Children[1:]
	if len(parameterExprs) > limits.MaximumScriptParameters {
		return "", nil, diag.Errorf(diag.Declaration, nameToken.File, nameToken.Line, nameToken.Column,
			"only %d script parameter(s) are supported on %s", limits.MaximumScriptParameters, catalog.Target())
	}

	var parameters []scriptParameter
	for pi := range parameterExprs {
		p := &parameterExprs[pi]
		if p.IsAtom() || len(p.Children) != 2 || !p.Children[0].IsAtom() || !p.Children[1].IsAtom() {
			return "", nil, diag.Errorf(diag.Declaration, p.File, p.Line, p.Column,
				"script parameters should be in (<type> <name>) format")
		}
		typeName := lowercase(p.Children[0].Literal)
		parameterType, ok := target.ValueTypeFromString(typeName)
		if !ok {
			return "", nil, diag.Errorf(diag.Declaration, p.Children[0].File, p.Children[0].Line, p.Children[0].Column,
				"expected parameter type, got '%s'", p.Children[0].Literal)
		}
		parameterName := lowercase(p.Children[1].Literal)

		for _, existing := range parameters {
			if existing.name == parameterName {
				return "", nil, diag.Errorf(diag.Declaration, p.File, p.Line, p.Column,
					"duplicate script parameter '%s'", parameterName)
			}
		}
		if _, ok := catalog.Global(parameterName); ok {
			*warnings = append(*warnings, diag.Warningf(p.File, p.Line, p.Column,
				"script parameter '%s' shadows a global of the same name", parameterName))
		}

		parameters = append(parameters, scriptParameter{
			name:      parameterName,
			valueType: parameterType,
			file:      p.Children[1].File,
			line:      p.Children[1].Line,
			column:    p.Children[1].Column,
		})
	}

	return name, parameters, nil
}
