// Package compiler turns HSC source files into the flat node arena, script
// table and global table the engine runtime consumes. A Compiler accumulates
// source files with Load and compiles everything it has seen with Compile.
package compiler

import (
	"github.com/SnowyMouse/riat/pkg/hsc/diag"
	"github.com/SnowyMouse/riat/pkg/hsc/lexer"
	"github.com/SnowyMouse/riat/pkg/hsc/sexpr"
	"github.com/SnowyMouse/riat/pkg/hsc/target"
)

// Compiler compiles a batch of HSC files for one target. It is not safe for
// concurrent use; create one Compiler per compilation.
type Compiler struct {
	catalog *target.Catalog
	pending []sourceFile
}

// sourceFile is one loaded file's parsed expression forest.
type sourceFile struct {
	name   string
	forest []sexpr.Expression
}

// New creates a Compiler for the given target.
func New(t target.CompileTarget) (*Compiler, error) {
	catalog, err := target.NewCatalog(t)
	if err != nil {
		return nil, err
	}
	return &Compiler{catalog: catalog}, nil
}

// Target returns the compile target this compiler was created for.
func (c *Compiler) Target() target.CompileTarget {
	return c.catalog.Target()
}

// Load lexes and parses one file and queues its top-level blocks for the
// next Compile. The source must already be decoded to UTF-8. On error the
// file is not queued; previously loaded files are unaffected.
func (c *Compiler) Load(filename, source string) error {
	tokens, err := lexer.New(filename, source).Tokenize()
	if err != nil {
		return err
	}
	forest, err := sexpr.Build(tokens)
	if err != nil {
		return err
	}
	c.pending = append(c.pending, sourceFile{name: filename, forest: forest})
	return nil
}

// Compile compiles every loaded file into one Output. Compilation is
// fail-fast: the first error aborts and leaves the loaded files queued so
// the caller can fix sources and retry. On success the queue is cleared.
func (c *Compiler) Compile() (*Output, error) {
	var warnings []diag.Warning

	scripts, globals, err := collectDeclarations(c.pending, c.catalog, &warnings)
	if err != nil {
		return nil, err
	}

	r := &resolver{
		catalog:  c.catalog,
		scripts:  make(map[string]*scriptDecl, len(scripts)),
		globals:  make(map[string]*globalDecl, len(globals)),
		warnings: &warnings,
	}
	for _, s := range scripts {
		// A static replacement wins over the stub it replaces.
		if existing, ok := r.scripts[s.name]; ok && existing.scriptType == target.Stub {
			r.scripts[s.name] = s
			continue
		}
		if _, ok := r.scripts[s.name]; !ok {
			r.scripts[s.name] = s
		}
	}
	for _, g := range globals {
		r.globals[g.name] = g
	}

	for _, g := range globals {
		node, err := r.resolveBody(g.expr, g.valueType, g.init, nil)
		if err != nil {
			return nil, err
		}
		g.node = node
	}
	for _, s := range scripts {
		node, err := r.resolveBody(s.expr, s.returnType, s.body, s.parameters)
		if err != nil {
			return nil, err
		}
		s.node = node
	}

	for _, g := range globals {
		optimizeBegin(g.node)
	}
	for _, s := range scripts {
		optimizeBegin(s.node)
	}

	scripts = removeReplacedStubs(scripts, &warnings)

	// Replaced stubs never reach the script table, so the limit applies to
	// what is left.
	limits := c.catalog.Limits()
	if len(scripts) > limits.MaximumScripts {
		over := scripts[limits.MaximumScripts]
		return nil, diag.Errorf(diag.Declaration, over.expr.File, over.expr.Line, over.expr.Column,
			"maximum script limit of %d exceeded (%d scripts defined)", limits.MaximumScripts, len(scripts))
	}

	output := emit(c.catalog, scripts, globals, c.pending, warnings)

	c.pending = nil
	return output, nil
}
