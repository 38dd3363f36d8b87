// Package hsc provides the compilation pipeline for HSC scripts (.hsc
// files). It transforms source code into the engine's flat node arena
// through four phases:
// 1. Lexer: tokenization
// 2. Reader: S-expression forest construction
// 3. Declaration collection: scripts and globals, forward references allowed
// 4. Resolution: type checking and node-graph emission
//
// This package provides a unified API:
//   - Compile: compiles source strings for one target
//   - CompileFiles: compiles files from disk (handles Windows-1252 encoding)
//   - CompileDirectory: loads and compiles all .hsc files from a directory
//   - CompileFS: like CompileDirectory but over any fs.FS
package hsc

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/SnowyMouse/riat/pkg/hsc/compiler"
	"github.com/SnowyMouse/riat/pkg/hsc/encoding"
	"github.com/SnowyMouse/riat/pkg/hsc/loader"
	"github.com/SnowyMouse/riat/pkg/hsc/target"
)

// Source is one named source text to compile.
type Source struct {
	Name string
	Text string
}

// Compile compiles UTF-8 source texts for the given target. Sources are
// compiled together: scripts in one source may call scripts in another.
func Compile(t target.CompileTarget, sources ...Source) (*compiler.Output, error) {
	c, err := compiler.New(t)
	if err != nil {
		return nil, err
	}
	for _, s := range sources {
		if err := c.Load(s.Name, s.Text); err != nil {
			return nil, err
		}
	}
	return c.Compile()
}

// CompileFiles reads, decodes and compiles the given files in order.
func CompileFiles(t target.CompileTarget, e encoding.Encoding, paths ...string) (*compiler.Output, error) {
	c, err := compiler.New(t)
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		text, err := encoding.Decode(raw, e)
		if err != nil {
			return nil, fmt.Errorf("failed to convert encoding for %s: %w", path, err)
		}
		if err := c.Load(filepath.Base(path), text); err != nil {
			return nil, err
		}
	}
	return c.Compile()
}

// CompileDirectory loads every .hsc file directly inside dir, sorted by
// name, and compiles them together.
func CompileDirectory(t target.CompileTarget, e encoding.Encoding, dir string) (*compiler.Output, error) {
	scripts, err := loader.NewLoader(e).LoadDirectory(dir)
	if err != nil {
		return nil, err
	}
	return compileScripts(t, scripts)
}

// CompileFS loads every .hsc file in fsys, sorted by path, and compiles
// them together. This works with embed.FS as well as os.DirFS.
func CompileFS(t target.CompileTarget, e encoding.Encoding, fsys fs.FS) (*compiler.Output, error) {
	scripts, err := loader.NewLoader(e).LoadFS(fsys)
	if err != nil {
		return nil, err
	}
	return compileScripts(t, scripts)
}

func compileScripts(t target.CompileTarget, scripts []loader.Script) (*compiler.Output, error) {
	c, err := compiler.New(t)
	if err != nil {
		return nil, err
	}
	for _, s := range scripts {
		if err := c.Load(s.FileName, s.Content); err != nil {
			return nil, err
		}
	}
	return c.Compile()
}
