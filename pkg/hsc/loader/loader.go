// Package loader finds and reads HSC script files from a directory or an
// fs.FS, decoding them to UTF-8 before they reach the compiler.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/SnowyMouse/riat/pkg/hsc/encoding"
)

// Script is one loaded script file.
type Script struct {
	FileName string // base name of the file
	Content  string // UTF-8 source text
	Size     int64  // size in bytes before decoding
}

// Loader reads script files with a fixed source encoding.
type Loader struct {
	encoding encoding.Encoding
}

// NewLoader creates a Loader that decodes files from the given encoding.
func NewLoader(e encoding.Encoding) *Loader {
	return &Loader{encoding: e}
}

// LoadDirectory loads every .hsc file directly inside dir, matching the
// extension case-insensitively. Files are returned sorted by name so a
// directory always compiles in the same order.
func (l *Loader) LoadDirectory(dir string) ([]Script, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read script directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".hsc") {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no .hsc files found in %s", dir)
	}
	sort.Strings(names)

	var scripts []Script
	for _, name := range names {
		script, err := l.loadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to load script %s: %w", name, err)
		}
		scripts = append(scripts, *script)
	}
	return scripts, nil
}

// LoadFS loads every .hsc file in fsys, walking subdirectories. Files are
// returned sorted by path.
func (l *Loader) LoadFS(fsys fs.FS) ([]Script, error) {
	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".hsc") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find script files: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .hsc files found")
	}
	sort.Strings(paths)

	var scripts []Script
	for _, path := range paths {
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to load script %s: %w", path, err)
		}
		content, err := encoding.Decode(raw, l.encoding)
		if err != nil {
			return nil, fmt.Errorf("failed to decode script %s: %w", path, err)
		}
		scripts = append(scripts, Script{
			FileName: filepath.Base(path),
			Content:  content,
			Size:     int64(len(raw)),
		})
	}
	return scripts, nil
}

// loadFile reads and decodes a single script file.
func (l *Loader) loadFile(path string) (*Script, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	content, err := encoding.Decode(raw, l.encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to convert encoding: %w", err)
	}
	return &Script{
		FileName: filepath.Base(path),
		Content:  content,
		Size:     info.Size(),
	}, nil
}
