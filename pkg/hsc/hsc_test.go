package hsc

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/SnowyMouse/riat/pkg/hsc/encoding"
	"github.com/SnowyMouse/riat/pkg/hsc/target"
)

func TestCompileCrossSourceCalls(t *testing.T) {
	output, err := Compile(target.HaloCustomEdition,
		Source{Name: "main.hsc", Text: `(script startup main (mission_start))`},
		Source{Name: "missions.hsc", Text: `(script static void mission_start (sleep 30))`},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Scripts()) != 2 {
		t.Fatalf("script count wrong: %d", len(output.Scripts()))
	}
	if files := output.Files(); len(files) != 2 || files[0] != "main.hsc" || files[1] != "missions.hsc" {
		t.Fatalf("files wrong: %v", files)
	}
}

func TestCompileFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.hsc")
	raw := []byte{'(', 'p', 'r', 'i', 'n', 't', ' ', '"', 0xE9, '"', ')'}
	source := append([]byte("(script startup main "), raw...)
	source = append(source, ')')
	if err := os.WriteFile(path, source, 0o644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	output, err := CompileFiles(target.HaloCustomEdition, encoding.Windows1252, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Scripts()) != 1 || output.Scripts()[0].Name != "main" {
		t.Fatalf("scripts wrong: %+v", output.Scripts())
	}
}

func TestCompileDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"10_globals.hsc": `(global short counter 0)`,
		"20_main.hsc":    `(script startup main (set counter 1))`,
	}
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	output, err := CompileDirectory(target.HaloCustomEdition, encoding.UTF8, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Globals()) != 1 || len(output.Scripts()) != 1 {
		t.Fatalf("output wrong: %d globals, %d scripts", len(output.Globals()), len(output.Scripts()))
	}
}

func TestCompileFS(t *testing.T) {
	fsys := fstest.MapFS{
		"scripts/mission.hsc": &fstest.MapFile{Data: []byte(`(script startup main (game_save))`)},
	}
	output, err := CompileFS(target.HaloCustomEdition, encoding.UTF8, fsys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Scripts()) != 1 {
		t.Fatalf("script count wrong: %d", len(output.Scripts()))
	}
}

func TestCompileReportsErrors(t *testing.T) {
	_, err := Compile(target.HaloCustomEdition,
		Source{Name: "bad.hsc", Text: `(script startup main (warp))`})
	if err == nil {
		t.Fatalf("expected error for undefined function")
	}
}
