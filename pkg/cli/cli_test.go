package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SnowyMouse/riat/pkg/hsc/encoding"
	"github.com/SnowyMouse/riat/pkg/hsc/target"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("RIAT_TARGET", "")
	t.Setenv("RIAT_ENCODING", "")
	t.Setenv("RIAT_LOG_LEVEL", "")
}

func TestParseArgsDefaults(t *testing.T) {
	clearEnv(t)

	config, err := ParseArgs([]string{"scripts"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.ScriptPath != "scripts" {
		t.Fatalf("script path wrong: %q", config.ScriptPath)
	}
	if config.Target != target.HaloCustomEdition {
		t.Fatalf("default target wrong: %v", config.Target)
	}
	if config.Encoding != encoding.UTF8 {
		t.Fatalf("default encoding wrong: %v", config.Encoding)
	}
	if config.LogLevel != "info" {
		t.Fatalf("default log level wrong: %q", config.LogLevel)
	}
}

func TestParseArgsFlags(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		args     []string
		target   target.CompileTarget
		encoding encoding.Encoding
		logLevel string
	}{
		{[]string{"-target", "xbox", "scripts"}, target.HaloCEXboxNTSC, encoding.UTF8, "info"},
		{[]string{"-t", "mcc-cea", "-e", "windows-1252", "scripts"}, target.HaloCEA, encoding.Windows1252, "info"},
		{[]string{"-l", "debug", "scripts"}, target.HaloCustomEdition, encoding.UTF8, "debug"},
		// Flags after the positional argument still count.
		{[]string{"scripts", "-t", "gbx-demo"}, target.HaloCEGBXDemo, encoding.UTF8, "info"},
		{[]string{"-target=gbx-retail", "scripts"}, target.HaloCEGBX, encoding.UTF8, "info"},
	}

	for i, tt := range tests {
		config, err := ParseArgs(tt.args)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if config.ScriptPath != "scripts" {
			t.Fatalf("tests[%d] - script path wrong: %q", i, config.ScriptPath)
		}
		if config.Target != tt.target {
			t.Fatalf("tests[%d] - target wrong. expected=%v, got=%v", i, tt.target, config.Target)
		}
		if config.Encoding != tt.encoding {
			t.Fatalf("tests[%d] - encoding wrong. expected=%v, got=%v", i, tt.encoding, config.Encoding)
		}
		if config.LogLevel != tt.logLevel {
			t.Fatalf("tests[%d] - log level wrong. expected=%q, got=%q", i, tt.logLevel, config.LogLevel)
		}
	}
}

func TestParseArgsEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("RIAT_TARGET", "xbox")
	t.Setenv("RIAT_LOG_LEVEL", "WARN")

	config, err := ParseArgs([]string{"scripts"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Target != target.HaloCEXboxNTSC {
		t.Fatalf("environment target wrong: %v", config.Target)
	}
	if config.LogLevel != "warn" {
		t.Fatalf("environment log level should be lowered: %q", config.LogLevel)
	}

	// A flag beats the environment.
	config, err = ParseArgs([]string{"-t", "gbx-custom", "scripts"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Target != target.HaloCustomEdition {
		t.Fatalf("flag should win over environment: %v", config.Target)
	}
}

func TestParseArgsProjectFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	project := []byte("target = \"mcc-cea\"\nencoding = \"windows-1252\"\nlog-level = \"debug\"\n")
	if err := os.WriteFile(filepath.Join(dir, ProjectFileName), project, 0o644); err != nil {
		t.Fatalf("failed to write project file: %v", err)
	}

	config, err := ParseArgs([]string{dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Target != target.HaloCEA {
		t.Fatalf("project target wrong: %v", config.Target)
	}
	if config.Encoding != encoding.Windows1252 {
		t.Fatalf("project encoding wrong: %v", config.Encoding)
	}
	if config.LogLevel != "debug" {
		t.Fatalf("project log level wrong: %q", config.LogLevel)
	}

	// The environment beats the project file.
	t.Setenv("RIAT_TARGET", "gbx-retail")
	config, err = ParseArgs([]string{dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Target != target.HaloCEGBX {
		t.Fatalf("environment should win over project file: %v", config.Target)
	}
}

func TestParseArgsProjectFileNextToScript(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	project := []byte("target = \"gbx-demo\"\n")
	if err := os.WriteFile(filepath.Join(dir, ProjectFileName), project, 0o644); err != nil {
		t.Fatalf("failed to write project file: %v", err)
	}

	config, err := ParseArgs([]string{filepath.Join(dir, "mission.hsc")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Target != target.HaloCEGBXDemo {
		t.Fatalf("project file next to a script file not found: %v", config.Target)
	}
}

func TestParseArgsErrors(t *testing.T) {
	clearEnv(t)

	tests := [][]string{
		{"-t", "halo-3", "scripts"},
		{"-e", "latin-1", "scripts"},
		{"-l", "verbose", "scripts"},
	}
	for i, args := range tests {
		if _, err := ParseArgs(args); err == nil {
			t.Fatalf("tests[%d] - expected error for %v", i, args)
		}
	}
}

func TestParseArgsHelp(t *testing.T) {
	clearEnv(t)

	config, err := ParseArgs([]string{"-h"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !config.ShowHelp {
		t.Fatalf("help flag not set")
	}
}

func TestLoadProjectMissing(t *testing.T) {
	project, err := LoadProject(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project != nil {
		t.Fatalf("expected nil project for missing file, got %+v", project)
	}
}

func TestLoadProjectInvalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ProjectFileName), []byte("target = ["), 0o644); err != nil {
		t.Fatalf("failed to write project file: %v", err)
	}
	if _, err := LoadProject(dir); err == nil {
		t.Fatalf("expected error for malformed project file")
	}
}
