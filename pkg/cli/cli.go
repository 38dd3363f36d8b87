// Package cli parses command line arguments for the riatc compiler.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/SnowyMouse/riat/pkg/hsc/encoding"
	"github.com/SnowyMouse/riat/pkg/hsc/target"
)

// Config holds the settings parsed from the command line, environment and
// project file.
type Config struct {
	ScriptPath string               // directory of .hsc files, or one .hsc file
	Target     target.CompileTarget // compile target
	Encoding   encoding.Encoding    // source file encoding
	LogLevel   string               // debug, info, warn, error
	ShowHelp   bool                 // help flag
}

// ParseArgs parses command line arguments into a Config. Flags win over
// environment variables (RIAT_TARGET, RIAT_ENCODING, RIAT_LOG_LEVEL), which
// win over a riat.toml project file next to the scripts, which win over
// defaults.
func ParseArgs(args []string) (*Config, error) {
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("riatc", flag.ContinueOnError)

	config := &Config{}

	var targetName, encodingName string
	fs.StringVar(&targetName, "target", "", "compile target (mcc-cea, xbox, gbx-retail, gbx-demo, gbx-custom)")
	fs.StringVar(&targetName, "t", "", "compile target (shorthand)")
	fs.StringVar(&encodingName, "encoding", "", "source encoding (utf-8, windows-1252)")
	fs.StringVar(&encodingName, "e", "", "source encoding (shorthand)")
	fs.StringVar(&config.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogLevel, "l", "", "log level (shorthand)")
	fs.BoolVar(&config.ShowHelp, "help", false, "show help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show help (shorthand)")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	// Environment variables fill in anything the flags left empty.
	if targetName == "" {
		targetName = os.Getenv("RIAT_TARGET")
	}
	if encodingName == "" {
		encodingName = os.Getenv("RIAT_ENCODING")
	}
	if config.LogLevel == "" {
		config.LogLevel = strings.ToLower(os.Getenv("RIAT_LOG_LEVEL"))
	}

	if fs.NArg() > 0 {
		config.ScriptPath = fs.Arg(0)
	}

	// The project file is the last word before the defaults.
	if project, err := LoadProject(config.ScriptPath); err != nil {
		return nil, err
	} else if project != nil {
		if targetName == "" {
			targetName = project.Target
		}
		if encodingName == "" {
			encodingName = project.Encoding
		}
		if config.LogLevel == "" {
			config.LogLevel = project.LogLevel
		}
	}

	if targetName == "" {
		targetName = "gbx-custom"
	}
	if encodingName == "" {
		encodingName = "utf-8"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	var err error
	config.Target, err = target.CompileTargetFromString(targetName)
	if err != nil {
		return nil, err
	}
	config.Encoding, err = encoding.FromString(encodingName)
	if err != nil {
		return nil, err
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	return config, nil
}

// Usage returns the help text.
func Usage() string {
	return `usage: riatc [flags] <script directory or .hsc file>

flags:
  -t, -target <target>      compile target: mcc-cea, xbox, gbx-retail,
                            gbx-demo, gbx-custom (default gbx-custom)
  -e, -encoding <encoding>  source encoding: utf-8, windows-1252
                            (default utf-8)
  -l, -log-level <level>    log level: debug, info, warn, error
                            (default info)
  -h, -help                 show this help

Defaults may also be set with the RIAT_TARGET, RIAT_ENCODING and
RIAT_LOG_LEVEL environment variables, or a riat.toml file next to the
scripts.
`
}

// reorderArgs moves flags in front of positional arguments so the flag
// package sees all of them.
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) > 0 && arg[0] == '-' {
			flags = append(flags, arg)
			// A flag's value may follow as a separate argument.
			if !strings.Contains(arg, "=") && i+1 < len(args) && !isBoolFlag(arg) {
				if next := args[i+1]; len(next) > 0 && next[0] != '-' {
					flags = append(flags, next)
					i++
				}
			}
		} else {
			positional = append(positional, arg)
		}
	}

	return append(flags, positional...)
}

// isBoolFlag reports whether the flag never takes a value.
func isBoolFlag(arg string) bool {
	name := strings.TrimLeft(arg, "-")
	return name == "h" || name == "help"
}
