// Package app wires the command line, logger and compiler together into
// the riatc application.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/SnowyMouse/riat/pkg/cli"
	"github.com/SnowyMouse/riat/pkg/hsc"
	"github.com/SnowyMouse/riat/pkg/hsc/compiler"
	"github.com/SnowyMouse/riat/pkg/logger"
)

// Application manages the main logic of the riatc compiler.
type Application struct {
	config *cli.Config
	log    *slog.Logger
}

// New creates an Application.
func New() *Application {
	return &Application{}
}

// Run parses arguments, compiles the scripts and reports the result.
func (app *Application) Run(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}
	app.config = config

	if app.config.ShowHelp {
		fmt.Print(cli.Usage())
		return nil
	}
	if app.config.ScriptPath == "" {
		fmt.Print(cli.Usage())
		return fmt.Errorf("no script path given")
	}

	if err := logger.InitLogger(app.config.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.log = logger.GetLogger()

	app.log.Info("Compiling scripts",
		"path", app.config.ScriptPath,
		"target", app.config.Target.String(),
		"encoding", app.config.Encoding.String())

	output, err := app.compile()
	if err != nil {
		return err
	}

	for _, w := range output.Warnings() {
		fmt.Fprintln(os.Stderr, w)
	}

	app.log.Info("Compiled successfully",
		"files", len(output.Files()),
		"scripts", len(output.Scripts()),
		"globals", len(output.Globals()),
		"nodes", len(output.Nodes()),
		"warnings", len(output.Warnings()))
	return nil
}

// compile compiles either a single .hsc file or a directory of them.
func (app *Application) compile() (*compiler.Output, error) {
	if strings.EqualFold(filepath.Ext(app.config.ScriptPath), ".hsc") {
		return hsc.CompileFiles(app.config.Target, app.config.Encoding, app.config.ScriptPath)
	}
	return hsc.CompileDirectory(app.config.Target, app.config.Encoding, app.config.ScriptPath)
}
