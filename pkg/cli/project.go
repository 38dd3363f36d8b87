package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
)

// ProjectFileName is the name of the optional per-project settings file.
const ProjectFileName = "riat.toml"

// Project holds settings read from a riat.toml file next to the scripts.
// All fields are optional; empty fields fall back to the defaults.
type Project struct {
	Target   string `toml:"target"`
	Encoding string `toml:"encoding"`
	LogLevel string `toml:"log-level"`
}

// LoadProject looks for a riat.toml beside the given script path and parses
// it. A missing file is not an error; (nil, nil) is returned.
func LoadProject(scriptPath string) (*Project, error) {
	if scriptPath == "" {
		return nil, nil
	}

	dir := scriptPath
	if strings.EqualFold(filepath.Ext(scriptPath), ".hsc") {
		dir = filepath.Dir(scriptPath)
	}

	path := filepath.Join(dir, ProjectFileName)
	buff, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read project file at %s: %w", path, err)
	}

	project := &Project{}
	if err := toml.Unmarshal(buff, project); err != nil {
		return nil, fmt.Errorf("error parsing project file at %s: %w", path, err)
	}
	return project, nil
}
