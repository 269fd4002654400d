package hook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/calder/hookline/internal/subprocess"
)

// YAMLSyntaxHook parses every staged YAML file and fails on the first
// document that does not parse. The working tree matches the index while
// hooks run (unstaged changes are stashed), so files are read directly.
type YAMLSyntaxHook struct {
	Base
}

// NewYAMLSyntaxHook creates the yaml-syntax builtin.
func NewYAMLSyntaxHook(settings Settings, exec *subprocess.Executor) Unit {
	return &YAMLSyntaxHook{Base: NewBase("yaml-syntax", settings, exec)}
}

// WouldRun reports whether any staged file looks like YAML.
func (h *YAMLSyntaxHook) WouldRun() bool {
	if !h.Base.WouldRun() {
		return false
	}
	files, err := stagedFiles(context.Background(), h.exec, ".yml", ".yaml")
	if err != nil {
		return true
	}
	return len(files) > 0
}

// Run parses each staged YAML file.
func (h *YAMLSyntaxHook) Run(ctx context.Context) (Status, string, error) {
	files, err := stagedFiles(ctx, h.exec, ".yml", ".yaml")
	if err != nil {
		return StatusFail, "", err
	}

	var problems []string
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return StatusInterrupt, "", err
		}
		data, err := os.ReadFile(filepath.Join(h.exec.Dir, name))
		if err != nil {
			return StatusFail, "", fmt.Errorf("read %s: %w", name, err)
		}
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", name, err))
		}
	}

	if len(problems) > 0 {
		return h.failOrWarn(), strings.Join(problems, "\n"), nil
	}
	return StatusPass, "", nil
}
