package hook

import (
	"context"
	"errors"
	"strings"

	"github.com/calder/hookline/internal/subprocess"
)

// CommandHook runs a user-configured argument vector and maps its exit
// status to a hook status. It treats the tool's output as opaque text;
// hookline never parses tool-specific formats.
type CommandHook struct {
	Base
}

// NewCommandHook creates a hook around the argv in settings.Command.
// The name comes from the config key that declared it.
func NewCommandHook(name string, settings Settings, exec *subprocess.Executor) Unit {
	return &CommandHook{Base: NewBase(name, settings, exec)}
}

// Run spawns the configured command and interprets exit zero as pass.
func (h *CommandHook) Run(ctx context.Context) (Status, string, error) {
	argv := h.Settings().Command
	if len(argv) == 0 {
		return StatusFail, "", errors.New("command hook has no command configured")
	}

	res, err := h.Spawn(ctx, argv)
	if err != nil {
		return StatusFail, "", err
	}
	if res.Success() {
		return StatusPass, "", nil
	}

	output := strings.TrimSpace(string(res.Stdout))
	if errText := strings.TrimSpace(string(res.Stderr)); errText != "" {
		if output != "" {
			output += "\n"
		}
		output += errText
	}
	return h.failOrWarn(), output, nil
}
