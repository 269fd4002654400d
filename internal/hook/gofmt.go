package hook

import (
	"context"
	"strings"

	"github.com/calder/hookline/internal/subprocess"
)

// FmtHook checks that staged Go files are gofmt-formatted. Formatting
// drift is reported as a warning rather than a blocking failure.
type FmtHook struct {
	Base
}

// NewFmtHook creates the gofmt builtin.
func NewFmtHook(settings Settings, exec *subprocess.Executor) Unit {
	return &FmtHook{Base: NewBase("gofmt", settings, exec)}
}

// WouldRun reports whether any staged file is a Go source file.
func (h *FmtHook) WouldRun() bool {
	if !h.Base.WouldRun() {
		return false
	}
	files, err := stagedFiles(context.Background(), h.exec, ".go")
	if err != nil {
		// Let Run surface the fault instead of hiding the hook.
		return true
	}
	return len(files) > 0
}

// Run lists staged Go files that deviate from gofmt output.
func (h *FmtHook) Run(ctx context.Context) (Status, string, error) {
	files, err := stagedFiles(ctx, h.exec, ".go")
	if err != nil {
		return StatusFail, "", err
	}
	if len(files) == 0 {
		return StatusPass, "", nil
	}

	argv := append([]string{"gofmt", "-l"}, files...)
	res, err := h.Spawn(ctx, argv)
	if err != nil {
		return StatusFail, "", err
	}
	if !res.Success() {
		return StatusFail, strings.TrimSpace(string(res.Stderr)), nil
	}

	unformatted := strings.TrimSpace(string(res.Stdout))
	if unformatted == "" {
		return StatusPass, "", nil
	}
	return StatusWarn, "files need gofmt:\n" + unformatted, nil
}
