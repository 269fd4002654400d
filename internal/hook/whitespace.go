package hook

import (
	"context"
	"strings"

	"github.com/calder/hookline/internal/subprocess"
)

// WhitespaceHook fails when staged changes introduce trailing whitespace
// or stray conflict markers, using git's own --check machinery.
type WhitespaceHook struct {
	Base
}

// NewWhitespaceHook creates the trailing-whitespace builtin.
func NewWhitespaceHook(settings Settings, exec *subprocess.Executor) Unit {
	return &WhitespaceHook{Base: NewBase("trailing-whitespace", settings, exec)}
}

// Run executes `git diff --check --cached`.
func (h *WhitespaceHook) Run(ctx context.Context) (Status, string, error) {
	res, err := h.Spawn(ctx, []string{"git", "diff", "--check", "--cached"})
	if err != nil {
		return StatusFail, "", err
	}
	if res.Success() {
		return StatusPass, "", nil
	}
	return h.failOrWarn(), strings.TrimSpace(string(res.Stdout)), nil
}
