package hook

import (
	"context"
	"strings"

	"github.com/calder/hookline/internal/subprocess"
)

// VetHook runs `go vet` across the module and fails on any reported
// diagnostic.
type VetHook struct {
	Base
}

// NewVetHook creates the go-vet builtin.
func NewVetHook(settings Settings, exec *subprocess.Executor) Unit {
	return &VetHook{Base: NewBase("go-vet", settings, exec)}
}

// Run executes `go vet ./...` and maps its exit status to a hook status.
func (h *VetHook) Run(ctx context.Context) (Status, string, error) {
	res, err := h.Spawn(ctx, []string{"go", "vet", "./..."})
	if err != nil {
		return StatusFail, "", err
	}
	if res.Success() {
		return StatusPass, "", nil
	}

	// go vet reports findings on stderr.
	output := strings.TrimSpace(string(res.Stderr))
	if output == "" {
		output = strings.TrimSpace(string(res.Stdout))
	}
	return h.failOrWarn(), output, nil
}
