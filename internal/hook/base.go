package hook

import (
	"context"

	"github.com/calder/hookline/internal/subprocess"
)

// Base provides the settings-backed parts of the Unit contract. Concrete
// hooks embed it and implement Run (and override WouldRun when they can
// tell up front that there is nothing to check).
type Base struct {
	name     string
	settings Settings
	exec     *subprocess.Executor
}

// NewBase creates the common hook state shared by all implementations.
func NewBase(name string, settings Settings, exec *subprocess.Executor) Base {
	if exec == nil {
		exec = &subprocess.Executor{}
	}
	return Base{name: name, settings: settings, exec: exec}
}

// Name returns the hook's unique identifier.
func (b *Base) Name() string { return b.name }

// Enabled reports whether configuration enables this hook.
func (b *Base) Enabled() bool { return b.settings.Enabled }

// SkipRequested reports whether the user asked to skip this hook.
func (b *Base) SkipRequested() bool { return b.settings.Skipped }

// Required reports whether this hook runs even when skipped.
func (b *Base) Required() bool { return b.settings.Required }

// WouldRun reports whether the hook would do work, ignoring skip
// requests. The default says yes whenever the hook is enabled.
func (b *Base) WouldRun() bool { return b.settings.Enabled }

// WarnOnly reports whether failures should be downgraded to warnings.
func (b *Base) WarnOnly() bool { return b.settings.WarnOnly }

// Settings returns the resolved configuration for this hook.
func (b *Base) Settings() Settings { return b.settings }

// Spawn invokes an external tool through the subprocess executor.
func (b *Base) Spawn(ctx context.Context, argv []string) (*subprocess.Result, error) {
	return b.exec.Spawn(ctx, argv)
}

// failOrWarn maps a failing check to the hook's configured severity.
func (b *Base) failOrWarn() Status {
	if b.settings.WarnOnly {
		return StatusWarn
	}
	return StatusFail
}
