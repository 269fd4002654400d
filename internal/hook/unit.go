package hook

import "context"

// Unit is one configured check bound to a lifecycle event. Units are
// constructed by the loader for the duration of a single run, are never
// mutated by the runner, and are discarded when the run ends.
type Unit interface {
	// Name returns the unique identifier for this hook.
	Name() string

	// Enabled reports whether configuration enables this hook.
	Enabled() bool

	// SkipRequested reports whether the user asked to skip this hook
	// (via the HOOKLINE_SKIP / SKIP environment variables).
	SkipRequested() bool

	// Required reports whether this hook must run even when skipped.
	Required() bool

	// WouldRun reports whether the hook has work to do, ignoring any
	// skip request. The runner uses it to decide whether skipping the
	// hook is worth mentioning.
	WouldRun() bool

	// Run executes the check and returns its status plus output for the
	// result sink. A returned error is a fault: the runner downgrades it
	// to a fail status (or interrupt, for cancellation) and the status
	// and output values are ignored.
	Run(ctx context.Context) (Status, string, error)
}

// Settings carries the per-hook configuration resolved by the loader.
type Settings struct {
	// Enabled gates whether the hook participates in the run.
	Enabled bool

	// Required makes a skip request ineffective: the hook runs anyway.
	Required bool

	// WarnOnly downgrades a failing check to a warning.
	WarnOnly bool

	// Skipped records that the user requested a skip for this run.
	Skipped bool

	// Command is the argument vector for user-defined command hooks.
	Command []string
}
