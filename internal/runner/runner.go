// Package runner owns the run-loop that sequences hooks for one
// lifecycle event. It brackets the run with environment setup and
// cleanup under full interrupt isolation, executes each hook with
// interrupts re-enabled just for that call, aggregates statuses, and
// reports exactly one terminal verdict through the result sink.
package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/calder/hookline/internal/hook"
	"github.com/calder/hookline/internal/interrupt"
)

// Loader produces the ordered hook units for a run.
type Loader interface {
	LoadHooks() ([]hook.Unit, error)
}

// Environment brackets the repository state for a run. Setup typically
// stashes unstaged changes so hooks see what will actually be committed;
// Cleanup restores them. Both may fault.
type Environment interface {
	SetupEnvironment() error
	CleanupEnvironment() error
}

// DebugLogger is the optional diagnostic logger consumed by the runner.
type DebugLogger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// interruptAdvice is reported as the output of an interrupted hook.
const interruptAdvice = "Interrupt received. Remaining hooks were not run. " +
	"Verify the repository is in the state you expect; any stash created " +
	"for this run has been restored."

// Runner orchestrates a single run across all eligible hook units.
type Runner struct {
	loader    Loader
	env       Environment
	sink      Sink
	isolation *interrupt.Controller
	log       DebugLogger
}

// New creates a Runner. The loader must be non-nil; env, sink and log
// may be nil, in which case they default to no-ops.
func New(loader Loader, env Environment, sink Sink, log DebugLogger) *Runner {
	if loader == nil {
		panic("hook loader cannot be nil")
	}
	if env == nil {
		env = nopEnvironment{}
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Runner{
		loader:    loader,
		env:       env,
		sink:      sink,
		isolation: interrupt.NewController(),
		log:       log,
	}
}

// Run executes one end-to-end run and reports whether it should be
// treated as successful for exit-code purposes: true unless any hook
// failed or the run was interrupted. Warnings alone do not fail a run.
//
// The returned error carries only the fault classes that escape the
// runner: a load error, a setup fault, or a cleanup fault. Hook faults
// and interruptions are converted into statuses observed through the
// sink and never propagate.
func (r *Runner) Run(ctx context.Context) (bool, error) {
	var ok bool
	err := r.isolation.Isolate(func() (err error) {
		units, loadErr := r.loader.LoadHooks()
		if loadErr != nil {
			var le *LoadError
			if errors.As(loadErr, &le) {
				return le
			}
			return &LoadError{
				Hint: "Check your .hookline.yaml; run 'hookline list' to see available hooks.",
				Err:  loadErr,
			}
		}

		// No rollback is attempted when setup itself fails: a setup
		// fault is taken to mean no repository mutation happened.
		if setupErr := r.env.SetupEnvironment(); setupErr != nil {
			return fmt.Errorf("environment setup failed: %w", setupErr)
		}

		// Cleanup runs exactly once whenever setup returned normally.
		// Its fault is the one class not swallowed, but it never
		// preempts the attempt itself.
		defer func() {
			if cleanupErr := r.env.CleanupEnvironment(); cleanupErr != nil && err == nil {
				err = fmt.Errorf("environment cleanup failed: %w", cleanupErr)
			}
		}()

		ok = r.runAll(ctx, units)
		return nil
	})

	return ok && err == nil, err
}

// runAll drives the run-loop and reports the terminal verdict. The
// returned bool is the exit-code verdict for the run.
func (r *Runner) runAll(ctx context.Context, units []hook.Unit) bool {
	anyEnabled := false
	for _, u := range units {
		if u.Enabled() {
			anyEnabled = true
			break
		}
	}
	if !anyEnabled {
		r.sink.NothingToRun()
		return true
	}

	r.sink.RunStarted(units)

	var failed, warned, interrupted bool
	for _, u := range units {
		if r.shouldSkip(u) {
			continue
		}

		status, _ := r.runOne(ctx, u)
		switch status {
		case hook.StatusInterrupt:
			interrupted = true
		case hook.StatusFail:
			failed = true
		case hook.StatusWarn:
			warned = true
		}
		if interrupted {
			// Remaining hooks are neither run nor reported.
			break
		}
	}

	switch {
	case interrupted:
		r.sink.RunInterrupted()
	case failed:
		r.sink.RunFailed()
	case warned:
		r.sink.RunWarned()
	default:
		r.sink.RunSucceeded()
	}

	return !failed && !interrupted
}

// shouldSkip applies the eligibility rules for one unit. Disabled units
// are omitted silently. A skip request omits the unit unless it is
// required, in which case the skip is overridden and announced.
func (r *Runner) shouldSkip(u hook.Unit) bool {
	if !u.Enabled() {
		return true
	}
	if u.SkipRequested() {
		if u.Required() {
			r.sink.RequiredHookNotSkipped(u.Name())
			return false
		}
		// Only worth mentioning when the hook had work to do.
		if u.WouldRun() {
			r.sink.HookSkipped(u.Name())
		}
		return true
	}
	return false
}

// runOne executes a single hook inside a deferred-isolation scope so a
// user interrupt reaches the hook (and its subprocess) as cancellation.
// No fault escapes this boundary: panics and errors become a fail
// status, interruptions become an interrupt status, and HookEnded is
// notified on every path.
func (r *Runner) runOne(ctx context.Context, u hook.Unit) (hook.Status, string) {
	r.sink.HookStarted(u.Name())

	var status hook.Status
	var output string
	err := r.isolation.Deliverable(ctx, func(ctx context.Context) (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("panic: %v\n%s", p, debug.Stack())
			}
		}()
		status, output, err = u.Run(ctx)
		return err
	})

	switch {
	case errors.Is(err, interrupt.ErrInterrupted) || errors.Is(err, context.Canceled):
		status = hook.StatusInterrupt
		output = interruptAdvice
	case err != nil:
		status = hook.StatusFail
		output = fmt.Sprintf("hook %q raised an unexpected error: %v", u.Name(), err)
		if r.log != nil {
			r.log.Warnf("hook %s faulted: %v", u.Name(), err)
		}
	}

	if r.log != nil {
		r.log.Infof("hook %s finished: %s", u.Name(), status)
	}
	r.sink.HookEnded(u.Name(), status, output)
	return status, output
}

// nopEnvironment is the default when no environment bracketing is needed.
type nopEnvironment struct{}

func (nopEnvironment) SetupEnvironment() error   { return nil }
func (nopEnvironment) CleanupEnvironment() error { return nil }
