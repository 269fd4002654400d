// Package interrupt scopes interrupt-signal handling around critical
// sections of a run. Process signal disposition is global state, so the
// package models it as an explicit controller with two nested modes
// rather than ambient flags: Isolate fully suppresses delivery for a
// scope, and Deliverable re-enables delivery as context cancellation for
// the duration of a single wrapped call.
package interrupt

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
)

// ErrInterrupted is returned by Deliverable when an interrupt signal
// arrived while the wrapped call was running.
var ErrInterrupted = errors.New("interrupted by signal")

// Controller owns the signal disposition for a run. It is intended for a
// single logical thread of control; scopes must not be entered
// concurrently.
type Controller struct {
	signals    []os.Signal
	suppressed bool
}

// NewController returns a Controller covering SIGINT and SIGTERM.
func NewController() *Controller {
	return &Controller{
		signals: []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
}

// Isolate runs fn with interrupt delivery fully suppressed. Signals
// arriving during the scope are discarded, not queued; none are
// redelivered afterward. The prior disposition is restored on every exit
// path, including a panic in fn.
func (c *Controller) Isolate(fn func() error) error {
	signal.Ignore(c.signals...)
	c.suppressed = true
	defer func() {
		c.suppressed = false
		signal.Reset(c.signals...)
	}()
	return fn()
}

// Deliverable re-enables interrupt delivery for the duration of fn,
// which must be called from inside an Isolate scope. A signal arriving
// while fn runs cancels fn's context; Deliverable then reports
// ErrInterrupted in place of whatever error the cancellation produced.
// When fn returns, delivery reverts to the suppression the surrounding
// Isolate scope established.
func (c *Controller) Deliverable(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, c.signals...)
	defer func() {
		signal.Stop(ch)
		close(done)
		if c.suppressed {
			signal.Ignore(c.signals...)
		}
	}()

	go func() {
		select {
		case <-ch:
			cancel(ErrInterrupted)
		case <-done:
		}
	}()

	err := fn(ctx)
	if err != nil && errors.Is(context.Cause(ctx), ErrInterrupted) {
		return ErrInterrupted
	}
	return err
}
