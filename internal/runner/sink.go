package runner

import "github.com/calder/hookline/internal/hook"

// Sink receives run and hook lifecycle notifications. Events are
// fire-and-forget: the runner never reads a return value, so sinks must
// not block or fail the run.
type Sink interface {
	// RunStarted fires once before the first hook, with the loaded units.
	RunStarted(units []hook.Unit)

	// NothingToRun fires instead of RunStarted when no hook is enabled.
	NothingToRun()

	// HookStarted fires immediately before a hook executes.
	HookStarted(name string)

	// HookEnded fires after a hook finishes, on every path, with the
	// normalized status and output.
	HookEnded(name string, status hook.Status, output string)

	// HookSkipped fires when a skip request omits a non-required hook.
	HookSkipped(name string)

	// RequiredHookNotSkipped fires when a skip request is overridden
	// because the hook is required; the hook still runs.
	RequiredHookNotSkipped(name string)

	// Exactly one of the following fires at the end of every run.
	RunSucceeded()
	RunWarned()
	RunFailed()
	RunInterrupted()
}

// MultiSink fans every notification out to each member in order.
type MultiSink []Sink

func (m MultiSink) RunStarted(units []hook.Unit) {
	for _, s := range m {
		s.RunStarted(units)
	}
}

func (m MultiSink) NothingToRun() {
	for _, s := range m {
		s.NothingToRun()
	}
}

func (m MultiSink) HookStarted(name string) {
	for _, s := range m {
		s.HookStarted(name)
	}
}

func (m MultiSink) HookEnded(name string, status hook.Status, output string) {
	for _, s := range m {
		s.HookEnded(name, status, output)
	}
}

func (m MultiSink) HookSkipped(name string) {
	for _, s := range m {
		s.HookSkipped(name)
	}
}

func (m MultiSink) RequiredHookNotSkipped(name string) {
	for _, s := range m {
		s.RequiredHookNotSkipped(name)
	}
}

func (m MultiSink) RunSucceeded() {
	for _, s := range m {
		s.RunSucceeded()
	}
}

func (m MultiSink) RunWarned() {
	for _, s := range m {
		s.RunWarned()
	}
}

func (m MultiSink) RunFailed() {
	for _, s := range m {
		s.RunFailed()
	}
}

func (m MultiSink) RunInterrupted() {
	for _, s := range m {
		s.RunInterrupted()
	}
}

// NopSink ignores every notification.
type NopSink struct{}

func (NopSink) RunStarted([]hook.Unit)                    {}
func (NopSink) NothingToRun()                             {}
func (NopSink) HookStarted(string)                        {}
func (NopSink) HookEnded(string, hook.Status, string)     {}
func (NopSink) HookSkipped(string)                        {}
func (NopSink) RequiredHookNotSkipped(string)             {}
func (NopSink) RunSucceeded()                             {}
func (NopSink) RunWarned()                                {}
func (NopSink) RunFailed()                                {}
func (NopSink) RunInterrupted()                           {}

var _ Sink = MultiSink(nil)
var _ Sink = NopSink{}
