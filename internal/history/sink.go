package history

import (
	"github.com/calder/hookline/internal/hook"
	"github.com/calder/hookline/internal/runner"
)

// errorLogger receives store failures. The sink is observational, so a
// failed write must never fail the run; it is logged and dropped.
type errorLogger interface {
	Warnf(format string, args ...any)
}

// Sink records run lifecycle events into a Store. It implements the
// runner's Sink interface; all methods are fire-and-forget.
type Sink struct {
	store    *Store
	event    string
	log      errorLogger
	runID    string
	position int
}

// NewSink creates a recording sink for one run of the given event.
// log may be nil.
func NewSink(store *Store, event string, log errorLogger) *Sink {
	return &Sink{store: store, event: event, log: log}
}

// RunID returns the id of the recorded run, empty until RunStarted.
func (s *Sink) RunID() string { return s.runID }

func (s *Sink) warnf(format string, args ...any) {
	if s.log != nil {
		s.log.Warnf(format, args...)
	}
}

// RunStarted opens the run row.
func (s *Sink) RunStarted(units []hook.Unit) {
	id, err := s.store.BeginRun(s.event)
	if err != nil {
		s.warnf("history: %v", err)
		return
	}
	s.runID = id
}

// NothingToRun records nothing; empty runs are not interesting history.
func (s *Sink) NothingToRun() {}

// HookStarted is recorded implicitly by HookEnded.
func (s *Sink) HookStarted(name string) {}

// HookEnded appends the hook's result to the run.
func (s *Sink) HookEnded(name string, status hook.Status, output string) {
	if s.runID == "" {
		return
	}
	if err := s.store.RecordHookResult(s.runID, s.position, name, status.String(), output); err != nil {
		s.warnf("history: %v", err)
	}
	s.position++
}

// HookSkipped is not persisted.
func (s *Sink) HookSkipped(name string) {}

// RequiredHookNotSkipped is not persisted.
func (s *Sink) RequiredHookNotSkipped(name string) {}

func (s *Sink) finish(verdict string) {
	if s.runID == "" {
		return
	}
	if err := s.store.FinishRun(s.runID, verdict); err != nil {
		s.warnf("history: %v", err)
	}
}

// RunSucceeded stamps the run verdict.
func (s *Sink) RunSucceeded() { s.finish("succeeded") }

// RunWarned stamps the run verdict.
func (s *Sink) RunWarned() { s.finish("warned") }

// RunFailed stamps the run verdict.
func (s *Sink) RunFailed() { s.finish("failed") }

// RunInterrupted stamps the run verdict.
func (s *Sink) RunInterrupted() { s.finish("interrupted") }

var _ runner.Sink = (*Sink)(nil)
