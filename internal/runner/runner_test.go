package runner

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calder/hookline/internal/hook"
)

// stubUnit is a configurable test double for hook.Unit.
type stubUnit struct {
	name     string
	enabled  bool
	skip     bool
	required bool
	wouldRun bool

	status hook.Status
	output string
	err    error
	panics bool

	runs int
}

func (u *stubUnit) Name() string        { return u.name }
func (u *stubUnit) Enabled() bool       { return u.enabled }
func (u *stubUnit) SkipRequested() bool { return u.skip }
func (u *stubUnit) Required() bool      { return u.required }
func (u *stubUnit) WouldRun() bool      { return u.wouldRun }

func (u *stubUnit) Run(ctx context.Context) (hook.Status, string, error) {
	u.runs++
	if u.panics {
		panic("stub exploded")
	}
	return u.status, u.output, u.err
}

func passingUnit(name string) *stubUnit {
	return &stubUnit{name: name, enabled: true, wouldRun: true, status: hook.StatusPass}
}

// stubLoader is a test double for Loader.
type stubLoader struct {
	units []hook.Unit
	err   error
}

func (l *stubLoader) LoadHooks() ([]hook.Unit, error) {
	return l.units, l.err
}

// countingEnv records setup/cleanup invocations.
type countingEnv struct {
	setups   int
	cleanups int

	setupErr   error
	cleanupErr error
}

func (e *countingEnv) SetupEnvironment() error {
	e.setups++
	return e.setupErr
}

func (e *countingEnv) CleanupEnvironment() error {
	e.cleanups++
	return e.cleanupErr
}

// recordingSink captures every notification as a flat event string.
type recordingSink struct {
	events []string
}

func (s *recordingSink) RunStarted(units []hook.Unit) {
	s.events = append(s.events, fmt.Sprintf("run-started:%d", len(units)))
}
func (s *recordingSink) NothingToRun() { s.events = append(s.events, "nothing-to-run") }
func (s *recordingSink) HookStarted(name string) {
	s.events = append(s.events, "hook-started:"+name)
}
func (s *recordingSink) HookEnded(name string, status hook.Status, output string) {
	s.events = append(s.events, fmt.Sprintf("hook-ended:%s:%s", name, status))
}
func (s *recordingSink) HookSkipped(name string) {
	s.events = append(s.events, "hook-skipped:"+name)
}
func (s *recordingSink) RequiredHookNotSkipped(name string) {
	s.events = append(s.events, "required-not-skipped:"+name)
}
func (s *recordingSink) RunSucceeded()   { s.events = append(s.events, "run-succeeded") }
func (s *recordingSink) RunWarned()      { s.events = append(s.events, "run-warned") }
func (s *recordingSink) RunFailed()      { s.events = append(s.events, "run-failed") }
func (s *recordingSink) RunInterrupted() { s.events = append(s.events, "run-interrupted") }

func (s *recordingSink) terminal() string {
	if len(s.events) == 0 {
		return ""
	}
	return s.events[len(s.events)-1]
}

func newTestRunner(units []hook.Unit, env Environment, sink Sink) *Runner {
	return New(&stubLoader{units: units}, env, sink, nil)
}

func TestRunReportsDominantStatus(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []hook.Status
		wantTerminal string
		wantOK       bool
	}{
		{
			name:         "all pass",
			statuses:     []hook.Status{hook.StatusPass, hook.StatusPass},
			wantTerminal: "run-succeeded",
			wantOK:       true,
		},
		{
			name:         "warn does not fail the run",
			statuses:     []hook.Status{hook.StatusPass, hook.StatusWarn, hook.StatusPass},
			wantTerminal: "run-warned",
			wantOK:       true,
		},
		{
			name:         "fail dominates warn",
			statuses:     []hook.Status{hook.StatusWarn, hook.StatusFail, hook.StatusWarn},
			wantTerminal: "run-failed",
			wantOK:       false,
		},
		{
			name:         "interrupt dominates fail",
			statuses:     []hook.Status{hook.StatusFail, hook.StatusInterrupt},
			wantTerminal: "run-interrupted",
			wantOK:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var units []hook.Unit
			for i, st := range tt.statuses {
				u := passingUnit(fmt.Sprintf("hook-%d", i))
				u.status = st
				units = append(units, u)
			}
			sink := &recordingSink{}

			ok, err := newTestRunner(units, nil, sink).Run(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTerminal, sink.terminal())
		})
	}
}

func TestRunInterruptStopsRemainingHooks(t *testing.T) {
	first := passingUnit("first")
	second := passingUnit("second")
	second.err = context.Canceled
	third := passingUnit("third")
	sink := &recordingSink{}

	ok, err := newTestRunner([]hook.Unit{first, second, third}, nil, sink).Run(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, first.runs)
	assert.Equal(t, 1, second.runs)
	assert.Equal(t, 0, third.runs, "hooks after an interrupt must not run")
	assert.Contains(t, sink.events, "hook-ended:second:interrupt")
	assert.NotContains(t, sink.events, "hook-started:third")
	assert.Equal(t, "run-interrupted", sink.terminal())
}

func TestRunCleanupHappensExactlyOnce(t *testing.T) {
	tests := []struct {
		name string
		unit *stubUnit
	}{
		{name: "all hooks pass", unit: passingUnit("ok")},
		{name: "hook fails", unit: func() *stubUnit {
			u := passingUnit("bad")
			u.status = hook.StatusFail
			return u
		}()},
		{name: "hook panics", unit: func() *stubUnit {
			u := passingUnit("explosive")
			u.panics = true
			return u
		}()},
		{name: "hook interrupted", unit: func() *stubUnit {
			u := passingUnit("interrupted")
			u.err = context.Canceled
			return u
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &countingEnv{}

			_, err := newTestRunner([]hook.Unit{tt.unit}, env, nil).Run(context.Background())

			require.NoError(t, err)
			assert.Equal(t, 1, env.setups)
			assert.Equal(t, 1, env.cleanups)
		})
	}
}

func TestRunLoadErrorAbortsBeforeSetup(t *testing.T) {
	env := &countingEnv{}
	loader := &stubLoader{err: errors.New("unparseable config")}
	sink := &recordingSink{}

	ok, err := New(loader, env, sink, nil).Run(context.Background())

	assert.False(t, ok)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "unparseable config")
	assert.NotEmpty(t, le.Hint)
	assert.Equal(t, 0, env.setups, "load failure must precede any environment mutation")
	assert.Equal(t, 0, env.cleanups)
	assert.Empty(t, sink.events)
}

func TestRunLoaderLoadErrorPassesThrough(t *testing.T) {
	want := &LoadError{Hint: "install the missing hook", Err: errors.New("no such hook")}
	loader := &stubLoader{err: want}

	_, err := New(loader, nil, nil, nil).Run(context.Background())

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Same(t, want, le)
}

func TestRunSetupFaultSkipsCleanup(t *testing.T) {
	env := &countingEnv{setupErr: errors.New("stash failed")}
	unit := passingUnit("never-runs")

	ok, err := newTestRunner([]hook.Unit{unit}, env, nil).Run(context.Background())

	assert.False(t, ok)
	require.ErrorContains(t, err, "stash failed")
	assert.Equal(t, 1, env.setups)
	assert.Equal(t, 0, env.cleanups, "no rollback is attempted when setup faults")
	assert.Equal(t, 0, unit.runs)
}

func TestRunCleanupFaultPropagates(t *testing.T) {
	env := &countingEnv{cleanupErr: errors.New("stash pop failed")}
	sink := &recordingSink{}

	ok, err := newTestRunner([]hook.Unit{passingUnit("ok")}, env, sink).Run(context.Background())

	assert.False(t, ok)
	require.ErrorContains(t, err, "stash pop failed")
	assert.Equal(t, 1, env.cleanups)
	// The loop still completed and reported before cleanup faulted.
	assert.Equal(t, "run-succeeded", sink.terminal())
}

func TestRunDisabledHookIsInvisible(t *testing.T) {
	disabled := &stubUnit{name: "disabled", enabled: false}
	enabled := passingUnit("enabled")
	sink := &recordingSink{}

	ok, err := newTestRunner([]hook.Unit{disabled, enabled}, nil, sink).Run(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, disabled.runs)
	assert.NotContains(t, sink.events, "hook-started:disabled")
	assert.NotContains(t, sink.events, "hook-ended:disabled:pass")
}

func TestRunNothingEnabled(t *testing.T) {
	units := []hook.Unit{
		&stubUnit{name: "a", enabled: false},
		&stubUnit{name: "b", enabled: false},
	}
	env := &countingEnv{}
	sink := &recordingSink{}

	ok, err := newTestRunner(units, env, sink).Run(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"nothing-to-run"}, sink.events)
	assert.Equal(t, 1, env.cleanups, "environment is still restored")
}

func TestRunRequiredHookIgnoresSkipRequest(t *testing.T) {
	u := passingUnit("critical")
	u.skip = true
	u.required = true
	sink := &recordingSink{}

	ok, err := newTestRunner([]hook.Unit{u}, nil, sink).Run(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, u.runs)

	// The override notification precedes execution.
	requiredIdx := indexOf(sink.events, "required-not-skipped:critical")
	startedIdx := indexOf(sink.events, "hook-started:critical")
	require.GreaterOrEqual(t, requiredIdx, 0)
	require.GreaterOrEqual(t, startedIdx, 0)
	assert.Less(t, requiredIdx, startedIdx)
}

func TestRunSkipRequestOmitsHook(t *testing.T) {
	tests := []struct {
		name         string
		wouldRun     bool
		wantSkipNote bool
	}{
		{name: "skip announced when hook had work", wouldRun: true, wantSkipNote: true},
		{name: "silent skip when hook had nothing to do", wouldRun: false, wantSkipNote: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := passingUnit("optional")
			u.skip = true
			u.wouldRun = tt.wouldRun
			sink := &recordingSink{}

			ok, err := newTestRunner([]hook.Unit{u, passingUnit("other")}, nil, sink).Run(context.Background())

			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, 0, u.runs)
			if tt.wantSkipNote {
				assert.Contains(t, sink.events, "hook-skipped:optional")
			} else {
				assert.NotContains(t, sink.events, "hook-skipped:optional")
			}
		})
	}
}

func TestRunHookFaultBecomesFailStatus(t *testing.T) {
	first := passingUnit("first")
	second := passingUnit("second")
	second.err = errors.New("tool vanished mid-run")
	third := passingUnit("third")
	sink := &recordingSink{}

	var endedOutput string
	faultSink := &outputCapturingSink{recordingSink: sink, capture: "second", into: &endedOutput}

	ok, err := newTestRunner([]hook.Unit{first, second, third}, nil, faultSink).Run(context.Background())

	require.NoError(t, err, "hook faults must not escape the run-loop")
	assert.False(t, ok)
	assert.Equal(t, 1, third.runs, "a fault does not stop later hooks")
	assert.Contains(t, sink.events, "hook-ended:second:fail")
	assert.Contains(t, endedOutput, "tool vanished mid-run")
	assert.Equal(t, "run-failed", sink.terminal())
}

func TestRunHookPanicBecomesFailStatusWithTrace(t *testing.T) {
	u := passingUnit("explosive")
	u.panics = true
	sink := &recordingSink{}

	var endedOutput string
	capture := &outputCapturingSink{recordingSink: sink, capture: "explosive", into: &endedOutput}

	ok, err := newTestRunner([]hook.Unit{u}, nil, capture).Run(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, sink.events, "hook-ended:explosive:fail")
	assert.Contains(t, endedOutput, "stub exploded")
	assert.Contains(t, endedOutput, "goroutine", "fault output should embed a stack trace")
}

func TestRunInterruptedHookGetsAdvisoryOutput(t *testing.T) {
	u := passingUnit("interrupted")
	u.err = context.Canceled
	sink := &recordingSink{}

	var endedOutput string
	capture := &outputCapturingSink{recordingSink: sink, capture: "interrupted", into: &endedOutput}

	_, err := newTestRunner([]hook.Unit{u}, nil, capture).Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, endedOutput, "Verify the repository")
}

func TestRunHookEndedAlwaysFollowsHookStarted(t *testing.T) {
	units := []hook.Unit{
		passingUnit("ok"),
		func() *stubUnit { u := passingUnit("bad"); u.err = errors.New("x"); return u }(),
		func() *stubUnit { u := passingUnit("boom"); u.panics = true; return u }(),
	}
	sink := &recordingSink{}

	_, err := newTestRunner(units, nil, sink).Run(context.Background())
	require.NoError(t, err)

	started, ended := 0, 0
	for _, ev := range sink.events {
		if len(ev) > 12 && ev[:12] == "hook-started" {
			started++
		}
		if len(ev) > 10 && ev[:10] == "hook-ended" {
			ended++
		}
	}
	assert.Equal(t, 3, started)
	assert.Equal(t, started, ended)
}

// outputCapturingSink records events like recordingSink and additionally
// captures the HookEnded output of one named hook.
type outputCapturingSink struct {
	*recordingSink
	capture string
	into    *string
}

func (s *outputCapturingSink) HookEnded(name string, status hook.Status, output string) {
	if name == s.capture {
		*s.into = output
	}
	s.recordingSink.HookEnded(name, status, output)
}

func indexOf(events []string, want string) int {
	for i, ev := range events {
		if ev == want {
			return i
		}
	}
	return -1
}
