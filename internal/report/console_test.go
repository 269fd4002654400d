package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calder/hookline/internal/hook"
)

func TestConsoleSinkDisablesColorForNonTerminal(t *testing.T) {
	sink := NewConsoleSink(&bytes.Buffer{}, "pre-commit")
	assert.False(t, sink.color)
}

func TestConsoleSinkHookLines(t *testing.T) {
	tests := []struct {
		name     string
		status   hook.Status
		output   string
		wantMark string
		wantOut  bool
	}{
		{name: "pass", status: hook.StatusPass, output: "noise", wantMark: "✓", wantOut: false},
		{name: "warn shows output", status: hook.StatusWarn, output: "files need gofmt", wantMark: "⚠", wantOut: true},
		{name: "fail shows output", status: hook.StatusFail, output: "vet: bad call", wantMark: "✗", wantOut: true},
		{name: "interrupt", status: hook.StatusInterrupt, output: "Interrupt received", wantMark: "⊘", wantOut: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			sink := NewConsoleSink(&buf, "pre-commit")

			sink.HookEnded("some-hook", tt.status, tt.output)

			out := buf.String()
			assert.Contains(t, out, tt.wantMark)
			assert.Contains(t, out, "some-hook")
			if tt.wantOut {
				assert.Contains(t, out, tt.output)
			} else {
				assert.NotContains(t, out, tt.output)
			}
		})
	}
}

func TestConsoleSinkIndentsMultilineOutput(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, "pre-commit")

	sink.HookEnded("gofmt", hook.StatusWarn, "a.go\nb.go\n")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "      a.go"))
	assert.True(t, strings.HasPrefix(lines[2], "      b.go"))
}

func TestConsoleSinkVerdicts(t *testing.T) {
	tests := []struct {
		name string
		fire func(*ConsoleSink)
		want string
	}{
		{name: "succeeded", fire: (*ConsoleSink).RunSucceeded, want: "passed"},
		{name: "warned", fire: (*ConsoleSink).RunWarned, want: "warnings"},
		{name: "failed", fire: (*ConsoleSink).RunFailed, want: "failed"},
		{name: "interrupted", fire: (*ConsoleSink).RunInterrupted, want: "interrupted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			sink := NewConsoleSink(&buf, "pre-commit")

			tt.fire(sink)

			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestConsoleSinkSkipNotices(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, "pre-commit")

	sink.HookSkipped("gofmt")
	sink.RequiredHookNotSkipped("go-vet")

	out := buf.String()
	assert.Contains(t, out, "gofmt (skipped)")
	assert.Contains(t, out, "go-vet is required")
}
