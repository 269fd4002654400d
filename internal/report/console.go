// Package report renders run and hook lifecycle events for a user at a
// terminal. It is a pure observer: nothing the run does depends on it.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/calder/hookline/internal/hook"
	"github.com/calder/hookline/internal/runner"
)

// ConsoleSink writes colored per-hook lines and a terminal verdict.
// Color is enabled only when the writer is a TTY. Safe for concurrent
// use, although the runner is single-threaded.
type ConsoleSink struct {
	writer io.Writer
	event  string
	color  bool
	mutex  sync.Mutex
}

// NewConsoleSink creates a sink for the given lifecycle event writing to
// w. Color is auto-detected from the writer.
func NewConsoleSink(w io.Writer, event string) *ConsoleSink {
	return &ConsoleSink{
		writer: w,
		event:  event,
		color:  isTerminal(w),
	}
}

// isTerminal reports whether w is a TTY that can take color.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *ConsoleSink) printf(format string, args ...any) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	fmt.Fprintf(c.writer, format, args...)
}

// paint applies a color function when color is enabled.
func (c *ConsoleSink) paint(fn func(format string, a ...interface{}) string, s string) string {
	if !c.color {
		return s
	}
	return fn("%s", s)
}

// RunStarted prints the run header.
func (c *ConsoleSink) RunStarted(units []hook.Unit) {
	c.printf("Running %s hooks\n", c.event)
}

// NothingToRun notes that no hook is enabled for this event.
func (c *ConsoleSink) NothingToRun() {
	c.printf("No enabled %s hooks to run. %s\n", c.event, c.paint(color.GreenString, "✓"))
}

// HookStarted is silent on the console; the verdict line carries the name.
func (c *ConsoleSink) HookStarted(name string) {}

// HookEnded prints one line per hook, with its output indented when
// there is something to show.
func (c *ConsoleSink) HookEnded(name string, status hook.Status, output string) {
	var mark string
	switch status {
	case hook.StatusPass:
		mark = c.paint(color.GreenString, "✓")
	case hook.StatusWarn:
		mark = c.paint(color.YellowString, "⚠")
	case hook.StatusFail:
		mark = c.paint(color.RedString, "✗")
	case hook.StatusInterrupt:
		mark = c.paint(color.MagentaString, "⊘")
	}
	c.printf("  %s %s\n", mark, name)

	if output != "" && status != hook.StatusPass {
		for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
			c.printf("      %s\n", line)
		}
	}
}

// HookSkipped notes an omitted hook.
func (c *ConsoleSink) HookSkipped(name string) {
	c.printf("  %s %s (skipped)\n", c.paint(color.YellowString, "-"), name)
}

// RequiredHookNotSkipped warns that a skip request was overridden.
func (c *ConsoleSink) RequiredHookNotSkipped(name string) {
	c.printf("  %s %s is required and cannot be skipped\n", c.paint(color.YellowString, "!"), name)
}

// RunSucceeded prints the success verdict.
func (c *ConsoleSink) RunSucceeded() {
	c.printf("%s\n", c.paint(color.GreenString, "✓ All "+c.event+" hooks passed"))
}

// RunWarned prints the warning verdict. Warnings do not fail the run.
func (c *ConsoleSink) RunWarned() {
	c.printf("%s\n", c.paint(color.YellowString, "⚠ All "+c.event+" hooks passed, with warnings"))
}

// RunFailed prints the failure verdict.
func (c *ConsoleSink) RunFailed() {
	c.printf("%s\n", c.paint(color.RedString, "✗ One or more "+c.event+" hooks failed"))
}

// RunInterrupted prints the interruption verdict.
func (c *ConsoleSink) RunInterrupted() {
	c.printf("%s\n", c.paint(color.MagentaString, "⊘ "+c.event+" hook run interrupted"))
}

var _ runner.Sink = (*ConsoleSink)(nil)
