// Package subprocess provides the execution primitive used by hooks to
// invoke external tools. It spawns a command from a literal argument
// vector, captures stdout and stderr separately, and returns the exit
// status and both streams verbatim.
package subprocess

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Result captures the outcome of a completed subprocess invocation.
// Stdout and Stderr are the raw bytes written by the process, with no
// encoding transformation or trimming. A Result is created once per
// invocation and never mutated.
type Result struct {
	// ExitCode is the process exit status, returned verbatim.
	ExitCode int

	// Stdout is everything the process wrote to standard output.
	Stdout []byte

	// Stderr is everything the process wrote to standard error.
	Stderr []byte
}

// Success reports whether the process exited with status zero.
// It is derived from ExitCode and never stored separately.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Executor spawns external commands. The zero value runs commands in the
// current working directory with the current environment.
type Executor struct {
	// Dir is the working directory for spawned commands (empty = current dir).
	Dir string

	// Env is the environment for spawned commands (nil = inherit).
	Env []string
}

// Spawn runs the command described by argv and blocks until it exits.
// The argument vector is passed to the OS literally; it is never
// shell-interpreted. Stdout and stderr are each captured to a private
// temporary file owned by this call and read back in full after the
// process exits, so arbitrarily large output is returned without
// truncation.
//
// A non-zero exit status is not an error: it is reported through the
// Result. An error is returned only when the process could not be
// started (e.g. the executable does not exist) or the context was
// canceled while it ran.
func (e *Executor) Spawn(ctx context.Context, argv []string) (*Result, error) {
	if len(argv) == 0 {
		return nil, errors.New("subprocess: empty argument vector")
	}

	stdout, err := os.CreateTemp("", "hookline-stdout-")
	if err != nil {
		return nil, fmt.Errorf("subprocess: create stdout buffer: %w", err)
	}
	defer discard(stdout)

	stderr, err := os.CreateTemp("", "hookline-stderr-")
	if err != nil {
		return nil, fmt.Errorf("subprocess: create stderr buffer: %w", err)
	}
	defer discard(stderr)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = e.Dir
	cmd.Env = e.Env
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	runErr := cmd.Run()

	// Cancellation takes precedence over whatever exit status the kill
	// produced, so callers can distinguish an interrupt from a failure.
	if ctx.Err() != nil {
		return nil, fmt.Errorf("subprocess %s: %w", argv[0], ctx.Err())
	}

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, fmt.Errorf("subprocess %s: %w", argv[0], runErr)
		}
		exitCode = exitErr.ExitCode()
	}

	outBytes, err := readBack(stdout)
	if err != nil {
		return nil, fmt.Errorf("subprocess %s: read stdout: %w", argv[0], err)
	}
	errBytes, err := readBack(stderr)
	if err != nil {
		return nil, fmt.Errorf("subprocess %s: read stderr: %w", argv[0], err)
	}

	return &Result{
		ExitCode: exitCode,
		Stdout:   outBytes,
		Stderr:   errBytes,
	}, nil
}

// SpawnDetached starts the command described by argv and returns as soon
// as the process is running. Output is still captured to backing files,
// which are reaped along with the process by a background goroutine; the
// caller never reads them. An error is returned only if the process
// could not be started.
func (e *Executor) SpawnDetached(argv []string) error {
	if len(argv) == 0 {
		return errors.New("subprocess: empty argument vector")
	}

	stdout, err := os.CreateTemp("", "hookline-stdout-")
	if err != nil {
		return fmt.Errorf("subprocess: create stdout buffer: %w", err)
	}
	stderr, err := os.CreateTemp("", "hookline-stderr-")
	if err != nil {
		discard(stdout)
		return fmt.Errorf("subprocess: create stderr buffer: %w", err)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = e.Dir
	cmd.Env = e.Env
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		discard(stdout)
		discard(stderr)
		return fmt.Errorf("subprocess %s: %w", argv[0], err)
	}

	// The parent owns the capture files for the child's lifetime.
	go func() {
		_ = cmd.Wait()
		discard(stdout)
		discard(stderr)
	}()

	return nil
}

// readBack rewinds a capture file and returns its full contents.
func readBack(f *os.File) ([]byte, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(f)
}

// discard closes and removes a capture file.
func discard(f *os.File) {
	_ = f.Close()
	_ = os.Remove(f.Name())
}
