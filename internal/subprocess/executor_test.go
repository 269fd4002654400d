package subprocess

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests drive /bin/sh")
	}
}

func TestSpawnCapturesStreamsSeparately(t *testing.T) {
	skipOnWindows(t)

	e := &Executor{}
	res, err := e.Spawn(context.Background(), []string{"sh", "-c", "printf out; printf err 1>&2"})
	require.NoError(t, err)

	assert.Equal(t, 0, res.ExitCode)
	assert.True(t, res.Success())
	assert.Equal(t, "out", string(res.Stdout))
	assert.Equal(t, "err", string(res.Stderr))
}

func TestSpawnReturnsExitCodeVerbatim(t *testing.T) {
	skipOnWindows(t)

	e := &Executor{}
	res, err := e.Spawn(context.Background(), []string{"sh", "-c", "exit 3"})
	require.NoError(t, err)

	assert.Equal(t, 3, res.ExitCode)
	assert.False(t, res.Success())
}

func TestSpawnDoesNotTruncateLargeOutput(t *testing.T) {
	skipOnWindows(t)

	// 2 MiB of output, well past any pipe buffer.
	const want = 2 * 1024 * 1024
	e := &Executor{}
	res, err := e.Spawn(context.Background(), []string{
		"sh", "-c", "yes 0123456789abcdef | head -c 2097152",
	})
	require.NoError(t, err)

	assert.Len(t, res.Stdout, want)
	assert.Empty(t, res.Stderr)
}

func TestSpawnDoesNotTrimOutput(t *testing.T) {
	skipOnWindows(t)

	e := &Executor{}
	res, err := e.Spawn(context.Background(), []string{"sh", "-c", "printf '  padded  \\n'"})
	require.NoError(t, err)

	assert.Equal(t, "  padded  \n", string(res.Stdout))
}

func TestSpawnArgvIsNotShellInterpreted(t *testing.T) {
	skipOnWindows(t)

	e := &Executor{}
	res, err := e.Spawn(context.Background(), []string{"echo", "$HOME", "&&", "ls"})
	require.NoError(t, err)

	// The metacharacters arrive as literal arguments.
	assert.Equal(t, "$HOME && ls\n", string(res.Stdout))
}

func TestSpawnMissingExecutableIsAFault(t *testing.T) {
	e := &Executor{}
	res, err := e.Spawn(context.Background(), []string{"hookline-no-such-binary-xyzzy"})

	require.Error(t, err)
	assert.Nil(t, res)
}

func TestSpawnEmptyArgvIsAFault(t *testing.T) {
	e := &Executor{}
	res, err := e.Spawn(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, res)
}

func TestSpawnHonorsWorkingDirectory(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	e := &Executor{Dir: dir}
	res, err := e.Spawn(context.Background(), []string{"pwd"})
	require.NoError(t, err)

	assert.Equal(t, dir, strings.TrimSpace(string(res.Stdout)))
}

func TestSpawnCanceledContextIsAFault(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	e := &Executor{}
	go func() {
		defer close(done)
		res, err := e.Spawn(ctx, []string{"sleep", "30"})
		assert.Nil(t, res)
		assert.ErrorIs(t, err, context.Canceled)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("canceled subprocess did not return")
	}
}

func TestSpawnDetachedReturnsImmediately(t *testing.T) {
	skipOnWindows(t)

	e := &Executor{}
	start := time.Now()
	err := e.SpawnDetached([]string{"sleep", "2"})
	require.NoError(t, err)

	assert.Less(t, time.Since(start), time.Second)
}

func TestSpawnDetachedMissingExecutableIsAFault(t *testing.T) {
	e := &Executor{}
	err := e.SpawnDetached([]string{"hookline-no-such-binary-xyzzy"})
	require.Error(t, err)
}
