// Package gitenv brackets the repository working state around a hook
// run. Setup stashes unstaged and untracked changes so hooks inspect
// exactly what is staged; Cleanup restores the stash. The runner
// guarantees Cleanup is attempted exactly once whenever Setup returned
// normally, and never when it did not.
package gitenv

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/calder/hookline/internal/subprocess"
)

// Commander runs git subcommands. *subprocess.Executor satisfies it;
// tests substitute a scripted fake.
type Commander interface {
	Spawn(ctx context.Context, argv []string) (*subprocess.Result, error)
}

// GitEnvironment implements the runner's Environment interface for a git
// working tree. One instance serves exactly one run.
type GitEnvironment struct {
	cmd     Commander
	marker  string
	stashed bool
}

// New creates a GitEnvironment executing git through cmd.
func New(cmd Commander) *GitEnvironment {
	return &GitEnvironment{
		cmd:    cmd,
		marker: "hookline-" + uuid.NewString(),
	}
}

// SetupEnvironment stashes unstaged and untracked changes when the tree
// is dirty, keeping the index intact. A fault here means no stash was
// created, so nothing needs undoing; the run is simply aborted.
func (g *GitEnvironment) SetupEnvironment() error {
	dirty, err := g.hasUnstagedChanges()
	if err != nil {
		return err
	}
	if !dirty {
		return nil
	}

	res, err := g.cmd.Spawn(context.Background(), []string{
		"git", "stash", "push", "--keep-index", "--include-untracked",
		"--quiet", "-m", g.marker,
	})
	if err != nil {
		return fmt.Errorf("stash unstaged changes: %w", err)
	}
	if !res.Success() {
		return fmt.Errorf("stash unstaged changes: %s", strings.TrimSpace(string(res.Stderr)))
	}

	g.stashed = true
	return nil
}

// CleanupEnvironment restores the stash created by SetupEnvironment, if
// any. Errors surface to the caller; silently losing a user's unstaged
// work is not an option.
func (g *GitEnvironment) CleanupEnvironment() error {
	if !g.stashed {
		return nil
	}
	g.stashed = false

	ref, err := g.findStash()
	if err != nil {
		return err
	}
	if ref == "" {
		return fmt.Errorf("stash %s disappeared; unstaged changes may be in 'git stash list'", g.marker)
	}

	res, err := g.cmd.Spawn(context.Background(), []string{"git", "stash", "pop", "--quiet", ref})
	if err != nil {
		return fmt.Errorf("restore stashed changes: %w", err)
	}
	if !res.Success() {
		return fmt.Errorf("restore stashed changes (%s): %s", ref, strings.TrimSpace(string(res.Stderr)))
	}
	return nil
}

// hasUnstagedChanges reports whether the working tree differs from the
// index, counting untracked files.
func (g *GitEnvironment) hasUnstagedChanges() (bool, error) {
	res, err := g.cmd.Spawn(context.Background(), []string{
		"git", "status", "--porcelain", "--untracked-files=all",
	})
	if err != nil {
		return false, fmt.Errorf("inspect working tree: %w", err)
	}
	if !res.Success() {
		return false, fmt.Errorf("inspect working tree: %s", strings.TrimSpace(string(res.Stderr)))
	}

	for _, line := range strings.Split(string(res.Stdout), "\n") {
		if len(line) < 2 {
			continue
		}
		// Porcelain columns: X = index, Y = working tree. Anything in Y,
		// or an untracked entry, means the tree has unstaged state.
		if line[1] != ' ' || strings.HasPrefix(line, "??") {
			return true, nil
		}
	}
	return false, nil
}

// findStash resolves the stash ref carrying this run's marker.
func (g *GitEnvironment) findStash() (string, error) {
	res, err := g.cmd.Spawn(context.Background(), []string{"git", "stash", "list"})
	if err != nil {
		return "", fmt.Errorf("list stashes: %w", err)
	}
	if !res.Success() {
		return "", fmt.Errorf("list stashes: %s", strings.TrimSpace(string(res.Stderr)))
	}

	for _, line := range strings.Split(string(res.Stdout), "\n") {
		if !strings.Contains(line, g.marker) {
			continue
		}
		if idx := strings.Index(line, ":"); idx > 0 {
			return line[:idx], nil
		}
	}
	return "", nil
}
