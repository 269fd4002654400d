package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calder/hookline/internal/gitenv"
	"github.com/calder/hookline/internal/subprocess"
)

// shimMarker identifies shims written by hookline, so install and
// uninstall never clobber a hook script the user wrote themselves.
const shimMarker = "# Installed by hookline."

// installableEvents are the git hooks hookline knows how to drive.
var installableEvents = []string{"pre-commit", "pre-push"}

// NewInstallCommand creates the install command.
func NewInstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install hookline shims into .git/hooks",
		Long: `Install shim scripts into .git/hooks that invoke hookline on each
supported lifecycle event. A pre-existing hook script not written by
hookline is preserved as <event>.old and restored on uninstall.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			hooksDir, err := hooksDir()
			if err != nil {
				return err
			}
			for _, event := range installableEvents {
				if err := installShim(hooksDir, event); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Installed %s hook\n", event)
			}
			return nil
		},
	}
}

// NewUninstallCommand creates the uninstall command.
func NewUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove hookline shims from .git/hooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			hooksDir, err := hooksDir()
			if err != nil {
				return err
			}
			for _, event := range installableEvents {
				removed, err := uninstallShim(hooksDir, event)
				if err != nil {
					return err
				}
				if removed {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %s hook\n", event)
				}
			}
			return nil
		},
	}
}

func hooksDir() (string, error) {
	gitDir, err := gitenv.GitDir(&subprocess.Executor{})
	if err != nil {
		return "", err
	}
	return filepath.Join(gitDir, "hooks"), nil
}

// shimScript is the hook script written for an event. "$@" forwards the
// arguments git passes to some hooks (pre-push gets the remote name and
// URL).
func shimScript(event string) string {
	return fmt.Sprintf("#!/bin/sh\n%s Edits will be overwritten on reinstall.\nexec hookline run %s \"$@\"\n", shimMarker, event)
}

// isHooklineShim reports whether the file at path was written by install.
func isHooklineShim(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.Contains(string(data), shimMarker), nil
}

// installShim writes the hook script for event, preserving any foreign
// hook as <event>.old.
func installShim(hooksDir, event string) error {
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return fmt.Errorf("create hooks directory: %w", err)
	}

	target := filepath.Join(hooksDir, event)
	ours, err := isHooklineShim(target)
	if err != nil {
		return fmt.Errorf("inspect existing %s hook: %w", event, err)
	}
	if _, err := os.Stat(target); err == nil && !ours {
		if err := os.Rename(target, target+".old"); err != nil {
			return fmt.Errorf("preserve existing %s hook: %w", event, err)
		}
	}

	if err := os.WriteFile(target, []byte(shimScript(event)), 0o755); err != nil {
		return fmt.Errorf("write %s hook: %w", event, err)
	}
	return nil
}

// uninstallShim removes a hookline shim and restores any preserved hook.
// It reports whether a shim was actually removed.
func uninstallShim(hooksDir, event string) (bool, error) {
	target := filepath.Join(hooksDir, event)
	ours, err := isHooklineShim(target)
	if err != nil {
		return false, fmt.Errorf("inspect %s hook: %w", event, err)
	}
	if !ours {
		return false, nil
	}

	if err := os.Remove(target); err != nil {
		return false, fmt.Errorf("remove %s hook: %w", event, err)
	}
	if _, err := os.Stat(target + ".old"); err == nil {
		if err := os.Rename(target+".old", target); err != nil {
			return true, fmt.Errorf("restore original %s hook: %w", event, err)
		}
	}
	return true, nil
}
