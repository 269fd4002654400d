// Package cmd wires the hookline CLI: installing git hook shims,
// running the hooks for a lifecycle event, and inspecting configuration
// and run history.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for hookline.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hookline",
		Short: "Git hook check orchestrator",
		Long: `Hookline runs configured checks against a repository on git lifecycle
events (pre-commit, pre-push), stashing unstaged changes so checks see
exactly what is staged and restoring them afterward, even when a run is
interrupted.

Configuration lives in .hookline.yaml at the repository root.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewInstallCommand())
	cmd.AddCommand(NewUninstallCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
