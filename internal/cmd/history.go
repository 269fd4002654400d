package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/calder/hookline/internal/config"
	"github.com/calder/hookline/internal/gitenv"
	"github.com/calder/hookline/internal/history"
	"github.com/calder/hookline/internal/subprocess"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent hook runs for this repository",
		RunE:  historyCommand,
	}

	cmd.Flags().IntP("limit", "n", 10, "Number of runs to show")
	cmd.Flags().Bool("hooks", false, "Include per-hook results for each run")

	return cmd
}

func historyCommand(cmd *cobra.Command, args []string) error {
	exec := &subprocess.Executor{}
	repoRoot, err := gitenv.RepoRoot(exec)
	if err != nil {
		return err
	}
	gitDir, err := gitenv.GitDir(exec)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(filepath.Join(repoRoot, config.DefaultConfigName))
	if err != nil {
		return err
	}

	store, err := history.NewStore(resolvePath(gitDir, cfg.History.Path))
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.RecentRuns(limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No recorded runs.")
		return nil
	}

	withHooks, _ := cmd.Flags().GetBool("hooks")
	for _, run := range runs {
		duration := run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond)
		fmt.Fprintf(out, "%s  %-11s %-12s %s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Event, run.Verdict, duration)

		if !withHooks {
			continue
		}
		results, err := store.HookResults(run.ID)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Fprintf(out, "    %-22s %s\n", r.Name, r.Status)
		}
	}
	return nil
}
