package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/calder/hookline/internal/config"
	"github.com/calder/hookline/internal/filelock"
	"github.com/calder/hookline/internal/gitenv"
	"github.com/calder/hookline/internal/history"
	"github.com/calder/hookline/internal/logger"
	"github.com/calder/hookline/internal/report"
	"github.com/calder/hookline/internal/runner"
	"github.com/calder/hookline/internal/subprocess"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [event]",
		Short: "Run the hooks configured for a lifecycle event",
		Long: `Run the hooks configured for a git lifecycle event (default: pre-commit).

Unstaged and untracked changes are stashed for the duration of the run so
hooks inspect exactly what is staged, and restored afterward. Individual
hooks can be skipped for one run:

  HOOKLINE_SKIP=gofmt,yaml-syntax git commit
  HOOKLINE_SKIP=all git commit

Required hooks run regardless of skip requests. The command exits
non-zero when any hook fails or the run is interrupted; warnings alone
do not block.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .hookline.yaml at the repository root)")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")

	return cmd
}

func runCommand(cmd *cobra.Command, args []string) error {
	event := "pre-commit"
	if len(args) == 1 {
		event = args[0]
	}

	exec := &subprocess.Executor{}
	repoRoot, err := gitenv.RepoRoot(exec)
	if err != nil {
		return err
	}
	gitDir, err := gitenv.GitDir(exec)
	if err != nil {
		return err
	}
	// Hooks and git subcommands run from the repository root, not from
	// wherever git invoked the shim.
	exec.Dir = repoRoot

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = filepath.Join(repoRoot, config.DefaultConfigName)
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	var log *logger.Logger
	if cfg.Log.Enabled {
		log = logger.NewRotating(
			resolvePath(gitDir, cfg.Log.Path),
			cfg.Log.Level,
			logger.RotationConfig{
				MaxSizeMB:  cfg.Log.MaxSizeMB,
				MaxBackups: cfg.Log.MaxBackups,
				MaxAgeDays: cfg.Log.MaxAgeDays,
			},
		)
		defer log.Close()
	}

	// One run at a time per repository: concurrent runs would stash and
	// restore the same working tree on top of each other.
	lock := filelock.NewRunLock(gitDir)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			log.Warnf("release run lock: %v", err)
		}
	}()

	sinks := runner.MultiSink{report.NewConsoleSink(os.Stdout, event)}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if cfg.History.Enabled && !noHistory {
		store, err := history.NewStore(resolvePath(gitDir, cfg.History.Path))
		if err != nil {
			// History is observational; a broken store must not block commits.
			log.Warnf("open history store: %v", err)
		} else {
			defer store.Close()
			if err := store.Prune(cfg.History.KeepDays); err != nil {
				log.Warnf("prune history: %v", err)
			}
			sinks = append(sinks, history.NewSink(store, event, log))
		}
	}

	loader := config.NewHookLoader(cfg, event, exec)
	env := gitenv.New(exec)

	log.Infof("starting %s run in %s", event, repoRoot)
	ok, err := runner.New(loader, env, sinks, log).Run(cmd.Context())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s hooks did not pass", event)
	}
	return nil
}

// resolvePath anchors a relative config path under the git directory.
func resolvePath(gitDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(gitDir, path)
}
