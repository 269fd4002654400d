package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/calder/hookline/internal/config"
	"github.com/calder/hookline/internal/gitenv"
	"github.com/calder/hookline/internal/hook"
	"github.com/calder/hookline/internal/subprocess"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available hooks and where they are configured",
		RunE:  listCommand,
	}

	cmd.Flags().BoolP("long", "l", false, "Include each builtin hook's documentation")
	cmd.Flags().String("config", "", "Path to config file (default: .hookline.yaml at the repository root)")

	return cmd
}

func listCommand(cmd *cobra.Command, args []string) error {
	cfg, err := listConfig(cmd)
	if err != nil {
		return err
	}

	// Invert events so each hook shows which events reference it.
	eventsByHook := make(map[string][]string)
	for event, names := range cfg.Events {
		for _, name := range names {
			eventsByHook[name] = append(eventsByHook[name], event)
		}
	}

	long, _ := cmd.Flags().GetBool("long")
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Builtin hooks:")
	for _, name := range hook.Keys() {
		fmt.Fprintf(out, "  %-22s %s\n", name, eventList(eventsByHook[name]))
		if long {
			if doc := hook.Doc(name); doc != "" {
				fmt.Fprintln(out, indent(doc, "      "))
			}
		}
	}

	var custom []string
	for name, hc := range cfg.Hooks {
		if len(hc.Command) > 0 {
			custom = append(custom, name)
		}
	}
	if len(custom) > 0 {
		sort.Strings(custom)
		fmt.Fprintln(out, "Custom command hooks:")
		for _, name := range custom {
			fmt.Fprintf(out, "  %-22s %s\n", name, eventList(eventsByHook[name]))
		}
	}
	return nil
}

// listConfig loads configuration for list, tolerating running outside a
// repository by falling back to defaults.
func listConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		root, err := gitenv.RepoRoot(&subprocess.Executor{})
		if err != nil {
			return config.DefaultConfig(), nil
		}
		configPath = filepath.Join(root, config.DefaultConfigName)
	}
	return config.LoadConfig(configPath)
}

func eventList(events []string) string {
	if len(events) == 0 {
		return "(not configured)"
	}
	sort.Strings(events)
	s := events[0]
	for _, e := range events[1:] {
		s += ", " + e
	}
	return s
}

func indent(text, prefix string) string {
	out := prefix
	for _, r := range text {
		out += string(r)
		if r == '\n' {
			out += prefix
		}
	}
	return out
}
