package config

import (
	"fmt"

	"github.com/calder/hookline/internal/hook"
	"github.com/calder/hookline/internal/runner"
	"github.com/calder/hookline/internal/subprocess"
)

// HookLoader builds the ordered hook units for one lifecycle event from
// the merged configuration and the hook registry.
type HookLoader struct {
	cfg   *Config
	event string
	exec  *subprocess.Executor
	skips map[string]bool
}

// NewHookLoader creates a loader for the given event. Skip requests are
// resolved from the environment once, at construction.
func NewHookLoader(cfg *Config, event string, exec *subprocess.Executor) *HookLoader {
	return &HookLoader{
		cfg:   cfg,
		event: event,
		exec:  exec,
		skips: SkipListFromEnv(),
	}
}

// LoadHooks instantiates the configured hooks in config order. An
// unknown hook name is a load error carrying a remediation hint.
func (l *HookLoader) LoadHooks() ([]hook.Unit, error) {
	names, ok := l.cfg.Events[l.event]
	if !ok {
		return nil, &runner.LoadError{
			Hint: fmt.Sprintf("Add an %q entry under 'events' in %s.", l.event, DefaultConfigName),
			Err:  fmt.Errorf("no hooks configured for event %q", l.event),
		}
	}

	units := make([]hook.Unit, 0, len(names))
	for _, name := range names {
		hc := l.cfg.Hooks[name]
		settings := hook.Settings{
			Enabled:  hc.Enabled == nil || *hc.Enabled,
			Required: hc.Required,
			WarnOnly: hc.WarnOnly,
			Skipped:  l.skips["all"] || l.skips[name],
			Command:  hc.Command,
		}

		var unit hook.Unit
		switch {
		case len(hc.Command) > 0:
			unit = hook.NewCommandHook(name, settings, l.exec)
		case hook.Known(name):
			var err error
			unit, err = hook.Create(name, settings, l.exec)
			if err != nil {
				return nil, &runner.LoadError{
					Hint: "Run 'hookline list' to see available hooks.",
					Err:  err,
				}
			}
		default:
			return nil, &runner.LoadError{
				Hint: fmt.Sprintf("Hook %q is neither a builtin nor declares a 'command' in %s. Run 'hookline list' to see available hooks.", name, DefaultConfigName),
				Err:  fmt.Errorf("unknown hook %q for event %q", name, l.event),
			}
		}
		units = append(units, unit)
	}
	return units, nil
}

var _ runner.Loader = (*HookLoader)(nil)
