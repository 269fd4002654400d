// Package hook defines the hook unit contract consumed by the runner,
// the registry of available hook implementations, and the built-in hooks
// that ship with hookline.
package hook

// Status is the normalized verdict of a single hook execution.
type Status int

const (
	// StatusPass indicates the hook completed with no findings.
	StatusPass Status = iota

	// StatusWarn indicates the hook found issues that should not block.
	StatusWarn

	// StatusFail indicates the hook found blocking issues or faulted.
	StatusFail

	// StatusInterrupt indicates the hook was cut short by a user interrupt.
	// No further hooks run after an interrupt.
	StatusInterrupt
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	case StatusInterrupt:
		return "interrupt"
	default:
		return "unknown"
	}
}
