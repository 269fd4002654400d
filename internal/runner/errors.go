package runner

import "fmt"

// LoadError is a fatal fault from the hook loader. It aborts the run
// before any environment mutation and carries a remediation hint for the
// user. It is one of the two fault classes that escape the runner (the
// other is a cleanup fault).
type LoadError struct {
	// Hint suggests how to fix the configuration problem.
	Hint string

	// Err is the underlying loader fault.
	Err error
}

func (e *LoadError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("failed to load hooks: %v", e.Err)
	}
	return fmt.Sprintf("failed to load hooks: %v\n%s", e.Err, e.Hint)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
