package hook

import (
	"context"
	"strings"

	"github.com/calder/hookline/internal/subprocess"
)

// stagedFiles lists the files added, copied, or modified in the index,
// optionally filtered to the given filename suffixes.
func stagedFiles(ctx context.Context, exec *subprocess.Executor, suffixes ...string) ([]string, error) {
	res, err := exec.Spawn(ctx, []string{
		"git", "diff", "--cached", "--name-only", "--diff-filter=ACM",
	})
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, &gitError{op: "git diff --cached", stderr: res.Stderr}
	}

	var files []string
	for _, line := range strings.Split(string(res.Stdout), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(suffixes) == 0 || hasAnySuffix(line, suffixes) {
			files = append(files, line)
		}
	}
	return files, nil
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// gitError is a fault from a git subcommand a hook depends on.
type gitError struct {
	op     string
	stderr []byte
}

func (e *gitError) Error() string {
	msg := strings.TrimSpace(string(e.stderr))
	if msg == "" {
		return e.op + " failed"
	}
	return e.op + " failed: " + msg
}
