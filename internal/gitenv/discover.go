package gitenv

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// RepoRoot returns the absolute path of the working tree's top level.
func RepoRoot(cmd Commander) (string, error) {
	return revParse(cmd, "--show-toplevel")
}

// GitDir returns the absolute path of the repository's .git directory.
func GitDir(cmd Commander) (string, error) {
	dir, err := revParse(cmd, "--git-dir")
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(dir) {
		root, err := RepoRoot(cmd)
		if err != nil {
			return "", err
		}
		dir = filepath.Join(root, dir)
	}
	return dir, nil
}

func revParse(cmd Commander, flag string) (string, error) {
	res, err := cmd.Spawn(context.Background(), []string{"git", "rev-parse", flag})
	if err != nil {
		return "", fmt.Errorf("git rev-parse %s: %w", flag, err)
	}
	if !res.Success() {
		return "", fmt.Errorf("not inside a git repository: %s", strings.TrimSpace(string(res.Stderr)))
	}
	return strings.TrimSpace(string(res.Stdout)), nil
}
