package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// IsRepository reports whether dir is inside a git working tree.
func IsRepository(dir string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = dir
	return cmd.Run() == nil
}

// RootDir resolves the top-level directory of the working tree containing
// dir.
func RootDir(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s is not a git repository: %w", dir, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// HeadHash returns the full hash of HEAD.
func HeadHash(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "HEAD")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD in %s: %w", dir, err)
	}
	return strings.TrimSpace(string(output)), nil
}
