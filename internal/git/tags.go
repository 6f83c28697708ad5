package git

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Tag is an annotated or lightweight tag with the timestamp of the commit it
// points at.
type Tag struct {
	Name   string
	Hash   string
	Tagged time.Time
}

// ListTags returns all tags in the repository at repoPath, in git's default
// refname order. Version ordering is the caller's concern.
func ListTags(ctx context.Context, repoPath string) ([]Tag, error) {
	cmd := exec.CommandContext(ctx, "git", "for-each-ref",
		"--format=%(refname:short)|%(objectname)|%(creatordate:unix)",
		"refs/tags")
	cmd.Dir = repoPath

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("git for-each-ref failed in %s: %w (stderr: %s)", repoPath, err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("git for-each-ref failed in %s: %w", repoPath, err)
	}

	var tags []Tag
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		if len(parts) != 3 {
			continue
		}
		epoch, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			continue
		}
		tags = append(tags, Tag{
			Name:   parts[0],
			Hash:   parts[1],
			Tagged: time.Unix(epoch, 0).Local(),
		})
	}

	return tags, nil
}
