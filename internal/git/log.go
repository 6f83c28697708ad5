// Package git loads a repository's commit log by shelling out to the git
// binary. It is the only place raw revision data enters the program; the
// rest of the code consumes the materialized vcs.CommitHistory.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/projscope/projscope/internal/vcs"
)

// Each record opens with \x1e; \x1f separates the pipe-delimited header from
// the full message and the message from the name-only file list. The explicit
// separators keep multi-line message bodies apart from file paths.
const (
	logFormat       = "%x1e%H|%an|%ae|%at|%ct%x1f%B%x1f"
	recordSeparator = "\x1e"
	fieldSeparator  = "\x1f"
)

// LoadCommits executes git log and materializes the full commit history of
// the repository at repoPath, newest first.
func LoadCommits(ctx context.Context, repoPath string) ([]*vcs.CommitRecord, error) {
	cmd := exec.CommandContext(ctx, "git", "log",
		"--all",
		"--name-only",
		"--pretty=format:"+logFormat)
	cmd.Dir = repoPath

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("git log failed in %s: %w (stderr: %s)", repoPath, err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("git log failed in %s: %w", repoPath, err)
	}

	return parseLogOutput(string(output))
}

// parseLogOutput parses the raw git log output into commit records.
func parseLogOutput(output string) ([]*vcs.CommitRecord, error) {
	var commits []*vcs.CommitRecord

	for _, chunk := range strings.Split(output, recordSeparator) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		record, err := parseRecord(chunk)
		if err != nil {
			return nil, err
		}
		commits = append(commits, record)
	}

	return commits, nil
}

// parseRecord parses one \x1f-separated record: header, message body, and
// the touched file paths one per line.
func parseRecord(chunk string) (*vcs.CommitRecord, error) {
	fields := strings.SplitN(chunk, fieldSeparator, 3)
	if len(fields) != 3 {
		return nil, fmt.Errorf("malformed git log record %q", firstLineOf(chunk))
	}

	parts := strings.SplitN(fields[0], "|", 5)
	if len(parts) != 5 || len(parts[0]) < 40 || !isHex(parts[0]) {
		return nil, fmt.Errorf("malformed git log header %q", fields[0])
	}

	authorEpoch, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed author timestamp in git log header %q", fields[0])
	}
	committerEpoch, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed committer timestamp in git log header %q", fields[0])
	}

	// The commit timestamp is the earliest of the author and committer
	// times, so amended or rebased commits keep their original date.
	epoch := min(authorEpoch, committerEpoch)
	when := time.Unix(epoch, 0).Local()

	record, err := vcs.NewCommitRecord(vcs.Author{Name: parts[1], Email: parts[2]}, when, parts[0])
	if err != nil {
		return nil, err
	}
	record.WithMessage(strings.TrimRight(fields[1], "\n"))

	for _, line := range strings.Split(fields[2], "\n") {
		if path := strings.TrimSpace(line); path != "" {
			record.Add(path)
		}
	}

	return record, nil
}

func firstLineOf(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
