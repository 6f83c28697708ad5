package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/projscope/projscope/internal/output"
	"github.com/projscope/projscope/internal/timeperiods"
	"github.com/projscope/projscope/internal/vcs"
)

var logCmd = &cobra.Command{
	Use:   "log [dir]",
	Short: "Query the project's commit history",
	Long: `Query the project's commit history.

Filters compose; a commit must satisfy all of them to show up.

Examples:
  # Everything, newest first
  pscope log

  # One author's commits in a window
  pscope log --author jane --since 2024-01-01 --until 2024-06-30

  # Commits during specific periods, holidays excluded
  pscope log --during 2024-03-01--2024-03-31 --exclude-dates 2024-03-29

  # History reachable from a commit
  pscope log --before-hash 1a2b3c4d...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLog,
}

func init() {
	logCmd.Flags().String("hash", "", "Show the single commit with this hash")
	logCmd.Flags().String("author", "", "Filter by author name or email")
	logCmd.Flags().String("file", "", "Filter to commits touching this path")
	logCmd.Flags().String("after-hash", "", "Commits from newest down to this hash")
	logCmd.Flags().String("before-hash", "", "Commits from this hash through the oldest")
	logCmd.Flags().String("since", "", "Earliest date, yyyy-mm-dd inclusive")
	logCmd.Flags().String("until", "", "Latest date, yyyy-mm-dd inclusive")
	logCmd.Flags().String("during", "", "Date periods, e.g. 2024-01-01,2024-03-01--2024-03-31")
	logCmd.Flags().String("exclude-dates", "", "Date periods to exclude")
	logCmd.Flags().IntP("limit", "n", 0, "Max commits to show (0 = all)")
	logCmd.Flags().Bool("oneline", false, "Compact one-line format")
	logCmd.Flags().Bool("show-files", false, "List the files each commit touched")
	logCmd.Flags().Bool("count", false, "Print only the number of matching commits")
}

func runLog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dir, err := resolveProjectDir(args)
	if err != nil {
		return err
	}

	p, err := loadProject(ctx, dir)
	if err != nil {
		return err
	}
	history := p.History()

	hash, _ := cmd.Flags().GetString("hash")
	if hash != "" {
		record := history.FindByHash(hash)
		if record == nil {
			return fmt.Errorf("no commit with hash %q", hash)
		}
		history = vcs.NewCommitHistory(record)
	}

	if afterHash, _ := cmd.Flags().GetString("after-hash"); afterHash != "" {
		history = history.AllAfterHash(afterHash)
	}
	if beforeHash, _ := cmd.Flags().GetString("before-hash"); beforeHash != "" {
		history = history.AllBeforeHash(beforeHash)
	}

	predicate, err := buildLogPredicate(cmd)
	if err != nil {
		return err
	}
	if predicate != nil {
		history = history.FindBy(predicate)
	}

	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && history.Size() > limit {
		history = vcs.NewCommitHistory(history.Records()[:limit]...)
	}

	if count, _ := cmd.Flags().GetBool("count"); count {
		fmt.Println(history.Size())
		return nil
	}

	oneline, _ := cmd.Flags().GetBool("oneline")
	showFiles, _ := cmd.Flags().GetBool("show-files")
	formatter := output.NewFormatter(oneline, showFiles)
	return formatter.FormatHistory(os.Stdout, history)
}

// buildLogPredicate composes the author, path and date-window flags into a
// single predicate. Returns nil when no such flag was given.
func buildLogPredicate(cmd *cobra.Command) (vcs.Predicate, error) {
	var predicate vcs.Predicate

	combine := func(next vcs.Predicate) {
		if predicate == nil {
			predicate = next
		} else {
			predicate = predicate.And(next)
		}
	}

	if author, _ := cmd.Flags().GetString("author"); author != "" {
		combine(func(c *vcs.CommitRecord) bool { return c.Author().Matches(author) })
	}

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		combine(func(c *vcs.CommitRecord) bool { return c.Contains(path) })
	}

	since, _ := cmd.Flags().GetString("since")
	until, _ := cmd.Flags().GetString("until")
	if since != "" || until != "" {
		window, err := parseWindow(since, until)
		if err != nil {
			return nil, err
		}
		combine(func(c *vcs.CommitRecord) bool { return window.Contains(c.When()) })
	}

	if during, _ := cmd.Flags().GetString("during"); during != "" {
		periods, err := timeperiods.Parse(during)
		if err != nil {
			return nil, err
		}
		combine(func(c *vcs.CommitRecord) bool { return periods.IsDuring(c.When()) })
	}

	if excluded, _ := cmd.Flags().GetString("exclude-dates"); excluded != "" {
		periods, err := timeperiods.Parse(excluded)
		if err != nil {
			return nil, err
		}
		combine(func(c *vcs.CommitRecord) bool { return !periods.IsDuring(c.When()) })
	}

	return predicate, nil
}

// parseWindow builds the [since, until] range, substituting open ends. Each
// flag takes exactly one date; ranges belong to --during.
func parseWindow(since, until string) (timeperiods.DateRange, error) {
	start := time.Date(1970, 1, 1, 0, 0, 0, 0, time.Local)
	end := time.Now().AddDate(100, 0, 0)

	if since != "" {
		d, err := parseFlagDate("since", since)
		if err != nil {
			return timeperiods.DateRange{}, err
		}
		start = d
	}
	if until != "" {
		d, err := parseFlagDate("until", until)
		if err != nil {
			return timeperiods.DateRange{}, err
		}
		end = d
	}

	return timeperiods.NewDateRange(start, end)
}

func parseFlagDate(flag, value string) (time.Time, error) {
	if strings.Contains(value, "--") {
		return time.Time{}, fmt.Errorf("--%s expects a single yyyy-mm-dd date, got %q (use --during for ranges)", flag, value)
	}
	r, err := timeperiods.ParseDateRange(value)
	if err != nil {
		return time.Time{}, err
	}
	return r.Start, nil
}
