package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/projscope/projscope/internal/output"
	"github.com/projscope/projscope/internal/reports"
	"github.com/projscope/projscope/internal/vcs"
)

var commitsCmd = &cobra.Command{
	Use:   "commits",
	Short: "Commit activity reports",
}

var commitsAfterHoursCmd = &cobra.Command{
	Use:   "after-hours [dir]",
	Short: "Commits made outside working hours, weekends and holidays included",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule, err := workSchedule()
		if err != nil {
			return err
		}
		return runCommitsReport(cmd, args, schedule.AfterHours())
	},
}

var commitsDuringWorkCmd = &cobra.Command{
	Use:   "during-work [dir]",
	Short: "Commits made during working hours",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule, err := workSchedule()
		if err != nil {
			return err
		}
		return runCommitsReport(cmd, args, schedule.DuringWorkHours())
	},
}

var commitsByCmd = &cobra.Command{
	Use:   "by <author> [dir]",
	Short: "Commits by an author, matched by name or email",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		author := args[0]
		return runCommitsReport(cmd, args[1:], func(c *vcs.CommitRecord) bool {
			return c.Author().Matches(author)
		})
	},
}

var commitsToCmd = &cobra.Command{
	Use:   "to <path> [dir]",
	Short: "Commits touching a file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		return runCommitsReport(cmd, args[1:], func(c *vcs.CommitRecord) bool {
			return c.Contains(path)
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{commitsAfterHoursCmd, commitsDuringWorkCmd, commitsByCmd, commitsToCmd} {
		cmd.Flags().String("count-by", "", "Tally instead of listing: day, month or year")
		cmd.Flags().Bool("oneline", false, "Compact one-line format")
		commitsCmd.AddCommand(cmd)
	}
}

func runCommitsReport(cmd *cobra.Command, args []string, predicate vcs.Predicate) error {
	ctx := cmd.Context()

	dir, err := resolveProjectDir(args)
	if err != nil {
		return err
	}

	p, err := loadProject(ctx, dir)
	if err != nil {
		return err
	}

	history := p.History().FindBy(predicate)

	formatter := output.NewFormatter(mustBool(cmd, "oneline"), false)

	countBy, _ := cmd.Flags().GetString("count-by")
	switch countBy {
	case "":
		return formatter.FormatHistory(os.Stdout, history)
	case "day":
		return formatter.FormatCounts(os.Stdout, reports.CommitCountsByDay(history))
	case "month":
		return formatter.FormatCounts(os.Stdout, reports.CommitCountsByMonth(history))
	case "year":
		return formatter.FormatCounts(os.Stdout, reports.CommitCountsByYear(history))
	default:
		return fmt.Errorf("count-by must be day, month or year, got %q", countBy)
	}
}

func mustBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}
