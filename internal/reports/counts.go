// Package reports derives summary views from a project's commit history:
// commit counts per calendar unit, work-schedule activity, release timelines
// and a rough development-effort estimate.
package reports

import (
	"github.com/projscope/projscope/internal/vcs"
)

// CountRow is one bucket in a commit-count report.
type CountRow struct {
	Label   string
	Commits int
}

// CommitCountsByDay tallies commits per calendar day, oldest bucket first.
func CommitCountsByDay(history *vcs.CommitHistory) []CountRow {
	return countRows(history.GroupByDay())
}

// CommitCountsByMonth tallies commits per calendar month, oldest bucket first.
func CommitCountsByMonth(history *vcs.CommitHistory) []CountRow {
	return countRows(history.GroupByMonth())
}

// CommitCountsByYear tallies commits per calendar year, oldest bucket first.
func CommitCountsByYear(history *vcs.CommitHistory) []CountRow {
	return countRows(history.GroupByYear())
}

func countRows(groups []vcs.Group) []CountRow {
	rows := make([]CountRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, CountRow{Label: g.Key.String(), Commits: g.Size()})
	}
	return rows
}
