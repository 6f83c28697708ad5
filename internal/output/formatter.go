// Package output renders commit histories, source files and reports as plain
// text tables sized to the terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/projscope/projscope/internal/project"
	"github.com/projscope/projscope/internal/reports"
	"github.com/projscope/projscope/internal/vcs"
)

const defaultWidth = 100

// Formatter formats query results for the terminal.
type Formatter struct {
	oneline   bool
	showFiles bool
	width     int
}

// NewFormatter creates a formatter. oneline collapses each commit to a single
// row; showFiles appends the touched file paths under each commit.
func NewFormatter(oneline, showFiles bool) *Formatter {
	return &Formatter{
		oneline:   oneline,
		showFiles: showFiles,
		width:     terminalWidth(),
	}
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// FormatHistory writes the commits of a history, newest first.
func (f *Formatter) FormatHistory(w io.Writer, history *vcs.CommitHistory) error {
	if history.IsEmpty() {
		fmt.Fprintln(w, "No commits found.")
		return nil
	}

	for _, record := range history.Records() {
		if f.oneline {
			f.formatOneline(w, record)
		} else {
			f.formatRecord(w, record)
		}
	}

	return nil
}

func (f *Formatter) formatRecord(w io.Writer, record *vcs.CommitRecord) {
	fmt.Fprintf(w, "[%s] %s (%s)\n",
		record.When().Format("2006-01-02 15:04"),
		record.ShortHash(),
		record.Author())

	if msg := record.Message(); msg != "" {
		fmt.Fprintf(w, "   %s\n", firstLine(msg))
	}

	if f.showFiles {
		for _, path := range record.Files() {
			fmt.Fprintf(w, "      %s\n", path)
		}
	}

	fmt.Fprintln(w)
}

func (f *Formatter) formatOneline(w io.Writer, record *vcs.CommitRecord) {
	author := truncate(record.Author().Name, 20)

	msg := firstLine(record.Message())
	// Budget: hash(7) + date(10) + author(20) + separators.
	if budget := f.width - 45; budget > 10 {
		msg = truncate(msg, budget)
	}

	fmt.Fprintf(w, "%s  %s  %-20s  %s\n",
		record.ShortHash(),
		record.When().Format("2006-01-02"),
		author,
		msg)
}

// FormatSourceFiles writes one row per file with its revision count and the
// span between the first and latest revision.
func (f *Formatter) FormatSourceFiles(w io.Writer, set *vcs.SourceFileSet) error {
	files := set.Files()
	if len(files) == 0 {
		fmt.Fprintln(w, "No files found.")
		return nil
	}

	for _, file := range files {
		first, _ := file.FirstRevision()
		last, _ := file.LastRevision()
		fmt.Fprintf(w, "%4d  %s .. %s  %s\n",
			len(file.RevisionIDs()),
			first.When.Format("2006-01-02"),
			last.When.Format("2006-01-02"),
			file.Path())
	}

	return nil
}

// FormatCounts writes a commit-count table.
func (f *Formatter) FormatCounts(w io.Writer, rows []reports.CountRow) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No commits found.")
		return nil
	}

	total := 0
	for _, row := range rows {
		fmt.Fprintf(w, "%-12s %6d\n", row.Label, row.Commits)
		total += row.Commits
	}
	fmt.Fprintf(w, "%-12s %6d\n", "total", total)

	return nil
}

// FormatReleases writes the release timeline.
func (f *Formatter) FormatReleases(w io.Writer, releases []reports.Release) error {
	if len(releases) == 0 {
		fmt.Fprintln(w, "No releases found.")
		return nil
	}

	for _, release := range releases {
		fmt.Fprintf(w, "%-16s %s  %s  (%s)\n",
			release.Version,
			release.Date.Format("2006-01-02"),
			release.ShortHash(),
			release.TagName)
	}

	return nil
}

// FormatProject writes the project description, the attached metadata and the
// development estimate.
func (f *Formatter) FormatProject(w io.Writer, p *project.Project, estimate reports.DevelopmentEstimate, rates reports.Rates) error {
	fmt.Fprintf(w, "Project:     %s\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", p.Description)
	}
	if p.Directory != "" {
		fmt.Fprintf(w, "Directory:   %s\n", p.Directory)
	}
	if p.Artifact.ID != "" {
		fmt.Fprintf(w, "Artifact:    %s\n", p.Artifact)
	}
	if p.Version != nil {
		fmt.Fprintf(w, "Version:     %s\n", p.Version)
	}
	if p.Organization != nil {
		fmt.Fprintf(w, "Organization: %s\n", p.Organization)
	}
	for _, dev := range p.Developers {
		fmt.Fprintf(w, "Developer:   %s\n", dev)
	}
	for _, license := range p.Licenses {
		fmt.Fprintf(w, "License:     %s\n", license)
	}
	if p.IssueTracker != "" {
		fmt.Fprintf(w, "Issues:      %s\n", p.IssueTracker)
	}
	if p.SourceRepository != "" {
		fmt.Fprintf(w, "Source:      %s\n", p.SourceRepository)
	}

	if estimate.TotalCommits == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Commits:     %d (%s .. %s)\n",
		estimate.TotalCommits,
		estimate.FirstCommit.Format("2006-01-02"),
		estimate.LastCommit.Format("2006-01-02"))
	fmt.Fprintf(w, "Active days: %d of %d calendar days\n", estimate.ActiveDays, estimate.CalendarDays)
	fmt.Fprintf(w, "Estimate:    %.1f working months, $%.2f\n", estimate.Months(rates), estimate.EstimatedCost)

	return nil
}

// truncate shortens s to at most max runes, marking the cut with an
// ellipsis. Slicing by rune keeps multi-byte names and messages intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
