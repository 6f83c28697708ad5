package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/projscope/projscope/internal/output"
	"github.com/projscope/projscope/internal/timeperiods"
)

var filesCmd = &cobra.Command{
	Use:   "files [dir]",
	Short: "Per-file revision report derived from the commit history",
	Long: `Per-file revision report derived from the commit history.

Each row shows the revision count, the dates of the first and latest
revision, and the path.

Examples:
  # Every tracked file
  pscope files

  # Files one developer has touched
  pscope files --author jane@example.com

  # Files changed in a release window
  pscope files --during 2024-03-01--2024-03-31`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFiles,
}

func init() {
	filesCmd.Flags().String("author", "", "Only files modified by this author name or email")
	filesCmd.Flags().String("during", "", "Only files modified during these date periods")
	filesCmd.Flags().String("revision", "", "Only files carrying this revision id")
	filesCmd.Flags().String("path", "", "Show the revision detail of a single file")
}

func runFiles(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dir, err := resolveProjectDir(args)
	if err != nil {
		return err
	}

	p, err := loadProject(ctx, dir)
	if err != nil {
		return err
	}

	set := p.History().ToSourceFileSet()

	if author, _ := cmd.Flags().GetString("author"); author != "" {
		set = set.FindByAuthor(author)
	}
	if revision, _ := cmd.Flags().GetString("revision"); revision != "" {
		set = set.FindByRevisionID(revision)
	}
	if during, _ := cmd.Flags().GetString("during"); during != "" {
		periods, err := timeperiods.Parse(during)
		if err != nil {
			return err
		}
		set = set.FindDuring(periods)
	}

	if path, _ := cmd.Flags().GetString("path"); path != "" {
		file, ok := set.Find(path)
		if !ok {
			return fmt.Errorf("no tracked file %q", path)
		}
		for _, revision := range file.Revisions() {
			short := revision.ID
			if len(short) > 7 {
				short = short[:7]
			}
			fmt.Printf("%s  %s  %s\n", short, revision.When.Format("2006-01-02 15:04"), revision.Author)
		}
		return nil
	}

	formatter := output.NewFormatter(false, false)
	return formatter.FormatSourceFiles(os.Stdout, set)
}
