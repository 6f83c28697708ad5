package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/projscope/projscope/internal/git"
	"github.com/projscope/projscope/internal/output"
	"github.com/projscope/projscope/internal/reports"
)

var releasesCmd = &cobra.Command{
	Use:   "releases [dir]",
	Short: "Release timeline built from version tags",
	Long: `Release timeline built from version tags.

Tags whose names parse as versions (a leading "v" is tolerated) are ordered
by version precedence, newest first, with the date of the tagged commit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReleases,
}

func init() {
	releasesCmd.Flags().Bool("latest", false, "Show only the highest-precedence release")
}

func runReleases(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dir, err := resolveProjectDir(args)
	if err != nil {
		return err
	}

	p, err := loadProject(ctx, dir)
	if err != nil {
		return err
	}

	tags, err := git.ListTags(ctx, dir)
	if err != nil {
		return err
	}

	releases := reports.Releases(tags, p.History())

	if latest, _ := cmd.Flags().GetBool("latest"); latest {
		release, ok := reports.LatestRelease(releases)
		if !ok {
			fmt.Println("No releases found.")
			return nil
		}
		fmt.Printf("%s  %s  %s\n", release.Version, release.Date.Format("2006-01-02"), release.ShortHash())
		return nil
	}

	formatter := output.NewFormatter(false, false)
	return formatter.FormatReleases(os.Stdout, releases)
}
