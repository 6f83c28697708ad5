package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/projscope/projscope/internal/git"
	"github.com/projscope/projscope/internal/output"
	"github.com/projscope/projscope/internal/reports"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Select and describe projects",
}

var projectSetCmd = &cobra.Command{
	Use:   "set <dir>",
	Short: "Make the project at <dir> the active one",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectSet,
}

var projectCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the active project",
	Args:  cobra.NoArgs,
	RunE:  runProjectCurrent,
}

var projectDescribeCmd = &cobra.Command{
	Use:   "describe [dir]",
	Short: "Show project metadata and a development estimate",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProjectDescribe,
}

var projectRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently used projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectRecent,
}

func init() {
	projectRecentCmd.Flags().IntP("limit", "n", 10, "Max projects to list")

	projectCmd.AddCommand(projectSetCmd)
	projectCmd.AddCommand(projectCurrentCmd)
	projectCmd.AddCommand(projectDescribeCmd)
	projectCmd.AddCommand(projectRecentCmd)
}

func runProjectSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dir, err := resolveProjectDir(args)
	if err != nil {
		return err
	}

	p, err := loadProject(ctx, dir)
	if err != nil {
		return err
	}

	sessions, err := openSession()
	if err != nil {
		return err
	}
	defer sessions.Close()

	state, err := sessions.Activate(p.Name, dir)
	if err != nil {
		return err
	}

	fmt.Printf("Active project: %s (%s)\n", state.ProjectName, state.ProjectDir)
	return nil
}

func runProjectCurrent(cmd *cobra.Command, args []string) error {
	sessions, err := openSession()
	if err != nil {
		return err
	}
	defer sessions.Close()

	state, err := sessions.Current()
	if err != nil {
		return err
	}
	if state == nil {
		fmt.Println("No active project. Run 'pscope project set <dir>'.")
		return nil
	}

	fmt.Printf("%s (%s), active since %s\n",
		state.ProjectName, state.ProjectDir, state.ActivatedAt.Format("2006-01-02 15:04"))

	if head, err := git.HeadHash(cmd.Context(), state.ProjectDir); err == nil {
		fmt.Printf("HEAD: %s\n", head)
	}
	return nil
}

func runProjectDescribe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dir, err := resolveProjectDir(args)
	if err != nil {
		return err
	}

	p, err := loadProject(ctx, dir)
	if err != nil {
		return err
	}

	rates := estimateRates()
	estimate := reports.Estimate(p.History(), rates)

	formatter := output.NewFormatter(false, false)
	return formatter.FormatProject(os.Stdout, p, estimate, rates)
}

func runProjectRecent(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	bookmarks, err := store.RecentProjects(ctx, limit)
	if err != nil {
		return err
	}
	if len(bookmarks) == 0 {
		fmt.Println("No recent projects.")
		return nil
	}

	for _, b := range bookmarks {
		fmt.Printf("%-20s %s  %s\n", b.Name, b.LastUsed.Format("2006-01-02 15:04"), b.Path)
	}
	return nil
}
