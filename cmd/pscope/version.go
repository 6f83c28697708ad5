package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/projscope/projscope/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Parse and compare version strings",
}

var versionParseCmd = &cobra.Command{
	Use:   "parse <version>",
	Short: "Parse a version string and show its components",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := version.Parse(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Version:     %s\n", v)
		fmt.Printf("Major:       %d\n", v.Major)
		fmt.Printf("Minor:       %d\n", v.Minor)
		fmt.Printf("Maintenance: %d\n", v.Maintenance)
		if v.IsQualifierPresent() {
			fmt.Printf("Qualifier:   %s\n", v.Qualifier)
		}
		fmt.Printf("Release:     %t\n", v.IsRelease())
		return nil
	},
}

var versionCompareCmd = &cobra.Command{
	Use:   "compare <a> <b>",
	Short: "Order two versions by precedence",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := version.Parse(args[0])
		if err != nil {
			return err
		}
		b, err := version.Parse(args[1])
		if err != nil {
			return err
		}

		switch result := a.Compare(b); {
		case result < 0:
			fmt.Printf("%s is newer than %s\n", a, b)
		case result > 0:
			fmt.Printf("%s is older than %s\n", a, b)
		default:
			fmt.Printf("%s and %s have equal precedence\n", a, b)
		}
		return nil
	},
}

func init() {
	versionCmd.AddCommand(versionParseCmd)
	versionCmd.AddCommand(versionCompareCmd)
}
