package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/projscope/projscope/internal/config"
	"github.com/projscope/projscope/internal/git"
	"github.com/projscope/projscope/internal/logging"
	"github.com/projscope/projscope/internal/project"
	"github.com/projscope/projscope/internal/reports"
	"github.com/projscope/projscope/internal/session"
	"github.com/projscope/projscope/internal/storage"
	"github.com/projscope/projscope/internal/timeperiods"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	cfgFile string
	verbose bool
	logger  *logrus.Logger
	cfg     *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pscope",
	Short: "projscope - introspect a project's build metadata and commit history",
	Long: `projscope answers questions about a software project from its build
descriptor and git history: who committed what and when, which files churn,
when releases were cut, and how much development time the history represents.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logrus.New()
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.WarnLevel)
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			logger.WithError(err).Warn("Failed to load config, using defaults")
			cfg = config.Default()
		}

		level := slogLevel(cfg.Log.Level)
		if verbose {
			level = slog.LevelDebug
		}
		if err := logging.Initialize(logging.Config{
			Level:      level,
			OutputFile: cfg.Log.File,
			JSONFormat: cfg.Log.JSON,
		}); err != nil {
			logger.WithError(err).Warn("Failed to initialize structured logging")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.pscope/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.SetVersionTemplate(`projscope {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(commitsCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(releasesCmd)
	rootCmd.AddCommand(versionCmd)
}

func slogLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openStore() (*storage.Store, error) {
	return storage.Open(cfg.Storage.DatabasePath, cfg.Storage.CacheTTL, logger)
}

func openSession() (*session.Store, error) {
	return session.Open(cfg.Storage.SessionPath)
}

// resolveProjectDir picks the project directory: an explicit argument wins,
// then the session's active project, then the working directory when it is
// inside a git repository.
func resolveProjectDir(args []string) (string, error) {
	if len(args) > 0 {
		return filepath.Abs(args[0])
	}

	sessions, err := openSession()
	if err == nil {
		defer sessions.Close()
		if state, err := sessions.Current(); err == nil && state != nil {
			return state.ProjectDir, nil
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if git.IsRepository(cwd) {
		return git.RootDir(cwd)
	}

	return "", fmt.Errorf("no project selected; run 'pscope project set <dir>' or pass a directory")
}

// loadProject loads the project at dir, using the commit cache and updating
// the recent-project bookmarks.
func loadProject(ctx context.Context, dir string) (*project.Project, error) {
	store, err := openStore()
	if err != nil {
		logger.WithError(err).Warn("Storage unavailable, loading without cache")
		loader := project.NewLoader(nil, logging.Default())
		return loader.Load(ctx, dir)
	}
	defer store.Close()

	loader := project.NewLoader(store, logging.Default())
	p, err := loader.Load(ctx, dir)
	if err != nil {
		return nil, err
	}

	if err := store.TouchProject(ctx, dir, p.Name); err != nil {
		logger.WithError(err).Warn("Failed to update recent projects")
	}

	return p, nil
}

func workSchedule() (reports.Schedule, error) {
	schedule := reports.Schedule{
		DayStartHour: cfg.Work.DayStartHour,
		DayEndHour:   cfg.Work.DayEndHour,
	}
	if cfg.Work.Holidays != "" {
		holidays, err := timeperiods.Parse(cfg.Work.Holidays)
		if err != nil {
			return schedule, fmt.Errorf("work.holidays: %w", err)
		}
		schedule.Holidays = holidays
	}
	return schedule, nil
}

func estimateRates() reports.Rates {
	return reports.Rates{
		HourlyRate:   cfg.Estimate.HourlyRate,
		HoursPerDay:  cfg.Estimate.HoursPerDay,
		DaysPerMonth: cfg.Estimate.DaysPerMonth,
	}
}
