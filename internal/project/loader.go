package project

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/projscope/projscope/internal/git"
	"github.com/projscope/projscope/internal/vcs"
	"golang.org/x/sync/errgroup"
)

// CommitCache is an optional store of previously loaded commit records per
// repository path. A cache miss returns (nil, nil).
type CommitCache interface {
	Commits(ctx context.Context, repoPath string) ([]*vcs.CommitRecord, error)
	SaveCommits(ctx context.Context, repoPath string, records []*vcs.CommitRecord) error
}

// Loader resolves a directory into a fully populated Project: descriptor
// metadata plus the commit history, loaded concurrently.
type Loader struct {
	cache  CommitCache
	logger *slog.Logger
}

// NewLoader creates a loader. cache may be nil to always read from git.
func NewLoader(cache CommitCache, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{cache: cache, logger: logger}
}

// Load builds the project for dir. The descriptor parse and the commit
// history load run concurrently; either failure fails the load.
func (l *Loader) Load(ctx context.Context, dir string) (*Project, error) {
	if !git.IsRepository(dir) {
		return nil, fmt.Errorf("%s is not a git repository", dir)
	}

	var (
		proj    *Project
		records []*vcs.CommitRecord
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		proj, err = FromDir(dir)
		return err
	})

	g.Go(func() error {
		var err error
		records, err = l.loadCommits(ctx, dir)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.Info("loaded project", "name", proj.Name, "commits", len(records))

	return proj.WithHistory(vcs.NewCommitHistory(records...)), nil
}

func (l *Loader) loadCommits(ctx context.Context, dir string) ([]*vcs.CommitRecord, error) {
	if l.cache != nil {
		cached, err := l.cache.Commits(ctx, dir)
		if err != nil {
			l.logger.Warn("commit cache read failed, falling back to git", "error", err)
		} else if len(cached) > 0 {
			l.logger.Debug("commit cache hit", "repo", dir, "commits", len(cached))
			return cached, nil
		}
	}

	records, err := git.LoadCommits(ctx, dir)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.SaveCommits(ctx, dir, records); err != nil {
			l.logger.Warn("commit cache write failed", "error", err)
		}
	}

	return records, nil
}
