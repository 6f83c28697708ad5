// Package storage persists recent-project bookmarks and a commit cache in a
// local sqlite database, so repeat runs against the same repository skip the
// git log walk.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/projscope/projscope/internal/vcs"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps the sqlite database. A positive ttl bounds how long cached
// commit histories are trusted; zero disables expiry.
type Store struct {
	db     *sqlx.DB
	ttl    time.Duration
	logger *logrus.Logger
}

// Open connects to (and if needed creates) the sqlite database at path.
func Open(path string, ttl time.Duration, logger *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("connect to sqlite: %w", err)
	}

	db.Exec("PRAGMA foreign_keys = ON")
	db.Exec("PRAGMA journal_mode = WAL")

	store := &Store{db: db, ttl: ttl, logger: logger}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		path TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		last_used DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS commits (
		repo_path TEXT NOT NULL,
		hash TEXT NOT NULL,
		author TEXT NOT NULL,
		author_email TEXT,
		message TEXT,
		committed_at DATETIME NOT NULL,
		PRIMARY KEY (repo_path, hash)
	);

	CREATE TABLE IF NOT EXISTS commit_files (
		repo_path TEXT NOT NULL,
		hash TEXT NOT NULL,
		file_path TEXT NOT NULL,
		PRIMARY KEY (repo_path, hash, file_path)
	);

	CREATE TABLE IF NOT EXISTS cache_meta (
		repo_path TEXT PRIMARY KEY,
		cached_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_commits_repo ON commits(repo_path);
	CREATE INDEX IF NOT EXISTS idx_commit_files_repo ON commit_files(repo_path, hash);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Bookmark is one recently-used project entry.
type Bookmark struct {
	Path     string    `db:"path"`
	Name     string    `db:"name"`
	LastUsed time.Time `db:"last_used"`
}

// TouchProject records that the project at path was just used.
func (s *Store) TouchProject(ctx context.Context, path, name string) error {
	query := `
		INSERT INTO projects (path, name, last_used) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET name = excluded.name, last_used = excluded.last_used
	`
	_, err := s.db.ExecContext(ctx, query, path, name, time.Now())
	return err
}

// RecentProjects lists bookmarks, most recently used first.
func (s *Store) RecentProjects(ctx context.Context, limit int) ([]Bookmark, error) {
	var bookmarks []Bookmark
	query := `SELECT * FROM projects ORDER BY last_used DESC LIMIT ?`
	if err := s.db.SelectContext(ctx, &bookmarks, query, limit); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// FindProject looks up a bookmark by its project name.
func (s *Store) FindProject(ctx context.Context, name string) (*Bookmark, error) {
	var bookmark Bookmark
	query := `SELECT * FROM projects WHERE name = ? ORDER BY last_used DESC LIMIT 1`
	if err := s.db.GetContext(ctx, &bookmark, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &bookmark, nil
}

// RemoveProject deletes a bookmark and its cached commits.
func (s *Store) RemoveProject(ctx context.Context, path string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, query := range []string{
		`DELETE FROM projects WHERE path = ?`,
		`DELETE FROM commits WHERE repo_path = ?`,
		`DELETE FROM commit_files WHERE repo_path = ?`,
		`DELETE FROM cache_meta WHERE repo_path = ?`,
	} {
		if _, err := tx.ExecContext(ctx, query, path); err != nil {
			return err
		}
	}

	return tx.Commit()
}

type commitRow struct {
	RepoPath    string    `db:"repo_path"`
	Hash        string    `db:"hash"`
	Author      string    `db:"author"`
	AuthorEmail string    `db:"author_email"`
	Message     string    `db:"message"`
	CommittedAt time.Time `db:"committed_at"`
}

// SaveCommits caches the commit records for a repository, replacing any
// previous cache for the same path.
func (s *Store) SaveCommits(ctx context.Context, repoPath string, records []*vcs.CommitRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM commits WHERE repo_path = ?`, repoPath); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM commit_files WHERE repo_path = ?`, repoPath); err != nil {
		return err
	}

	commitQuery := `
		INSERT OR IGNORE INTO commits
		(repo_path, hash, author, author_email, message, committed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	fileQuery := `
		INSERT OR IGNORE INTO commit_files (repo_path, hash, file_path)
		VALUES (?, ?, ?)
	`

	for _, record := range records {
		author := record.Author()
		_, err := tx.ExecContext(ctx, commitQuery,
			repoPath, record.Hash(), author.Name, author.Email,
			record.Message(), record.When())
		if err != nil {
			return err
		}
		for _, path := range record.Files() {
			if _, err := tx.ExecContext(ctx, fileQuery, repoPath, record.Hash(), path); err != nil {
				return err
			}
		}
	}

	metaQuery := `
		INSERT INTO cache_meta (repo_path, cached_at) VALUES (?, ?)
		ON CONFLICT(repo_path) DO UPDATE SET cached_at = excluded.cached_at
	`
	if _, err := tx.ExecContext(ctx, metaQuery, repoPath, time.Now()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.WithField("repo", repoPath).Debugf("cached %d commits", len(records))
	}

	return nil
}

// Commits loads the cached commit records for a repository, newest first.
// An empty or expired cache returns (nil, nil), which callers treat as a miss.
func (s *Store) Commits(ctx context.Context, repoPath string) ([]*vcs.CommitRecord, error) {
	if s.ttl > 0 {
		var cachedAt time.Time
		query := `SELECT cached_at FROM cache_meta WHERE repo_path = ?`
		err := s.db.GetContext(ctx, &cachedAt, query, repoPath)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if time.Since(cachedAt) > s.ttl {
			if s.logger != nil {
				s.logger.WithField("repo", repoPath).Debug("commit cache expired")
			}
			return nil, nil
		}
	}

	var rows []commitRow
	query := `SELECT * FROM commits WHERE repo_path = ? ORDER BY committed_at DESC`
	if err := s.db.SelectContext(ctx, &rows, query, repoPath); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var files []struct {
		Hash     string `db:"hash"`
		FilePath string `db:"file_path"`
	}
	fileQuery := `SELECT hash, file_path FROM commit_files WHERE repo_path = ?`
	if err := s.db.SelectContext(ctx, &files, fileQuery, repoPath); err != nil {
		return nil, err
	}

	filesByHash := make(map[string][]string)
	for _, f := range files {
		filesByHash[f.Hash] = append(filesByHash[f.Hash], f.FilePath)
	}

	records := make([]*vcs.CommitRecord, 0, len(rows))
	for _, row := range rows {
		record, err := vcs.NewCommitRecord(
			vcs.Author{Name: row.Author, Email: row.AuthorEmail},
			row.CommittedAt.Local(),
			row.Hash,
		)
		if err != nil {
			return nil, fmt.Errorf("corrupt commit cache row for %s: %w", row.Hash, err)
		}
		record.WithMessage(row.Message).Add(filesByHash[row.Hash]...)
		records = append(records, record)
	}

	return records, nil
}
