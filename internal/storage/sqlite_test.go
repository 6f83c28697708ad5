package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projscope/projscope/internal/vcs"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	return openTestStoreTTL(t, 0)
}

func openTestStoreTTL(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "pscope.db"), ttl, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestProjectBookmarks(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.TouchProject(ctx, "/repos/widgets", "widgets"))
	require.NoError(t, store.TouchProject(ctx, "/repos/gadgets", "gadgets"))
	require.NoError(t, store.TouchProject(ctx, "/repos/widgets", "widgets"))

	bookmarks, err := store.RecentProjects(ctx, 10)
	require.NoError(t, err)
	require.Len(t, bookmarks, 2, "touching the same path twice keeps one bookmark")
	assert.Equal(t, "widgets", bookmarks[0].Name, "most recently touched first")

	found, err := store.FindProject(ctx, "gadgets")
	require.NoError(t, err)
	assert.Equal(t, "/repos/gadgets", found.Path)

	_, err = store.FindProject(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveProject(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.TouchProject(ctx, "/repos/widgets", "widgets"))
	require.NoError(t, store.RemoveProject(ctx, "/repos/widgets"))

	bookmarks, err := store.RecentProjects(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}

func TestCommitCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	author := vcs.Author{Name: "Jane Doe", Email: "jane@example.com"}

	older, err := vcs.NewCommitRecord(author, time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local), "aaa1111")
	require.NoError(t, err)
	older.WithMessage("first").Add("src/a.go")

	newer, err := vcs.NewCommitRecord(author, time.Date(2024, 2, 1, 10, 0, 0, 0, time.Local), "bbb2222")
	require.NoError(t, err)
	newer.WithMessage("second").Add("src/a.go", "src/b.go")

	require.NoError(t, store.SaveCommits(ctx, "/repos/widgets", []*vcs.CommitRecord{older, newer}))

	records, err := store.Commits(ctx, "/repos/widgets")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "bbb2222", records[0].Hash(), "newest first")
	assert.Equal(t, "second", records[0].Message())
	assert.Equal(t, []string{"src/a.go", "src/b.go"}, records[0].Files())
	assert.Equal(t, author, records[0].Author())
	assert.True(t, records[0].When().Equal(newer.When()))
}

func TestCommitCacheMissReturnsNil(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	records, err := store.Commits(ctx, "/repos/unknown")
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestCommitCacheExpires(t *testing.T) {
	ctx := context.Background()
	store := openTestStoreTTL(t, time.Nanosecond)

	author := vcs.Author{Name: "Jane Doe", Email: "jane@example.com"}
	record, err := vcs.NewCommitRecord(author, time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local), "aaa1111")
	require.NoError(t, err)

	require.NoError(t, store.SaveCommits(ctx, "/repos/widgets", []*vcs.CommitRecord{record}))
	time.Sleep(time.Millisecond)

	records, err := store.Commits(ctx, "/repos/widgets")
	require.NoError(t, err)
	assert.Nil(t, records, "an expired cache reads as a miss")
}

func TestSaveCommitsReplacesPreviousCache(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	author := vcs.Author{Name: "Jane Doe", Email: "jane@example.com"}
	record, err := vcs.NewCommitRecord(author, time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local), "aaa1111")
	require.NoError(t, err)

	require.NoError(t, store.SaveCommits(ctx, "/repos/widgets", []*vcs.CommitRecord{record}))
	require.NoError(t, store.SaveCommits(ctx, "/repos/widgets", nil))

	records, err := store.Commits(ctx, "/repos/widgets")
	require.NoError(t, err)
	assert.Nil(t, records)
}
