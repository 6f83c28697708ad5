package vcs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

// fourCommits builds a history of four distinct commits: two on the same day,
// one the following month, one the following year.
func fourCommits(t *testing.T) *CommitHistory {
	t.Helper()
	c1 := mustRecord(t, "c1hash0000000000000000000000000000000000", time.Date(2024, 1, 5, 9, 0, 0, 0, time.Local))
	c2 := mustRecord(t, "c2hash0000000000000000000000000000000000", time.Date(2024, 1, 5, 15, 0, 0, 0, time.Local))
	c3 := mustRecord(t, "c3hash0000000000000000000000000000000000", day(2024, 2, 10))
	c4 := mustRecord(t, "c4hash0000000000000000000000000000000000", day(2025, 1, 1))
	return NewCommitHistory(c3, c1, c4, c2)
}

func TestNewCommitHistorySortsDescendingAndDropsNils(t *testing.T) {
	older := mustRecord(t, "older00", day(2024, 1, 1))
	newer := mustRecord(t, "newer00", day(2024, 6, 1))

	history := NewCommitHistory(older, nil, newer, nil)

	require.Equal(t, 2, history.Size())
	records := history.Records()
	assert.Equal(t, "newer00", records[0].Hash())
	assert.Equal(t, "older00", records[1].Hash())
}

func TestRecordsAreStrictlyDescending(t *testing.T) {
	history := fourCommits(t)
	records := history.Records()
	for i := 1; i < len(records); i++ {
		assert.True(t, records[i-1].When().After(records[i].When()),
			"records[%d] must be newer than records[%d]", i-1, i)
	}
}

func TestFindByNilPredicateFailsClosed(t *testing.T) {
	history := fourCommits(t)
	assert.True(t, history.FindBy(nil).IsEmpty())
}

func TestFindByPredicatePartitionsHistory(t *testing.T) {
	history := fourCommits(t)

	in2024 := Predicate(func(c *CommitRecord) bool { return c.When().Year() == 2024 })

	matched := history.FindBy(in2024)
	assert.Equal(t, 3, matched.Size())

	// Refiltering the matched set with the negation must leave nothing.
	assert.True(t, matched.FindBy(in2024.Negate()).IsEmpty())
}

func TestFindByAuthor(t *testing.T) {
	history := fourCommits(t)
	assert.Equal(t, history.Size(), history.FindByAuthor(testAuthor).Size())
	assert.True(t, history.FindByAuthor(Author{Name: "Nobody"}).IsEmpty())
}

func TestFindByDateIgnoresTimeOfDay(t *testing.T) {
	history := fourCommits(t)
	assert.Equal(t, 2, history.FindByDate(time.Date(2024, 1, 5, 23, 59, 0, 0, time.Local)).Size())
	assert.True(t, history.FindByDate(day(2024, 3, 1)).IsEmpty())
}

func TestFindByHashIsCaseInsensitive(t *testing.T) {
	history := fourCommits(t)
	record := history.FindByHash("C3HASH0000000000000000000000000000000000")
	require.NotNil(t, record)
	assert.Equal(t, "c3hash0000000000000000000000000000000000", record.Hash())

	assert.Nil(t, history.FindByHash("deadbeef"))
}

func TestFindBySourceFile(t *testing.T) {
	c1 := mustRecord(t, "c1hash0", day(2024, 1, 1)).Add("src/a.go")
	c2 := mustRecord(t, "c2hash0", day(2024, 2, 1)).Add("src/b.go")
	history := NewCommitHistory(c1, c2)

	found := history.FindBySourceFile("src/a.go")
	require.Equal(t, 1, found.Size())
	assert.Equal(t, "c1hash0", found.Records()[0].Hash())
}

func TestHashSlicing(t *testing.T) {
	history := fourCommits(t)

	// Canonical order: c4, c3, c2, c1.
	after := history.AllAfterHash("c3hash0000000000000000000000000000000000")
	require.Equal(t, 2, after.Size())
	assert.Equal(t, "c4hash0000000000000000000000000000000000", after.Records()[0].Hash())
	assert.Equal(t, "c3hash0000000000000000000000000000000000", after.Records()[1].Hash())

	before := history.AllBeforeHash("c3hash0000000000000000000000000000000000")
	require.Equal(t, 3, before.Size())
	assert.Equal(t, "c3hash0000000000000000000000000000000000", before.Records()[0].Hash())
	assert.Equal(t, "c1hash0000000000000000000000000000000000", before.Records()[2].Hash())

	// Both slices include the target, so together they rebuild the history.
	assert.Equal(t, history.Size(), after.Size()+before.Size()-1)
}

func TestHashSlicingFailsClosedOnBlankOrUnknownHash(t *testing.T) {
	history := fourCommits(t)

	assert.True(t, history.AllAfterHash("").IsEmpty())
	assert.True(t, history.AllBeforeHash("   ").IsEmpty())
	assert.True(t, history.AllAfterHash("deadbeef").IsEmpty())
	assert.True(t, history.AllBeforeHash("deadbeef").IsEmpty())
}

func TestFirstIsOldestAndLastIsNewest(t *testing.T) {
	history := fourCommits(t)

	assert.Equal(t, "c1hash0000000000000000000000000000000000", history.First().Hash())
	assert.Equal(t, "c4hash0000000000000000000000000000000000", history.Last().Hash())

	empty := NewCommitHistory()
	assert.Nil(t, empty.First())
	assert.Nil(t, empty.Last())
}

func TestSortMutatesInPlace(t *testing.T) {
	history := fourCommits(t)

	history.Sort(func(a, b *CommitRecord) bool { return a.When().Before(b.When()) })

	records := history.Records()
	assert.Equal(t, "c1hash0000000000000000000000000000000000", records[0].Hash())
	assert.Equal(t, "c4hash0000000000000000000000000000000000", records[len(records)-1].Hash())
}

func TestGroupByCalendarUnits(t *testing.T) {
	history := fourCommits(t)

	days := history.GroupByDay()
	require.Len(t, days, 3)
	assert.Equal(t, 2, days[0].Size(), "two commits share 2024-01-05")
	assert.Equal(t, 1, days[1].Size())
	assert.Equal(t, 1, days[2].Size())

	assert.Len(t, history.GroupByMonth(), 3)
	assert.Len(t, history.GroupByYear(), 2)
}

func TestGroupByNilKeyFunction(t *testing.T) {
	history := fourCommits(t)
	assert.Nil(t, history.GroupBy(nil))
}

func TestGroupByMergesDuplicateHashes(t *testing.T) {
	record := mustRecord(t, "dup0000", day(2024, 1, 1))
	history := NewCommitHistory(record, record)

	groups := history.GroupByDay()
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].Size())
}

func TestToSourceFileSetOrdersRevisionsAscending(t *testing.T) {
	older := mustRecord(t, "c1hash0", day(2024, 1, 1)).Add("A.java")
	newer := mustRecord(t, "c2hash0", day(2024, 2, 1)).Add("A.java", "B.java")
	history := NewCommitHistory(newer, older)

	set := history.ToSourceFileSet()
	require.Equal(t, 2, set.Size())

	file, ok := set.Find("A.java")
	require.True(t, ok)

	first, ok := file.FirstRevision()
	require.True(t, ok)
	assert.Equal(t, "c1hash0", first.ID)

	last, ok := file.LastRevision()
	require.True(t, ok)
	assert.Equal(t, "c2hash0", last.ID)
}
