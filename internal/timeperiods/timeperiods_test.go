package timeperiods

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestNewDateRangeEnforcesOrder(t *testing.T) {
	_, err := NewDateRange(date(2024, 3, 31), date(2024, 3, 1))
	assert.Error(t, err)

	r, err := NewDateRange(date(2024, 3, 1), date(2024, 3, 31))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01--2024-03-31", r.String())
}

func TestSingleDateIsDegenerateRange(t *testing.T) {
	r := SingleDate(date(2024, 1, 1))
	assert.Equal(t, r.Start, r.End)
	assert.Equal(t, "2024-01-01", r.String())
}

func TestContainsIsInclusiveBothEnds(t *testing.T) {
	r, err := NewDateRange(date(2024, 3, 1), date(2024, 3, 31))
	require.NoError(t, err)

	assert.True(t, r.Contains(date(2024, 3, 1)))
	assert.True(t, r.Contains(date(2024, 3, 31)))
	assert.True(t, r.Contains(time.Date(2024, 3, 31, 23, 59, 0, 0, time.Local)))
	assert.False(t, r.Contains(date(2024, 2, 29)))
	assert.False(t, r.Contains(date(2024, 4, 1)))
}

func TestParse(t *testing.T) {
	periods, err := Parse("2024-01-01,2024-03-01--2024-03-31")
	require.NoError(t, err)
	require.Equal(t, 2, periods.Size())

	assert.True(t, periods.IsDuring(date(2024, 1, 1)))
	assert.True(t, periods.IsDuring(date(2024, 3, 15)))
	assert.False(t, periods.IsDuring(date(2024, 2, 15)))
}

func TestParseSkipsEmptyTokens(t *testing.T) {
	periods, err := Parse("2024-01-01, ,")
	require.NoError(t, err)
	assert.Equal(t, 1, periods.Size())
}

func TestParseNamesMalformedToken(t *testing.T) {
	for _, input := range []string{"not-a-date", "2024-13-01", "2024-01-01--nope"} {
		_, err := Parse(input)
		require.Error(t, err, "input: %q", input)
		assert.Contains(t, err.Error(), "are not valid", "input: %q", input)
	}
}

func TestOfConstructors(t *testing.T) {
	r, err := NewDateRange(date(2024, 3, 1), date(2024, 3, 31))
	require.NoError(t, err)

	periods := Of(r)
	assert.Equal(t, 1, periods.Size())
	assert.True(t, periods.IsDuring(date(2024, 3, 15)))

	singles := OfSingleDates(date(2024, 1, 1), date(2024, 2, 1))
	assert.Equal(t, 2, singles.Size())
	assert.True(t, singles.IsDuring(date(2024, 2, 1)))
	assert.False(t, singles.IsDuring(date(2024, 1, 2)))

	require.Len(t, periods.Ranges(), 1)
}

func TestAsPredicate(t *testing.T) {
	periods, err := Parse("2024-01-01")
	require.NoError(t, err)

	pred := periods.AsPredicate()
	assert.True(t, pred(date(2024, 1, 1)))
	assert.False(t, pred(date(2024, 1, 2)))
}
