package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindowRejectsRangeTokens(t *testing.T) {
	_, err := parseWindow("2024-01-01--2024-06-30", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single")

	_, err = parseWindow("", "2024-01-01--2024-06-30")
	require.Error(t, err)
}

func TestParseWindowIsInclusiveBothEnds(t *testing.T) {
	window, err := parseWindow("2024-01-01", "2024-06-30")
	require.NoError(t, err)

	assert.True(t, window.Contains(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)))
	assert.True(t, window.Contains(time.Date(2024, 6, 30, 23, 59, 0, 0, time.Local)))
	assert.False(t, window.Contains(time.Date(2023, 12, 31, 12, 0, 0, 0, time.Local)))
	assert.False(t, window.Contains(time.Date(2024, 7, 1, 0, 0, 0, 0, time.Local)))
}

func TestParseWindowOpenEnds(t *testing.T) {
	window, err := parseWindow("2024-01-01", "")
	require.NoError(t, err)
	assert.True(t, window.Contains(time.Now()))

	window, err = parseWindow("", "2024-01-01")
	require.NoError(t, err)
	assert.True(t, window.Contains(time.Date(1990, 5, 1, 0, 0, 0, 0, time.Local)))
	assert.False(t, window.Contains(time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)))
}

func TestParseWindowRejectsMalformedDates(t *testing.T) {
	_, err := parseWindow("not-a-date", "")
	assert.Error(t, err)
}
