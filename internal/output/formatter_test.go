package output

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projscope/projscope/internal/vcs"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		max      int
		expected string
	}{
		{"short", 20, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a very long subject line", 10, "a very ..."},
		{strings.Repeat("あ", 10), 20, strings.Repeat("あ", 10)},
		{strings.Repeat("あ", 30), 20, strings.Repeat("あ", 17) + "..."},
	}

	for _, tt := range tests {
		result := truncate(tt.input, tt.max)
		assert.Equal(t, tt.expected, result, "input: %q max: %d", tt.input, tt.max)
		assert.True(t, utf8.ValidString(result))
	}
}

func TestFormatHistoryOnelineKeepsMultiByteRunesIntact(t *testing.T) {
	author := vcs.Author{Name: strings.Repeat("あ", 30), Email: "a@example.com"}
	record, err := vcs.NewCommitRecord(author, time.Date(2024, 6, 3, 10, 0, 0, 0, time.Local), "abc1234def")
	require.NoError(t, err)
	record.WithMessage(strings.Repeat("語", 200))

	formatter := NewFormatter(true, false)
	var buf bytes.Buffer
	require.NoError(t, formatter.FormatHistory(&buf, vcs.NewCommitHistory(record)))

	out := buf.String()
	assert.True(t, utf8.ValidString(out), "truncation must not split a rune")
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "abc1234")
}
