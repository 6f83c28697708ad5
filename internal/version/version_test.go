package version

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfClampsNegativeComponents(t *testing.T) {
	v := Of(-1, -2, -3)
	assert.Equal(t, Version{}, v)
	assert.Equal(t, "0.0.0", v.String())
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Version
	}{
		{"1.2", Version{Major: 1, Minor: 2}},
		{"1.2.3", Version{Major: 1, Minor: 2, Maintenance: 3}},
		{"2.3.1-RC2", Version{Major: 2, Minor: 3, Maintenance: 1, Qualifier: "RC2"}},
		{"1.0.0-SNAPSHOT", Version{Major: 1, Minor: 0, Maintenance: 0, Qualifier: "SNAPSHOT"}},
		{"1.0.0-M2", Version{Major: 1, Minor: 0, Maintenance: 0, Qualifier: "M2"}},
	}

	for _, tt := range tests {
		v, err := Parse(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.expected, v, "input: %s", tt.input)
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "   ", "1", "1.2.3.4", "a.b", "1.x.0", "1.2.x-RC1"} {
		_, err := Parse(input)
		assert.Error(t, err, "input: %q", input)
	}
}

func TestStringRoundTripsThroughParse(t *testing.T) {
	versions := []Version{
		Of(0, 0, 0),
		Of(1, 2, 3),
		Of(2, 0).WithQualifier("RC1"),
		Of(1, 5, 9).WithQualifier("SNAPSHOT"),
		Of(3, 1, 4).WithQualifier("M10"),
	}

	for _, v := range versions {
		parsed, err := Parse(v.String())
		require.NoError(t, err)
		assert.True(t, v.Equal(parsed), "round trip of %s", v)
	}
}

func TestQualifierClassification(t *testing.T) {
	tests := []struct {
		qualifier string
		kind      QualifierKind
	}{
		{"", Release},
		{"SNAPSHOT", Snapshot},
		{"snapshot", Snapshot},
		{"RC1", ReleaseCandidate},
		{"rc2", ReleaseCandidate},
		{"M2", Milestone},
		{"m1", Milestone},
		{"beta", Unrecognized},
	}

	for _, tt := range tests {
		v := Of(1, 0, 0).WithQualifier(tt.qualifier)
		assert.Equal(t, tt.kind, v.Kind(), "qualifier: %q", tt.qualifier)
	}
}

func TestIsRelease(t *testing.T) {
	assert.True(t, Of(1, 0, 0).IsRelease())
	assert.False(t, Of(1, 0, 0).WithQualifier("SNAPSHOT").IsRelease())
	assert.False(t, Of(1, 0, 0).WithQualifier("RC1").IsRelease())
	assert.False(t, Of(1, 0, 0).WithQualifier("M2").IsRelease())

	// An unrecognized qualifier does not make a version a pre-release.
	assert.True(t, Of(1, 0, 0).WithQualifier("beta").IsRelease())
}

func TestCompareOrdersDescending(t *testing.T) {
	// A sort by Compare must yield exactly this sequence.
	expected := []string{
		"1.0.0",
		"1.0.0-RC1",
		"1.0.0-M2",
		"1.0.0-M1",
		"1.0.0-SNAPSHOT",
	}

	shuffled := []string{"1.0.0-M1", "1.0.0-SNAPSHOT", "1.0.0", "1.0.0-M2", "1.0.0-RC1"}
	versions := make([]Version, len(shuffled))
	for i, s := range shuffled {
		versions[i] = MustParse(s)
	}

	sort.SliceStable(versions, func(i, j int) bool { return versions[i].Compare(versions[j]) < 0 })

	actual := make([]string, len(versions))
	for i, v := range versions {
		actual[i] = v.String()
	}
	assert.Equal(t, expected, actual)
}

func TestCompareNumbersDominateQualifiers(t *testing.T) {
	assert.Negative(t, MustParse("3.0.0-SNAPSHOT").Compare(MustParse("2.0.1-RC1")))
	assert.Negative(t, MustParse("2.0.1-RC1").Compare(MustParse("1.1.0-M1")))
	assert.Negative(t, MustParse("1.1.0-M1").Compare(MustParse("1.0.0")))
}

func TestCompareQualifierNumbers(t *testing.T) {
	assert.Negative(t, MustParse("1.0.0-RC10").Compare(MustParse("1.0.0-RC2")))
	assert.Negative(t, MustParse("1.0.0-M2").Compare(MustParse("1.0.0-M1")))
	assert.Zero(t, MustParse("1.0.0-RC1").Compare(MustParse("1.0.0-RC1")))
}

func TestEqualIncludesQualifier(t *testing.T) {
	assert.True(t, Of(1, 2, 3).Equal(Of(1, 2, 3)))
	assert.False(t, Of(1, 2, 3).Equal(Of(1, 2, 3).WithQualifier("RC1")))
}
