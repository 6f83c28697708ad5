package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Qualifier classification. A version's qualifier string maps to exactly one
// of these; the zero value (Release) covers the no-qualifier case.
type QualifierKind int

const (
	Release QualifierKind = iota
	Snapshot
	Milestone
	ReleaseCandidate
	Unrecognized
)

// rank orders qualifier kinds for comparison: a plain release outranks a
// release candidate, which outranks a milestone, which outranks a snapshot.
// Unrecognized qualifiers rank below everything.
func (k QualifierKind) rank() int {
	switch k {
	case Release:
		return 4
	case ReleaseCandidate:
		return 3
	case Milestone:
		return 2
	case Snapshot:
		return 1
	default:
		return 0
	}
}

// Version models a project version of the form
// major.minor.maintenance[-qualifier], e.g. "2.3.1-RC2" or "1.0.0-SNAPSHOT".
// Numeric components are clamped to zero; the qualifier may be attached once
// via WithQualifier before the value is shared.
type Version struct {
	Major       int
	Minor       int
	Maintenance int
	Qualifier   string
}

// Of constructs a Version from explicit numbers. Negative components are
// floored to zero rather than rejected.
func Of(major, minor int, maintenance ...int) Version {
	m := 0
	if len(maintenance) > 0 {
		m = maintenance[0]
	}
	return Version{
		Major:       max(major, 0),
		Minor:       max(minor, 0),
		Maintenance: max(m, 0),
	}
}

// Parse parses a version string. The grammar is constrained to
// major.minor[.maintenance][-qualifier]; anything else is an error naming the
// offending input.
func Parse(s string) (Version, error) {
	original := s

	if strings.TrimSpace(s) == "" {
		return Version{}, fmt.Errorf("version string %q is required", original)
	}

	qualifier := ""
	if idx := strings.Index(s, "-"); idx > -1 {
		qualifier = s[idx+1:]
		s = s[:idx]
	}

	numbers := strings.Split(s, ".")
	if len(numbers) < 2 || len(numbers) > 3 {
		return Version{}, fmt.Errorf("version string %q must consist of major and minor with an optional maintenance version number", original)
	}

	parsed := make([]int, len(numbers))
	for i, number := range numbers {
		n, err := strconv.Atoi(number)
		if err != nil {
			return Version{}, fmt.Errorf("version string %q is not valid: %w", original, err)
		}
		parsed[i] = n
	}

	v := Of(parsed[0], parsed[1])
	if len(parsed) == 3 {
		v = Of(parsed[0], parsed[1], parsed[2])
	}

	return v.WithQualifier(qualifier), nil
}

// MustParse is Parse for known-good literals; it panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// WithQualifier attaches or overwrites the qualifier. Builder-style; callers
// must finish construction before sharing the value across goroutines.
func (v Version) WithQualifier(qualifier string) Version {
	v.Qualifier = qualifier
	return v
}

// Kind derives the qualifier classification.
func (v Version) Kind() QualifierKind {
	q := strings.ToUpper(strings.TrimSpace(v.Qualifier))
	switch {
	case q == "":
		return Release
	case q == "SNAPSHOT":
		return Snapshot
	case strings.HasPrefix(q, "RC"):
		return ReleaseCandidate
	case strings.HasPrefix(q, "M"):
		return Milestone
	default:
		return Unrecognized
	}
}

func (v Version) IsQualifierPresent() bool { return strings.TrimSpace(v.Qualifier) != "" }
func (v Version) IsMilestone() bool        { return v.Kind() == Milestone }
func (v Version) IsReleaseCandidate() bool { return v.Kind() == ReleaseCandidate }
func (v Version) IsSnapshot() bool         { return v.Kind() == Snapshot }

// IsRelease reports whether the version carries no pre-release qualifier.
// Note an unrecognized qualifier still counts as a release here, matching the
// classification predicates rather than the ordering rank.
func (v Version) IsRelease() bool {
	return !(v.IsSnapshot() || v.IsMilestone() || v.IsReleaseCandidate())
}

// qualifierNumber extracts the first run of digits in the qualifier,
// e.g. "RC10" -> 10, "M2" -> 2. No digits yields zero.
func (v Version) qualifierNumber() int {
	start := -1
	for i, r := range v.Qualifier {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(v.Qualifier[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(v.Qualifier[start:])
		return n
	}
	return 0
}

// Compare orders versions descending: the newer, higher-precedence version
// compares less than the older one, so a natural sort puts 2.0.0 before
// 1.0.0, and 1.0.0 before 1.0.0-RC1 before 1.0.0-M2 before 1.0.0-SNAPSHOT.
func (v Version) Compare(other Version) int {
	result := compareInt(v.Major, other.Major)
	if result == 0 {
		result = compareInt(v.Minor, other.Minor)
	}
	if result == 0 {
		result = compareInt(v.Maintenance, other.Maintenance)
	}
	if result == 0 {
		result = compareInt(v.Kind().rank(), other.Kind().rank())
	}
	if result == 0 {
		result = compareInt(v.qualifierNumber(), other.qualifierNumber())
	}
	return -result
}

// Equal is structural equality, qualifier included.
func (v Version) Equal(other Version) bool {
	return v == other
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Maintenance)
	if v.IsQualifierPresent() {
		return s + "-" + v.Qualifier
	}
	return s
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
