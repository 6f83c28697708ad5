package vcs

import (
	"fmt"
	"sort"
	"time"
)

// GroupKey classifies commit records for grouping. Each grouping dimension
// (day, month, year) has one explicit key type with a consistent ordering.
type GroupKey interface {
	fmt.Stringer
	// ordinal totally orders keys within one grouping dimension.
	ordinal() int64
}

// DayKey groups commits by calendar day.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

func dayKeyOf(c *CommitRecord) GroupKey {
	y, m, d := c.When().Date()
	return DayKey{Year: y, Month: m, Day: d}
}

func (k DayKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, k.Month, k.Day)
}

func (k DayKey) ordinal() int64 {
	return int64(k.Year)*10000 + int64(k.Month)*100 + int64(k.Day)
}

// MonthKey groups commits by calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

func monthKeyOf(c *CommitRecord) GroupKey {
	y, m, _ := c.When().Date()
	return MonthKey{Year: y, Month: m}
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, k.Month)
}

func (k MonthKey) ordinal() int64 {
	return int64(k.Year)*100 + int64(k.Month)
}

// YearKey groups commits by year.
type YearKey int

func yearKeyOf(c *CommitRecord) GroupKey {
	return YearKey(c.When().Year())
}

func (k YearKey) String() string { return fmt.Sprintf("%04d", int(k)) }
func (k YearKey) ordinal() int64 { return int64(k) }

// Group is one partition of a grouped history: the classification key plus
// the member records. Members are unique by hash and kept in canonical
// (most recent first) order.
type Group struct {
	Key     GroupKey
	Records []*CommitRecord
}

func (g Group) Size() int { return len(g.Records) }

// GroupBy partitions the history by a caller-supplied classification
// function. Records with equal hashes merge into a single member per group.
// Groups come back sorted by key ascending. A nil key function yields no
// groups.
func (h *CommitHistory) GroupBy(keyOf func(*CommitRecord) GroupKey) []Group {
	if keyOf == nil {
		return nil
	}

	members := make(map[GroupKey][]*CommitRecord)
	seen := make(map[GroupKey]map[string]struct{})

	for _, record := range h.records {
		key := keyOf(record)
		if seen[key] == nil {
			seen[key] = make(map[string]struct{})
		}
		if _, dup := seen[key][record.Hash()]; dup {
			continue
		}
		seen[key][record.Hash()] = struct{}{}
		members[key] = append(members[key], record)
	}

	groups := make([]Group, 0, len(members))
	for key, records := range members {
		groups = append(groups, Group{Key: key, Records: records})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key.ordinal() < groups[j].Key.ordinal() })
	return groups
}

// GroupByDay partitions by the commit's local calendar day.
func (h *CommitHistory) GroupByDay() []Group { return h.GroupBy(dayKeyOf) }

// GroupByMonth partitions by the commit's local calendar month.
func (h *CommitHistory) GroupByMonth() []Group { return h.GroupBy(monthKeyOf) }

// GroupByYear partitions by the commit's local year.
func (h *CommitHistory) GroupByYear() []Group { return h.GroupBy(yearKeyOf) }
