package vcs

import (
	"sort"
	"strings"
	"time"
)

// Predicate matches commit records in history queries.
type Predicate func(*CommitRecord) bool

// And composes two predicates conjunctively. A nil operand matches nothing,
// consistent with the fail-closed query policy.
func (p Predicate) And(q Predicate) Predicate {
	return func(c *CommitRecord) bool {
		return p != nil && q != nil && p(c) && q(c)
	}
}

// Negate inverts the predicate. Negating nil still matches nothing.
func (p Predicate) Negate() Predicate {
	return func(c *CommitRecord) bool {
		return p != nil && !p(c)
	}
}

// CommitHistory is an ordered, queryable collection of commit records. The
// canonical sequence is always reverse-chronological (most recent first);
// derivations return new histories and leave the receiver untouched, with
// Sort as the single documented exception.
type CommitHistory struct {
	records []*CommitRecord
}

// NewCommitHistory builds a history from arbitrary records: nil entries are
// dropped and the rest are stably sorted into reverse-chronological order.
// Duplicate hashes are kept; callers are expected to supply a deduplicated
// source.
func NewCommitHistory(records ...*CommitRecord) *CommitHistory {
	kept := make([]*CommitRecord, 0, len(records))
	for _, record := range records {
		if record != nil {
			kept = append(kept, record)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Less(kept[j]) })
	return &CommitHistory{records: kept}
}

func (h *CommitHistory) Size() int     { return len(h.records) }
func (h *CommitHistory) IsEmpty() bool { return len(h.records) == 0 }

// Records returns the commit records in canonical (most recent first) order.
// The returned slice is a copy; the records themselves are shared.
func (h *CommitHistory) Records() []*CommitRecord {
	out := make([]*CommitRecord, len(h.records))
	copy(out, h.records)
	return out
}

// FindBy returns a new history holding the records matching the predicate,
// relative order preserved. A nil predicate matches nothing, never the whole
// history.
func (h *CommitHistory) FindBy(predicate Predicate) *CommitHistory {
	if predicate == nil {
		return NewCommitHistory()
	}
	var matched []*CommitRecord
	for _, record := range h.records {
		if predicate(record) {
			matched = append(matched, record)
		}
	}
	return NewCommitHistory(matched...)
}

// FindByAuthor matches records whose author equals the given author.
func (h *CommitHistory) FindByAuthor(author Author) *CommitHistory {
	return h.FindBy(func(c *CommitRecord) bool { return c.Author() == author })
}

// FindByDate matches records committed on the given day, ignoring
// time-of-day.
func (h *CommitHistory) FindByDate(date time.Time) *CommitHistory {
	y, m, d := date.Date()
	return h.FindBy(func(c *CommitRecord) bool {
		cy, cm, cd := c.When().Date()
		return cy == y && cm == m && cd == d
	})
}

// FindByHash returns the first (newest) record with the given hash,
// case-insensitively, or nil if absent.
func (h *CommitHistory) FindByHash(hash string) *CommitRecord {
	for _, record := range h.records {
		if strings.EqualFold(record.Hash(), hash) {
			return record
		}
	}
	return nil
}

// FindBySourceFile matches records that touched the given path.
func (h *CommitHistory) FindBySourceFile(path string) *CommitHistory {
	return h.FindBy(func(c *CommitRecord) bool { return c.Contains(path) })
}

// AllAfterHash returns the prefix of the history from the newest record down
// to and including the record with the given hash. A blank or unknown hash
// yields an empty history.
func (h *CommitHistory) AllAfterHash(hash string) *CommitHistory {
	if strings.TrimSpace(hash) == "" {
		return NewCommitHistory()
	}
	for i, record := range h.records {
		if record.Hash() == hash {
			return NewCommitHistory(h.records[:i+1]...)
		}
	}
	return NewCommitHistory()
}

// AllBeforeHash returns the suffix of the history from the record with the
// given hash through the oldest record. A blank or unknown hash yields an
// empty history.
func (h *CommitHistory) AllBeforeHash(hash string) *CommitHistory {
	if strings.TrimSpace(hash) == "" {
		return NewCommitHistory()
	}
	for i, record := range h.records {
		if record.Hash() == hash {
			return NewCommitHistory(h.records[i:]...)
		}
	}
	return NewCommitHistory()
}

// First returns the chronologically oldest record, which sits at the end of
// the canonical reverse-chronological sequence. Nil on an empty history.
func (h *CommitHistory) First() *CommitRecord {
	if h.IsEmpty() {
		return nil
	}
	return h.records[len(h.records)-1]
}

// Last returns the chronologically newest record, the head of the canonical
// sequence. Nil on an empty history.
func (h *CommitHistory) Last() *CommitRecord {
	if h.IsEmpty() {
		return nil
	}
	return h.records[0]
}

// Sort reorders the records in place using the given less function. This is
// the one operation that mutates an existing history; callers use it to get
// a display order other than the default reverse-chronological one.
func (h *CommitHistory) Sort(less func(a, b *CommitRecord) bool) *CommitHistory {
	if less != nil {
		sort.SliceStable(h.records, func(i, j int) bool { return less(h.records[i], h.records[j]) })
	}
	return h
}

// ToSourceFileSet projects the history into a per-file revision index: every
// (record, touched file) pair contributes one revision to the corresponding
// source file.
func (h *CommitHistory) ToSourceFileSet() *SourceFileSet {
	set := NewSourceFileSet()
	for _, record := range h.records {
		for _, path := range record.Files() {
			set.Resolve(path).WithRevision(Revision{
				Author: record.Author(),
				When:   record.When(),
				ID:     record.Hash(),
			})
		}
	}
	return set
}
