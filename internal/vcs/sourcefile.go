package vcs

import (
	"sort"
	"time"

	"github.com/projscope/projscope/internal/timeperiods"
)

// Revision is one change to a source file: who, when, and the commit that
// carried it.
type Revision struct {
	Author Author
	When   time.Time
	ID     string
}

// Date is the revision timestamp truncated to its day.
func (r Revision) Date() time.Time {
	y, m, d := r.When.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.When.Location())
}

func (r Revision) String() string { return r.ID }

// SourceFile is the per-file revision index derived from a commit history.
// Revisions are unique by id and ordered chronologically ascending, the
// opposite reading direction from CommitHistory, so FirstRevision really is
// the oldest.
type SourceFile struct {
	path      string
	revisions []Revision
	ids       map[string]struct{}
}

// NewSourceFile creates an empty index for the given path.
func NewSourceFile(path string) *SourceFile {
	return &SourceFile{path: path, ids: make(map[string]struct{})}
}

func (f *SourceFile) Path() string       { return f.path }
func (f *SourceFile) RevisionCount() int { return len(f.revisions) }

// Revisions returns the revisions oldest first.
func (f *SourceFile) Revisions() []Revision {
	return append([]Revision(nil), f.revisions...)
}

// WithRevision records a revision, keeping chronological order. A revision
// whose id is already present is ignored.
func (f *SourceFile) WithRevision(revision Revision) *SourceFile {
	if _, dup := f.ids[revision.ID]; dup {
		return f
	}
	f.ids[revision.ID] = struct{}{}

	at := sort.Search(len(f.revisions), func(i int) bool {
		return f.revisions[i].When.After(revision.When)
	})
	f.revisions = append(f.revisions, Revision{})
	copy(f.revisions[at+1:], f.revisions[at:])
	f.revisions[at] = revision
	return f
}

// FirstRevision returns the oldest revision; ok is false when the file has
// none.
func (f *SourceFile) FirstRevision() (Revision, bool) {
	if len(f.revisions) == 0 {
		return Revision{}, false
	}
	return f.revisions[0], true
}

// LastRevision returns the newest revision.
func (f *SourceFile) LastRevision() (Revision, bool) {
	if len(f.revisions) == 0 {
		return Revision{}, false
	}
	return f.revisions[len(f.revisions)-1], true
}

// Revision looks up a revision by id.
func (f *SourceFile) Revision(id string) (Revision, bool) {
	if _, ok := f.ids[id]; !ok {
		return Revision{}, false
	}
	for _, revision := range f.revisions {
		if revision.ID == id {
			return revision, true
		}
	}
	return Revision{}, false
}

// RevisionIDs returns the ids of every revision, oldest first.
func (f *SourceFile) RevisionIDs() []string {
	out := make([]string, len(f.revisions))
	for i, revision := range f.revisions {
		out[i] = revision.ID
	}
	return out
}

// Authors returns the distinct authors that touched the file, ordered by
// first appearance.
func (f *SourceFile) Authors() []Author {
	seen := make(map[Author]struct{})
	var authors []Author
	for _, revision := range f.revisions {
		if _, ok := seen[revision.Author]; !ok {
			seen[revision.Author] = struct{}{}
			authors = append(authors, revision.Author)
		}
	}
	return authors
}

// RevisionsBy returns the revisions authored by the given name or email,
// case-insensitively.
func (f *SourceFile) RevisionsBy(nameOrEmail string) []Revision {
	var out []Revision
	for _, revision := range f.revisions {
		if revision.Author.Matches(nameOrEmail) {
			out = append(out, revision)
		}
	}
	return out
}

// RevisionsDuring returns the revisions whose date falls inside any of the
// given time periods. Nil periods match nothing.
func (f *SourceFile) RevisionsDuring(periods *timeperiods.TimePeriods) []Revision {
	if periods == nil {
		return nil
	}
	var out []Revision
	for _, revision := range f.revisions {
		if periods.IsDuring(revision.Date()) {
			out = append(out, revision)
		}
	}
	return out
}

func (f *SourceFile) WasModifiedBy(nameOrEmail string) bool {
	return len(f.RevisionsBy(nameOrEmail)) > 0
}

func (f *SourceFile) WasModifiedDuring(periods *timeperiods.TimePeriods) bool {
	return len(f.RevisionsDuring(periods)) > 0
}

func (f *SourceFile) String() string { return f.path }
