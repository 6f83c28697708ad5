package vcs

import (
	"sort"

	"github.com/projscope/projscope/internal/timeperiods"
)

// SourceFileSet is a uniqueness-preserving collection of source files keyed
// by path, iterated in path order.
type SourceFileSet struct {
	files map[string]*SourceFile
}

// NewSourceFileSet creates an empty set.
func NewSourceFileSet(files ...*SourceFile) *SourceFileSet {
	set := &SourceFileSet{files: make(map[string]*SourceFile)}
	for _, file := range files {
		if file != nil {
			set.files[file.Path()] = file
		}
	}
	return set
}

func (s *SourceFileSet) Size() int     { return len(s.files) }
func (s *SourceFileSet) IsEmpty() bool { return len(s.files) == 0 }

// Resolve returns the source file registered for the path, creating and
// registering an empty one on first use. Idempotent per unique path.
func (s *SourceFileSet) Resolve(path string) *SourceFile {
	if file, ok := s.files[path]; ok {
		return file
	}
	file := NewSourceFile(path)
	s.files[path] = file
	return file
}

// Find looks up a source file without creating it.
func (s *SourceFileSet) Find(path string) (*SourceFile, bool) {
	file, ok := s.files[path]
	return file, ok
}

// Contains reports whether the path is registered.
func (s *SourceFileSet) Contains(path string) bool {
	_, ok := s.files[path]
	return ok
}

// Files returns the source files sorted by path.
func (s *SourceFileSet) Files() []*SourceFile {
	out := make([]*SourceFile, 0, len(s.files))
	for _, file := range s.files {
		out = append(out, file)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path() < out[j].Path() })
	return out
}

// FindBy returns a new set holding the files matching the predicate. As with
// commit history queries, a nil predicate matches nothing.
func (s *SourceFileSet) FindBy(predicate func(*SourceFile) bool) *SourceFileSet {
	if predicate == nil {
		return NewSourceFileSet()
	}
	matched := NewSourceFileSet()
	for _, file := range s.files {
		if predicate(file) {
			matched.files[file.Path()] = file
		}
	}
	return matched
}

// FindByAuthor matches files modified by the given author name or email.
func (s *SourceFileSet) FindByAuthor(nameOrEmail string) *SourceFileSet {
	return s.FindBy(func(f *SourceFile) bool { return f.WasModifiedBy(nameOrEmail) })
}

// FindByRevisionID matches files carrying a revision with the given id.
func (s *SourceFileSet) FindByRevisionID(id string) *SourceFileSet {
	return s.FindBy(func(f *SourceFile) bool {
		_, ok := f.Revision(id)
		return ok
	})
}

// FindDuring matches files modified during any of the given time periods.
func (s *SourceFileSet) FindDuring(periods *timeperiods.TimePeriods) *SourceFileSet {
	return s.FindBy(func(f *SourceFile) bool { return f.WasModifiedDuring(periods) })
}
