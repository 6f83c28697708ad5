package vcs

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const shortHashLength = 7

// Author identifies who made a commit.
type Author struct {
	Name  string
	Email string
}

// Matches reports whether the given name or email identifies this author,
// case-insensitively.
func (a Author) Matches(nameOrEmail string) bool {
	return strings.EqualFold(a.Name, nameOrEmail) || strings.EqualFold(a.Email, nameOrEmail)
}

func (a Author) String() string {
	if a.Email == "" {
		return a.Name
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// CommitRecord is one revision entry from a version-control log. Identity is
// the hash alone; the touched-file set is append-only and the message is set
// once. Records are not safe for concurrent mutation.
type CommitRecord struct {
	author  Author
	when    time.Time
	hash    string
	message string
	files   map[string]struct{}
}

// NewCommitRecord constructs a record from its required fields. Author name,
// timestamp and hash must all be present.
func NewCommitRecord(author Author, when time.Time, hash string) (*CommitRecord, error) {
	if strings.TrimSpace(author.Name) == "" {
		return nil, fmt.Errorf("commit author is required")
	}
	if when.IsZero() {
		return nil, fmt.Errorf("commit timestamp is required")
	}
	if strings.TrimSpace(hash) == "" {
		return nil, fmt.Errorf("commit hash is required")
	}
	return &CommitRecord{
		author: author,
		when:   when,
		hash:   hash,
		files:  make(map[string]struct{}),
	}, nil
}

func (c *CommitRecord) Author() Author  { return c.author }
func (c *CommitRecord) When() time.Time { return c.when }
func (c *CommitRecord) Hash() string    { return c.hash }
func (c *CommitRecord) Message() string { return c.message }

// Date is the commit timestamp truncated to its day.
func (c *CommitRecord) Date() time.Time {
	y, m, d := c.when.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.when.Location())
}

// ShortHash is the first 7 characters of the hash. Real VCS hashes are always
// at least 7 characters; shorter hashes indicate a caller bug upstream.
func (c *CommitRecord) ShortHash() string {
	return c.hash[:shortHashLength]
}

// WithMessage assigns the commit message. Builder-style, intended to be
// called once during construction.
func (c *CommitRecord) WithMessage(message string) *CommitRecord {
	c.message = message
	return c
}

// Add appends touched file paths. Blank paths are ignored and duplicates
// collapse by set semantics.
func (c *CommitRecord) Add(paths ...string) *CommitRecord {
	for _, path := range paths {
		if strings.TrimSpace(path) != "" {
			c.files[path] = struct{}{}
		}
	}
	return c
}

// Contains reports whether the commit touched the given path.
func (c *CommitRecord) Contains(path string) bool {
	_, ok := c.files[path]
	return ok
}

// Files returns the touched file paths in sorted order.
func (c *CommitRecord) Files() []string {
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Less is the natural ordering of commit records: descending by timestamp,
// most recent first. CommitHistory relies on this for its canonical order.
func (c *CommitRecord) Less(other *CommitRecord) bool {
	return c.when.After(other.when)
}

func (c *CommitRecord) String() string {
	return c.hash
}
