package reports

import (
	"sort"
	"strings"
	"time"

	"github.com/projscope/projscope/internal/git"
	"github.com/projscope/projscope/internal/vcs"
	"github.com/projscope/projscope/internal/version"
)

// Release is one tagged version together with when it was cut.
type Release struct {
	Version version.Version
	TagName string
	Hash    string
	Date    time.Time
}

// ShortHash returns the abbreviated tag target hash.
func (r Release) ShortHash() string {
	if len(r.Hash) < 7 {
		return r.Hash
	}
	return r.Hash[:7]
}

// Releases builds the release timeline from the repository's tags, newest
// version first. Tags whose names do not parse as versions are skipped; a
// leading "v" prefix is tolerated. Release dates come from the tagged commit
// in the history when it is present, else from the tag itself.
func Releases(tags []git.Tag, history *vcs.CommitHistory) []Release {
	var releases []Release
	for _, tag := range tags {
		name := strings.TrimPrefix(tag.Name, "v")
		v, err := version.Parse(name)
		if err != nil {
			continue
		}

		date := tag.Tagged
		if history != nil {
			if record := history.FindByHash(tag.Hash); record != nil {
				date = record.When()
			}
		}

		releases = append(releases, Release{
			Version: v,
			TagName: tag.Name,
			Hash:    tag.Hash,
			Date:    date,
		})
	}

	sort.SliceStable(releases, func(i, j int) bool {
		return releases[i].Version.Compare(releases[j].Version) < 0
	})

	return releases
}

// LatestRelease returns the highest-precedence release, if any.
func LatestRelease(releases []Release) (Release, bool) {
	if len(releases) == 0 {
		return Release{}, false
	}
	return releases[0], true
}
