// Package project models a software project: its build metadata (artifact
// coordinates, version, developers, licenses) and its version-control
// history.
package project

import (
	"fmt"
	"strings"

	"github.com/projscope/projscope/internal/vcs"
	"github.com/projscope/projscope/internal/version"
)

// Developer is someone credited in the project descriptor.
type Developer struct {
	ID    string
	Name  string
	Email string
	URL   string
}

func (d Developer) String() string { return d.Name }

// License names a license the project is distributed under.
type License struct {
	Name string
	URL  string
}

func (l License) String() string {
	if l.URL == "" {
		return l.Name
	}
	return fmt.Sprintf("%s (%s)", l.Name, l.URL)
}

// Organization owns or governs the project.
type Organization struct {
	Name string
	URL  string
}

func (o Organization) String() string {
	if o.URL == "" {
		return o.Name
	}
	return fmt.Sprintf("%s (%s)", o.Name, o.URL)
}

// Artifact is the coordinate of the artifact the project builds.
type Artifact struct {
	GroupID string
	ID      string
}

func (a Artifact) String() string {
	if a.GroupID == "" {
		return a.ID
	}
	return a.GroupID + ":" + a.ID
}

// Project is the root aggregate. The commit history is loaded once per
// session and cached on the project.
type Project struct {
	Name             string
	Description      string
	Directory        string
	Artifact         Artifact
	Version          *version.Version
	Developers       []Developer
	Licenses         []License
	Organization     *Organization
	IssueTracker     string
	SourceRepository string

	history *vcs.CommitHistory
}

// New creates a project with the given, required name.
func New(name string) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name %q for project is required", name)
	}
	return &Project{Name: name}, nil
}

func (p *Project) InDirectory(dir string) *Project {
	p.Directory = dir
	return p
}

func (p *Project) DescribedAs(description string) *Project {
	p.Description = description
	return p
}

func (p *Project) WithVersion(v version.Version) *Project {
	p.Version = &v
	return p
}

func (p *Project) DevelopedBy(developer Developer) *Project {
	p.Developers = append(p.Developers, developer)
	return p
}

func (p *Project) WithLicense(license License) *Project {
	p.Licenses = append(p.Licenses, license)
	return p
}

func (p *Project) WithOrganization(organization Organization) *Project {
	p.Organization = &organization
	return p
}

// WithHistory caches the loaded commit history on the project.
func (p *Project) WithHistory(history *vcs.CommitHistory) *Project {
	p.history = history
	return p
}

// History returns the cached commit history, never nil.
func (p *Project) History() *vcs.CommitHistory {
	if p.history == nil {
		return vcs.NewCommitHistory()
	}
	return p.history
}

func (p *Project) String() string { return p.Name }
