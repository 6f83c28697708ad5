package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/projscope/projscope/internal/version"
	"gopkg.in/yaml.v3"
)

// DescriptorYAML is the lightweight project descriptor for projects without
// a Maven POM.
const DescriptorYAML = "project.yaml"

type yamlDescriptor struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Group        string `yaml:"group"`
	Artifact     string `yaml:"artifact"`
	Version      string `yaml:"version"`
	IssueTracker string `yaml:"issue_tracker"`
	SourceRepo   string `yaml:"source_repository"`

	Organization struct {
		Name string `yaml:"name"`
		URL  string `yaml:"url"`
	} `yaml:"organization"`

	Developers []struct {
		ID    string `yaml:"id"`
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
	} `yaml:"developers"`

	Licenses []struct {
		Name string `yaml:"name"`
		URL  string `yaml:"url"`
	} `yaml:"licenses"`
}

// FromYAMLDescriptor builds a project from a project.yaml file.
func FromYAMLDescriptor(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project descriptor %s: %w", path, err)
	}

	var d yamlDescriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing project descriptor %s: %w", path, err)
	}

	p, err := New(d.Name)
	if err != nil {
		return nil, fmt.Errorf("project descriptor %s: %w", path, err)
	}

	p.InDirectory(filepath.Dir(path)).DescribedAs(d.Description)
	p.Artifact = Artifact{GroupID: d.Group, ID: d.Artifact}
	p.IssueTracker = d.IssueTracker
	p.SourceRepository = d.SourceRepo

	if d.Version != "" {
		v, err := version.Parse(d.Version)
		if err != nil {
			return nil, fmt.Errorf("project descriptor %s: %w", path, err)
		}
		p.WithVersion(v)
	}

	if d.Organization.Name != "" {
		p.WithOrganization(Organization{Name: d.Organization.Name, URL: d.Organization.URL})
	}
	for _, dev := range d.Developers {
		p.DevelopedBy(Developer{ID: dev.ID, Name: dev.Name, Email: dev.Email})
	}
	for _, l := range d.Licenses {
		p.WithLicense(License{Name: l.Name, URL: l.URL})
	}

	return p, nil
}

// FromDir builds a project from whichever descriptor the directory carries,
// preferring a Maven POM. A directory with no descriptor still yields a
// project named after the directory itself.
func FromDir(dir string) (*Project, error) {
	if IsMavenPomPresent(dir) {
		return FromMavenPom(dir)
	}
	if _, err := os.Stat(filepath.Join(dir, DescriptorYAML)); err == nil {
		return FromYAMLDescriptor(filepath.Join(dir, DescriptorYAML))
	}

	p, err := New(filepath.Base(dir))
	if err != nil {
		return nil, err
	}
	return p.InDirectory(dir), nil
}
