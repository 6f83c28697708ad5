package project

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/projscope/projscope/internal/version"
)

// PomXML is the Maven descriptor file name looked for in a project
// directory.
const PomXML = "pom.xml"

type pomModel struct {
	XMLName     xml.Name `xml:"project"`
	GroupID     string   `xml:"groupId"`
	ArtifactID  string   `xml:"artifactId"`
	Version     string   `xml:"version"`
	Name        string   `xml:"name"`
	Description string   `xml:"description"`
	URL         string   `xml:"url"`

	Parent struct {
		GroupID string `xml:"groupId"`
		Version string `xml:"version"`
	} `xml:"parent"`

	Organization struct {
		Name string `xml:"name"`
		URL  string `xml:"url"`
	} `xml:"organization"`

	IssueManagement struct {
		URL string `xml:"url"`
	} `xml:"issueManagement"`

	SCM struct {
		URL string `xml:"url"`
	} `xml:"scm"`

	Developers []struct {
		ID    string `xml:"id"`
		Name  string `xml:"name"`
		Email string `xml:"email"`
		URL   string `xml:"url"`
	} `xml:"developers>developer"`

	Licenses []struct {
		Name string `xml:"name"`
		URL  string `xml:"url"`
	} `xml:"licenses>license"`
}

// IsMavenPomPresent reports whether location is a pom.xml or a directory
// containing one.
func IsMavenPomPresent(location string) bool {
	info, err := os.Stat(location)
	if err != nil {
		return false
	}
	if info.IsDir() {
		_, err := os.Stat(filepath.Join(location, PomXML))
		return err == nil
	}
	return filepath.Base(location) == PomXML
}

// FromMavenPom builds a project from a Maven POM. location may be the POM
// file itself or the directory containing it. Coordinates missing on the
// POM fall back to its parent declaration.
func FromMavenPom(location string) (*Project, error) {
	pomPath := location
	dir := filepath.Dir(location)

	if info, err := os.Stat(location); err == nil && info.IsDir() {
		pomPath = filepath.Join(location, PomXML)
		dir = location
	}

	data, err := os.ReadFile(pomPath)
	if err != nil {
		return nil, fmt.Errorf("reading maven pom %s: %w", pomPath, err)
	}

	var pom pomModel
	if err := xml.Unmarshal(data, &pom); err != nil {
		return nil, fmt.Errorf("parsing maven pom %s: %w", pomPath, err)
	}

	name := pom.Name
	if name == "" {
		name = pom.ArtifactID
	}

	p, err := New(name)
	if err != nil {
		return nil, fmt.Errorf("maven pom %s has no project name or artifactId", pomPath)
	}

	groupID := pom.GroupID
	if groupID == "" {
		groupID = pom.Parent.GroupID
	}

	p.InDirectory(dir).DescribedAs(pom.Description)
	p.Artifact = Artifact{GroupID: groupID, ID: pom.ArtifactID}
	p.IssueTracker = pom.IssueManagement.URL
	p.SourceRepository = pom.SCM.URL

	versionString := pom.Version
	if versionString == "" {
		versionString = pom.Parent.Version
	}
	if versionString != "" {
		v, err := version.Parse(versionString)
		if err != nil {
			return nil, fmt.Errorf("maven pom %s: %w", pomPath, err)
		}
		p.WithVersion(v)
	}

	if pom.Organization.Name != "" {
		p.WithOrganization(Organization{Name: pom.Organization.Name, URL: pom.Organization.URL})
	}
	for _, d := range pom.Developers {
		p.DevelopedBy(Developer{ID: d.ID, Name: d.Name, Email: d.Email, URL: d.URL})
	}
	for _, l := range pom.Licenses {
		p.WithLicense(License{Name: l.Name, URL: l.URL})
	}

	return p, nil
}
