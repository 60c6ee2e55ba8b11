package repository

import (
	"net/url"
	"os"
	"path/filepath"
)

// LocalPattern is the ivy pattern of the "local" repository
const LocalPattern = "[organisation]/[module]/(scala_[scalaVersion]/)(sbt_[sbtVersion]/)([branch]/)[revision]/[type]s/[artifact](-[classifier]).[ext]"

// MavenPattern is the layout of maven repositories
const MavenPattern = "[organisation]/[module]/[revision]/[artifact]-[revision](-[classifier]).[ext]"

// remote locations of the predefined repositories
var predefinedURLs = map[Predefined]string{
	MavenCentral:         "https://repo1.maven.org/maven2/",
	SonatypeOSSReleases:  "https://oss.sonatype.org/content/repositories/releases/",
	SonatypeOSSSnapshots: "https://oss.sonatype.org/content/repositories/snapshots/",
	Jcenter:              "https://jcenter.bintray.com/",
}

// Locations are the local directories of the local predefined repositories
type Locations struct {
	// IvyHome usually is ~/.ivy2. The local repository lives in IvyHome/local
	IvyHome string
	// MavenHome usually is ~/.m2/repository
	MavenHome string
}

// DefaultLocations returns the usual locations inside the users home directory
func DefaultLocations() (Locations, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Locations{}, err
	}
	return Locations{
		IvyHome:   filepath.Join(home, ".ivy2"),
		MavenHome: filepath.Join(home, ".m2", "repository"),
	}, nil
}

// Resolve returns the concrete repository behind b. Deprecated repositories
// resolve to the location of their replacement
func (b *Builtin) Resolve(loc Locations) Repository {
	target := b.id
	if replacement, ok := target.Replacement(); ok {
		target = replacement
	}

	switch target {
	case Local:
		return NewIvy(IvyOptions{
			ID:                 b.ID(),
			URL:                fileURL(filepath.Join(loc.IvyHome, "local")),
			IvyPattern:         LocalPattern,
			DescriptorOptional: true,
			BootOnly:           b.bootOnly,
		})
	case MavenLocal:
		return NewMaven(MavenOptions{
			ID:       b.ID(),
			URL:      fileURL(loc.MavenHome),
			BootOnly: b.bootOnly,
		})
	}

	location, err := url.Parse(predefinedURLs[target])
	if err != nil {
		// predefinedURLs are constant
		panic(err)
	}
	return NewMaven(MavenOptions{
		ID:       b.ID(),
		URL:      location,
		BootOnly: b.bootOnly,
	})
}

// ResolveAll resolves every Builtin in repos and leaves the other repositories untouched
func ResolveAll(repos []Repository, loc Locations) []Repository {
	resolved := make([]Repository, len(repos))
	for i, repo := range repos {
		if builtin, ok := repo.(*Builtin); ok {
			resolved[i] = builtin.Resolve(loc)
			continue
		}
		resolved[i] = repo
	}
	return resolved
}

func fileURL(path string) *url.URL {
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	slashed := filepath.ToSlash(path)
	if filepath.VolumeName(path) != "" {
		// windows paths need a leading slash (file:///C:/...)
		slashed = "/" + slashed
	}
	return &url.URL{Scheme: "file", Path: slashed}
}
