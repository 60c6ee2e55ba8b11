/*
Package bootconfig defines the "xsboot.toml" launcher configuration.
It describes the application to boot, the scala version it needs and the
repositories used to fetch both.

	[scala]
	version = "2.13.12"

	[app]
	org = "org.scala-sbt"
	name = "sbt"
	version = "1.9.7"
	class = "sbt.xMain"

	[repositories]
	list = ["local", "maven-central"]
*/
package bootconfig

import (
	"bytes"
	"log"
	"os"
	"path/filepath"

	"github.com/minepkg/xsboot/pkg/coord"
	"github.com/minepkg/xsboot/pkg/repository"
	"github.com/minepkg/xsboot/pkg/scala"
	"github.com/pelletier/go-toml"
)

// FileName is the name of the launcher configuration in a project
const FileName = "xsboot.toml"

// DefaultScalaVersion is used by New
const DefaultScalaVersion = "2.13.12"

// DefaultRepositories are used if nothing else is configured
var DefaultRepositories = []string{"local", "maven-central"}

// Config is the launcher configuration
type Config struct {
	Scala struct {
		// Version is the scala version to provide. This field is REQUIRED
		Version string `toml:"version" json:"version"`
		// Library2 is the scala 2.13 library used together with scala 3
		Library2 string `toml:"library2,omitempty" json:"library2,omitempty"`
	} `toml:"scala" json:"scala"`
	App struct {
		Org     string `toml:"org" json:"org"`
		Name    string `toml:"name" json:"name"`
		Version string `toml:"version" json:"version"`
		// Class is the main class of the application
		Class string `toml:"class,omitempty" json:"class,omitempty"`
		// CrossVersioned appends the scala binary version to the name (like "name_2.13")
		CrossVersioned bool `toml:"cross-versioned,omitempty" json:"crossVersioned,omitempty"`
	} `toml:"app" json:"app"`
	Repositories struct {
		// List contains one repository definition per entry. Labels like "maven-central"
		// refer to predefined repositories
		List []string `toml:"list" json:"list"`
		// Override ignores repositories configured outside of this file
		Override bool `toml:"override,omitempty" json:"override,omitempty"`
	} `toml:"repositories" json:"repositories"`
	Boot struct {
		// Directory is where fetched artifacts are stored. Defaults to the user cache dir
		Directory string `toml:"directory,omitempty" json:"directory,omitempty"`
	} `toml:"boot" json:"boot"`
	Ivy struct {
		IvyHome   string `toml:"ivy-home,omitempty" json:"ivyHome,omitempty"`
		MavenHome string `toml:"maven-home,omitempty" json:"mavenHome,omitempty"`
	} `toml:"ivy" json:"ivy"`
}

// New returns a config with the default scala version and repositories
func New() *Config {
	cfg := &Config{}
	cfg.Scala.Version = DefaultScalaVersion
	cfg.Repositories.List = append([]string{}, DefaultRepositories...)
	return cfg
}

// Parse parses a toml configuration
func Parse(buf []byte) (*Config, error) {
	cfg := &Config{}
	if err := toml.Unmarshal(buf, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the configuration file at path
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(buf)
}

// Find looks for FileName in dir and returns nil (without error) if there is none
func Find(dir string) (*Config, string, error) {
	path := filepath.Join(dir, FileName)
	cfg, err := Load(path)
	switch {
	case err == nil:
		return cfg, path, nil
	case os.IsNotExist(err):
		return nil, "", nil
	default:
		return nil, path, err
	}
}

// ParsedRepositories parses the repository list. Unknown labels
// fail with a repository.UnknownLabelError
func (c *Config) ParsedRepositories() ([]repository.Repository, error) {
	return repository.ParseList(c.Repositories.List)
}

// Locations returns the configured ivy and maven homes, falling back to defaults
func (c *Config) Locations(defaults repository.Locations) repository.Locations {
	loc := defaults
	if c.Ivy.IvyHome != "" {
		loc.IvyHome = c.Ivy.IvyHome
	}
	if c.Ivy.MavenHome != "" {
		loc.MavenHome = c.Ivy.MavenHome
	}
	return loc
}

// AppID returns the coordinates of the application jar
func (c *Config) AppID() (coord.ID, error) {
	name := c.App.Name
	if c.App.CrossVersioned {
		binary, err := scala.BinaryVersion(c.Scala.Version)
		if err != nil {
			return coord.ID{}, err
		}
		name += "_" + binary
	}
	return coord.Parse(c.App.Org + ":" + name + ":" + c.App.Version)
}

// HasApp reports whether an application is configured
func (c *Config) HasApp() bool {
	return c.App.Org != "" || c.App.Name != "" || c.App.Version != ""
}

// Buffer returns the config as toml in Buffer form
func (c *Config) Buffer() *bytes.Buffer {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Order(toml.OrderPreserve).Encode(c); err != nil {
		log.Fatal(err)
	}
	return buf
}

func (c *Config) String() string {
	return c.Buffer().String()
}
