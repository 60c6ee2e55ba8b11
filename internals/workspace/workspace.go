// Package workspace ties the project config, global settings and
// repository configuration of the current directory together
package workspace

import (
	"net/http"
	"os"

	"github.com/minepkg/xsboot/internals/cache"
	"github.com/minepkg/xsboot/internals/credentials"
	"github.com/minepkg/xsboot/internals/fetch"
	"github.com/minepkg/xsboot/internals/ownhttp"
	"github.com/minepkg/xsboot/internals/repoconfig"
	"github.com/minepkg/xsboot/pkg/bootconfig"
	"github.com/minepkg/xsboot/pkg/repository"
)

// Settings are the global settings (usually read from the global config)
type Settings struct {
	// RepositoriesFile is an explicit repositories file
	RepositoriesFile string
	// Repositories is the global repository list
	Repositories []string
	// SbtFile is usually ~/.sbt/repositories
	SbtFile   string
	CacheDir  string
	IvyHome   string
	MavenHome string
	// Throttle limits requests per second. 0 disables throttling
	Throttle float64
	// GlobalDir is where credentials are stored without a keyring
	GlobalDir string
}

// Workspace is a directory that might contain a xsboot.toml
type Workspace struct {
	Dir string
	// Config is nil if the directory has no xsboot.toml
	Config     *bootconfig.Config
	ConfigPath string
	Settings   Settings
}

// Open reads the project config in dir, if there is one
func Open(dir string, settings Settings) (*Workspace, error) {
	cfg, path, err := bootconfig.Find(dir)
	if err != nil {
		return nil, err
	}
	return &Workspace{Dir: dir, Config: cfg, ConfigPath: path, Settings: settings}, nil
}

// OpenWd opens the current working directory
func OpenWd(settings Settings) (*Workspace, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return Open(dir, settings)
}

// HasConfig reports whether the workspace has a xsboot.toml
func (w *Workspace) HasConfig() bool {
	return w.Config != nil
}

// Repositories returns the repository list in effect
func (w *Workspace) Repositories() (*repoconfig.Effective, error) {
	sources := &repoconfig.Sources{
		File:    w.Settings.RepositoriesFile,
		Project: w.Config,
		Global:  w.Settings.Repositories,
		SbtFile: w.Settings.SbtFile,
	}
	return sources.Load()
}

// Locations returns the ivy and maven homes. Global settings win over
// the defaults, the project config wins over both
func (w *Workspace) Locations() (repository.Locations, error) {
	loc, err := repository.DefaultLocations()
	if err != nil {
		return loc, err
	}
	if w.Settings.IvyHome != "" {
		loc.IvyHome = w.Settings.IvyHome
	}
	if w.Settings.MavenHome != "" {
		loc.MavenHome = w.Settings.MavenHome
	}
	if w.Config != nil {
		loc = w.Config.Locations(loc)
	}
	return loc, nil
}

// Cache returns the artifact cache
func (w *Workspace) Cache() (*cache.Cache, error) {
	switch {
	case w.Config != nil && w.Config.Boot.Directory != "":
		return cache.New(w.Config.Boot.Directory), nil
	case w.Settings.CacheDir != "":
		return cache.New(w.Settings.CacheDir), nil
	default:
		return cache.Default()
	}
}

// HTTPClient returns a client that authenticates with stored credentials
func (w *Workspace) HTTPClient() (*http.Client, error) {
	client := ownhttp.NewThrottled(w.Settings.Throttle)
	store, err := credentials.New(w.Settings.GlobalDir)
	if err != nil {
		return nil, err
	}
	return store.WrapClient(client), nil
}

// Fetcher returns a fetcher for the effective repositories
func (w *Workspace) Fetcher() (*fetch.Fetcher, *repoconfig.Effective, error) {
	effective, err := w.Repositories()
	if err != nil {
		return nil, nil, err
	}
	loc, err := w.Locations()
	if err != nil {
		return nil, nil, err
	}
	c, err := w.Cache()
	if err != nil {
		return nil, nil, err
	}
	client, err := w.HTTPClient()
	if err != nil {
		return nil, nil, err
	}
	return fetch.New(effective.Repositories, loc, client, c), effective, nil
}

// ScalaVersion returns the scala version of the project config or fallback
func (w *Workspace) ScalaVersion(fallback string) string {
	if w.Config != nil && w.Config.Scala.Version != "" {
		return w.Config.Scala.Version
	}
	return fallback
}
