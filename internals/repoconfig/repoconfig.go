// Package repoconfig decides which repository list is in effect
package repoconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/minepkg/xsboot/pkg/bootconfig"
	"github.com/minepkg/xsboot/pkg/repository"
)

// Origin names where a repository list came from
type Origin string

const (
	OriginFlag     Origin = "repositories file (--repositories-file)"
	OriginOverride Origin = "project config (override)"
	OriginProject  Origin = "project config"
	OriginGlobal   Origin = "global config"
	OriginSbt      Origin = "~/.sbt/repositories"
	OriginDefault  Origin = "defaults"
)

// Sources are all places repositories can be configured in
type Sources struct {
	// File is a repositories file passed explicitly
	File string
	// Project is the xsboot.toml of the current project, if any
	Project *bootconfig.Config
	// Global is the "repositories" list of the global config
	Global []string
	// SbtFile is usually ~/.sbt/repositories. Missing files are skipped
	SbtFile string
}

// Effective is the repository list in use
type Effective struct {
	Origin       Origin
	Path         string
	Repositories []repository.Repository
}

// DefaultSbtFile returns ~/.sbt/repositories
func DefaultSbtFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sbt", "repositories")
}

// Load returns the first configured repository list. A project config with
// "override" wins over everything else. Then the explicit file, the project
// config, the global config and the sbt repositories file are checked in order
func (s *Sources) Load() (*Effective, error) {
	if s.Project != nil && s.Project.Repositories.Override && len(s.Project.Repositories.List) > 0 {
		return fromList(OriginOverride, s.Project.Repositories.List)
	}

	if s.File != "" {
		repos, err := repository.ReadFile(s.File)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.File, err)
		}
		return &Effective{Origin: OriginFlag, Path: s.File, Repositories: repos}, nil
	}

	if s.Project != nil && len(s.Project.Repositories.List) > 0 {
		return fromList(OriginProject, s.Project.Repositories.List)
	}

	if len(s.Global) > 0 {
		return fromList(OriginGlobal, s.Global)
	}

	if s.SbtFile != "" {
		repos, err := repository.ReadFile(s.SbtFile)
		switch {
		case err == nil && len(repos) > 0:
			return &Effective{Origin: OriginSbt, Path: s.SbtFile, Repositories: repos}, nil
		case err != nil && !os.IsNotExist(err):
			return nil, fmt.Errorf("reading %s: %w", s.SbtFile, err)
		}
	}

	return fromList(OriginDefault, bootconfig.DefaultRepositories)
}

func fromList(origin Origin, list []string) (*Effective, error) {
	repos, err := repository.ParseList(list)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", origin, err)
	}
	return &Effective{Origin: origin, Repositories: repos}, nil
}
