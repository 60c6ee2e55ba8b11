package bootconfig

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/minepkg/xsboot/pkg/repository"
)

const (
	ErrorLevelWarn = iota
	ErrorLevelFatal
)

type ValidationError struct {
	message string
	Path    string
	Level   int
	// Err is the underlying error, if any
	Err error
}

func (e ValidationError) Error() string {
	return e.message
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

var (
	// ErrNoScalaVersion is returned when the config does not contain a scala version.
	ErrNoScalaVersion = ValidationError{
		message: "does not contain a scala version",
		Path:    "scala.version",
		Level:   ErrorLevelFatal,
	}
	// ErrNoRepositories is returned when the repository list is empty.
	ErrNoRepositories = ValidationError{
		message: "does not list any repositories",
		Path:    "repositories.list",
		Level:   ErrorLevelWarn,
	}
	// ErrIncompleteApp is returned when only some of the app coordinates are set.
	ErrIncompleteApp = ValidationError{
		message: "app needs org, name and version",
		Path:    "app",
		Level:   ErrorLevelFatal,
	}
	// ErrNoMainClass is returned when an app has no main class.
	ErrNoMainClass = ValidationError{
		message: "app does not set a main class",
		Path:    "app.class",
		Level:   ErrorLevelWarn,
	}
)

// helper regexes
var (
	validClassName = regexp.MustCompile(`^([\p{L}_$][\p{L}\p{N}_$]*\.)*[\p{L}_$][\p{L}\p{N}_$]*$`)
)

type Problems []ValidationError

// Fatal returns the first fatal error in the list. If there are no fatal errors, it returns nil.
func (p *Problems) Fatal() error {
	for _, problem := range *p {
		if problem.Level == ErrorLevelFatal {
			return problem
		}
	}
	return nil
}

func validateScalaVersion(version string) Problems {
	if version == "" {
		return Problems{ErrNoScalaVersion}
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return Problems{{
			message: fmt.Sprintf("scala version %q is invalid", version),
			Path:    "scala.version",
			Level:   ErrorLevelFatal,
			Err:     err,
		}}
	}

	if v.Major() != 2 && v.Major() != 3 {
		return Problems{{
			message: fmt.Sprintf("scala %s is not supported", version),
			Path:    "scala.version",
			Level:   ErrorLevelFatal,
		}}
	}

	if v.Prerelease() != "" {
		return Problems{{
			message: fmt.Sprintf("scala %s is a pre-release", version),
			Path:    "scala.version",
			Level:   ErrorLevelWarn,
		}}
	}
	return nil
}

func validateRepositories(list []string) Problems {
	if len(list) == 0 {
		return Problems{ErrNoRepositories}
	}

	problems := Problems{}
	repos, err := repository.ParseList(list)
	if err != nil {
		return append(problems, ValidationError{
			message: err.Error(),
			Path:    "repositories.list",
			Level:   ErrorLevelFatal,
			Err:     err,
		})
	}

	for _, repo := range repos {
		builtin, ok := repo.(repository.PredefinedRepository)
		if !ok || !builtin.Predefined().Deprecated() {
			continue
		}
		message := fmt.Sprintf("%s is deprecated", builtin.ID())
		if replacement, ok := builtin.Predefined().Replacement(); ok {
			message += fmt.Sprintf(", use %s instead", replacement)
		}
		problems = append(problems, ValidationError{
			message: message,
			Path:    "repositories.list",
			Level:   ErrorLevelWarn,
		})
	}
	return problems
}

// Validate checks the config for correctness.
func (c *Config) Validate() Problems {
	problems := Problems{}

	problems = append(problems, validateScalaVersion(c.Scala.Version)...)
	problems = append(problems, validateRepositories(c.Repositories.List)...)

	if c.HasApp() {
		if c.App.Org == "" || c.App.Name == "" || c.App.Version == "" {
			problems = append(problems, ErrIncompleteApp)
		} else if _, err := c.AppID(); err != nil {
			problems = append(problems, ValidationError{
				message: err.Error(),
				Path:    "app",
				Level:   ErrorLevelFatal,
				Err:     err,
			})
		}

		switch {
		case c.App.Class == "":
			problems = append(problems, ErrNoMainClass)
		case !validClassName.MatchString(c.App.Class):
			problems = append(problems, ValidationError{
				message: fmt.Sprintf("%q is not a valid class name", c.App.Class),
				Path:    "app.class",
				Level:   ErrorLevelFatal,
			})
		}
	}

	return problems
}
