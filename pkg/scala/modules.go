package scala

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/minepkg/xsboot/pkg/coord"
)

// Organization publishes the scala library and compiler
const Organization = "org.scala-lang"

// DefaultScala2Library is the scala 2.13 library scala 3 builds on, if nothing else is configured
const DefaultScala2Library = "2.13.12"

var (
	// ErrUnsupportedVersion is returned for scala versions other than 2.x and 3.x
	ErrUnsupportedVersion = errors.New("unsupported scala version")
)

// Modules are the artifacts needed for a scala version
type Modules struct {
	Version string
	// Library holds the library jars, the primary one first
	Library []coord.ID
	// Compiler holds the compiler jars, the primary one first
	Compiler []coord.ID
}

// All returns library and compiler modules
func (m *Modules) All() []coord.ID {
	all := make([]coord.ID, 0, len(m.Library)+len(m.Compiler))
	all = append(all, m.Library...)
	return append(all, m.Compiler...)
}

// ModulesFor returns the artifacts for scala version. scala2Library is only
// used for scala 3 and defaults to DefaultScala2Library
func ModulesFor(version string, scala2Library string) (*Modules, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, err)
	}

	mods := &Modules{Version: version}
	switch v.Major() {
	case 2:
		mods.Library = []coord.ID{coord.New(Organization, "scala-library", version)}
		mods.Compiler = []coord.ID{coord.New(Organization, "scala-compiler", version)}
		// scala-reflect was split out of the compiler in 2.10
		if v.Minor() >= 10 {
			mods.Compiler = append(mods.Compiler, coord.New(Organization, "scala-reflect", version))
		}
	case 3:
		if scala2Library == "" {
			scala2Library = DefaultScala2Library
		}
		mods.Library = []coord.ID{
			coord.New(Organization, "scala3-library_3", version),
			coord.New(Organization, "scala-library", scala2Library),
		}
		mods.Compiler = []coord.ID{
			coord.New(Organization, "scala3-compiler_3", version),
			coord.New(Organization, "scala3-interfaces", version),
			coord.New(Organization, "tasty-core_3", version),
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}

	return mods, nil
}

// BinaryVersion returns the suffix used for cross built artifacts ("2.13" or "3")
func BinaryVersion(version string) (string, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedVersion, err)
	}
	switch v.Major() {
	case 2:
		return fmt.Sprintf("2.%d", v.Minor()), nil
	case 3:
		return "3", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}
}

func majorVersion(version string) (uint64, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedVersion, err)
	}
	if v.Major() != 2 && v.Major() != 3 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}
	return v.Major(), nil
}
