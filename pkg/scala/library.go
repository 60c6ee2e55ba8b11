package scala

import (
	"errors"
	"fmt"

	"github.com/magiconair/properties"
)

// libraryProperties is the file inside scala-library.jar that holds the version
const libraryProperties = "library.properties"

var (
	// ErrNoLibrary is returned when none of the jars is a scala library
	ErrNoLibrary = errors.New("no scala library jar found")
)

// VersionMismatchError is returned if a library jar has another version than requested
type VersionMismatchError struct {
	Jar      string
	Expected string
	Actual   string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("%s contains scala %s, but %s was requested", e.Jar, e.Actual, e.Expected)
}

// LibraryClassLoader is a class loader with just the scala library
type LibraryClassLoader interface {
	ScalaVersion() string
}

var _ LibraryClassLoader = (*LibraryLoader)(nil)

// LibraryLoader is a ClassLoader that only contains the scala library
type LibraryLoader struct {
	*ClassLoader
	version string
}

// NewLibraryLoader returns a loader for the library jars of scala version.
// For scala 2 one of the jars has to contain a matching library.properties
func NewLibraryLoader(version string, jars ...string) (*LibraryLoader, error) {
	if len(jars) == 0 {
		return nil, ErrNoLibrary
	}

	major, err := majorVersion(version)
	if err != nil {
		return nil, err
	}

	if major == 2 {
		if err := verifyLibraryVersion(version, jars); err != nil {
			return nil, err
		}
	}

	return &LibraryLoader{
		ClassLoader: NewClassLoader(nil, jars...),
		version:     version,
	}, nil
}

// ScalaVersion returns the version of the loaded scala library
func (l *LibraryLoader) ScalaVersion() string {
	return l.version
}

func verifyLibraryVersion(version string, jars []string) error {
	for _, jar := range jars {
		actual, err := ReadLibraryVersion(jar)
		if errors.Is(err, ErrEntryNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if actual != version {
			return &VersionMismatchError{Jar: jar, Expected: version, Actual: actual}
		}
		return nil
	}
	return ErrNoLibrary
}

// ReadLibraryVersion returns "version.number" from the library.properties of jar
func ReadLibraryVersion(jar string) (string, error) {
	raw, err := readEntry(jar, libraryProperties)
	if err != nil {
		return "", err
	}

	props, err := properties.Load(raw, properties.UTF8)
	if err != nil {
		return "", fmt.Errorf("parsing %s of %s: %w", libraryProperties, jar, err)
	}

	version, ok := props.Get("version.number")
	if !ok || version == "" {
		return "", fmt.Errorf("%s of %s has no version.number", libraryProperties, jar)
	}
	return version, nil
}
