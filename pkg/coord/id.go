// Package coord parses module coordinates like "org.scala-lang:scala-library:2.13.12"
package coord

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultExtension is used when a coordinate does not set one
const DefaultExtension = "jar"

var (
	// ErrInvalidID is returned for coordinates that are missing parts
	ErrInvalidID = errors.New("invalid module id")
)

// ID identifies a single artifact of a module
type ID struct {
	Organization string
	Name         string
	Revision     string
	// Classifier is optional (for example "sources")
	Classifier string
	// Extension defaults to "jar"
	Extension string
}

// New returns a jar ID without classifier
func New(org, name, revision string) ID {
	return ID{Organization: org, Name: name, Revision: revision, Extension: DefaultExtension}
}

// Parse parses "org:name:revision[:classifier][@ext]"
func Parse(id string) (ID, error) {
	newID := ID{Extension: DefaultExtension}

	parts := strings.SplitN(id, "@", 2)
	if len(parts) == 2 {
		if parts[1] == "" {
			return ID{}, fmt.Errorf("%w: empty extension in %q", ErrInvalidID, id)
		}
		newID.Extension = parts[1]
		id = parts[0]
	}

	parts = strings.Split(id, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return ID{}, fmt.Errorf("%w: %q (expected org:name:revision)", ErrInvalidID, id)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return ID{}, fmt.Errorf("%w: %q has an empty part", ErrInvalidID, id)
		}
	}

	newID.Organization = parts[0]
	newID.Name = parts[1]
	newID.Revision = parts[2]
	if len(parts) == 4 {
		newID.Classifier = parts[3]
	}

	return newID, nil
}

// MustParse is like Parse but panics on invalid input
func MustParse(id string) ID {
	parsed, err := Parse(id)
	if err != nil {
		panic(err)
	}
	return parsed
}

// Module returns "org:name" without revision
func (i ID) Module() string {
	return i.Organization + ":" + i.Name
}

// Ext returns the extension, falling back to DefaultExtension
func (i ID) Ext() string {
	if i.Extension == "" {
		return DefaultExtension
	}
	return i.Extension
}

// FileName is the name the artifact usually has on disk ("name-revision[-classifier].ext")
func (i ID) FileName() string {
	name := i.Name + "-" + i.Revision
	if i.Classifier != "" {
		name += "-" + i.Classifier
	}
	return name + "." + i.Ext()
}

// WithExtension returns a copy of i with another extension and without classifier
func (i ID) WithExtension(ext string) ID {
	i.Extension = ext
	i.Classifier = ""
	return i
}

func (i ID) String() string {
	s := i.Organization + ":" + i.Name + ":" + i.Revision
	if i.Classifier != "" {
		s += ":" + i.Classifier
	}
	if i.Ext() != DefaultExtension {
		s += "@" + i.Ext()
	}
	return s
}
