package repository

import (
	"errors"
	"fmt"
	"strings"
)

// Predefined is one of the well known repositories that can be referred to
// by label alone (for example "maven-central").
type Predefined uint8

const (
	// Local is the local ivy repository
	Local Predefined = iota
	// MavenLocal is the local maven repository (usually ~/.m2/repository)
	MavenLocal
	// MavenCentral is https://repo1.maven.org/maven2/
	MavenCentral
	// Deprecated: use SonatypeOSSReleases instead.
	ScalaToolsReleases
	// Deprecated: use SonatypeOSSSnapshots instead.
	ScalaToolsSnapshots
	// SonatypeOSSReleases is the sonatype OSS releases repository
	SonatypeOSSReleases
	// SonatypeOSSSnapshots is the sonatype OSS snapshot repository
	SonatypeOSSSnapshots
	// Deprecated: JCenter is read-only and has no replacement.
	Jcenter
)

// predefinedInfo is the data attached to every Predefined value
type predefinedInfo struct {
	identifier  string
	label       string
	deprecated  bool
	replacement Predefined
}

// noReplacement marks deprecated entries without a successor
const noReplacement = Predefined(255)

// predefined is indexed by Predefined. Order is declaration order and
// determines the order of labels in error messages.
var predefined = [...]predefinedInfo{
	Local:                {"Local", "local", false, noReplacement},
	MavenLocal:           {"MavenLocal", "maven-local", false, noReplacement},
	MavenCentral:         {"MavenCentral", "maven-central", false, noReplacement},
	ScalaToolsReleases:   {"ScalaToolsReleases", "scala-tools-releases", true, SonatypeOSSReleases},
	ScalaToolsSnapshots:  {"ScalaToolsSnapshots", "scala-tools-snapshots", true, SonatypeOSSSnapshots},
	SonatypeOSSReleases:  {"SonatypeOSSReleases", "sonatype-oss-releases", false, noReplacement},
	SonatypeOSSSnapshots: {"SonatypeOSSSnapshots", "sonatype-oss-snapshots", false, noReplacement},
	Jcenter:              {"Jcenter", "jcenter", true, noReplacement},
}

// ErrUnknownLabel is matched by every UnknownLabelError (using errors.Is)
var ErrUnknownLabel = errors.New("unknown repository label")

// UnknownLabelError is returned when a label does not belong to any predefined repository
type UnknownLabelError struct {
	// Input is the label that was passed
	Input string
	// Expected lists all valid labels in declaration order
	Expected []string
}

func (e *UnknownLabelError) Error() string {
	msg := strings.Builder{}
	msg.WriteString("Expected one of ")
	for _, label := range e.Expected {
		msg.WriteString(label)
		msg.WriteString(", ")
	}
	msg.WriteString("got '")
	msg.WriteString(e.Input)
	msg.WriteString("'.")
	return msg.String()
}

// Is makes errors.Is(err, ErrUnknownLabel) work
func (e *UnknownLabelError) Is(target error) bool {
	return target == ErrUnknownLabel
}

// ParsePredefined returns the predefined repository with exactly the given label.
// Matching is case sensitive and does not trim whitespace.
func ParsePredefined(label string) (Predefined, error) {
	for i, info := range predefined {
		if info.label == label {
			return Predefined(i), nil
		}
	}

	return 0, &UnknownLabelError{Input: label, Expected: Labels()}
}

// MustParsePredefined is like ParsePredefined but panics if the label is unknown
func MustParsePredefined(label string) Predefined {
	p, err := ParsePredefined(label)
	if err != nil {
		panic(err)
	}
	return p
}

// AllPredefined returns every predefined repository in declaration order
func AllPredefined() []Predefined {
	all := make([]Predefined, len(predefined))
	for i := range predefined {
		all[i] = Predefined(i)
	}
	return all
}

// Labels returns the labels of all predefined repositories in declaration order
func Labels() []string {
	labels := make([]string, len(predefined))
	for i, info := range predefined {
		labels[i] = info.label
	}
	return labels
}

// Valid reports whether p is one of the declared values
func (p Predefined) Valid() bool {
	return int(p) < len(predefined)
}

// String returns the label of p
func (p Predefined) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Predefined(%d)", uint8(p))
	}
	return predefined[p].label
}

// Identifier returns the symbolic name of p (for example "MavenCentral")
func (p Predefined) Identifier() string {
	if !p.Valid() {
		return ""
	}
	return predefined[p].identifier
}

// Deprecated reports whether p should no longer be used.
// Deprecated repositories still parse like every other one.
func (p Predefined) Deprecated() bool {
	return p.Valid() && predefined[p].deprecated
}

// Replacement returns the repository that should be used instead of a deprecated one
func (p Predefined) Replacement() (Predefined, bool) {
	if !p.Valid() || predefined[p].replacement == noReplacement {
		return 0, false
	}
	return predefined[p].replacement, true
}

// MarshalText implements encoding.TextMarshaler
func (p Predefined) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid predefined repository %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Predefined) UnmarshalText(text []byte) error {
	parsed, err := ParsePredefined(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
