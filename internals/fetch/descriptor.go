package fetch

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/minepkg/xsboot/pkg/coord"
)

// ErrInconsistent is matched by every ConsistencyError
var ErrInconsistent = errors.New("descriptor does not match the requested module")

// ConsistencyError is returned when a descriptor describes another module
type ConsistencyError struct {
	Requested coord.ID
	Found     coord.ID
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf(
		"inconsistent module descriptor: requested %s but found %s",
		e.Requested.Module()+":"+e.Requested.Revision,
		e.Found.Module()+":"+e.Found.Revision,
	)
}

func (e *ConsistencyError) Is(target error) bool {
	return target == ErrInconsistent
}

type pom struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Parent     struct {
		GroupID string `xml:"groupId"`
		Version string `xml:"version"`
	} `xml:"parent"`
}

type ivyModule struct {
	Info struct {
		Organisation string `xml:"organisation,attr"`
		Module       string `xml:"module,attr"`
		Revision     string `xml:"revision,attr"`
	} `xml:"info"`
}

// parsePom returns the coordinates declared in a pom file. Group and version
// are inherited from the parent if they are missing
func parsePom(buf []byte) (coord.ID, error) {
	p := pom{}
	if err := xml.Unmarshal(buf, &p); err != nil {
		return coord.ID{}, fmt.Errorf("invalid pom: %w", err)
	}
	if p.GroupID == "" {
		p.GroupID = p.Parent.GroupID
	}
	if p.Version == "" {
		p.Version = p.Parent.Version
	}
	return coord.New(p.GroupID, p.ArtifactID, p.Version), nil
}

// parseIvy returns the coordinates declared in an ivy.xml file
func parseIvy(buf []byte) (coord.ID, error) {
	m := ivyModule{}
	if err := xml.Unmarshal(buf, &m); err != nil {
		return coord.ID{}, fmt.Errorf("invalid ivy file: %w", err)
	}
	return coord.New(m.Info.Organisation, m.Info.Module, m.Info.Revision), nil
}

// checkConsistency compares the descriptor against the requested id.
// Ivy files without a revision are accepted for any revision
func checkConsistency(requested coord.ID, descriptor []byte, isPom bool) error {
	var (
		found coord.ID
		err   error
	)
	if isPom {
		found, err = parsePom(descriptor)
	} else {
		found, err = parseIvy(descriptor)
	}
	if err != nil {
		return err
	}

	if found.Organization != requested.Organization ||
		found.Name != requested.Name ||
		(found.Revision != "" && found.Revision != requested.Revision) {
		return &ConsistencyError{Requested: requested, Found: found}
	}
	return nil
}
