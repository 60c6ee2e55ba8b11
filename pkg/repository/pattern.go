package repository

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/minepkg/xsboot/pkg/coord"
)

var (
	// ErrMissingToken is returned if a required pattern token has no value
	ErrMissingToken = errors.New("missing pattern token")
	// ErrMalformedPattern is returned for unbalanced brackets or parentheses
	ErrMalformedPattern = errors.New("malformed pattern")
	// ErrUnresolved is returned when a location is requested for a Builtin
	// repository. Use Builtin.Resolve first
	ErrUnresolved = errors.New("predefined repository is not resolved")
)

// Tokens are the values substituted into a pattern
type Tokens map[string]string

// ArtifactTokens returns the tokens for the artifact of id.
// mavenCompatible turns the dots of the organization into slashes
func ArtifactTokens(id coord.ID, mavenCompatible bool) Tokens {
	org := id.Organization
	if mavenCompatible {
		org = strings.ReplaceAll(org, ".", "/")
	}

	return Tokens{
		"organisation": org,
		"organization": org,
		"module":       id.Name,
		"artifact":     id.Name,
		"revision":     id.Revision,
		"classifier":   id.Classifier,
		"ext":          id.Ext(),
		"type":         id.Ext(),
	}
}

// Substitute fills pattern with tokens. Optional parts in parentheses are
// dropped if any token inside them is empty
func Substitute(pattern string, tokens Tokens) (string, error) {
	out := strings.Builder{}

	for len(pattern) > 0 {
		switch pattern[0] {
		case '(':
			end := strings.IndexByte(pattern, ')')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed ( in %q", ErrMalformedPattern, pattern)
			}
			optional, complete, err := substituteGroup(pattern[1:end], tokens)
			if err != nil {
				return "", err
			}
			if complete {
				out.WriteString(optional)
			}
			pattern = pattern[end+1:]
		case '[':
			end := strings.IndexByte(pattern, ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed [ in %q", ErrMalformedPattern, pattern)
			}
			name := pattern[1:end]
			value := tokens[name]
			if value == "" {
				return "", fmt.Errorf("%w: [%s]", ErrMissingToken, name)
			}
			out.WriteString(value)
			pattern = pattern[end+1:]
		case ')', ']':
			return "", fmt.Errorf("%w: unexpected %c", ErrMalformedPattern, pattern[0])
		default:
			next := strings.IndexAny(pattern, "([])")
			if next < 0 {
				next = len(pattern)
			}
			out.WriteString(pattern[:next])
			pattern = pattern[next:]
		}
	}

	return out.String(), nil
}

// substituteGroup substitutes the inside of an optional group. complete is false
// if any token had no value
func substituteGroup(group string, tokens Tokens) (string, bool, error) {
	out := strings.Builder{}
	for len(group) > 0 {
		start := strings.IndexByte(group, '[')
		if start < 0 {
			out.WriteString(group)
			break
		}
		end := strings.IndexByte(group, ']')
		if end < start {
			return "", false, fmt.Errorf("%w: unclosed [ in (%s)", ErrMalformedPattern, group)
		}
		out.WriteString(group[:start])
		value := tokens[group[start+1:end]]
		if value == "" {
			return "", false, nil
		}
		out.WriteString(value)
		group = group[end+1:]
	}
	return out.String(), true, nil
}

// ArtifactURL returns the location of the artifact of id inside repo
func ArtifactURL(repo Repository, id coord.ID) (*url.URL, error) {
	switch r := repo.(type) {
	case IvyRepository:
		return locate(r.URL(), r.ArtifactPattern(), ArtifactTokens(id, r.MavenCompatible()))
	case MavenRepository:
		return locate(r.URL(), MavenPattern, ArtifactTokens(id, true))
	case PredefinedRepository:
		return nil, fmt.Errorf("%w: %s", ErrUnresolved, r.ID())
	default:
		return nil, fmt.Errorf("%w: unsupported repository type %T", ErrInvalidRepository, repo)
	}
}

// DescriptorURL returns the location of the module descriptor of id inside repo.
// That is the pom file for maven repositories and ivy.xml for ivy repositories
func DescriptorURL(repo Repository, id coord.ID) (*url.URL, error) {
	switch r := repo.(type) {
	case IvyRepository:
		tokens := ArtifactTokens(id, r.MavenCompatible())
		if r.MavenCompatible() {
			tokens["ext"], tokens["type"], tokens["classifier"] = "pom", "pom", ""
			return locate(r.URL(), r.IvyPattern(), tokens)
		}
		tokens["artifact"], tokens["ext"], tokens["type"], tokens["classifier"] = "ivy", "xml", "ivy", ""
		return locate(r.URL(), r.IvyPattern(), tokens)
	case MavenRepository:
		return locate(r.URL(), MavenPattern, ArtifactTokens(id.WithExtension("pom"), true))
	case PredefinedRepository:
		return nil, fmt.Errorf("%w: %s", ErrUnresolved, r.ID())
	default:
		return nil, fmt.Errorf("%w: unsupported repository type %T", ErrInvalidRepository, repo)
	}
}

// LocalPath returns the file system path of a file:// url
func LocalPath(u *url.URL) (string, bool) {
	if u.Scheme != "file" {
		return "", false
	}
	path := u.Path
	// file:///C:/foo on windows
	if len(path) > 2 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), true
}

func locate(base *url.URL, pattern string, tokens Tokens) (*url.URL, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: no base url", ErrInvalidURL)
	}
	rel, err := Substitute(pattern, tokens)
	if err != nil {
		return nil, err
	}

	joined := *base
	joined.Path = strings.TrimSuffix(base.Path, "/") + "/" + strings.TrimPrefix(rel, "/")
	joined.RawPath = ""
	return &joined, nil
}
