package repository

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

const (
	optBootOnly              = "bootOnly"
	optMavenCompatible       = "mavenCompatible"
	optDescriptorOptional    = "descriptorOptional"
	optSkipConsistencyCheck  = "skipConsistencyCheck"
	optAllowInsecureProtocol = "allowInsecureProtocol"
)

var options = map[string]bool{
	optBootOnly:              true,
	optMavenCompatible:       true,
	optDescriptorOptional:    true,
	optSkipConsistencyCheck:  true,
	optAllowInsecureProtocol: true,
}

var (
	// ErrInsecureProtocol is returned for http urls without allowInsecureProtocol
	ErrInsecureProtocol = errors.New("insecure protocol is unsupported")
	// ErrInvalidURL is returned for urls that can not be used as repository location
	ErrInvalidURL = errors.New("invalid repository url")
	// ErrInvalidRepository is returned for lines that can not be interpreted
	ErrInvalidRepository = errors.New("invalid repository definition")
	// ErrDuplicateID is returned by ParseList if two repositories share an id
	ErrDuplicateID = errors.New("duplicate repository id")
	// ErrUndefinedVariable is returned for ${variables} without value or default
	ErrUndefinedVariable = errors.New("undefined variable")
)

// ParseError wraps an error with the line it occurred in
type ParseError struct {
	// Line is 1 based. 0 if unknown
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("repository %q: %s", e.Text, e.Err)
	}
	return fmt.Sprintf("line %d (%q): %s", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parser turns configuration lines into repositories
type Parser struct {
	// Lookup resolves ${name} variables. DefaultLookup is used if nil
	Lookup func(name string) (string, bool)
}

// DefaultLookup resolves "user.home" and environment variables
func DefaultLookup(name string) (string, bool) {
	if name == "user.home" {
		home, err := os.UserHomeDir()
		if err == nil {
			return home, true
		}
	}
	return os.LookupEnv(name)
}

// ParseLine parses a single "id[: value]" line
func ParseLine(line string) (Repository, error) {
	return (&Parser{}).ParseLine(line)
}

// ParseList parses all lines, skipping empty ones and # comments
func ParseList(lines []string) ([]Repository, error) {
	return (&Parser{}).ParseList(lines)
}

// Parse interprets a single repository. An empty value means id is the label
// of a predefined repository
func Parse(id string, value string) (Repository, error) {
	return (&Parser{}).Parse(id, value)
}

// ParseList parses all lines, skipping empty ones and # comments
func (p *Parser) ParseList(lines []string) ([]Repository, error) {
	repos := make([]Repository, 0, len(lines))
	seen := make(map[string]bool, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		repo, err := p.ParseLine(trimmed)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Text: trimmed, Err: err}
		}
		if seen[repo.ID()] {
			return nil, &ParseError{Line: i + 1, Text: trimmed, Err: fmt.Errorf("%w: %s", ErrDuplicateID, repo.ID())}
		}
		seen[repo.ID()] = true
		repos = append(repos, repo)
	}

	return repos, nil
}

// ParseLine parses a single "id[: value]" line
func (p *Parser) ParseLine(line string) (Repository, error) {
	id, value, found := strings.Cut(line, ":")
	id = strings.TrimSpace(id)
	if !found {
		return p.Parse(id, "")
	}
	return p.Parse(id, strings.TrimSpace(value))
}

// Parse interprets a single repository. An empty value means id is the label
// of a predefined repository
func (p *Parser) Parse(id string, value string) (Repository, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidRepository)
	}

	// predefined repositories have no value (or just "bootOnly")
	if value == "" || value == optBootOnly {
		predef, err := ParsePredefined(id)
		if err != nil {
			return nil, err
		}
		return &Builtin{id: predef, bootOnly: value == optBootOnly}, nil
	}

	expanded, err := p.expand(value)
	if err != nil {
		return nil, err
	}

	fields := strings.Split(expanded, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	location, err := parseURL(fields[0])
	if err != nil {
		return nil, err
	}

	set := map[string]bool{}
	patterns := []string{}
	for _, field := range fields[1:] {
		switch {
		case field == "":
			continue
		case options[field]:
			set[field] = true
		default:
			patterns = append(patterns, field)
		}
	}

	var repo Repository
	switch len(patterns) {
	case 0:
		if set[optMavenCompatible] || set[optDescriptorOptional] || set[optSkipConsistencyCheck] {
			return nil, fmt.Errorf("%w: %s requires an ivy pattern for its options", ErrInvalidRepository, id)
		}
		repo = NewMaven(MavenOptions{
			ID:                    id,
			URL:                   location,
			BootOnly:              set[optBootOnly],
			AllowInsecureProtocol: set[optAllowInsecureProtocol],
		})
	case 1, 2:
		artifactPattern := patterns[0]
		if len(patterns) == 2 {
			artifactPattern = patterns[1]
		}
		repo = NewIvy(IvyOptions{
			ID:                    id,
			URL:                   location,
			IvyPattern:            patterns[0],
			ArtifactPattern:       artifactPattern,
			MavenCompatible:       set[optMavenCompatible],
			SkipConsistencyCheck:  set[optSkipConsistencyCheck],
			DescriptorOptional:    set[optDescriptorOptional],
			AllowInsecureProtocol: set[optAllowInsecureProtocol],
			BootOnly:              set[optBootOnly],
		})
	default:
		return nil, fmt.Errorf("%w: %s has %d patterns, at most 2 are allowed", ErrInvalidRepository, id, len(patterns))
	}

	if err := Validate(repo); err != nil {
		return nil, err
	}
	return repo, nil
}

// Validate checks that repo does not use plain http unless it is allowed to
func Validate(repo Repository) error {
	var (
		location *url.URL
		insecure bool
	)
	switch r := repo.(type) {
	case MavenRepository:
		location, insecure = r.URL(), r.AllowInsecureProtocol()
	case IvyRepository:
		location, insecure = r.URL(), r.AllowInsecureProtocol()
	default:
		return nil
	}

	if location == nil {
		return fmt.Errorf("%w: %s has no url", ErrInvalidURL, repo.ID())
	}
	if location.Scheme == "http" && !insecure {
		return fmt.Errorf(
			"%w: %s uses %s. Use https or add %s",
			ErrInsecureProtocol,
			repo.ID(),
			location.Redacted(),
			optAllowInsecureProtocol,
		)
	}
	return nil
}

func parseURL(raw string) (*url.URL, error) {
	location, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, err)
	}

	switch location.Scheme {
	case "http", "https":
		if location.Host == "" {
			return nil, fmt.Errorf("%w: %q has no host", ErrInvalidURL, raw)
		}
	case "file":
		if location.Path == "" {
			return nil, fmt.Errorf("%w: %q has no path", ErrInvalidURL, raw)
		}
	case "":
		return nil, fmt.Errorf("%w: %q has no scheme", ErrInvalidURL, raw)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, location.Scheme)
	}

	return location, nil
}

// expand replaces ${name} and ${name-default}. Defaults may contain variables
// themselves, looked up values are inserted as they are
func (p *Parser) expand(s string) (string, error) {
	lookup := p.Lookup
	if lookup == nil {
		lookup = DefaultLookup
	}
	return expandVariables(s, lookup)
}

func expandVariables(s string, lookup func(name string) (string, bool)) (string, error) {
	var b strings.Builder
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			break
		}
		end := closingBrace(s, start+2)
		if end < 0 {
			break
		}
		b.WriteString(s[:start])

		name, fallback, hasFallback := strings.Cut(s[start+2:end], "-")
		value, ok := lookup(name)
		switch {
		case ok:
			b.WriteString(value)
		case hasFallback:
			expanded, err := expandVariables(fallback, lookup)
			if err != nil {
				return "", err
			}
			b.WriteString(expanded)
		default:
			return "", fmt.Errorf("%w: %s", ErrUndefinedVariable, name)
		}
		s = s[end+1:]
	}
	b.WriteString(s)
	return b.String(), nil
}

// closingBrace returns the index of the "}" that closes a variable starting at from, or -1
func closingBrace(s string, from int) int {
	depth := 0
	for i := from; i < len(s); i++ {
		switch {
		case s[i] == '$' && i+1 < len(s) && s[i+1] == '{':
			depth++
			i++
		case s[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}
