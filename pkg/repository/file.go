package repository

import (
	"io"
	"os"
	"strings"

	"github.com/magiconair/properties"
)

// RepositoriesSection is the section of a repositories file that lists repositories
const RepositoriesSection = "repositories"

// ReadFile reads a repositories file like ~/.sbt/repositories
func ReadFile(path string) ([]Repository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read reads repositories from r. The content looks like this:
//
//	[repositories]
//	local
//	my-maven: https://repo.example.com/maven2
//
// Lines before the first section header are treated as repositories as well.
func Read(r io.Reader) ([]Repository, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	lines, err := sectionLines(buf, RepositoriesSection)
	if err != nil {
		return nil, err
	}
	return ParseList(lines)
}

// sectionLines returns the "key: value" lines of a section in file order
func sectionLines(buf []byte, section string) ([]string, error) {
	// variables are expanded by the repository parser, it supports defaults
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(buf)
	if err != nil {
		return nil, err
	}

	current := section
	lines := []string{}
	for _, key := range props.Keys() {
		if strings.HasPrefix(key, "[") && strings.HasSuffix(key, "]") {
			current = strings.TrimSpace(key[1 : len(key)-1])
			continue
		}
		if current != section {
			continue
		}

		value := props.GetString(key, "")
		if value == "" {
			lines = append(lines, key)
			continue
		}
		lines = append(lines, key+": "+value)
	}
	return lines, nil
}
