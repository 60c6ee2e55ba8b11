package scala

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	archiver "github.com/mholt/archiver/v3"
)

var (
	// ErrEntryNotFound is returned if no jar of a class path contains an entry
	ErrEntryNotFound = errors.New("entry not found")
)

// ClassLoader is an ordered list of jars (or directories) that is searched after its parent
type ClassLoader struct {
	parent *ClassLoader
	jars   []string
}

// NewClassLoader returns a loader for jars. parent can be nil
func NewClassLoader(parent *ClassLoader, jars ...string) *ClassLoader {
	copied := make([]string, len(jars))
	copy(copied, jars)
	return &ClassLoader{parent: parent, jars: copied}
}

// Parent returns the parent loader or nil
func (c *ClassLoader) Parent() *ClassLoader {
	return c.parent
}

// Jars returns the jars of this loader, without the ones of the parent
func (c *ClassLoader) Jars() []string {
	jars := make([]string, len(c.jars))
	copy(jars, c.jars)
	return jars
}

// ClassPath returns all jars in lookup order (parents first). Each jar is only included once
func (c *ClassLoader) ClassPath() []string {
	chain := []*ClassLoader{}
	for l := c; l != nil; l = l.parent {
		chain = append(chain, l)
	}

	seen := map[string]bool{}
	classPath := []string{}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, jar := range chain[i].jars {
			if seen[jar] {
				continue
			}
			seen[jar] = true
			classPath = append(classPath, jar)
		}
	}
	return classPath
}

// String returns the class path in the format the java -cp flag expects
func (c *ClassLoader) String() string {
	return strings.Join(c.ClassPath(), string(os.PathListSeparator))
}

// Find returns the first jar (in lookup order) that contains entry.
// entry is a slash separated path like "scala/Predef.class"
func (c *ClassLoader) Find(entry string) (string, error) {
	for _, jar := range c.ClassPath() {
		found, err := hasEntry(jar, entry)
		if err != nil {
			return "", err
		}
		if found {
			return jar, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrEntryNotFound, entry)
}

// hasEntry checks a jar or a class directory for entry
func hasEntry(jar string, entry string) (bool, error) {
	info, err := os.Stat(jar)
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		_, err := os.Stat(filepath.Join(jar, filepath.FromSlash(entry)))
		return err == nil, nil
	}

	_, err = readEntry(jar, entry)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrEntryNotFound):
		return false, nil
	default:
		return false, err
	}
}

// readEntry returns the content of a single file inside a jar
func readEntry(jar string, entry string) ([]byte, error) {
	var content []byte
	found := false

	err := archiver.NewZip().Walk(jar, func(f archiver.File) error {
		if entryName(f) != entry {
			return nil
		}
		buf, err := io.ReadAll(f)
		if err != nil {
			return err
		}
		content = buf
		found = true
		return archiver.ErrStopWalk
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", jar, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s in %s", ErrEntryNotFound, entry, jar)
	}
	return content, nil
}

// entryName returns the full path of f inside the archive
func entryName(f archiver.File) string {
	switch h := f.Header.(type) {
	case zip.FileHeader:
		return h.Name
	case *zip.FileHeader:
		return h.Name
	}
	return f.Name()
}
