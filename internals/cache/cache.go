package cache

import (
	"fmt"
	"hash/fnv"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dchest/uniuri"
	"github.com/dustin/go-humanize"
	"github.com/minepkg/xsboot/pkg/coord"
)

// Cache is a helper to cache/store downloaded artifacts locally.
// Files are stored by repository id and artifact coordinates
type Cache struct {
	location string
}

// New returns a cache in location
func New(location string) *Cache {
	return &Cache{location: location}
}

// Default returns the cache in the users cache dir
func Default() (*Cache, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	return New(filepath.Join(dir, "xsboot", "artifacts")), nil
}

// Location returns the root directory of the cache
func (c *Cache) Location() string {
	return c.location
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// safe makes s usable as a single path element. Elements that had to be
// changed get a "+hash" of the original, which never occurs in clean elements
func safe(s string) string {
	clean := unsafeChars.ReplaceAllString(s, "_")
	if clean == s && s != "" && s != "." && s != ".." {
		return s
	}
	if clean == "" || clean == "." || clean == ".." {
		clean = "_"
	}
	h := fnv.New32a()
	h.Write([]byte(s))
	return fmt.Sprintf("%s+%08x", clean, h.Sum32())
}

// safeFile is like safe but keeps a clean extension at the end
func safeFile(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if ext == "" || base == "" || unsafeChars.MatchString(ext) {
		return safe(name)
	}
	return safe(base) + ext
}

// Path returns where the artifact id from repository repoID is stored
func (c *Cache) Path(repoID string, id coord.ID) string {
	return filepath.Join(c.dir(repoID, id), safeFile(id.FileName()))
}

func (c *Cache) dir(repoID string, id coord.ID) string {
	return filepath.Join(
		c.location,
		safe(repoID),
		safe(id.Organization),
		safe(id.Name),
		safe(id.Revision),
	)
}

// DescriptorPath returns where the descriptor (pom or ivy.xml) of id is stored
func (c *Cache) DescriptorPath(repoID string, id coord.ID, name string) string {
	return filepath.Join(c.dir(repoID, id), safeFile(name))
}

// ReadDescriptor returns a stored descriptor. The error matches os.ErrNotExist if there is none
func (c *Cache) ReadDescriptor(repoID string, id coord.ID, name string) ([]byte, error) {
	return os.ReadFile(c.DescriptorPath(repoID, id, name))
}

// StoreDescriptor saves the descriptor buf of id
func (c *Cache) StoreDescriptor(repoID string, id coord.ID, name string, buf []byte) error {
	target := c.DescriptorPath(repoID, id, name)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	tmp := target + ".part-" + uniuri.New()
	if err := os.WriteFile(tmp, buf, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Has reports if the artifact is cached
func (c *Cache) Has(repoID string, id coord.ID) bool {
	info, err := os.Stat(c.Path(repoID, id))
	return err == nil && info.Mode().IsRegular()
}

// Stats describes the cache content
type Stats struct {
	Files int
	Bytes uint64
}

// HumanSize returns the size like "12 MB"
func (s Stats) HumanSize() string {
	return humanize.Bytes(s.Bytes)
}

// Stats walks the cache and sums up file sizes
func (c *Cache) Stats() (Stats, error) {
	stats := Stats{}
	err := filepath.WalkDir(c.location, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == c.location {
				return filepath.SkipDir
			}
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		stats.Files++
		stats.Bytes += uint64(info.Size())
		return nil
	})
	return stats, err
}

// Clean removes everything in the cache
func (c *Cache) Clean() error {
	if err := os.RemoveAll(c.location); err != nil {
		return err
	}
	return os.MkdirAll(c.location, 0755)
}
