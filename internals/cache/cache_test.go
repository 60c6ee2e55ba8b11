package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minepkg/xsboot/pkg/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	c := New(dir)
	id := coord.MustParse("org.scala-lang:scala-library:2.13.12")

	stats, err := c.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Files)

	path := c.Path("maven-central", id)
	assert.Equal(t, filepath.Join(dir, "maven-central", "org.scala-lang", "scala-library", "2.13.12", "scala-library-2.13.12.jar"), path)
	assert.False(t, c.Has("maven-central", id))

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, make([]byte, 2000), 0644))
	assert.True(t, c.Has("maven-central", id))

	stats, err = c.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Files)
	assert.Equal(t, "2.0 kB", stats.HumanSize())

	require.NoError(t, c.Clean())
	assert.False(t, c.Has("maven-central", id))
	assert.DirExists(t, dir)
}

func TestCache_Path_unsafe(t *testing.T) {
	c := New("/cache")
	id := coord.ID{Organization: "..", Name: "a/b", Revision: "1"}

	path := c.Path("my repo", id)
	rel, err := filepath.Rel("/cache", path)
	require.NoError(t, err)
	parts := strings.Split(filepath.ToSlash(rel), "/")
	require.Len(t, parts, 5)
	assert.True(t, strings.HasPrefix(parts[0], "my_repo+"), parts[0])
	assert.True(t, strings.HasPrefix(parts[1], "_+"), parts[1])
	assert.True(t, strings.HasPrefix(parts[2], "a_b+"), parts[2])
	assert.Equal(t, "1", parts[3])
	assert.True(t, strings.HasSuffix(parts[4], ".jar"), parts[4])
}

func TestCache_Path_distinctIDs(t *testing.T) {
	c := New("/cache")
	id := coord.MustParse("org.example:lib:1.0")

	tests := [][2]string{
		{"my repo", "my_repo"},
		{"my repo", "my/repo"},
		{"a..b", "a..b "},
	}
	for _, tt := range tests {
		assert.NotEqual(t, c.Path(tt[0], id), c.Path(tt[1], id), "%q and %q", tt[0], tt[1])
	}

	a := coord.ID{Organization: "org", Name: "lib", Revision: "1", Classifier: "x y"}
	b := coord.ID{Organization: "org", Name: "lib", Revision: "1", Classifier: "x_y"}
	assert.NotEqual(t, c.Path("remote", a), c.Path("remote", b))
}

func TestCache_descriptors(t *testing.T) {
	c := New(t.TempDir())
	id := coord.MustParse("org.example:lib:1.0")

	_, err := c.ReadDescriptor("remote", id, "lib-1.0.pom")
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, c.StoreDescriptor("remote", id, "lib-1.0.pom", []byte("<project/>")))
	buf, err := c.ReadDescriptor("remote", id, "lib-1.0.pom")
	require.NoError(t, err)
	assert.Equal(t, "<project/>", string(buf))

	// descriptors live next to the artifact
	assert.Equal(t, filepath.Dir(c.Path("remote", id)), filepath.Dir(c.DescriptorPath("remote", id, "lib-1.0.pom")))
}
