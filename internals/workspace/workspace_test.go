package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/minepkg/xsboot/internals/repoconfig"
	"github.com/minepkg/xsboot/pkg/bootconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestOpen_withoutConfig(t *testing.T) {
	w, err := Open(t.TempDir(), Settings{Repositories: []string{"maven-central"}, CacheDir: "/tmp/c"})
	require.NoError(t, err)
	assert.False(t, w.HasConfig())
	assert.Equal(t, "2.13.12", w.ScalaVersion("2.13.12"))

	eff, err := w.Repositories()
	require.NoError(t, err)
	assert.Equal(t, repoconfig.OriginGlobal, eff.Origin)

	c, err := w.Cache()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/c", c.Location())
}

func TestOpen_withConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := bootconfig.New()
	cfg.Scala.Version = "3.3.1"
	cfg.Boot.Directory = filepath.Join(dir, "boot")
	cfg.Ivy.IvyHome = filepath.Join(dir, "ivy")
	require.NoError(t, os.WriteFile(filepath.Join(dir, bootconfig.FileName), cfg.Buffer().Bytes(), 0644))

	w, err := Open(dir, Settings{IvyHome: "/ignored", MavenHome: "/m2"})
	require.NoError(t, err)
	require.True(t, w.HasConfig())
	assert.Equal(t, "3.3.1", w.ScalaVersion("2.13.12"))

	loc, err := w.Locations()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ivy"), loc.IvyHome)
	assert.Equal(t, "/m2", loc.MavenHome)

	c, err := w.Cache()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "boot"), c.Location())
}

func TestWorkspace_Fetcher(t *testing.T) {
	keyring.MockInit()
	w, err := Open(t.TempDir(), Settings{CacheDir: t.TempDir(), GlobalDir: t.TempDir()})
	require.NoError(t, err)

	f, eff, err := w.Fetcher()
	require.NoError(t, err)
	assert.Equal(t, repoconfig.OriginDefault, eff.Origin)
	// predefined repositories are resolved
	require.Len(t, f.Repositories(), 2)
	assert.Equal(t, "local", f.Repositories()[0].ID())
}
