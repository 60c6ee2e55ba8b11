package fetch

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/minepkg/xsboot/internals/cache"
	"github.com/minepkg/xsboot/pkg/coord"
	"github.com/minepkg/xsboot/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const libJar = "jar content"

func pomFor(org, name, version string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <groupId>%s</groupId>
  <artifactId>%s</artifactId>
  <version>%s</version>
</project>`, org, name, version)
}

type mavenServer struct {
	*httptest.Server
	files     map[string]string
	downloads int32
}

func newMavenServer(t *testing.T, files map[string]string) *mavenServer {
	t.Helper()
	m := &mavenServer{files: files}
	m.Server = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, ok := m.files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if r.Method == http.MethodGet && filepath.Ext(r.URL.Path) == ".jar" {
			atomic.AddInt32(&m.downloads, 1)
		}
		w.Write([]byte(content))
	}))
	t.Cleanup(m.Close)
	return m
}

func defaultFiles() map[string]string {
	return map[string]string{
		"/org/example/lib/1.0/lib-1.0.pom":      pomFor("org.example", "lib", "1.0"),
		"/org/example/lib/1.0/lib-1.0.jar":      libJar,
		"/org/example/lib/1.0/lib-1.0.jar.sha1": fmt.Sprintf("%x", sha1.Sum([]byte(libJar))),
	}
}

func mustParse(t *testing.T, lines ...string) []repository.Repository {
	t.Helper()
	repos, err := repository.ParseList(lines)
	require.NoError(t, err)
	return repos
}

func TestFetcher_maven(t *testing.T) {
	srv := newMavenServer(t, defaultFiles())
	c := cache.New(t.TempDir())
	f := New(mustParse(t, "remote: "+srv.URL), repository.Locations{}, srv.Client(), c)
	id := coord.MustParse("org.example:lib:1.0")

	res, err := f.Fetch(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "remote", res.Repository)
	assert.False(t, res.Cached)
	assert.Equal(t, c.Path("remote", id), res.Path)

	buf, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, libJar, string(buf))

	// second fetch is served from the cache
	res, err = f.Fetch(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.Equal(t, int32(1), atomic.LoadInt32(&srv.downloads))
}

func TestFetcher_cachedDescriptor(t *testing.T) {
	dir := t.TempDir()
	id := coord.MustParse("org.example:lib:1.0")

	srv := newMavenServer(t, defaultFiles())
	f := New(mustParse(t, "remote: "+srv.URL), repository.Locations{}, srv.Client(), cache.New(dir))
	res, err := f.Fetch(context.Background(), id)
	require.NoError(t, err)
	assert.FileExists(t, cache.New(dir).DescriptorPath("remote", id, "lib-1.0.pom"))

	// the same repository without the pom still works through the cached descriptor
	files := defaultFiles()
	delete(files, "/org/example/lib/1.0/lib-1.0.pom")
	noPom := newMavenServer(t, files)
	require.NoError(t, os.Remove(res.Path))

	f = New(mustParse(t, "remote: "+noPom.URL), repository.Locations{}, noPom.Client(), cache.New(dir))
	res, err = f.Fetch(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, int32(1), atomic.LoadInt32(&noPom.downloads))

	// without a cache the descriptor is required again
	f = New(mustParse(t, "remote: "+noPom.URL), repository.Locations{}, noPom.Client(), nil)
	_, err = f.Locate(context.Background(), id)
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.ErrorIs(t, notFound.Attempts[0].Err, ErrNoDescriptor)
}

func TestFetcher_notFound(t *testing.T) {
	files := defaultFiles()
	delete(files, "/org/example/lib/1.0/lib-1.0.pom")
	srv := newMavenServer(t, files)

	f := New(mustParse(t, "remote: "+srv.URL), repository.Locations{}, srv.Client(), cache.New(t.TempDir()))

	var attempts []Attempt
	f.OnAttempt = func(id coord.ID, a Attempt) { attempts = append(attempts, a) }

	_, err := f.Fetch(context.Background(), coord.MustParse("org.example:lib:1.0"))
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Len(t, notFound.Attempts, 1)
	assert.ErrorIs(t, notFound.Attempts[0].Err, ErrNoDescriptor)
	assert.Equal(t, srv.URL+"/org/example/lib/1.0/lib-1.0.jar", notFound.Attempts[0].URL)
	assert.Len(t, attempts, 1)

	_, err = f.Fetch(context.Background(), coord.MustParse("org.example:other:1.0"))
	require.True(t, errors.As(err, &notFound))
	assert.Contains(t, err.Error(), "could not find org.example:other:1.0")
}

func TestFetcher_inconsistentDescriptor(t *testing.T) {
	files := defaultFiles()
	files["/org/example/lib/1.0/lib-1.0.pom"] = pomFor("org.example", "lib", "2.0")
	srv := newMavenServer(t, files)

	id := coord.MustParse("org.example:lib:1.0")
	f := New(mustParse(t, "remote: "+srv.URL), repository.Locations{}, srv.Client(), cache.New(t.TempDir()))
	_, err := f.Fetch(context.Background(), id)
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.ErrorIs(t, notFound.Attempts[0].Err, ErrInconsistent)

	// the same layout as ivy repository without the check succeeds
	pattern := "[organisation]/[module]/[revision]/[artifact]-[revision].[ext]"
	f = New(
		mustParse(t, "remote: "+srv.URL+", "+pattern+", mavenCompatible, skipConsistencyCheck"),
		repository.Locations{},
		srv.Client(),
		cache.New(t.TempDir()),
	)
	_, err = f.Fetch(context.Background(), id)
	require.NoError(t, err)
}

func TestFetcher_fileRepositoryInPlace(t *testing.T) {
	ivyHome := t.TempDir()
	jar := filepath.Join(ivyHome, "local", "org.example", "lib", "1.0", "jars", "lib.jar")
	require.NoError(t, os.MkdirAll(filepath.Dir(jar), 0755))
	require.NoError(t, os.WriteFile(jar, []byte(libJar), 0644))

	// the predefined local repository has optional descriptors
	f := New(mustParse(t, "local"), repository.Locations{IvyHome: ivyHome}, nil, nil)

	res, err := f.Fetch(context.Background(), coord.MustParse("org.example:lib:1.0"))
	require.NoError(t, err)
	assert.Equal(t, "local", res.Repository)
	assert.Equal(t, jar, res.Path)
	assert.False(t, res.Cached)

	_, err = f.Fetch(context.Background(), coord.MustParse("org.example:lib:2.0"))
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.ErrorIs(t, notFound.Attempts[0].Err, ErrNoArtifact)
}

func TestFetcher_orderAndBootOnly(t *testing.T) {
	empty := newMavenServer(t, map[string]string{})
	full := newMavenServer(t, defaultFiles())
	client := full.Client()
	// both tls servers use the same test certificate
	id := coord.MustParse("org.example:lib:1.0")

	repos := mustParse(t, "empty: "+empty.URL, "boot: "+full.URL+", bootOnly")
	f := New(repos, repository.Locations{}, client, cache.New(t.TempDir()))

	_, err := f.Fetch(context.Background(), id)
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Len(t, notFound.Attempts, 1)

	f.Boot = true
	res, err := f.Fetch(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "boot", res.Repository)
}

func TestFetcher_FetchAll(t *testing.T) {
	files := defaultFiles()
	files["/org/example/util/1.0/util-1.0.pom"] = pomFor("org.example", "util", "1.0")
	files["/org/example/util/1.0/util-1.0.jar"] = "util"
	srv := newMavenServer(t, files)

	f := New(mustParse(t, "remote: "+srv.URL), repository.Locations{}, srv.Client(), cache.New(t.TempDir()))
	ids := []coord.ID{
		coord.MustParse("org.example:util:1.0"),
		coord.MustParse("org.example:lib:1.0"),
		coord.MustParse("org.example:lib:1.0"),
	}

	var last int
	results, err := f.FetchAll(context.Background(), ids, func(p int) { last = p })
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "util", results[0].ID.Name)
	assert.Equal(t, 100, last)
	assert.Equal(t, int32(2), atomic.LoadInt32(&srv.downloads))
	for _, path := range Paths(results) {
		assert.FileExists(t, path)
	}
}

func TestCheckConsistency(t *testing.T) {
	id := coord.MustParse("org.example:lib:1.0")

	assert.NoError(t, checkConsistency(id, []byte(pomFor("org.example", "lib", "1.0")), true))
	assert.ErrorIs(t, checkConsistency(id, []byte(pomFor("org.other", "lib", "1.0")), true), ErrInconsistent)

	inherited := `<project><parent><groupId>org.example</groupId><version>1.0</version></parent><artifactId>lib</artifactId></project>`
	assert.NoError(t, checkConsistency(id, []byte(inherited), true))

	ivy := `<ivy-module version="2.0"><info organisation="org.example" module="lib" revision="1.0"/></ivy-module>`
	assert.NoError(t, checkConsistency(id, []byte(ivy), false))
	noRevision := `<ivy-module version="2.0"><info organisation="org.example" module="lib"/></ivy-module>`
	assert.NoError(t, checkConsistency(id, []byte(noRevision), false))

	assert.Error(t, checkConsistency(id, []byte("<project"), true))
}
