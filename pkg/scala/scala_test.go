package scala

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeJar creates a jar in dir with the given entries
func writeJar(t *testing.T, dir string, name string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for entry, content := range entries {
		fw, err := w.Create(entry)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func libraryJar(t *testing.T, dir string, version string) string {
	return writeJar(t, dir, "scala-library-"+version+".jar", map[string]string{
		"library.properties": "version.number=" + version + "\nmaven.version.number=" + version + "\n",
		"scala/Predef.class": "cafebabe",
	})
}

func TestReadLibraryVersion(t *testing.T) {
	dir := t.TempDir()
	jar := libraryJar(t, dir, "2.13.12")

	version, err := ReadLibraryVersion(jar)
	require.NoError(t, err)
	assert.Equal(t, "2.13.12", version)

	other := writeJar(t, dir, "other.jar", map[string]string{"a/B.class": ""})
	_, err = ReadLibraryVersion(other)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestNewLibraryLoader(t *testing.T) {
	dir := t.TempDir()
	jar := libraryJar(t, dir, "2.13.12")

	loader, err := NewLibraryLoader("2.13.12", jar)
	require.NoError(t, err)
	assert.Equal(t, "2.13.12", loader.ScalaVersion())
	assert.Nil(t, loader.Parent())

	_, err = NewLibraryLoader("2.12.18", jar)
	var mismatch *VersionMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "2.13.12", mismatch.Actual)

	other := writeJar(t, dir, "other.jar", map[string]string{"a/B.class": ""})
	_, err = NewLibraryLoader("2.13.12", other)
	assert.ErrorIs(t, err, ErrNoLibrary)

	_, err = NewLibraryLoader("2.13.12")
	assert.ErrorIs(t, err, ErrNoLibrary)

	_, err = NewLibraryLoader("4.0.0", jar)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	// scala 3 libraries are not verified against library.properties
	scala3, err := NewLibraryLoader("3.3.1", other, jar)
	require.NoError(t, err)
	assert.Equal(t, "3.3.1", scala3.ScalaVersion())
}

func TestProvider(t *testing.T) {
	dir := t.TempDir()
	lib := libraryJar(t, dir, "2.13.12")
	compiler := writeJar(t, dir, "scala-compiler.jar", map[string]string{"scala/tools/nsc/Main.class": ""})
	reflect := writeJar(t, dir, "scala-reflect.jar", map[string]string{"scala/reflect/api/Universe.class": ""})

	var p ExtendedScalaProvider
	p, err := NewProvider("2.13.12", []string{lib}, []string{compiler, reflect})
	require.NoError(t, err)

	assert.Equal(t, "2.13.12", p.Version())
	assert.Equal(t, lib, p.LibraryJar())
	assert.Equal(t, compiler, p.CompilerJar())
	assert.Equal(t, []string{lib, compiler, reflect}, p.Jars())

	// the library loader is the parent of the full loader
	assert.Same(t, p.LoaderLibraryOnly().ClassLoader, p.Loader().Parent())
	assert.Equal(t, []string{lib}, p.LoaderLibraryOnly().ClassPath())

	found, err := p.Loader().Find("scala/tools/nsc/Main.class")
	require.NoError(t, err)
	assert.Equal(t, compiler, found)

	found, err = p.Loader().Find("scala/Predef.class")
	require.NoError(t, err)
	assert.Equal(t, lib, found)

	_, err = p.LoaderLibraryOnly().Find("scala/tools/nsc/Main.class")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, err = NewProvider("2.13.12", []string{lib}, nil)
	assert.ErrorIs(t, err, ErrNoCompiler)
}

func TestClassLoader(t *testing.T) {
	parent := NewClassLoader(nil, "a.jar", "b.jar")
	child := NewClassLoader(parent, "c.jar", "a.jar")

	assert.Equal(t, []string{"a.jar", "b.jar", "c.jar"}, child.ClassPath())
	assert.Equal(t, []string{"c.jar", "a.jar"}, child.Jars())
	assert.Equal(t, strings.Join([]string{"a.jar", "b.jar", "c.jar"}, string(os.PathListSeparator)), child.String())

	// the loader keeps its own copy
	jars := []string{"x.jar"}
	l := NewClassLoader(nil, jars...)
	jars[0] = "y.jar"
	assert.Equal(t, []string{"x.jar"}, l.Jars())
}

func TestClassLoader_Find_directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "classes", "app"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "classes", "app", "Main.class"), nil, 0644))

	l := NewClassLoader(nil, filepath.Join(dir, "classes"))
	found, err := l.Find("app/Main.class")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "classes"), found)

	_, err = NewClassLoader(nil, filepath.Join(dir, "missing.jar")).Find("x")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestClassLoader_Find_nestedEntries(t *testing.T) {
	dir := t.TempDir()
	empty := writeJar(t, dir, "empty.jar", map[string]string{"a/Empty.class": ""})
	full := writeJar(t, dir, "full.jar", map[string]string{"a/b/Full.class": "cafebabe"})
	l := NewClassLoader(nil, empty, full)

	found, err := l.Find("a/Empty.class")
	require.NoError(t, err)
	assert.Equal(t, empty, found)

	found, err = l.Find("a/b/Full.class")
	require.NoError(t, err)
	assert.Equal(t, full, found)

	// only the full path matches
	_, err = l.Find("Full.class")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestModulesFor(t *testing.T) {
	mods, err := ModulesFor("2.13.12", "")
	require.NoError(t, err)
	assert.Equal(t, "org.scala-lang:scala-library:2.13.12", mods.Library[0].String())
	assert.Equal(t, "org.scala-lang:scala-compiler:2.13.12", mods.Compiler[0].String())
	assert.Equal(t, "org.scala-lang:scala-reflect:2.13.12", mods.Compiler[1].String())
	assert.Len(t, mods.All(), 3)

	old, err := ModulesFor("2.9.3", "")
	require.NoError(t, err)
	assert.Len(t, old.Compiler, 1)

	three, err := ModulesFor("3.3.1", "")
	require.NoError(t, err)
	assert.Equal(t, "org.scala-lang:scala3-library_3:3.3.1", three.Library[0].String())
	assert.Equal(t, "org.scala-lang:scala-library:"+DefaultScala2Library, three.Library[1].String())
	compiler := []string{}
	for _, id := range three.Compiler {
		compiler = append(compiler, id.String())
	}
	assert.Equal(t, []string{
		"org.scala-lang:scala3-compiler_3:3.3.1",
		"org.scala-lang:scala3-interfaces:3.3.1",
		"org.scala-lang:tasty-core_3:3.3.1",
	}, compiler)
	assert.Len(t, three.All(), 5)

	three, err = ModulesFor("3.3.1", "2.13.10")
	require.NoError(t, err)
	assert.Equal(t, "2.13.10", three.Library[1].Revision)

	_, err = ModulesFor("1.0.0", "")
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	_, err = ModulesFor("not-a-version", "")
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestBinaryVersion(t *testing.T) {
	tests := map[string]string{
		"2.13.12": "2.13",
		"2.12.18": "2.12",
		"3.3.1":   "3",
	}
	for in, want := range tests {
		got, err := BinaryVersion(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := BinaryVersion("5.0.0")
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}
