/*
Package scala provides the scala library and compiler to launched applications.

A provider is made of two class loaders: the library loader with only the
scala library and the full loader (library + compiler) that uses the library
loader as its parent.
*/
package scala

import (
	"errors"
)

// ErrNoCompiler is returned when a provider is created without compiler jars
var ErrNoCompiler = errors.New("no scala compiler jar")

// ScalaProvider provides a single scala version
type ScalaProvider interface {
	// Version is the scala version, like "2.13.12"
	Version() string
	// Jars are all jars of this provider (library and compiler)
	Jars() []string
	LibraryJar() string
	CompilerJar() string
	// Loader loads the library and the compiler
	Loader() *ClassLoader
}

// ExtendedScalaProvider also exposes a loader with only the scala library
type ExtendedScalaProvider interface {
	ScalaProvider
	// LoaderLibraryOnly loads the classes of the scala library. It is the parent of Loader
	LoaderLibraryOnly() *LibraryLoader
}

var _ ExtendedScalaProvider = (*Provider)(nil)

// Provider implements ExtendedScalaProvider for jars on disk
type Provider struct {
	library *LibraryLoader
	loader  *ClassLoader
}

// NewProvider returns a provider for the given library and compiler jars.
// The first jar of each list is the primary library/compiler jar
func NewProvider(version string, libraryJars []string, compilerJars []string) (*Provider, error) {
	if len(compilerJars) == 0 {
		return nil, ErrNoCompiler
	}

	library, err := NewLibraryLoader(version, libraryJars...)
	if err != nil {
		return nil, err
	}

	return &Provider{
		library: library,
		loader:  NewClassLoader(library.ClassLoader, compilerJars...),
	}, nil
}

func (p *Provider) Version() string { return p.library.ScalaVersion() }

func (p *Provider) Jars() []string { return p.loader.ClassPath() }

func (p *Provider) LibraryJar() string { return p.library.jars[0] }

func (p *Provider) CompilerJar() string { return p.loader.jars[0] }

func (p *Provider) Loader() *ClassLoader { return p.loader }

func (p *Provider) LoaderLibraryOnly() *LibraryLoader { return p.library }
