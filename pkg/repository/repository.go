/*
Package repository describes the repositories a launcher fetches its boot
artifacts from.

Repositories are configured with one line each, like in the [repositories]
section of a launcher configuration:

	local
	maven-central
	my-ivy: https://repo.example.com/ivy, [organization]/[module]/[revision]/[type]s/[artifact].[ext]
	my-maven: https://repo.example.com/maven2

Bare labels refer to the Predefined repositories.
*/
package repository

import (
	"net/url"
	"strings"
)

// Repository is implemented by every configured repository
type Repository interface {
	// ID is the name the repository was configured with
	ID() string
	// BootOnly repositories are only used to fetch the launcher's own artifacts
	BootOnly() bool
}

// PredefinedRepository is a repository referred to by label only
type PredefinedRepository interface {
	Repository
	Predefined() Predefined
}

// MavenRepository is a repository using the maven layout
type MavenRepository interface {
	Repository
	URL() *url.URL
	AllowInsecureProtocol() bool
}

// IvyRepository is a repository with custom ivy patterns
type IvyRepository interface {
	Repository
	URL() *url.URL
	IvyPattern() string
	ArtifactPattern() string
	// MavenCompatible repositories use slashes instead of dots in the organization
	MavenCompatible() bool
	SkipConsistencyCheck() bool
	// DescriptorOptional repositories may serve artifacts without ivy.xml
	DescriptorOptional() bool
	AllowInsecureProtocol() bool
}

var (
	_ PredefinedRepository = (*Builtin)(nil)
	_ MavenRepository      = (*Maven)(nil)
	_ IvyRepository        = (*Ivy)(nil)
)

// Builtin is a Predefined repository used in a configuration
type Builtin struct {
	id       Predefined
	bootOnly bool
}

// NewBuiltin returns a repository for p
func NewBuiltin(p Predefined) *Builtin {
	return &Builtin{id: p}
}

func (b *Builtin) ID() string             { return b.id.String() }
func (b *Builtin) BootOnly() bool         { return b.bootOnly }
func (b *Builtin) Predefined() Predefined { return b.id }

func (b *Builtin) String() string {
	if b.bootOnly {
		return b.id.String() + ": " + optBootOnly
	}
	return b.id.String()
}

// MavenOptions are used to create a Maven repository
type MavenOptions struct {
	ID                    string
	URL                   *url.URL
	BootOnly              bool
	AllowInsecureProtocol bool
}

// Maven is a repository with the default maven layout
type Maven struct {
	opts MavenOptions
}

// NewMaven returns a maven repository. Validate should be called on the result
// if the options come from user input
func NewMaven(opts MavenOptions) *Maven {
	return &Maven{opts: opts}
}

func (m *Maven) ID() string                  { return m.opts.ID }
func (m *Maven) BootOnly() bool              { return m.opts.BootOnly }
func (m *Maven) URL() *url.URL               { return m.opts.URL }
func (m *Maven) AllowInsecureProtocol() bool { return m.opts.AllowInsecureProtocol }

func (m *Maven) String() string {
	parts := []string{m.opts.URL.String()}
	if m.opts.BootOnly {
		parts = append(parts, optBootOnly)
	}
	if m.opts.AllowInsecureProtocol {
		parts = append(parts, optAllowInsecureProtocol)
	}
	return m.opts.ID + ": " + strings.Join(parts, ", ")
}

// IvyOptions are used to create an Ivy repository
type IvyOptions struct {
	ID                    string
	URL                   *url.URL
	IvyPattern            string
	ArtifactPattern       string
	MavenCompatible       bool
	SkipConsistencyCheck  bool
	DescriptorOptional    bool
	AllowInsecureProtocol bool
	BootOnly              bool
}

// Ivy is a repository using custom patterns
type Ivy struct {
	opts IvyOptions
}

// NewIvy returns an ivy repository. An empty ArtifactPattern defaults to the IvyPattern
func NewIvy(opts IvyOptions) *Ivy {
	if opts.ArtifactPattern == "" {
		opts.ArtifactPattern = opts.IvyPattern
	}
	return &Ivy{opts: opts}
}

func (i *Ivy) ID() string                  { return i.opts.ID }
func (i *Ivy) BootOnly() bool              { return i.opts.BootOnly }
func (i *Ivy) URL() *url.URL               { return i.opts.URL }
func (i *Ivy) IvyPattern() string          { return i.opts.IvyPattern }
func (i *Ivy) ArtifactPattern() string     { return i.opts.ArtifactPattern }
func (i *Ivy) MavenCompatible() bool       { return i.opts.MavenCompatible }
func (i *Ivy) SkipConsistencyCheck() bool  { return i.opts.SkipConsistencyCheck }
func (i *Ivy) DescriptorOptional() bool    { return i.opts.DescriptorOptional }
func (i *Ivy) AllowInsecureProtocol() bool { return i.opts.AllowInsecureProtocol }

func (i *Ivy) String() string {
	parts := []string{i.opts.URL.String(), i.opts.IvyPattern}
	if i.opts.ArtifactPattern != i.opts.IvyPattern {
		parts = append(parts, i.opts.ArtifactPattern)
	}

	flags := []struct {
		set  bool
		name string
	}{
		{i.opts.BootOnly, optBootOnly},
		{i.opts.MavenCompatible, optMavenCompatible},
		{i.opts.DescriptorOptional, optDescriptorOptional},
		{i.opts.SkipConsistencyCheck, optSkipConsistencyCheck},
		{i.opts.AllowInsecureProtocol, optAllowInsecureProtocol},
	}
	for _, f := range flags {
		if f.set {
			parts = append(parts, f.name)
		}
	}

	return i.opts.ID + ": " + strings.Join(parts, ", ")
}
