// Package fetch downloads directly named artifacts from the configured
// repositories. Dependencies of the artifacts are not resolved.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/minepkg/xsboot/internals/cache"
	"github.com/minepkg/xsboot/internals/downloadmgr"
	"github.com/minepkg/xsboot/pkg/coord"
	"github.com/minepkg/xsboot/pkg/repository"
)

// maxDescriptorSize limits how much of a descriptor is read
const maxDescriptorSize = 4 << 20

var (
	// ErrNoDescriptor is returned if a repository has the artifact but no required descriptor
	ErrNoDescriptor = errors.New("module descriptor not found")
	// ErrNoArtifact is returned if a repository does not have the artifact
	ErrNoArtifact = errors.New("artifact not found")
)

// Attempt is one repository that was asked for an artifact
type Attempt struct {
	Repository string
	URL        string
	Err        error
}

// NotFoundError is returned if no repository has the artifact
type NotFoundError struct {
	ID       coord.ID
	Attempts []Attempt
}

func (e *NotFoundError) Error() string {
	msg := strings.Builder{}
	fmt.Fprintf(&msg, "could not find %s", e.ID)
	if len(e.Attempts) == 0 {
		msg.WriteString(": no repositories configured")
		return msg.String()
	}
	msg.WriteString(". Tried:")
	for _, a := range e.Attempts {
		fmt.Fprintf(&msg, "\n  %s: %s (%s)", a.Repository, a.URL, a.Err)
	}
	return msg.String()
}

// Result is a fetched artifact
type Result struct {
	ID         coord.ID
	Repository string
	// URL is where the artifact was found
	URL *url.URL
	// Path is the local file
	Path string
	// Cached is true if the file was already in the cache
	Cached bool
}

// Fetcher fetches artifacts from a list of repositories, in order
type Fetcher struct {
	repos  []repository.Repository
	client *http.Client
	cache  *cache.Cache
	// Boot includes bootOnly repositories
	Boot bool
	// OnAttempt is called for every failed repository lookup
	OnAttempt func(id coord.ID, a Attempt)
}

// New returns a Fetcher. Predefined repositories are resolved with loc
func New(repos []repository.Repository, loc repository.Locations, client *http.Client, c *cache.Cache) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		repos:  repository.ResolveAll(repos, loc),
		client: client,
		cache:  c,
	}
}

// Repositories returns the resolved repositories
func (f *Fetcher) Repositories() []repository.Repository {
	return f.repos
}

// pending is a located artifact that might still need to be downloaded
type pending struct {
	result   *Result
	download *downloadmgr.HTTPItem
}

// Fetch fetches a single artifact
func (f *Fetcher) Fetch(ctx context.Context, id coord.ID) (*Result, error) {
	results, err := f.FetchAll(ctx, []coord.ID{id}, nil)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// FetchAll locates all artifacts first and then downloads the missing ones
// in parallel. Results are in the order of ids
func (f *Fetcher) FetchAll(ctx context.Context, ids []coord.ID, onProgress func(p int)) ([]*Result, error) {
	mgr := downloadmgr.New()
	mgr.OnProgress = onProgress

	results := make([]*Result, len(ids))
	queued := map[string]bool{}
	for i, id := range ids {
		p, err := f.locate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p.download != nil && !queued[p.result.Path] {
			queued[p.result.Path] = true
			mgr.Add(p.download)
		}
		results[i] = p.result
	}

	if err := mgr.Start(ctx); err != nil {
		return nil, err
	}
	return results, nil
}

// Locate returns the first repository that has the artifact without downloading it
func (f *Fetcher) Locate(ctx context.Context, id coord.ID) (*Result, error) {
	p, err := f.locate(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.result, nil
}

func (f *Fetcher) locate(ctx context.Context, id coord.ID) (*pending, error) {
	notFound := &NotFoundError{ID: id}

	for _, repo := range f.repos {
		if repo.BootOnly() && !f.Boot {
			continue
		}

		p, attempt := f.tryRepository(ctx, repo, id)
		if p != nil {
			return p, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if f.OnAttempt != nil {
			f.OnAttempt(id, attempt)
		}
		notFound.Attempts = append(notFound.Attempts, attempt)
	}

	return nil, notFound
}

func (f *Fetcher) tryRepository(ctx context.Context, repo repository.Repository, id coord.ID) (*pending, Attempt) {
	attempt := Attempt{Repository: repo.ID()}

	artifactURL, err := repository.ArtifactURL(repo, id)
	if err != nil {
		attempt.Err = err
		return nil, attempt
	}
	attempt.URL = artifactURL.Redacted()

	_, local := repository.LocalPath(artifactURL)

	// previously downloaded
	if !local && f.cache != nil && f.cache.Has(repo.ID(), id) {
		return &pending{result: &Result{
			ID:         id,
			Repository: repo.ID(),
			URL:        artifactURL,
			Path:       f.cache.Path(repo.ID(), id),
			Cached:     true,
		}}, attempt
	}

	if err := f.checkDescriptor(ctx, repo, id); err != nil {
		attempt.Err = err
		return nil, attempt
	}

	exists, err := f.exists(ctx, artifactURL)
	if err != nil {
		attempt.Err = err
		return nil, attempt
	}
	if !exists {
		attempt.Err = ErrNoArtifact
		return nil, attempt
	}

	result := &Result{ID: id, Repository: repo.ID(), URL: artifactURL}
	if localPath, ok := repository.LocalPath(artifactURL); ok {
		result.Path = localPath
		return &pending{result: result}, attempt
	}

	if f.cache == nil {
		attempt.Err = errors.New("no cache configured for remote artifacts")
		return nil, attempt
	}
	result.Path = f.cache.Path(repo.ID(), id)
	item := downloadmgr.NewHTTPItem(f.client, artifactURL.String(), result.Path)
	item.VerifyRemoteSha1 = true
	return &pending{result: result, download: item}, attempt
}

// checkDescriptor makes sure the descriptor exists (if required) and
// describes the requested module (unless the check is disabled)
func (f *Fetcher) checkDescriptor(ctx context.Context, repo repository.Repository, id coord.ID) error {
	optional, skipCheck, isPom := false, false, true
	if ivy, ok := repo.(repository.IvyRepository); ok {
		optional = ivy.DescriptorOptional()
		skipCheck = ivy.SkipConsistencyCheck()
		isPom = ivy.MavenCompatible()
	}

	descriptorURL, err := repository.DescriptorURL(repo, id)
	if err != nil {
		return err
	}

	buf, err := f.readDescriptor(ctx, repo, id, descriptorURL)
	switch {
	case err == nil:
	case errors.Is(err, downloadmgr.ErrNotFound) || errors.Is(err, os.ErrNotExist):
		if optional {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrNoDescriptor, descriptorURL.Redacted())
	default:
		return err
	}

	if skipCheck {
		return nil
	}
	return checkConsistency(id, buf, isPom)
}

// readDescriptor reads descriptors of remote repositories through the cache
func (f *Fetcher) readDescriptor(ctx context.Context, repo repository.Repository, id coord.ID, u *url.URL) ([]byte, error) {
	if _, local := repository.LocalPath(u); local || f.cache == nil {
		return f.read(ctx, u)
	}

	name := path.Base(u.Path)
	if buf, err := f.cache.ReadDescriptor(repo.ID(), id, name); err == nil {
		return buf, nil
	}

	buf, err := f.read(ctx, u)
	if err != nil {
		return nil, err
	}
	// a failed store only means it is downloaded again next time
	_ = f.cache.StoreDescriptor(repo.ID(), id, name, buf)
	return buf, nil
}

func (f *Fetcher) read(ctx context.Context, u *url.URL) ([]byte, error) {
	if localPath, ok := repository.LocalPath(u); ok {
		return os.ReadFile(localPath)
	}
	return downloadmgr.ReadAll(ctx, f.client, u.String(), maxDescriptorSize)
}

func (f *Fetcher) exists(ctx context.Context, u *url.URL) (bool, error) {
	if localPath, ok := repository.LocalPath(u); ok {
		info, err := os.Stat(localPath)
		if os.IsNotExist(err) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return info.Mode().IsRegular(), nil
	}
	return downloadmgr.Exists(ctx, f.client, u.String())
}

// Paths returns the local paths of results
func Paths(results []*Result) []string {
	paths := make([]string, len(results))
	for i, r := range results {
		paths[i] = filepath.Clean(r.Path)
	}
	return paths
}
