// SPDX-License-Identifier: MPL-2.0

package lockfile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"lockfetch-cli/pkg/fetcher"
)

// Decoder builds fetch descriptors from raw lockfile entries.
type Decoder struct {
	// Prefetcher supplies hashes for git, GitHub and tarball entries.
	Prefetcher Prefetcher
}

// NewDecoder creates a Decoder that hashes remote sources with p.
func NewDecoder(p Prefetcher) *Decoder {
	return &Decoder{Prefetcher: p}
}

// Decode classifies entry by arity and decodes it into exactly one Package.
// entry.Values is consumed.
func (d *Decoder) Decode(ctx context.Context, entry RawEntry) (fetcher.Package, error) {
	shape, err := entry.Shape()
	if err != nil {
		return fetcher.Package{}, err
	}

	switch shape {
	case ShapeWorkspace:
		return decodeWorkspace(entry.Name, entry.Values)
	case ShapeTarballOrFile:
		return d.decodeTarballOrFile(ctx, entry.Name, entry.Values)
	case ShapeGitOrGitHub:
		return d.decodeGitOrGitHub(ctx, entry.Values)
	case ShapeNpm:
		return decodeNpm(entry.Values)
	default:
		panic(fmt.Sprintf("lockfile: unhandled shape %s", shape))
	}
}

// decodeNpm reads [identifier, tarball_url, metadata, hash].
func decodeNpm(values []json.RawMessage) (fetcher.Package, error) {
	ident := TakeValue(&values, 0)
	// [hash, tarball_url, metadata]
	hash := TakeValue(&values, 0)
	// [metadata, tarball_url]
	tarballURL := stringValue(values[1])

	assertf(strings.Contains(hash, "sha512-"), "expected hash %q to be in SRI format and contain sha512", hash)

	f, err := fetcher.NewNpmPackage(ident, hash, tarballURL)
	if err != nil {
		return fetcher.Package{}, fmt.Errorf("npm package %q: %w", ident, err)
	}

	return fetcher.NewPackage(ident, f), nil
}

func (d *Decoder) decodeGitOrGitHub(ctx context.Context, values []json.RawMessage) (fetcher.Package, error) {
	id := TakeValue(&values, 0)

	spec, ok := DrainAfterLast(id, "@")
	if !ok {
		return fetcher.Package{}, fmt.Errorf("git package %q: %w", id, ErrNoAtInIdentifier)
	}

	if strings.HasPrefix(spec, "github:") {
		return d.decodeGitHub(ctx, spec)
	}
	return d.decodeGit(ctx, spec)
}

// decodeGitHub reads "github:<owner>/<repo>#<rev>".
func (d *Decoder) decodeGitHub(ctx context.Context, spec string) (fetcher.Package, error) {
	path, rev, ok := SplitOnceOwned(spec, '#')
	if !ok {
		return fetcher.Package{}, fmt.Errorf("github package %q: %w", spec, ErrMissingGitRef)
	}

	prefetched, err := d.prefetch(ctx, path+"?ref="+rev)
	if err != nil {
		return fetcher.Package{}, err
	}

	ownerWithPrefix, repo, ok := SplitOnceOwned(path, '/')
	if !ok {
		return fetcher.Package{}, fmt.Errorf("github package %q: %w", spec, ErrImproperGitHubURL)
	}
	owner := DropPrefix(ownerWithPrefix, "github:")

	return fetcher.NewPackage(
		"github:"+owner+"-"+repo+"-"+rev,
		fetcher.FetchGitHub{Owner: owner, Repo: repo, Rev: rev, Hash: prefetched.Hash},
	), nil
}

// decodeGit reads "[git+]<url>#<rev>".
func (d *Decoder) decodeGit(ctx context.Context, spec string) (fetcher.Package, error) {
	gitURL := DropPrefix(spec, "git+")
	url, rev, ok := SplitOnceOwned(gitURL, '#')
	if !ok {
		return fetcher.Package{}, fmt.Errorf("git package %q: %w", spec, ErrMissingGitRef)
	}

	prefetched, err := d.prefetch(ctx, "git+"+url+"?rev="+rev)
	if err != nil {
		return fetcher.Package{}, err
	}

	return fetcher.NewPackage(
		"git:"+rev,
		fetcher.FetchGit{URL: url, Rev: rev, Hash: prefetched.Hash},
	), nil
}

// decodeTarballOrFile reads "<name>@<http url>" or "<name>@file:<path>".
func (d *Decoder) decodeTarballOrFile(ctx context.Context, name string, values []json.RawMessage) (fetcher.Package, error) {
	id := TakeValue(&values, 0)

	path, ok := DrainAfterLast(id, "@")
	if !ok {
		return fetcher.Package{}, fmt.Errorf("package %q: %w", id, ErrNoAtInIdentifier)
	}

	if strings.HasPrefix(path, "http") {
		return d.decodeTarball(ctx, path)
	}
	return decodeFile(name, path)
}

func (d *Decoder) decodeTarball(ctx context.Context, url string) (fetcher.Package, error) {
	prefetched, err := d.prefetch(ctx, url)
	if err != nil {
		return fetcher.Package{}, err
	}

	return fetcher.NewPackage(
		"tarball:"+url,
		fetcher.FetchTarball{URL: url, Hash: prefetched.Hash},
	), nil
}

func decodeFile(name, spec string) (fetcher.Package, error) {
	assertf(!strings.Contains(spec, "http"), "file path %q can never contain http, it would be a tarball", spec)

	path, ok := DrainAfterLast(spec, "file:")
	if !ok {
		return fetcher.Package{}, fmt.Errorf("package %q: %w", name, ErrMissingFileSpecifier)
	}

	return fetcher.NewPackage(name, fetcher.CopyToStore{Path: path}), nil
}

func decodeWorkspace(name string, values []json.RawMessage) (fetcher.Package, error) {
	id := TakeValue(&values, 0)

	path, ok := DrainAfterLast(id, "workspace:")
	if !ok {
		return fetcher.Package{}, fmt.Errorf("package %q: %w", name, ErrMissingWorkspaceSpecifier)
	}

	return fetcher.NewPackage(name, fetcher.CopyToStore{Path: path}), nil
}

func (d *Decoder) prefetch(ctx context.Context, locator string) (PrefetchResult, error) {
	res, err := d.Prefetcher.Prefetch(ctx, locator)
	if err != nil {
		return PrefetchResult{}, &PrefetchError{Locator: locator, Err: err}
	}
	return res, nil
}

// stringValue decodes a JSON string, treating anything else as "".
func stringValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
