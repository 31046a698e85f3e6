// SPDX-License-Identifier: MPL-2.0

package fetcher

import (
	"errors"
	"fmt"
)

const (
	// KindFetchURL is a plain HTTP download pinned by an SRI hash.
	KindFetchURL Kind = iota + 1
	// KindFetchGit is a git checkout of a specific revision.
	KindFetchGit
	// KindFetchGitHub is a GitHub archive of a specific revision.
	KindFetchGitHub
	// KindFetchTarball is an unpacked remote tarball.
	KindFetchTarball
	// KindCopyToStore is a local path copied as-is.
	KindCopyToStore
)

// ErrInvalidKind is the sentinel error wrapped by InvalidKindError.
var ErrInvalidKind = errors.New("invalid fetcher kind")

type (
	// Kind identifies which Fetcher variant a descriptor is.
	Kind int

	// InvalidKindError is returned when a Kind value is outside the defined set.
	// It wraps ErrInvalidKind for errors.Is() compatibility.
	InvalidKindError struct {
		Value Kind
	}

	// Fetcher is a complete instruction for retrieving one package's content.
	// The set of implementations is closed: FetchURL, FetchGit, FetchGitHub,
	// FetchTarball and CopyToStore.
	Fetcher interface {
		Kind() Kind
		sealed()
	}

	// FetchURL is fetched via plain HTTP.
	FetchURL struct {
		// URL is the tarball location.
		URL string `json:"url"`
		// Hash is the SRI hash taken verbatim from the lockfile.
		Hash string `json:"hash"`
		// Name is the archive filename. It is only set for non-default
		// registries, whose URLs may not end in ".tgz".
		Name string `json:"name,omitempty"`
	}

	// FetchGit is fetched via a git checkout.
	FetchGit struct {
		URL  string `json:"url"`
		Rev  string `json:"rev"`
		Hash string `json:"hash"`
	}

	// FetchGitHub is fetched from a GitHub repository archive.
	FetchGitHub struct {
		Owner string `json:"owner"`
		Repo  string `json:"repo"`
		Rev   string `json:"rev"`
		Hash  string `json:"hash"`
	}

	// FetchTarball is fetched and unpacked from a remote tarball URL.
	FetchTarball struct {
		URL  string `json:"url"`
		Hash string `json:"hash"`
	}

	// CopyToStore references local content. It never carries a hash.
	CopyToStore struct {
		// Path is relative to the lockfile's directory.
		Path string `json:"path"`
	}
)

// Kind implements Fetcher.
func (FetchURL) Kind() Kind { return KindFetchURL }

// Kind implements Fetcher.
func (FetchGit) Kind() Kind { return KindFetchGit }

// Kind implements Fetcher.
func (FetchGitHub) Kind() Kind { return KindFetchGitHub }

// Kind implements Fetcher.
func (FetchTarball) Kind() Kind { return KindFetchTarball }

// Kind implements Fetcher.
func (CopyToStore) Kind() Kind { return KindCopyToStore }

func (FetchURL) sealed()     {}
func (FetchGit) sealed()     {}
func (FetchGitHub) sealed()  {}
func (FetchTarball) sealed() {}
func (CopyToStore) sealed()  {}

// String returns the variant name of the Kind.
func (k Kind) String() string {
	switch k {
	case KindFetchURL:
		return "fetchurl"
	case KindFetchGit:
		return "fetchgit"
	case KindFetchGitHub:
		return "fetchgithub"
	case KindFetchTarball:
		return "fetchtarball"
	case KindCopyToStore:
		return "copy-to-store"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsValid returns whether the Kind is one of the defined variants,
// and a list of validation errors if it is not.
func (k Kind) IsValid() (bool, []error) {
	switch k {
	case KindFetchURL, KindFetchGit, KindFetchGitHub, KindFetchTarball, KindCopyToStore:
		return true, nil
	default:
		return false, []error{&InvalidKindError{Value: k}}
	}
}

// Error implements the error interface for InvalidKindError.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid fetcher kind %d", int(e.Value))
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }

// HashOf returns the content hash pinned by f, or "" for CopyToStore.
func HashOf(f Fetcher) string {
	switch v := f.(type) {
	case FetchURL:
		return v.Hash
	case FetchGit:
		return v.Hash
	case FetchGitHub:
		return v.Hash
	case FetchTarball:
		return v.Hash
	case CopyToStore:
		return ""
	default:
		panic(fmt.Sprintf("fetcher: unhandled variant %T", f))
	}
}
