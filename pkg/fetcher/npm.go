// SPDX-License-Identifier: MPL-2.0

package fetcher

import (
	"errors"
	"strings"
)

// DefaultRegistry is the npm registry used when a lockfile entry carries no
// explicit tarball URL.
const DefaultRegistry = "https://registry.npmjs.org/"

// ErrNoAtInIdentifier is returned when a package identifier lacks the
// "@" separating name and version.
var ErrNoAtInIdentifier = errors.New("no '@' in package identifier")

// NewNpmPackage builds the FetchURL descriptor for an npm registry package.
//
// tarballURL is the second field of the lockfile tuple. An empty value means
// the default registry; in that case Name stays empty. A non-empty value is
// used verbatim and Name is set to "<name>-<version>.tgz" so the download
// keeps a tarball extension.
func NewNpmPackage(ident, hash, tarballURL string) (FetchURL, error) {
	url, err := NpmURL(ident, tarballURL)
	if err != nil {
		return FetchURL{}, err
	}

	f := FetchURL{URL: url, Hash: hash}
	if tarballURL != "" {
		f.Name = TarballFileName(ident)
	}
	return f, nil
}

// NpmURL returns the URL to fetch ident from.
//
//	NpmURL("@alloc/quick-lru@5.2.0", "")
//	// https://registry.npmjs.org/@alloc/quick-lru/-/quick-lru-5.2.0.tgz
func NpmURL(ident, tarballURL string) (string, error) {
	if tarballURL != "" {
		return tarballURL, nil
	}

	user, nameAndVer, scoped := strings.Cut(ident, "/")
	if !scoped {
		name, ver, ok := strings.Cut(ident, "@")
		if !ok {
			return "", ErrNoAtInIdentifier
		}
		return DefaultRegistry + name + "/-/" + name + "-" + ver + ".tgz", nil
	}

	name, ver, ok := strings.Cut(nameAndVer, "@")
	if !ok {
		return "", ErrNoAtInIdentifier
	}
	return DefaultRegistry + user + "/" + name + "/-/" + name + "-" + ver + ".tgz", nil
}

// TarballFileName derives "<name>-<version>.tgz" from a package identifier.
// It never fails; identifiers without a version fall back to "<ident>.tgz".
func TarballFileName(ident string) string {
	if _, nameAndVer, ok := strings.Cut(ident, "/"); ok {
		if name, ver, ok := strings.Cut(nameAndVer, "@"); ok {
			return name + "-" + ver + ".tgz"
		}
	}
	if name, ver, ok := strings.Cut(ident, "@"); ok {
		return name + "-" + ver + ".tgz"
	}
	return ident + ".tgz"
}
