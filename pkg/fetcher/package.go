// SPDX-License-Identifier: MPL-2.0

package fetcher

type (
	// Package pairs a display name with the descriptor needed to fetch it.
	// Packages are immutable once built.
	Package struct {
		// Name is the lockfile key for npm, file and workspace entries, and a
		// synthesized stable id ("github:...", "git:...", "tarball:...") otherwise.
		Name    string
		Fetcher Fetcher
	}
)

// NewPackage creates a Package.
func NewPackage(name string, f Fetcher) Package {
	return Package{Name: name, Fetcher: f}
}

// Kind returns the variant of the package's fetcher.
func (p Package) Kind() Kind { return p.Fetcher.Kind() }
