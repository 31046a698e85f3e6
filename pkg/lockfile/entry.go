// SPDX-License-Identifier: MPL-2.0

package lockfile

import (
	"encoding/json"
	"fmt"
)

const (
	// ShapeWorkspace is a single-element tuple naming a workspace path.
	ShapeWorkspace Shape = 1
	// ShapeTarballOrFile is a two-element tuple for a remote tarball or a file: path.
	ShapeTarballOrFile Shape = 2
	// ShapeGitOrGitHub is a three-element tuple for a git or github: dependency.
	ShapeGitOrGitHub Shape = 3
	// ShapeNpm is a four-element tuple for an npm registry package.
	ShapeNpm Shape = 4
)

type (
	// Shape is the package kind implied by a lockfile tuple's arity.
	Shape int

	// RawEntry is one "packages" record of a bun lockfile.
	// Values holds the tuple elements in their JSON encoding. Decoding consumes
	// Values; the entry must not be reused afterwards.
	RawEntry struct {
		Name   string
		Values []json.RawMessage
	}
)

// ShapeOf classifies a tuple by its arity.
func ShapeOf(arity int) (Shape, error) {
	switch arity {
	case 1:
		return ShapeWorkspace, nil
	case 2:
		return ShapeTarballOrFile, nil
	case 3:
		return ShapeGitOrGitHub, nil
	case 4:
		return ShapeNpm, nil
	default:
		return 0, &UnexpectedEntryLengthError{Length: arity}
	}
}

// String returns a human-readable name for the Shape.
func (s Shape) String() string {
	switch s {
	case ShapeWorkspace:
		return "workspace"
	case ShapeTarballOrFile:
		return "tarball-or-file"
	case ShapeGitOrGitHub:
		return "git-or-github"
	case ShapeNpm:
		return "npm"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Shape classifies the entry by the number of values it holds.
func (e RawEntry) Shape() (Shape, error) {
	return ShapeOf(len(e.Values))
}
