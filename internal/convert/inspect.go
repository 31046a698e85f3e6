// SPDX-License-Identifier: MPL-2.0

package convert

import (
	"lockfetch-cli/pkg/lockfile"
)

type (
	// Classification describes an entry's shape without decoding it.
	Classification struct {
		Name  string
		Arity int
		Shape lockfile.Shape
		// Err is set when the arity matches no known shape.
		Err error
	}

	// Summary counts classified entries.
	Summary struct {
		Entries []Classification
		// ByShape counts well-formed entries per shape.
		ByShape map[lockfile.Shape]int
		// Invalid counts entries whose arity matches no shape.
		Invalid int
	}
)

// Inspect classifies entries by arity. Nothing is prefetched and entries are
// left untouched.
func Inspect(entries []lockfile.RawEntry) Summary {
	s := Summary{
		Entries: make([]Classification, 0, len(entries)),
		ByShape: make(map[lockfile.Shape]int),
	}
	for _, e := range entries {
		c := Classification{Name: e.Name, Arity: len(e.Values)}
		c.Shape, c.Err = lockfile.ShapeOf(c.Arity)
		if c.Err != nil {
			s.Invalid++
		} else {
			s.ByShape[c.Shape]++
		}
		s.Entries = append(s.Entries, c)
	}
	return s
}

// NeedsPrefetch reports whether decoding an entry of shape s may run the
// prefetcher. Tarball-or-file entries that turn out to be local files do not.
func NeedsPrefetch(s lockfile.Shape) bool {
	switch s {
	case lockfile.ShapeGitOrGitHub, lockfile.ShapeTarballOrFile:
		return true
	default:
		return false
	}
}
