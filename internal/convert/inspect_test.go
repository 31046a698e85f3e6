// SPDX-License-Identifier: MPL-2.0

package convert

import (
	"encoding/json"
	"errors"
	"testing"

	"lockfetch-cli/pkg/lockfile"
)

func TestInspect(t *testing.T) {
	t.Parallel()

	in := []lockfile.RawEntry{
		{Name: "npm", Values: make([]json.RawMessage, 4)},
		{Name: "git", Values: make([]json.RawMessage, 3)},
		{Name: "tar", Values: make([]json.RawMessage, 2)},
		{Name: "ws", Values: make([]json.RawMessage, 1)},
		{Name: "odd", Values: make([]json.RawMessage, 6)},
		{Name: "npm2", Values: make([]json.RawMessage, 4)},
	}

	s := Inspect(in)

	if len(s.Entries) != len(in) {
		t.Fatalf("len(Entries) = %d, want %d", len(s.Entries), len(in))
	}
	if s.ByShape[lockfile.ShapeNpm] != 2 {
		t.Errorf("npm count = %d, want 2", s.ByShape[lockfile.ShapeNpm])
	}
	for _, shape := range []lockfile.Shape{lockfile.ShapeGitOrGitHub, lockfile.ShapeTarballOrFile, lockfile.ShapeWorkspace} {
		if s.ByShape[shape] != 1 {
			t.Errorf("%s count = %d, want 1", shape, s.ByShape[shape])
		}
	}
	if s.Invalid != 1 {
		t.Errorf("Invalid = %d, want 1", s.Invalid)
	}
	if odd := s.Entries[4]; odd.Name != "odd" || !errors.Is(odd.Err, lockfile.ErrUnexpectedEntryLength) {
		t.Errorf("Entries[4] = %+v, want odd with ErrUnexpectedEntryLength", odd)
	}
	if len(in[0].Values) != 4 {
		t.Error("Inspect() modified the input entries")
	}
}

func TestNeedsPrefetch(t *testing.T) {
	t.Parallel()

	want := map[lockfile.Shape]bool{
		lockfile.ShapeNpm:           false,
		lockfile.ShapeWorkspace:     false,
		lockfile.ShapeGitOrGitHub:   true,
		lockfile.ShapeTarballOrFile: true,
	}
	for shape, w := range want {
		if got := NeedsPrefetch(shape); got != w {
			t.Errorf("NeedsPrefetch(%s) = %v, want %v", shape, got, w)
		}
	}
}
