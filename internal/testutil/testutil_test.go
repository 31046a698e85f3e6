// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMustWriteFile_CreatesParents(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "a", "b")
	path := MustWriteFile(t, dir, "x.txt", "hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want %q", data, "hello")
	}
}

func TestWriteLockfile(t *testing.T) {
	t.Parallel()

	path := WriteLockfile(t, `{"lockfileVersion": 1}`)
	if filepath.Base(path) != "bun.lock" {
		t.Errorf("WriteLockfile() = %q, want bun.lock", path)
	}
}

func TestMustChdir_Restores(t *testing.T) {
	// Not parallel: changes the process working directory.
	before, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	t.Run("inner", func(t *testing.T) {
		MustChdir(t, dir)
		wd, err := os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
		if resolved, _ := filepath.EvalSymlinks(dir); wd != dir && wd != resolved {
			t.Errorf("Getwd() = %q, want %q", wd, dir)
		}
	})

	after, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if after != before {
		t.Errorf("working directory not restored: %q, want %q", after, before)
	}
}
