// SPDX-License-Identifier: MPL-2.0

package fetcher

import (
	"errors"
	"testing"
)

func TestNpmURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		ident      string
		tarballURL string
		want       string
		wantErr    error
	}{
		{
			name:  "scoped default registry",
			ident: "@alloc/quick-lru@5.2.0",
			want:  "https://registry.npmjs.org/@alloc/quick-lru/-/quick-lru-5.2.0.tgz",
		},
		{
			name:  "unscoped default registry",
			ident: "lodash@4.17.21",
			want:  "https://registry.npmjs.org/lodash/-/lodash-4.17.21.tgz",
		},
		{
			name:       "explicit tarball url used verbatim",
			ident:      "@alloc/quick-lru@5.2.0",
			tarballURL: "https://npm.pkg.github.com/@alloc/quick-lru/-/quick-lru-5.2.0.tgz",
			want:       "https://npm.pkg.github.com/@alloc/quick-lru/-/quick-lru-5.2.0.tgz",
		},
		{
			name:    "unscoped without version",
			ident:   "lodash",
			wantErr: ErrNoAtInIdentifier,
		},
		{
			name:    "scoped without version",
			ident:   "@alloc/quick-lru",
			wantErr: ErrNoAtInIdentifier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NpmURL(tt.ident, tt.tarballURL)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NpmURL() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NpmURL() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("NpmURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTarballFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ident string
		want  string
	}{
		{"@alloc/quick-lru@5.2.0", "quick-lru-5.2.0.tgz"},
		{"lodash@4.17.21", "lodash-4.17.21.tgz"},
		{"noversion", "noversion.tgz"},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			t.Parallel()

			if got := TarballFileName(tt.ident); got != tt.want {
				t.Errorf("TarballFileName(%q) = %q, want %q", tt.ident, got, tt.want)
			}
		})
	}
}

func TestNewNpmPackage_DefaultRegistryLeavesNameEmpty(t *testing.T) {
	t.Parallel()

	f, err := NewNpmPackage("@types/bun@1.2.4", "sha512-abc==", "")
	if err != nil {
		t.Fatalf("NewNpmPackage() unexpected error: %v", err)
	}
	want := FetchURL{
		URL:  "https://registry.npmjs.org/@types/bun/-/bun-1.2.4.tgz",
		Hash: "sha512-abc==",
	}
	if f != want {
		t.Errorf("NewNpmPackage() = %+v, want %+v", f, want)
	}
}

func TestNewNpmPackage_ExplicitRegistrySetsName(t *testing.T) {
	t.Parallel()

	url := "https://npm.pkg.github.com/download/@alloc/quick-lru/5.2.0/abcdef"
	f, err := NewNpmPackage("@alloc/quick-lru@5.2.0", "sha512-xyz==", url)
	if err != nil {
		t.Fatalf("NewNpmPackage() unexpected error: %v", err)
	}
	if f.URL != url {
		t.Errorf("URL = %q, want %q", f.URL, url)
	}
	if f.Name != "quick-lru-5.2.0.tgz" {
		t.Errorf("Name = %q, want %q", f.Name, "quick-lru-5.2.0.tgz")
	}
}
