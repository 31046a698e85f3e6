// SPDX-License-Identifier: MPL-2.0

package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"lockfetch-cli/pkg/fetcher"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func samplePackages() []fetcher.Package {
	return []fetcher.Package{
		{Name: "web", Fetcher: fetcher.CopyToStore{Path: "packages/web"}},
		{Name: "github:o-r-abc", Fetcher: fetcher.FetchGitHub{Owner: "o", Repo: "r", Rev: "abc", Hash: "sha256-gh="}},
		{Name: "@types/bun@1.2.4", Fetcher: fetcher.FetchURL{URL: "https://registry.npmjs.org/@types/bun/-/bun-1.2.4.tgz", Hash: "sha512-x=="}},
		{Name: "git:0123", Fetcher: fetcher.FetchGit{URL: "https://example.com/lib.git", Rev: "0123", Hash: "sha256-git="}},
		{Name: "tarball:https://example.com/t.tgz", Fetcher: fetcher.FetchTarball{URL: "https://example.com/t.tgz", Hash: "sha256-tar="}},
		{Name: "q@5.2.0", Fetcher: fetcher.FetchURL{URL: "https://npm.example.com/q/-/q-5.2.0.tgz", Hash: "sha512-q==", Name: "q-5.2.0.tgz"}},
	}
}

func TestRender_Nix(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Render(&buf, samplePackages(), FormatNix); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	want := `# This file was generated by lockfetch; do not edit.
{
  fetchurl,
  fetchgit,
  fetchFromGitHub,
  copyPathToStore,
  ...
}:
{
  "@types/bun@1.2.4" = fetchurl {
    url = "https://registry.npmjs.org/@types/bun/-/bun-1.2.4.tgz";
    hash = "sha512-x==";
  };
  "git:0123" = fetchgit {
    url = "https://example.com/lib.git";
    rev = "0123";
    hash = "sha256-git=";
  };
  "github:o-r-abc" = fetchFromGitHub {
    owner = "o";
    repo = "r";
    rev = "abc";
    hash = "sha256-gh=";
  };
  "q@5.2.0" = fetchurl {
    url = "https://npm.example.com/q/-/q-5.2.0.tgz";
    hash = "sha512-q==";
    name = "q-5.2.0.tgz";
  };
  "tarball:https://example.com/t.tgz" = builtins.fetchTarball {
    url = "https://example.com/t.tgz";
    sha256 = "sha256-tar=";
  };
  "web" = copyPathToStore (./. + "/packages/web");
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Render(nix) mismatch (-want +got):\n%s", diff)
	}
}

func TestNixString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`a"b`, `"a\"b"`},
		{`back\slash`, `"back\\slash"`},
		{"${interp}", `"\${interp}"`},
		{"$notinterp", `"$notinterp"`},
		{"line\nbreak", `"line\nbreak"`},
	}

	for _, tt := range tests {
		if got := NixString(tt.in); got != tt.want {
			t.Errorf("NixString(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRender_Document(t *testing.T) {
	t.Parallel()

	want := Document{Packages: []Entry{
		{Name: "@types/bun@1.2.4", Fetcher: "fetchurl", URL: "https://registry.npmjs.org/@types/bun/-/bun-1.2.4.tgz", Hash: "sha512-x=="},
		{Name: "git:0123", Fetcher: "fetchgit", URL: "https://example.com/lib.git", Rev: "0123", Hash: "sha256-git="},
		{Name: "github:o-r-abc", Fetcher: "fetchgithub", Owner: "o", Repo: "r", Rev: "abc", Hash: "sha256-gh="},
		{Name: "q@5.2.0", Fetcher: "fetchurl", URL: "https://npm.example.com/q/-/q-5.2.0.tgz", Hash: "sha512-q==", FileName: "q-5.2.0.tgz"},
		{Name: "tarball:https://example.com/t.tgz", Fetcher: "fetchtarball", URL: "https://example.com/t.tgz", Hash: "sha256-tar="},
		{Name: "web", Fetcher: "copy-to-store", Path: "packages/web"},
	}}

	decoders := map[Format]func([]byte, any) error{
		FormatJSON: json.Unmarshal,
		FormatTOML: toml.Unmarshal,
		FormatYAML: yaml.Unmarshal,
	}

	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := Render(&buf, samplePackages(), format); err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			var got Document
			if err := decode(buf.Bytes(), &got); err != nil {
				t.Fatalf("decoding %s output: %v\n%s", format, err, buf.String())
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%s document mismatch (-want +got):\n%s", format, diff)
			}
		})
	}
}

func TestRender_JSONDoesNotEscapeHTML(t *testing.T) {
	t.Parallel()

	pkgs := []fetcher.Package{{Name: "t", Fetcher: fetcher.FetchTarball{URL: "https://x/t.tgz?a=1&b=2"}}}
	var buf bytes.Buffer
	if err := Render(&buf, pkgs, FormatJSON); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "a=1&b=2") {
		t.Errorf("JSON output escaped the URL:\n%s", buf.String())
	}
}

func TestRender_Duplicates(t *testing.T) {
	t.Parallel()

	same := fetcher.Package{Name: "git:abc", Fetcher: fetcher.FetchGit{URL: "u", Rev: "abc", Hash: "h"}}
	var buf bytes.Buffer
	if err := Render(&buf, []fetcher.Package{same, same}, FormatJSON); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Packages) != 1 {
		t.Errorf("len(Packages) = %d, want identical duplicates merged", len(doc.Packages))
	}

	other := fetcher.Package{Name: "git:abc", Fetcher: fetcher.FetchGit{URL: "other", Rev: "abc", Hash: "h2"}}
	err := Render(&buf, []fetcher.Package{same, other}, FormatNix)
	var dupErr *DuplicatePackageError
	if !errors.As(err, &dupErr) || dupErr.Name != "git:abc" {
		t.Errorf("Render() error = %v, want DuplicatePackageError for git:abc", err)
	}
}

func TestRender_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	pkgs := samplePackages()
	if err := Render(&bytes.Buffer{}, pkgs, FormatNix); err != nil {
		t.Fatal(err)
	}
	if pkgs[0].Name != "web" {
		t.Errorf("input reordered: first = %q", pkgs[0].Name)
	}
}

func TestFormat_IsValid(t *testing.T) {
	t.Parallel()

	for _, f := range Formats() {
		if valid, errs := f.IsValid(); !valid {
			t.Errorf("%s.IsValid() = false, %v", f, errs)
		}
	}

	valid, errs := Format("xml").IsValid()
	if valid || len(errs) != 1 || !errors.Is(errs[0], ErrInvalidFormat) {
		t.Errorf("Format(xml).IsValid() = %v, %v; want invalid", valid, errs)
	}
	if err := Render(&bytes.Buffer{}, nil, "xml"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Render(xml) error = %v, want ErrInvalidFormat", err)
	}
}
