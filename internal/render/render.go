// SPDX-License-Identifier: MPL-2.0

package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"lockfetch-cli/pkg/fetcher"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

const (
	// FormatNix renders a Nix expression.
	FormatNix Format = "nix"
	// FormatJSON renders a JSON Document.
	FormatJSON Format = "json"
	// FormatTOML renders a TOML Document.
	FormatTOML Format = "toml"
	// FormatYAML renders a YAML Document.
	FormatYAML Format = "yaml"
)

var (
	// ErrInvalidFormat is returned for an unknown output format.
	ErrInvalidFormat = errors.New("invalid output format")
	// ErrDuplicatePackage is returned when two different fetchers share a name.
	ErrDuplicatePackage = errors.New("duplicate package name")
)

type (
	// Format names an output format.
	Format string

	// InvalidFormatError is returned when a Format value is not recognized.
	InvalidFormatError struct {
		Value Format
	}

	// DuplicatePackageError names the conflicting package.
	DuplicatePackageError struct {
		Name string
	}

	// Document is the serialized form for the json, toml and yaml formats.
	Document struct {
		Packages []Entry `json:"packages" toml:"packages" yaml:"packages"`
	}

	// Entry is one package in a Document. Only the fields relevant to the
	// fetcher kind are set.
	Entry struct {
		Name     string `json:"name" toml:"name" yaml:"name"`
		Fetcher  string `json:"fetcher" toml:"fetcher" yaml:"fetcher"`
		URL      string `json:"url,omitempty" toml:"url,omitempty" yaml:"url,omitempty"`
		Owner    string `json:"owner,omitempty" toml:"owner,omitempty" yaml:"owner,omitempty"`
		Repo     string `json:"repo,omitempty" toml:"repo,omitempty" yaml:"repo,omitempty"`
		Rev      string `json:"rev,omitempty" toml:"rev,omitempty" yaml:"rev,omitempty"`
		Hash     string `json:"hash,omitempty" toml:"hash,omitempty" yaml:"hash,omitempty"`
		Path     string `json:"path,omitempty" toml:"path,omitempty" yaml:"path,omitempty"`
		FileName string `json:"file_name,omitempty" toml:"file_name,omitempty" yaml:"file_name,omitempty"`
	}
)

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: %s)", e.Value, strings.Join(formatNames(), ", "))
}

func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

func (e *DuplicatePackageError) Error() string {
	return fmt.Sprintf("package %q is produced by two different fetchers", e.Name)
}

func (e *DuplicatePackageError) Unwrap() error { return ErrDuplicatePackage }

// Formats returns all supported formats.
func Formats() []Format {
	return []Format{FormatNix, FormatJSON, FormatTOML, FormatYAML}
}

// IsValid returns whether f is a supported format.
func (f Format) IsValid() (bool, []error) {
	if slices.Contains(Formats(), f) {
		return true, nil
	}
	return false, []error{&InvalidFormatError{Value: f}}
}

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// Render writes pkgs to w in format f. Packages are sorted by name; identical
// duplicates are written once.
func Render(w io.Writer, pkgs []fetcher.Package, f Format) error {
	if valid, errs := f.IsValid(); !valid {
		return errs[0]
	}

	sorted, err := normalize(pkgs)
	if err != nil {
		return err
	}

	switch f {
	case FormatNix:
		return renderNix(w, sorted)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(NewDocument(sorted))
	case FormatTOML:
		return toml.NewEncoder(w).Encode(NewDocument(sorted))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(sorted)); err != nil {
			return err
		}
		return enc.Close()
	default:
		panic(fmt.Sprintf("render: unhandled format %q", f))
	}
}

// NewDocument flattens pkgs into a Document, keeping their order.
func NewDocument(pkgs []fetcher.Package) Document {
	doc := Document{Packages: make([]Entry, 0, len(pkgs))}
	for _, p := range pkgs {
		doc.Packages = append(doc.Packages, newEntry(p))
	}
	return doc
}

func newEntry(p fetcher.Package) Entry {
	e := Entry{Name: p.Name, Fetcher: p.Kind().String()}
	switch f := p.Fetcher.(type) {
	case fetcher.FetchURL:
		e.URL, e.Hash, e.FileName = f.URL, f.Hash, f.Name
	case fetcher.FetchGit:
		e.URL, e.Rev, e.Hash = f.URL, f.Rev, f.Hash
	case fetcher.FetchGitHub:
		e.Owner, e.Repo, e.Rev, e.Hash = f.Owner, f.Repo, f.Rev, f.Hash
	case fetcher.FetchTarball:
		e.URL, e.Hash = f.URL, f.Hash
	case fetcher.CopyToStore:
		e.Path = f.Path
	default:
		panic(fmt.Sprintf("render: unhandled fetcher %T", p.Fetcher))
	}
	return e
}

// normalize returns a name-sorted copy of pkgs without exact duplicates.
func normalize(pkgs []fetcher.Package) ([]fetcher.Package, error) {
	sorted := slices.Clone(pkgs)
	slices.SortStableFunc(sorted, func(a, b fetcher.Package) int {
		return strings.Compare(a.Name, b.Name)
	})

	out := sorted[:0]
	for i, p := range sorted {
		if i > 0 && sorted[i-1].Name == p.Name {
			if sorted[i-1].Fetcher != p.Fetcher {
				return nil, &DuplicatePackageError{Name: p.Name}
			}
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func formatNames() []string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return names
}
