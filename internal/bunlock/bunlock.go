// SPDX-License-Identifier: MPL-2.0

package bunlock

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"lockfetch-cli/internal/cueutil"
	"lockfetch-cli/pkg/lockfile"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

const (
	// FileName is the name bun gives its text lockfile.
	FileName = "bun.lock"
	// LatestVersion is the newest lockfileVersion this reader was written against.
	LatestVersion = 1
	// MaxFileSize caps the size of a lockfile that will be parsed (64MB).
	MaxFileSize int64 = 64 * 1024 * 1024
)

var (
	// ErrMissingLockfileVersion is returned when the document has no lockfileVersion.
	ErrMissingLockfileVersion = errors.New("missing lockfileVersion")
	// ErrInvalidPackageEntry is the sentinel error wrapped by InvalidPackageEntryError.
	ErrInvalidPackageEntry = errors.New("invalid package entry")
)

type (
	// Document is the subset of bun.lock needed to build fetchers.
	Document struct {
		// LockfileVersion is the document's format version.
		LockfileVersion int
		// Packages are the "packages" entries in declaration order.
		Packages []lockfile.RawEntry
	}

	// InvalidPackageEntryError is returned when a "packages" value is not a list.
	// It wraps ErrInvalidPackageEntry for errors.Is() compatibility.
	InvalidPackageEntryError struct {
		Name string
		Err  error
	}
)

// Error implements the error interface for InvalidPackageEntryError.
func (e *InvalidPackageEntryError) Error() string {
	return fmt.Sprintf("invalid package entry %q: %v", e.Name, e.Err)
}

// Unwrap returns ErrInvalidPackageEntry for errors.Is() compatibility.
func (e *InvalidPackageEntryError) Unwrap() error { return ErrInvalidPackageEntry }

// Load reads and parses the lockfile at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Parse parses lockfile content. filename is used in error messages.
func Parse(data []byte, filename string) (*Document, error) {
	if err := cueutil.CheckFileSize(data, MaxFileSize, filename); err != nil {
		return nil, err
	}

	root := cuecontext.New().CompileBytes(data, cue.Filename(filename))
	if root.Err() != nil {
		return nil, cueutil.FormatError(root.Err(), filename)
	}

	doc := &Document{}

	version := root.LookupPath(cue.MakePath(cue.Str("lockfileVersion")))
	if !version.Exists() {
		return nil, fmt.Errorf("%s: %w", filename, ErrMissingLockfileVersion)
	}
	v, err := version.Int64()
	if err != nil {
		return nil, cueutil.FormatError(err, filename)
	}
	doc.LockfileVersion = int(v)

	packages := root.LookupPath(cue.MakePath(cue.Str("packages")))
	if !packages.Exists() {
		return doc, nil
	}

	fields, err := packages.Fields()
	if err != nil {
		return nil, cueutil.FormatError(err, filename)
	}
	for fields.Next() {
		name := fields.Selector().Unquoted()
		values, err := rawValues(fields.Value())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, &InvalidPackageEntryError{Name: name, Err: err})
		}
		doc.Packages = append(doc.Packages, lockfile.RawEntry{Name: name, Values: values})
	}

	return doc, nil
}

// rawValues encodes each element of a CUE list as JSON.
func rawValues(v cue.Value) ([]json.RawMessage, error) {
	if v.Kind() != cue.ListKind {
		return nil, fmt.Errorf("expected list, got %s", v.Kind())
	}

	list, err := v.List()
	if err != nil {
		return nil, err
	}

	var values []json.RawMessage
	for list.Next() {
		raw, err := encodeValue(list.Value())
		if err != nil {
			return nil, err
		}
		values = append(values, raw)
	}
	return values, nil
}

// encodeValue marshals v to JSON. Strings are encoded without HTML escaping so
// URLs keep their literal "&", "<" and ">".
func encodeValue(v cue.Value) (json.RawMessage, error) {
	if v.Kind() != cue.StringKind {
		return v.MarshalJSON()
	}

	s, err := v.String()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
