// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"cuelang.org/go/cue/cuecontext"
)

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"convert"}, "convert"},
		{[]string{"convert", "jobs"}, "convert.jobs"},
		{[]string{"packages", "0", "name"}, "packages[0].name"},
		{[]string{"0"}, "0"},
	}

	for _, tt := range tests {
		if got := FormatPath(tt.path); got != tt.want {
			t.Errorf("FormatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFormatError_Nil(t *testing.T) {
	t.Parallel()

	if err := FormatError(nil, "x.cue"); err != nil {
		t.Errorf("FormatError(nil) = %v, want nil", err)
	}
}

func TestFormatError_PlainError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := FormatError(cause, "x.cue")
	if !errors.Is(err, cause) {
		t.Errorf("FormatError() = %v, want wrapped cause", err)
	}
	if !strings.HasPrefix(err.Error(), "x.cue: ") {
		t.Errorf("FormatError() = %q, want file prefix", err)
	}
}

func TestFormatError_PlainErrorKeepsChain(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	err := FormatError(fmt.Errorf("lookup: %w", sentinel), "bun.lock")
	if !errors.Is(err, sentinel) {
		t.Errorf("FormatError() = %v, want chain to reach sentinel", err)
	}
	if err.Error() != "bun.lock: lookup: sentinel" {
		t.Errorf("FormatError() = %q", err)
	}
}

func TestFormatError_CUEError(t *testing.T) {
	t.Parallel()

	v := cuecontext.New().CompileString(`a: { b: int & "x" }`)
	err := FormatError(v.Validate(), "cfg.cue")
	if err == nil {
		t.Fatal("FormatError() = nil, want error")
	}
	if !strings.HasPrefix(err.Error(), "cfg.cue: ") || !strings.Contains(err.Error(), "a.b") {
		t.Errorf("FormatError() = %q, want file prefix and path a.b", err)
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize([]byte("abc"), 3, "f"); err != nil {
		t.Errorf("CheckFileSize(at limit) = %v, want nil", err)
	}
	if err := CheckFileSize([]byte("abcd"), 3, "f"); err == nil {
		t.Error("CheckFileSize(over limit) = nil, want error")
	}
}
