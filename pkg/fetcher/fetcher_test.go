// SPDX-License-Identifier: MPL-2.0

package fetcher

import (
	"errors"
	"testing"
)

func TestKind_IsValid(t *testing.T) {
	t.Parallel()

	for _, k := range []Kind{KindFetchURL, KindFetchGit, KindFetchGitHub, KindFetchTarball, KindCopyToStore} {
		if valid, errs := k.IsValid(); !valid {
			t.Errorf("%s.IsValid() = false, errs = %v", k, errs)
		}
	}

	valid, errs := Kind(0).IsValid()
	if valid {
		t.Fatal("Kind(0).IsValid() = true, want false")
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidKind) {
		t.Errorf("Kind(0).IsValid() errs = %v, want ErrInvalidKind", errs)
	}
}

func TestVariantKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		f    Fetcher
		want Kind
	}{
		{FetchURL{}, KindFetchURL},
		{FetchGit{}, KindFetchGit},
		{FetchGitHub{}, KindFetchGitHub},
		{FetchTarball{}, KindFetchTarball},
		{CopyToStore{}, KindCopyToStore},
	}

	for _, tt := range tests {
		if got := tt.f.Kind(); got != tt.want {
			t.Errorf("%T.Kind() = %s, want %s", tt.f, got, tt.want)
		}
	}
}

func TestHashOf(t *testing.T) {
	t.Parallel()

	if got := HashOf(FetchGitHub{Hash: "sha256-x"}); got != "sha256-x" {
		t.Errorf("HashOf(FetchGitHub) = %q", got)
	}
	if got := HashOf(CopyToStore{Path: "./a"}); got != "" {
		t.Errorf("HashOf(CopyToStore) = %q, want empty", got)
	}
}
