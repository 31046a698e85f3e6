// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetConfigHome points the platform's user configuration root at dir for the
// rest of the test. It uses t.Setenv, so the test must not be parallel.
//
// Platform handling:
//   - Windows: Sets APPDATA
//   - macOS: Sets HOME (config lives under Library/Application Support)
//   - Linux and others: Sets XDG_CONFIG_HOME
func SetConfigHome(t *testing.T, dir string) {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		t.Setenv("APPDATA", dir)
	case "darwin":
		t.Setenv("HOME", dir)
	default:
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
}
