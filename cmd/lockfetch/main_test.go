// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"lockfetch": Execute,
	})
}

// TestScripts runs the CLI end-to-end scripts in testdata/script.
func TestScripts(t *testing.T) {
	t.Parallel()

	testscript.Run(t, testscript.Params{
		Dir: filepath.Join("testdata", "script"),
		Setup: func(env *testscript.Env) error {
			// Keep config lookups inside the work directory.
			env.Setenv("HOME", env.WorkDir)
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			if runtime.GOOS == "windows" {
				env.Setenv("APPDATA", filepath.Join(env.WorkDir, ".config"))
			}
			env.Setenv("NO_COLOR", "1")
			return nil
		},
		Condition: func(cond string) (bool, error) {
			switch cond {
			case "xdg":
				return runtime.GOOS != "windows" && runtime.GOOS != "darwin", nil
			default:
				return false, fmt.Errorf("unknown condition %q", cond)
			}
		},
		ContinueOnError: true,
	})
}

