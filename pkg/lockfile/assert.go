// SPDX-License-Identifier: MPL-2.0

package lockfile

import "fmt"

// assertf panics when cond is false and the binary was built with the
// "debug" tag. These checks guard decoder invariants that well-formed
// input never violates; they are not user-facing errors.
func assertf(cond bool, format string, args ...any) {
	if debugAssertions && !cond {
		panic("lockfile: internal decoding invariant: " + fmt.Sprintf(format, args...))
	}
}
