// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for tests that touch the filesystem or
// process environment, failing the test on setup errors.
package testutil
