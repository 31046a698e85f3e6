// SPDX-License-Identifier: MPL-2.0

//go:build debug

package lockfile

const debugAssertions = true
