// SPDX-License-Identifier: MPL-2.0

// Package cueutil holds CUE helpers shared by the config loader and the
// lockfile reader: size limits and path-qualified error formatting.
package cueutil
