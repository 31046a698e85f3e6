// SPDX-License-Identifier: MPL-2.0

// Package bunlock reads bun.lock documents.
//
// bun.lock is JSON with trailing commas. It is compiled with CUE, which
// accepts that syntax as a JSON superset, and only the "lockfileVersion"
// and "packages" fields are read. Each package becomes a [lockfile.RawEntry]
// in declaration order.
package bunlock
