// SPDX-License-Identifier: MPL-2.0

// Package convert drives the decoding of a whole lockfile.
//
// A [Converter] decodes every entry of a lockfile concurrently, keeping the
// results in lockfile order. Whether a failing entry aborts the run or is
// recorded and skipped is controlled by the converter's [Policy].
package convert
