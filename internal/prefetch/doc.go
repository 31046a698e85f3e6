// SPDX-License-Identifier: MPL-2.0

// Package prefetch computes content hashes for remote package sources.
//
// [Nix] implements [lockfile.Prefetcher] by running a nix prefetch command
// (by default "nix flake prefetch --json") with the locator appended and
// reading the "hash" field of its JSON output. Failed runs are retried with
// exponential backoff; a missing binary or unreadable output is not retried.
//
// [Memo] wraps any Prefetcher so that a locator is prefetched at most once
// per run, even when several entries request it concurrently.
package prefetch
