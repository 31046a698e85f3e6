// SPDX-License-Identifier: MPL-2.0

// Package fetcher defines the fetch descriptors produced from lockfile entries.
//
// A descriptor is one of five closed variants:
//   - [FetchURL]: registry tarball, hash taken from the lockfile
//   - [FetchGit]: git revision, hash from prefetch
//   - [FetchGitHub]: GitHub archive, hash from prefetch
//   - [FetchTarball]: remote tarball, hash from prefetch
//   - [CopyToStore]: local path, no hash
//
// It also builds npm registry URLs ([NpmURL]) and archive filenames
// ([TarballFileName]) for registry packages.
package fetcher
