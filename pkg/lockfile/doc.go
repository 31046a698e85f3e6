// SPDX-License-Identifier: MPL-2.0

// Package lockfile turns bun lockfile package entries into fetch descriptors.
//
// A bun.lock "packages" entry is a name plus an untyped tuple. The tuple
// carries no shape tag, so its arity decides how it is read:
//
//	1  [identifier]                            workspace package
//	2  [identifier, meta]                      remote tarball or local file
//	3  [identifier, meta, id]                  git or GitHub dependency
//	4  [identifier, tarball_url, meta, hash]   npm registry package
//
// [Decoder.Decode] classifies one [RawEntry] with [ShapeOf] and builds a
// [fetcher.Package]. Git, GitHub and tarball entries have no inline hash; the
// decoder obtains one from its [Prefetcher].
//
// Field extraction uses a small set of string primitives ([TakeValue],
// [SplitOnceOwned], [DropPrefix], [DrainAfterLast]) that slice the input
// rather than copy it.
package lockfile
