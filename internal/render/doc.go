// SPDX-License-Identifier: MPL-2.0

// Package render writes decoded packages in one of the supported output
// formats.
//
// The nix format produces a function over the nixpkgs fetchers that evaluates
// to an attribute set keyed by package name. The json, toml and yaml formats
// serialize a flat [Document] for consumption by other tools.
package render
