// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for lockfetch.
//
// This package implements the Cobra command hierarchy for the lockfetch CLI:
// the root command with its global flags, convert (lockfile to fetcher
// expressions), inspect (entry shape summary), and config management.
package cmd
