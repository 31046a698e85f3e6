// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// [ActionableError] carries the failed operation, the resource involved and
// suggestions for fixing it. An error may also point at an [Issue], a Markdown
// help page rendered with glamour, for problems that need more explanation
// than a one-line suggestion.
package issue
