// SPDX-License-Identifier: MPL-2.0

package lockfile

import (
	"encoding/json"
	"strings"
)

// TakeValue removes values[index] in O(1) by moving the last element into its
// slot, and returns the removed value with its surrounding quotes stripped.
// The order of the remaining values is not preserved.
//
// The value must be a JSON string. Escape sequences are kept as written.
func TakeValue(values *[]json.RawMessage, index int) string {
	s := *values
	raw := s[index]
	last := len(s) - 1
	s[index] = s[last]
	s[last] = nil
	*values = s[:last]

	assertf(len(raw) >= 2 && raw[0] == '"', "value should start with a quote: %s", raw)
	assertf(len(raw) >= 2 && raw[len(raw)-1] == '"', "value should end with a quote: %s", raw)

	if len(raw) < 2 {
		return ""
	}
	return string(raw[1 : len(raw)-1])
}

// SplitOnceOwned splits s around the first sep. The separator belongs to
// neither half.
//
//	SplitOnceOwned("hello#world", '#') // "hello", "world", true
func SplitOnceOwned(s string, sep byte) (before, after string, ok bool) {
	i := strings.IndexByte(s, sep)
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// DropPrefix returns s without prefix, or s unchanged if it does not start
// with prefix.
func DropPrefix(s, prefix string) string {
	return strings.TrimPrefix(s, prefix)
}

// DrainAfterLast returns everything after the last occurrence of sub.
//
//	DrainAfterLast("pkg@file:./a", "file:") // "./a", true
func DrainAfterLast(s, sub string) (string, bool) {
	i := strings.LastIndex(s, sub)
	if i < 0 {
		return "", false
	}
	return s[i+len(sub):], true
}
