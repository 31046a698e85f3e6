// SPDX-License-Identifier: MPL-2.0

package cueutil

import "fmt"

// DefaultMaxFileSize is the default maximum size of a CUE config file (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// CheckFileSize verifies that data does not exceed maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
