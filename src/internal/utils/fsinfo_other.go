//go:build !unix

package utils

import "errors"

var errUnsupported = errors.New("filesystem identity is not available on this platform")

// SameDevice cannot be determined on this platform; it assumes true so the
// rename itself decides.
func SameDevice(a, b string) (bool, error) {
	return true, errUnsupported
}

// Owner is not available on this platform.
func Owner(path string) (uid, gid int, err error) {
	return 0, 0, errUnsupported
}
