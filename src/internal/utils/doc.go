// Package utils provides small helpers shared across blocklist-sync.
//
//   - Path utilities: resolve paths relative to a base directory, detect "-"
//   - File utilities: close with a logged warning instead of a silent drop
//   - Filesystem identity: device and ownership lookups used before an
//     atomic replace (backed by golang.org/x/sys/unix)
//
// Example:
//
//	same, err := utils.SameDevice(tempDir, filepath.Dir(dest))
//	if err == nil && !same {
//	    log.Warnf("Temp dir %s is on another filesystem, rename will fail", tempDir)
//	}
package utils
