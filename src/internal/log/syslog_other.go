//go:build windows || plan9

package log

import "errors"

// UseSyslog is not available on this platform; the console sink stays active.
func UseSyslog(tag string) error {
	return errors.New("syslog is not supported on this platform")
}
