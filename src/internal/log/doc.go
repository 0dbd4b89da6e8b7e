// Package log provides simple leveled logging for blocklist-sync.
//
// The package exposes global Printf-style functions for four levels: DEBUG,
// INFO, WARN and ERROR. Debug messages are only emitted in verbose mode.
//
// # Sinks
//
//   - console: human readable lines on stderr, rendered by charmbracelet/log
//   - syslog: the local system logger (daemon facility), enabled with UseSyslog
//
// The console sink is active until UseSyslog succeeds, so early messages are
// never lost.
//
// # Example Usage
//
//	if err := log.UseSyslog("blocklist-sync"); err != nil {
//	    log.Warnf("Syslog is unavailable, logging to console: %v", err)
//	}
//	defer log.Close()
//
//	log.Infof("Fetching %d sources", len(urls))
//	log.Debugf("Source %s: %d bytes", url, size)
//
// All functions are safe for concurrent use by fetch goroutines.
package log
