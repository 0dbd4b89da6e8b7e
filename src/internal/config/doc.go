// Package config handles configuration for blocklist-sync.
//
// A run is described by a Config: the destination file, the source URLs, the
// temp directory, the per-source timeout, the parsing mode and the HTTP
// User-Agent. Values come from three layers, later ones winning:
//
//  1. NewDefaultConfig
//  2. an optional TOML file read with LoadConfig
//  3. command line values applied with Config.Apply
//
// Relative paths in a config file are resolved against the file's directory;
// relative paths on the command line against the working directory.
//
// # Example Configuration
//
//	destination = "/etc/pf/blocklist.txt"
//	temp_dir = "/etc/pf/.tmp"
//	timeout = "45s"
//	user_agent = "blocklist-sync/{{version}} (+https://example.net/contact)"
//	urls = [
//	  "https://www.spamhaus.org/drop/drop.txt",
//	  "https://www.spamhaus.org/drop/dropv6.txt",
//	]
//
// ValidateConfig checks the merged result with go-playground/validator and
// reports every problem at once as ValidationErrors.
package config
