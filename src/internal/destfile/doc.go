// Package destfile replaces the destination list file atomically and only
// when its content changes.
//
// Writer.Write reads the current destination (a missing file counts as
// empty), compares it byte for byte with the new content and returns
// Unchanged without touching the filesystem when they are equal. Otherwise
// it writes a temp file, fsyncs it and renames it over the destination, so
// readers see either the old or the new content and never a partial file.
//
// The rename is only atomic within one filesystem; the temp directory must
// share the destination's filesystem.
package destfile
