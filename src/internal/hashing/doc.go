// Package hashing provides MD5 accounting of byte streams.
//
// BodyDigest wraps an io.Reader and records the size and MD5 of everything
// read through it. The fetcher wraps every response body in one, so debug
// logs identify exactly which version of a remote list was aggregated.
//
//	digest := hashing.NewBodyDigest(resp.Body)
//	content, _ := io.ReadAll(digest)
//	log.Debugf("Fetched %d bytes, MD5: %s", digest.Size(), digest.GetChecksum())
//
// The digests are diagnostic only; change detection of the destination file
// compares bytes directly.
package hashing
