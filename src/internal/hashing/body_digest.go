package hashing

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"io"
)

// BodyDigest counts and hashes the bytes read through it. Downloads are
// wrapped in it so a fetched list can be identified in logs.
type BodyDigest struct {
	reader   io.Reader
	checksum hash.Hash
	size     int64
}

// NewBodyDigest wraps reader.
func NewBodyDigest(reader io.Reader) *BodyDigest {
	return &BodyDigest{
		reader:   reader,
		checksum: md5.New(),
	}
}

// Read reads from the underlying reader and feeds every byte to the digest.
func (p *BodyDigest) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 {
		// hash.Hash.Write never returns an error
		_, _ = p.checksum.Write(buf[:n])
		p.size += int64(n)
	}
	return n, err
}

// Size returns the number of bytes read so far.
func (p *BodyDigest) Size() int64 {
	return p.size
}

// GetChecksum returns the MD5 of the bytes read so far as a hex string.
func (p *BodyDigest) GetChecksum() string {
	return hex.EncodeToString(p.checksum.Sum(nil))
}

// Sum returns the hex MD5 of data.
func Sum(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
