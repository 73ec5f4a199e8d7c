package source

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is the content hash used to key cached scan results.
type Digest [32]byte

// DigestOf hashes content.
func DigestOf(content []byte) Digest {
	return sha256.Sum256(content)
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}
