package project

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:8])
}

// HashBytes returns the sha256 digest of b.
func HashBytes(b []byte) Digest {
	return sha256.Sum256(b)
}

// HashFile hashes the content of path.
func HashFile(path string) (Digest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Digest{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return HashBytes(data), nil
}
